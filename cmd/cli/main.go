package main

import (
	"fmt"
	"os"

	"github.com/tunego/nft-market/internal/client"
	"github.com/tunego/nft-market/internal/config"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var marketClient *client.MarketClient

func main() {
	config.Init("cli")

	marketClient = client.NewMarketClient(getString("MARKET_API", "http://localhost:8080"))

	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name:   "fee",
				Usage:  "show the current market fee policy",
				Action: getFee,
			},
			{
				Name:   "set-fee",
				Usage:  "replace the market fee policy",
				Action: setFee,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "admin", Required: true, Usage: "admin account"},
					&cli.StringFlag{Name: "receiver", Required: true, Usage: "fee receiver account"},
					&cli.StringFlag{Name: "percentage", Required: true, Usage: "fee percentage in [0, 100)"},
				},
			},
			{
				Name:   "add-kind",
				Usage:  "allowlist an asset kind for new sale offers",
				Action: addKind,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "admin", Required: true, Usage: "admin account"},
					&cli.StringFlag{Name: "kind", Required: true, Usage: "asset kind"},
				},
			},
			{
				Name:   "create-admin",
				Usage:  "mint an additional admin capability",
				Action: createAdmin,
				Flags:  adminFlags(),
			},
			{
				Name:   "transfer-admin",
				Usage:  "move admin authority to another account",
				Action: transferAdmin,
				Flags:  adminFlags(),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to start CLI")
	}
}

func adminFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "admin", Required: true, Usage: "current admin account"},
		&cli.StringFlag{Name: "new-admin", Required: true, Usage: "new admin account"},
	}
}

func getFee(c *cli.Context) error {
	policy, err := marketClient.GetFee()
	if err != nil {
		zap.L().With(zap.Error(err)).Error("Failed to get fee policy")
		return err
	}

	fmt.Printf("receiver: %s\npercentage: %s\n", policy.Receiver, policy.Percentage)

	return nil
}

func setFee(c *cli.Context) error {
	if err := marketClient.SetFee(c.String("admin"), c.String("receiver"), c.String("percentage")); err != nil {
		zap.L().With(zap.Error(err)).Error("Failed to set fee policy")
		return err
	}

	zap.L().Info("Fee policy updated")

	return nil
}

func addKind(c *cli.Context) error {
	if err := marketClient.AddSupportedKind(c.String("admin"), c.String("kind")); err != nil {
		zap.L().With(zap.Error(err)).Error("Failed to add supported kind")
		return err
	}

	zap.L().Info("Asset kind supported")

	return nil
}

func createAdmin(c *cli.Context) error {
	if err := marketClient.CreateAdmin(c.String("admin"), c.String("new-admin")); err != nil {
		zap.L().With(zap.Error(err)).Error("Failed to create admin")
		return err
	}

	zap.L().Info("Admin capability created")

	return nil
}

func transferAdmin(c *cli.Context) error {
	if err := marketClient.TransferAdmin(c.String("admin"), c.String("new-admin")); err != nil {
		zap.L().With(zap.Error(err)).Error("Failed to transfer admin")
		return err
	}

	zap.L().Info("Admin capability transferred")

	return nil
}

func getString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultValue
}
