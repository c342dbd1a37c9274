package di

import (
	"github.com/sarulabs/di/v2"
	"github.com/tunego/nft-market/internal/api"
	"github.com/tunego/nft-market/internal/config"
	"github.com/tunego/nft-market/internal/elastic_search"
	"github.com/tunego/nft-market/internal/factory"
	"github.com/tunego/nft-market/internal/indexer"
	"github.com/tunego/nft-market/internal/ledger"
	"github.com/tunego/nft-market/internal/market"
	"github.com/tunego/nft-market/internal/messenger"
	"github.com/tunego/nft-market/internal/registry"
	"github.com/tunego/nft-market/internal/repository"
	"go.uber.org/zap"
)

// marketBoot carries the engine together with its bootstrap admin
// capability, which is minted exactly once at construction.
type marketBoot struct {
	market *market.Market
	admin  *market.AdminCapability
}

var Definitions = []di.Def{
	{
		Name: "elastic",
		Build: func(ctn di.Container) (interface{}, error) {
			elastic, err := elastic_search.New()
			if err != nil {
				zap.L().With(zap.Error(err)).Fatal("Failed to start ES")
			}

			return elastic, nil
		},
	},
	{
		Name: "asset.registry",
		Build: func(ctn di.Container) (interface{}, error) {
			return registry.NewAssetRegistry(), nil
		},
	},
	{
		Name: "fungible.ledger",
		Build: func(ctn di.Container) (interface{}, error) {
			return ledger.NewFungibleLedger(), nil
		},
	},
	{
		Name: "market.boot",
		Build: func(ctn di.Container) (interface{}, error) {
			c := config.Get().Market

			m, admin, err := market.NewMarket(
				ctn.Get("asset.registry").(registry.AssetRegistry),
				ctn.Get("fungible.ledger").(ledger.FungibleLedger),
				c.FeeReceiver,
				c.FeePercentage,
			)
			if err != nil {
				zap.L().With(zap.Error(err)).Fatal("Failed to create market")
			}

			for _, kind := range c.SupportedKinds {
				if err := m.AddSupportedAssetKind(admin, entityKind(kind)); err != nil {
					zap.L().With(zap.Error(err), zap.String("kind", kind)).Fatal("Failed to add supported kind")
				}
			}

			return marketBoot{m, admin}, nil
		},
	},
	{
		Name: "market.action.factory",
		Build: func(ctn di.Container) (interface{}, error) {
			return factory.NewMarketActionFactory(), nil
		},
	},
	{
		Name: "activity.indexer",
		Build: func(ctn di.Container) (interface{}, error) {
			return indexer.NewActivityIndexer(
				ctn.Get("elastic").(elastic_search.Index),
				ctn.Get("market.action.factory").(factory.MarketActionFactory),
			), nil
		},
	},
	{
		Name: "sale.activity.repo",
		Build: func(ctn di.Container) (interface{}, error) {
			return repository.NewSaleActivityRepository(ctn.Get("elastic").(elastic_search.Index)), nil
		},
	},
	{
		Name: "messenger",
		Build: func(ctn di.Container) (interface{}, error) {
			return messenger.NewMessenger(config.Get().AmqpUri), nil
		},
	},
	{
		Name: "event.publisher",
		Build: func(ctn di.Container) (interface{}, error) {
			return messenger.NewEventPublisher(ctn.Get("messenger").(messenger.MessageService)), nil
		},
	},
	{
		Name: "api.server",
		Build: func(ctn di.Container) (interface{}, error) {
			boot := ctn.Get("market.boot").(marketBoot)

			return api.NewServer(
				boot.market,
				ctn.Get("asset.registry").(registry.AssetRegistry),
				ctn.Get("fungible.ledger").(ledger.FungibleLedger),
				config.Get().Market.FeeReceiver,
				boot.admin,
			), nil
		},
	},
}
