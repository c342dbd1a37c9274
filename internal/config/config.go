package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/tunego/nft-market/internal/log"
	"go.uber.org/zap"
)

type Config struct {
	Env       string
	Network   string
	Index     string
	Debug     bool
	LogPath   string
	SentryDsn string

	ApiPort    string
	HealthPort string

	Market        MarketConfig
	ElasticSearch ElasticSearchConfig
	AmqpUri       string
}

type MarketConfig struct {
	FeeReceiver    string
	FeePercentage  decimal.Decimal
	SupportedKinds []string
}

type ElasticSearchConfig struct {
	Hosts            []string
	Sniff            bool
	HealthCheck      bool
	Debug            bool
	Username         string
	Password         string
	MappingDir       string
	BulkPersistCount int
	Refresh          string
}

func Init(service string) {
	if err := godotenv.Load(".env"); err != nil {
		zap.L().With(zap.Error(err)).Warn("Unable to load .env")
	}

	initLogger(service)
}

func initLogger(service string) {
	c := Get()
	log.NewLogger(fmt.Sprintf("%s/%s.log", c.LogPath, service), c.Debug, c.SentryDsn)
}

func Get() *Config {
	return &Config{
		Env:        getString("ENV", "dev"),
		Network:    getString("NETWORK", "tunego"),
		Index:      getString("INDEX_NAME", "market"),
		Debug:      getBool("DEBUG", false),
		LogPath:    getString("LOG_PATH", "./var/logs"),
		SentryDsn:  getString("SENTRY_DSN", ""),
		ApiPort:    getString("API_PORT", "8080"),
		HealthPort: getString("HEALTH_PORT", "8081"),
		Market: MarketConfig{
			FeeReceiver:    getString("MARKET_FEE_RECEIVER", "tunego"),
			FeePercentage:  getDecimal("MARKET_FEE_PERCENTAGE", decimal.RequireFromString("2.5")),
			SupportedKinds: getSlice("MARKET_SUPPORTED_KINDS", make([]string, 0), ","),
		},
		ElasticSearch: ElasticSearchConfig{
			Hosts:            getSlice("ELASTIC_SEARCH_HOSTS", make([]string, 0), ","),
			Sniff:            getBool("ELASTIC_SEARCH_SNIFF", true),
			HealthCheck:      getBool("ELASTIC_SEARCH_HEALTH_CHECK", true),
			Debug:            getBool("ELASTIC_SEARCH_DEBUG", false),
			Username:         getString("ELASTIC_SEARCH_USERNAME", ""),
			Password:         getString("ELASTIC_SEARCH_PASSWORD", ""),
			MappingDir:       getString("ELASTIC_SEARCH_MAPPING_DIR", "./mappings"),
			BulkPersistCount: getInt("ELASTIC_SEARCH_BULK_PERSIST_COUNT", 100),
			Refresh:          getString("ELASTIC_SEARCH_REFRESH", "wait_for"),
		},
		AmqpUri: getString("AMQP_URI", ""),
	}
}

func getString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultValue
}

func getInt(key string, defaultValue int) int {
	valStr := getString(key, "")
	if val, err := strconv.Atoi(valStr); err == nil {
		return val
	}

	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	valStr := getString(key, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultValue
}

func getDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	valStr := getString(key, "")
	if val, err := decimal.NewFromString(valStr); err == nil {
		return val
	}

	return defaultValue
}

func getSlice(key string, defaultVal []string, sep string) []string {
	valStr := getString(key, "")
	if valStr == "" {
		return defaultVal
	}

	return strings.Split(valStr, sep)
}
