package di

import (
	"github.com/sarulabs/di/v2"
	"github.com/tunego/nft-market/internal/api"
	"github.com/tunego/nft-market/internal/elastic_search"
	"github.com/tunego/nft-market/internal/entity"
	"github.com/tunego/nft-market/internal/indexer"
	"github.com/tunego/nft-market/internal/ledger"
	"github.com/tunego/nft-market/internal/market"
	"github.com/tunego/nft-market/internal/messenger"
	"github.com/tunego/nft-market/internal/registry"
	"github.com/tunego/nft-market/internal/repository"
	"go.uber.org/zap"
)

type Container struct {
	ctn di.Container
}

func NewContainer() (*Container, error) {
	builder, err := di.NewBuilder()
	if err != nil {
		return nil, err
	}

	if err := builder.Add(Definitions...); err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to build DI container")
	}

	return &Container{ctn: builder.Build()}, nil
}

func (c *Container) GetElastic() elastic_search.Index {
	return c.ctn.Get("elastic").(elastic_search.Index)
}

func (c *Container) GetAssetRegistry() registry.AssetRegistry {
	return c.ctn.Get("asset.registry").(registry.AssetRegistry)
}

func (c *Container) GetFungibleLedger() ledger.FungibleLedger {
	return c.ctn.Get("fungible.ledger").(ledger.FungibleLedger)
}

func (c *Container) GetMarket() *market.Market {
	return c.ctn.Get("market.boot").(marketBoot).market
}

func (c *Container) GetActivityIndexer() indexer.ActivityIndexer {
	return c.ctn.Get("activity.indexer").(indexer.ActivityIndexer)
}

func (c *Container) GetSaleActivityRepo() repository.SaleActivityRepository {
	return c.ctn.Get("sale.activity.repo").(repository.SaleActivityRepository)
}

func (c *Container) GetMessenger() messenger.MessageService {
	return c.ctn.Get("messenger").(messenger.MessageService)
}

func (c *Container) GetEventPublisher() messenger.EventPublisher {
	return c.ctn.Get("event.publisher").(messenger.EventPublisher)
}

func (c *Container) GetApiServer() *api.Server {
	return c.ctn.Get("api.server").(*api.Server)
}

func entityKind(kind string) entity.AssetKind {
	return entity.AssetKind(kind)
}
