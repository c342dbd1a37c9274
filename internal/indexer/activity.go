package indexer

import (
	"github.com/tunego/nft-market/internal/elastic_search"
	"github.com/tunego/nft-market/internal/entity"
	"github.com/tunego/nft-market/internal/factory"
	"go.uber.org/zap"
)

// ActivityIndexer persists market activity documents. Its Trigger methods
// are registered as event listeners at startup.
type ActivityIndexer interface {
	TriggerListing(msg interface{})
	TriggerDelisting(msg interface{})
	TriggerSale(msg interface{})
}

type activityIndexer struct {
	elastic elastic_search.Index
	factory factory.MarketActionFactory
}

func NewActivityIndexer(elastic elastic_search.Index, factory factory.MarketActionFactory) ActivityIndexer {
	return activityIndexer{elastic, factory}
}

func (i activityIndexer) TriggerListing(msg interface{}) {
	e, ok := msg.(entity.SaleOfferCreated)
	if !ok {
		zap.L().Error("ActivityIndexer: Invalid listing payload")
		return
	}

	i.index(i.factory.CreateListing(e), elastic_search.SaleListing)
}

func (i activityIndexer) TriggerDelisting(msg interface{}) {
	e, ok := msg.(entity.SaleOfferRemoved)
	if !ok {
		zap.L().Error("ActivityIndexer: Invalid delisting payload")
		return
	}

	i.index(i.factory.CreateDelisting(e), elastic_search.SaleDelisting)
}

func (i activityIndexer) TriggerSale(msg interface{}) {
	e, ok := msg.(entity.SaleOfferAccepted)
	if !ok {
		zap.L().Error("ActivityIndexer: Invalid sale payload")
		return
	}

	i.index(i.factory.CreateSale(e), elastic_search.SaleCompleted)
}

func (i activityIndexer) index(action entity.MarketAction, reqAction elastic_search.RequestAction) {
	zap.L().With(
		zap.Uint64("saleOfferId", action.SaleOfferId),
		zap.String("action", string(action.Action)),
	).Info("ActivityIndexer: Indexing market action")

	i.elastic.AddIndexRequest(elastic_search.SaleActivityIndex.Get(), action, reqAction)
	i.elastic.BatchPersist()
}
