package repository

import (
	"encoding/json"
	"errors"

	"github.com/olivere/elastic/v7"
	"github.com/tunego/nft-market/internal/elastic_search"
	"github.com/tunego/nft-market/internal/entity"
)

var ErrMarketActionNotFound = errors.New("market action not found")

type SaleActivityRepository interface {
	GetActionsBySeller(seller string, size, from int) ([]entity.MarketAction, error)
	GetActionsByAsset(kind entity.AssetKind, tokenId uint64) ([]entity.MarketAction, error)
	GetSale(seller string, saleOfferId uint64) (entity.MarketAction, error)
}

type saleActivityRepository struct {
	elastic elastic_search.Index
}

func NewSaleActivityRepository(elastic elastic_search.Index) SaleActivityRepository {
	return saleActivityRepository{elastic}
}

func (r saleActivityRepository) GetActionsBySeller(seller string, size, from int) ([]entity.MarketAction, error) {
	result, err := search(r.elastic.GetClient().
		Search(elastic_search.SaleActivityIndex.Get()).
		Query(elastic.NewTermQuery("seller.keyword", seller)).
		Sort("occurredAt", false).
		Size(size).
		From(from))

	return r.findMany(result, err)
}

func (r saleActivityRepository) GetActionsByAsset(kind entity.AssetKind, tokenId uint64) ([]entity.MarketAction, error) {
	query := elastic.NewBoolQuery().Must(
		elastic.NewTermQuery("assetKind.keyword", string(kind)),
		elastic.NewTermQuery("tokenId", tokenId),
	)

	result, err := search(r.elastic.GetClient().
		Search(elastic_search.SaleActivityIndex.Get()).
		Query(query).
		Sort("occurredAt", false).
		Size(100))

	return r.findMany(result, err)
}

func (r saleActivityRepository) GetSale(seller string, saleOfferId uint64) (entity.MarketAction, error) {
	query := elastic.NewBoolQuery().Must(
		elastic.NewTermQuery("seller.keyword", seller),
		elastic.NewTermQuery("saleOfferId", saleOfferId),
		elastic.NewTermQuery("action.keyword", string(entity.SaleAction)),
	)

	result, err := search(r.elastic.GetClient().
		Search(elastic_search.SaleActivityIndex.Get()).
		Query(query).
		Size(1))

	return r.findOne(result, err)
}

func (r saleActivityRepository) findOne(results *elastic.SearchResult, err error) (entity.MarketAction, error) {
	if err != nil {
		return entity.MarketAction{}, err
	}

	if len(results.Hits.Hits) == 0 {
		return entity.MarketAction{}, ErrMarketActionNotFound
	}

	var action entity.MarketAction
	err = json.Unmarshal(results.Hits.Hits[0].Source, &action)

	return action, err
}

func (r saleActivityRepository) findMany(results *elastic.SearchResult, err error) ([]entity.MarketAction, error) {
	actions := make([]entity.MarketAction, 0)

	if err != nil {
		return actions, err
	}

	for _, hit := range results.Hits.Hits {
		var action entity.MarketAction
		if err := json.Unmarshal(hit.Source, &action); err == nil {
			actions = append(actions, action)
		}
	}

	return actions, nil
}
