package factory

import (
	"time"

	"github.com/tunego/nft-market/internal/entity"
)

// MarketActionFactory builds indexable activity documents from market event
// payloads.
type MarketActionFactory struct{}

func NewMarketActionFactory() MarketActionFactory {
	return MarketActionFactory{}
}

func (f MarketActionFactory) CreateListing(e entity.SaleOfferCreated) entity.MarketAction {
	return entity.MarketAction{
		SaleOfferId: e.SaleOfferId,
		AssetKind:   e.AssetKind,
		TokenId:     e.TokenId,
		Action:      entity.ListingAction,
		Seller:      e.Seller,
		Price:       e.Price.String(),
		OccurredAt:  time.Now().UTC(),
	}
}

func (f MarketActionFactory) CreateDelisting(e entity.SaleOfferRemoved) entity.MarketAction {
	return entity.MarketAction{
		SaleOfferId: e.SaleOfferId,
		AssetKind:   e.AssetKind,
		TokenId:     e.TokenId,
		Action:      entity.DelistingAction,
		Seller:      e.Seller,
		OccurredAt:  time.Now().UTC(),
	}
}

func (f MarketActionFactory) CreateSale(e entity.SaleOfferAccepted) entity.MarketAction {
	return entity.MarketAction{
		SaleOfferId:  e.SaleOfferId,
		AssetKind:    e.AssetKind,
		TokenId:      e.TokenId,
		Action:       entity.SaleAction,
		Seller:       e.Seller,
		Buyer:        e.Buyer,
		Price:        e.Price.String(),
		Fee:          e.PlatformFee.String(),
		RoyaltyTotal: e.RoyaltyTotal.String(),
		OccurredAt:   time.Now().UTC(),
	}
}
