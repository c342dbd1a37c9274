package factory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tunego/nft-market/internal/entity"
)

func TestCreateListing(t *testing.T) {
	f := NewMarketActionFactory()

	action := f.CreateListing(entity.SaleOfferCreated{
		SaleOfferId: 7,
		AssetKind:   entity.TuneGONFTKind,
		TokenId:     3,
		Seller:      "seller",
		Price:       decimal.RequireFromString("1.11"),
	})

	assert.Equal(t, uint64(7), action.SaleOfferId)
	assert.Equal(t, entity.ListingAction, action.Action)
	assert.Equal(t, "1.11", action.Price)
	assert.False(t, action.OccurredAt.IsZero())
}

func TestCreateSale(t *testing.T) {
	f := NewMarketActionFactory()

	action := f.CreateSale(entity.SaleOfferAccepted{
		SaleOfferId:    7,
		AssetKind:      entity.TuneGONFTKind,
		TokenId:        3,
		Seller:         "seller",
		Buyer:          "buyer",
		Price:          decimal.RequireFromString("100"),
		PlatformFee:    decimal.RequireFromString("2.5"),
		RoyaltyTotal:   decimal.RequireFromString("6"),
		SellerProceeds: decimal.RequireFromString("91.5"),
	})

	assert.Equal(t, entity.SaleAction, action.Action)
	assert.Equal(t, "buyer", action.Buyer)
	assert.Equal(t, "2.5", action.Fee)
	assert.Equal(t, "6", action.RoyaltyTotal)
}

func TestActionSlugsDifferPerAction(t *testing.T) {
	f := NewMarketActionFactory()

	created := entity.SaleOfferCreated{SaleOfferId: 1, Seller: "seller"}
	removed := entity.SaleOfferRemoved{SaleOfferId: 1, Seller: "seller"}

	listing := f.CreateListing(created)
	delisting := f.CreateDelisting(removed)

	assert.NotEqual(t, listing.Slug(), delisting.Slug())
}
