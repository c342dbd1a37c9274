package entity

import (
	"github.com/shopspring/decimal"
)

// Event payloads emitted by the market engine. SaleOfferCreated carries the
// new offer id so callers can correlate a listing with subsequent operations.

type SaleOfferCreated struct {
	SaleOfferId uint64          `json:"saleOfferId"`
	AssetKind   AssetKind       `json:"assetKind"`
	TokenId     uint64          `json:"tokenId"`
	Seller      string          `json:"seller"`
	Price       decimal.Decimal `json:"price"`
	Royalties   []Royalty       `json:"royalties"`
}

type SaleOfferAccepted struct {
	SaleOfferId    uint64          `json:"saleOfferId"`
	AssetKind      AssetKind       `json:"assetKind"`
	TokenId        uint64          `json:"tokenId"`
	Seller         string          `json:"seller"`
	Buyer          string          `json:"buyer"`
	Price          decimal.Decimal `json:"price"`
	PlatformFee    decimal.Decimal `json:"platformFee"`
	RoyaltyTotal   decimal.Decimal `json:"royaltyTotal"`
	SellerProceeds decimal.Decimal `json:"sellerProceeds"`
}

type SaleOfferRemoved struct {
	SaleOfferId uint64    `json:"saleOfferId"`
	AssetKind   AssetKind `json:"assetKind"`
	TokenId     uint64    `json:"tokenId"`
	Seller      string    `json:"seller"`
}

type MarketFeeChanged struct {
	Receiver   string          `json:"receiver"`
	Percentage decimal.Decimal `json:"percentage"`
}

type AssetKindSupported struct {
	AssetKind AssetKind `json:"assetKind"`
}

type AdminCreated struct {
	Holder string `json:"holder"`
}

type AdminTransferred struct {
	From string `json:"from"`
	To   string `json:"to"`
}
