package entity

import (
	"github.com/shopspring/decimal"
)

// Royalty is a single royalty schedule entry. Percentage is expressed in
// [0, 100) with 8 fractional digits of precision.
type Royalty struct {
	Receiver   string          `json:"receiver"`
	Percentage decimal.Decimal `json:"percentage"`
}

// FeePolicy is the platform fee applied to every accepted sale offer. It is
// read at acceptance time, not at listing time.
type FeePolicy struct {
	Receiver   string          `json:"receiver"`
	Percentage decimal.Decimal `json:"percentage"`
}

// SaleOffer is the queryable view of an active listing.
type SaleOffer struct {
	Id        uint64          `json:"saleOfferId"`
	AssetKind AssetKind       `json:"assetKind"`
	TokenId   uint64          `json:"tokenId"`
	Seller    string          `json:"seller"`
	Price     decimal.Decimal `json:"price"`
	Royalties []Royalty       `json:"royalties"`
}
