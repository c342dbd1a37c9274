package entity

import (
	"crypto/md5"
	"fmt"
	"time"
)

// MarketAction is the indexed activity document for a sale offer collection:
// one row per listing, delisting or completed sale.
type MarketAction struct {
	SaleOfferId  uint64     `json:"saleOfferId"`
	AssetKind    AssetKind  `json:"assetKind"`
	TokenId      uint64     `json:"tokenId"`
	Action       ActionType `json:"action"`
	Seller       string     `json:"seller"`
	Buyer        string     `json:"buyer"`
	Price        string     `json:"price"`
	Fee          string     `json:"fee"`
	RoyaltyTotal string     `json:"royaltyTotal"`
	OccurredAt   time.Time  `json:"occurredAt"`
}

type ActionType string

const (
	ListingAction   ActionType = "listing"
	DelistingAction ActionType = "delisting"
	SaleAction      ActionType = "sale"
)

func (a MarketAction) Slug() string {
	return CreateMarketActionSlug(a.SaleOfferId, a.Seller, string(a.Action))
}

func CreateMarketActionSlug(saleOfferId uint64, seller, action string) string {
	data := []byte(fmt.Sprintf("marketaction-%d-%s-%s", saleOfferId, seller, action))
	return fmt.Sprintf("%x", md5.Sum(data))
}
