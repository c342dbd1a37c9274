package market

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/tunego/nft-market/internal/entity"
	"github.com/tunego/nft-market/internal/registry"
)

// saleOffer is an active listing together with its escrowed asset. The asset
// is exclusively owned by the offer between creation and acceptance/removal.
type saleOffer struct {
	id        uint64
	kind      entity.AssetKind
	asset     *registry.Asset
	price     decimal.Decimal
	royalties []entity.Royalty
	seller    string
}

// saleOfferCollection owns every active offer of one seller. Offer ids are
// assigned monotonically per collection and never reused; removal deletes the
// entry, so an id is only ever present while its offer is active.
type saleOfferCollection struct {
	owner  string
	offers map[uint64]*saleOffer
	nextId uint64
}

func newSaleOfferCollection(owner string) *saleOfferCollection {
	return &saleOfferCollection{owner: owner, offers: map[uint64]*saleOffer{}}
}

func (c *saleOfferCollection) insert(offer *saleOffer) uint64 {
	offer.id = c.nextId
	c.nextId++
	c.offers[offer.id] = offer

	return offer.id
}

func (c *saleOfferCollection) get(id uint64) (*saleOffer, bool) {
	offer, ok := c.offers[id]

	return offer, ok
}

func (c *saleOfferCollection) remove(id uint64) (*saleOffer, bool) {
	offer, ok := c.offers[id]
	if ok {
		delete(c.offers, id)
	}

	return offer, ok
}

func (c *saleOfferCollection) length() int {
	return len(c.offers)
}

func (c *saleOfferCollection) list() []entity.SaleOffer {
	offers := make([]entity.SaleOffer, 0, len(c.offers))
	for _, offer := range c.offers {
		offers = append(offers, entity.SaleOffer{
			Id:        offer.id,
			AssetKind: offer.kind,
			TokenId:   offer.asset.TokenId(),
			Seller:    c.owner,
			Price:     offer.price,
			Royalties: offer.royalties,
		})
	}

	sort.Slice(offers, func(i, j int) bool { return offers[i].Id < offers[j].Id })

	return offers
}
