package market

import (
	"sync"

	"github.com/shopspring/decimal"
	"github.com/tunego/nft-market/internal/entity"
	"github.com/tunego/nft-market/internal/event"
	"github.com/tunego/nft-market/internal/ledger"
	"github.com/tunego/nft-market/internal/registry"
	"go.uber.org/zap"
)

// ledgerPrecision is the native fixed point precision of the fungible
// ledger: 8 fractional digits. Every computed amount is truncated to this
// precision before any balance moves, so the proceeds identity
// price == platformFee + sum(royalties) + sellerProceeds holds exactly.
const ledgerPrecision = 8

var oneHundred = decimal.NewFromInt(100)

// Market is the marketplace engine. It owns the fee policy, the supported
// kind allowlist, per seller sale offer collections and the set of live
// admin capabilities. Every mutating operation executes as an indivisible
// unit behind the engine mutex: it either fully commits or returns an error
// with no observable state change.
type Market struct {
	mu sync.RWMutex

	assets   registry.AssetRegistry
	fungible ledger.FungibleLedger

	feePolicy      entity.FeePolicy
	supportedKinds map[entity.AssetKind]struct{}
	collections    map[string]*saleOfferCollection

	admins    map[uint64]string
	nextCapId uint64
}

// NewMarket creates an engine with the given initial fee policy and returns
// the bootstrap admin capability, held by the fee receiver account.
func NewMarket(assets registry.AssetRegistry, fungible ledger.FungibleLedger, feeReceiver string, feePercentage decimal.Decimal) (*Market, *AdminCapability, error) {
	if !validPercentage(feePercentage) {
		return nil, nil, ErrInvalidPercentage
	}

	m := &Market{
		assets:         assets,
		fungible:       fungible,
		feePolicy:      entity.FeePolicy{Receiver: feeReceiver, Percentage: feePercentage},
		supportedKinds: map[entity.AssetKind]struct{}{},
		collections:    map[string]*saleOfferCollection{},
		admins:         map[uint64]string{},
		nextCapId:      1,
	}
	admin := m.mintAdminCapability(feeReceiver)

	return m, admin, nil
}

// SetupCollection creates an empty sale offer collection for the account.
// Creating an offer does this implicitly; the explicit form exists so an
// account can be prepared ahead of its first listing.
func (m *Market) SetupCollection(account string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.collection(account)
}

func (m *Market) collection(account string) *saleOfferCollection {
	c, ok := m.collections[account]
	if !ok {
		c = newSaleOfferCollection(account)
		m.collections[account] = c
	}

	return c
}

// CreateSaleOffer escrows the seller's asset and stores a new active offer.
// The royalty schedule is snapshotted here; the platform fee percentage is
// only used as a guard and re-read at acceptance time.
func (m *Market) CreateSaleOffer(seller string, kind entity.AssetKind, tokenId uint64, price decimal.Decimal, royalties []entity.Royalty) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.supportedKinds[kind]; !ok {
		return 0, ErrUnsupportedAssetKind
	}
	if !price.IsPositive() {
		return 0, ErrInvalidPrice
	}
	if err := validateCut(m.feePolicy.Percentage, royalties); err != nil {
		return 0, err
	}

	asset, err := m.assets.Withdraw(seller, kind, tokenId)
	if err != nil {
		zap.L().With(
			zap.String("seller", seller),
			zap.String("assetKind", string(kind)),
			zap.Uint64("tokenId", tokenId),
			zap.Error(err),
		).Warn("Market: Failed to escrow asset")
		return 0, err
	}

	offer := &saleOffer{
		kind:      kind,
		asset:     asset,
		price:     price.Truncate(ledgerPrecision),
		royalties: snapshotRoyalties(royalties),
		seller:    seller,
	}
	id := m.collection(seller).insert(offer)

	event.EmitEvent(event.SaleOfferCreatedEvent, entity.SaleOfferCreated{
		SaleOfferId: id,
		AssetKind:   kind,
		TokenId:     tokenId,
		Seller:      seller,
		Price:       offer.price,
		Royalties:   offer.royalties,
	})

	return id, nil
}

// AcceptSaleOffer performs the atomic swap: one withdrawal of price from the
// buyer, split between the fee receiver, the royalty recipients and the
// seller, and the escrowed asset moved to the buyer. Every failable
// precondition is checked before the first balance moves.
func (m *Market) AcceptSaleOffer(buyer string, kind entity.AssetKind, offerId uint64, seller string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.collections[seller]
	if !ok {
		return ErrOfferNotFound
	}
	offer, ok := c.get(offerId)
	if !ok || offer.kind != kind {
		return ErrOfferNotFound
	}

	// The fee policy may have changed since listing; re-validate the total
	// cut against the percentage applied now.
	if err := validateCut(m.feePolicy.Percentage, offer.royalties); err != nil {
		return err
	}
	if m.fungible.Balance(buyer).LessThan(offer.price) {
		return ErrInsufficientFunds
	}

	platformFee := cutOf(offer.price, m.feePolicy.Percentage)
	royaltyAmounts := make([]decimal.Decimal, len(offer.royalties))
	royaltyTotal := decimal.Zero
	for i, royalty := range offer.royalties {
		royaltyAmounts[i] = cutOf(offer.price, royalty.Percentage)
		royaltyTotal = royaltyTotal.Add(royaltyAmounts[i])
	}
	sellerProceeds := offer.price.Sub(platformFee).Sub(royaltyTotal)

	payment, err := m.fungible.Withdraw(buyer, offer.price)
	if err != nil {
		return ErrInsufficientFunds
	}

	feeCut, err := payment.Split(platformFee)
	if err != nil {
		// Unreachable while cutOf truncates to ledger precision.
		m.fungible.Deposit(buyer, payment)
		return ErrFeesExceedTotal
	}
	m.fungible.Deposit(m.feePolicy.Receiver, feeCut)

	for i, royalty := range offer.royalties {
		royaltyCut, err := payment.Split(royaltyAmounts[i])
		if err != nil {
			m.fungible.Deposit(buyer, payment)
			return ErrFeesExceedTotal
		}
		m.fungible.Deposit(royalty.Receiver, royaltyCut)
	}

	// The remainder is exactly sellerProceeds.
	m.fungible.Deposit(seller, payment)

	c.remove(offerId)
	tokenId := offer.asset.TokenId()
	m.assets.Deposit(buyer, offer.asset)
	offer.asset = nil

	event.EmitEvent(event.SaleOfferAcceptedEvent, entity.SaleOfferAccepted{
		SaleOfferId:    offerId,
		AssetKind:      kind,
		TokenId:        tokenId,
		Seller:         seller,
		Buyer:          buyer,
		Price:          offer.price,
		PlatformFee:    platformFee,
		RoyaltyTotal:   royaltyTotal,
		SellerProceeds: sellerProceeds,
	})

	return nil
}

// RemoveSaleOffer takes an active offer off the market and returns the
// escrowed asset to the caller. Only the collection owner may remove.
func (m *Market) RemoveSaleOffer(caller string, offerId uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.collections[caller]
	if !ok {
		return ErrOfferNotFound
	}
	offer, ok := c.remove(offerId)
	if !ok {
		return ErrOfferNotFound
	}

	m.assets.Deposit(caller, offer.asset)
	asset := offer.asset
	offer.asset = nil

	event.EmitEvent(event.SaleOfferRemovedEvent, entity.SaleOfferRemoved{
		SaleOfferId: offerId,
		AssetKind:   offer.kind,
		TokenId:     asset.TokenId(),
		Seller:      caller,
	})

	return nil
}

// CollectionLength returns the number of active offers for the account.
func (m *Market) CollectionLength(account string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.collections[account]
	if !ok {
		return 0
	}

	return c.length()
}

// SaleOffers returns the active offers of one seller, ordered by id.
func (m *Market) SaleOffers(account string) []entity.SaleOffer {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.collections[account]
	if !ok {
		return []entity.SaleOffer{}
	}

	return c.list()
}

func (m *Market) FeePolicy() entity.FeePolicy {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.feePolicy
}

// SetFeePolicy atomically replaces the fee policy. Effective for every
// subsequent acceptance; listed offers keep their royalty schedules.
func (m *Market) SetFeePolicy(cap *AdminCapability, receiver string, percentage decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.isAdmin(cap) {
		return ErrUnauthorized
	}
	if !validPercentage(percentage) {
		return ErrInvalidPercentage
	}

	m.feePolicy = entity.FeePolicy{Receiver: receiver, Percentage: percentage.Truncate(ledgerPrecision)}

	event.EmitEvent(event.MarketFeeChangedEvent, entity.MarketFeeChanged{
		Receiver:   receiver,
		Percentage: m.feePolicy.Percentage,
	})

	return nil
}

// AddSupportedAssetKind allowlists a kind for new sale offers. Adding an
// already supported kind is a no-op.
func (m *Market) AddSupportedAssetKind(cap *AdminCapability, kind entity.AssetKind) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.isAdmin(cap) {
		return ErrUnauthorized
	}
	if _, ok := m.supportedKinds[kind]; ok {
		return nil
	}

	m.supportedKinds[kind] = struct{}{}

	event.EmitEvent(event.AssetKindSupportedEvent, entity.AssetKindSupported{AssetKind: kind})

	return nil
}

// SupportedAssetKind reports whether the market accepts listings of kind.
func (m *Market) SupportedAssetKind(kind entity.AssetKind) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.supportedKinds[kind]

	return ok
}

// CreateAdminCapability mints an additional, independent admin credential
// for newHolder. The creator keeps its own credential.
func (m *Market) CreateAdminCapability(cap *AdminCapability, newHolder string) (*AdminCapability, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.isAdmin(cap) {
		return nil, ErrUnauthorized
	}

	created := m.mintAdminCapability(newHolder)

	event.EmitEvent(event.AdminCreatedEvent, entity.AdminCreated{Holder: newHolder})

	return created, nil
}

// TransferAdminCapability moves admin authority to newHolder. The old token
// is revoked and a replacement is issued, so the number of live credentials
// is unchanged and any further use of the old token is unauthorized.
func (m *Market) TransferAdminCapability(cap *AdminCapability, newHolder string) (*AdminCapability, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.isAdmin(cap) {
		return nil, ErrUnauthorized
	}

	from := m.admins[cap.id]
	delete(m.admins, cap.id)
	created := m.mintAdminCapability(newHolder)

	event.EmitEvent(event.AdminTransferredEvent, entity.AdminTransferred{From: from, To: newHolder})

	return created, nil
}

// cutOf computes percentage of price truncated to the ledger's fixed point
// precision.
func cutOf(price, percentage decimal.Decimal) decimal.Decimal {
	return price.Mul(percentage).Div(oneHundred).Truncate(ledgerPrecision)
}

func validPercentage(percentage decimal.Decimal) bool {
	return !percentage.IsNegative() && percentage.LessThan(oneHundred)
}

// validateCut rejects schedules where the platform fee plus the royalty sum
// would reach or exceed the full price.
func validateCut(feePercentage decimal.Decimal, royalties []entity.Royalty) error {
	total := feePercentage
	for _, royalty := range royalties {
		if royalty.Percentage.IsNegative() {
			return ErrInvalidPercentage
		}
		total = total.Add(royalty.Percentage)
	}

	if total.GreaterThanOrEqual(oneHundred) {
		return ErrFeesExceedTotal
	}

	return nil
}

func snapshotRoyalties(royalties []entity.Royalty) []entity.Royalty {
	snapshot := make([]entity.Royalty, len(royalties))
	for i, royalty := range royalties {
		snapshot[i] = entity.Royalty{
			Receiver:   royalty.Receiver,
			Percentage: royalty.Percentage.Truncate(ledgerPrecision),
		}
	}

	return snapshot
}
