package market

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tunego/nft-market/internal/entity"
	"github.com/tunego/nft-market/internal/ledger"
	"github.com/tunego/nft-market/internal/registry"
)

const (
	tunego = "tunego"
	seller = "seller"
	buyer  = "buyer"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

type fixture struct {
	market   *Market
	admin    *AdminCapability
	assets   registry.AssetRegistry
	fungible ledger.FungibleLedger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	assets := registry.NewAssetRegistry()
	fungible := ledger.NewFungibleLedger()

	m, admin, err := NewMarket(assets, fungible, tunego, dec("2.5"))
	require.NoError(t, err)

	return &fixture{market: m, admin: admin, assets: assets, fungible: fungible}
}

func (f *fixture) mintListed(t *testing.T, price string, royalties []entity.Royalty) uint64 {
	t.Helper()

	require.NoError(t, f.market.AddSupportedAssetKind(f.admin, entity.TuneGONFTKind))
	tokenId := f.assets.Mint(seller, entity.TuneGONFTKind)

	offerId, err := f.market.CreateSaleOffer(seller, entity.TuneGONFTKind, tokenId, dec(price), royalties)
	require.NoError(t, err)

	return offerId
}

func TestNewMarket_InvalidFeePercentage(t *testing.T) {
	assets := registry.NewAssetRegistry()
	fungible := ledger.NewFungibleLedger()

	_, _, err := NewMarket(assets, fungible, tunego, dec("100"))
	assert.ErrorIs(t, err, ErrInvalidPercentage)

	_, _, err = NewMarket(assets, fungible, tunego, dec("-1"))
	assert.ErrorIs(t, err, ErrInvalidPercentage)
}

func TestCreateSaleOffer_UnsupportedAssetKind(t *testing.T) {
	f := newFixture(t)
	tokenId := f.assets.Mint(seller, entity.TuneGONFTKind)

	_, err := f.market.CreateSaleOffer(seller, entity.TuneGONFTKind, tokenId, dec("1.11"), nil)
	assert.ErrorIs(t, err, ErrUnsupportedAssetKind)

	// The asset never left the seller.
	assert.True(t, f.assets.Owns(seller, entity.TuneGONFTKind, tokenId))
}

func TestCreateSaleOffer_SupportedAfterAdminAdds(t *testing.T) {
	f := newFixture(t)
	tokenId := f.assets.Mint(seller, entity.TuneGONFTKind)

	_, err := f.market.CreateSaleOffer(seller, entity.TuneGONFTKind, tokenId, dec("1.11"), nil)
	require.ErrorIs(t, err, ErrUnsupportedAssetKind)

	require.NoError(t, f.market.AddSupportedAssetKind(f.admin, entity.TuneGONFTKind))

	offerId, err := f.market.CreateSaleOffer(seller, entity.TuneGONFTKind, tokenId, dec("1.11"), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, f.market.CollectionLength(seller))
	assert.False(t, f.assets.Owns(seller, entity.TuneGONFTKind, tokenId))
	assert.Equal(t, uint64(0), offerId)
}

func TestCreateSaleOffer_LegacyKinds(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.market.AddSupportedAssetKind(f.admin, entity.TuneGOKind))
	require.NoError(t, f.market.AddSupportedAssetKind(f.admin, entity.TicalUniverseKind))

	tunegoToken := f.assets.Mint(seller, entity.TuneGOKind)
	ticalToken := f.assets.Mint(seller, entity.TicalUniverseKind)

	_, err := f.market.CreateSaleOffer(seller, entity.TuneGOKind, tunegoToken, dec("1.11"), nil)
	require.NoError(t, err)
	_, err = f.market.CreateSaleOffer(seller, entity.TicalUniverseKind, ticalToken, dec("1.11"), nil)
	require.NoError(t, err)

	assert.Equal(t, 2, f.market.CollectionLength(seller))
}

func TestCreateSaleOffer_InvalidPrice(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.market.AddSupportedAssetKind(f.admin, entity.TuneGONFTKind))
	tokenId := f.assets.Mint(seller, entity.TuneGONFTKind)

	_, err := f.market.CreateSaleOffer(seller, entity.TuneGONFTKind, tokenId, dec("0"), nil)
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = f.market.CreateSaleOffer(seller, entity.TuneGONFTKind, tokenId, dec("-1"), nil)
	assert.ErrorIs(t, err, ErrInvalidPrice)

	assert.True(t, f.assets.Owns(seller, entity.TuneGONFTKind, tokenId))
}

func TestCreateSaleOffer_AssetNotOwned(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.market.AddSupportedAssetKind(f.admin, entity.TuneGONFTKind))
	tokenId := f.assets.Mint("somebodyElse", entity.TuneGONFTKind)

	_, err := f.market.CreateSaleOffer(seller, entity.TuneGONFTKind, tokenId, dec("1.11"), nil)
	assert.ErrorIs(t, err, registry.ErrAssetNotFound)
	assert.Equal(t, 0, f.market.CollectionLength(seller))
}

func TestCreateSaleOffer_FeesExceedTotal(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.market.AddSupportedAssetKind(f.admin, entity.TuneGONFTKind))
	tokenId := f.assets.Mint(seller, entity.TuneGONFTKind)

	// 47.5 + 50 royalties + 2.5 fee = 100 -> rejected.
	_, err := f.market.CreateSaleOffer(seller, entity.TuneGONFTKind, tokenId, dec("100"), []entity.Royalty{
		{Receiver: "recipient1", Percentage: dec("47.5")},
		{Receiver: "recipient2", Percentage: dec("50")},
	})
	assert.ErrorIs(t, err, ErrFeesExceedTotal)
	assert.True(t, f.assets.Owns(seller, entity.TuneGONFTKind, tokenId))

	// 42.49 + 50 royalties + 2.5 fee = 94.99 -> accepted.
	_, err = f.market.CreateSaleOffer(seller, entity.TuneGONFTKind, tokenId, dec("100"), []entity.Royalty{
		{Receiver: "recipient1", Percentage: dec("42.49")},
		{Receiver: "recipient2", Percentage: dec("50")},
	})
	assert.NoError(t, err)
}

func TestCreateSaleOffer_NegativeRoyalty(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.market.AddSupportedAssetKind(f.admin, entity.TuneGONFTKind))
	tokenId := f.assets.Mint(seller, entity.TuneGONFTKind)

	_, err := f.market.CreateSaleOffer(seller, entity.TuneGONFTKind, tokenId, dec("100"), []entity.Royalty{
		{Receiver: "recipient1", Percentage: dec("-1")},
	})
	assert.ErrorIs(t, err, ErrInvalidPercentage)
}

func TestCreateSaleOffer_MonotonicIds(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.market.AddSupportedAssetKind(f.admin, entity.TuneGONFTKind))

	first := f.assets.Mint(seller, entity.TuneGONFTKind)
	second := f.assets.Mint(seller, entity.TuneGONFTKind)

	firstId, err := f.market.CreateSaleOffer(seller, entity.TuneGONFTKind, first, dec("1"), nil)
	require.NoError(t, err)
	require.NoError(t, f.market.RemoveSaleOffer(seller, firstId))

	secondId, err := f.market.CreateSaleOffer(seller, entity.TuneGONFTKind, second, dec("1"), nil)
	require.NoError(t, err)

	// Ids are never reused, even after a removal.
	assert.Greater(t, secondId, firstId)
}

func TestAcceptSaleOffer(t *testing.T) {
	f := newFixture(t)
	offerId := f.mintListed(t, "100", nil)
	f.fungible.Mint(buyer, dec("1000"))

	require.NoError(t, f.market.AcceptSaleOffer(buyer, entity.TuneGONFTKind, offerId, seller))

	assert.True(t, f.fungible.Balance(buyer).Equal(dec("900")))
	assert.True(t, f.fungible.Balance(seller).Equal(dec("97.5")))
	assert.True(t, f.fungible.Balance(tunego).Equal(dec("2.5")))

	assert.Equal(t, 0, f.market.CollectionLength(seller))
	assert.Equal(t, 1, f.assets.CollectionLength(buyer, entity.TuneGONFTKind))
	assert.Equal(t, 0, f.assets.CollectionLength(seller, entity.TuneGONFTKind))
}

func TestAcceptSaleOffer_WithRoyalties(t *testing.T) {
	f := newFixture(t)
	offerId := f.mintListed(t, "100", []entity.Royalty{
		{Receiver: "recipient1", Percentage: dec("2.5")},
		{Receiver: "recipient2", Percentage: dec("3.5")},
	})
	f.fungible.Mint(buyer, dec("1000"))

	require.NoError(t, f.market.AcceptSaleOffer(buyer, entity.TuneGONFTKind, offerId, seller))

	assert.True(t, f.fungible.Balance(buyer).Equal(dec("900")))
	assert.True(t, f.fungible.Balance(tunego).Equal(dec("2.5")))
	assert.True(t, f.fungible.Balance("recipient1").Equal(dec("2.5")))
	assert.True(t, f.fungible.Balance("recipient2").Equal(dec("3.5")))
	assert.True(t, f.fungible.Balance(seller).Equal(dec("91.5")))
}

func TestAcceptSaleOffer_SplitIdentity(t *testing.T) {
	f := newFixture(t)

	// An awkward price times awkward percentages: the payouts must still sum
	// to exactly the price at 8 fractional digits.
	price := dec("33.33333333")
	offerId := f.mintListed(t, price.String(), []entity.Royalty{
		{Receiver: "recipient1", Percentage: dec("7.77777777")},
		{Receiver: "recipient2", Percentage: dec("11.11111111")},
	})
	f.fungible.Mint(buyer, dec("1000"))

	require.NoError(t, f.market.AcceptSaleOffer(buyer, entity.TuneGONFTKind, offerId, seller))

	payout := f.fungible.Balance(seller).
		Add(f.fungible.Balance(tunego)).
		Add(f.fungible.Balance("recipient1")).
		Add(f.fungible.Balance("recipient2"))

	assert.True(t, payout.Equal(price), "expected %s, got %s", price, payout)
	assert.True(t, f.fungible.Balance(buyer).Equal(dec("1000").Sub(price)))
}

func TestAcceptSaleOffer_AppliesFeeAtAcceptanceTime(t *testing.T) {
	f := newFixture(t)
	offerId := f.mintListed(t, "100", nil)
	f.fungible.Mint(buyer, dec("1000"))

	// Fee changes after listing but before acceptance.
	require.NoError(t, f.market.SetFeePolicy(f.admin, "newReceiver", dec("5.0")))

	require.NoError(t, f.market.AcceptSaleOffer(buyer, entity.TuneGONFTKind, offerId, seller))

	assert.True(t, f.fungible.Balance(seller).Equal(dec("95")))
	assert.True(t, f.fungible.Balance("newReceiver").Equal(dec("5")))
	assert.True(t, f.fungible.Balance(tunego).Equal(dec("0")))
}

func TestAcceptSaleOffer_FeeChangeCanInvalidateOffer(t *testing.T) {
	f := newFixture(t)
	offerId := f.mintListed(t, "100", []entity.Royalty{
		{Receiver: "recipient1", Percentage: dec("50")},
		{Receiver: "recipient2", Percentage: dec("40")},
	})
	f.fungible.Mint(buyer, dec("1000"))

	// 90 royalties + 15 fee >= 100: the cut is re-validated at acceptance.
	require.NoError(t, f.market.SetFeePolicy(f.admin, tunego, dec("15")))

	err := f.market.AcceptSaleOffer(buyer, entity.TuneGONFTKind, offerId, seller)
	assert.ErrorIs(t, err, ErrFeesExceedTotal)

	// Nothing moved, the offer is still active.
	assert.True(t, f.fungible.Balance(buyer).Equal(dec("1000")))
	assert.Equal(t, 1, f.market.CollectionLength(seller))
}

func TestAcceptSaleOffer_InsufficientFunds(t *testing.T) {
	f := newFixture(t)
	offerId := f.mintListed(t, "100", nil)
	f.fungible.Mint(buyer, dec("10"))

	err := f.market.AcceptSaleOffer(buyer, entity.TuneGONFTKind, offerId, seller)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	// Offer untouched; retry succeeds once the buyer is funded.
	assert.Equal(t, 1, f.market.CollectionLength(seller))
	assert.True(t, f.fungible.Balance(buyer).Equal(dec("10")))

	f.fungible.Mint(buyer, dec("90"))
	assert.NoError(t, f.market.AcceptSaleOffer(buyer, entity.TuneGONFTKind, offerId, seller))
}

func TestAcceptSaleOffer_UnknownOffer(t *testing.T) {
	f := newFixture(t)
	f.fungible.Mint(buyer, dec("1000"))

	err := f.market.AcceptSaleOffer(buyer, entity.TuneGONFTKind, 42, seller)
	assert.ErrorIs(t, err, ErrOfferNotFound)
}

func TestAcceptSaleOffer_WrongKind(t *testing.T) {
	f := newFixture(t)
	offerId := f.mintListed(t, "100", nil)
	f.fungible.Mint(buyer, dec("1000"))

	err := f.market.AcceptSaleOffer(buyer, entity.TicalUniverseKind, offerId, seller)
	assert.ErrorIs(t, err, ErrOfferNotFound)
}

func TestAcceptSaleOffer_RemovedOffer(t *testing.T) {
	f := newFixture(t)
	offerId := f.mintListed(t, "100", nil)
	f.fungible.Mint(buyer, dec("1000"))

	require.NoError(t, f.market.RemoveSaleOffer(seller, offerId))

	err := f.market.AcceptSaleOffer(buyer, entity.TuneGONFTKind, offerId, seller)
	assert.ErrorIs(t, err, ErrOfferNotFound)
	assert.True(t, f.fungible.Balance(buyer).Equal(dec("1000")))
}

func TestRemoveSaleOffer(t *testing.T) {
	f := newFixture(t)
	offerId := f.mintListed(t, "1.11", nil)
	require.Equal(t, 1, f.market.CollectionLength(seller))

	require.NoError(t, f.market.RemoveSaleOffer(seller, offerId))

	assert.Equal(t, 0, f.market.CollectionLength(seller))
	assert.Equal(t, 1, f.assets.CollectionLength(seller, entity.TuneGONFTKind))

	// Removal is terminal for the id.
	assert.ErrorIs(t, f.market.RemoveSaleOffer(seller, offerId), ErrOfferNotFound)
}

func TestRemoveSaleOffer_NotOwner(t *testing.T) {
	f := newFixture(t)
	offerId := f.mintListed(t, "1.11", nil)

	assert.ErrorIs(t, f.market.RemoveSaleOffer("intruder", offerId), ErrOfferNotFound)
	assert.Equal(t, 1, f.market.CollectionLength(seller))
}

func TestSetFeePolicy(t *testing.T) {
	f := newFixture(t)

	policy := f.market.FeePolicy()
	require.Equal(t, tunego, policy.Receiver)
	require.True(t, policy.Percentage.Equal(dec("2.5")))

	require.NoError(t, f.market.SetFeePolicy(f.admin, "newReceiver", dec("5.0")))

	policy = f.market.FeePolicy()
	assert.Equal(t, "newReceiver", policy.Receiver)
	assert.True(t, policy.Percentage.Equal(dec("5.0")))
}

func TestSetFeePolicy_InvalidPercentage(t *testing.T) {
	f := newFixture(t)

	assert.ErrorIs(t, f.market.SetFeePolicy(f.admin, tunego, dec("100")), ErrInvalidPercentage)
	assert.ErrorIs(t, f.market.SetFeePolicy(f.admin, tunego, dec("-0.1")), ErrInvalidPercentage)
}

func TestSetFeePolicy_Unauthorized(t *testing.T) {
	f := newFixture(t)

	assert.ErrorIs(t, f.market.SetFeePolicy(nil, tunego, dec("5")), ErrUnauthorized)
	assert.ErrorIs(t, f.market.SetFeePolicy(&AdminCapability{}, tunego, dec("5")), ErrUnauthorized)
}

func TestAddSupportedAssetKind_Idempotent(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.market.AddSupportedAssetKind(f.admin, entity.TuneGONFTKind))
	require.NoError(t, f.market.AddSupportedAssetKind(f.admin, entity.TuneGONFTKind))
	assert.True(t, f.market.SupportedAssetKind(entity.TuneGONFTKind))
	assert.False(t, f.market.SupportedAssetKind(entity.TicalUniverseKind))
}
