package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tunego/nft-market/internal/entity"
)

func TestMintAndOwnership(t *testing.T) {
	r := NewAssetRegistry()

	first := r.Mint("alice", entity.TuneGONFTKind)
	second := r.Mint("alice", entity.TuneGONFTKind)

	assert.NotEqual(t, first, second)
	assert.True(t, r.Owns("alice", entity.TuneGONFTKind, first))
	assert.Equal(t, 2, r.CollectionLength("alice", entity.TuneGONFTKind))
	assert.Equal(t, 0, r.CollectionLength("alice", entity.TicalUniverseKind))
}

func TestWithdrawMovesExclusively(t *testing.T) {
	r := NewAssetRegistry()
	tokenId := r.Mint("alice", entity.TuneGONFTKind)

	asset, err := r.Withdraw("alice", entity.TuneGONFTKind, tokenId)
	require.NoError(t, err)
	require.Equal(t, tokenId, asset.TokenId())
	require.Equal(t, entity.TuneGONFTKind, asset.Kind())

	// Nobody holds it while withdrawn.
	assert.False(t, r.Owns("alice", entity.TuneGONFTKind, tokenId))
	assert.Equal(t, 0, r.CollectionLength("alice", entity.TuneGONFTKind))

	// A second withdrawal of the same token fails.
	_, err = r.Withdraw("alice", entity.TuneGONFTKind, tokenId)
	assert.ErrorIs(t, err, ErrAssetNotFound)

	r.Deposit("bob", asset)
	assert.True(t, r.Owns("bob", entity.TuneGONFTKind, tokenId))
}

func TestWithdraw_NotOwner(t *testing.T) {
	r := NewAssetRegistry()
	tokenId := r.Mint("alice", entity.TuneGONFTKind)

	_, err := r.Withdraw("bob", entity.TuneGONFTKind, tokenId)
	assert.ErrorIs(t, err, ErrAssetNotFound)
	assert.True(t, r.Owns("alice", entity.TuneGONFTKind, tokenId))
}

func TestTokenIdsPerKind(t *testing.T) {
	r := NewAssetRegistry()

	nft := r.Mint("alice", entity.TuneGONFTKind)
	tical := r.Mint("alice", entity.TicalUniverseKind)

	// Each kind has its own id sequence.
	assert.Equal(t, uint64(0), nft)
	assert.Equal(t, uint64(0), tical)
}
