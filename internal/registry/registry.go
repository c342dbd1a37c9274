package registry

import (
	"errors"
	"sync"

	"github.com/tunego/nft-market/internal/entity"
)

var ErrAssetNotFound = errors.New("asset not found")

// Asset is an opaque non-fungible unit. It is owned by exactly one holder at
// a time and moved by pointer; the market never inspects it beyond kind and
// token id.
type Asset struct {
	kind    entity.AssetKind
	tokenId uint64
}

func (a *Asset) Kind() entity.AssetKind {
	return a.kind
}

func (a *Asset) TokenId() uint64 {
	return a.tokenId
}

// AssetRegistry tracks asset ownership per account and kind. A successful
// Withdraw removes the asset from the account atomically with handing it to
// the caller, so no two holders ever observe the same asset.
type AssetRegistry interface {
	Mint(account string, kind entity.AssetKind) uint64
	Withdraw(account string, kind entity.AssetKind, tokenId uint64) (*Asset, error)
	Deposit(account string, asset *Asset)
	Owns(account string, kind entity.AssetKind, tokenId uint64) bool
	CollectionLength(account string, kind entity.AssetKind) int
}

type holding struct {
	kind    entity.AssetKind
	tokenId uint64
}

type assetRegistry struct {
	mu       sync.Mutex
	assets   map[holding]*Asset
	owners   map[holding]string
	nextIds  map[entity.AssetKind]uint64
}

func NewAssetRegistry() AssetRegistry {
	return &assetRegistry{
		assets:  map[holding]*Asset{},
		owners:  map[holding]string{},
		nextIds: map[entity.AssetKind]uint64{},
	}
}

func (r *assetRegistry) Mint(account string, kind entity.AssetKind) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	tokenId := r.nextIds[kind]
	r.nextIds[kind]++

	key := holding{kind, tokenId}
	r.assets[key] = &Asset{kind: kind, tokenId: tokenId}
	r.owners[key] = account

	return tokenId
}

func (r *assetRegistry) Withdraw(account string, kind entity.AssetKind, tokenId uint64) (*Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := holding{kind, tokenId}
	if r.owners[key] != account {
		return nil, ErrAssetNotFound
	}

	asset := r.assets[key]
	delete(r.assets, key)
	delete(r.owners, key)

	return asset, nil
}

func (r *assetRegistry) Deposit(account string, asset *Asset) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := holding{asset.kind, asset.tokenId}
	r.assets[key] = asset
	r.owners[key] = account
}

func (r *assetRegistry) Owns(account string, kind entity.AssetKind, tokenId uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.owners[holding{kind, tokenId}] == account
}

func (r *assetRegistry) CollectionLength(account string, kind entity.AssetKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	length := 0
	for key, owner := range r.owners {
		if owner == account && key.kind == kind {
			length++
		}
	}

	return length
}
