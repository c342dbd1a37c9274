package entity

// AssetKind names a contract qualified NFT type. Kind equality is exact
// identifier match.
type AssetKind string

const (
	TuneGONFTKind     AssetKind = "TuneGONFT"
	TuneGOKind        AssetKind = "TuneGO"
	TicalUniverseKind AssetKind = "TicalUniverse"
)
