package event

type Type string

const (
	SaleOfferCreatedEvent   Type = "SaleOfferCreatedEvent"
	SaleOfferAcceptedEvent  Type = "SaleOfferAcceptedEvent"
	SaleOfferRemovedEvent   Type = "SaleOfferRemovedEvent"
	MarketFeeChangedEvent   Type = "MarketFeeChangedEvent"
	AssetKindSupportedEvent Type = "AssetKindSupportedEvent"
	AdminCreatedEvent       Type = "AdminCreatedEvent"
	AdminTransferredEvent   Type = "AdminTransferredEvent"
)
