package market

import (
	"errors"
)

var (
	ErrUnsupportedAssetKind = errors.New("unsupported asset kind")
	ErrInvalidPrice         = errors.New("sale offer price must be greater than zero")
	ErrInvalidPercentage    = errors.New("percentage must be in range [0, 100)")
	ErrFeesExceedTotal      = errors.New("fees and royalties exceed sale price")
	ErrOfferNotFound        = errors.New("sale offer not found")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrUnauthorized         = errors.New("unauthorized")
)
