package ledger

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrVaultUnderflow = errors.New("vault underflow")

// Vault is a linear payment token. It is created by a ledger withdrawal,
// split into smaller vaults during fee distribution and destroyed by a
// deposit. A vault is never copied; once drained it holds zero.
type Vault struct {
	amount decimal.Decimal
}

func newVault(amount decimal.Decimal) *Vault {
	return &Vault{amount: amount}
}

func (v *Vault) Amount() decimal.Decimal {
	return v.amount
}

// Split moves amount out of the vault into a new one. The source keeps the
// remainder, so the sum over all vaults is preserved exactly.
func (v *Vault) Split(amount decimal.Decimal) (*Vault, error) {
	if amount.IsNegative() || amount.GreaterThan(v.amount) {
		return nil, ErrVaultUnderflow
	}

	v.amount = v.amount.Sub(amount)

	return newVault(amount), nil
}

func (v *Vault) drain() decimal.Decimal {
	amount := v.amount
	v.amount = decimal.Zero

	return amount
}
