package ledger

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var ErrInsufficientBalance = errors.New("insufficient balance")

// FungibleLedger holds fungible token balances per account. Withdrawals
// produce a Vault which must be deposited somewhere; the engine treats these
// calls as synchronous and atomic.
type FungibleLedger interface {
	Mint(account string, amount decimal.Decimal)
	Withdraw(account string, amount decimal.Decimal) (*Vault, error)
	Deposit(account string, vault *Vault)
	Balance(account string) decimal.Decimal
}

type fungibleLedger struct {
	mu       sync.Mutex
	balances map[string]decimal.Decimal
}

func NewFungibleLedger() FungibleLedger {
	return &fungibleLedger{balances: map[string]decimal.Decimal{}}
}

func (l *fungibleLedger) Mint(account string, amount decimal.Decimal) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.balances[account] = l.balances[account].Add(amount)
}

func (l *fungibleLedger) Withdraw(account string, amount decimal.Decimal) (*Vault, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	balance := l.balances[account]
	if balance.LessThan(amount) {
		zap.L().With(
			zap.String("account", account),
			zap.String("amount", amount.String()),
			zap.String("balance", balance.String()),
		).Debug("FungibleLedger: Withdrawal exceeds balance")
		return nil, ErrInsufficientBalance
	}

	l.balances[account] = balance.Sub(amount)

	return newVault(amount), nil
}

func (l *fungibleLedger) Deposit(account string, vault *Vault) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.balances[account] = l.balances[account].Add(vault.drain())
}

func (l *fungibleLedger) Balance(account string) decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.balances[account]
}
