package economy

import (
	"context"
	"fmt"

	"github.com/louisbranch/emberarena/internal/arena/domain"
)

// MemoryBank is an in-process CurrencyService used by the simulator and by
// tests. Reward transfers draw from an unbounded pool; identity balances
// start at zero unless deposited.
type MemoryBank struct {
	balances map[domain.Identity]int64
}

// NewMemoryBank creates an empty bank.
func NewMemoryBank() *MemoryBank {
	return &MemoryBank{balances: map[domain.Identity]int64{}}
}

// Deposit credits an identity. Simulation setup helper.
func (b *MemoryBank) Deposit(identity domain.Identity, amount int64) {
	b.balances[identity] += amount
}

// BalanceOf implements CurrencyService.
func (b *MemoryBank) BalanceOf(_ context.Context, identity domain.Identity) (int64, error) {
	return b.balances[identity], nil
}

// Transfer implements CurrencyService. The reward pool is unbounded.
func (b *MemoryBank) Transfer(_ context.Context, to domain.Identity, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("negative transfer amount %d", amount)
	}
	b.balances[to] += amount
	return nil
}

// TransferFrom implements CurrencyService.
func (b *MemoryBank) TransferFrom(_ context.Context, from, to domain.Identity, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("negative transfer amount %d", amount)
	}
	if b.balances[from] < amount {
		return fmt.Errorf("balance %d below transfer amount %d", b.balances[from], amount)
	}
	b.balances[from] -= amount
	b.balances[to] += amount
	return nil
}
