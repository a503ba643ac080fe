// Package ledger implements the arena's authoritative state machine: player
// registry, equipment ownership, battle resolution, and the marketplace.
//
// The ledger is a sequential state-transition processor. Every mutating
// operation runs as one indivisible unit: multi-step transitions are staged
// on cloned records and committed only after any external currency call
// succeeds, so a failure partway leaves the ledger exactly as it was. A busy
// guard rejects re-entrant calls arriving through the currency collaborator
// mid-operation. The hosting runtime (internal/arena/app) provides the single
// serialization point; the ledger itself is not safe for concurrent use.
package ledger

import (
	"fmt"
	"time"

	"github.com/louisbranch/emberarena/internal/arena/domain"
	"github.com/louisbranch/emberarena/internal/arena/economy"
	apperrors "github.com/louisbranch/emberarena/internal/platform/errors"
	"github.com/louisbranch/emberarena/internal/random"
)

// Ledger owns the shared arena state. Create one with New; the zero value is
// not usable.
type Ledger struct {
	admin    domain.Identity
	currency economy.CurrencyService
	bonuses  random.Provider
	clock    func() time.Time

	// busy rejects nested mutating calls while an operation is in flight,
	// including calls re-entering through the currency collaborator.
	busy bool

	players      map[domain.Identity]*domain.Player
	equipment    map[uint64]*domain.Equipment
	holders      map[uint64]domain.Identity
	nextPlayerID uint64
	nextItemID   uint64
}

// Config carries the ledger's collaborators.
type Config struct {
	// Admin is the only identity allowed to perform privileged mints.
	Admin domain.Identity
	// Currency is the external balance/transfer collaborator.
	Currency economy.CurrencyService
	// Bonuses supplies battle offsets and mint stat bonuses. Defaults to the
	// clock-derived provider when nil.
	Bonuses random.Provider
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// New creates an empty ledger.
func New(cfg Config) *Ledger {
	bonuses := cfg.Bonuses
	if bonuses == nil {
		bonuses = random.ClockProvider{}
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Ledger{
		admin:     cfg.Admin,
		currency:  cfg.Currency,
		bonuses:   bonuses,
		clock:     clock,
		players:   map[domain.Identity]*domain.Player{},
		equipment: map[uint64]*domain.Equipment{},
		holders:   map[uint64]domain.Identity{},
	}
}

// HeldItem pairs a persisted equipment record with its current holder.
type HeldItem struct {
	Item   domain.Equipment
	Holder domain.Identity
}

// Load seeds the ledger from persisted records and resumes the id sequences
// past the highest persisted values. It must run before any operation.
func (l *Ledger) Load(players []domain.Player, items []HeldItem) error {
	for _, p := range players {
		if _, ok := l.players[p.Identity]; ok {
			return fmt.Errorf("duplicate player record for %s", p.Identity)
		}
		record := p.Clone()
		l.players[p.Identity] = &record
		if p.ID > l.nextPlayerID {
			l.nextPlayerID = p.ID
		}
	}
	for _, held := range items {
		if _, ok := l.equipment[held.Item.ID]; ok {
			return fmt.Errorf("duplicate equipment record for item %d", held.Item.ID)
		}
		item := held.Item
		l.equipment[item.ID] = &item
		l.holders[item.ID] = held.Holder
		if item.ID > l.nextItemID {
			l.nextItemID = item.ID
		}
	}
	return nil
}

// begin acquires the operation guard.
func (l *Ledger) begin() error {
	if l.busy {
		return apperrors.New(apperrors.CodeReentrantCall, "ledger operation already in progress")
	}
	l.busy = true
	return nil
}

// end releases the operation guard.
func (l *Ledger) end() {
	l.busy = false
}

// power computes a player's live combat strength from their equipped items.
func (l *Ledger) power(p *domain.Player) int {
	items := make([]domain.Equipment, 0, len(p.Equipped))
	for _, id := range p.Equipped {
		if item, ok := l.equipment[id]; ok {
			items = append(items, *item)
		}
	}
	return domain.Power(p.Level, items)
}
