// Package app hosts the arena runtime: it serializes access to the ledger,
// journals committed records to the store, emits audit events, and traces
// each operation.
package app

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/emberarena/internal/arena/domain"
	"github.com/louisbranch/emberarena/internal/arena/economy"
	"github.com/louisbranch/emberarena/internal/arena/ledger"
	"github.com/louisbranch/emberarena/internal/arena/observability/audit"
	"github.com/louisbranch/emberarena/internal/arena/storage"
	apperrors "github.com/louisbranch/emberarena/internal/platform/errors"
	"github.com/louisbranch/emberarena/internal/random"
)

// Arena is the process-wide runtime. All operations are safe for concurrent
// use; a single mutex serializes ledger access so every ledger transition
// stays indivisible.
type Arena struct {
	mu sync.Mutex
	// settling is set while the ledger is calling out to the currency
	// service. The collaborator runs with mu held, so a nested arena call
	// from inside it must be rejected before the lock, not queued on it.
	settling atomic.Bool
	ledger   *ledger.Ledger
	store    storage.Store
	audit    *audit.Emitter
	tracer   trace.Tracer
}

// Config carries the arena runtime dependencies.
type Config struct {
	// Admin is the identity allowed to perform privileged mints.
	Admin domain.Identity
	// Currency is the external balance/transfer collaborator. Required.
	Currency economy.CurrencyService
	// Bonuses defaults to the clock-derived provider when nil.
	Bonuses random.Provider
	// Clock defaults to time.Now.
	Clock func() time.Time
	// Store receives write-through copies of committed records and seeds the
	// ledger at startup. Optional; without it the arena is memory-only.
	Store storage.Store
}

// New builds the runtime and, when a store is configured, reloads persisted
// state into the ledger.
func New(ctx context.Context, cfg Config) (*Arena, error) {
	if cfg.Currency == nil {
		return nil, fmt.Errorf("currency service is required")
	}
	if cfg.Admin == "" {
		return nil, fmt.Errorf("admin identity is required")
	}

	led := ledger.New(ledger.Config{
		Admin:    cfg.Admin,
		Currency: cfg.Currency,
		Bonuses:  cfg.Bonuses,
		Clock:    cfg.Clock,
	})

	a := &Arena{
		ledger: led,
		store:  cfg.Store,
		audit:  audit.NewEmitter(cfg.Store),
		tracer: otel.Tracer("github.com/louisbranch/emberarena/internal/arena/app"),
	}
	if cfg.Store == nil {
		return a, nil
	}

	players, err := cfg.Store.LoadPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load players: %w", err)
	}
	records, err := cfg.Store.LoadEquipment(ctx)
	if err != nil {
		return nil, fmt.Errorf("load equipment: %w", err)
	}
	held := make([]ledger.HeldItem, 0, len(records))
	for _, record := range records {
		held = append(held, ledger.HeldItem{Item: record.Item, Holder: record.Holder})
	}
	if err := led.Load(players, held); err != nil {
		return nil, fmt.Errorf("seed ledger: %w", err)
	}
	return a, nil
}

// span wraps an operation in a trace span and records its outcome.
func (a *Arena) span(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	ctx, span := a.tracer.Start(ctx, name)
	defer span.End()
	err := fn(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// guard rejects calls re-entering the arena from inside a currency
// settlement. Such a call holds no lock yet but runs on the flow that does,
// so letting it queue on mu would block forever.
func (a *Arena) guard() error {
	if a.settling.Load() {
		return apperrors.New(apperrors.CodeReentrantCall, "arena operation already in progress")
	}
	return nil
}

// journal writes a committed record copy to the store. The ledger is
// authoritative; a journaling failure is logged, not surfaced, so a degraded
// store never rejects an already-committed transition.
func (a *Arena) journalPlayer(ctx context.Context, identity domain.Identity) {
	if a.store == nil {
		return
	}
	stats, err := a.ledger.PlayerStats(identity)
	if err != nil {
		// Minting for a not-yet-registered identity is legal; there is no
		// player record to journal.
		if !apperrors.IsCode(err, apperrors.CodeNotRegistered) {
			log.Printf("journal player %s: %v", identity, err)
		}
		return
	}
	player := domain.Player{
		ID:         stats.PlayerID,
		Identity:   stats.Identity,
		Level:      stats.Level,
		Experience: stats.Experience,
		Wins:       stats.Wins,
		Losses:     stats.Losses,
		Equipped:   stats.Equipped,
		Active:     true,
	}
	if err := a.store.PutPlayer(ctx, player); err != nil {
		log.Printf("journal player %s: %v", identity, err)
	}
}

func (a *Arena) journalEquipment(ctx context.Context, itemID uint64) {
	if a.store == nil {
		return
	}
	item, holder, err := a.ledger.EquipmentDetails(itemID)
	if err != nil {
		log.Printf("journal equipment %d: %v", itemID, err)
		return
	}
	if err := a.store.PutEquipment(ctx, storage.EquipmentRecord{Item: item, Holder: holder}); err != nil {
		log.Printf("journal equipment %d: %v", itemID, err)
	}
}

func (a *Arena) emit(ctx context.Context, evt storage.AuditEvent) {
	if err := a.audit.Emit(ctx, evt); err != nil {
		log.Printf("emit audit event %s: %v", evt.EventName, err)
	}
}

// Register enrolls a new player and their starter weapon.
func (a *Arena) Register(ctx context.Context, identity domain.Identity) (ledger.RegisterResult, error) {
	var res ledger.RegisterResult
	err := a.span(ctx, "arena.register", func(ctx context.Context) error {
		if err := a.guard(); err != nil {
			return err
		}
		a.mu.Lock()
		defer a.mu.Unlock()

		var err error
		res, err = a.ledger.Register(identity)
		if err != nil {
			return err
		}
		a.journalPlayer(ctx, identity)
		a.journalEquipment(ctx, res.Starter.ID)
		a.emit(ctx, audit.PlayerRegistered(identity, res.PlayerID))
		a.emit(ctx, audit.EquipmentMinted(identity, res.Starter))
		return nil
	})
	return res, err
}

// MintFor mints equipment for an owner on behalf of the requester. Grant
// verification happens at the call edge; by the time this runs the requester
// is a bare identity checked against the configured admin.
func (a *Arena) MintFor(ctx context.Context, requester, owner domain.Identity, category domain.Category, rarity domain.Rarity) (domain.Equipment, error) {
	var item domain.Equipment
	err := a.span(ctx, "arena.mint", func(ctx context.Context) error {
		if err := a.guard(); err != nil {
			return err
		}
		a.mu.Lock()
		defer a.mu.Unlock()

		var err error
		item, err = a.ledger.MintFor(requester, owner, category, rarity)
		if err != nil {
			return err
		}
		a.journalEquipment(ctx, item.ID)
		a.journalPlayer(ctx, owner)
		a.emit(ctx, audit.EquipmentMinted(owner, item))
		return nil
	})
	return item, err
}

// Battle resolves a fight between two registered players.
func (a *Arena) Battle(ctx context.Context, challenger, opponent domain.Identity) (ledger.BattleResult, error) {
	var res ledger.BattleResult
	err := a.span(ctx, "arena.battle", func(ctx context.Context) error {
		if err := a.guard(); err != nil {
			return err
		}
		a.mu.Lock()
		defer a.mu.Unlock()

		a.settling.Store(true)
		var err error
		res, err = a.ledger.Battle(ctx, challenger, opponent)
		a.settling.Store(false)
		if err != nil {
			return err
		}
		a.journalPlayer(ctx, res.Winner)
		a.journalPlayer(ctx, res.Loser)
		a.emit(ctx, audit.BattleCompleted(res.Winner, res.Loser, res.Reward))
		return nil
	})
	return res, err
}

// ListForSale puts an item on the marketplace.
func (a *Arena) ListForSale(ctx context.Context, requester domain.Identity, itemID uint64, price int64) (domain.Equipment, error) {
	var item domain.Equipment
	err := a.span(ctx, "arena.list_for_sale", func(ctx context.Context) error {
		if err := a.guard(); err != nil {
			return err
		}
		a.mu.Lock()
		defer a.mu.Unlock()

		var err error
		item, err = a.ledger.ListForSale(requester, itemID, price)
		if err != nil {
			return err
		}
		a.journalEquipment(ctx, itemID)
		a.emit(ctx, audit.EquipmentListed(itemID, price))
		return nil
	})
	return item, err
}

// Delist removes an item from the marketplace.
func (a *Arena) Delist(ctx context.Context, requester domain.Identity, itemID uint64) (domain.Equipment, error) {
	var item domain.Equipment
	err := a.span(ctx, "arena.delist", func(ctx context.Context) error {
		if err := a.guard(); err != nil {
			return err
		}
		a.mu.Lock()
		defer a.mu.Unlock()

		var err error
		item, err = a.ledger.Delist(requester, itemID)
		if err != nil {
			return err
		}
		a.journalEquipment(ctx, itemID)
		return nil
	})
	return item, err
}

// Buy purchases a listed item.
func (a *Arena) Buy(ctx context.Context, buyer domain.Identity, itemID uint64) (ledger.SaleResult, error) {
	var sale ledger.SaleResult
	err := a.span(ctx, "arena.buy", func(ctx context.Context) error {
		if err := a.guard(); err != nil {
			return err
		}
		a.mu.Lock()
		defer a.mu.Unlock()

		a.settling.Store(true)
		var err error
		sale, err = a.ledger.Buy(ctx, buyer, itemID)
		a.settling.Store(false)
		if err != nil {
			return err
		}
		a.journalEquipment(ctx, itemID)
		a.journalPlayer(ctx, sale.Buyer)
		a.journalPlayer(ctx, sale.Seller)
		a.emit(ctx, audit.EquipmentSold(itemID, sale.Seller, sale.Buyer, sale.Price))
		return nil
	})
	return sale, err
}

// PlayerStats returns a player's current record and live power.
func (a *Arena) PlayerStats(ctx context.Context, identity domain.Identity) (ledger.Stats, error) {
	var stats ledger.Stats
	err := a.span(ctx, "arena.player_stats", func(context.Context) error {
		if err := a.guard(); err != nil {
			return err
		}
		a.mu.Lock()
		defer a.mu.Unlock()

		var err error
		stats, err = a.ledger.PlayerStats(identity)
		return err
	})
	return stats, err
}

// EquipmentDetails returns an item's stats, listing state, and holder.
func (a *Arena) EquipmentDetails(ctx context.Context, itemID uint64) (domain.Equipment, domain.Identity, error) {
	var item domain.Equipment
	var holder domain.Identity
	err := a.span(ctx, "arena.equipment_details", func(context.Context) error {
		if err := a.guard(); err != nil {
			return err
		}
		a.mu.Lock()
		defer a.mu.Unlock()

		var err error
		item, holder, err = a.ledger.EquipmentDetails(itemID)
		return err
	})
	return item, holder, err
}

// AuditTrail returns recent audit events, newest first. It is empty when no
// store is configured.
func (a *Arena) AuditTrail(ctx context.Context, limit int) ([]storage.AuditEvent, error) {
	if a.store == nil {
		return nil, nil
	}
	var events []storage.AuditEvent
	err := a.span(ctx, "arena.audit_trail", func(ctx context.Context) error {
		var err error
		events, err = a.store.ListAuditEvents(ctx, limit)
		return err
	})
	return events, err
}
