// Package storage defines the persistence contracts for the arena. The
// in-memory ledger is authoritative at runtime; stores receive write-through
// copies of every committed record and reload them at startup.
package storage

import (
	"context"
	"time"

	"github.com/louisbranch/emberarena/internal/arena/domain"
)

// EquipmentRecord pairs an equipment row with its current holder.
type EquipmentRecord struct {
	Item   domain.Equipment
	Holder domain.Identity
}

// AuditEvent is one append-only record of a successful mutation. Only the
// fields relevant to the event name are populated.
type AuditEvent struct {
	// ID is assigned by the emitter.
	ID        string
	EventName string

	Identity domain.Identity
	PlayerID uint64

	ItemID   uint64
	Owner    domain.Identity
	Category string
	Rarity   string

	Winner domain.Identity
	Loser  domain.Identity
	Reward int64

	Seller domain.Identity
	Buyer  domain.Identity
	Price  int64

	CreatedAt time.Time
}

// LedgerStore persists player and equipment records.
type LedgerStore interface {
	// PutPlayer inserts or replaces a player record.
	PutPlayer(ctx context.Context, player domain.Player) error

	// PutEquipment inserts or replaces an equipment record and its holder.
	PutEquipment(ctx context.Context, record EquipmentRecord) error

	// LoadPlayers returns every persisted player, ordered by id.
	LoadPlayers(ctx context.Context) ([]domain.Player, error)

	// LoadEquipment returns every persisted equipment record, ordered by
	// item id.
	LoadEquipment(ctx context.Context) ([]EquipmentRecord, error)
}

// AuditEventStore persists the append-only audit trail.
type AuditEventStore interface {
	// AppendAuditEvent stores one event. Events are never updated or
	// deleted.
	AppendAuditEvent(ctx context.Context, event AuditEvent) error

	// ListAuditEvents returns up to limit events, newest first. A limit of
	// zero or less returns all events.
	ListAuditEvents(ctx context.Context, limit int) ([]AuditEvent, error)
}

// Store is the combined persistence surface the arena runtime requires.
type Store interface {
	LedgerStore
	AuditEventStore

	Close() error
}
