package storage

import (
	"context"
	"sort"

	"github.com/louisbranch/emberarena/internal/arena/domain"
)

// MemoryStore is an in-process Store used by the simulator and tests. It
// keeps the same write-through semantics as the SQLite store without a
// database file.
type MemoryStore struct {
	players   map[uint64]domain.Player
	equipment map[uint64]EquipmentRecord
	events    []AuditEvent
}

// NewMemoryStore creates an empty memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		players:   map[uint64]domain.Player{},
		equipment: map[uint64]EquipmentRecord{},
	}
}

// PutPlayer implements LedgerStore.
func (s *MemoryStore) PutPlayer(_ context.Context, player domain.Player) error {
	s.players[player.ID] = player.Clone()
	return nil
}

// PutEquipment implements LedgerStore.
func (s *MemoryStore) PutEquipment(_ context.Context, record EquipmentRecord) error {
	s.equipment[record.Item.ID] = record
	return nil
}

// LoadPlayers implements LedgerStore.
func (s *MemoryStore) LoadPlayers(context.Context) ([]domain.Player, error) {
	players := make([]domain.Player, 0, len(s.players))
	for _, p := range s.players {
		players = append(players, p.Clone())
	}
	sort.Slice(players, func(i, j int) bool { return players[i].ID < players[j].ID })
	return players, nil
}

// LoadEquipment implements LedgerStore.
func (s *MemoryStore) LoadEquipment(context.Context) ([]EquipmentRecord, error) {
	records := make([]EquipmentRecord, 0, len(s.equipment))
	for _, record := range s.equipment {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Item.ID < records[j].Item.ID })
	return records, nil
}

// AppendAuditEvent implements AuditEventStore.
func (s *MemoryStore) AppendAuditEvent(_ context.Context, event AuditEvent) error {
	s.events = append(s.events, event)
	return nil
}

// ListAuditEvents implements AuditEventStore, newest first.
func (s *MemoryStore) ListAuditEvents(_ context.Context, limit int) ([]AuditEvent, error) {
	events := make([]AuditEvent, len(s.events))
	copy(events, s.events)
	sort.SliceStable(events, func(i, j int) bool { return events[i].CreatedAt.After(events[j].CreatedAt) })
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

// Close implements Store.
func (s *MemoryStore) Close() error { return nil }
