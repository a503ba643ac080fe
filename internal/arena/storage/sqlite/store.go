// Package sqlite persists arena records in a single SQLite database file.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/louisbranch/emberarena/internal/arena/domain"
	"github.com/louisbranch/emberarena/internal/arena/storage"
	"github.com/louisbranch/emberarena/internal/arena/storage/sqlite/migrations"
	"github.com/louisbranch/emberarena/internal/platform/storage/sqlitemigrate"
)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// fromMillis reverses toMillis for persisted millisecond timestamps.
func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Store provides a SQLite-backed implementation of storage.Store.
type Store struct {
	sqlDB *sql.DB
}

// Open opens the arena database at the provided path and applies embedded
// migrations before the store is handed to higher layers.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.ArenaFS, "arena"); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{sqlDB: sqlDB}, nil
}

// Close is intentionally nil-safe so callers can defer it in all startup
// paths.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// PutPlayer inserts or replaces a player record.
func (s *Store) PutPlayer(ctx context.Context, player domain.Player) error {
	equipped, err := json.Marshal(player.Equipped)
	if err != nil {
		return fmt.Errorf("encode equipped set: %w", err)
	}
	_, err = s.sqlDB.ExecContext(ctx, `
		INSERT INTO players (id, identity, level, experience, wins, losses, active, equipped)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			identity = excluded.identity,
			level = excluded.level,
			experience = excluded.experience,
			wins = excluded.wins,
			losses = excluded.losses,
			active = excluded.active,
			equipped = excluded.equipped`,
		player.ID, string(player.Identity), player.Level, player.Experience,
		player.Wins, player.Losses, player.Active, string(equipped))
	if err != nil {
		return fmt.Errorf("put player %s: %w", player.Identity, err)
	}
	return nil
}

// PutEquipment inserts or replaces an equipment record and its holder.
func (s *Store) PutEquipment(ctx context.Context, record storage.EquipmentRecord) error {
	item := record.Item
	_, err := s.sqlDB.ExecContext(ctx, `
		INSERT INTO equipment (id, holder, category, rarity, attack, defense, durability, item_level, for_sale, price)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			holder = excluded.holder,
			category = excluded.category,
			rarity = excluded.rarity,
			attack = excluded.attack,
			defense = excluded.defense,
			durability = excluded.durability,
			item_level = excluded.item_level,
			for_sale = excluded.for_sale,
			price = excluded.price`,
		item.ID, string(record.Holder), int(item.Category), int(item.Rarity),
		item.Attack, item.Defense, item.Durability, item.ItemLevel,
		item.ForSale, item.Price)
	if err != nil {
		return fmt.Errorf("put equipment %d: %w", item.ID, err)
	}
	return nil
}

// LoadPlayers returns every persisted player, ordered by id.
func (s *Store) LoadPlayers(ctx context.Context) ([]domain.Player, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
		SELECT id, identity, level, experience, wins, losses, active, equipped
		FROM players ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load players: %w", err)
	}
	defer rows.Close()

	var players []domain.Player
	for rows.Next() {
		var p domain.Player
		var identity, equipped string
		if err := rows.Scan(&p.ID, &identity, &p.Level, &p.Experience, &p.Wins, &p.Losses, &p.Active, &equipped); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		p.Identity = domain.Identity(identity)
		if err := json.Unmarshal([]byte(equipped), &p.Equipped); err != nil {
			return nil, fmt.Errorf("decode equipped set for %s: %w", identity, err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate players: %w", err)
	}
	return players, nil
}

// LoadEquipment returns every persisted equipment record, ordered by item id.
func (s *Store) LoadEquipment(ctx context.Context) ([]storage.EquipmentRecord, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
		SELECT id, holder, category, rarity, attack, defense, durability, item_level, for_sale, price
		FROM equipment ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load equipment: %w", err)
	}
	defer rows.Close()

	var records []storage.EquipmentRecord
	for rows.Next() {
		var record storage.EquipmentRecord
		var holder string
		var category, rarity int
		if err := rows.Scan(&record.Item.ID, &holder, &category, &rarity,
			&record.Item.Attack, &record.Item.Defense, &record.Item.Durability,
			&record.Item.ItemLevel, &record.Item.ForSale, &record.Item.Price); err != nil {
			return nil, fmt.Errorf("scan equipment: %w", err)
		}
		record.Holder = domain.Identity(holder)
		record.Item.Category = domain.Category(category)
		record.Item.Rarity = domain.Rarity(rarity)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate equipment: %w", err)
	}
	return records, nil
}

// AppendAuditEvent stores one audit event.
func (s *Store) AppendAuditEvent(ctx context.Context, event storage.AuditEvent) error {
	_, err := s.sqlDB.ExecContext(ctx, `
		INSERT INTO audit_events (id, event_name, identity, player_id, item_id, owner,
			category, rarity, winner, loser, reward, seller, buyer, price, created_at_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID, event.EventName, string(event.Identity), event.PlayerID,
		event.ItemID, string(event.Owner), event.Category, event.Rarity,
		string(event.Winner), string(event.Loser), event.Reward,
		string(event.Seller), string(event.Buyer), event.Price,
		toMillis(event.CreatedAt))
	if err != nil {
		return fmt.Errorf("append audit event %s: %w", event.ID, err)
	}
	return nil
}

// ListAuditEvents returns up to limit events, newest first. A limit of zero
// or less returns all events.
func (s *Store) ListAuditEvents(ctx context.Context, limit int) ([]storage.AuditEvent, error) {
	query := `
		SELECT id, event_name, identity, player_id, item_id, owner,
			category, rarity, winner, loser, reward, seller, buyer, price, created_at_ms
		FROM audit_events ORDER BY created_at_ms DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var events []storage.AuditEvent
	for rows.Next() {
		var event storage.AuditEvent
		var identity, owner, winner, loser, seller, buyer string
		var createdAt int64
		if err := rows.Scan(&event.ID, &event.EventName, &identity, &event.PlayerID,
			&event.ItemID, &owner, &event.Category, &event.Rarity,
			&winner, &loser, &event.Reward, &seller, &buyer, &event.Price,
			&createdAt); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		event.Identity = domain.Identity(identity)
		event.Owner = domain.Identity(owner)
		event.Winner = domain.Identity(winner)
		event.Loser = domain.Identity(loser)
		event.Seller = domain.Identity(seller)
		event.Buyer = domain.Identity(buyer)
		event.CreatedAt = fromMillis(createdAt)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}
