// Package audit records the arena's append-only trail of successful
// mutations.
package audit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/louisbranch/emberarena/internal/arena/domain"
	"github.com/louisbranch/emberarena/internal/arena/storage"
	"github.com/louisbranch/emberarena/internal/platform/id"
)

// Event names recorded by the arena runtime.
const (
	EventPlayerRegistered = "player.registered"
	EventEquipmentMinted  = "equipment.minted"
	EventBattleCompleted  = "battle.completed"
	EventEquipmentListed  = "equipment.listed"
	EventEquipmentSold    = "equipment.sold"
)

// Emitter records audit events.
type Emitter struct {
	store storage.AuditEventStore
	clock func() time.Time
}

// NewEmitter creates a new audit event emitter.
func NewEmitter(store storage.AuditEventStore) *Emitter {
	return &Emitter{store: store, clock: time.Now}
}

// Emit records an audit event, stamping an id and creation time when unset.
// It is a no-op when the store is nil.
func (e *Emitter) Emit(ctx context.Context, evt storage.AuditEvent) error {
	if e == nil || e.store == nil {
		return nil
	}
	if evt.ID == "" {
		generated, err := id.NewID()
		if err != nil {
			return fmt.Errorf("generate audit event id: %w", err)
		}
		evt.ID = generated
	}
	if evt.CreatedAt.IsZero() {
		if e.clock == nil {
			evt.CreatedAt = time.Now().UTC()
		} else {
			evt.CreatedAt = e.clock().UTC()
		}
	}
	return e.store.AppendAuditEvent(ctx, evt)
}

// PlayerRegistered builds the event for a completed registration.
func PlayerRegistered(identity domain.Identity, playerID uint64) storage.AuditEvent {
	return storage.AuditEvent{
		EventName: EventPlayerRegistered,
		Identity:  identity,
		PlayerID:  playerID,
	}
}

// EquipmentMinted builds the event for a newly minted item.
func EquipmentMinted(owner domain.Identity, item domain.Equipment) storage.AuditEvent {
	return storage.AuditEvent{
		EventName: EventEquipmentMinted,
		Owner:     owner,
		ItemID:    item.ID,
		Category:  item.Category.String(),
		Rarity:    item.Rarity.String(),
	}
}

// BattleCompleted builds the event for a resolved battle.
func BattleCompleted(winner, loser domain.Identity, reward int64) storage.AuditEvent {
	return storage.AuditEvent{
		EventName: EventBattleCompleted,
		Winner:    winner,
		Loser:     loser,
		Reward:    reward,
	}
}

// EquipmentListed builds the event for a marketplace listing.
func EquipmentListed(itemID uint64, price int64) storage.AuditEvent {
	return storage.AuditEvent{
		EventName: EventEquipmentListed,
		ItemID:    itemID,
		Price:     price,
	}
}

// EquipmentSold builds the event for a completed sale.
func EquipmentSold(itemID uint64, seller, buyer domain.Identity, price int64) storage.AuditEvent {
	return storage.AuditEvent{
		EventName: EventEquipmentSold,
		ItemID:    itemID,
		Seller:    seller,
		Buyer:     buyer,
		Price:     price,
	}
}

// Describe renders a short human-readable line for an event, used by the CLI
// trail listing.
func Describe(evt storage.AuditEvent) string {
	switch evt.EventName {
	case EventPlayerRegistered:
		return "player " + string(evt.Identity) + " registered as #" + strconv.FormatUint(evt.PlayerID, 10)
	case EventEquipmentMinted:
		return evt.Rarity + " " + evt.Category + " #" + strconv.FormatUint(evt.ItemID, 10) + " minted for " + string(evt.Owner)
	case EventBattleCompleted:
		return string(evt.Winner) + " defeated " + string(evt.Loser) + " for " + strconv.FormatInt(evt.Reward, 10)
	case EventEquipmentListed:
		return "item #" + strconv.FormatUint(evt.ItemID, 10) + " listed at " + strconv.FormatInt(evt.Price, 10)
	case EventEquipmentSold:
		return "item #" + strconv.FormatUint(evt.ItemID, 10) + " sold by " + string(evt.Seller) + " to " + string(evt.Buyer) + " for " + strconv.FormatInt(evt.Price, 10)
	default:
		return evt.EventName
	}
}
