package ledger

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/louisbranch/emberarena/internal/arena/domain"
	apperrors "github.com/louisbranch/emberarena/internal/platform/errors"
)

// Stats is a read-only view of a player's progression and live power.
type Stats struct {
	PlayerID   uint64
	Identity   domain.Identity
	Level      int
	Experience int64
	Wins       int
	Losses     int
	Power      int
	Equipped   []uint64
}

// PlayerStats returns a player's current record. Power reflects whatever the
// player has equipped at call time.
func (l *Ledger) PlayerStats(identity domain.Identity) (Stats, error) {
	p, ok := l.players[identity]
	if !ok {
		return Stats{}, apperrors.WithMetadata(apperrors.CodeNotRegistered,
			fmt.Sprintf("player %s is not registered", identity),
			map[string]string{"Identity": string(identity)})
	}
	equipped := make([]uint64, len(p.Equipped))
	copy(equipped, p.Equipped)
	return Stats{
		PlayerID:   p.ID,
		Identity:   p.Identity,
		Level:      p.Level,
		Experience: p.Experience,
		Wins:       p.Wins,
		Losses:     p.Losses,
		Power:      l.power(p),
		Equipped:   equipped,
	}, nil
}

// EquipmentDetails returns an item's stats, listing state, and current
// holder.
func (l *Ledger) EquipmentDetails(itemID uint64) (domain.Equipment, domain.Identity, error) {
	item, ok := l.equipment[itemID]
	if !ok {
		return domain.Equipment{}, "", apperrors.WithMetadata(apperrors.CodeEquipmentNotFound,
			fmt.Sprintf("equipment %d was never minted", itemID),
			map[string]string{"ItemID": strconv.FormatUint(itemID, 10)})
	}
	return *item, l.holders[itemID], nil
}

// Snapshot returns copies of every player and equipment record, ordered by
// id, for persistence and inspection.
func (l *Ledger) Snapshot() ([]domain.Player, []HeldItem) {
	players := make([]domain.Player, 0, len(l.players))
	for _, p := range l.players {
		players = append(players, p.Clone())
	}
	sort.Slice(players, func(i, j int) bool { return players[i].ID < players[j].ID })

	items := make([]HeldItem, 0, len(l.equipment))
	for id, item := range l.equipment {
		items = append(items, HeldItem{Item: *item, Holder: l.holders[id]})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Item.ID < items[j].Item.ID })

	return players, items
}
