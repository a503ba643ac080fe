package ledger

import (
	"fmt"

	"github.com/louisbranch/emberarena/internal/arena/domain"
	apperrors "github.com/louisbranch/emberarena/internal/platform/errors"
)

// RegisterResult reports a completed registration: the assigned player id and
// the starter item minted into the new player's hands.
type RegisterResult struct {
	PlayerID uint64
	Starter  domain.Equipment
}

// Register enrolls a new identity and mints its starter weapon, a common
// sword, equipped from the first battle onward. Registering twice fails with
// CodeAlreadyRegistered.
func (l *Ledger) Register(identity domain.Identity) (RegisterResult, error) {
	if err := l.begin(); err != nil {
		return RegisterResult{}, err
	}
	defer l.end()

	if _, ok := l.players[identity]; ok {
		return RegisterResult{}, apperrors.WithMetadata(apperrors.CodeAlreadyRegistered,
			fmt.Sprintf("player %s is already registered", identity),
			map[string]string{"Identity": string(identity)})
	}

	l.nextPlayerID++
	player := domain.NewPlayer(l.nextPlayerID, identity)
	l.players[identity] = &player

	starter := l.mint(identity, domain.CategorySword, domain.RarityCommon)
	return RegisterResult{PlayerID: player.ID, Starter: starter}, nil
}

// MintFor creates equipment for any identity on behalf of the privileged
// requester. The mint cost is informational; nothing is charged.
func (l *Ledger) MintFor(requester, owner domain.Identity, category domain.Category, rarity domain.Rarity) (domain.Equipment, error) {
	if err := l.begin(); err != nil {
		return domain.Equipment{}, err
	}
	defer l.end()

	if requester != l.admin {
		return domain.Equipment{}, apperrors.WithMetadata(apperrors.CodeUnauthorized,
			fmt.Sprintf("identity %s cannot mint equipment", requester),
			map[string]string{"Identity": string(requester)})
	}
	if category <= domain.CategoryUnspecified || category > domain.CategoryBoots {
		return domain.Equipment{}, apperrors.New(apperrors.CodeInvalidCategory,
			fmt.Sprintf("unknown equipment category %d", category))
	}
	if rarity <= domain.RarityUnspecified || rarity > domain.RarityLegendary {
		return domain.Equipment{}, apperrors.New(apperrors.CodeInvalidRarity,
			fmt.Sprintf("unknown equipment rarity %d", rarity))
	}

	return l.mint(owner, category, rarity), nil
}

// mint allocates the next item id, derives stats from the rarity tier plus a
// provider-supplied bonus, and records the owner as holder. Registered owners
// equip the item immediately; unregistered identities merely hold it.
func (l *Ledger) mint(owner domain.Identity, category domain.Category, rarity domain.Rarity) domain.Equipment {
	l.nextItemID++
	id := l.nextItemID
	bonus := l.bonuses.StatBonus(l.clock(), string(owner), id)
	item := domain.NewEquipment(id, category, rarity, bonus)
	l.equipment[id] = &item
	l.holders[id] = owner
	if p, ok := l.players[owner]; ok {
		p.Equip(id)
	}
	return item
}
