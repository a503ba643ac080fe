package domain

// Identity is the address-like key of one participant.
type Identity string

// Player is one registered participant. Equipped holds ordered references
// into the equipment ledger; item ownership is tracked there, not here.
type Player struct {
	ID         uint64
	Identity   Identity
	Level      int
	Experience int64
	Wins       int
	Losses     int
	Equipped   []uint64
	Active     bool
}

// NewPlayer creates a level-1 record for a freshly registered identity.
func NewPlayer(id uint64, identity Identity) Player {
	return Player{
		ID:       id,
		Identity: identity,
		Level:    1,
		Active:   true,
	}
}

// Clone returns a deep copy, so staged battle and trade transitions never
// alias the committed record's equipment slice.
func (p Player) Clone() Player {
	cloned := p
	cloned.Equipped = append([]uint64(nil), p.Equipped...)
	return cloned
}

// Equip appends an item reference to the player's ordered equipment list.
func (p *Player) Equip(itemID uint64) {
	p.Equipped = append(p.Equipped, itemID)
}

// Unequip removes an item reference if present, preserving order.
func (p *Player) Unequip(itemID uint64) {
	for i, id := range p.Equipped {
		if id == itemID {
			p.Equipped = append(p.Equipped[:i], p.Equipped[i+1:]...)
			return
		}
	}
}
