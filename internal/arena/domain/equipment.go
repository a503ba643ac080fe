package domain

import "strings"

// Category describes the slot an equipment piece occupies.
type Category int

const (
	// CategoryUnspecified represents an invalid category value.
	CategoryUnspecified Category = iota
	CategorySword
	CategoryArmor
	CategoryShield
	CategoryHelmet
	CategoryBoots
)

func (c Category) String() string {
	switch c {
	case CategorySword:
		return "Sword"
	case CategoryArmor:
		return "Armor"
	case CategoryShield:
		return "Shield"
	case CategoryHelmet:
		return "Helmet"
	case CategoryBoots:
		return "Boots"
	default:
		return "Unspecified"
	}
}

// ParseCategory maps a case-insensitive name to a Category.
// Unknown names return CategoryUnspecified.
func ParseCategory(value string) Category {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "sword":
		return CategorySword
	case "armor":
		return CategoryArmor
	case "shield":
		return CategoryShield
	case "helmet":
		return CategoryHelmet
	case "boots":
		return CategoryBoots
	default:
		return CategoryUnspecified
	}
}

// Rarity is the ordered tier scaling an item's base stats.
type Rarity int

const (
	// RarityUnspecified represents an invalid rarity value.
	RarityUnspecified Rarity = iota
	RarityCommon
	RarityRare
	RarityEpic
	RarityLegendary
)

func (r Rarity) String() string {
	switch r {
	case RarityCommon:
		return "Common"
	case RarityRare:
		return "Rare"
	case RarityEpic:
		return "Epic"
	case RarityLegendary:
		return "Legendary"
	default:
		return "Unspecified"
	}
}

// ParseRarity maps a case-insensitive name to a Rarity.
// Unknown names return RarityUnspecified.
func ParseRarity(value string) Rarity {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "common":
		return RarityCommon
	case "rare":
		return RarityRare
	case "epic":
		return RarityEpic
	case "legendary":
		return RarityLegendary
	default:
		return RarityUnspecified
	}
}

// Tier returns the zero-based tier index (Common=0 .. Legendary=3).
func (r Rarity) Tier() int {
	return int(r) - 1
}

// Stat derivation constants.
const (
	// StatBase is the per-tier stat increment.
	StatBase = 10
	// DurabilityMax is the durability every item is minted with.
	DurabilityMax = 100
)

// Equipment is one minted item. The current holder is tracked separately in
// the ledger so stat data and ownership can change independently.
type Equipment struct {
	ID         uint64
	Category   Category
	Rarity     Rarity
	Attack     int
	Defense    int
	Durability int
	ItemLevel  int
	ForSale    bool
	Price      int64
}

// NewEquipment derives a freshly minted item from its rarity and the
// provider-supplied stat bonus. Attack and defense share the one bonus value;
// the coupling is deliberate and pinned by tests.
func NewEquipment(id uint64, category Category, rarity Rarity, bonus int) Equipment {
	multiplier := rarity.Tier() + 1
	stat := StatBase*multiplier + bonus
	return Equipment{
		ID:         id,
		Category:   category,
		Rarity:     rarity,
		Attack:     stat,
		Defense:    stat,
		Durability: DurabilityMax,
		ItemLevel:  1,
	}
}
