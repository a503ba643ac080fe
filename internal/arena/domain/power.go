package domain

// Power derivation constants.
const (
	// PowerBase is the flat power every registered player carries.
	PowerBase = 50
	// PowerPerLevel is the per-level power bonus.
	PowerPerLevel = 10
)

// Power computes a player's combat strength from their level and equipped
// items: sum of attack+defense across items plus the base and level terms.
// An empty item list yields the base and level terms only.
func Power(level int, equipped []Equipment) int {
	power := PowerBase + level*PowerPerLevel
	for _, item := range equipped {
		power += item.Attack + item.Defense
	}
	return power
}
