package random

import (
	"encoding/binary"
	"hash/fnv"
	"math/rand"
	"time"
)

// Bonus ranges used by the ledger. Both are half-open.
const (
	// BattleOffsetRange bounds the challenger-side battle offset: [0, 20).
	BattleOffsetRange = 20
	// StatBonusRange bounds the mint-time stat bonus: [0, 10).
	StatBonusRange = 10
)

// Provider supplies the pseudo-random bonuses consumed by ledger operations.
//
// Implementations must be deterministic for identical inputs; the ledger
// feeds every observable input (clock reading, identities, item id) through
// the provider so battles and mints stay reproducible under test.
type Provider interface {
	// BattleOffset returns the offset in [0, BattleOffsetRange) added to the
	// challenger's power for a battle resolved at now.
	BattleOffset(now time.Time, challenger, opponent string) int

	// StatBonus returns the bonus in [0, StatBonusRange) applied to both
	// attack and defense of an item minted for owner at now.
	StatBonus(now time.Time, owner string, itemID uint64) int
}

// ClockProvider derives bonuses from a hash of the supplied clock reading and
// identities. This reproduces the observable, manipulable randomness of the
// original economy; it is not a security property.
type ClockProvider struct{}

// BattleOffset implements Provider.
func (ClockProvider) BattleOffset(now time.Time, challenger, opponent string) int {
	h := fnv.New64a()
	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], uint64(now.UnixNano()))
	h.Write(ts[:])
	h.Write([]byte(challenger))
	h.Write([]byte(opponent))
	return int(h.Sum64() % BattleOffsetRange)
}

// StatBonus implements Provider.
func (ClockProvider) StatBonus(now time.Time, owner string, itemID uint64) int {
	h := fnv.New64a()
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(now.UnixNano()))
	h.Write(buf[:])
	h.Write([]byte(owner))
	binary.BigEndian.PutUint64(buf[:], itemID)
	h.Write(buf[:])
	return int(h.Sum64() % StatBonusRange)
}

// SeededProvider draws bonuses from a math/rand source seeded once, giving
// fully reproducible simulation runs for a fixed seed regardless of clock or
// identity inputs.
type SeededProvider struct {
	rng *rand.Rand
}

// NewSeededProvider creates a provider backed by the given seed.
func NewSeededProvider(seed int64) *SeededProvider {
	return &SeededProvider{rng: rand.New(rand.NewSource(seed))}
}

// BattleOffset implements Provider.
func (p *SeededProvider) BattleOffset(time.Time, string, string) int {
	return p.rng.Intn(BattleOffsetRange)
}

// StatBonus implements Provider.
func (p *SeededProvider) StatBonus(time.Time, string, uint64) int {
	return p.rng.Intn(StatBonusRange)
}

// FixedProvider returns constant bonuses. Test use only.
type FixedProvider struct {
	Offset int
	Bonus  int
}

// BattleOffset implements Provider.
func (p FixedProvider) BattleOffset(time.Time, string, string) int { return p.Offset }

// StatBonus implements Provider.
func (p FixedProvider) StatBonus(time.Time, string, uint64) int { return p.Bonus }
