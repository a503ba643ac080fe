package domain

// ExperiencePerLevel is the per-level experience threshold multiplier: a
// player levels up when experience reaches level*ExperiencePerLevel.
const ExperiencePerLevel = 100

// ApplyExperience adds gained experience to the player, then performs exactly
// one threshold check: if experience reaches level*100 the player advances a
// single level and the pre-increment threshold is consumed.
//
// A gain large enough to cross two thresholds still advances one level only;
// the surplus waits for the next gain. This single-step behavior is an
// observed property of the economy and is pinned by tests. Do not make it
// cascade without a product decision.
func ApplyExperience(p *Player, gained int64) {
	p.Experience += gained
	threshold := int64(p.Level) * ExperiencePerLevel
	if p.Experience >= threshold {
		p.Level++
		p.Experience -= threshold
	}
}
