package ledger

import (
	"context"
	"fmt"

	"github.com/louisbranch/emberarena/internal/arena/domain"
	apperrors "github.com/louisbranch/emberarena/internal/platform/errors"
)

// BattleResult reports a resolved battle.
type BattleResult struct {
	Winner          domain.Identity
	Loser           domain.Identity
	ChallengerPower int
	OpponentPower   int
	Offset          int
	Reward          int64
}

// Battle resolves a fight between two registered players. The challenger's
// power receives a small random offset before comparison; ties go to the
// challenger. The winner is paid the battle reward through the currency
// service and both records gain experience. If the reward transfer fails the
// battle leaves no trace.
func (l *Ledger) Battle(ctx context.Context, challenger, opponent domain.Identity) (BattleResult, error) {
	if err := l.begin(); err != nil {
		return BattleResult{}, err
	}
	defer l.end()

	if challenger == opponent {
		return BattleResult{}, apperrors.WithMetadata(apperrors.CodeSelfBattle,
			fmt.Sprintf("player %s cannot battle themselves", challenger),
			map[string]string{"Identity": string(challenger)})
	}
	c, err := l.participant(challenger)
	if err != nil {
		return BattleResult{}, err
	}
	o, err := l.participant(opponent)
	if err != nil {
		return BattleResult{}, err
	}

	challengerPower := l.power(c)
	opponentPower := l.power(o)
	offset := l.bonuses.BattleOffset(l.clock(), string(challenger), string(opponent))
	outcome := domain.DecideBattle(challengerPower, opponentPower, offset)

	winner, loser := o, c
	if outcome.ChallengerWins {
		winner, loser = c, o
	}

	// Stage the record updates on clones; the live maps stay untouched until
	// the reward transfer succeeds.
	stagedWinner := winner.Clone()
	stagedLoser := loser.Clone()
	stagedWinner.Wins++
	stagedLoser.Losses++
	domain.ApplyExperience(&stagedWinner, domain.WinnerExperience)
	domain.ApplyExperience(&stagedLoser, domain.LoserExperience)

	if err := l.currency.Transfer(ctx, stagedWinner.Identity, domain.BattleReward); err != nil {
		return BattleResult{}, apperrors.Wrap(apperrors.CodeRewardTransferFailed,
			fmt.Sprintf("pay battle reward to %s", stagedWinner.Identity), err)
	}

	*l.players[stagedWinner.Identity] = stagedWinner
	*l.players[stagedLoser.Identity] = stagedLoser

	return BattleResult{
		Winner:          stagedWinner.Identity,
		Loser:           stagedLoser.Identity,
		ChallengerPower: outcome.ChallengerPower,
		OpponentPower:   outcome.OpponentPower,
		Offset:          outcome.Offset,
		Reward:          domain.BattleReward,
	}, nil
}

// participant resolves a battle participant, rejecting unknown or retired
// identities.
func (l *Ledger) participant(identity domain.Identity) (*domain.Player, error) {
	p, ok := l.players[identity]
	if !ok {
		return nil, apperrors.WithMetadata(apperrors.CodeNotRegistered,
			fmt.Sprintf("player %s is not registered", identity),
			map[string]string{"Identity": string(identity)})
	}
	if !p.Active {
		return nil, apperrors.WithMetadata(apperrors.CodePlayerInactive,
			fmt.Sprintf("player %s is inactive", identity),
			map[string]string{"Identity": string(identity)})
	}
	return p, nil
}
