package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ericogr/war-cards/internal/constants"
	"github.com/ericogr/war-cards/internal/dedupe"
	"github.com/ericogr/war-cards/internal/deck"
	"github.com/ericogr/war-cards/internal/engine"
	"github.com/ericogr/war-cards/internal/game"
	"github.com/ericogr/war-cards/internal/logging"
)

var (
	ErrMatchNotInProgress = errors.New("match is not in progress")
	ErrNoCardsRemaining   = errors.New("no cards remaining")
)

type drawResult struct {
	match *game.Match
	round engine.Round
}

// DrawRound deals two cards and resolves one round. Concurrent draws for
// the same match are collapsed so that a double click resolves a single
// round and every caller sees it.
func DrawRound(ctx context.Context, repo MatchRepo, provider deck.Provider, code, playerUUID string) (*game.Match, engine.Round, error) {
	v, err, shared := dedupe.DrawGroup.Do(code+"|"+playerUUID, func() (interface{}, error) {
		m, r, err := drawRound(ctx, repo, provider, code, playerUUID)
		if err != nil {
			return nil, err
		}
		return drawResult{match: m, round: r}, nil
	})
	if err != nil {
		return nil, engine.Round{}, err
	}
	if shared {
		logging.Debug("draw collapsed", logging.Fields{constants.LogFieldMatchCode: code})
	}
	res := v.(drawResult)
	return res.match, res.round, nil
}

func drawRound(ctx context.Context, repo MatchRepo, provider deck.Provider, code, playerUUID string) (*game.Match, engine.Round, error) {
	m, err := loadOwnedMatch(repo, code, playerUUID)
	if err != nil {
		return nil, engine.Round{}, err
	}
	if m.Status != game.StatusInProgress {
		return nil, engine.Round{}, ErrMatchNotInProgress
	}
	if m.State.RemainingCards <= 0 {
		return nil, engine.Round{}, ErrNoCardsRemaining
	}

	d, err := provider.DrawTwo(ctx, m.DeckID)
	if err != nil {
		logging.Warn("draw: deck unavailable", logging.Fields{
			constants.LogFieldMatchCode: code,
			constants.LogFieldDeckID:    m.DeckID,
			"error":                     err.Error(),
		})
		return nil, engine.Round{}, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}

	r, err := engine.Resolve(d.Computer, d.Player, m.State)
	if err != nil {
		// the provider dealt something that is not a card
		logging.Error("draw: invalid card from provider", err, logging.Fields{constants.LogFieldDeckID: m.DeckID})
		return nil, engine.Round{}, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}
	r.State.RemainingCards = d.Remaining

	m.State = r.State
	m.LastOutcome = r.Outcome
	m.ComputerCard = d.Computer.Code()
	m.PlayerCard = d.Player.Code()
	m.Header = r.Outcome.Narration
	m.RoundCount++
	m.LastActivityAt = nowFunc()

	if m.State.RemainingCards <= 0 {
		decideMatch(m)
		if err := repo.FinishMatch(m); err != nil {
			logging.Error("failed to save finished match", err, logging.Fields{constants.LogFieldMatchCode: code})
			return nil, engine.Round{}, err
		}
		logging.Info("match finished", logging.Fields{
			constants.LogFieldMatchCode: m.Code,
			constants.LogFieldResult:    string(m.Result),
		})
		if m.Result == game.ResultPlayer {
			r.Hints.Celebrate = true
		}
	} else if err := repo.UpdateMatch(m); err != nil {
		return nil, engine.Round{}, err
	}
	logging.Debug("round resolved", logging.Fields{
		constants.LogFieldMatchCode: code,
		constants.LogFieldRound:     m.RoundCount,
		constants.LogFieldWinner:    string(r.Outcome.Winner),
		constants.LogFieldRemaining: m.State.RemainingCards,
	})
	return m, r, nil
}

// decideMatch settles an exhausted match. The stats are counted when the
// match is saved with FinishMatch.
func decideMatch(m *game.Match) {
	m.Result = engine.DecideMatch(m.State.PlayerScore, m.State.ComputerScore)
	m.Header = engine.MatchHeadline(m.Result)
	m.Status = game.StatusFinished
}
