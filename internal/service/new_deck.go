package service

import (
	"context"
	"fmt"

	"github.com/ericogr/war-cards/internal/constants"
	"github.com/ericogr/war-cards/internal/deck"
	"github.com/ericogr/war-cards/internal/game"
	"github.com/ericogr/war-cards/internal/logging"
)

// NewDeck replaces the deck of a match and resets every counter except
// reverse mode. On provider failure the stored match is left untouched.
func NewDeck(ctx context.Context, repo MatchRepo, provider deck.Provider, code, playerUUID string) (*game.Match, error) {
	m, err := loadOwnedMatch(repo, code, playerUUID)
	if err != nil {
		return nil, err
	}

	d, err := provider.NewDeck(ctx)
	if err != nil {
		logging.Warn("new deck: deck unavailable", logging.Fields{constants.LogFieldMatchCode: code, "error": err.Error()})
		return nil, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}

	old := m.DeckID
	resetForDeck(m, d)
	if err := repo.UpdateMatch(m); err != nil {
		return nil, err
	}

	if dc, ok := provider.(deck.Discarder); ok && old != "" {
		if err := dc.Discard(ctx, old); err != nil {
			logging.Warn("failed to discard previous deck", logging.Fields{constants.LogFieldDeckID: old, "error": err.Error()})
		}
	}
	logging.Info("new deck dealt", logging.Fields{constants.LogFieldMatchCode: code, constants.LogFieldDeckID: d.ID})
	return m, nil
}

// ToggleReverse flips reverse mode. It is allowed whatever the match status.
func ToggleReverse(ctx context.Context, repo MatchRepo, code, playerUUID string) (*game.Match, error) {
	m, err := loadOwnedMatch(repo, code, playerUUID)
	if err != nil {
		return nil, err
	}
	m.State.ReverseMode = !m.State.ReverseMode
	m.LastActivityAt = nowFunc()
	if err := repo.UpdateMatch(m); err != nil {
		return nil, err
	}
	return m, nil
}
