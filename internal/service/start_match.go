package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ericogr/war-cards/internal/constants"
	"github.com/ericogr/war-cards/internal/deck"
	"github.com/ericogr/war-cards/internal/game"
	"github.com/ericogr/war-cards/internal/logging"
	"github.com/ericogr/war-cards/internal/storage"
	"golang.org/x/exp/rand"
)

// MatchRepo is the minimal repository interface required by the match
// operations. Using a small interface simplifies testing.
type MatchRepo interface {
	CreateMatch(m *game.Match) error
	GetMatchByCode(code string) (*game.Match, error)
	UpdateMatch(m *game.Match) error
	FinishMatch(m *game.Match) error
}

var (
	ErrMatchNotFound       = errors.New("match not found")
	ErrNotMatchOwner       = errors.New("match belongs to another player")
	ErrProviderUnavailable = errors.New("deck provider unavailable")
)

const (
	codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength  = 8
	codeRetries = 5

	defaultPlayerName = "Player"
)

// nowFunc is replaced in tests.
var nowFunc = time.Now

var codeRand = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))

// generateMatchCode creates a short alphanumeric code identifying a match.
func generateMatchCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeCharset[codeRand.Intn(len(codeCharset))]
	}
	return string(b)
}

// StartMatch deals a fresh deck and stores a new match for the player.
// Nothing is stored when the provider fails.
func StartMatch(ctx context.Context, repo MatchRepo, provider deck.Provider, playerUUID, playerName string) (*game.Match, error) {
	d, err := provider.NewDeck(ctx)
	if err != nil {
		logging.Warn("start match: deck unavailable", logging.Fields{constants.LogFieldPlayer: playerUUID, "error": err.Error()})
		return nil, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}

	name := strings.TrimSpace(playerName)
	if name == "" {
		name = defaultPlayerName
	}
	m := &game.Match{
		PlayerUUID: playerUUID,
		PlayerName: name,
	}
	resetForDeck(m, d)

	for attempt := 0; ; attempt++ {
		m.Code = generateMatchCode()
		err = repo.CreateMatch(m)
		if err == nil {
			break
		}
		if attempt+1 >= codeRetries {
			return nil, fmt.Errorf("create match: %w", err)
		}
	}
	logging.Info("match started", logging.Fields{
		constants.LogFieldMatchCode: m.Code,
		constants.LogFieldPlayer:    playerUUID,
		constants.LogFieldDeckID:    d.ID,
	})
	return m, nil
}

// GetMatch loads a match owned by playerUUID.
func GetMatch(ctx context.Context, repo MatchRepo, code, playerUUID string) (*game.Match, error) {
	return loadOwnedMatch(repo, code, playerUUID)
}

func loadOwnedMatch(repo MatchRepo, code, playerUUID string) (*game.Match, error) {
	m, err := repo.GetMatchByCode(code)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("load match %s: %w", code, err)
	}
	if m == nil {
		return nil, ErrMatchNotFound
	}
	if m.PlayerUUID != playerUUID {
		return nil, ErrNotMatchOwner
	}
	return m, nil
}

// resetForDeck puts m back to the start of a match on deck d. Reverse mode
// is a player preference and survives the reset.
func resetForDeck(m *game.Match, d deck.Deck) {
	reverse := m.State.ReverseMode
	m.State = game.NewGameState()
	m.State.ReverseMode = reverse
	m.State.RemainingCards = d.Remaining

	m.DeckID = d.ID
	m.LastOutcome = game.RoundOutcome{}
	m.ComputerCard = ""
	m.PlayerCard = ""
	m.Header = game.DefaultHeader
	m.Status = game.StatusInProgress
	m.Result = game.ResultNone
	m.RoundCount = 0
	m.StatsCounted = false
	m.LastActivityAt = nowFunc()
}
