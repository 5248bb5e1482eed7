// Package deck supplies shuffled 52-card decks to the match controller.
//
// A Provider hands out a deck identifier and then, on request, the next two
// cards of that deck together with the number of cards left. The first card
// of a Draw belongs to the computer and the second to the player. Every
// failure is returned as a *ProviderError so callers can tell a broken deck
// source apart from their own mistakes and retry the same action.
package deck

import (
	"context"
	"errors"
	"fmt"

	"github.com/ericogr/war-cards/internal/game"
)

var (
	ErrDeckNotFound  = errors.New("deck not found")
	ErrDeckExhausted = errors.New("deck exhausted")
)

// Deck identifies a freshly shuffled deck.
type Deck struct {
	ID        string `json:"deck_id"`
	Remaining int    `json:"remaining"`
}

// Draw is the result of dealing one round.
type Draw struct {
	Computer  game.Card `json:"computer"`
	Player    game.Card `json:"player"`
	Remaining int       `json:"remaining"`
}

// Provider is the deck source consumed by the service layer.
type Provider interface {
	NewDeck(ctx context.Context) (Deck, error)
	DrawTwo(ctx context.Context, deckID string) (Draw, error)
}

// Discarder is implemented by providers that can release a deck early, for
// example when the player asks for a new one mid-match.
type Discarder interface {
	Discard(ctx context.Context, deckID string) error
}

// ProviderError wraps any failure of the deck source.
type ProviderError struct {
	Op     string
	DeckID string
	Err    error
}

func (e *ProviderError) Error() string {
	if e.DeckID == "" {
		return fmt.Sprintf("deck %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("deck %s %s: %v", e.Op, e.DeckID, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

func providerErr(op, deckID string, err error) error {
	return &ProviderError{Op: op, DeckID: deckID, Err: err}
}
