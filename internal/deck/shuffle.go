package deck

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"sync/atomic"

	"github.com/ericogr/war-cards/internal/game"
	"golang.org/x/exp/rand"
)

// Standard returns an ordered 52-card deck.
func Standard() []game.Card {
	cards := make([]game.Card, 0, game.DeckSize)
	for _, s := range game.Suits {
		for _, r := range game.Ranks {
			cards = append(cards, game.Card{Rank: r, Suit: s})
		}
	}
	return cards
}

// Shuffle returns a shuffled copy of cards. The same seed always yields the
// same order.
func Shuffle(cards []game.Card, seed uint64) []game.Card {
	out := make([]game.Card, len(cards))
	copy(out, cards)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// NewSeed generates a shuffle seed using crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// sequentialSeeds yields start, start+1, ... and is used for reproducible
// providers in tests and local play.
func sequentialSeeds(start uint64) func() (uint64, error) {
	var next atomic.Uint64
	next.Store(start)
	return func() (uint64, error) {
		return next.Add(1) - 1, nil
	}
}
