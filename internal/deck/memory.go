package deck

import (
	"context"
	"sync"

	"github.com/ericogr/war-cards/internal/game"
	"github.com/google/uuid"
)

// MemoryProvider keeps decks in process memory. Decks vanish with the
// process, which matches the lifetime of a match.
type MemoryProvider struct {
	mu    sync.Mutex
	decks map[string][]game.Card
	seed  func() (uint64, error)
}

// NewMemoryProvider shuffles every deck with a fresh crypto seed.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{decks: make(map[string][]game.Card), seed: NewSeed}
}

// NewSeededMemoryProvider shuffles the n-th deck with seed start+n so whole
// matches can be replayed.
func NewSeededMemoryProvider(start uint64) *MemoryProvider {
	return &MemoryProvider{decks: make(map[string][]game.Card), seed: sequentialSeeds(start)}
}

func (p *MemoryProvider) NewDeck(ctx context.Context) (Deck, error) {
	if err := ctx.Err(); err != nil {
		return Deck{}, providerErr("new", "", err)
	}
	seed, err := p.seed()
	if err != nil {
		return Deck{}, providerErr("new", "", err)
	}
	id := uuid.NewString()
	cards := Shuffle(Standard(), seed)

	p.mu.Lock()
	p.decks[id] = cards
	p.mu.Unlock()
	return Deck{ID: id, Remaining: len(cards)}, nil
}

func (p *MemoryProvider) DrawTwo(ctx context.Context, deckID string) (Draw, error) {
	if err := ctx.Err(); err != nil {
		return Draw{}, providerErr("draw", deckID, err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	cards, ok := p.decks[deckID]
	if !ok {
		return Draw{}, providerErr("draw", deckID, ErrDeckNotFound)
	}
	if len(cards) < 2 {
		return Draw{}, providerErr("draw", deckID, ErrDeckExhausted)
	}
	d := Draw{Computer: cards[0], Player: cards[1], Remaining: len(cards) - 2}
	p.decks[deckID] = cards[2:]
	return d, nil
}

// Discard forgets a deck. Unknown IDs are ignored.
func (p *MemoryProvider) Discard(_ context.Context, deckID string) error {
	p.mu.Lock()
	delete(p.decks, deckID)
	p.mu.Unlock()
	return nil
}
