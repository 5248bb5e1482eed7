package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ericogr/war-cards/internal/deck"
	"github.com/ericogr/war-cards/internal/game"
	"github.com/ericogr/war-cards/internal/storage"
)

type mockRepo struct {
	mu         sync.Mutex
	matches    map[string]*game.Match
	statsCalls int
	updates    int
	failFinish error
}

func newMockRepo() *mockRepo {
	return &mockRepo{matches: map[string]*game.Match{}}
}

func (r *mockRepo) CreateMatch(m *game.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.matches[m.Code]; ok {
		return errors.New("duplicate code")
	}
	cp := *m
	r.matches[m.Code] = &cp
	return nil
}

func (r *mockRepo) GetMatchByCode(code string) (*game.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[code]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *mockRepo) UpdateMatch(m *game.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *m
	r.matches[m.Code] = &cp
	r.updates++
	return nil
}

func (r *mockRepo) FinishMatch(m *game.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failFinish != nil {
		return r.failFinish
	}
	if !m.StatsCounted {
		r.statsCalls++
		m.StatsCounted = true
	}
	cp := *m
	r.matches[m.Code] = &cp
	r.updates++
	return nil
}

func (r *mockRepo) AbandonIdleMatch(code string, before time.Time, header string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[code]
	if !ok || m.Status != game.StatusInProgress || m.LastActivityAt.After(before) {
		return false, nil
	}
	m.Status = game.StatusAbandoned
	m.Header = header
	m.StatsCounted = true
	r.updates++
	return true, nil
}

func (r *mockRepo) FindIdleMatches(before time.Time) ([]game.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []game.Match
	for _, m := range r.matches {
		if m.Status == game.StatusInProgress && !m.LastActivityAt.After(before) {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *mockRepo) stored(code string) game.Match {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.matches[code]
}

// scriptedProvider deals a fixed sequence of cards and can be told to fail.
type scriptedProvider struct {
	mu       sync.Mutex
	cards    []game.Card
	decks    int
	fail     error
	draws    int
	gate     chan struct{}
	discards []string
}

func (p *scriptedProvider) NewDeck(ctx context.Context) (deck.Deck, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail != nil {
		return deck.Deck{}, &deck.ProviderError{Op: "new", Err: p.fail}
	}
	p.decks++
	return deck.Deck{ID: "deck-" + string(rune('0'+p.decks)), Remaining: len(p.cards)}, nil
}

func (p *scriptedProvider) DrawTwo(ctx context.Context, deckID string) (deck.Draw, error) {
	if p.gate != nil {
		<-p.gate
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail != nil {
		return deck.Draw{}, &deck.ProviderError{Op: "draw", DeckID: deckID, Err: p.fail}
	}
	i := p.draws * 2
	if i+1 >= len(p.cards) {
		return deck.Draw{}, &deck.ProviderError{Op: "draw", DeckID: deckID, Err: deck.ErrDeckExhausted}
	}
	p.draws++
	return deck.Draw{Computer: p.cards[i], Player: p.cards[i+1], Remaining: len(p.cards) - i - 2}, nil
}

func (p *scriptedProvider) Discard(ctx context.Context, deckID string) error {
	p.mu.Lock()
	p.discards = append(p.discards, deckID)
	p.mu.Unlock()
	return nil
}

func card(code string) game.Card {
	c, err := game.ParseCard(code)
	if err != nil {
		panic(err)
	}
	return c
}

func cards(codes ...string) []game.Card {
	out := make([]game.Card, len(codes))
	for i, c := range codes {
		out[i] = card(c)
	}
	return out
}
