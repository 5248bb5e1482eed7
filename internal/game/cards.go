package game

import (
	"errors"
	"fmt"
	"strings"
)

// Rank is the face value of a card using the deck service vocabulary
// ("2".."10", "JACK", "QUEEN", "KING", "ACE").
type Rank string

const (
	RankTwo   Rank = "2"
	RankThree Rank = "3"
	RankFour  Rank = "4"
	RankFive  Rank = "5"
	RankSix   Rank = "6"
	RankSeven Rank = "7"
	RankEight Rank = "8"
	RankNine  Rank = "9"
	RankTen   Rank = "10"
	RankJack  Rank = "JACK"
	RankQueen Rank = "QUEEN"
	RankKing  Rank = "KING"
	RankAce   Rank = "ACE"
)

// Ranks lists every rank from lowest to highest. The position of a rank in
// this slice is its comparison index.
var Ranks = []Rank{
	RankTwo, RankThree, RankFour, RankFive, RankSix, RankSeven, RankEight,
	RankNine, RankTen, RankJack, RankQueen, RankKing, RankAce,
}

// Index returns the comparison index of r (0 for "2", 12 for "ACE").
func (r Rank) Index() (int, bool) {
	for i, v := range Ranks {
		if v == r {
			return i, true
		}
	}
	return -1, false
}

// Suit is one of the four French suits. Each suit carries a power-up that is
// granted to the winner of a round.
type Suit string

const (
	SuitHearts   Suit = "HEARTS"
	SuitSpades   Suit = "SPADES"
	SuitDiamonds Suit = "DIAMONDS"
	SuitClubs    Suit = "CLUBS"
)

var Suits = []Suit{SuitHearts, SuitSpades, SuitDiamonds, SuitClubs}

func (s Suit) Valid() bool {
	switch s {
	case SuitHearts, SuitSpades, SuitDiamonds, SuitClubs:
		return true
	}
	return false
}

// Symbol returns the display glyph for the suit.
func (s Suit) Symbol() string {
	switch s {
	case SuitHearts:
		return "♥️"
	case SuitSpades:
		return "♠️"
	case SuitDiamonds:
		return "♦️"
	case SuitClubs:
		return "♣️"
	}
	return ""
}

// PowerUp returns the short label shown under a card for its suit effect.
func (s Suit) PowerUp() string {
	switch s {
	case SuitHearts:
		return "+1 Life"
	case SuitSpades:
		return "Steal Point"
	case SuitDiamonds:
		return "2x Next Win"
	case SuitClubs:
		return "Skip Turn"
	}
	return ""
}

// ErrInvalidCard is wrapped by every card validation failure.
var ErrInvalidCard = errors.New("invalid card")

// Card is a single playing card. Cards are values and never mutated.
type Card struct {
	Rank Rank `json:"value"`
	Suit Suit `json:"suit"`
}

// Validate reports whether both rank and suit are known.
func (c Card) Validate() error {
	if _, ok := c.Rank.Index(); !ok {
		return fmt.Errorf("%w: unknown rank %q", ErrInvalidCard, string(c.Rank))
	}
	if !c.Suit.Valid() {
		return fmt.Errorf("%w: unknown suit %q", ErrInvalidCard, string(c.Suit))
	}
	return nil
}

func (c Card) String() string {
	return string(c.Rank) + c.Suit.Symbol()
}

// Code returns the two character deck code, e.g. "KD" or "0H" for the ten of
// hearts. Invalid cards return an empty string.
func (c Card) Code() string {
	if c.Validate() != nil {
		return ""
	}
	r := string(c.Rank)
	switch c.Rank {
	case RankTen:
		r = "0"
	case RankJack, RankQueen, RankKing, RankAce:
		r = r[:1]
	}
	return r + string(c.Suit)[:1]
}

// ParseCard is the inverse of Card.Code.
func ParseCard(code string) (Card, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 2 {
		return Card{}, fmt.Errorf("%w: bad code %q", ErrInvalidCard, code)
	}
	var c Card
	switch code[0] {
	case '0':
		c.Rank = RankTen
	case 'J':
		c.Rank = RankJack
	case 'Q':
		c.Rank = RankQueen
	case 'K':
		c.Rank = RankKing
	case 'A':
		c.Rank = RankAce
	default:
		c.Rank = Rank(code[:1])
	}
	for _, s := range Suits {
		if string(s)[0] == code[1] {
			c.Suit = s
			break
		}
	}
	if err := c.Validate(); err != nil {
		return Card{}, err
	}
	return c, nil
}
