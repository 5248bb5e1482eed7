package game

import (
	"errors"
	"testing"
)

func TestRankIndexOrder(t *testing.T) {
	if len(Ranks) != 13 {
		t.Fatalf("expected 13 ranks, got %d", len(Ranks))
	}
	if i, ok := RankTwo.Index(); !ok || i != 0 {
		t.Fatalf("expected 2 to be lowest, got %d", i)
	}
	if i, ok := RankAce.Index(); !ok || i != 12 {
		t.Fatalf("expected ACE to be highest, got %d", i)
	}
	if _, ok := Rank("1").Index(); ok {
		t.Fatalf("expected unknown rank")
	}
}

func TestParseCard(t *testing.T) {
	tests := []struct {
		code string
		want Card
	}{
		{"0H", Card{Rank: RankTen, Suit: SuitHearts}},
		{"kd", Card{Rank: RankKing, Suit: SuitDiamonds}},
		{"2S", Card{Rank: RankTwo, Suit: SuitSpades}},
		{"AC", Card{Rank: RankAce, Suit: SuitClubs}},
	}
	for _, tt := range tests {
		got, err := ParseCard(tt.code)
		if err != nil {
			t.Fatalf("ParseCard(%q): %v", tt.code, err)
		}
		if got != tt.want {
			t.Fatalf("ParseCard(%q) = %+v, want %+v", tt.code, got, tt.want)
		}
	}

	for _, bad := range []string{"", "1H", "KX", "10H"} {
		if _, err := ParseCard(bad); !errors.Is(err, ErrInvalidCard) {
			t.Fatalf("ParseCard(%q): expected ErrInvalidCard, got %v", bad, err)
		}
	}
}

func TestCardCodeRoundTrip(t *testing.T) {
	seen := make(map[string]bool, DeckSize)
	for _, r := range Ranks {
		for _, s := range Suits {
			c := Card{Rank: r, Suit: s}
			code := c.Code()
			if seen[code] {
				t.Fatalf("duplicate code %q", code)
			}
			seen[code] = true
			back, err := ParseCard(code)
			if err != nil || back != c {
				t.Fatalf("round trip %v -> %q -> %v (%v)", c, code, back, err)
			}
		}
	}
	if (Card{Rank: "ZZ", Suit: SuitHearts}).Code() != "" {
		t.Fatalf("expected empty code for invalid card")
	}
}
