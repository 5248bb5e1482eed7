package api

import (
	"github.com/ericogr/war-cards/internal/game"
)

// CardView is a drawn card as shown to the player.
type CardView struct {
	Code    string    `json:"code"`
	Rank    game.Rank `json:"value"`
	Suit    game.Suit `json:"suit"`
	Symbol  string    `json:"symbol"`
	PowerUp string    `json:"power_up"`
}

// HintsView carries the display hints of the last round together with how
// long a client should keep each effect on screen.
type HintsView struct {
	Celebrate   bool  `json:"celebrate"`
	CelebrateMS int64 `json:"celebrate_ms,omitempty"`
	Shake       bool  `json:"shake"`
	ShakeMS     int64 `json:"shake_ms,omitempty"`
}

// MatchView is the read-only payload served for a match.
type MatchView struct {
	Code         string             `json:"code"`
	PlayerName   string             `json:"player_name"`
	Header       string             `json:"header"`
	Status       string             `json:"status"`
	Result       game.MatchResult   `json:"result,omitempty"`
	RoundCount   int                `json:"round_count"`
	State        game.GameState     `json:"state"`
	LastOutcome  *game.RoundOutcome `json:"last_outcome,omitempty"`
	ComputerCard *CardView          `json:"computer_card,omitempty"`
	PlayerCard   *CardView          `json:"player_card,omitempty"`
	Hints        *HintsView         `json:"hints,omitempty"`
	DrawDisabled bool               `json:"draw_disabled"`
}

// NewMatchView renders m. hints is nil unless the view answers a draw.
func NewMatchView(m *game.Match, hints *game.Hints) MatchView {
	v := MatchView{
		Code:         m.Code,
		PlayerName:   m.PlayerName,
		Header:       m.Header,
		Status:       m.Status,
		Result:       m.Result,
		RoundCount:   m.RoundCount,
		State:        m.State,
		DrawDisabled: m.Status != game.StatusInProgress || m.State.RemainingCards <= 0,
	}
	if v.Header == "" {
		v.Header = game.DefaultHeader
	}
	if m.RoundCount > 0 {
		out := m.LastOutcome
		v.LastOutcome = &out
	}
	computer, player := m.LastCards()
	v.ComputerCard = newCardView(computer)
	v.PlayerCard = newCardView(player)
	if hints != nil {
		hv := &HintsView{Celebrate: hints.Celebrate, Shake: hints.Shake}
		if hints.Celebrate {
			hv.CelebrateMS = game.CelebrateDuration.Milliseconds()
		}
		if hints.Shake {
			hv.ShakeMS = game.ShakeDuration.Milliseconds()
		}
		v.Hints = hv
	}
	return v
}

func newCardView(c *game.Card) *CardView {
	if c == nil {
		return nil
	}
	return &CardView{
		Code:    c.Code(),
		Rank:    c.Rank,
		Suit:    c.Suit,
		Symbol:  c.Suit.Symbol(),
		PowerUp: c.Suit.PowerUp(),
	}
}
