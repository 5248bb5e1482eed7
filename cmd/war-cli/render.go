package main

import (
	"errors"
	"strconv"

	"github.com/ericogr/war-cards/internal/api"
	"github.com/ericogr/war-cards/internal/constants"
	"github.com/ericogr/war-cards/internal/deck"
	"github.com/ericogr/war-cards/internal/game"
	"github.com/ericogr/war-cards/internal/service"
	"github.com/pterm/pterm"
)

func render(v api.MatchView) {
	header := pterm.DefaultHeader.WithFullWidth()
	switch {
	case v.Hints != nil && v.Hints.Celebrate:
		header = header.WithBackgroundStyle(pterm.NewStyle(pterm.BgGreen))
	case v.Hints != nil && v.Hints.Shake:
		header = header.WithBackgroundStyle(pterm.NewStyle(pterm.BgRed))
	}
	header.Println(v.Header)

	if v.ComputerCard != nil && v.PlayerCard != nil {
		pterm.Printfln("  Computer: %-8s %s", formatCard(v.ComputerCard), pterm.Gray(v.ComputerCard.PowerUp))
		pterm.Printfln("  You:      %-8s %s", formatCard(v.PlayerCard), pterm.Gray(v.PlayerCard.PowerUp))
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(stateTable(v)).Render()
	if v.DrawDisabled && v.Status == game.StatusFinished {
		pterm.Info.Println("Deck finished. Press n for a new deck.")
	}
}

func formatCard(c *api.CardView) string {
	label := string(c.Rank) + c.Symbol
	switch c.Suit {
	case game.SuitHearts, game.SuitDiamonds:
		return pterm.LightRed(label)
	default:
		return label
	}
}

func stateTable(v api.MatchView) [][]string {
	st := v.State
	return [][]string{
		{"You", "Computer", "Prisoners", "Lives", "Fever", "Cards", "Mode"},
		{
			strconv.Itoa(st.PlayerScore),
			strconv.Itoa(st.ComputerScore),
			strconv.Itoa(st.PrisonerPile),
			strconv.Itoa(st.Lives),
			strconv.Itoa(st.FeverStreak),
			strconv.Itoa(st.RemainingCards),
			modeLabel(st),
		},
	}
}

func modeLabel(st game.GameState) string {
	label := "normal"
	if st.ReverseMode {
		label = "reverse"
	}
	if st.PendingDiamondBonus {
		label += " 2x"
	}
	if st.PendingSkipTurn {
		label += " skip"
	}
	return label
}

// errorHeader turns a service error into the line shown to the player.
func errorHeader(err error) string {
	switch {
	case errors.Is(err, service.ErrProviderUnavailable):
		var pe *deck.ProviderError
		if errors.As(err, &pe) && pe.Op == "new" {
			return constants.ErrLoadingDeck
		}
		return constants.ErrDrawingCards
	case errors.Is(err, service.ErrNoCardsRemaining), errors.Is(err, service.ErrMatchNotInProgress):
		return constants.ErrNoCardsRemaining
	default:
		return err.Error()
	}
}
