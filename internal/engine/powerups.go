package engine

import "github.com/ericogr/war-cards/internal/game"

// applyPlayerPowerUp grants the effect of the player's winning suit. SPADES is
// handled by stealFromComputer since it depends on the score.
func (rc *roundContext) applyPlayerPowerUp(s game.Suit) {
	switch s {
	case game.SuitHearts:
		rc.state.Lives = rc.minInt(rc.state.Lives+1, game.MaxLives)
	case game.SuitDiamonds:
		rc.state.PendingDiamondBonus = true
	case game.SuitClubs:
		rc.state.PendingSkipTurn = true
	}
}

// stealFromComputer moves one point to the player when the winning card is a
// spade and the computer has something to lose.
func (rc *roundContext) stealFromComputer(s game.Suit) bool {
	if s != game.SuitSpades || rc.state.ComputerScore <= 0 {
		return false
	}
	rc.state.ComputerScore--
	rc.state.PlayerScore++
	return true
}

// stealFromPlayer is the computer's only power-up.
func (rc *roundContext) stealFromPlayer(s game.Suit) bool {
	if s != game.SuitSpades || rc.state.PlayerScore <= 0 {
		return false
	}
	rc.state.PlayerScore--
	rc.state.ComputerScore++
	return true
}
