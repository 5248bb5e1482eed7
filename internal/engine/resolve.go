// Package engine resolves single rounds of War.
//
// # Determinism
//
// Resolve is a pure function of its arguments: the two cards and the
// GameState value. It performs no I/O, holds no timers and never reads
// global state, so replaying the same cards against the same state always
// yields the same Round.
//
// # Ordering
//
// A round runs the following steps in order, and each may short-circuit or
// alter the inputs of the next:
//
//  1. skip-turn: a pending CLUBS skip awards the player one point and ends
//     the round without comparing cards;
//  2. rank lookup, with indices swapped in reverse mode;
//  3. multipliers: fever (x3) then diamond bonus (x2), compounding;
//  4. comparison: computer win, player win or war (tie).
//
// # Atomicity
//
// Invalid cards are rejected before step 1 with an *InvalidCardError and
// the returned state equals the input. Otherwise every change of the round
// is present in Round.State and nothing else is touched.
package engine

import (
	"fmt"
	"strconv"

	"github.com/ericogr/war-cards/internal/game"
)

// Round is the result of resolving one pair of cards.
type Round struct {
	Outcome game.RoundOutcome `json:"outcome"`
	State   game.GameState    `json:"state"`
	Hints   game.Hints        `json:"hints"`
}

// InvalidCardError reports a card with an unknown rank or suit. It is a
// precondition violation: providers must only hand out valid cards.
type InvalidCardError struct {
	Side game.Winner
	Card game.Card
	Err  error
}

func (e *InvalidCardError) Error() string {
	return fmt.Sprintf("engine: invalid %s card %q/%q: %v", e.Side, string(e.Card.Rank), string(e.Card.Suit), e.Err)
}

func (e *InvalidCardError) Unwrap() error { return e.Err }

// Resolve plays the computer's card against the player's card.
func Resolve(computer, player game.Card, state game.GameState) (Round, error) {
	if err := computer.Validate(); err != nil {
		return Round{State: state}, &InvalidCardError{Side: game.WinnerComputer, Card: computer, Err: err}
	}
	if err := player.Validate(); err != nil {
		return Round{State: state}, &InvalidCardError{Side: game.WinnerPlayer, Card: player, Err: err}
	}

	rc := newRoundContext(state)
	if rc.state.PendingSkipTurn {
		rc.skipTurn()
		return rc.round(), nil
	}

	ci, pi := rankIndices(computer, player, rc.state.ReverseMode)
	rc.applyMultipliers()

	switch {
	case ci > pi:
		rc.computerWins(computer)
	case ci < pi:
		rc.playerWins(player)
	default:
		rc.war()
	}
	return rc.round(), nil
}

func (rc *roundContext) skipTurn() {
	rc.state.PendingSkipTurn = false
	rc.state.PlayerScore++
	rc.outcome.Winner = game.WinnerPlayer
	rc.add("Computer's turn skipped! You win!")
}

func (rc *roundContext) computerWins(card game.Card) {
	rc.state.ComputerScore += rc.multiplier
	rc.state.PrisonerPile++
	rc.state.FeverStreak = 0
	rc.outcome.Winner = game.WinnerComputer

	rc.add("Computer wins!")
	if rc.stealFromPlayer(card.Suit) {
		if tag := rc.multiplierTag(false); tag != "" {
			rc.add(tag)
		}
		rc.add("♠️ Stole 1 point!")
		return
	}
	if tag := rc.multiplierTag(true); tag != "" {
		rc.add(tag)
	}
}

func (rc *roundContext) playerWins(card game.Card) {
	rc.state.PlayerScore += rc.multiplier
	rc.state.FeverStreak = 0
	rc.outcome.Winner = game.WinnerPlayer
	rc.applyPlayerPowerUp(card.Suit)

	rc.add("You win!")
	if rc.stealFromComputer(card.Suit) {
		if tag := rc.multiplierTag(false); tag != "" {
			rc.add(tag)
		}
		rc.add("♠️ Stole 1 point!")
		return
	}
	// a steal never celebrates, even when multiplied
	if rc.multiplier > 1 {
		rc.hints.Celebrate = true
	}
	if tag := rc.multiplierTag(true); tag != "" {
		rc.add(tag)
	}
}

// war resolves a tie. The fever warning looks at the streak before this
// round's increment.
func (rc *roundContext) war() {
	prior := rc.state.FeverStreak
	rc.state.FeverStreak++
	rc.hints.Shake = true
	rc.outcome.IsWar = true
	rc.outcome.Winner = game.WinnerNone

	rc.add("War!")
	if freed := rc.state.PrisonerPile; freed > 0 {
		points := freed * game.PrisonerPayout
		rc.state.PlayerScore += points
		rc.state.PrisonerPile = 0
		rc.add("Freed " + strconv.Itoa(freed) + " prisoners for " + strconv.Itoa(points) + " points!")
		return
	}
	if prior >= game.FeverThreshold-1 {
		rc.add("🔥 Fever building...")
	}
}
