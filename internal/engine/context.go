package engine

import (
	"strconv"
	"strings"

	"github.com/ericogr/war-cards/internal/game"
)

// --- Round context and helpers ----------------------------------------
type roundContext struct {
	state      game.GameState
	outcome    game.RoundOutcome
	hints      game.Hints
	multiplier int
	summary    []string
}

func newRoundContext(s game.GameState) *roundContext {
	return &roundContext{
		state:      s,
		outcome:    game.RoundOutcome{Winner: game.WinnerNone},
		multiplier: 1,
		summary:    make([]string, 0, 4),
	}
}

func (rc *roundContext) add(msg string) { rc.summary = append(rc.summary, msg) }

// multiplierTag renders the "3x POINTS!" suffix, or "3x points! " in the
// middle of a steal narration. Empty when no multiplier applied.
func (rc *roundContext) multiplierTag(upper bool) string {
	if rc.multiplier <= 1 {
		return ""
	}
	if upper {
		return strconv.Itoa(rc.multiplier) + "x POINTS!"
	}
	return strconv.Itoa(rc.multiplier) + "x points!"
}

func (rc *roundContext) minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// round freezes the context into the value returned to callers.
func (rc *roundContext) round() Round {
	rc.outcome.Narration = strings.Join(rc.summary, " ")
	return Round{Outcome: rc.outcome, State: rc.state, Hints: rc.hints}
}
