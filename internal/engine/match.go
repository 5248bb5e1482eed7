package engine

import "github.com/ericogr/war-cards/internal/game"

// DecideMatch compares the final scores once the deck is exhausted. It has no
// side effects and may be called any number of times.
func DecideMatch(playerScore, computerScore int) game.MatchResult {
	switch {
	case playerScore > computerScore:
		return game.ResultPlayer
	case computerScore > playerScore:
		return game.ResultComputer
	default:
		return game.ResultTie
	}
}

// MatchHeadline is the header shown once a match is decided.
func MatchHeadline(r game.MatchResult) string {
	switch r {
	case game.ResultPlayer:
		return "🎉 You won the game!"
	case game.ResultComputer:
		return "💻 The computer won the game!"
	case game.ResultTie:
		return "🤝 It's a tie game!"
	}
	return game.DefaultHeader
}
