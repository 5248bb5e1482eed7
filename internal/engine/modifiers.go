package engine

import "github.com/ericogr/war-cards/internal/game"

// --- Modifier helpers --------------------------------------------------

// rankIndices returns the comparison indices of both cards. Reverse mode
// swaps the indices; suits stay with their own card.
func rankIndices(computer, player game.Card, reverse bool) (int, int) {
	ci, _ := computer.Rank.Index()
	pi, _ := player.Rank.Index()
	if reverse {
		ci, pi = pi, ci
	}
	return ci, pi
}

// applyMultipliers consumes the fever streak and the diamond bonus. Both may
// apply in the same round.
func (rc *roundContext) applyMultipliers() {
	if rc.state.FeverStreak >= game.FeverThreshold {
		rc.multiplier *= game.FeverMultiplier
		rc.state.FeverStreak = 0
	}
	if rc.state.PendingDiamondBonus {
		rc.multiplier *= game.DiamondMultiplier
		rc.state.PendingDiamondBonus = false
	}
}
