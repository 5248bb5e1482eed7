package service

import (
	"time"

	"github.com/ericogr/war-cards/internal/constants"
	"github.com/ericogr/war-cards/internal/game"
	"github.com/ericogr/war-cards/internal/logging"
)

const abandonedHeader = "Match abandoned due to inactivity"

// IdleRepo is the repository surface used by the idle scanner.
type IdleRepo interface {
	FindIdleMatches(before time.Time) ([]game.Match, error)
	AbandonIdleMatch(code string, before time.Time, header string) (bool, error)
}

// ExpireIdleMatch abandons an in-progress match that saw no activity for
// idleTimeout. Abandoned matches are not counted in the stats. The stored
// row is only changed if it is still idle, so a round played after m was
// loaded wins. It reports whether the match was abandoned.
func ExpireIdleMatch(repo IdleRepo, m *game.Match, idleTimeout time.Duration, now time.Time) (bool, error) {
	if m.Status != game.StatusInProgress {
		return false, nil
	}
	before := now.Add(-idleTimeout)
	if m.LastActivityAt.After(before) {
		return false, nil
	}
	changed, err := repo.AbandonIdleMatch(m.Code, before, abandonedHeader)
	if err != nil || !changed {
		return false, err
	}
	m.Status = game.StatusAbandoned
	m.Header = abandonedHeader
	m.StatsCounted = true
	logging.Info("match abandoned", logging.Fields{constants.LogFieldMatchCode: m.Code})
	return true, nil
}

// ExpireIdleMatches scans for idle matches and abandons each one. It
// returns how many matches were expired.
func ExpireIdleMatches(repo IdleRepo, idleTimeout time.Duration, now time.Time) (int, error) {
	idle, err := repo.FindIdleMatches(now.Add(-idleTimeout))
	if err != nil {
		return 0, err
	}
	n := 0
	for i := range idle {
		changed, err := ExpireIdleMatch(repo, &idle[i], idleTimeout, now)
		if err != nil {
			logging.Error("failed to expire idle match", err, logging.Fields{constants.LogFieldMatchCode: idle[i].Code})
			continue
		}
		if changed {
			n++
		}
	}
	return n, nil
}
