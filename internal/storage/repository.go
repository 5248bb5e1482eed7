package storage

import (
	"errors"
	"time"

	"github.com/ericogr/war-cards/internal/game"
)

var ErrNotFound = errors.New("record not found")

type Repository interface {
	CreateMatch(m *game.Match) error
	// GetMatchByCode returns ErrNotFound when no match uses code.
	GetMatchByCode(code string) (*game.Match, error)
	UpdateMatch(m *game.Match) error
	// FindIdleMatches returns in-progress matches whose last activity is at
	// or before the given time.
	FindIdleMatches(before time.Time) ([]game.Match, error)

	UpsertUser(uuid, name string) error
	// UpdateStatsOnMatchEnd adds the result of a finished match to the
	// owner's totals.
	UpdateStatsOnMatchEnd(m *game.Match) error
	// FinishMatch saves a decided match and, unless already counted, its
	// stats in one transaction. On error nothing is stored and
	// m.StatsCounted is left as it was.
	FinishMatch(m *game.Match) error
	// AbandonIdleMatch marks the match abandoned only if it is still in
	// progress and idle since before. It reports whether a row changed.
	AbandonIdleMatch(code string, before time.Time, header string) (bool, error)
	GetStatsByPlayer(uuid string) (*game.User, error)
	// Leaderboard
	GetTopPlayers(limit int) ([]game.User, error)
}
