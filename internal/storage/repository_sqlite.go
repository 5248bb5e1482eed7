package storage

import (
	"errors"
	"time"

	"github.com/ericogr/war-cards/internal/game"
	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateMatch(m *game.Match) error {
	return r.db.Create(m).Error
}

func (r *sqliteRepository) GetMatchByCode(code string) (*game.Match, error) {
	var m game.Match
	if err := r.db.Where("code = ?", code).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *sqliteRepository) UpdateMatch(m *game.Match) error {
	return r.db.Save(m).Error
}

func (r *sqliteRepository) FindIdleMatches(before time.Time) ([]game.Match, error) {
	var matches []game.Match
	if err := r.db.Where("status = ? AND last_activity_at <= ?", game.StatusInProgress, before).
		Order("last_activity_at").
		Find(&matches).Error; err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *sqliteRepository) UpsertUser(uuid, name string) error {
	var u game.User
	if err := r.db.Where("player_uuid = ?", uuid).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			u = game.User{PlayerUUID: uuid}
		} else {
			return err
		}
	}
	u.PlayerName = name
	return r.db.Save(&u).Error
}

func (r *sqliteRepository) UpdateStatsOnMatchEnd(m *game.Match) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return addMatchResult(tx, m)
	})
}

func (r *sqliteRepository) FinishMatch(m *game.Match) error {
	counted := m.StatsCounted
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if !m.StatsCounted {
			if err := addMatchResult(tx, m); err != nil {
				return err
			}
			m.StatsCounted = true
		}
		return tx.Save(m).Error
	})
	if err != nil {
		m.StatsCounted = counted
	}
	return err
}

func (r *sqliteRepository) AbandonIdleMatch(code string, before time.Time, header string) (bool, error) {
	res := r.db.Model(&game.Match{}).
		Where("code = ? AND status = ? AND last_activity_at <= ?", code, game.StatusInProgress, before).
		Updates(map[string]interface{}{
			"status":        game.StatusAbandoned,
			"header":        header,
			"stats_counted": true,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func addMatchResult(tx *gorm.DB, m *game.Match) error {
	var u game.User
	if err := tx.Where("player_uuid = ?", m.PlayerUUID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			u = game.User{PlayerUUID: m.PlayerUUID}
		} else {
			return err
		}
	}
	if m.PlayerName != "" {
		u.PlayerName = m.PlayerName
	}
	u.GamesPlayed++
	switch m.Result {
	case game.ResultPlayer:
		u.Wins++
	case game.ResultComputer:
		u.Losses++
	case game.ResultTie:
		u.Ties++
	}
	return tx.Save(&u).Error
}

func (r *sqliteRepository) GetStatsByPlayer(uuid string) (*game.User, error) {
	var u game.User
	if err := r.db.Where("player_uuid = ?", uuid).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &game.User{PlayerUUID: uuid}, nil
		}
		return nil, err
	}
	return &u, nil
}

// GetTopPlayers returns top N players ordered by Wins desc, then GamesPlayed desc
func (r *sqliteRepository) GetTopPlayers(limit int) ([]game.User, error) {
	if limit <= 0 {
		limit = 10
	}
	var users []game.User
	if err := r.db.Model(&game.User{}).
		Order("wins DESC").
		Order("games_played DESC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
