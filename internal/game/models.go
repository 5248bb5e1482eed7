package game

import (
	"time"

	"gorm.io/gorm"
)

// Tunables of the round engine. They are fixed game rules, not configuration.
const (
	StartingLives     = 3
	MaxLives          = 5
	DeckSize          = 52
	FeverThreshold    = 3
	FeverMultiplier   = 3
	DiamondMultiplier = 2
	PrisonerPayout    = 2
)

// Display durations for the transient hints. The engine never waits on them;
// presentation layers clear the effect after this long.
const (
	CelebrateDuration = 2 * time.Second
	ShakeDuration     = 500 * time.Millisecond
)

// GameState holds every counter the round engine reads or writes. It is a
// plain value: the engine receives a copy and returns the next state.
type GameState struct {
	PlayerScore         int  `json:"player_score"`
	ComputerScore       int  `json:"computer_score"`
	PrisonerPile        int  `json:"prisoner_pile"`
	FeverStreak         int  `json:"fever_streak"`
	PendingDiamondBonus bool `json:"pending_diamond_bonus"`
	// PendingSkipTurn always favors the player; only a player CLUBS win arms it.
	PendingSkipTurn bool `json:"pending_skip_turn"`
	ReverseMode     bool `json:"reverse_mode"`
	Lives           int  `json:"lives"`
	RemainingCards  int  `json:"remaining_cards"`
}

// NewGameState returns the state of a freshly dealt deck.
func NewGameState() GameState {
	return GameState{Lives: StartingLives, RemainingCards: DeckSize}
}

// Winner tags the side that took a round.
type Winner string

const (
	WinnerPlayer   Winner = "player"
	WinnerComputer Winner = "computer"
	WinnerNone     Winner = "none"
)

// RoundOutcome is the narration of one resolved round.
type RoundOutcome struct {
	Narration string `json:"narration"`
	Winner    Winner `json:"winner"`
	IsWar     bool   `json:"is_war"`
}

// Hints are display requests emitted alongside an outcome. They are not part
// of the game state and never affect later rounds.
type Hints struct {
	Celebrate bool `json:"celebrate"`
	Shake     bool `json:"shake"`
}

// MatchResult is the end-of-match decision.
type MatchResult string

const (
	ResultNone     MatchResult = ""
	ResultPlayer   MatchResult = "player"
	ResultComputer MatchResult = "computer"
	ResultTie      MatchResult = "tie"
)

const (
	StatusInProgress = "in_progress"
	StatusFinished   = "finished"
	StatusAbandoned  = "abandoned"
)

// DefaultHeader is shown before the first round of a deck.
const DefaultHeader = "Game of War"

// Match is the session aggregate owned by the service layer: one player, one
// deck and the engine state between rounds.
type Match struct {
	gorm.Model
	Code       string `json:"code" gorm:"size:8;uniqueIndex"`
	PlayerUUID string `json:"player_uuid" gorm:"index"`
	PlayerName string `json:"player_name"`
	DeckID     string `json:"deck_id"`

	State       GameState    `json:"state" gorm:"embedded;embeddedPrefix:state_"`
	LastOutcome RoundOutcome `json:"last_outcome" gorm:"embedded;embeddedPrefix:last_"`
	// Card codes of the last round (see Card.Code). Empty before the first draw.
	ComputerCard string `json:"computer_card"`
	PlayerCard   string `json:"player_card"`

	Header         string      `json:"header"`
	Status         string      `json:"status" gorm:"index"`
	Result         MatchResult `json:"result"`
	RoundCount     int         `json:"round_count"`
	LastActivityAt time.Time   `json:"last_activity_at" gorm:"index"`
	StatsCounted   bool        `json:"-"`
}

// TableName keeps match rows in a dedicated table.
func (Match) TableName() string { return "war_matches" }

// LastCards decodes the cards of the previous round, if any.
func (m *Match) LastCards() (computer, player *Card) {
	if c, err := ParseCard(m.ComputerCard); err == nil {
		computer = &c
	}
	if c, err := ParseCard(m.PlayerCard); err == nil {
		player = &c
	}
	return computer, player
}

// User stores a player identity and aggregate results across matches.
type User struct {
	gorm.Model
	PlayerUUID  string `json:"player_uuid" gorm:"uniqueIndex"`
	PlayerName  string `json:"player_name"`
	GamesPlayed int    `json:"games_played"`
	Wins        int    `json:"wins"`
	Losses      int    `json:"losses"`
	Ties        int    `json:"ties"`
}

func (User) TableName() string { return "player_profiles" }
