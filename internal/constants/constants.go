package constants

// Centralized constants for headers, env keys and routes.
const (
	// Environment variable keys read outside the config package
	EnvConfigPath          = "WAR_CONFIG"
	EnvSessionSecureCookie = "WAR_SESSION_SECURE_COOKIE"
	EnvHealthcheckURL      = "WAR_HEALTHCHECK_URL"

	DefaultConfigPath = "./war_config.json"

	// Session / Cookie names
	CookieSessionName = "war_session"

	// Context keys set by the session middleware
	CtxPlayerUUID = "playerUUID"
	CtxPlayerName = "playerName"
)

// Routes used by the backend router
const (
	RouteAPIPrefix    = "/api"
	RouteSession      = "/session"
	RouteMatches      = "/matches"
	RouteMatchByCode  = "/matches/:code"
	RouteMatchNewDeck = "/matches/:code/new-deck"
	RouteMatchDraw    = "/matches/:code/draw"
	RouteMatchReverse = "/matches/:code/reverse"
	RouteMatchFeed    = "/matches/:code/ws"
	RouteLeaderboard  = "/leaderboard"
	RoutePlayerStats  = "/player-stats"
	RouteVersion      = "/version"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyStatus  = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest         = "Invalid request"
	ErrInvalidMatchCode       = "Invalid match code"
	ErrMatchNotFound          = "Match not found"
	ErrNotMatchOwner          = "Match belongs to another player"
	ErrMatchNotInProgress     = "Match is not in progress"
	ErrNoCardsRemaining       = "No cards remaining. Start a new deck."
	ErrLoadingDeck            = "Error loading deck. Please try again."
	ErrDrawingCards           = "Error drawing cards. Please try again."
	ErrFailedCreateMatch      = "Failed to create match"
	ErrFailedUpdateMatch      = "Failed to update match"
	ErrFailedFetchStats       = "Failed to fetch stats"
	ErrFailedFetchLeaderboard = "Failed to fetch leaderboard"
	ErrInvalidPlayerName      = "Invalid player name"
	ErrFailedCreateSession    = "Failed to create session"

	ErrAuthRequired   = "Authentication required"
	ErrInvalidSession = "Invalid session"
)

// Logging field names
const (
	LogFieldMatchCode = "match_code"
	LogFieldPlayer    = "player_uuid"
	LogFieldDeckID    = "deck_id"
	LogFieldRound     = "round"
	LogFieldWinner    = "winner"
	LogFieldRemaining = "remaining"
	LogFieldResult    = "result"
	LogFieldAddr      = "addr"
	LogFieldProvider  = "provider"
)
