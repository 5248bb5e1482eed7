package api

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/ericogr/war-cards/internal/constants"
	"github.com/ericogr/war-cards/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Letters, marks, numbers, apostrophe, dot, hyphen and spaces, length 2-40.
var playerNameRegex = regexp.MustCompile(`^[\p{L}\p{M}\p{N}.'\- ]{2,40}$`)

type SessionPayload struct {
	Name string `json:"name"`
}

// CreateSession issues an anonymous player session. A caller that already
// holds a valid session keeps its player UUID and only changes its name.
func (h *MatchHandler) CreateSession(c *gin.Context) {
	var req SessionPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	name := strings.TrimSpace(req.Name)
	if !playerNameRegex.MatchString(name) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidPlayerName})
		return
	}

	playerUUID := ""
	if token, err := c.Cookie(constants.CookieSessionName); err == nil && token != "" {
		if claims, err := parseAndValidateSession(token); err == nil {
			playerUUID = claims.Sub
		}
	}
	if playerUUID == "" {
		playerUUID = uuid.NewString()
	}

	if err := h.repo.UpsertUser(playerUUID, name); err != nil {
		logging.Error("failed to upsert player", err, logging.Fields{constants.LogFieldPlayer: playerUUID})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateSession})
		return
	}
	token, err := createSessionToken(playerUUID, name, sessionTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateSession})
		return
	}
	setSessionCookie(c, token, sessionTTL)
	c.JSON(http.StatusOK, gin.H{"player_uuid": playerUUID, "name": name})
}
