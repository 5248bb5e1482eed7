package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ericogr/war-cards/internal/constants"
	"github.com/ericogr/war-cards/internal/logging"
	"github.com/ericogr/war-cards/internal/service"
	"github.com/gin-gonic/gin"
)

// matchCode reads and validates the :code path parameter.
func matchCode(c *gin.Context) (string, bool) {
	code := normalizeJoinCode(c.Param("code"))
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidMatchCode})
		return "", false
	}
	return code, true
}

// writeServiceError maps a service error to a response. providerMsg is the
// header shown when the deck source failed.
func writeServiceError(c *gin.Context, err error, providerMsg, fallback string) {
	switch {
	case errors.Is(err, service.ErrProviderUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{constants.JSONKeyError: providerMsg, "header": providerMsg})
	case errors.Is(err, service.ErrMatchNotFound):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
	case errors.Is(err, service.ErrNotMatchOwner):
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrNotMatchOwner})
	case errors.Is(err, service.ErrMatchNotInProgress):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrMatchNotInProgress})
	case errors.Is(err, service.ErrNoCardsRemaining):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNoCardsRemaining})
	default:
		logging.Error("match request failed", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: fallback})
	}
}

func (h *MatchHandler) publish(v MatchView) {
	if h.hub != nil {
		h.hub.Publish(v.Code, v)
	}
}

// CreateMatch deals a new deck and starts a match for the session player.
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	playerUUID, name := sessionPlayer(c)
	m, err := service.StartMatch(c.Request.Context(), h.repo, h.provider, playerUUID, name)
	if err != nil {
		writeServiceError(c, err, constants.ErrLoadingDeck, constants.ErrFailedCreateMatch)
		return
	}
	c.JSON(http.StatusCreated, NewMatchView(m, nil))
}

// GetMatch returns the current view of a match.
func (h *MatchHandler) GetMatch(c *gin.Context) {
	code, ok := matchCode(c)
	if !ok {
		return
	}
	playerUUID, _ := sessionPlayer(c)
	m, err := service.GetMatch(c.Request.Context(), h.repo, code, playerUUID)
	if err != nil {
		writeServiceError(c, err, constants.ErrLoadingDeck, constants.ErrMatchNotFound)
		return
	}
	c.JSON(http.StatusOK, NewMatchView(m, nil))
}

// NewDeck resets the match onto a freshly shuffled deck.
func (h *MatchHandler) NewDeck(c *gin.Context) {
	code, ok := matchCode(c)
	if !ok {
		return
	}
	playerUUID, _ := sessionPlayer(c)
	m, err := service.NewDeck(c.Request.Context(), h.repo, h.provider, code, playerUUID)
	if err != nil {
		writeServiceError(c, err, constants.ErrLoadingDeck, constants.ErrFailedUpdateMatch)
		return
	}
	v := NewMatchView(m, nil)
	h.publish(v)
	c.JSON(http.StatusOK, v)
}

// Draw deals and resolves one round.
func (h *MatchHandler) Draw(c *gin.Context) {
	code, ok := matchCode(c)
	if !ok {
		return
	}
	playerUUID, _ := sessionPlayer(c)
	m, r, err := service.DrawRound(c.Request.Context(), h.repo, h.provider, code, playerUUID)
	if err != nil {
		writeServiceError(c, err, constants.ErrDrawingCards, constants.ErrFailedUpdateMatch)
		return
	}
	v := NewMatchView(m, &r.Hints)
	h.publish(v)
	c.JSON(http.StatusOK, v)
}

// ToggleReverse flips reverse mode.
func (h *MatchHandler) ToggleReverse(c *gin.Context) {
	code, ok := matchCode(c)
	if !ok {
		return
	}
	playerUUID, _ := sessionPlayer(c)
	m, err := service.ToggleReverse(c.Request.Context(), h.repo, code, playerUUID)
	if err != nil {
		writeServiceError(c, err, constants.ErrLoadingDeck, constants.ErrFailedUpdateMatch)
		return
	}
	v := NewMatchView(m, nil)
	h.publish(v)
	c.JSON(http.StatusOK, v)
}

// MatchFeed upgrades to a websocket that receives the match view after every
// change, starting with the current one.
func (h *MatchHandler) MatchFeed(c *gin.Context) {
	code, ok := matchCode(c)
	if !ok {
		return
	}
	playerUUID, _ := sessionPlayer(c)
	m, err := service.GetMatch(c.Request.Context(), h.repo, code, playerUUID)
	if err != nil {
		writeServiceError(c, err, constants.ErrLoadingDeck, constants.ErrMatchNotFound)
		return
	}
	if h.hub == nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		return
	}
	initial, err := json.Marshal(NewMatchView(m, nil))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	conn, err := h.hub.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Warn("websocket upgrade failed", logging.Fields{constants.LogFieldMatchCode: code, "error": err.Error()})
		return
	}
	s := h.hub.subscribe(code)
	h.hub.serve(conn, code, s, initial)
}
