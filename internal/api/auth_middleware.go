package api

import (
	"net/http"
	"os"
	"time"

	"github.com/ericogr/war-cards/internal/constants"
	"github.com/gin-gonic/gin"
)

const sessionTTL = 24 * time.Hour

// setSessionCookie sets the session cookie with appropriate flags for dev/prod.
func setSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	secure := os.Getenv(constants.EnvSessionSecureCookie) == "1"
	c.SetCookie(constants.CookieSessionName, token, int(ttl.Seconds()), "/", "", secure, true)
}

// SessionRequired validates the session cookie and injects the player
// identity into the context.
func SessionRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(constants.CookieSessionName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
			return
		}
		claims, err := parseAndValidateSession(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrInvalidSession})
			return
		}
		c.Set(constants.CtxPlayerUUID, claims.Sub)
		c.Set(constants.CtxPlayerName, claims.Name)
		c.Next()
	}
}

func sessionPlayer(c *gin.Context) (uuid, name string) {
	uuid = c.GetString(constants.CtxPlayerUUID)
	name = c.GetString(constants.CtxPlayerName)
	return uuid, name
}
