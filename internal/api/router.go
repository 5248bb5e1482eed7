package api

import (
	"time"

	"github.com/ericogr/war-cards/internal/constants"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter wires every route under /api. corsOrigins of ["*"] allows any
// origin without credentials; explicit origins may send the session cookie.
func NewRouter(handler *MatchHandler, corsOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	cc := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(corsOrigins) == 0 || (len(corsOrigins) == 1 && corsOrigins[0] == "*") {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = corsOrigins
		cc.AllowCredentials = true
	}
	router.Use(cors.New(cc))

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.GET(constants.RouteVersion, Version)
		apiRoutes.GET(constants.RouteLeaderboard, handler.ListLeaderboard)
		apiRoutes.POST(constants.RouteSession, handler.CreateSession)

		protected := apiRoutes.Group("")
		protected.Use(SessionRequired())

		protected.GET(constants.RoutePlayerStats, handler.GetPlayerStats)
		protected.POST(constants.RouteMatches, handler.CreateMatch)
		protected.GET(constants.RouteMatchByCode, handler.GetMatch)
		protected.POST(constants.RouteMatchNewDeck, handler.NewDeck)
		protected.POST(constants.RouteMatchDraw, handler.Draw)
		protected.POST(constants.RouteMatchReverse, handler.ToggleReverse)
		protected.GET(constants.RouteMatchFeed, handler.MatchFeed)
	}
	return router
}
