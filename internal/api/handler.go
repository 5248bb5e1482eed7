package api

import (
	"github.com/ericogr/war-cards/internal/deck"
	"github.com/ericogr/war-cards/internal/storage"
)

// MatchHandler groups all match-related HTTP handlers.
type MatchHandler struct {
	repo     storage.Repository
	provider deck.Provider
	hub      *Hub
}

// NewMatchHandler creates a MatchHandler dealing cards from provider. Match
// views are published to hub after every change; hub may be nil.
func NewMatchHandler(repo storage.Repository, provider deck.Provider, hub *Hub) *MatchHandler {
	return &MatchHandler{repo: repo, provider: provider, hub: hub}
}
