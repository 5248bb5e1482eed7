package keys

import "strings"

const prefix = "war"

// join builds a colon separated redis key. Empty parts are skipped and each
// part is trimmed so callers can pass raw identifiers.
func join(parts ...string) string {
	out := make([]string, 0, len(parts)+1)
	out = append(out, prefix)
	for _, p := range parts {
		s := strings.TrimSpace(p)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return strings.Join(out, ":")
}

// DeckCards is the list holding the undealt card codes of a deck, top first.
func DeckCards(deckID string) string { return join("deck", deckID, "cards") }

// DeckMeta is the hash with the deck metadata (total, seed, created_at).
func DeckMeta(deckID string) string { return join("deck", deckID, "meta") }
