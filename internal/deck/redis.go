package deck

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/ericogr/war-cards/internal/game"
	"github.com/ericogr/war-cards/internal/keys"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
)

// Meta is the bookkeeping stored next to a deck in redis.
type Meta struct {
	Total     int    `mapstructure:"total"`
	Seed      uint64 `mapstructure:"seed"`
	CreatedAt int64  `mapstructure:"created_at"`
}

// RedisProvider stores shuffled decks as redis lists of card codes so several
// server replicas can deal from the same deck. Keys expire after ttl.
type RedisProvider struct {
	rdb  *redis.Client
	ttl  time.Duration
	seed func() (uint64, error)
}

func NewRedisProvider(rdb *redis.Client, ttl time.Duration) *RedisProvider {
	return &RedisProvider{rdb: rdb, ttl: ttl, seed: NewSeed}
}

func (p *RedisProvider) NewDeck(ctx context.Context) (Deck, error) {
	seed, err := p.seed()
	if err != nil {
		return Deck{}, providerErr("new", "", err)
	}
	id := uuid.NewString()
	cards := Shuffle(Standard(), seed)
	codes := make([]interface{}, len(cards))
	for i, c := range cards {
		codes[i] = c.Code()
	}

	cardsKey, metaKey := keys.DeckCards(id), keys.DeckMeta(id)
	_, err = p.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, cardsKey)
		pipe.RPush(ctx, cardsKey, codes...)
		pipe.HSet(ctx, metaKey, map[string]interface{}{
			"total":      len(cards),
			"seed":       strconv.FormatUint(seed, 10),
			"created_at": time.Now().Unix(),
		})
		pipe.Expire(ctx, cardsKey, p.ttl)
		pipe.Expire(ctx, metaKey, p.ttl)
		return nil
	})
	if err != nil {
		return Deck{}, providerErr("new", id, err)
	}
	return Deck{ID: id, Remaining: len(cards)}, nil
}

func (p *RedisProvider) DrawTwo(ctx context.Context, deckID string) (Draw, error) {
	cardsKey := keys.DeckCards(deckID)
	n, err := p.rdb.LLen(ctx, cardsKey).Result()
	if err != nil {
		return Draw{}, providerErr("draw", deckID, err)
	}
	if n < 2 {
		// an empty list is deleted by redis; the meta hash tells the two cases apart
		if _, err := p.Meta(ctx, deckID); err != nil {
			return Draw{}, providerErr("draw", deckID, err)
		}
		return Draw{}, providerErr("draw", deckID, ErrDeckExhausted)
	}

	var top *redis.StringSliceCmd
	var left *redis.IntCmd
	_, err = p.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		top = pipe.LRange(ctx, cardsKey, 0, 1)
		pipe.LTrim(ctx, cardsKey, 2, -1)
		left = pipe.LLen(ctx, cardsKey)
		return nil
	})
	if err != nil {
		return Draw{}, providerErr("draw", deckID, err)
	}
	codes := top.Val()
	if len(codes) != 2 {
		return Draw{}, providerErr("draw", deckID, ErrDeckExhausted)
	}
	computer, err := game.ParseCard(codes[0])
	if err != nil {
		return Draw{}, providerErr("draw", deckID, err)
	}
	player, err := game.ParseCard(codes[1])
	if err != nil {
		return Draw{}, providerErr("draw", deckID, err)
	}
	return Draw{Computer: computer, Player: player, Remaining: int(left.Val())}, nil
}

// Meta loads the deck metadata. Redis returns every hash field as a string, so
// decoding is weakly typed.
func (p *RedisProvider) Meta(ctx context.Context, deckID string) (Meta, error) {
	raw, err := p.rdb.HGetAll(ctx, keys.DeckMeta(deckID)).Result()
	if err != nil {
		return Meta{}, err
	}
	if len(raw) == 0 {
		return Meta{}, ErrDeckNotFound
	}
	var m Meta
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &m,
	})
	if err != nil {
		return Meta{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Meta{}, fmt.Errorf("decode deck meta: %w", err)
	}
	return m, nil
}

func (p *RedisProvider) Discard(ctx context.Context, deckID string) error {
	return p.rdb.Del(ctx, keys.DeckCards(deckID), keys.DeckMeta(deckID)).Err()
}
