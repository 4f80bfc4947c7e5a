package lookup

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/arcanaland/deckview/internal/card"
)

var errEmpty = errors.New("empty lookup result")

// Fetcher resolves a raw card name against the card database
type Fetcher interface {
	Named(ctx context.Context, name string) (*card.Card, error)
}

// Client resolves card names through a session cache
type Client struct {
	fetcher Fetcher
	cache   *Cache
	logger  *zap.Logger
}

func NewClient(fetcher Fetcher, cache *Cache, logger *zap.Logger) *Client {
	if cache == nil {
		cache = NewCache()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		fetcher: fetcher,
		cache:   cache,
		logger:  logger,
	}
}

// Resolve returns the card for name, or false when it could not be found.
// Each distinct name reaches the fetcher at most once; failures are remembered
// and never retried.
func (c *Client) Resolve(ctx context.Context, name string) (*card.Card, bool) {
	if r, ok := c.cache.Get(name); ok {
		return r.Card, r.Found()
	}

	found, err := c.fetcher.Named(ctx, name)
	if err == nil && found == nil {
		err = errEmpty
	}
	if err != nil {
		c.logger.Warn("card lookup failed", zap.String("card", name), zap.Error(err))
		// a cancelled session is not the card's fault
		if ctx.Err() == nil {
			c.cache.Set(name, Result{Err: err})
		}
		return nil, false
	}

	c.cache.Set(name, Result{Card: found})
	return found, true
}

// Cache exposes the session cache
func (c *Client) Cache() *Cache {
	return c.cache
}
