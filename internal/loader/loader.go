package loader

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/arcanaland/deckview/internal/card"
	"github.com/arcanaland/deckview/internal/catalog"
)

// DefaultInterval keeps successive lookups under Scryfall's ten requests per second
const DefaultInterval = 100 * time.Millisecond

// Gate blocks until the next lookup may be dispatched
type Gate interface {
	Wait(ctx context.Context) error
}

// Resolver turns a card name into a card
type Resolver interface {
	Resolve(ctx context.Context, name string) (*card.Card, bool)
}

// Delay is a Gate that pauses for a fixed duration on every Wait. The loader
// waits after each lookup of a category except the last, so the pause always
// separates the end of one lookup from the start of the next.
type Delay time.Duration

func (d Delay) Wait(ctx context.Context) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(time.Duration(d))
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// NewGate returns the default gate. A non-positive interval never blocks.
func NewGate(interval time.Duration) Gate {
	return Delay(interval)
}

// RenderSet is the ordered result of a load
type RenderSet struct {
	Cards []*card.Card

	// DisplayCount counts physical cards, so basics listed once may count several times
	DisplayCount int
}

// Loader resolves a whole catalog
type Loader struct {
	resolver Resolver
	gate     Gate
	logger   *zap.Logger
}

func New(resolver Resolver, gate Gate, logger *zap.Logger) *Loader {
	if gate == nil {
		gate = NewGate(DefaultInterval)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		resolver: resolver,
		gate:     gate,
		logger:   logger,
	}
}

// LoadAll resolves every entry in catalog order, one lookup at a time.
// Cards that cannot be resolved are left out. The only error is the
// context ending while waiting on the gate.
func (l *Loader) LoadAll(ctx context.Context, c *catalog.Catalog) (*RenderSet, error) {
	start := time.Now()
	var cards []*card.Card

	for _, section := range c.Sections {
		resolved := 0
		for i, name := range section.Cards {
			if i > 0 {
				if err := l.gate.Wait(ctx); err != nil {
					return nil, fmt.Errorf("loading %s: %w", section.Category, err)
				}
			}

			found, ok := l.resolver.Resolve(ctx, name)
			if !ok {
				continue
			}
			l.logger.Debug("card resolved",
				zap.String("card", name),
				zap.String("category", string(section.Category)))
			cards = append(cards, found.WithCategory(section.Category))
			resolved++
		}

		l.logger.Info("category loaded",
			zap.String("category", string(section.Category)),
			zap.Int("resolved", resolved),
			zap.Int("listed", len(section.Cards)))
	}

	set := &RenderSet{
		Cards:        CommanderFirst(cards),
		DisplayCount: c.Cardinality(),
	}

	l.logger.Info("deck loaded",
		zap.Int("cards", len(set.Cards)),
		zap.Int("display_count", set.DisplayCount),
		zap.Duration("elapsed", time.Since(start)))

	return set, nil
}

// CommanderFirst moves commander cards to the front, keeping every other card in place relative to the rest
func CommanderFirst(cards []*card.Card) []*card.Card {
	out := make([]*card.Card, 0, len(cards))
	for _, c := range cards {
		if c.IsCommander() {
			out = append(out, c)
		}
	}
	for _, c := range cards {
		if !c.IsCommander() {
			out = append(out, c)
		}
	}
	return out
}
