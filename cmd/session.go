package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/arcanaland/deckview/internal/catalog"
	"github.com/arcanaland/deckview/internal/config"
	"github.com/arcanaland/deckview/internal/loader"
	"github.com/arcanaland/deckview/internal/lookup"
	"github.com/arcanaland/deckview/internal/scryfall"
)

// session wires one page load: a fresh cache, the Scryfall client and the loader
type session struct {
	config  *config.Config
	catalog *catalog.Catalog
	api     *scryfall.Client
	lookup  *lookup.Client
	loader  *loader.Loader
}

func newSession() (*session, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	interval, err := cfg.Interval()
	if err != nil {
		return nil, err
	}
	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, err
	}

	api := scryfall.NewClient(cfg.UserAgent,
		scryfall.WithBaseURL(cfg.APIBaseURL),
		scryfall.WithTimeout(timeout),
		scryfall.WithRateLimit(interval))
	resolver := lookup.NewClient(api, lookup.NewCache(), logger.Named("lookup"))

	return &session{
		config:  cfg,
		catalog: cat,
		api:     api,
		lookup:  resolver,
		loader:  loader.New(resolver, loader.NewGate(interval), logger.Named("loader")),
	}, nil
}

func (s *session) load(ctx context.Context) (*loader.RenderSet, error) {
	logger.Info("loading deck",
		zap.String("catalog", catalogName(s.catalog)),
		zap.Int("entries", len(s.catalog.Entries())))
	return s.loader.LoadAll(ctx, s.catalog)
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	path, err := config.ResolveCatalogPath(catalogFlag, cfg)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return catalog.Default(), nil
	}

	c, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("error loading catalog: %w", err)
	}
	return c, nil
}

func catalogName(c *catalog.Catalog) string {
	switch {
	case c.Name != "":
		return c.Name
	case c.ID != "":
		return c.ID
	default:
		return "Deck"
	}
}
