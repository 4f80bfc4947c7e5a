package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arcanaland/deckview/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Load the deck and serve the card grid in your browser",
	Long: `Serve resolves every card of the deck once, then serves the page locally.
Filters, the grid/list toggle and the card detail view are plain links, so the
page works without any client-side code beyond the Escape shortcut.

Examples:
  deckview serve
  deckview serve --addr 127.0.0.1:9000 --catalog ./my-deck.toml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		s, err := newSession()
		if err != nil {
			return err
		}

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = s.config.ListenAddr
		}

		set, err := s.load(ctx)
		if err != nil {
			return fmt.Errorf("error loading deck: %w", err)
		}

		srv := &http.Server{
			Addr:         addr,
			Handler:      web.NewHandler(catalogName(s.catalog), s.catalog.Description, set, logger.Named("http")),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("serving deck", zap.String("addr", addr), zap.Int("cards", len(set.Cards)))
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "listen address (default from config, :8080)")
}
