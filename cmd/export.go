package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/arcanaland/deckview/internal/interact"
	"github.com/arcanaland/deckview/internal/web"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the card grid to a standalone HTML file",
	Long: `Export resolves the deck and writes the page as it looks for the given filter
and view. The file is a snapshot: its controls point back at the page itself.
Use 'deckview serve' to switch filters and open cards.

Examples:
  deckview export -o deck.html
  deckview export --filter removal --view list -o removal.html`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		output, _ := cmd.Flags().GetString("output")
		filter, _ := cmd.Flags().GetString("filter")
		view, _ := cmd.Flags().GetString("view")

		f, v := interact.Filter(filter), interact.View(view)
		if !f.Valid() {
			return fmt.Errorf("unknown filter: %s", filter)
		}
		if !v.Valid() {
			return fmt.Errorf("unknown view: %s", view)
		}
		state := interact.Initial().SelectFilter(f).SelectView(v)

		s, err := newSession()
		if err != nil {
			return err
		}

		set, err := s.load(ctx)
		if err != nil {
			return fmt.Errorf("error loading deck: %w", err)
		}

		err = writeFile(output, func(w io.Writer) error {
			return web.WriteSnapshot(w, catalogName(s.catalog), s.catalog.Description, set, state)
		})
		if err != nil {
			return err
		}

		fmt.Printf("Wrote %d cards to %s\n", len(set.Cards), output)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("output", "o", "deck.html", "file to write")
	exportCmd.Flags().String("filter", string(interact.FilterAll), "category filter to apply (all or a category tag)")
	exportCmd.Flags().String("view", string(interact.Grid), "layout: grid or list")
}

// writeFile renders into a temporary file next to path and renames it into
// place, so a failed render never leaves a partial file behind
func writeFile(path string, render func(io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err := render(tmp); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("error rendering %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	return nil
}
