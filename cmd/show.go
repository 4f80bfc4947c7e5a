package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/arcanaland/deckview/internal/ansi"
	"github.com/arcanaland/deckview/internal/card"
	"github.com/arcanaland/deckview/internal/catalog"
)

const (
	artWidth  = 36
	artHeight = 25
)

var showCmd = &cobra.Command{
	Use:   "show [card name]",
	Short: "Display a card's details with ANSI art",
	Long: `Show looks a card up on Scryfall by fuzzy name and prints the same details the
card view of the page shows, next to its image rendered as ANSI art.

If the card is part of the current deck, its category is shown as well. The art
uses 24-bit colour when $COLORTERM is truecolor or 24bit, the 256-colour palette
otherwise, and is left out when stdout is not a terminal.

Examples:
  deckview show "Esper Sentinel"
  deckview show --no-art "rhystic study"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args, " ")
		noArt, _ := cmd.Flags().GetBool("no-art")

		s, err := newSession()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		c, ok := s.lookup.Resolve(ctx, name)
		if !ok {
			if r, cached := s.lookup.Cache().Get(name); cached && r.Err != nil {
				return fmt.Errorf("error getting card: %w", r.Err)
			}
			return fmt.Errorf("card not found: %s", name)
		}
		if entry, found := findEntry(s.catalog, name, c.Name); found {
			c = c.WithCategory(entry.Category)
		}

		var art string
		switch {
		case noArt:
		case !term.IsTerminal(int(os.Stdout.Fd())):
			logger.Debug("stdout is not a terminal, skipping card art")
		default:
			art, err = cardArt(cmd, s, c, ansi.ModeFor(os.Getenv("COLORTERM")))
			if err != nil {
				logger.Warn("no card art", zap.String("card", c.Name), zap.Error(err))
			}
		}

		displayCard(c, art)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)

	showCmd.Flags().Bool("no-art", false, "skip fetching the card image")
}

func findEntry(c *catalog.Catalog, names ...string) (catalog.Entry, bool) {
	for _, e := range c.Entries() {
		for _, name := range names {
			if strings.EqualFold(e.Name, name) {
				return e, true
			}
		}
	}
	return catalog.Entry{}, false
}

func cardArt(cmd *cobra.Command, s *session, c *card.Card, mode ansi.Mode) (string, error) {
	u := c.DetailImageURL()
	if u == "" {
		return "", errors.New("card has no image")
	}

	img, err := s.api.Image(cmd.Context(), u)
	if err != nil {
		return "", err
	}
	return ansi.FromImage(img, artWidth, artHeight, mode), nil
}

// wrapText wraps text to a specified width, keeping oracle line breaks
func wrapText(text string, width int) []string {
	if width < 10 {
		width = 40
	}

	var result []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			result = append(result, "")
			continue
		}

		line := words[0]
		for _, word := range words[1:] {
			if len(line)+1+len(word) <= width {
				line += " " + word
				continue
			}
			result = append(result, line)
			line = word
		}
		result = append(result, line)
	}
	return result
}

func label(name string) string {
	return colorize.CyanString("%-11s", name+":")
}

func infoLines(c *card.Card, width int) []string {
	manaCost := c.ManaCost
	if manaCost == "" {
		manaCost = "N/A"
	}

	lines := []string{
		label("Card") + colorize.HiWhiteString("%s", c.Name),
		label("Mana Cost") + colorize.HiWhiteString("%s", manaCost),
		label("Type") + colorize.HiWhiteString("%s", c.TypeLine),
	}
	if pt, ok := c.PowerToughness(); ok {
		lines = append(lines, label("P/T")+colorize.HiWhiteString("%s", pt))
	}
	if c.Category != "" {
		lines = append(lines, label("Category")+colorize.HiWhiteString("%s", c.Category.Label()))
	}
	if c.OracleText != "" {
		lines = append(lines, "")
		lines = append(lines, wrapText(c.OracleText, width)...)
	}
	if c.ScryfallURI != "" {
		lines = append(lines, "", colorize.HiBlackString("%s", c.ScryfallURI))
	}
	return lines
}

// displayCard prints the ANSI art on the left and the details on the right
func displayCard(c *card.Card, art string) {
	var artLines []string
	if art != "" {
		artLines = strings.Split(strings.TrimRight(art, "\n"), "\n")
	}
	widest := 0
	for _, line := range artLines {
		if w := ansi.Width(line); w > widest {
			widest = w
		}
	}

	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = 80
	}

	infoStart := 0
	if widest > 0 {
		infoStart = widest + 4
	}
	info := infoLines(c, max(width-infoStart-4, 20))

	fmt.Println()
	for i := 0; i < max(len(artLines), len(info)); i++ {
		fmt.Print("  ")
		if i < len(artLines) {
			fmt.Print(artLines[i])
			fmt.Print(strings.Repeat(" ", infoStart-ansi.Width(artLines[i])))
		} else {
			fmt.Print(strings.Repeat(" ", infoStart))
		}
		if i < len(info) {
			fmt.Print(info[i])
		}
		fmt.Println()
	}
	fmt.Println()
}
