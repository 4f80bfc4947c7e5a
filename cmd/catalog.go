package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/deckview/internal/catalog"
	"github.com/arcanaland/deckview/internal/config"
)

// catalogCmd represents the catalog command group
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and manage the deck catalog",
	Long:  `Commands for inspecting the deck list that deckview loads.`,
}

// catalogListCmd prints the resolved catalog section by section
var catalogListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the categories and cards of the current catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}

		c, err := loadCatalog(cfg)
		if err != nil {
			return err
		}

		source := c.Path
		if source == "" {
			source = "built-in"
		}
		fmt.Printf("%s (%s)\n", colorize.HiWhiteString("%s", catalogName(c)), source)
		if c.Description != "" {
			fmt.Println(c.Description)
		}
		fmt.Println()

		showCards, _ := cmd.Flags().GetBool("cards")
		for _, s := range c.Sections {
			count := 0
			for _, name := range s.Cards {
				count += s.Copies(name)
			}
			fmt.Printf("  %s %s %d\n",
				colorize.CyanString("%-12s", s.Category.Label()),
				colorize.HiBlackString("%-14s", s.Category),
				count)

			if !showCards {
				continue
			}
			for _, name := range s.Cards {
				if n := s.Copies(name); n > 1 {
					fmt.Printf("      %dx %s\n", n, name)
				} else {
					fmt.Printf("      %s\n", name)
				}
			}
		}

		fmt.Printf("\n%d entries, %d cards\n", len(c.Entries()), c.Cardinality())
		return nil
	},
}

// catalogInitCmd writes the built-in catalog where deckview looks for it
var catalogInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the built-in catalog to your data directory for editing",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.GetDefaultCatalogPath()
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("catalog already exists at %s (use --force to overwrite)", path)
		}

		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("error creating data directory: %w", err)
		}
		if err := os.WriteFile(path, catalog.DefaultTOML(), 0644); err != nil {
			return fmt.Errorf("error writing catalog: %w", err)
		}

		fmt.Println("Catalog initialized at:", path)

		if _, err := config.LoadConfig(); err != nil {
			return fmt.Errorf("error initializing config: %w", err)
		}
		fmt.Println("Config file initialized at:", config.GetConfigFilePath())
		return nil
	},
}

func init() {
	RootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogInitCmd)

	catalogListCmd.Flags().Bool("cards", false, "list every card under its category")
	catalogInitCmd.Flags().Bool("force", false, "overwrite an existing catalog")
}
