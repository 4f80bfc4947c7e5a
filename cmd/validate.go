package cmd

import (
	"fmt"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/deckview/internal/config"
	"github.com/arcanaland/deckview/internal/validator"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a deck catalog file",
	Long: `Validate checks a deck catalog for unknown categories, empty names and bad copy
counts, and warns about anything that loads but is probably a mistake.
Without a path it checks the catalog deckview would load.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := catalogFlag
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("error loading config: %w", err)
			}
			path, err = config.ResolveCatalogPath("", cfg)
			if err != nil {
				return err
			}
		}
		if path == "" {
			fmt.Println("No catalog file configured; the built-in catalog is in use.")
			fmt.Println("Run 'deckview catalog init' to write it out for editing.")
			return nil
		}

		v := validator.NewValidator(path)
		results, err := v.Validate()
		if err != nil {
			return fmt.Errorf("validation error: %w", err)
		}

		fmt.Println("Validation Results:")
		fmt.Println("-------------------")

		if len(results.Errors) == 0 {
			colorize.Green("✅ Catalog '%s' is valid.", path)
		} else {
			colorize.Red("❌ Catalog '%s' has %d validation errors:", path, len(results.Errors))
			for i, err := range results.Errors {
				fmt.Printf("%d. %s\n", i+1, err)
			}
		}

		if len(results.Warnings) > 0 {
			colorize.Yellow("\nWarnings:")
			for i, warn := range results.Warnings {
				fmt.Printf("%d. %s\n", i+1, warn)
			}
		}

		if len(results.Errors) > 0 {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}
