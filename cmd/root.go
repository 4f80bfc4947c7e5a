package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	catalogFlag string
	verboseFlag bool

	logger = zap.NewNop()
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "deckview",
	Short: "Browse a Magic: The Gathering deck list as an image grid",
	Long: `Deckview resolves a categorised deck list against the Scryfall card database and
renders it as an image grid you can filter by category and inspect card by card.

The deck comes from --catalog, the catalog set in the config file, a catalog
initialised with 'deckview catalog init', or the built-in list, in that order.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(verboseFlag)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&catalogFlag, "catalog", "c", "", "path to a deck catalog (TOML)")
	RootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "log every lookup")

	RootCmd.AddCommand(validateCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	return cfg.Build()
}
