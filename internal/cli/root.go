package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/energy-analytics-project/energy-dashboard-lib/internal/config"
)

var (
	verbose bool

	// cfg is populated by initConfig before any subcommand runs.
	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "edl",
	Short: "edl - energy market XML feeds, schema-inferred into SQLite",
	Long: `edl downloads energy-market XML reports, infers a relational
schema from their shape, and ingests them into per-feed SQLite
databases, one idempotent stage at a time.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to
// happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// initConfig loads the global ~/.config/edl/config.yaml configuration,
// falling back to defaults; a missing config file is not an error.
func initConfig() {
	loaded, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg = loaded
	if verbose {
		cfg.Debug = true
	}
}
