package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"
)

// feedCmd groups every feed-management subcommand (create, list,
// status, reset, archive, restore), the Go realization of the
// Python CLI's `edl feed ...` subcommand family.
var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Manage feed directories",
}

func init() {
	rootCmd.AddCommand(feedCmd)
}

func feedDir(feed string) string {
	return filepath.Join(cfg.DataRoot, "data", feed)
}
