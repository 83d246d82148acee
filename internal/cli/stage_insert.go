package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/energy-analytics-project/energy-dashboard-lib/internal/ingest"
	"github.com/energy-analytics-project/energy-dashboard-lib/internal/stage"
)

var stageInsertCmd = &cobra.Command{
	Use:   "insert <name>",
	Short: "Execute every SQL script in sql/ against a database in db/",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		dir := feedDir(name)
		dbDir := filepath.Join(dir, "db")
		if err := os.MkdirAll(dbDir, 0o755); err != nil {
			return err
		}

		var sink ingest.Sink
		driver := &stage.Driver{
			Resource:     name,
			StageName:    "insert",
			SourceDir:    filepath.Join(dir, "sql"),
			Pattern:      "*.sql",
			ManifestPath: filepath.Join(dbDir, "inserted.txt"),
			Obs:          newObserver(),
			Quiet:        cfg.Quiet,
			Process: func(ctx context.Context, path string) error {
				return sink.Execute(ctx, path, dbDir, name)
			},
		}
		seq, err := driver.Run(context.Background())
		if err != nil {
			return err
		}
		return reportFailures(seq)
	},
}

func init() {
	rootCmd.AddCommand(stageInsertCmd)
}
