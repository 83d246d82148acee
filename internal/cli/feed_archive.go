package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/energy-analytics-project/energy-dashboard-lib/internal/archive"
)

var archiveDestDir string

var feedArchiveCmd = &cobra.Command{
	Use:   "archive <name>",
	Short: "Archive a feed directory to a local gzip-tar file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		dest := filepath.Join(archiveDestDir, name+".tar.gz")
		if err := archive.Create(feedDir(name), dest); err != nil {
			return err
		}
		fmt.Println(dest)
		return nil
	},
}

var feedRestoreCmd = &cobra.Command{
	Use:   "restore <name> <archive-path>",
	Short: "Restore a feed directory from a local gzip-tar archive",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, archivePath := args[0], args[1]
		dir, err := archive.Restore(archivePath, cfg.DataRoot, name)
		if err != nil {
			return err
		}
		fmt.Println(dir)
		return nil
	},
}

func init() {
	feedArchiveCmd.Flags().StringVar(&archiveDestDir, "dest-dir", ".", "directory to write the archive into")
	feedCmd.AddCommand(feedArchiveCmd)
	feedCmd.AddCommand(feedRestoreCmd)
}
