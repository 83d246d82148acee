package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/energy-analytics-project/energy-dashboard-lib/internal/stage"
)

var statusTxtFiles = []struct {
	label string
	path  string
}{
	{"downloaded", filepath.Join("zip", "downloaded.txt")},
	{"unzipped", filepath.Join("xml", "unzipped.txt")},
	{"parsed", filepath.Join("sql", "parsed.txt")},
	{"inserted", filepath.Join("db", "inserted.txt")},
}

var feedStatusCmd = &cobra.Command{
	Use:   "status <name>",
	Short: "Report per-stage manifest line counts for a feed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := feedDir(args[0])
		fmt.Printf("feed name,downloaded,unzipped,parsed,inserted\n")
		counts := make([]int, len(statusTxtFiles))
		for i, f := range statusTxtFiles {
			m, err := stage.LoadManifest(filepath.Join(dir, f.path))
			if err != nil {
				return err
			}
			counts[i] = m.Count()
		}
		fmt.Printf("%s,%d,%d,%d,%d\n", args[0], counts[0], counts[1], counts[2], counts[3])
		return nil
	},
}

func init() {
	feedCmd.AddCommand(feedStatusCmd)
}
