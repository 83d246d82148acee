package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
)

var feedsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List feed directories under the data root",
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir := filepath.Join(cfg.DataRoot, "data")
		entries, err := os.ReadDir(dataDir)
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		var names []string
		for _, e := range entries {
			if e.IsDir() {
				names = append(names, e.Name())
			}
		}
		sort.Strings(names)
		for _, n := range names {
			fmt.Println(n)
		}
		return nil
	},
}

func init() {
	feedCmd.AddCommand(feedsListCmd)
}
