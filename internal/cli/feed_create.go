package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/energy-analytics-project/energy-dashboard-lib/internal/feedcfg"
	"github.com/energy-analytics-project/energy-dashboard-lib/internal/scaffold"
)

var (
	createURL          string
	createNamespace    string
	createDelaySecs    float64
	createExclusions   []string
	createStartYear    int
	createStartMonth   int
	createStartDay     int
)

var feedCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Scaffold a new feed directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		m := &feedcfg.Manifest{
			Name:              name,
			URL:               createURL,
			StartDate:         [3]int{createStartYear, createStartMonth, createStartDay},
			DownloadDelaySecs: createDelaySecs,
			XMLNamespace:      createNamespace,
			PKExclusions:      createExclusions,
		}
		if len(m.PKExclusions) == 0 {
			m.PKExclusions = feedcfg.DefaultPKExclusions
		}
		dir, err := scaffold.Create(cfg.DataRoot, name, m)
		if err != nil {
			return err
		}
		fmt.Println(dir)
		return nil
	},
}

func init() {
	feedCreateCmd.Flags().StringVar(&createURL, "url", "", "download URL template, with _START_/_END_ placeholders")
	feedCreateCmd.Flags().StringVar(&createNamespace, "xml-namespace", "", "XML namespace to strip from parsed names")
	feedCreateCmd.Flags().Float64Var(&createDelaySecs, "download-delay-secs", 1.0, "delay between download requests")
	feedCreateCmd.Flags().StringSliceVar(&createExclusions, "pk-exclusion", nil, "column name excluded from inferred primary keys (repeatable)")
	feedCreateCmd.Flags().IntVar(&createStartYear, "start-year", 0, "feed start year")
	feedCreateCmd.Flags().IntVar(&createStartMonth, "start-month", 1, "feed start month")
	feedCreateCmd.Flags().IntVar(&createStartDay, "start-day", 1, "feed start day")
	feedCmd.AddCommand(feedCreateCmd)
}
