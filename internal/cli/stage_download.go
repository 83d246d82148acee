package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/energy-analytics-project/energy-dashboard-lib/internal/download"
	"github.com/energy-analytics-project/energy-dashboard-lib/internal/feedcfg"
	"github.com/energy-analytics-project/energy-dashboard-lib/internal/stage"
)

var stageDownloadCmd = &cobra.Command{
	Use:   "download <name>",
	Short: "Download this feed's date-range URLs into zip/",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		dir := feedDir(name)
		m, err := feedcfg.Load(filepath.Join(dir, "manifest.json"))
		if err != nil {
			return err
		}
		obs := newObserver()

		start := time.Date(m.StartDate[0], time.Month(m.StartDate[1]), m.StartDate[2], 0, 0, 0, 0, time.UTC)
		var pairs [][2]time.Time
		for d := start; d.Before(time.Now().UTC()); d = d.AddDate(0, 0, 1) {
			pairs = append(pairs, [2]time.Time{d, d.AddDate(0, 0, 1)})
		}
		urls := download.GenerateURLs(pairs, m.URL, "20060102")

		zipDir := filepath.Join(dir, "zip")
		statePath := filepath.Join(zipDir, "downloaded.txt")
		delay := time.Duration(m.DownloadDelaySecs * float64(time.Second))

		manifest, err := stage.LoadManifest(statePath)
		if err != nil {
			return err
		}
		var pending []string
		for _, u := range urls {
			if !manifest.Done(u) {
				pending = append(pending, u)
			}
		}
		fetched, errs := download.FetchAll(pending, zipDir, delay)
		for _, u := range fetched {
			if err := manifest.Append(u); err != nil {
				return err
			}
			obs.Record(name, "download", u, "done", "downloaded")
		}
		for _, e := range errs {
			obs.Record(name, "download", "", "error", e.Error())
		}
		fmt.Printf("downloaded %d/%d\n", len(fetched), len(pending))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stageDownloadCmd)
}
