package cli

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/energy-analytics-project/energy-dashboard-lib/internal/stage"
)

var stageUnzipCmd = &cobra.Command{
	Use:   "unzip <name>",
	Short: "Extract every XML file from zip/ into xml/",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		dir := feedDir(name)
		xmlDir := filepath.Join(dir, "xml")
		if err := os.MkdirAll(xmlDir, 0o755); err != nil {
			return err
		}

		driver := &stage.Driver{
			Resource:     name,
			StageName:    "unzip",
			SourceDir:    filepath.Join(dir, "zip"),
			Pattern:      "*.zip",
			ManifestPath: filepath.Join(dir, "xml", "unzipped.txt"),
			Obs:          newObserver(),
			Quiet:        cfg.Quiet,
			Process: func(ctx context.Context, path string) error {
				return unzipOne(path, xmlDir)
			},
		}
		seq, err := driver.Run(context.Background())
		if err != nil {
			return err
		}
		return reportFailures(seq)
	},
}

func unzipOne(zipPath, destDir string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		out, err := os.Create(filepath.Join(destDir, filepath.Base(f.Name)))
		if err != nil {
			rc.Close()
			return err
		}
		_, err = io.Copy(out, rc)
		rc.Close()
		out.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(stageUnzipCmd)
}
