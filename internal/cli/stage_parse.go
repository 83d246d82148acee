package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/energy-analytics-project/energy-dashboard-lib/internal/feedcfg"
	"github.com/energy-analytics-project/energy-dashboard-lib/internal/schema"
	"github.com/energy-analytics-project/energy-dashboard-lib/internal/sqlgen"
	"github.com/energy-analytics-project/energy-dashboard-lib/internal/stage"
	"github.com/energy-analytics-project/energy-dashboard-lib/internal/xmltree"
)

var stageParseCmd = &cobra.Command{
	Use:   "parse <name>",
	Short: "Transform every XML file in xml/ into a SQL script in sql/",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		dir := feedDir(name)
		sqlDir := filepath.Join(dir, "sql")
		if err := os.MkdirAll(sqlDir, 0o755); err != nil {
			return err
		}
		manifest, err := feedcfg.Load(filepath.Join(dir, "manifest.json"))
		if err != nil {
			return err
		}

		driver := &stage.Driver{
			Resource:     name,
			StageName:    "parse",
			SourceDir:    filepath.Join(dir, "xml"),
			Pattern:      "*.xml",
			ManifestPath: filepath.Join(sqlDir, "parsed.txt"),
			Obs:          newObserver(),
			Quiet:        cfg.Quiet,
			Process: func(ctx context.Context, path string) error {
				return parseOne(path, sqlDir, manifest.PKExclusions)
			},
		}
		seq, err := driver.Run(context.Background())
		if err != nil {
			return err
		}
		return reportFailures(seq)
	},
}

func parseOne(xmlPath, sqlDir string, exclusions []string) error {
	f, err := os.Open(xmlPath)
	if err != nil {
		return err
	}
	defer f.Close()

	rootName, root, err := xmltree.Parse(f)
	if err != nil {
		return err
	}
	model, err := schema.Infer(rootName, root, exclusions)
	if err != nil {
		return err
	}
	script, err := sqlgen.Generate(rootName, root, model)
	if err != nil {
		return err
	}

	out := filepath.Join(sqlDir, stemOf(xmlPath)+".sql")
	return os.WriteFile(out, []byte(script), 0o644)
}

func stemOf(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return base[:len(base)-len(ext)]
}

func init() {
	rootCmd.AddCommand(stageParseCmd)
}
