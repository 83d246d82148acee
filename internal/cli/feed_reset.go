package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var stageDirs = map[string]string{
	"download": "zip",
	"unzip":    "xml",
	"parse":    "sql",
	"insert":   "db",
}

var feedResetCmd = &cobra.Command{
	Use:   "reset <name> <stage>",
	Short: "Remove and recreate one stage's working directory",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, stageName := args[0], args[1]
		sub, ok := stageDirs[stageName]
		if !ok {
			return &unknownStageError{Stage: stageName}
		}
		p := filepath.Join(feedDir(name), sub)
		if err := os.RemoveAll(p); err != nil {
			return err
		}
		return os.MkdirAll(p, 0o755)
	},
}

type unknownStageError struct{ Stage string }

func (e *unknownStageError) Error() string { return "cli: unknown stage " + e.Stage }

func init() {
	feedCmd.AddCommand(feedResetCmd)
}
