package cli

import (
	"fmt"
	"iter"
	"os"

	"github.com/energy-analytics-project/energy-dashboard-lib/internal/stage"
)

// reportFailures drains seq to completion, printing a line per failed
// file without stopping the pipeline early. Per-file errors abort only
// that file; the command's own exit code stays 0 as long as at least
// one file in this run succeeded. If every attempted file failed, the
// command fails too; a driver that cannot start at all reports its own
// error before reportFailures is ever reached.
func reportFailures(seq iter.Seq[stage.Result]) error {
	var total, succeeded, failed int
	for r := range seq {
		total++
		if r.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "%s: %v\n", r.File, r.Err)
			continue
		}
		succeeded++
	}
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d/%d files failed\n", failed, total)
	}
	if total > 0 && succeeded == 0 {
		return fmt.Errorf("all %d files failed", total)
	}
	return nil
}
