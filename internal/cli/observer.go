package cli

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/energy-analytics-project/energy-dashboard-lib/internal/observer"
)

// newObserver returns the structured-logging Observer every stage
// command records through. Verbose runs (-v / EDL_DEBUG) get a
// logrus-backed observer emitting one JSON line per event; otherwise
// events are discarded, matching cfg.Quiet/Debug's existing layering.
func newObserver() observer.Observer {
	if cfg == nil || !cfg.Debug {
		return observer.Nop{}
	}
	log := logrus.New()
	log.SetOutput(os.Stderr)
	return observer.NewLogrusObserver(log)
}
