package observer

import "github.com/sirupsen/logrus"

// LogrusObserver records every event as a structured JSON line.
type LogrusObserver struct {
	log *logrus.Logger
}

// NewLogrusObserver returns an Observer backed by a JSON-formatting
// logrus.Logger writing to the given logger's configured output.
func NewLogrusObserver(log *logrus.Logger) *LogrusObserver {
	log.SetFormatter(&logrus.JSONFormatter{})
	return &LogrusObserver{log: log}
}

func (o *LogrusObserver) Record(resource, stage, file, kind, detail string) {
	entry := o.log.WithFields(logrus.Fields{
		"resource": resource,
		"stage":    stage,
		"file":     file,
		"kind":     kind,
	})
	if kind == "error" {
		entry.Error(detail)
		return
	}
	entry.Info(detail)
}
