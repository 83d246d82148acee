// Package observer is the injected logging collaborator every stage
// command and stage driver reports through (the Ingest Sink's outcomes
// are recorded by the insert stage's driver), an interface rather than a package
// global, so tests can swap in Nop and production wires a real logger.
package observer

// Observer receives one structured record per notable event. Kind is
// a short machine-readable tag ("start", "skip", "done", "error", ...);
// Detail is a free-form human-readable message.
type Observer interface {
	Record(resource, stage, file, kind, detail string)
}

// Nop discards every record; used in tests that don't assert on logs.
type Nop struct{}

func (Nop) Record(resource, stage, file, kind, detail string) {}
