package stage

import (
	"context"
	"iter"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/energy-analytics-project/energy-dashboard-lib/internal/observer"
)

// Processor does the actual per-file work for one stage: unzip one
// archive, parse one XML file, insert one SQL script.
type Processor func(ctx context.Context, path string) error

// Driver is the generic per-stage runner: a resource name, a source
// directory + extension filter, a manifest, and the stage-specific
// Processor.
type Driver struct {
	Resource     string
	StageName    string
	SourceDir    string
	Pattern      string
	ManifestPath string
	Process      Processor
	Obs          observer.Observer
	Quiet        bool
}

// Result is one processed (or failed) file, yielded by Run's iterator.
type Result struct {
	File string
	Err  error
}

// Run lists candidates, subtracts the manifest, and returns a
// pull-based iterator over per-file results: a lazy sequence that
// yields one processed-file record at a time. The manifest is appended
// to (and flushed) immediately
// after each successful file, inside the iterator body, so a consumer
// that stops pulling early never loses already-completed work.
func (d *Driver) Run(ctx context.Context) (iter.Seq[Result], error) {
	obs := d.Obs
	if obs == nil {
		obs = observer.Nop{}
	}

	m, err := LoadManifest(d.ManifestPath)
	if err != nil {
		return nil, err
	}
	candidates, err := ListCandidates(d.SourceDir, d.Pattern)
	if err != nil {
		return nil, err
	}
	pending := Pending(candidates, m)

	var bar *progressbar.ProgressBar
	if !d.Quiet && len(pending) > 0 {
		bar = progressbar.NewOptions(len(pending),
			progressbar.OptionSetDescription(d.StageName),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionShowElapsedTimeOnFinish(),
		)
	}

	return func(yield func(Result) bool) {
		for _, file := range pending {
			if ctx.Err() != nil {
				return
			}
			path := filepath.Join(d.SourceDir, file)
			err := d.Process(ctx, path)
			if err != nil {
				obs.Record(d.Resource, d.StageName, file, "error", err.Error())
				if !yield(Result{File: file, Err: err}) {
					return
				}
				continue
			}
			if aerr := m.Append(file); aerr != nil {
				obs.Record(d.Resource, d.StageName, file, "error", aerr.Error())
				if !yield(Result{File: file, Err: aerr}) {
					return
				}
				continue
			}
			obs.Record(d.Resource, d.StageName, file, "done", "processed")
			if bar != nil {
				_ = bar.Add(1)
			}
			if !yield(Result{File: file}) {
				return
			}
		}
	}, nil
}
