package stage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	records []string
}

func (r *recordingObserver) Record(resource, stage, file, kind, detail string) {
	r.records = append(r.records, resource+"/"+stage+"/"+file+"/"+kind)
}

func TestDriverRunProcessesPendingAndAppendsManifest(t *testing.T) {
	src := t.TempDir()
	writeFiles(t, src, "a.txt", "b.txt")
	manifestPath := filepath.Join(t.TempDir(), "manifest.txt")

	var processed []string
	obs := &recordingObserver{}
	d := &Driver{
		Resource:     "res",
		StageName:    "stage",
		SourceDir:    src,
		Pattern:      "*.txt",
		ManifestPath: manifestPath,
		Obs:          obs,
		Quiet:        true,
		Process: func(ctx context.Context, path string) error {
			processed = append(processed, filepath.Base(path))
			return nil
		},
	}

	seq, err := d.Run(context.Background())
	require.NoError(t, err)

	var results []Result
	for r := range seq {
		results = append(results, r)
	}

	assert.Equal(t, []string{"a.txt", "b.txt"}, processed)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.NoError(t, r.Err)
	}

	m, err := LoadManifest(manifestPath)
	require.NoError(t, err)
	assert.True(t, m.Done("a.txt"))
	assert.True(t, m.Done("b.txt"))

	assert.Contains(t, obs.records, "res/stage/a.txt/done")
	assert.Contains(t, obs.records, "res/stage/b.txt/done")
}

func TestDriverRunSkipsAlreadyDoneFiles(t *testing.T) {
	src := t.TempDir()
	writeFiles(t, src, "a.txt", "b.txt")
	manifestPath := filepath.Join(t.TempDir(), "manifest.txt")
	require.NoError(t, os.WriteFile(manifestPath, []byte("a.txt\n"), 0o644))

	var processed []string
	d := &Driver{
		SourceDir:    src,
		Pattern:      "*.txt",
		ManifestPath: manifestPath,
		Quiet:        true,
		Process: func(ctx context.Context, path string) error {
			processed = append(processed, filepath.Base(path))
			return nil
		},
	}

	seq, err := d.Run(context.Background())
	require.NoError(t, err)
	for range seq {
	}

	assert.Equal(t, []string{"b.txt"}, processed)
}

func TestDriverRunDoesNotAppendFailedFile(t *testing.T) {
	src := t.TempDir()
	writeFiles(t, src, "bad.txt")
	manifestPath := filepath.Join(t.TempDir(), "manifest.txt")

	d := &Driver{
		SourceDir:    src,
		Pattern:      "*.txt",
		ManifestPath: manifestPath,
		Quiet:        true,
		Process: func(ctx context.Context, path string) error {
			return errors.New("boom")
		},
	}

	seq, err := d.Run(context.Background())
	require.NoError(t, err)

	var results []Result
	for r := range seq {
		results = append(results, r)
	}
	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)

	m, err := LoadManifest(manifestPath)
	require.NoError(t, err)
	assert.False(t, m.Done("bad.txt"))
}

func TestDriverRunStopsOnCancelledContext(t *testing.T) {
	src := t.TempDir()
	writeFiles(t, src, "a.txt", "b.txt")
	manifestPath := filepath.Join(t.TempDir(), "manifest.txt")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var processed []string
	d := &Driver{
		SourceDir:    src,
		Pattern:      "*.txt",
		ManifestPath: manifestPath,
		Quiet:        true,
		Process: func(ctx context.Context, path string) error {
			processed = append(processed, filepath.Base(path))
			return nil
		},
	}

	seq, err := d.Run(ctx)
	require.NoError(t, err)
	for range seq {
	}

	assert.Empty(t, processed)
}

func TestDriverRunYieldFalseStopsEarly(t *testing.T) {
	src := t.TempDir()
	writeFiles(t, src, "a.txt", "b.txt", "c.txt")
	manifestPath := filepath.Join(t.TempDir(), "manifest.txt")

	d := &Driver{
		SourceDir:    src,
		Pattern:      "*.txt",
		ManifestPath: manifestPath,
		Quiet:        true,
		Process: func(ctx context.Context, path string) error {
			return nil
		},
	}

	seq, err := d.Run(context.Background())
	require.NoError(t, err)

	count := 0
	for range seq {
		count++
		if count == 1 {
			break
		}
	}
	assert.Equal(t, 1, count)
}
