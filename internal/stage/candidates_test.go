package stage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("x"), 0o644))
	}
}

func TestListCandidatesFiltersByPatternAndSorts(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "b.xml", "a.xml", "c.txt")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.xml"), 0o755))

	got, err := ListCandidates(dir, "*.xml")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.xml", "b.xml"}, got)
}

func TestPendingSubtractsManifest(t *testing.T) {
	m := &Manifest{done: map[string]bool{"a.xml": true}}
	got := Pending([]string{"a.xml", "b.xml", "c.xml"}, m)
	assert.Equal(t, []string{"b.xml", "c.xml"}, got)
}

func TestPendingPreservesOrder(t *testing.T) {
	m := &Manifest{done: map[string]bool{}}
	got := Pending([]string{"z.xml", "a.xml"}, m)
	assert.Equal(t, []string{"z.xml", "a.xml"}, got)
}
