package ingest

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/mattn/go-sqlite3"

	"github.com/energy-analytics-project/energy-dashboard-lib/internal/schema"
	"github.com/energy-analytics-project/energy-dashboard-lib/internal/sqlgen"
	"github.com/energy-analytics-project/energy-dashboard-lib/internal/xmltree"
)

func generateScript(t *testing.T, doc string, exclusions []string) string {
	t.Helper()
	name, root, err := xmltree.Parse(strings.NewReader(doc))
	require.NoError(t, err)
	m, err := schema.Infer(name, root, exclusions)
	require.NoError(t, err)
	script, err := sqlgen.Generate(name, root, m)
	require.NoError(t, err)
	return script
}

// TestEndToEndMinimal exercises S1: a minimal document with one child
// table carrying a foreign key back to its parent. The xmlns attribute
// is itself an ordinary scalar child of R (sanitized to "xmlns"), so R
// gets a real primary key rather than a synthesized id.
func TestEndToEndMinimal(t *testing.T) {
	script := generateScript(t, `<R xmlns="x"><A><v>1</v></A></R>`, nil)
	assert.Contains(t, script, "CREATE TABLE IF NOT EXISTS r (")
	assert.Contains(t, script, "xmlns TEXT")
	assert.Contains(t, script, "PRIMARY KEY (xmlns)")
	assert.Contains(t, script, "CREATE TABLE IF NOT EXISTS a (\n    v INTEGER")
	assert.Contains(t, script, "FOREIGN KEY (r_xmlns)\n        REFERENCES r(xmlns)")

	dbDir := t.TempDir()
	scriptPath := filepath.Join(t.TempDir(), "r.sql")
	require.NoError(t, os.WriteFile(scriptPath, []byte(script), 0o644))

	var sink Sink
	require.NoError(t, sink.Execute(context.Background(), scriptPath, dbDir, "r"))

	db, err := sql.Open("sqlite3", filepath.Join(dbDir, "r_0.db"))
	require.NoError(t, err)
	defer db.Close()

	var v int
	var fk string
	require.NoError(t, db.QueryRow("SELECT v, r_xmlns FROM a").Scan(&v, &fk))
	assert.Equal(t, 1, v)
	assert.Equal(t, "x", fk)
}

// TestEndToEndRepeatedSibling exercises S2: two ITEM siblings collapse
// into one table, both rows carrying the same parent FK tuple.
func TestEndToEndRepeatedSibling(t *testing.T) {
	script := generateScript(t, `<LIST><ITEM><v>1</v></ITEM><ITEM><v>2</v></ITEM></LIST>`, nil)

	dbDir := t.TempDir()
	scriptPath := filepath.Join(t.TempDir(), "list.sql")
	require.NoError(t, os.WriteFile(scriptPath, []byte(script), 0o644))

	var sink Sink
	require.NoError(t, sink.Execute(context.Background(), scriptPath, dbDir, "list"))

	db, err := sql.Open("sqlite3", filepath.Join(dbDir, "list_0.db"))
	require.NoError(t, err)
	defer db.Close()

	rows, err := db.Query("SELECT v, list_id FROM item ORDER BY v")
	require.NoError(t, err)
	defer rows.Close()

	var fks []string
	var vs []int
	for rows.Next() {
		var v int
		var fk string
		require.NoError(t, rows.Scan(&v, &fk))
		vs = append(vs, v)
		fks = append(fks, fk)
	}
	assert.Equal(t, []int{1, 2}, vs)
	require.Len(t, fks, 2)
	assert.Equal(t, fks[0], fks[1])
}

// TestEndToEndEmptyParent exercises S3: a parent with no scalar
// children gets a synthesized TEXT id, the child keeps its own scalar
// primary key and carries the parent FK.
func TestEndToEndEmptyParent(t *testing.T) {
	script := generateScript(t, `<OUTER><INNER><x>1</x></INNER></OUTER>`, nil)
	assert.Contains(t, script, "CREATE TABLE IF NOT EXISTS outer (\n    id TEXT,\n    PRIMARY KEY (id)\n);")
	assert.Contains(t, script, "x INTEGER")
	assert.Contains(t, script, "outer_id TEXT")
	assert.Contains(t, script, "FOREIGN KEY (outer_id)\n        REFERENCES outer(id)")
	assert.Contains(t, script, "PRIMARY KEY (x)")
}

// TestEndToEndIdempotentReRun exercises S4: ingesting the same document
// twice into the same database yields the same row count as one
// ingest, since rows are inserted with INSERT OR IGNORE.
func TestEndToEndIdempotentReRun(t *testing.T) {
	script := generateScript(t, `<R xmlns="x"><A><v>1</v></A></R>`, nil)

	dbDir := t.TempDir()
	scriptPath := filepath.Join(t.TempDir(), "r.sql")
	require.NoError(t, os.WriteFile(scriptPath, []byte(script), 0o644))

	var sink Sink
	require.NoError(t, sink.Execute(context.Background(), scriptPath, dbDir, "r"))

	db, err := sql.Open("sqlite3", filepath.Join(dbDir, "r_0.db"))
	require.NoError(t, err)
	defer db.Close()

	// Re-run the same script against the same already-populated file.
	_, err = db.Exec(script)
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM a").Scan(&count))
	assert.Equal(t, 1, count)
}

// TestEndToEndExclusionList exercises S5: excluded columns are dropped
// from the primary key (but remain ordinary local columns).
func TestEndToEndExclusionList(t *testing.T) {
	script := generateScript(t, `<R><A><opr_date>2024-01-01</opr_date><value>7</value></A></R>`, []string{"value"})
	assert.Contains(t, script, "PRIMARY KEY (opr_date)")
	assert.NotContains(t, script, "PRIMARY KEY (opr_date, value)")
}

// TestEndToEndRetryOnCorruptDB exercises S6: a pre-existing,
// mutually-incompatible DB file at depth 0 fails and the sink retries
// against a fresh file at depth 1, recording success.
func TestEndToEndRetryOnCorruptDB(t *testing.T) {
	script := generateScript(t, `<R xmlns="x"><A><v>1</v></A></R>`, nil)

	dbDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dbDir, "r_0.db"), []byte("garbage"), 0o644))

	scriptPath := filepath.Join(t.TempDir(), "r.sql")
	require.NoError(t, os.WriteFile(scriptPath, []byte(script), 0o644))

	var sink Sink
	require.NoError(t, sink.Execute(context.Background(), scriptPath, dbDir, "r"))

	db, err := sql.Open("sqlite3", filepath.Join(dbDir, "r_1.db"))
	require.NoError(t, err)
	defer db.Close()

	var v int
	require.NoError(t, db.QueryRow("SELECT v FROM a").Scan(&v))
	assert.Equal(t, 1, v)
}
