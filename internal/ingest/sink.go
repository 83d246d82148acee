// Package ingest implements the Ingest Sink: executing a generated SQL
// script against a SQLite database file, with bounded retry against
// fresh database files on failure.
package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// MaxDepth bounds the Sink's retry loop. It resets on every Execute
// call; it is never persisted across invocations.
const MaxDepth = 5

// IngestError reports that every retry depth failed.
type IngestError struct {
	ScriptPath string
	Depth      int
	Err        error
}

func (e *IngestError) Error() string {
	return fmt.Sprintf("ingest: %s: exhausted %d retries: %v", e.ScriptPath, e.Depth, e.Err)
}

func (e *IngestError) Unwrap() error { return e.Err }

// Sink executes a SQL script, retrying against a fresh database file
// on failure.
type Sink struct{}

// Execute reads scriptPath and runs it as a single multi-statement
// script against <dbDir>/<resourceName>_<depth>.db, depth starting at
// 0. On failure it tries again at depth+1 up to MaxDepth, each attempt
// against a brand-new file; the previous attempt's partial file is
// left on disk (it never entered the manifest, so a later run is free
// to ignore or clean it up). If every depth fails, the last error is
// wrapped in IngestError and the file is left for the pipeline to
// retry on the next invocation.
func (Sink) Execute(ctx context.Context, scriptPath, dbDir, resourceName string) error {
	script, err := os.ReadFile(scriptPath)
	if err != nil {
		return &IngestError{ScriptPath: scriptPath, Err: err}
	}

	var lastErr error
	for depth := 0; depth < MaxDepth; depth++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		dbPath := filepath.Join(dbDir, fmt.Sprintf("%s_%d.db", resourceName, depth))
		if err := execOnce(dbPath, string(script)); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return &IngestError{ScriptPath: scriptPath, Depth: MaxDepth, Err: lastErr}
}

func execOnce(dbPath, script string) error {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() // safe to call even after commit

	if _, err := tx.Exec(script); err != nil {
		return err
	}
	return tx.Commit()
}
