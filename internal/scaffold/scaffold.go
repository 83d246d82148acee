// Package scaffold creates a new feed directory from templates: the
// src/zip/xml/sql/db skeleton and a starter manifest.json.
package scaffold

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/energy-analytics-project/energy-dashboard-lib/internal/feedcfg"
)

//go:embed templates/*.tmpl
var templates embed.FS

// StageDirs are the per-stage working directories every feed gets.
var StageDirs = []string{"src", "zip", "xml", "sql", "db"}

// Create makes root/data/feed, its stage directories, and a rendered
// manifest.json seeded from m.
func Create(root, feed string, m *feedcfg.Manifest) (string, error) {
	feedDir := filepath.Join(root, "data", feed)
	if _, err := os.Stat(feedDir); err == nil {
		return "", fmt.Errorf("scaffold: %s already exists", feedDir)
	}
	if err := os.MkdirAll(feedDir, 0o755); err != nil {
		return "", err
	}
	for _, d := range StageDirs {
		if err := os.MkdirAll(filepath.Join(feedDir, d), 0o755); err != nil {
			return "", err
		}
	}

	tmpl, err := template.ParseFS(templates, "templates/manifest.json.tmpl")
	if err != nil {
		return "", err
	}
	out, err := os.Create(filepath.Join(feedDir, "manifest.json"))
	if err != nil {
		return "", err
	}
	defer out.Close()
	if err := tmpl.Execute(out, m); err != nil {
		return "", err
	}
	return feedDir, nil
}
