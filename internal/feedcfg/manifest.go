// Package feedcfg models a feed's manifest.json, the per-feed
// metadata file (distinct from a stage's processed-files manifest in
// internal/stage) that seeds a feed directory at creation time.
package feedcfg

import (
	"encoding/json"
	"fmt"
	"os"
)

// Manifest is manifest.json. encoding/json is the correct tool here,
// not a compromise: the file is JSON on disk, and every field it
// carries is a flat scalar or array, nothing viper's layered
// defaults/env/flag merging would help with.
type Manifest struct {
	Name              string   `json:"name"`
	URL               string   `json:"url"`
	StartDate         [3]int   `json:"start_date"`
	DownloadDelaySecs float64  `json:"download_delay_secs"`
	XMLNamespace      string   `json:"xml_namespace"`
	PKExclusions      []string `json:"pk_exclusions"`
}

// DefaultPKExclusions is used when a manifest omits pk_exclusions.
var DefaultPKExclusions = []string{"value"}

// Load reads and parses manifest.json at path, filling PKExclusions
// with its default when the field was omitted.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("feedcfg: reading %s: %w", path, err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("feedcfg: parsing %s: %w", path, err)
	}
	if m.PKExclusions == nil {
		m.PKExclusions = DefaultPKExclusions
	}
	return &m, nil
}

// Save writes m to path as indented JSON.
func Save(path string, m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("feedcfg: encoding manifest: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("feedcfg: writing %s: %w", path, err)
	}
	return nil
}
