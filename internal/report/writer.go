package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// New creates an empty report with defaults.
func New(mode, digest string) *Report {
	return &Report{
		Version:     SupportedVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Mode:        mode,
		Digest:      digest,
		Entries:     make(map[string]Entry),
	}
}

// ComputeStats recalculates aggregate statistics from entries. Failed is
// left untouched.
func (r *Report) ComputeStats() {
	s := Stats{Failed: r.Stats.Failed}
	s.TotalImages = len(r.Entries)
	for _, e := range r.Entries {
		s.TotalInputBytes += e.Input.Size
		s.TotalOutputBytes += e.Output.Size
		s.TotalPixels += int64(e.Input.Width) * int64(e.Input.Height)
	}
	r.Stats = s
}

// Relativize rewrites output paths relative to baseDir where possible, so a
// report stays valid when its directory is moved together with the outputs.
func (r *Report) Relativize(baseDir string) {
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return
	}
	for key, e := range r.Entries {
		abs, err := filepath.Abs(e.Output.Path)
		if err != nil {
			continue
		}
		if rel, err := filepath.Rel(absBase, abs); err == nil {
			e.Output.Path = filepath.ToSlash(rel)
			r.Entries[key] = e
		}
	}
}

// Resolve returns the on-disk location of an output path recorded in a
// report stored in baseDir.
func Resolve(baseDir, p string) string {
	p = filepath.FromSlash(p)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}

// WriteJSON serializes the report to a JSON file.
func WriteJSON(r *Report, path string) error {
	r.ComputeStats()

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// ReadJSON loads a report and checks its version.
func ReadJSON(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	if r.Version != SupportedVersion {
		return nil, fmt.Errorf("unsupported report version: %d", r.Version)
	}
	return &r, nil
}
