package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReportRoundtrip(t *testing.T) {
	r := New("encrypt", "sha256")
	r.BuildInfo = &BuildInfo{Workers: 4, Tool: "0.1.0"}
	r.Entries["photos/cat.jpg"] = Entry{
		Input: InputInfo{Path: "in/photos/cat.jpg", Format: "jpeg", Width: 800, Height: 600, Size: 100000},
		Output: OutputInfo{
			Path: "out/photos/cat.png", Format: "png", Size: 900000,
			Hash: "0123456789abcdef", PixelHash: "fedcba9876543210",
		},
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "imgcrypt.report.json")
	if err := WriteJSON(r, path); err != nil {
		t.Fatalf("write: %v", err)
	}

	r2, err := ReadJSON(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if r2.Mode != "encrypt" || r2.Digest != "sha256" {
		t.Errorf("mode/digest: got %q/%q", r2.Mode, r2.Digest)
	}
	if r2.BuildInfo == nil || r2.BuildInfo.Workers != 4 {
		t.Fatal("build_info not preserved")
	}
	e, ok := r2.Entries["photos/cat.jpg"]
	if !ok {
		t.Fatal("entry missing")
	}
	if e.Output.PixelHash != "fedcba9876543210" {
		t.Errorf("pixel_hash: got %q", e.Output.PixelHash)
	}

	if r2.Stats.TotalImages != 1 {
		t.Errorf("total_images: got %d", r2.Stats.TotalImages)
	}
	if r2.Stats.TotalPixels != 480000 {
		t.Errorf("total_pixels: got %d", r2.Stats.TotalPixels)
	}
	if r2.Stats.TotalOutputBytes != 900000 {
		t.Errorf("total_output_bytes: got %d", r2.Stats.TotalOutputBytes)
	}
}

func TestComputeStats_KeepsFailed(t *testing.T) {
	r := New("decrypt", "sha256")
	r.Stats.Failed = 2
	r.ComputeStats()
	if r.Stats.Failed != 2 {
		t.Errorf("failed: got %d", r.Stats.Failed)
	}
}

func TestReadJSON_IgnoresUnknownFields(t *testing.T) {
	raw := `{
		"version": 1,
		"generated_at": "2025-01-01T00:00:00Z",
		"mode": "encrypt",
		"digest": "sha256",
		"future_field": "ignored",
		"entries": {},
		"stats": { "total_images": 0, "new_stat": 42 }
	}`
	path := filepath.Join(t.TempDir(), "r.json")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := ReadJSON(path)
	if err != nil {
		t.Fatalf("read with unknown fields: %v", err)
	}
	if r.Mode != "encrypt" {
		t.Errorf("mode: got %q", r.Mode)
	}
}

func TestReadJSON_RejectsVersion(t *testing.T) {
	data, _ := json.Marshal(Report{Version: 9})
	path := filepath.Join(t.TempDir(), "r.json")
	os.WriteFile(path, data, 0o644)

	_, err := ReadJSON(path)
	if err == nil || !strings.Contains(err.Error(), "version") {
		t.Errorf("want version error, got %v", err)
	}
}

func TestRelativizeAndResolve(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "sub", "a.png")

	r := New("encrypt", "sha256")
	r.Entries["a"] = Entry{Output: OutputInfo{Path: out}}
	r.Relativize(dir)

	got := r.Entries["a"].Output.Path
	if got != "sub/a.png" {
		t.Fatalf("relativized path: got %q", got)
	}
	if Resolve(dir, got) != out {
		t.Errorf("Resolve: got %q, want %q", Resolve(dir, got), out)
	}
	if Resolve("/elsewhere", out) != out {
		t.Error("absolute paths should resolve to themselves")
	}
}
