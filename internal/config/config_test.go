package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "imgcrypt.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_NoFile(t *testing.T) {
	t.Setenv(EnvPath, "")
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, `
digest: blake2b-256
workers: 3
format: tiff
png_compression: best
log_level: debug
report: run.json
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := Config{
		Digest: "blake2b-256", Workers: 3, Format: "tiff",
		PNGCompression: "best", LogLevel: "debug", Report: "run.json",
	}
	if cfg != want {
		t.Errorf("got %+v, want %+v", cfg, want)
	}
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	path := writeFile(t, "workers: 2\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Workers != 2 || cfg.Digest != "sha256" || cfg.Format != "png" || cfg.PNGCompression != "default" {
		t.Errorf("got %+v", cfg)
	}
}

func TestLoad_Env(t *testing.T) {
	path := writeFile(t, "format: bmp\n")
	t.Setenv(EnvPath, path)
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Format != "bmp" {
		t.Errorf("format: got %q", cfg.Format)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file: want error")
	}
	if _, err := Load(writeFile(t, "unknown_key: 1\n")); err == nil {
		t.Error("unknown key: want error")
	}
	if _, err := Load(writeFile(t, "workers: -1\n")); err == nil {
		t.Error("negative workers: want error")
	}
}
