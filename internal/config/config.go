// Package config loads optional imgcrypt defaults from a YAML file.
// Command-line flags override anything set here.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// EnvPath names the environment variable consulted when --config is unset.
const EnvPath = "IMGCRYPT_CONFIG"

// Config holds defaults for the transform commands.
type Config struct {
	Digest         string `yaml:"digest"`
	Workers        int    `yaml:"workers"`
	Format         string `yaml:"format"`          // output format in directory mode
	PNGCompression string `yaml:"png_compression"` // none, fast, default, best
	LogLevel       string `yaml:"log_level"`
	Report         string `yaml:"report"` // report path, empty disables
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Digest:         "sha256",
		Workers:        0, // NumCPU
		Format:         "png",
		PNGCompression: "default",
		LogLevel:       "",
	}
}

// Load reads path, or the file named by IMGCRYPT_CONFIG when path is empty.
// With neither set it returns Default(). Missing fields keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.Digest == "" {
		cfg.Digest = "sha256"
	}
	if cfg.Format == "" {
		cfg.Format = "png"
	}
	if cfg.PNGCompression == "" {
		cfg.PNGCompression = "default"
	}
	if cfg.Workers < 0 {
		return cfg, fmt.Errorf("config %s: workers must be >= 0, got %d", path, cfg.Workers)
	}
	return cfg, nil
}
