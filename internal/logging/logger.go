// Package logging builds the hclog logger shared by imgcrypt commands.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
)

// Environment variables read by GetLogLevel and NewLogger.
const (
	EnvLevel = "IMGCRYPT_LOG_LEVEL"
	EnvJSON  = "IMGCRYPT_JSON_LOG"
)

// NewLogger creates a logger writing to output (stderr when nil).
// Set IMGCRYPT_JSON_LOG=1 for JSON lines.
func NewLogger(name string, level string, output io.Writer) hclog.Logger {
	if output == nil {
		output = os.Stderr
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      hclog.LevelFromString(level),
		JSONFormat: os.Getenv(EnvJSON) == "1",
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05Z",
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	})
}

// GetLogLevel resolves the level: explicit value, then IMGCRYPT_LOG_LEVEL,
// then "warn".
func GetLogLevel(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if level := os.Getenv(EnvLevel); level != "" {
		return level
	}
	return "warn"
}
