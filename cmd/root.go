package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/AnyUserName/imgcrypt-cli/internal/config"
	"github.com/AnyUserName/imgcrypt-cli/internal/logging"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

var (
	version  = "0.1.0"
	verbose  bool
	logLevel string
	cfgPath  string

	// Set by PersistentPreRunE before any subcommand runs.
	cfg    = config.Default()
	logger = hclog.NewNullLogger()
)

var rootCmd = &cobra.Command{
	Use:   "imgcrypt",
	Short: "Scramble image pixels with a passphrase, and unscramble them again",
	Long: `imgcrypt XORs every RGB channel with a passphrase-derived keystream and
shuffles pixel positions with a passphrase-seeded permutation. Decrypting with
the same passphrase restores the image exactly.

This is obfuscation, not encryption: there is no authentication, and a wrong
passphrase silently produces noise. Always write outputs in a lossless format
(png, bmp, tiff); lossy re-encoding makes decryption impossible.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (log level debug)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "YAML defaults file (or $"+config.EnvPath+")")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"imgcrypt %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// setup loads the config file and builds the logger. Log level precedence:
// --verbose, --log-level, $IMGCRYPT_LOG_LEVEL, config file, "warn".
func setup(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	cfg = c

	level := logLevel
	if level == "" && os.Getenv(logging.EnvLevel) == "" {
		level = cfg.LogLevel
	}
	level = logging.GetLogLevel(level)
	if verbose {
		level = "debug"
	}
	logger = logging.NewLogger("imgcrypt", level, cmd.ErrOrStderr())
	logger.Debug("config loaded", "path", cfgPath, "digest", cfg.Digest, "workers", cfg.Workers)
	return nil
}
