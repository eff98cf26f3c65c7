package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/AnyUserName/imgcrypt-cli/internal/encoder"
	"github.com/AnyUserName/imgcrypt-cli/internal/errs"
	"github.com/AnyUserName/imgcrypt-cli/internal/keys"
	"github.com/AnyUserName/imgcrypt-cli/internal/pipeline"
	"github.com/AnyUserName/imgcrypt-cli/internal/report"
	"github.com/AnyUserName/imgcrypt-cli/internal/transform"
	"github.com/spf13/cobra"
)

// transformFlags are the flags shared by encrypt and decrypt.
type transformFlags struct {
	key     string
	digest  string
	format  string
	report  string
	workers int
	force   bool
}

var (
	encryptFlags transformFlags
	decryptFlags transformFlags
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt <input> <output>",
	Short: "Scramble an image (or a directory of images)",
	Long: `XORs every channel with the passphrase keystream, then shuffles pixel
positions. The output format follows the output extension and must be lossless
(.png, .bmp, .tif/.tiff).

If <input> is a directory, every image below it is written to the mirrored
path under <output> using --format.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransform(cmd, args, transform.Encrypt, &encryptFlags)
	},
}

var decryptCmd = &cobra.Command{
	Use:   "decrypt <input> <output>",
	Short: "Restore an image scrambled by encrypt",
	Long: `Undoes the pixel shuffle, then removes the keystream. A wrong passphrase
is not detected; it produces noise.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransform(cmd, args, transform.Decrypt, &decryptFlags)
	},
}

func init() {
	for _, c := range []struct {
		cmd *cobra.Command
		f   *transformFlags
	}{{encryptCmd, &encryptFlags}, {decryptCmd, &decryptFlags}} {
		fs := c.cmd.Flags()
		fs.StringVarP(&c.f.key, "key", "k", "", "passphrase (prompted on the terminal when omitted)")
		fs.StringVar(&c.f.digest, "digest", "sha256", "key digest: sha256, sha3-256, blake2b-256")
		fs.StringVarP(&c.f.format, "format", "f", "png", "output format in directory mode: png, bmp, tiff")
		fs.StringVarP(&c.f.report, "report", "r", "", "write a JSON report to this path")
		fs.IntVarP(&c.f.workers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
		fs.BoolVar(&c.f.force, "force", false, "overwrite existing output files")
		rootCmd.AddCommand(c.cmd)
	}
}

func runTransform(cmd *cobra.Command, args []string, mode transform.Mode, f *transformFlags) error {
	input, output := args[0], args[1]
	start := time.Now()
	flags := cmd.Flags()

	// Flags set on the command line win over the config file.
	digestName, format, reportPath, workers := cfg.Digest, cfg.Format, cfg.Report, cfg.Workers
	if flags.Changed("digest") {
		digestName = f.digest
	}
	if flags.Changed("format") {
		format = f.format
	}
	if flags.Changed("report") {
		reportPath = f.report
	}
	if flags.Changed("workers") {
		workers = f.workers
	}

	digest, err := keys.ParseDigest(digestName)
	if err != nil {
		return err
	}

	pass, err := resolvePassphrase(f.key, flags.Changed("key"), mode == transform.Encrypt,
		int(os.Stdin.Fd()), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer zeroBytes(pass)

	registry := encoder.NewRegistry(encoder.ParseCompression(cfg.PNGCompression))
	jobs, dirMode, err := planJobs(input, output, format, registry)
	if err != nil {
		return err
	}

	logger.Info("start", "mode", mode.String(), "input", input, "output", output,
		"images", len(jobs), "digest", digest.String())

	p := pipeline.New(pipeline.Config{
		Mode:       mode,
		Passphrase: pass,
		Digest:     digest,
		Workers:    workers,
		Overwrite:  f.force,
		Registry:   registry,
		Logger:     logger,
	})
	r, runErr := p.Run(jobs)

	printConfirmations(cmd.OutOrStdout(), mode, r)

	if reportPath != "" && len(r.Entries) > 0 {
		r.BuildInfo.Tool = version
		r.Relativize(filepath.Dir(reportPath))
		if err := report.WriteJSON(r, reportPath); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		logger.Info("report written", "path", reportPath)
	}

	if dirMode {
		printSummary(cmd.OutOrStdout(), r, time.Since(start))
	}
	return runErr
}

// planJobs builds one job for a file input or one per image for a
// directory input.
func planJobs(input, output, format string, registry *encoder.Registry) ([]pipeline.Job, bool, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, false, errs.Wrap("decoder", "open", errs.ErrDecodeFailure, err)
	}
	if !info.IsDir() {
		job, err := pipeline.PlanFile(input, output)
		if err != nil {
			return nil, false, err
		}
		return []pipeline.Job{job}, false, nil
	}

	ext, err := registry.Extension(format)
	if err != nil {
		return nil, true, err
	}
	jobs, err := pipeline.PlanDir(input, output, ext)
	if err != nil {
		return nil, true, err
	}
	if len(jobs) == 0 {
		return nil, true, fmt.Errorf("no images found in %s", input)
	}
	return jobs, true, nil
}

func printConfirmations(w io.Writer, mode transform.Mode, r *report.Report) {
	verb := "Encrypted"
	if mode == transform.Decrypt {
		verb = "Decrypted"
	}
	names := make([]string, 0, len(r.Entries))
	for k := range r.Entries {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		fmt.Fprintf(w, "[+] %s -> %s\n", verb, r.Entries[k].Output.Path)
	}
}

func printSummary(w io.Writer, r *report.Report, elapsed time.Duration) {
	s := r.Stats
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Images:      %d\n", s.TotalImages)
	if s.Failed > 0 {
		fmt.Fprintf(w, "  Failed:      %d\n", s.Failed)
	}
	fmt.Fprintf(w, "  Pixels:      %d\n", s.TotalPixels)
	fmt.Fprintf(w, "  Input size:  %s\n", formatBytes(s.TotalInputBytes))
	fmt.Fprintf(w, "  Output size: %s\n", formatBytes(s.TotalOutputBytes))
	if r.BuildInfo != nil {
		fmt.Fprintf(w, "  Workers:     %d\n", r.BuildInfo.Workers)
	}
	fmt.Fprintf(w, "  Time:        %s\n", elapsed.Round(time.Millisecond))
	fmt.Fprintln(w)
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
