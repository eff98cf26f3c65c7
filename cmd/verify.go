package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/AnyUserName/imgcrypt-cli/internal/hasher"
	"github.com/AnyUserName/imgcrypt-cli/internal/keys"
	"github.com/AnyUserName/imgcrypt-cli/internal/pipeline"
	"github.com/AnyUserName/imgcrypt-cli/internal/report"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <report_path>",
	Short: "Check that the outputs listed in a run report are intact",
	Long: `Re-reads every output recorded in a report written with --report and checks
its size, file hash, pixel hash and dimensions. A mismatch usually means the
file was re-saved lossily, which makes it impossible to decrypt.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	reportPath := args[0]
	out := cmd.OutOrStdout()

	r, err := report.ReadJSON(reportPath)
	if err != nil {
		return err
	}

	problems := verifyReport(r, filepath.Dir(reportPath))
	if len(problems) == 0 {
		fmt.Fprintln(out, "  ✓ Report is valid")
		fmt.Fprintf(out, "  ✓ %d images, %d pixels, all outputs intact\n", r.Stats.TotalImages, r.Stats.TotalPixels)
		return nil
	}

	fmt.Fprintf(out, "  ✗ Report has %d problem(s):\n", len(problems))
	for _, p := range problems {
		fmt.Fprintf(out, "    • %s\n", p)
	}
	return fmt.Errorf("verification failed with %d problems", len(problems))
}

func verifyReport(r *report.Report, baseDir string) []string {
	var problems []string

	if r.Mode != "encrypt" && r.Mode != "decrypt" {
		problems = append(problems, fmt.Sprintf("unknown mode %q", r.Mode))
	}
	if _, err := keys.ParseDigest(r.Digest); err != nil {
		problems = append(problems, fmt.Sprintf("unknown digest %q", r.Digest))
	}

	names := make([]string, 0, len(r.Entries))
	for k := range r.Entries {
		names = append(names, k)
	}
	sort.Strings(names)

	var pixels int64
	for _, key := range names {
		e := r.Entries[key]
		pixels += int64(e.Input.Width) * int64(e.Input.Height)
		problems = append(problems, verifyEntry(key, e, baseDir)...)
	}

	if r.Stats.TotalImages != len(r.Entries) {
		problems = append(problems, fmt.Sprintf("total_images mismatch: %d != %d", r.Stats.TotalImages, len(r.Entries)))
	}
	if r.Stats.TotalPixels != pixels {
		problems = append(problems, fmt.Sprintf("total_pixels mismatch: %d != %d", r.Stats.TotalPixels, pixels))
	}
	return problems
}

func verifyEntry(key string, e report.Entry, baseDir string) []string {
	var problems []string

	if e.Output.Path == "" {
		return append(problems, fmt.Sprintf("%q: missing output path", key))
	}
	path := report.Resolve(baseDir, e.Output.Path)

	info, err := os.Stat(path)
	if err != nil {
		return append(problems, fmt.Sprintf("%q: output %s not found", key, e.Output.Path))
	}
	if info.Size() != e.Output.Size {
		problems = append(problems, fmt.Sprintf("%q: size %d, report says %d", key, info.Size(), e.Output.Size))
	}

	if e.Output.Hash != "" {
		sum, err := fileHash(path)
		switch {
		case err != nil:
			problems = append(problems, fmt.Sprintf("%q: hash: %v", key, err))
		case sum != e.Output.Hash:
			problems = append(problems, fmt.Sprintf("%q: file hash %s, report says %s", key, sum, e.Output.Hash))
		}
	}

	g, w, h, err := pipeline.DecodeGrid(path)
	if err != nil {
		return append(problems, fmt.Sprintf("%q: %v", key, err))
	}
	if w != e.Input.Width || h != e.Input.Height {
		problems = append(problems, fmt.Sprintf("%q: dimensions %dx%d, report says %dx%d",
			key, w, h, e.Input.Width, e.Input.Height))
	}
	if e.Output.PixelHash != "" {
		if sum := hasher.PixelHash(g, hasher.HexLen); sum != e.Output.PixelHash {
			problems = append(problems, fmt.Sprintf("%q: pixel hash %s, report says %s", key, sum, e.Output.PixelHash))
		}
	}
	return problems
}

func fileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return hasher.ContentHashReader(f, hasher.HexLen)
}
