package pipeline

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/AnyUserName/imgcrypt-cli/internal/errs"
)

// Source represents a discovered image file.
type Source struct {
	// AbsPath is the absolute path to the file on disk.
	AbsPath string
	// RelPath is the slash-separated path relative to the input directory.
	RelPath string
	// Format is the source format (png, jpeg, webp, gif, bmp, tiff).
	Format string
	// Size is the file size in bytes.
	Size int64
}

// imageExtensions maps recognized input extensions to format names.
var imageExtensions = map[string]string{
	".png":  "png",
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".webp": "webp",
	".gif":  "gif",
	".bmp":  "bmp",
	".tiff": "tiff",
	".tif":  "tiff",
}

// FormatOf returns the format name for path's extension, or "" when the
// extension is not a recognized image type.
func FormatOf(path string) string {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// ScanImages walks inputDir and returns all image sources in lexical order.
// Hidden files and directories are skipped.
func ScanImages(inputDir string) ([]Source, error) {
	var sources []Source

	err := filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if strings.HasPrefix(name, ".") && path != inputDir {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") {
			return nil
		}

		format := FormatOf(path)
		if format == "" {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(inputDir, path)
		if err != nil {
			return err
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}

		sources = append(sources, Source{
			AbsPath: abs,
			RelPath: filepath.ToSlash(relPath),
			Format:  format,
			Size:    info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", inputDir, err)
	}
	return sources, nil
}

// Job is one input image and the path its transform is written to.
type Job struct {
	Key        string // report key: input-relative path, or the file name
	Source     Source
	OutputPath string
}

// PlanDir maps every image under inputDir to the mirrored path under
// outputDir, replacing the extension with ext (e.g. ".png").
func PlanDir(inputDir, outputDir, ext string) ([]Job, error) {
	sources, err := ScanImages(inputDir)
	if err != nil {
		return nil, err
	}
	absOut, err := filepath.Abs(outputDir)
	if err != nil {
		return nil, fmt.Errorf("resolve output path: %w", err)
	}

	jobs := make([]Job, 0, len(sources))
	seen := make(map[string]string, len(sources))
	for _, s := range sources {
		rel := filepath.FromSlash(s.RelPath)
		out := filepath.Join(absOut, strings.TrimSuffix(rel, filepath.Ext(rel))+ext)
		if prev, ok := seen[out]; ok {
			return nil, fmt.Errorf("%s and %s both map to %s", prev, s.RelPath, out)
		}
		seen[out] = s.RelPath
		jobs = append(jobs, Job{Key: s.RelPath, Source: s, OutputPath: out})
	}
	return jobs, nil
}

// PlanFile builds the job for a single input file.
func PlanFile(inputPath, outputPath string) (Job, error) {
	abs, err := filepath.Abs(inputPath)
	if err != nil {
		return Job{}, fmt.Errorf("resolve input path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return Job{}, errs.Wrap("decoder", "open", errs.ErrDecodeFailure, err)
	}
	if info.IsDir() {
		return Job{}, errs.New("decoder", "open", errs.ErrDecodeFailure, "%s is a directory", inputPath)
	}
	absOut, err := filepath.Abs(outputPath)
	if err != nil {
		return Job{}, fmt.Errorf("resolve output path: %w", err)
	}
	return Job{
		Key: filepath.Base(abs),
		Source: Source{
			AbsPath: abs,
			RelPath: filepath.Base(abs),
			Format:  FormatOf(abs),
			Size:    info.Size(),
		},
		OutputPath: absOut,
	}, nil
}
