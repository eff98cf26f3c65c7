package pipeline

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/AnyUserName/imgcrypt-cli/internal/errs"
	"github.com/AnyUserName/imgcrypt-cli/internal/hasher"
	"github.com/AnyUserName/imgcrypt-cli/internal/pixel"
	"github.com/AnyUserName/imgcrypt-cli/internal/report"
	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// processResult holds the result of processing a single job.
type processResult struct {
	key   string
	entry report.Entry
	err   error
}

// processImage handles a single job: decode, transform, encode, write.
// Nothing is written unless every step before the write succeeds.
func (p *Pipeline) processImage(job Job) processResult {
	result := processResult{key: job.Key}

	enc, err := p.cfg.Registry.ForPath(job.OutputPath)
	if err != nil {
		result.err = err
		return result
	}

	img, err := decodeFile(job.Source.AbsPath)
	if err != nil {
		result.err = err
		return result
	}

	grid, w, h := pixel.FromImage(img)
	out, err := p.transformer.Apply(p.cfg.Mode, grid, w, h, p.cfg.Passphrase)
	if err != nil {
		result.err = fmt.Errorf("%s: %w", job.Source.RelPath, err)
		return result
	}

	data, err := enc.Encode(pixel.ToImage(out, w, h))
	if err != nil {
		result.err = errs.Wrap("encoder", "encode "+enc.Format(), errs.ErrEncodeFailure, err)
		return result
	}

	if err := writeAtomic(job.OutputPath, data, p.cfg.Overwrite); err != nil {
		result.err = err
		return result
	}

	format := job.Source.Format
	if format == "" {
		format = "unknown"
	}
	result.entry = report.Entry{
		Input: report.InputInfo{
			Path:   job.Source.AbsPath,
			Format: format,
			Width:  w,
			Height: h,
			Size:   job.Source.Size,
		},
		Output: report.OutputInfo{
			Path:      job.OutputPath,
			Format:    enc.Format(),
			Size:      int64(len(data)),
			Hash:      hasher.ContentHash(data, hasher.HexLen),
			PixelHash: hasher.PixelHash(out, hasher.HexLen),
		},
	}
	return result
}

// decodeFile opens and decodes an image. EXIF orientation is ignored so
// that stored pixel order is exactly what gets transformed.
func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap("decoder", "open", errs.ErrDecodeFailure, err)
	}
	defer f.Close()

	img, err := imaging.Decode(f)
	if err != nil {
		return nil, errs.Wrap("decoder", "decode "+filepath.Base(path), errs.ErrDecodeFailure, err)
	}
	return img, nil
}

// DecodeGrid decodes the image at path into its RGB grid.
func DecodeGrid(path string) (pixel.Grid, int, int, error) {
	img, err := decodeFile(path)
	if err != nil {
		return nil, 0, 0, err
	}
	g, w, h := pixel.FromImage(img)
	return g, w, h, nil
}

// writeAtomic writes data to a temp file beside path and renames it into
// place, so a failed run never leaves a truncated image behind.
func writeAtomic(path string, data []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errs.New("encoder", "write", errs.ErrEncodeFailure,
				"%s already exists (use --force to overwrite)", path)
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errs.Wrap("encoder", "write", errs.ErrEncodeFailure, err)
	}

	tmp, err := os.CreateTemp(dir, ".imgcrypt-*.tmp")
	if err != nil {
		return errs.Wrap("encoder", "write", errs.ErrEncodeFailure, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errs.Wrap("encoder", "write", errs.ErrEncodeFailure, err)
	}
	if err := tmp.Close(); err != nil {
		return errs.Wrap("encoder", "write", errs.ErrEncodeFailure, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return errs.Wrap("encoder", "write", errs.ErrEncodeFailure, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return errs.Wrap("encoder", "write", errs.ErrEncodeFailure, err)
	}
	return nil
}
