package encoder

import (
	"fmt"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/AnyUserName/imgcrypt-cli/internal/errs"
)

// lossyFormats are formats that would destroy scrambled pixel data.
var lossyFormats = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"webp": true,
	"avif": true,
	"gif":  true, // palette quantization
}

// Registry holds the lossless encoders and resolves them by format name or
// output path extension.
type Registry struct {
	encoders map[string]Encoder // keyed by format
	byExt    map[string]Encoder
}

// NewRegistry creates a registry with PNG (at the given compression), BMP
// and TIFF encoders.
func NewRegistry(compression png.CompressionLevel) *Registry {
	r := &Registry{
		encoders: make(map[string]Encoder),
		byExt:    make(map[string]Encoder),
	}

	all := []Encoder{
		&PNGEncoder{Compression: compression},
		&BMPEncoder{},
		&TIFFEncoder{},
	}
	for _, enc := range all {
		r.encoders[enc.Format()] = enc
		for _, ext := range enc.Extensions() {
			r.byExt[ext] = enc
		}
	}

	return r
}

// Get returns an encoder for the given format or extension, or nil.
func (r *Registry) Get(format string) Encoder {
	f := strings.TrimPrefix(strings.ToLower(format), ".")
	if enc, ok := r.encoders[f]; ok {
		return enc
	}
	return r.byExt[f]
}

// Available returns all format names in priority order.
func (r *Registry) Available() []string {
	var result []string
	for _, f := range []string{"png", "bmp", "tiff"} {
		if _, ok := r.encoders[f]; ok {
			result = append(result, f)
		}
	}
	return result
}

// ForPath picks the encoder matching the extension of path. Lossy or
// unrecognized extensions fail with errs.ErrEncodeFailure.
func (r *Registry) ForPath(path string) (Encoder, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return nil, errs.New("encoder", "resolve", errs.ErrEncodeFailure,
			"output %s has no extension; use one of %s", path, r.extList())
	}
	if lossyFormats[ext] {
		return nil, errs.New("encoder", "resolve", errs.ErrEncodeFailure,
			"%q is a lossy format and would corrupt decryption; use one of %s", ext, r.extList())
	}
	enc, ok := r.byExt[ext]
	if !ok {
		return nil, errs.New("encoder", "resolve", errs.ErrEncodeFailure,
			"unsupported output format %q; use one of %s", ext, r.extList())
	}
	return enc, nil
}

// Extension returns the preferred file extension for format, with dot.
func (r *Registry) Extension(format string) (string, error) {
	enc := r.Get(format)
	if enc == nil {
		return "", errs.New("encoder", "resolve", errs.ErrEncodeFailure,
			"unsupported output format %q; use one of %s", format, r.extList())
	}
	return "." + enc.Extensions()[0], nil
}

func (r *Registry) extList() string {
	var exts []string
	for _, f := range r.Available() {
		for _, ext := range r.encoders[f].Extensions() {
			exts = append(exts, "."+ext)
		}
	}
	return strings.Join(exts, ", ")
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	avail := r.Available()
	if len(avail) == 0 {
		return "no encoders available"
	}
	return fmt.Sprintf("encoders: %s", strings.Join(avail, ", "))
}
