package report

// Report is the JSON record of one encrypt or decrypt run.
type Report struct {
	Version     int              `json:"version"`
	GeneratedAt string           `json:"generated_at"`
	Mode        string           `json:"mode"`   // "encrypt" or "decrypt"
	Digest      string           `json:"digest"` // key digest name, e.g. "sha256"
	BuildInfo   *BuildInfo       `json:"build_info,omitempty"`
	Entries     map[string]Entry `json:"entries"` // keyed by input-relative path
	Stats       Stats            `json:"stats"`
}

// BuildInfo captures run-time parameters for diagnostics.
type BuildInfo struct {
	Workers int    `json:"workers"`
	Tool    string `json:"tool,omitempty"` // imgcrypt version
}

// Entry describes one transformed image.
type Entry struct {
	Input  InputInfo  `json:"input"`
	Output OutputInfo `json:"output"`
}

// InputInfo holds metadata about the source image.
type InputInfo struct {
	Path   string `json:"path"`
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int64  `json:"size"`
}

// OutputInfo describes the written image.
type OutputInfo struct {
	Path      string `json:"path"`       // relative to the report file when possible
	Format    string `json:"format"`     // "png", "bmp", "tiff"
	Size      int64  `json:"size"`       // bytes on disk
	Hash      string `json:"hash"`       // xxhash64 of the file bytes
	PixelHash string `json:"pixel_hash"` // xxhash64 of the RGB grid
}

// Stats aggregates run metrics.
type Stats struct {
	TotalInputBytes  int64 `json:"total_input_bytes"`
	TotalOutputBytes int64 `json:"total_output_bytes"`
	TotalImages      int   `json:"total_images"`
	TotalPixels      int64 `json:"total_pixels"`
	Failed           int   `json:"failed,omitempty"` // images that errored
}

// SupportedVersion is the current schema version.
const SupportedVersion = 1
