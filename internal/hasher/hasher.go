// Package hasher fingerprints output files and pixel grids with xxHash64.
// Fingerprints detect accidental corruption (e.g. a lossy re-save); they
// are not a MAC and say nothing about the passphrase.
package hasher

import (
	"encoding/hex"
	"io"

	"github.com/AnyUserName/imgcrypt-cli/internal/pixel"
	"github.com/cespare/xxhash/v2"
)

// HexLen is the fingerprint length used in reports: the full 64 bits.
const HexLen = 16

// ContentHash computes the xxHash64 of data and returns a hex string
// truncated to hexLen (0 keeps all 16 chars).
func ContentHash(data []byte, hexLen int) string {
	return truncate(xxhash.Sum64(data), hexLen)
}

// ContentHashReader computes xxHash64 from a reader, streaming.
func ContentHashReader(r io.Reader, hexLen int) (string, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return truncate(h.Sum64(), hexLen), nil
}

// PixelHash fingerprints the decoded RGB content of g independently of the
// container format, so a PNG and a TIFF of the same grid hash equal.
func PixelHash(g pixel.Grid, hexLen int) string {
	h := xxhash.New()
	row := make([]byte, 0, 3*1024)
	for i, p := range g {
		row = append(row, p.R, p.G, p.B)
		if len(row) == cap(row) || i == len(g)-1 {
			h.Write(row)
			row = row[:0]
		}
	}
	return truncate(h.Sum64(), hexLen)
}

func truncate(sum uint64, hexLen int) string {
	full := hex.EncodeToString(uint64ToBytes(sum))
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen]
	}
	return full
}

func uint64ToBytes(v uint64) []byte {
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (56 - 8*i))
	}
	return b
}
