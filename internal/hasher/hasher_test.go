package hasher

import (
	"bytes"
	"testing"

	"github.com/AnyUserName/imgcrypt-cli/internal/pixel"
)

func TestContentHash_Length(t *testing.T) {
	data := []byte("hello imgcrypt")
	if got := ContentHash(data, 0); len(got) != 16 {
		t.Errorf("full hash length: %d", len(got))
	}
	if got := ContentHash(data, 8); len(got) != 8 {
		t.Errorf("truncated length: %d", len(got))
	}
	if ContentHash(data, 8) != ContentHash(data, 0)[:8] {
		t.Error("truncation is not a prefix")
	}
}

func TestContentHashReader_MatchesContentHash(t *testing.T) {
	data := bytes.Repeat([]byte{1, 2, 3, 4}, 10000)
	got, err := ContentHashReader(bytes.NewReader(data), HexLen)
	if err != nil {
		t.Fatal(err)
	}
	if want := ContentHash(data, HexLen); got != want {
		t.Errorf("reader %s != bytes %s", got, want)
	}
}

func TestPixelHash_MatchesFlatBytes(t *testing.T) {
	// Spans several internal flush boundaries.
	g := make(pixel.Grid, 2500)
	for i := range g {
		g[i] = pixel.Pixel{R: uint8(i), G: uint8(i >> 8), B: 7}
	}
	if got, want := PixelHash(g, 0), ContentHash(g.Bytes(), 0); got != want {
		t.Errorf("PixelHash %s != ContentHash(Bytes) %s", got, want)
	}
}

func TestPixelHash_Empty(t *testing.T) {
	if got, want := PixelHash(pixel.Grid{}, 0), ContentHash(nil, 0); got != want {
		t.Errorf("empty grid: %s != %s", got, want)
	}
}

func TestUint64ToBytes_BigEndian(t *testing.T) {
	got := uint64ToBytes(0x0102030405060708)
	want := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	if !bytes.Equal(got, want) {
		t.Errorf("got %v", got)
	}
}
