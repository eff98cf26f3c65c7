// Package transform composes the channel cipher and the position
// permutation into the encrypt and decrypt pipelines.
//
// Encrypt XORs pixels at their natural indices and then permutes them.
// Decrypt undoes the permutation first so the XOR sees the same alignment.
// Neither direction authenticates: a wrong passphrase yields noise, not an
// error.
package transform

import (
	"unicode/utf8"

	"github.com/AnyUserName/imgcrypt-cli/internal/channel"
	"github.com/AnyUserName/imgcrypt-cli/internal/errs"
	"github.com/AnyUserName/imgcrypt-cli/internal/keys"
	"github.com/AnyUserName/imgcrypt-cli/internal/permute"
	"github.com/AnyUserName/imgcrypt-cli/internal/pixel"
)

// Mode selects the transform direction.
type Mode int

const (
	Encrypt Mode = iota
	Decrypt
)

func (m Mode) String() string {
	if m == Decrypt {
		return "decrypt"
	}
	return "encrypt"
}

// Transformer runs both directions with a fixed key digest. The zero value
// uses SHA-256.
type Transformer struct {
	Digest keys.Digest
}

// EncryptGrid applies the default transformer.
func EncryptGrid(g pixel.Grid, width, height int, passphrase []byte) (pixel.Grid, error) {
	return Transformer{}.Encrypt(g, width, height, passphrase)
}

// DecryptGrid applies the default transformer in reverse.
func DecryptGrid(g pixel.Grid, width, height int, passphrase []byte) (pixel.Grid, error) {
	return Transformer{}.Decrypt(g, width, height, passphrase)
}

// Apply dispatches to Encrypt or Decrypt.
func (t Transformer) Apply(mode Mode, g pixel.Grid, width, height int, passphrase []byte) (pixel.Grid, error) {
	if mode == Decrypt {
		return t.Decrypt(g, width, height, passphrase)
	}
	return t.Encrypt(g, width, height, passphrase)
}

// Encrypt XORs g with the keystream and then moves pixel idx[j] to j.
func (t Transformer) Encrypt(g pixel.Grid, width, height int, passphrase []byte) (pixel.Grid, error) {
	m, err := t.prepare("encrypt", g, width, height, passphrase)
	if err != nil {
		return nil, err
	}
	xored := channel.Apply(g, m.Stream[:])
	return permute.Forward(xored, permute.Build(m.Seed, len(g)))
}

// Decrypt restores natural pixel order and then removes the keystream.
func (t Transformer) Decrypt(g pixel.Grid, width, height int, passphrase []byte) (pixel.Grid, error) {
	m, err := t.prepare("decrypt", g, width, height, passphrase)
	if err != nil {
		return nil, err
	}
	out, err := permute.Inverse(g, permute.Build(m.Seed, len(g)))
	if err != nil {
		return nil, err
	}
	channel.ApplyInPlace(out, m.Stream[:])
	return out, nil
}

func (t Transformer) prepare(op string, g pixel.Grid, width, height int, passphrase []byte) (keys.Material, error) {
	if len(passphrase) == 0 {
		return keys.Material{}, errs.New("transform", op, errs.ErrInvalidKey, "passphrase is empty")
	}
	if !utf8.Valid(passphrase) {
		return keys.Material{}, errs.New("transform", op, errs.ErrInvalidKey, "passphrase is not valid UTF-8")
	}
	if width < 0 || height < 0 {
		return keys.Material{}, errs.New("transform", op, errs.ErrShapeMismatch,
			"negative dimensions %dx%d", width, height)
	}
	if len(g) != width*height {
		return keys.Material{}, errs.New("transform", op, errs.ErrShapeMismatch,
			"grid has %d pixels, %dx%d needs %d", len(g), width, height, width*height)
	}
	return keys.DeriveWith(t.Digest, passphrase)
}
