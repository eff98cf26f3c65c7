// Package keys turns a passphrase into the permutation seed and XOR keystream
// used by the image transform.
package keys

import (
	"crypto/sha256"
	"encoding/binary"
	"strings"

	"github.com/AnyUserName/imgcrypt-cli/internal/errs"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// Size is the digest length in bytes.
const Size = 32

// Keystream is the cyclic XOR key applied to channel values.
type Keystream [Size]byte

// Material is everything derived from one passphrase.
type Material struct {
	Seed   uint64 // big-endian uint64 of the first 8 digest bytes
	Stream Keystream
}

// Digest selects the 256-bit hash used for derivation.
type Digest int

const (
	SHA256 Digest = iota
	SHA3_256
	BLAKE2b256
)

var digestNames = map[Digest]string{
	SHA256:     "sha256",
	SHA3_256:   "sha3-256",
	BLAKE2b256: "blake2b-256",
}

func (d Digest) String() string {
	if n, ok := digestNames[d]; ok {
		return n
	}
	return "unknown"
}

// Names lists supported digest names, default first.
func Names() []string {
	return []string{"sha256", "sha3-256", "blake2b-256"}
}

// ParseDigest maps a digest name to a Digest. Empty selects SHA256.
func ParseDigest(name string) (Digest, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return SHA256, nil
	}
	for d, n := range digestNames {
		if n == name {
			return d, nil
		}
	}
	return 0, errs.New("keys", "parse digest", errs.ErrInvalidKey,
		"unsupported digest %q (want one of %s)", name, strings.Join(Names(), ", "))
}

// Derive computes key material with SHA-256, the default digest.
func Derive(passphrase []byte) Material {
	return fromDigest(sha256.Sum256(passphrase))
}

// DeriveWith computes key material with the given digest.
func DeriveWith(d Digest, passphrase []byte) (Material, error) {
	switch d {
	case SHA256:
		return Derive(passphrase), nil
	case SHA3_256:
		return fromDigest(sha3.Sum256(passphrase)), nil
	case BLAKE2b256:
		return fromDigest(blake2b.Sum256(passphrase)), nil
	default:
		return Material{}, errs.New("keys", "derive", errs.ErrInvalidKey, "unknown digest %d", int(d))
	}
}

func fromDigest(sum [Size]byte) Material {
	return Material{
		Seed:   binary.BigEndian.Uint64(sum[:8]),
		Stream: Keystream(sum),
	}
}
