// Package permute builds the seeded pixel-position permutation and applies
// it forward (encrypt) or inverted (decrypt).
package permute

import (
	"github.com/AnyUserName/imgcrypt-cli/internal/errs"
	"github.com/AnyUserName/imgcrypt-cli/internal/pixel"
	"github.com/AnyUserName/imgcrypt-cli/internal/prng"
)

// Build returns a permutation of [0, n) shuffled by an MT19937 generator
// seeded with seed. Same (seed, n) always yields the same slice.
func Build(seed uint64, n int) []int {
	return BuildFrom(prng.New(seed), n)
}

// BuildFrom shuffles the identity permutation of length n with src.
func BuildFrom(src prng.Source, n int) []int {
	if n <= 0 {
		return []int{}
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	prng.Shuffle(src, n, func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
	return idx
}

// Valid reports whether idx is a bijection of [0, len(idx)).
func Valid(idx []int) bool {
	seen := make([]bool, len(idx))
	for _, v := range idx {
		if v < 0 || v >= len(idx) || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

// Forward gathers src through idx: out[j] = src[idx[j]].
func Forward(src pixel.Grid, idx []int) (pixel.Grid, error) {
	if err := checkShape("forward", src, idx); err != nil {
		return nil, err
	}
	out := make(pixel.Grid, len(src))
	for j, i := range idx {
		out[j] = src[i]
	}
	return out, nil
}

// Inverse scatters enc back through idx: out[idx[j]] = enc[j].
func Inverse(enc pixel.Grid, idx []int) (pixel.Grid, error) {
	if err := checkShape("inverse", enc, idx); err != nil {
		return nil, err
	}
	out := make(pixel.Grid, len(enc))
	for j, i := range idx {
		out[i] = enc[j]
	}
	return out, nil
}

func checkShape(op string, g pixel.Grid, idx []int) error {
	if len(idx) != len(g) {
		return errs.New("permute", op, errs.ErrShapeMismatch,
			"permutation has %d indices, grid has %d pixels", len(idx), len(g))
	}
	for _, v := range idx {
		if v < 0 || v >= len(g) {
			return errs.New("permute", op, errs.ErrShapeMismatch, "index %d out of range [0,%d)", v, len(g))
		}
	}
	return nil
}
