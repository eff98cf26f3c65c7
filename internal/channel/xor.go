// Package channel applies a repeating XOR keystream across the flattened
// R,G,B channel sequence of a pixel grid.
package channel

import "github.com/AnyUserName/imgcrypt-cli/internal/pixel"

// Apply returns a new grid where the channel at flattened position p = 3i+c
// is XORed with key[p % len(key)]. Applying it twice with the same key
// restores the input. An empty key returns an unchanged copy.
func Apply(g pixel.Grid, key []byte) pixel.Grid {
	out := g.Clone()
	ApplyInPlace(out, key)
	return out
}

// ApplyInPlace is Apply without the copy.
func ApplyInPlace(g pixel.Grid, key []byte) {
	klen := len(key)
	if klen == 0 {
		return
	}
	p := 0
	for i := range g {
		g[i].R ^= key[p%klen]
		g[i].G ^= key[(p+1)%klen]
		g[i].B ^= key[(p+2)%klen]
		p += 3
	}
}
