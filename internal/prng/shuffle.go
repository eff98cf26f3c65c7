package prng

import "math/bits"

// Bits returns k random bits (1 <= k <= 64) the way getrandbits does:
// whole 32-bit words are consumed least significant first and the final
// word is truncated from the top.
func Bits(src Source, k int) uint64 {
	if k <= 0 {
		return 0
	}
	if k > 64 {
		k = 64
	}
	var out uint64
	for shift := 0; k > 0; shift += 32 {
		w := src.Uint32()
		if k < 32 {
			w >>= 32 - k
		}
		out |= uint64(w) << shift
		k -= 32
	}
	return out
}

// Below returns a uniform value in [0, n) by rejection sampling on
// bit-length-sized draws. n == 0 returns 0.
func Below(src Source, n uint64) uint64 {
	if n == 0 {
		return 0
	}
	k := bits.Len64(n)
	r := Bits(src, k)
	for r >= n {
		r = Bits(src, k)
	}
	return r
}

// Shuffle performs a Fisher–Yates shuffle over n elements from the top
// down, calling swap(i, j) with j drawn from Below(i+1).
func Shuffle(src Source, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := int(Below(src, uint64(i+1)))
		swap(i, j)
	}
}
