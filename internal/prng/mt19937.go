// Package prng provides the deterministic generator that drives the pixel
// permutation.
//
// The engine is MT19937 seeded the way CPython's random.Random(int) seeds
// itself, and Bits/Below/Shuffle reproduce getrandbits, _randbelow and
// shuffle. Permutations therefore match Python's random.shuffle for the
// same integer seed, bit for bit.
package prng

const (
	mtN           = 624
	mtM           = 397
	matrixA       = 0x9908b0df
	upperMask     = 0x80000000
	lowerMask     = 0x7fffffff
	initArraySeed = 19650218
)

// Source yields uniformly distributed 32-bit words.
type Source interface {
	Uint32() uint32
}

// MT19937 is a 32-bit Mersenne Twister. Not safe for concurrent use.
type MT19937 struct {
	mt    [mtN]uint32
	index int
}

// New returns a generator seeded from seed using CPython's integer seeding:
// the seed is split into 32-bit little-endian words (one word when it fits
// in 32 bits) and fed to init_by_array.
func New(seed uint64) *MT19937 {
	key := []uint32{uint32(seed)}
	if hi := uint32(seed >> 32); hi != 0 {
		key = append(key, hi)
	}
	m := &MT19937{}
	m.initByArray(key)
	return m
}

// NewGenrand returns a generator seeded with the reference init_genrand
// routine. Used to check the engine against published MT19937 outputs.
func NewGenrand(s uint32) *MT19937 {
	m := &MT19937{}
	m.initGenrand(s)
	return m
}

func (m *MT19937) initGenrand(s uint32) {
	m.mt[0] = s
	for i := 1; i < mtN; i++ {
		prev := m.mt[i-1]
		m.mt[i] = 1812433253*(prev^(prev>>30)) + uint32(i)
	}
	m.index = mtN
}

func (m *MT19937) initByArray(key []uint32) {
	m.initGenrand(initArraySeed)
	i, j := 1, 0
	k := mtN
	if len(key) > k {
		k = len(key)
	}
	for ; k > 0; k-- {
		prev := m.mt[i-1]
		m.mt[i] = (m.mt[i] ^ ((prev ^ (prev >> 30)) * 1664525)) + key[j] + uint32(j)
		i++
		j++
		if i >= mtN {
			m.mt[0] = m.mt[mtN-1]
			i = 1
		}
		if j >= len(key) {
			j = 0
		}
	}
	for k = mtN - 1; k > 0; k-- {
		prev := m.mt[i-1]
		m.mt[i] = (m.mt[i] ^ ((prev ^ (prev >> 30)) * 1566083941)) - uint32(i)
		i++
		if i >= mtN {
			m.mt[0] = m.mt[mtN-1]
			i = 1
		}
	}
	m.mt[0] = upperMask
}

func (m *MT19937) twist() {
	for kk := 0; kk < mtN; kk++ {
		y := (m.mt[kk] & upperMask) | (m.mt[(kk+1)%mtN] & lowerMask)
		v := m.mt[(kk+mtM)%mtN] ^ (y >> 1)
		if y&1 != 0 {
			v ^= matrixA
		}
		m.mt[kk] = v
	}
	m.index = 0
}

// Uint32 returns the next tempered output word.
func (m *MT19937) Uint32() uint32 {
	if m.index >= mtN {
		m.twist()
	}
	y := m.mt[m.index]
	m.index++

	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18
	return y
}
