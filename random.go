package caravel

import "math/bits"

// Random engines for the evolutionary driver. Both implement
// math/rand.Source64, so they plug into rand.New for Shuffle and the
// genetic operators. Neither is safe for concurrent use; give each worker
// its own engine.

// splitmix64 expands a seed into well-distributed engine state.
func splitmix64(state *uint64) uint64 {
	*state += 0x9e3779b97f4a7c15
	z := *state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// ============================================================================
// RomuTrio
// ============================================================================

// RomuTrio is a small, fast 64-bit generator with three words of state.
type RomuTrio struct {
	x, y, z uint64
}

// NewRomuTrio creates a RomuTrio engine seeded from one 64-bit value.
func NewRomuTrio(seed uint64) *RomuTrio {
	r := &RomuTrio{}
	r.seed(seed)
	return r
}

func (r *RomuTrio) seed(seed uint64) {
	state := seed
	r.x = splitmix64(&state)
	r.y = splitmix64(&state)
	r.z = splitmix64(&state)
	if r.x == 0 && r.y == 0 && r.z == 0 {
		r.z = 1
	}
}

// Uint64 returns the next value in the sequence.
func (r *RomuTrio) Uint64() uint64 {
	xp, yp, zp := r.x, r.y, r.z
	r.x = 15241094284759029579 * zp
	r.y = bits.RotateLeft64(yp-xp, 12)
	r.z = bits.RotateLeft64(zp-yp, 44)
	return xp
}

// Int63 returns a non-negative 63-bit value, satisfying rand.Source.
func (r *RomuTrio) Int63() int64 { return int64(r.Uint64() >> 1) }

// Seed resets the engine state, satisfying rand.Source.
func (r *RomuTrio) Seed(seed int64) { r.seed(uint64(seed)) }

// ============================================================================
// Sfc64
// ============================================================================

// Sfc64 is the small fast chaotic 64-bit generator: three words of state
// plus a counter that guarantees a minimum period of 2^64.
type Sfc64 struct {
	a, b, c, w uint64
}

// NewSfc64 creates an Sfc64 engine seeded from one 64-bit value.
func NewSfc64(seed uint64) *Sfc64 {
	s := &Sfc64{}
	s.seed(seed)
	return s
}

func (s *Sfc64) seed(seed uint64) {
	s.a, s.b, s.c, s.w = seed, seed, seed, 1
	// Warm-up rounds decorrelate the state from the raw seed.
	for i := 0; i < 12; i++ {
		s.Uint64()
	}
}

// Uint64 returns the next value in the sequence.
func (s *Sfc64) Uint64() uint64 {
	out := s.a + s.b + s.w
	s.w++
	s.a = s.b ^ (s.b >> 11)
	s.b = s.c + (s.c << 3)
	s.c = bits.RotateLeft64(s.c, 24) + out
	return out
}

// Int63 returns a non-negative 63-bit value, satisfying rand.Source.
func (s *Sfc64) Int63() int64 { return int64(s.Uint64() >> 1) }

// Seed resets the engine state, satisfying rand.Source.
func (s *Sfc64) Seed(seed int64) { s.seed(uint64(seed)) }
