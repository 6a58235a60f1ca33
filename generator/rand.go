package generator

import "time"

type (
	// Source is a stream of pseudo-random values in [0, 1). The generator
	// only ever reads values from it; giving it a scripted Source makes the
	// choices of the generator fully predictable.
	Source interface {
		Float64() float64
	}

	// Rand is the seeded Source used for generation: a multiplicative
	// congruential generator with multiplier 48271 over 32-bit state. The
	// same seed always yields the same sequence.
	Rand struct {
		state uint32
	}
)

const randMultiplier = 48271

var now = time.Now

// NewRand returns a Rand seeded with seed. Seeds less than or equal to zero
// would give a degenerate stream, so they are replaced with a seed derived
// from the current time.
func NewRand(seed int32) *Rand {
	if seed <= 0 {
		seed = int32(now().UnixMilli() & 0x7fffffff)
		if seed == 0 {
			seed = 1
		}
	}
	return &Rand{state: uint32(seed)}
}

// Float64 advances the state and returns its lower 31 bits scaled to [0, 1).
func (r *Rand) Float64() float64 {
	r.state *= randMultiplier
	return float64(r.state&0x7fffffff) / (1 << 31)
}

// Chance rolls a percentage: weights of 100 or more always succeed and
// weights of 0 or less always fail, without reading from src. Otherwise one
// value is read and the roll succeeds weight times out of 100.
func Chance(src Source, weight int) bool {
	if weight >= 100 {
		return true
	}
	if weight <= 0 {
		return false
	}
	return int(src.Float64()*100)+1 <= weight
}

// Intn reads one value from src and returns an index in [0, n).
func Intn(src Source, n int) int {
	return int(src.Float64() * float64(n))
}
