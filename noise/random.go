package noise

import "math/rand"

// RandomStream is the noise layer's only view of randomness. Channels never
// reference a concrete PRNG directly so the engine can swap the generator
// without touching channel code.
type RandomStream interface {
	// Uniform draws from [lo, hi). When hi <= lo it clamps to lo.
	Uniform(lo, hi float64) float64
}

// StdRandomStream wraps a math/rand source. The pack carries no
// Mersenne-Twister implementation (the original asks for a 64-bit
// MT-style generator, std::mt19937_64); math/rand's default Source64 is
// substituted and documented in DESIGN.md rather than silently assumed.
type StdRandomStream struct {
	rng *rand.Rand
}

func NewStdRandomStream(seed uint64) *StdRandomStream {
	return &StdRandomStream{rng: rand.New(rand.NewSource(int64(seed)))}
}

func (s *StdRandomStream) Uniform(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Float64()*(hi-lo)
}
