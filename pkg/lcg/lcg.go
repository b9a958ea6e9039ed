package lcg

const (
	// Multiplier is the LCG multiplier (Numerical Recipes).
	Multiplier uint32 = 1664525

	// Increment is the LCG increment.
	Increment uint32 = 1013904223

	// unitScale maps a 32-bit register onto [0, 1).
	unitScale = 4294967296.0
)

// LCG is a 32-bit linear congruential generator.
//
// The zero value is a generator seeded with 0.
type LCG struct {
	state uint32
}

// New returns a generator seeded with seed.
func New(seed uint32) LCG {
	return LCG{state: seed}
}

// step advances the register by one LCG step.
func (g *LCG) step() uint32 {
	g.state = g.state*Multiplier + Increment
	return g.state
}

// Float64 advances the generator and returns the new state divided by 2^32,
// a value in [0, 1).
func (g *LCG) Float64() float64 {
	return float64(g.step()) / unitScale
}

// Uint32 advances the generator and returns the raw new state.
func (g *LCG) Uint32() uint32 {
	return g.step()
}

// State returns the current register without advancing it.
func (g LCG) State() uint32 {
	return g.state
}
