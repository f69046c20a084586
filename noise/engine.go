package noise

import "github.com/perclft/qvm/isa"

// Engine is the capability set every channel implements. Each hook is
// optional; the embeddable NoOp type supplies slim no-op defaults so a
// channel only overrides the hooks it cares about. Clone exists because
// LossTracking carries mutable per-qubit state — never share one Engine
// instance by reference across shots.
type Engine interface {
	Clone() Engine

	ApplyMeasurementNoise(record *isa.MeasurementRecord, rng RandomStream)
	ApplySingleQubitGateNoise(target, nQubits int, amplitudes []complex128, rng RandomStream)
	ApplyTwoQubitGateNoise(q0, q1, nQubits int, amplitudes []complex128, rng RandomStream)
	ApplyIdleNoise(nQubits int, amplitudes []complex128, duration float64, rng RandomStream)
}

// NoOp gives concrete channels slim defaults for the hooks they don't
// implement; embed it and override only what's needed.
type NoOp struct{}

func (NoOp) ApplyMeasurementNoise(*isa.MeasurementRecord, RandomStream)       {}
func (NoOp) ApplySingleQubitGateNoise(int, int, []complex128, RandomStream)   {}
func (NoOp) ApplyTwoQubitGateNoise(int, int, int, []complex128, RandomStream) {}
func (NoOp) ApplyIdleNoise(int, []complex128, float64, RandomStream)         {}

// Composite holds an ordered sequence of channels; each hook iterates
// sources in order, and later channels observe the amplitudes left by
// earlier ones. Clone deep-clones every source.
type Composite struct {
	sources []Engine
}

func NewComposite(sources ...Engine) *Composite {
	return &Composite{sources: sources}
}

func (c *Composite) Clone() Engine {
	clone := &Composite{sources: make([]Engine, len(c.sources))}
	for i, s := range c.sources {
		clone.sources[i] = s.Clone()
	}
	return clone
}

func (c *Composite) ApplyMeasurementNoise(record *isa.MeasurementRecord, rng RandomStream) {
	for _, s := range c.sources {
		s.ApplyMeasurementNoise(record, rng)
	}
}

func (c *Composite) ApplySingleQubitGateNoise(target, nQubits int, amplitudes []complex128, rng RandomStream) {
	for _, s := range c.sources {
		s.ApplySingleQubitGateNoise(target, nQubits, amplitudes, rng)
	}
}

func (c *Composite) ApplyTwoQubitGateNoise(q0, q1, nQubits int, amplitudes []complex128, rng RandomStream) {
	for _, s := range c.sources {
		s.ApplyTwoQubitGateNoise(q0, q1, nQubits, amplitudes, rng)
	}
}

func (c *Composite) ApplyIdleNoise(nQubits int, amplitudes []complex128, duration float64, rng RandomStream) {
	for _, s := range c.sources {
		s.ApplyIdleNoise(nQubits, amplitudes, duration, rng)
	}
}
