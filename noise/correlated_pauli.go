package noise

var correlatedPaulis = [4]byte{'I', 'X', 'Y', 'Z'}

// CorrelatedPauli samples a joint Pauli from a 4x4 control-target
// probability table (I,X,Y,Z order) and applies both halves.
type CorrelatedPauli struct {
	NoOp
	Cfg TwoQubitCorrelatedPauliConfig
}

func (c *CorrelatedPauli) Clone() Engine {
	clone := *c
	return &clone
}

func (c *CorrelatedPauli) ApplyTwoQubitGateNoise(q0, q1, nQubits int, amplitudes []complex128, rng RandomStream) {
	var total float64
	for _, p := range c.Cfg.Matrix {
		total += p
	}
	if total <= 0 {
		return
	}
	r := rng.Uniform(0, 1)
	var cumulative float64
	for ctrl := 0; ctrl < 4; ctrl++ {
		for tgt := 0; tgt < 4; tgt++ {
			p := c.Cfg.Matrix[4*ctrl+tgt]
			if p <= 0 {
				continue
			}
			cumulative += p
			if r < cumulative {
				applySingleQubitPauli(correlatedPaulis[ctrl], amplitudes, q0)
				applySingleQubitPauli(correlatedPaulis[tgt], amplitudes, q1)
				return
			}
		}
	}
}
