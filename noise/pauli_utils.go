package noise

import "math"

func applyPauliX(state []complex128, target int) {
	bit := 1 << target
	for i := range state {
		if i&bit == 0 {
			j := i | bit
			state[i], state[j] = state[j], state[i]
		}
	}
}

func applyPauliY(state []complex128, target int) {
	bit := 1 << target
	imag := complex(0, 1)
	minusImag := complex(0, -1)
	for i := range state {
		if i&bit == 0 {
			j := i | bit
			a0, a1 := state[i], state[j]
			state[i] = minusImag * a1
			state[j] = imag * a0
		}
	}
}

func applyPauliZ(state []complex128, target int) {
	bit := 1 << target
	for i := range state {
		if i&bit != 0 {
			state[i] = -state[i]
		}
	}
}

// samplePauli draws a cumulative-probability Pauli label from cfg, or 'I'.
func samplePauli(cfg SingleQubitPauliConfig, rng RandomStream) byte {
	sum := cfg.sum()
	if sum <= 0 {
		return 'I'
	}
	r := rng.Uniform(0, 1)
	if r < cfg.Px {
		return 'X'
	}
	if r < cfg.Px+cfg.Py {
		return 'Y'
	}
	if r < cfg.Px+cfg.Py+cfg.Pz {
		return 'Z'
	}
	return 'I'
}

func applySingleQubitPauli(pauli byte, state []complex128, target int) {
	switch pauli {
	case 'X':
		applyPauliX(state, target)
	case 'Y':
		applyPauliY(state, target)
	case 'Z':
		applyPauliZ(state, target)
	}
}

// samplePhaseAngle draws theta ~ U(-magnitude, +magnitude), or 0.
func samplePhaseAngle(magnitude float64, rng RandomStream) float64 {
	if magnitude <= 0 {
		return 0
	}
	r := rng.Uniform(0, 1)
	return (2*r - 1) * magnitude
}

// applyPhaseRotation applies diag(e^{-i*theta/2}, e^{+i*theta/2}) on target.
func applyPhaseRotation(state []complex128, target int, theta float64) {
	if theta == 0 {
		return
	}
	bit := 1 << target
	half := 0.5 * theta
	phase0 := complex(math.Cos(-half), math.Sin(-half))
	phase1 := complex(math.Cos(half), math.Sin(half))
	for i := range state {
		if i&bit == 0 {
			state[i] *= phase0
		} else {
			state[i] *= phase1
		}
	}
}
