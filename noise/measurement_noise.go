package noise

import "github.com/perclft/qvm/isa"

// MeasurementNoise flips each non-lost bit with probability PQuantumFlip,
// then applies asymmetric classical readout flips.
type MeasurementNoise struct {
	NoOp
	PQuantumFlip float64
	Readout      MeasurementNoiseConfig
}

func (m *MeasurementNoise) Clone() Engine {
	clone := *m
	return &clone
}

func (m *MeasurementNoise) ApplyMeasurementNoise(record *isa.MeasurementRecord, rng RandomStream) {
	hasQuantum := m.PQuantumFlip > 0
	hasReadout := m.Readout.PFlip0to1 > 0 || m.Readout.PFlip1to0 > 0
	if !hasQuantum && !hasReadout {
		return
	}
	for i, bit := range record.Bits {
		if bit == -1 {
			continue
		}
		if hasQuantum {
			if rng.Uniform(0, 1) < m.PQuantumFlip {
				bit = 1 - bit
			}
		}
		if hasReadout {
			r := rng.Uniform(0, 1)
			if bit == 0 {
				if r < m.Readout.PFlip0to1 {
					bit = 1
				}
			} else if bit == 1 {
				if r < m.Readout.PFlip1to0 {
					bit = 0
				}
			}
		}
		record.Bits[i] = bit
	}
}
