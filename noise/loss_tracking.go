package noise

import (
	"math"

	"github.com/perclft/qvm/isa"
)

// LossTracking maintains a per-qubit "lost" bitmap across every hook,
// which is why it must be cloned fresh per shot (see Composite.Clone) — a
// shared instance would leak lost atoms across shots. Every gate touch and
// idle interval independently tests loss; a lost qubit always measures -1
// and may also become newly lost at measurement time with probability
// MeasurementLoss. The bitmap is owned exclusively by the shot that cloned
// it, so no synchronization is needed here.
type LossTracking struct {
	NoOp
	MeasurementLoss float64
	Cfg             LossRuntimeConfig
	lost            []bool
}

func (l *LossTracking) Clone() Engine {
	return &LossTracking{
		MeasurementLoss: l.MeasurementLoss,
		Cfg:             l.Cfg,
		lost:            nil,
	}
}

func (l *LossTracking) ApplySingleQubitGateNoise(target, nQubits int, amplitudes []complex128, rng RandomStream) {
	l.ensureSize(nQubits)
	l.maybeMarkLoss(target, l.Cfg.PerGate, rng)
}

func (l *LossTracking) ApplyTwoQubitGateNoise(q0, q1, nQubits int, amplitudes []complex128, rng RandomStream) {
	l.ensureSize(nQubits)
	l.maybeMarkLoss(q0, l.Cfg.PerGate, rng)
	l.maybeMarkLoss(q1, l.Cfg.PerGate, rng)
}

func (l *LossTracking) ApplyIdleNoise(nQubits int, amplitudes []complex128, duration float64, rng RandomStream) {
	l.ensureSize(nQubits)
	if l.Cfg.IdleRate <= 0 || duration <= 0 {
		return
	}
	probability := 1 - math.Exp(-l.Cfg.IdleRate*duration)
	for q := 0; q < nQubits; q++ {
		l.maybeMarkLoss(q, probability, rng)
	}
}

func (l *LossTracking) ApplyMeasurementNoise(record *isa.MeasurementRecord, rng RandomStream) {
	for idx, q := range record.Targets {
		l.ensureTarget(q)
		if q >= 0 && l.lost[q] {
			record.Bits[idx] = -1
			continue
		}
		if l.MeasurementLoss > 0 {
			if rng.Uniform(0, 1) < l.MeasurementLoss {
				if q >= 0 {
					l.lost[q] = true
				}
				record.Bits[idx] = -1
			}
		}
	}
}

func (l *LossTracking) ensureSize(nQubits int) {
	if nQubits <= 0 {
		return
	}
	if len(l.lost) < nQubits {
		grown := make([]bool, nQubits)
		copy(grown, l.lost)
		l.lost = grown
	}
}

func (l *LossTracking) ensureTarget(q int) {
	if q < 0 {
		return
	}
	if q >= len(l.lost) {
		grown := make([]bool, q+1)
		copy(grown, l.lost)
		l.lost = grown
	}
}

func (l *LossTracking) maybeMarkLoss(q int, probability float64, rng RandomStream) {
	if probability <= 0 || q < 0 {
		return
	}
	l.ensureTarget(q)
	if l.lost[q] {
		return
	}
	if rng.Uniform(0, 1) < probability {
		l.lost[q] = true
	}
}
