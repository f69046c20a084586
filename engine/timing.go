package engine

import (
	"fmt"

	"github.com/perclft/qvm/isa"
)

// moveAtom validates the target atom and new position against any
// configured move limits, then updates the recorded position in place.
func (e *StatevectorEngine) moveAtom(m isa.MoveAtom) error {
	if m.Atom < 0 || m.Atom >= e.state.NQubits {
		return isa.Errorf(isa.OutOfRange, "move target %d out of range", m.Atom)
	}
	limits := e.state.HW.MoveLimits
	if limits.MaxTotalDisplacementPerAtom > 0 {
		current := e.state.HW.Positions[m.Atom]
		delta := m.Position - current
		if delta < 0 {
			delta = -delta
		}
		if delta > limits.MaxTotalDisplacementPerAtom {
			return isa.Errorf(isa.TimingViolation, "move of atom %d exceeds max displacement %g", m.Atom, limits.MaxTotalDisplacementPerAtom)
		}
	}
	if limits.MaxMovesPerShot > 0 && e.state.InstructionCounts["MoveAtom"] >= limits.MaxMovesPerShot {
		return isa.Errorf(isa.TimingViolation, "shot exceeds max moves per shot %d", limits.MaxMovesPerShot)
	}
	e.state.HW.Positions[m.Atom] = m.Position
	e.state.InstructionCounts["MoveAtom"]++
	e.logEvent("MoveAtom", fmt.Sprintf("MoveAtom atom=%d position=%g", m.Atom, m.Position))
	return nil
}

// wait rejects negative durations, enforces configured min/max wait
// limits, advances the logical clock, and applies idle noise to every
// allocated qubit.
func (e *StatevectorEngine) wait(w isa.Wait) error {
	if w.DurationNs < 0 {
		return isa.Errorf(isa.InvalidArgument, "wait duration %g is negative", w.DurationNs)
	}
	limits := e.state.HW.TimingLimits
	if limits.MinWaitNs > 0 && w.DurationNs < limits.MinWaitNs {
		return isa.Errorf(isa.TimingViolation, "wait duration %g below minimum %g", w.DurationNs, limits.MinWaitNs)
	}
	if limits.MaxWaitNs > 0 && w.DurationNs > limits.MaxWaitNs {
		return isa.Errorf(isa.TimingViolation, "wait duration %g above maximum %g", w.DurationNs, limits.MaxWaitNs)
	}

	e.state.LogicalTime += w.DurationNs

	if e.noise != nil {
		e.noise.ApplyIdleNoise(e.state.NQubits, e.backend.State(), w.DurationNs, e.randomStream())
	}

	e.state.InstructionCounts["Wait"]++
	e.logEvent("Wait", fmt.Sprintf("Wait duration_ns=%g", w.DurationNs))
	return nil
}

// pulse validates the target and duration against configured pulse
// limits and appends the pulse to the log. It never mutates amplitudes:
// pulses are recorded for downstream scheduling/analysis only.
func (e *StatevectorEngine) pulse(p isa.Pulse) error {
	if p.Target < 0 || p.Target >= e.state.NQubits {
		return isa.Errorf(isa.OutOfRange, "pulse target %d out of range", p.Target)
	}
	if p.DurationNs < 0 {
		return isa.Errorf(isa.InvalidArgument, "pulse duration %g is negative", p.DurationNs)
	}
	limits := e.state.HW.PulseLimits
	if limits.DurationMaxNs > 0 && p.DurationNs > limits.DurationMaxNs {
		return isa.Errorf(isa.TimingViolation, "pulse duration %g exceeds maximum %g", p.DurationNs, limits.DurationMaxNs)
	}
	if limits.DurationMinNs > 0 && p.DurationNs < limits.DurationMinNs {
		return isa.Errorf(isa.TimingViolation, "pulse duration %g below minimum %g", p.DurationNs, limits.DurationMinNs)
	}
	if limits.DetuningMax > limits.DetuningMin {
		if p.Detuning < limits.DetuningMin || p.Detuning > limits.DetuningMax {
			return isa.Errorf(isa.TimingViolation, "pulse detuning %g outside [%g,%g]", p.Detuning, limits.DetuningMin, limits.DetuningMax)
		}
	}

	e.state.PulseLog = append(e.state.PulseLog, p)
	e.state.InstructionCounts["Pulse"]++
	e.logEvent("Pulse", fmt.Sprintf("Pulse target=%d detuning=%g duration_ns=%g", p.Target, p.Detuning, p.DurationNs))
	return nil
}
