// Package engine implements the per-shot statevector interpreter: it
// dispatches ISA instructions against a backend.StateBackend, enforces
// hardware constraints, invokes an attached noise.Engine, samples
// measurements, and advances a logical clock.
package engine

import (
	"math"

	"github.com/perclft/qvm/isa"
)

// Phase is the per-shot lifecycle: UNINITIALIZED -> ALLOCATED -> ALLOCATED*
// (gates/measures/waits/pulses/moves) -> TERMINATED. No terminal fault
// re-enters ALLOCATED.
type Phase int

const (
	Uninitialized Phase = iota
	Allocated
	Terminated
)

// StatevectorState is the full observable state of one shot. Snapshotting
// it (State()) never mutates the engine — callers get a defensive copy, a
// capability original_source's test harness relied on to inspect
// mid-execution state (see SPEC_FULL.md §6).
type StatevectorState struct {
	NQubits    int
	HW         isa.HardwareConfig
	LogicalTime float64

	PulseLog     []isa.Pulse
	Measurements []isa.MeasurementRecord
	Logs         []isa.ExecutionLog

	ShotIndex int

	LastMeasurementTime []float64

	InstructionCounts map[string]int
}

func newStatevectorState(hw isa.HardwareConfig) StatevectorState {
	return StatevectorState{
		HW:                hw,
		InstructionCounts: make(map[string]int),
	}
}

func negInf() float64 { return math.Inf(-1) }

// clone returns a defensive deep copy suitable for exposing via State().
func (s *StatevectorState) clone() StatevectorState {
	out := *s
	out.PulseLog = append([]isa.Pulse(nil), s.PulseLog...)
	out.Measurements = append([]isa.MeasurementRecord(nil), s.Measurements...)
	out.Logs = append([]isa.ExecutionLog(nil), s.Logs...)
	out.LastMeasurementTime = append([]float64(nil), s.LastMeasurementTime...)
	out.HW.Positions = append([]float64(nil), s.HW.Positions...)
	counts := make(map[string]int, len(s.InstructionCounts))
	for k, v := range s.InstructionCounts {
		counts[k] = v
	}
	out.InstructionCounts = counts
	return out
}
