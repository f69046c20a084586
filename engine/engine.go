package engine

import (
	"fmt"
	"math/rand"

	"github.com/perclft/qvm/backend"
	"github.com/perclft/qvm/isa"
	"github.com/perclft/qvm/noise"
)

// StatevectorEngine is the per-shot interpreter. It owns its backend, its
// noise engine clone, its RNG, and its StatevectorState; none of that is
// shared across shots.
type StatevectorEngine struct {
	state   StatevectorState
	phase   Phase
	backend backend.StateBackend
	noise   noise.Engine
	rng     *rand.Rand
	progress ProgressReporter

	siteIndex isa.SiteIndex
}

// New constructs an engine over hw using b as its backend (a fresh
// backend.CPU when b is nil), seeded with seed.
func New(hw isa.HardwareConfig, b backend.StateBackend, seed uint64) *StatevectorEngine {
	if b == nil {
		b = backend.NewCPU()
	}
	e := &StatevectorEngine{
		state:   newStatevectorState(hw),
		phase:   Uninitialized,
		backend: b,
		rng:     rand.New(rand.NewSource(int64(seed))),
	}
	e.siteIndex = isa.BuildSiteIndex(&e.state.HW)
	return e
}

// SetNoiseModel stores a fresh Clone() of noiseEngine so this engine owns
// independent mutable loss state. A nil noiseEngine detaches noise
// entirely.
func (e *StatevectorEngine) SetNoiseModel(noiseEngine noise.Engine) {
	if noiseEngine == nil {
		e.noise = nil
		return
	}
	e.noise = noiseEngine.Clone()
}

func (e *StatevectorEngine) SetRandomSeed(seed uint64) {
	e.rng = rand.New(rand.NewSource(int64(seed)))
}

func (e *StatevectorEngine) SetShotIndex(shot int) {
	e.state.ShotIndex = shot
}

func (e *StatevectorEngine) SetProgressReporter(r ProgressReporter) {
	e.progress = r
}

func (e *StatevectorEngine) State() StatevectorState {
	return e.state.clone()
}

func (e *StatevectorEngine) Logs() []isa.ExecutionLog {
	return e.state.Logs
}

func (e *StatevectorEngine) StateVector() []complex128 {
	return e.backend.State()
}

func (e *StatevectorEngine) randomStream() noise.RandomStream {
	return &engineRandomStream{rng: e.rng}
}

type engineRandomStream struct{ rng *rand.Rand }

func (s *engineRandomStream) Uniform(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Float64()*(hi-lo)
}

// Run clears the log buffer and dispatches every instruction in program in
// order, incrementing the attached progress reporter once per instruction.
func (e *StatevectorEngine) Run(program []isa.Instruction) error {
	e.state.Logs = nil
	if e.progress != nil {
		e.progress.SetTotalSteps(len(program))
	}
	for _, instr := range program {
		if err := e.dispatch(instr); err != nil {
			e.phase = Terminated
			return err
		}
		if e.progress != nil {
			e.progress.IncrementCompletedSteps(1)
		}
	}
	return nil
}

func (e *StatevectorEngine) dispatch(instr isa.Instruction) error {
	if e.phase == Terminated {
		return isa.Errorf(isa.InvalidSequence, "engine already terminated by a prior fault")
	}
	if e.phase == Uninitialized && instr.Op != isa.OpAllocArray {
		return isa.Errorf(isa.InvalidSequence, "instruction %s before first AllocArray", instr.Op)
	}
	switch instr.Op {
	case isa.OpAllocArray:
		return e.allocArray(instr.NQubits)
	case isa.OpApplyGate:
		return e.applyGate(instr.Gate)
	case isa.OpMeasure:
		return e.measure(instr.Targets)
	case isa.OpMoveAtom:
		return e.moveAtom(instr.Move)
	case isa.OpWait:
		return e.wait(instr.WaitOp)
	case isa.OpPulse:
		return e.pulse(instr.PulseOp)
	default:
		return isa.Errorf(isa.InvalidArgument, "unknown instruction op %v", instr.Op)
	}
}

func (e *StatevectorEngine) logEvent(category, message string) {
	e.state.Logs = append(e.state.Logs, isa.ExecutionLog{
		Shot:        e.state.ShotIndex,
		LogicalTime: e.state.LogicalTime,
		Category:    category,
		Message:     message,
	})
	if e.progress != nil {
		e.progress.RecordLog(e.state.Logs[len(e.state.Logs)-1])
	}
}

// allocArray resets the engine to an n-qubit all-zero state and zeroes the
// logical clock. Re-allocating while already ALLOCATED preserves positions
// (padding as needed) and resets measurement cooldown history.
func (e *StatevectorEngine) allocArray(n int) error {
	if err := e.backend.AllocArray(n); err != nil {
		return err
	}
	e.state.NQubits = e.backend.NumQubits()
	if len(e.state.HW.Positions) < n {
		padded := make([]float64, n)
		copy(padded, e.state.HW.Positions)
		e.state.HW.Positions = padded
	}
	e.state.LogicalTime = 0
	e.state.LastMeasurementTime = make([]float64, n)
	for i := range e.state.LastMeasurementTime {
		e.state.LastMeasurementTime[i] = negInf()
	}
	e.state.InstructionCounts["AllocArray"]++
	e.phase = Allocated
	e.backend.SyncHostToDevice()
	e.logEvent("AllocArray", fmt.Sprintf("AllocArray n_qubits=%d", n))
	return nil
}
