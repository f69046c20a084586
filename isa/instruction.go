package isa

import "strconv"

// Op tags which variant an Instruction carries.
type Op int

const (
	OpAllocArray Op = iota
	OpApplyGate
	OpMeasure
	OpMoveAtom
	OpWait
	OpPulse
)

func (op Op) String() string {
	switch op {
	case OpAllocArray:
		return "AllocArray"
	case OpApplyGate:
		return "ApplyGate"
	case OpMeasure:
		return "Measure"
	case OpMoveAtom:
		return "MoveAtom"
	case OpWait:
		return "Wait"
	case OpPulse:
		return "Pulse"
	default:
		return "Unknown"
	}
}

// Gate is the payload of an ApplyGate instruction.
type Gate struct {
	Name    string
	Targets []int
	Param   float64
}

// MoveAtom is the payload of a MoveAtom instruction.
type MoveAtom struct {
	Atom     int
	Position float64
}

// Wait is the payload of a Wait instruction.
type Wait struct {
	DurationNs float64
}

// Pulse is the payload of a Pulse instruction.
type Pulse struct {
	Target     int
	Detuning   float64
	DurationNs float64
}

// Instruction is the ISA's tagged variant. Exactly one of the payload
// fields is meaningful, selected by Op. Using typed fields rather than an
// interface keeps the scheduler and engine dispatch a plain switch over Op
// with no payload-type assertions at call sites.
type Instruction struct {
	Op Op

	NQubits int      // AllocArray
	Gate    Gate     // ApplyGate
	Targets []int    // Measure
	Move    MoveAtom // MoveAtom
	WaitOp  Wait     // Wait
	PulseOp Pulse    // Pulse
}

func AllocArray(n int) Instruction {
	return Instruction{Op: OpAllocArray, NQubits: n}
}

func ApplyGate(name string, targets []int, param float64) Instruction {
	return Instruction{Op: OpApplyGate, Gate: Gate{Name: name, Targets: targets, Param: param}}
}

func Measure(targets []int) Instruction {
	return Instruction{Op: OpMeasure, Targets: targets}
}

func MoveAtomInstr(atom int, position float64) Instruction {
	return Instruction{Op: OpMoveAtom, Move: MoveAtom{Atom: atom, Position: position}}
}

func WaitInstr(durationNs float64) Instruction {
	return Instruction{Op: OpWait, WaitOp: Wait{DurationNs: durationNs}}
}

func PulseInstr(target int, detuning, durationNs float64) Instruction {
	return Instruction{Op: OpPulse, PulseOp: Pulse{Target: target, Detuning: detuning, DurationNs: durationNs}}
}

// ISAVersion is a major.minor pair identifying the instruction set a
// JobRequest was compiled against.
type ISAVersion struct {
	Major int
	Minor int
}

func (v ISAVersion) String() string {
	return strconv.Itoa(v.Major) + "." + strconv.Itoa(v.Minor)
}

// CurrentISAVersion is the version new JobRequests are assumed to target
// when none is specified.
var CurrentISAVersion = ISAVersion{Major: 1, Minor: 1}

// SupportedISAVersions lists every version this module's engine/scheduler
// pair knows how to execute.
var SupportedISAVersions = []ISAVersion{
	{Major: 1, Minor: 0},
	{Major: 1, Minor: 1},
}

func IsSupportedISAVersion(v ISAVersion) bool {
	for _, s := range SupportedISAVersions {
		if s == v {
			return true
		}
	}
	return false
}

func SupportedVersionsString() string {
	out := ""
	for i, v := range SupportedISAVersions {
		if i > 0 {
			out += ", "
		}
		out += v.String()
	}
	return out
}
