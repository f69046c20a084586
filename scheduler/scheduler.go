// Package scheduler rewrites a program into a timed schedule: it inserts
// Wait instructions for measurement cooldown and parallelism limits, and
// emits a TimelineEntry per scheduled operation. It never touches
// amplitudes; Schedule is a pure function of a program and a hardware
// description.
package scheduler

import (
	"fmt"
	"math"

	"github.com/perclft/qvm/isa"
)

type activeOp struct {
	endTime float64
	arity   int
	zones   []int
}

type schedulingState struct {
	logicalTime         float64
	lastMeasurementTime []float64
	qubitReadyTime      []float64
	qubitZones          []int

	timeline *[]isa.TimelineEntry

	activeOps         []activeOp
	activeSingleQubit int
	activeMultiQubit  int
	activeZoneCounts  map[int]int
}

func newSchedulingState() *schedulingState {
	return &schedulingState{activeZoneCounts: make(map[int]int)}
}

func (s *schedulingState) recordTimeline(startTime, duration float64, op, detail string) {
	if s.timeline == nil {
		return
	}
	*s.timeline = append(*s.timeline, isa.TimelineEntry{StartTime: startTime, Duration: duration, Op: op, Detail: detail})
}

func (s *schedulingState) syncAllQubitsToTime() {
	for i := range s.qubitReadyTime {
		if s.qubitReadyTime[i] < s.logicalTime {
			s.qubitReadyTime[i] = s.logicalTime
		}
	}
}

// pruneActiveOps drops every active op whose end time has passed and
// releases its parallelism-limit accounting.
func (s *schedulingState) pruneActiveOps(currentTime float64) {
	kept := s.activeOps[:0]
	for _, op := range s.activeOps {
		if op.endTime <= currentTime {
			if op.arity <= 1 {
				s.activeSingleQubit = max0(s.activeSingleQubit - 1)
			} else {
				s.activeMultiQubit = max0(s.activeMultiQubit - 1)
			}
			for _, zone := range op.zones {
				if count, ok := s.activeZoneCounts[zone]; ok {
					count--
					if count <= 0 {
						delete(s.activeZoneCounts, zone)
					} else {
						s.activeZoneCounts[zone] = count
					}
				}
			}
			continue
		}
		kept = append(kept, op)
	}
	s.activeOps = kept
}

func (s *schedulingState) nextActiveCompletion() float64 {
	next := math.Inf(1)
	for _, op := range s.activeOps {
		if op.endTime < next {
			next = op.endTime
		}
	}
	return next
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func (s *schedulingState) zonesForTargets(targets []int) []int {
	zones := make([]int, 0, len(targets))
	contains := func(z int) bool {
		for _, existing := range zones {
			if existing == z {
				return true
			}
		}
		return false
	}
	for _, t := range targets {
		zone := 0
		if t >= 0 && t < len(s.qubitZones) {
			zone = s.qubitZones[t]
		}
		if !contains(zone) {
			zones = append(zones, zone)
		}
	}
	if len(zones) == 0 {
		zones = append(zones, 0)
	}
	return zones
}

func parallelLimitsSatisfied(s *schedulingState, limits isa.TimingLimits, arity int, zones []int) bool {
	if arity <= 1 {
		if limits.MaxParallelSingleQubit > 0 && s.activeSingleQubit+1 > limits.MaxParallelSingleQubit {
			return false
		}
	} else {
		if limits.MaxParallelTwoQubit > 0 && s.activeMultiQubit+1 > limits.MaxParallelTwoQubit {
			return false
		}
	}
	if limits.MaxParallelPerZone > 0 {
		for _, zone := range zones {
			if s.activeZoneCounts[zone]+1 > limits.MaxParallelPerZone {
				return false
			}
		}
	}
	return true
}

// enforceParallelLimits advances candidate until the pending op would not
// exceed any configured parallelism limit, pruning completed ops as time
// moves forward.
func enforceParallelLimits(s *schedulingState, limits isa.TimingLimits, arity int, zones []int, startTime float64) float64 {
	if limits.MaxParallelSingleQubit <= 0 && limits.MaxParallelTwoQubit <= 0 && limits.MaxParallelPerZone <= 0 {
		return startTime
	}
	candidate := startTime
	for {
		s.pruneActiveOps(candidate)
		if parallelLimitsSatisfied(s, limits, arity, zones) {
			return candidate
		}
		next := s.nextActiveCompletion()
		if math.IsInf(next, 1) {
			return candidate
		}
		if next > candidate {
			candidate = next
		}
	}
}

func trackActiveGate(s *schedulingState, arity int, zones []int, endTime float64) {
	s.activeOps = append(s.activeOps, activeOp{endTime: endTime, arity: arity, zones: zones})
	if arity <= 1 {
		s.activeSingleQubit++
	} else {
		s.activeMultiQubit++
	}
	for _, zone := range zones {
		s.activeZoneCounts[zone]++
	}
}

// alignWithIdleWindow advances candidateStart until no active op overlaps
// it, used before a Measure so its readout does not race an in-flight
// gate.
func alignWithIdleWindow(s *schedulingState, candidateStart float64) float64 {
	start := candidateStart
	for {
		s.pruneActiveOps(start)
		if len(s.activeOps) == 0 {
			return start
		}
		next := s.nextActiveCompletion()
		if math.IsInf(next, 1) {
			return start
		}
		if next > start {
			start = next
		}
	}
}

// appendWaitInstruction splits duration into chunks respecting the
// configured min/max wait bounds and appends one Wait instruction (and
// timeline entry) per chunk.
func appendWaitInstruction(out *[]isa.Instruction, s *schedulingState, duration float64, limits isa.TimingLimits, detail string) {
	if duration <= 0 {
		return
	}
	remaining := duration
	for remaining > 0 {
		chunk := remaining
		if limits.MaxWaitNs > 0 && chunk > limits.MaxWaitNs {
			chunk = limits.MaxWaitNs
		}
		if limits.MinWaitNs > 0 && chunk < limits.MinWaitNs {
			chunk = limits.MinWaitNs
		}
		if chunk <= 0 {
			if limits.MinWaitNs > 0 {
				chunk = limits.MinWaitNs
			} else {
				chunk = remaining
			}
		}
		startTime := s.logicalTime
		*out = append(*out, isa.WaitInstr(chunk))
		s.logicalTime += chunk
		s.syncAllQubitsToTime()
		detailWithDuration := fmt.Sprintf("duration_ns=%g", chunk)
		if detail != "" {
			detailWithDuration = detail + " " + detailWithDuration
		}
		s.recordTimeline(startTime, chunk, "Wait", detailWithDuration)
		remaining -= chunk
	}
}

func enforceMeasurementCooldown(out *[]isa.Instruction, s *schedulingState, hw isa.HardwareConfig, gate isa.Gate) {
	cooldown := hw.TimingLimits.MeasurementCooldownNs
	if cooldown <= 0 {
		return
	}
	targetTime := s.logicalTime
	for _, t := range gate.Targets {
		if t < 0 || t >= len(s.lastMeasurementTime) {
			continue
		}
		if want := s.lastMeasurementTime[t] + cooldown; want > targetTime {
			targetTime = want
		}
	}
	if targetTime > s.logicalTime {
		appendWaitInstruction(out, s, targetTime-s.logicalTime, hw.TimingLimits, "inserted for measurement cooldown")
	}
}

func describeGate(g isa.Gate) string {
	return fmt.Sprintf("%s targets=%v param=%g", g.Name, g.Targets, g.Param)
}

func describeMeasure(targets []int) string {
	return fmt.Sprintf("targets=%v", targets)
}

func describePulse(p isa.Pulse) string {
	return fmt.Sprintf("target=%d detuning=%g duration_ns=%g", p.Target, p.Detuning, p.DurationNs)
}

// Schedule rewrites program into a sequence with Wait instructions inserted
// for measurement cooldown and parallelism limits, and returns the
// matching timeline of scheduled intervals. It is a pure function: neither
// program nor hw is mutated.
func Schedule(program []isa.Instruction, hw isa.HardwareConfig) ([]isa.Instruction, []isa.TimelineEntry) {
	scheduled := make([]isa.Instruction, 0, len(program))
	timeline := make([]isa.TimelineEntry, 0, len(program))

	s := newSchedulingState()
	s.timeline = &timeline
	siteIndex := isa.BuildSiteIndex(&hw)

	for _, instr := range program {
		switch instr.Op {
		case isa.OpAllocArray:
			scheduled = append(scheduled, instr)
			n := instr.NQubits
			if n < 0 {
				n = 0
			}
			s.logicalTime = 0
			s.lastMeasurementTime = make([]float64, n)
			for i := range s.lastMeasurementTime {
				s.lastMeasurementTime[i] = math.Inf(-1)
			}
			s.qubitReadyTime = make([]float64, n)
			s.qubitZones = make([]int, n)
			for i := range s.qubitZones {
				s.qubitZones[i] = hw.ZoneForSlot(siteIndex, i)
			}
			s.activeOps = nil
			s.activeSingleQubit = 0
			s.activeMultiQubit = 0
			s.activeZoneCounts = make(map[int]int)

		case isa.OpApplyGate:
			gate := instr.Gate
			enforceMeasurementCooldown(&scheduled, s, hw, gate)

			var duration float64
			if native := hw.FindNativeGate(gate.Name, len(gate.Targets)); native != nil {
				duration = native.DurationNs
			}

			var startTime float64
			for _, t := range gate.Targets {
				if t < 0 || t >= len(s.qubitReadyTime) {
					continue
				}
				if s.qubitReadyTime[t] > startTime {
					startTime = s.qubitReadyTime[t]
				}
			}
			zones := s.zonesForTargets(gate.Targets)
			startTime = enforceParallelLimits(s, hw.TimingLimits, len(gate.Targets), zones, startTime)
			if startTime > s.logicalTime {
				appendWaitInstruction(&scheduled, s, startTime-s.logicalTime, hw.TimingLimits, "inserted for scheduling gap")
			}

			scheduled = append(scheduled, instr)
			endTime := startTime + duration
			s.recordTimeline(startTime, duration, "ApplyGate", describeGate(gate))
			if duration > 0 {
				trackActiveGate(s, len(gate.Targets), zones, endTime)
			}
			for _, t := range gate.Targets {
				if t < 0 || t >= len(s.qubitReadyTime) {
					continue
				}
				s.qubitReadyTime[t] = endTime
			}
			if startTime > s.logicalTime {
				s.logicalTime = startTime
			}
			s.logicalTime += duration

		case isa.OpMeasure:
			targets := instr.Targets
			startTime := s.logicalTime
			for _, t := range targets {
				if t < 0 || t >= len(s.qubitReadyTime) {
					continue
				}
				if s.qubitReadyTime[t] > startTime {
					startTime = s.qubitReadyTime[t]
				}
			}
			startTime = alignWithIdleWindow(s, startTime)
			if startTime > s.logicalTime {
				appendWaitInstruction(&scheduled, s, startTime-s.logicalTime, hw.TimingLimits, "inserted before measurement")
			}
			scheduled = append(scheduled, instr)
			duration := hw.TimingLimits.MeasurementDurationNs
			if startTime > s.logicalTime {
				s.logicalTime = startTime
			}
			s.logicalTime += duration
			for _, t := range targets {
				if t < 0 || t >= len(s.lastMeasurementTime) {
					continue
				}
				s.lastMeasurementTime[t] = s.logicalTime
				if t < len(s.qubitReadyTime) {
					s.qubitReadyTime[t] = s.logicalTime
				}
			}
			s.syncAllQubitsToTime()
			s.recordTimeline(startTime, duration, "Measure", describeMeasure(targets))

		case isa.OpWait:
			scheduled = append(scheduled, instr)
			startTime := s.logicalTime
			duration := instr.WaitOp.DurationNs
			s.logicalTime += duration
			s.syncAllQubitsToTime()
			s.recordTimeline(startTime, duration, "Wait", fmt.Sprintf("duration_ns=%g", duration))

		case isa.OpPulse:
			scheduled = append(scheduled, instr)
			startTime := s.logicalTime
			pulse := instr.PulseOp
			duration := pulse.DurationNs
			s.logicalTime += duration
			s.syncAllQubitsToTime()
			s.recordTimeline(startTime, duration, "Pulse", describePulse(pulse))

		default:
			scheduled = append(scheduled, instr)
		}
	}

	return scheduled, timeline
}
