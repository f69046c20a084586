// Package jobtypes defines the request/result shapes a runner consumes
// and produces. It carries no JSON tags and does no marshaling — framing
// a job over a wire protocol is out of scope here.
package jobtypes

import (
	"github.com/perclft/qvm/isa"
	"github.com/perclft/qvm/noise"
)

// JobStatus is a job's lifecycle stage.
type JobStatus int

const (
	Pending JobStatus = iota
	Running
	Completed
	Failed
)

func (s JobStatus) String() string {
	switch s {
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// JobRequest is everything a runner needs to execute a program: the
// target hardware, the program itself, how many shots to run, and
// optionally a noise model and per-shot seeds.
type JobRequest struct {
	JobID      string
	DeviceID   string
	Profile    string
	Hardware   isa.HardwareConfig
	Program    []isa.Instruction
	Shots      int
	MaxThreads int
	Metadata   map[string]string
	ISAVersion isa.ISAVersion
	NoiseConfig *noise.Config

	// ShotSeeds, when non-empty, must have exactly Shots entries and pins
	// each shot's RNG seed; otherwise seeds are drawn from a master PRNG.
	ShotSeeds []uint64
}

// JobResult is a runner's complete output for one JobRequest: every
// shot's measurements and logs concatenated in shot order, plus the
// scheduler's rewritten timeline and an external-facing copy of it.
//
// Timeline and SchedulerTimeline carry the same plan, in different units:
// SchedulerTimeline is the engine-internal nanosecond form; Timeline is
// the microsecond-scale copy external consumers get, per spec.md §5's
// "convert only at the external boundary, tag the unit" rule. The
// matching *Units field names the unit ("ns"/"us").
type JobResult struct {
	JobID                  string
	Status                 JobStatus
	ElapsedTimeSeconds     float64
	Measurements           []isa.MeasurementRecord
	Logs                   []isa.ExecutionLog
	Timeline               []isa.TimelineEntry
	TimelineUnits          string
	SchedulerTimeline      []isa.TimelineEntry
	SchedulerTimelineUnits string
	Message                string
}
