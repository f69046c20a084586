package engine

import "github.com/perclft/qvm/isa"

// ProgressReporter is the contract the job runner may attach to an engine.
// The engine increments completed steps after every instruction; calls
// arrive from the worker goroutine executing the owning shot. The job
// runner attaches one reporter to every shot's engine, so calls can arrive
// concurrently from several workers: an implementation must be safe for
// concurrent use and must never block — a slow reporter stalls the shot.
type ProgressReporter interface {
	SetTotalSteps(total int)
	IncrementCompletedSteps(delta int)
	RecordLog(log isa.ExecutionLog)
}
