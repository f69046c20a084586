// Package runner orchestrates multi-shot execution of a JobRequest: it
// schedules the program once, partitions shots across a worker pool,
// runs each shot in its own StatevectorEngine, and aggregates results in
// shot order.
package runner

import (
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/perclft/qvm/backend"
	"github.com/perclft/qvm/engine"
	"github.com/perclft/qvm/isa"
	"github.com/perclft/qvm/jobtypes"
	"github.com/perclft/qvm/noise"
	"github.com/perclft/qvm/scheduler"
)

// NullProgressReporter discards every call. It exists so callers that
// don't care about progress can pass a non-nil reporter without writing
// their own no-op.
type NullProgressReporter struct{}

func (NullProgressReporter) SetTotalSteps(int)                 {}
func (NullProgressReporter) IncrementCompletedSteps(int)       {}
func (NullProgressReporter) RecordLog(isa.ExecutionLog)        {}

type shotOutcome struct {
	measurements []isa.MeasurementRecord
	logs         []isa.ExecutionLog
}

// Run executes job.Program for job.Shots shots against job.Hardware,
// returning every shot's measurements and logs concatenated in shot
// order. reporter may be nil.
func Run(job jobtypes.JobRequest, reporter engine.ProgressReporter) (result jobtypes.JobResult) {
	start := time.Now()
	result = jobtypes.JobResult{JobID: job.JobID}
	defer func() {
		result.ElapsedTimeSeconds = time.Since(start).Seconds()
	}()

	isaVersion := job.ISAVersion
	if isaVersion == (isa.ISAVersion{}) {
		isaVersion = isa.CurrentISAVersion
	}
	if !isa.IsSupportedISAVersion(isaVersion) {
		result.Status = jobtypes.Failed
		result.Message = "unsupported ISA version " + isaVersion.String() +
			" (supported: " + isa.SupportedVersionsString() + ")"
		return result
	}

	numShots := job.Shots
	if numShots < 1 {
		numShots = 1
	}

	seeds := job.ShotSeeds
	if len(seeds) > 0 && len(seeds) != numShots {
		result.Status = jobtypes.Failed
		result.Message = "shot seeds must match the requested shots"
		return result
	}
	if len(seeds) == 0 {
		seedRNG := rand.New(rand.NewSource(rand.Int63()))
		seeds = make([]uint64, numShots)
		for i := range seeds {
			seeds[i] = seedRNG.Uint64()
		}
	}

	var noiseEngine noise.Engine
	if job.NoiseConfig != nil {
		built, err := noise.Build(*job.NoiseConfig)
		if err != nil {
			result.Status = jobtypes.Failed
			result.Message = err.Error()
			return result
		}
		noiseEngine = built
	}

	scheduledProgram, schedulerTimeline := scheduler.Schedule(job.Program, job.Hardware)
	result.SchedulerTimeline = schedulerTimeline
	result.SchedulerTimelineUnits = "ns"
	result.Timeline = toMicroseconds(schedulerTimeline)
	result.TimelineUnits = "us"

	workerLimit := job.MaxThreads
	if workerLimit <= 0 {
		workerLimit = runtime.NumCPU()
	}
	workerCount := numShots
	if workerLimit < workerCount {
		workerCount = workerLimit
	}
	if workerCount < 1 {
		workerCount = 1
	}

	outcomes := make([]shotOutcome, numShots)
	baseShots := numShots / workerCount
	remainder := numShots % workerCount

	var wg sync.WaitGroup
	var failureMu sync.Mutex
	var failure error

	shotOffset := 0
	for worker := 0; worker < workerCount; worker++ {
		shotsForWorker := baseShots
		if worker < remainder {
			shotsForWorker++
		}
		if shotsForWorker == 0 {
			continue
		}
		rangeStart := shotOffset
		rangeEnd := rangeStart + shotsForWorker
		shotOffset = rangeEnd

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for shot := start; shot < end; shot++ {
				e := engine.New(job.Hardware, backend.NewCPU(), seeds[shot])
				e.SetShotIndex(shot)
				if reporter != nil {
					e.SetProgressReporter(reporter)
				}
				if noiseEngine != nil {
					e.SetNoiseModel(noiseEngine)
				}
				if err := e.Run(scheduledProgram); err != nil {
					failureMu.Lock()
					if failure == nil {
						failure = err
					}
					failureMu.Unlock()
					return
				}
				state := e.State()
				outcomes[shot] = shotOutcome{measurements: state.Measurements, logs: state.Logs}
			}
		}(rangeStart, rangeEnd)
	}
	wg.Wait()

	if failure != nil {
		result.Status = jobtypes.Failed
		result.Message = failure.Error()
		return result
	}

	for _, outcome := range outcomes {
		result.Measurements = append(result.Measurements, outcome.measurements...)
		result.Logs = append(result.Logs, outcome.logs...)
	}
	result.Status = jobtypes.Completed
	return result
}

// toMicroseconds returns a copy of entries with StartTime/Duration
// converted from the engine's internal nanoseconds to microseconds, for
// the external-facing JobResult.Timeline (spec.md §5/§6: keep ns
// internally, convert only at the external boundary, tag the unit).
func toMicroseconds(entries []isa.TimelineEntry) []isa.TimelineEntry {
	out := make([]isa.TimelineEntry, len(entries))
	for i, e := range entries {
		out[i] = isa.TimelineEntry{
			StartTime: e.StartTime / 1000,
			Duration:  e.Duration / 1000,
			Op:        e.Op,
			Detail:    e.Detail,
		}
	}
	return out
}
