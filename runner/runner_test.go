package runner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perclft/qvm/isa"
	"github.com/perclft/qvm/jobtypes"
	"github.com/perclft/qvm/runner"
)

func bellJob(shots int, seeds []uint64) jobtypes.JobRequest {
	return jobtypes.JobRequest{
		JobID: "test-job",
		Hardware: isa.HardwareConfig{
			Positions: []float64{0, 1},
			NativeGates: []isa.NativeGate{
				{Name: "H", Arity: 1, DurationNs: 10},
				{Name: "CX", Arity: 2, DurationNs: 20, Connectivity: isa.AllToAll},
			},
		},
		Program: []isa.Instruction{
			isa.AllocArray(2),
			isa.ApplyGate("H", []int{0}, 0),
			isa.ApplyGate("CX", []int{0, 1}, 0),
			isa.Measure([]int{0, 1}),
		},
		Shots:      shots,
		ISAVersion: isa.CurrentISAVersion,
		ShotSeeds:  seeds,
	}
}

func TestRunCompletesBellJob(t *testing.T) {
	result := runner.Run(bellJob(10, nil), runner.NullProgressReporter{})
	require.Equal(t, jobtypes.Completed, result.Status)
	require.Len(t, result.Measurements, 10)
	for _, m := range result.Measurements {
		assert.Len(t, m.Bits, 2)
		assert.Equal(t, m.Bits[0], m.Bits[1], "Bell correlation: both bits must agree")
	}
}

func TestRunRejectsUnsupportedISAVersion(t *testing.T) {
	job := bellJob(1, nil)
	job.ISAVersion = isa.ISAVersion{Major: 9, Minor: 9}
	result := runner.Run(job, runner.NullProgressReporter{})
	assert.Equal(t, jobtypes.Failed, result.Status)
	assert.Contains(t, result.Message, "unsupported ISA version")
}

func TestRunRejectsMismatchedSeedCount(t *testing.T) {
	job := bellJob(3, []uint64{1, 2})
	result := runner.Run(job, runner.NullProgressReporter{})
	assert.Equal(t, jobtypes.Failed, result.Status)
}

func TestRunIsDeterministicForFixedSeeds(t *testing.T) {
	seeds := []uint64{11, 22, 33}
	first := runner.Run(bellJob(3, seeds), runner.NullProgressReporter{})
	second := runner.Run(bellJob(3, seeds), runner.NullProgressReporter{})

	require.Equal(t, jobtypes.Completed, first.Status)
	require.Equal(t, jobtypes.Completed, second.Status)
	assert.Equal(t, first.Measurements, second.Measurements)
}

func TestRunPermutingSeedsPermutesResults(t *testing.T) {
	hw := isa.HardwareConfig{Positions: []float64{0}}
	program := []isa.Instruction{isa.AllocArray(1), isa.ApplyGate("H", []int{0}, 0), isa.Measure([]int{0})}

	forward := runner.Run(jobtypes.JobRequest{
		JobID: "forward", Hardware: hw, Program: program, Shots: 2,
		ISAVersion: isa.CurrentISAVersion, ShotSeeds: []uint64{101, 202},
	}, runner.NullProgressReporter{})
	reversed := runner.Run(jobtypes.JobRequest{
		JobID: "reversed", Hardware: hw, Program: program, Shots: 2,
		ISAVersion: isa.CurrentISAVersion, ShotSeeds: []uint64{202, 101},
	}, runner.NullProgressReporter{})

	require.Equal(t, jobtypes.Completed, forward.Status)
	require.Equal(t, jobtypes.Completed, reversed.Status)
	assert.Equal(t, forward.Measurements[0], reversed.Measurements[1])
	assert.Equal(t, forward.Measurements[1], reversed.Measurements[0])
}

func TestRunPopulatesSchedulerTimeline(t *testing.T) {
	job := bellJob(1, []uint64{1})
	result := runner.Run(job, runner.NullProgressReporter{})
	require.Equal(t, jobtypes.Completed, result.Status)
	assert.NotEmpty(t, result.SchedulerTimeline)
	assert.Equal(t, "ns", result.SchedulerTimelineUnits)
}

func TestRunPopulatesElapsedTimeAndMicrosecondTimeline(t *testing.T) {
	job := bellJob(2, []uint64{1, 2})
	result := runner.Run(job, runner.NullProgressReporter{})
	require.Equal(t, jobtypes.Completed, result.Status)
	assert.GreaterOrEqual(t, result.ElapsedTimeSeconds, 0.0)
	require.Len(t, result.Timeline, len(result.SchedulerTimeline))
	assert.Equal(t, "us", result.TimelineUnits)
	for i, entry := range result.Timeline {
		assert.InDelta(t, result.SchedulerTimeline[i].StartTime/1000, entry.StartTime, 1e-9)
		assert.InDelta(t, result.SchedulerTimeline[i].Duration/1000, entry.Duration, 1e-9)
	}
}

func TestRunCompletesWithDefaultWorkerCount(t *testing.T) {
	job := bellJob(1, []uint64{1})
	result := runner.Run(job, runner.NullProgressReporter{})
	require.Equal(t, jobtypes.Completed, result.Status)
	require.Len(t, result.Measurements, 1)
}

func TestRunPartitionsAcrossWorkers(t *testing.T) {
	job := bellJob(7, nil)
	job.MaxThreads = 3
	result := runner.Run(job, runner.NullProgressReporter{})
	require.Equal(t, jobtypes.Completed, result.Status)
	assert.Len(t, result.Measurements, 7)
}
