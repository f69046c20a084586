// Command qvm runs a built-in demo program against the statevector
// engine and prints the resulting measurements.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/perclft/qvm/isa"
	"github.com/perclft/qvm/jobtypes"
	"github.com/perclft/qvm/runner"
)

// demoProgram is one named entry in the built-in circuit library.
type demoProgram struct {
	name      string
	numQubits int
	build     func(numQubits int) []isa.Instruction
}

var demoLibrary = map[string]demoProgram{
	"bell": {
		name:      "Bell state",
		numQubits: 2,
		build: func(n int) []isa.Instruction {
			return []isa.Instruction{
				isa.AllocArray(n),
				isa.ApplyGate("H", []int{0}, 0),
				isa.ApplyGate("CX", []int{0, 1}, 0),
				isa.Measure([]int{0, 1}),
			}
		},
	},
	"ghz": {
		name:      "GHZ state",
		numQubits: 3,
		build: func(n int) []isa.Instruction {
			instrs := []isa.Instruction{
				isa.AllocArray(n),
				isa.ApplyGate("H", []int{0}, 0),
			}
			for q := 1; q < n; q++ {
				instrs = append(instrs, isa.ApplyGate("CX", []int{0, q}, 0))
			}
			targets := make([]int, n)
			for i := range targets {
				targets[i] = i
			}
			instrs = append(instrs, isa.Measure(targets))
			return instrs
		},
	},
	"classical-x": {
		name:      "classical X flip",
		numQubits: 1,
		build: func(n int) []isa.Instruction {
			return []isa.Instruction{
				isa.AllocArray(n),
				isa.ApplyGate("X", []int{0}, 0),
				isa.Measure([]int{0}),
			}
		},
	},
}

func nativeGateCatalog() []isa.NativeGate {
	return []isa.NativeGate{
		{Name: "H", Arity: 1, DurationNs: 50},
		{Name: "X", Arity: 1, DurationNs: 50},
		{Name: "Z", Arity: 1, DurationNs: 50},
		{Name: "CX", Arity: 2, DurationNs: 200, Connectivity: isa.AllToAll},
		{Name: "CZ", Arity: 2, DurationNs: 200, Connectivity: isa.AllToAll},
	}
}

func main() {
	demo := flag.String("demo", "bell", "built-in demo program: bell, ghz, classical-x")
	shots := flag.Int("shots", 100, "number of shots")
	workers := flag.Int("workers", 0, "worker pool size (0 = auto, one per CPU)")
	seed := flag.Uint64("seed", 0, "master seed; 0 draws a fresh random seed")
	jobID := flag.String("job-id", "", "job id; empty generates a random one")
	flag.Parse()

	program, ok := demoLibrary[*demo]
	if !ok {
		log.Fatalf("unknown demo program %q", *demo)
	}

	id := *jobID
	if id == "" {
		id = uuid.NewString()
	}

	hw := isa.HardwareConfig{
		Positions:    make([]float64, program.numQubits),
		NativeGates:  nativeGateCatalog(),
		TimingLimits: isa.TimingLimits{MeasurementDurationNs: 10},
	}
	for i := range hw.Positions {
		hw.Positions[i] = float64(i) * 5.0
	}

	job := jobtypes.JobRequest{
		JobID:      id,
		Profile:    *demo,
		Hardware:   hw,
		Program:    program.build(program.numQubits),
		Shots:      *shots,
		MaxThreads: *workers,
		ISAVersion: isa.CurrentISAVersion,
	}
	if *seed != 0 {
		seeds := make([]uint64, *shots)
		for i := range seeds {
			seeds[i] = *seed + uint64(i)
		}
		job.ShotSeeds = seeds
	}

	result := runner.Run(job, runner.NullProgressReporter{})

	fmt.Printf("job %s (%s): %s\n", result.JobID, program.name, result.Status)
	if result.Message != "" {
		fmt.Printf("message: %s\n", result.Message)
	}
	for _, m := range result.Measurements {
		fmt.Printf("  targets=%v bits=%v\n", m.Targets, m.Bits)
	}
}
