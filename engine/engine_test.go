package engine_test

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perclft/qvm/engine"
	"github.com/perclft/qvm/isa"
	"github.com/perclft/qvm/noise"
)

func nativeGates() []isa.NativeGate {
	return []isa.NativeGate{
		{Name: "H", Arity: 1, DurationNs: 10},
		{Name: "X", Arity: 1, DurationNs: 10},
		{Name: "Z", Arity: 1, DurationNs: 10},
		{Name: "CX", Arity: 2, DurationNs: 20, Connectivity: isa.AllToAll},
		{Name: "CZ", Arity: 2, DurationNs: 20, Connectivity: isa.AllToAll},
	}
}

func TestBellState(t *testing.T) {
	hw := isa.HardwareConfig{
		Positions:      []float64{0, 1},
		BlockadeRadius: 1.5,
		NativeGates:    nativeGates(),
	}
	e := engine.New(hw, nil, 1)
	program := []isa.Instruction{
		isa.AllocArray(2),
		isa.ApplyGate("H", []int{1}, 0),
		isa.ApplyGate("CX", []int{1, 0}, 0),
	}
	require.NoError(t, e.Run(program))

	state := e.StateVector()
	require.Len(t, state, 4)
	assert.InDelta(t, 1/math.Sqrt2, cmplx.Abs(state[0]), 1e-6)
	assert.InDelta(t, 0, cmplx.Abs(state[1]), 1e-6)
	assert.InDelta(t, 0, cmplx.Abs(state[2]), 1e-6)
	assert.InDelta(t, 1/math.Sqrt2, cmplx.Abs(state[3]), 1e-6)
}

func TestClassicalX(t *testing.T) {
	hw := isa.HardwareConfig{
		Positions:      []float64{0, 1},
		BlockadeRadius: 1.0,
		NativeGates:    nativeGates(),
	}
	e := engine.New(hw, nil, 2)
	program := []isa.Instruction{
		isa.AllocArray(2),
		isa.ApplyGate("X", []int{1}, 0),
		isa.Measure([]int{0, 1}),
	}
	require.NoError(t, e.Run(program))

	state := e.State()
	require.Len(t, state.Measurements, 1)
	assert.Equal(t, []int{0, 1}, state.Measurements[0].Bits)
}

func TestReadoutFlip(t *testing.T) {
	hw := isa.HardwareConfig{Positions: []float64{0}}
	e := engine.New(hw, nil, 3)
	e.SetNoiseModel(noise.NewComposite(&noise.MeasurementNoise{
		Readout: noise.MeasurementNoiseConfig{PFlip0to1: 1.0},
	}))
	program := []isa.Instruction{
		isa.AllocArray(1),
		isa.Measure([]int{0}),
	}
	require.NoError(t, e.Run(program))

	state := e.State()
	require.Len(t, state.Measurements, 1)
	assert.Equal(t, []int{1}, state.Measurements[0].Bits)
}

func TestTotalLoss(t *testing.T) {
	hw := isa.HardwareConfig{Positions: []float64{0}}
	e := engine.New(hw, nil, 4)
	e.SetNoiseModel(noise.NewComposite(&noise.LossTracking{MeasurementLoss: 1.0}))
	program := []isa.Instruction{
		isa.AllocArray(1),
		isa.Measure([]int{0}),
	}
	require.NoError(t, e.Run(program))

	state := e.State()
	require.Len(t, state.Measurements, 1)
	assert.Equal(t, []int{-1}, state.Measurements[0].Bits)
}

func TestPerGateRuntimeLossResetsPerShot(t *testing.T) {
	hw := isa.HardwareConfig{Positions: []float64{0}, NativeGates: nativeGates()}
	shared := noise.NewComposite(&noise.LossTracking{Cfg: noise.LossRuntimeConfig{PerGate: 1.0}})
	program := []isa.Instruction{
		isa.AllocArray(1),
		isa.ApplyGate("X", []int{0}, 0),
		isa.Measure([]int{0}),
	}

	for shot := 0; shot < 2; shot++ {
		e := engine.New(hw, nil, uint64(shot+10))
		e.SetNoiseModel(shared)
		require.NoError(t, e.Run(program))
		state := e.State()
		require.Len(t, state.Measurements, 1)
		assert.Equal(t, []int{-1}, state.Measurements[0].Bits)
	}
}

func TestNearestNeighborChainConnectivity(t *testing.T) {
	hw := isa.HardwareConfig{
		Positions: []float64{0, 1, 2},
		NativeGates: []isa.NativeGate{
			{Name: "CX", Arity: 2, DurationNs: 10, Connectivity: isa.NearestNeighborChain},
		},
	}

	e := engine.New(hw, nil, 5)
	require.NoError(t, e.Run([]isa.Instruction{
		isa.AllocArray(3),
		isa.ApplyGate("CX", []int{0, 1}, 0),
	}))

	e2 := engine.New(hw, nil, 6)
	err := e2.Run([]isa.Instruction{
		isa.AllocArray(3),
		isa.ApplyGate("CX", []int{0, 2}, 0),
	})
	require.Error(t, err)
	vmErr, ok := err.(*isa.VMError)
	require.True(t, ok)
	assert.Equal(t, isa.ConnectivityViolation, vmErr.Kind)
	assert.Contains(t, vmErr.Message, "nearest-neighbor chain")
}

func TestTerminatedEngineRejectsFurtherInstructions(t *testing.T) {
	hw := isa.HardwareConfig{Positions: []float64{0, 1, 2}, BlockadeRadius: 1.5}
	e := engine.New(hw, nil, 7)
	err := e.Run([]isa.Instruction{
		isa.AllocArray(3),
		isa.ApplyGate("CX", []int{0, 2}, 0),
	})
	require.Error(t, err)

	err2 := e.Run([]isa.Instruction{isa.Measure([]int{0})})
	require.Error(t, err2)
	vmErr, ok := err2.(*isa.VMError)
	require.True(t, ok)
	assert.Equal(t, isa.InvalidSequence, vmErr.Kind)
}

func TestMeasureEmptyTargetsIsNoOp(t *testing.T) {
	hw := isa.HardwareConfig{Positions: []float64{0}}
	e := engine.New(hw, nil, 8)
	require.NoError(t, e.Run([]isa.Instruction{
		isa.AllocArray(1),
		isa.Measure(nil),
	}))
	state := e.State()
	assert.Empty(t, state.Measurements)
}

func TestZeroQubitsMeasureAfterAllocGivesZeroBits(t *testing.T) {
	hw := isa.HardwareConfig{Positions: []float64{0, 0, 0}}
	e := engine.New(hw, nil, 9)
	require.NoError(t, e.Run([]isa.Instruction{
		isa.AllocArray(3),
		isa.Measure([]int{0, 1, 2}),
	}))
	state := e.State()
	require.Len(t, state.Measurements, 1)
	assert.Equal(t, []int{0, 0, 0}, state.Measurements[0].Bits)
}
