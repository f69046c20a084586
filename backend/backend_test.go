package backend_test

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perclft/qvm/backend"
)

func TestAllocArrayStartsInZeroState(t *testing.T) {
	cpu := backend.NewCPU()
	require.NoError(t, cpu.AllocArray(2))
	state := cpu.State()
	require.Len(t, state, 4)
	assert.Equal(t, complex(1, 0), state[0])
	for _, amp := range state[1:] {
		assert.Equal(t, complex(0, 0), amp)
	}
}

func TestApplySingleQubitUnitaryHadamardOnZeroGivesPlus(t *testing.T) {
	cpu := backend.NewCPU()
	require.NoError(t, cpu.AllocArray(1))
	inv := complex(1/math.Sqrt2, 0)
	hadamard := [4]complex128{inv, inv, inv, -inv}
	require.NoError(t, cpu.ApplySingleQubitUnitary(0, hadamard))
	state := cpu.State()
	assert.InDelta(t, real(inv), real(state[0]), 1e-9)
	assert.InDelta(t, real(inv), real(state[1]), 1e-9)
}

func TestApplyTwoQubitUnitaryCXProducesBellState(t *testing.T) {
	cpu := backend.NewCPU()
	require.NoError(t, cpu.AllocArray(2))
	inv := complex(1/math.Sqrt2, 0)
	hadamard := [4]complex128{inv, inv, inv, -inv}
	require.NoError(t, cpu.ApplySingleQubitUnitary(0, hadamard))

	cx := [16]complex128{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 0, 1,
		0, 0, 1, 0,
	}
	require.NoError(t, cpu.ApplyTwoQubitUnitary(0, 1, cx))

	state := cpu.State()
	assert.InDelta(t, 0.5, cmplx.Abs(state[0])*cmplx.Abs(state[0]), 1e-9)
	assert.InDelta(t, 0.5, cmplx.Abs(state[3])*cmplx.Abs(state[3]), 1e-9)
	assert.InDelta(t, 0, cmplx.Abs(state[1]), 1e-9)
	assert.InDelta(t, 0, cmplx.Abs(state[2]), 1e-9)
}

func TestApplySingleQubitUnitaryRejectsOutOfRangeTarget(t *testing.T) {
	cpu := backend.NewCPU()
	require.NoError(t, cpu.AllocArray(1))
	err := cpu.ApplySingleQubitUnitary(3, [4]complex128{1, 0, 0, 1})
	assert.Error(t, err)
}

func TestApplyTwoQubitUnitaryRejectsSameTarget(t *testing.T) {
	cpu := backend.NewCPU()
	require.NoError(t, cpu.AllocArray(2))
	err := cpu.ApplyTwoQubitUnitary(0, 0, [16]complex128{})
	assert.Error(t, err)
}

func TestIsGPUBackendFalse(t *testing.T) {
	cpu := backend.NewCPU()
	assert.False(t, cpu.IsGPUBackend())
}
