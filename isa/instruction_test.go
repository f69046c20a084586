package isa_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/perclft/qvm/isa"
)

func TestISAVersionString(t *testing.T) {
	v := isa.ISAVersion{Major: 1, Minor: 1}
	assert.Equal(t, "1.1", v.String())
}

func TestIsSupportedISAVersion(t *testing.T) {
	assert.True(t, isa.IsSupportedISAVersion(isa.ISAVersion{Major: 1, Minor: 0}))
	assert.True(t, isa.IsSupportedISAVersion(isa.ISAVersion{Major: 1, Minor: 1}))
	assert.False(t, isa.IsSupportedISAVersion(isa.ISAVersion{Major: 2, Minor: 0}))
}

func TestInstructionConstructors(t *testing.T) {
	g := isa.ApplyGate("H", []int{0}, 0)
	assert.Equal(t, isa.OpApplyGate, g.Op)
	assert.Equal(t, "H", g.Gate.Name)

	m := isa.Measure([]int{0, 1})
	assert.Equal(t, isa.OpMeasure, m.Op)
	assert.Equal(t, []int{0, 1}, m.Targets)

	w := isa.WaitInstr(150)
	assert.Equal(t, 150.0, w.WaitOp.DurationNs)

	p := isa.PulseInstr(2, 1.5, 30)
	assert.Equal(t, 2, p.PulseOp.Target)
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "AllocArray", isa.OpAllocArray.String())
	assert.Equal(t, "ApplyGate", isa.OpApplyGate.String())
	assert.Equal(t, "Measure", isa.OpMeasure.String())
}
