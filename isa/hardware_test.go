package isa_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perclft/qvm/isa"
)

func TestBlockadeViolationReasonScalarRadius(t *testing.T) {
	hw := isa.HardwareConfig{
		Positions:      []float64{0, 1},
		BlockadeRadius: 5,
	}
	idx := isa.BuildSiteIndex(&hw)
	assert.Equal(t, "", hw.BlockadeViolationReason(idx, 0, 1))

	hw.Positions = []float64{0, 10}
	assert.NotEqual(t, "", hw.BlockadeViolationReason(idx, 0, 1))
}

func TestBlockadeViolationReasonZoneOverride(t *testing.T) {
	hw := isa.HardwareConfig{
		Sites: []isa.SiteDescriptor{
			{ID: 0, X: 0, ZoneID: 1},
			{ID: 1, X: 2, ZoneID: 1},
		},
		SiteIDs: []int{0, 1},
		BlockadeModel: isa.BlockadeModel{
			Radius: 10,
			ZoneOverrides: []isa.BlockadeZoneOverride{
				{ZoneID: 1, Radius: 1},
			},
		},
	}
	idx := isa.BuildSiteIndex(&hw)
	reason := hw.BlockadeViolationReason(idx, 0, 1)
	require.NotEqual(t, "", reason)
	assert.Contains(t, reason, "zone 1")
}

func TestBlockadeViolationReasonZeroRadiusMeansNoCheck(t *testing.T) {
	hw := isa.HardwareConfig{Positions: []float64{0, 100}}
	idx := isa.BuildSiteIndex(&hw)
	assert.Equal(t, "", hw.BlockadeViolationReason(idx, 0, 1))
}

func TestConnectivityViolationReasonNearestNeighborChain(t *testing.T) {
	hw := isa.HardwareConfig{Positions: []float64{0, 1, 2, 3}}
	idx := isa.BuildSiteIndex(&hw)
	gate := &isa.NativeGate{Name: "CX", Arity: 2, Connectivity: isa.NearestNeighborChain}

	assert.Equal(t, "", hw.ConnectivityViolationReason(idx, gate, []int{0, 1}))
	assert.NotEqual(t, "", hw.ConnectivityViolationReason(idx, gate, []int{0, 2}))
}

func TestConnectivityViolationReasonAllToAllAlwaysPasses(t *testing.T) {
	hw := isa.HardwareConfig{Positions: []float64{0, 1, 2, 3}}
	idx := isa.BuildSiteIndex(&hw)
	gate := &isa.NativeGate{Name: "CX", Arity: 2, Connectivity: isa.AllToAll}
	assert.Equal(t, "", hw.ConnectivityViolationReason(idx, gate, []int{0, 3}))
}

func TestFindNativeGate(t *testing.T) {
	hw := isa.HardwareConfig{
		NativeGates: []isa.NativeGate{
			{Name: "H", Arity: 1},
			{Name: "CX", Arity: 2},
		},
	}
	require.NotNil(t, hw.FindNativeGate("CX", 2))
	assert.Nil(t, hw.FindNativeGate("CX", 1))
	assert.Nil(t, hw.FindNativeGate("ZZ", 2))
}
