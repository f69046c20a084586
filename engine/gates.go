package engine

import (
	"fmt"
	"math"

	"github.com/perclft/qvm/isa"
)

var (
	gateX = [4]complex128{0, 1, 1, 0}
	gateZ = [4]complex128{1, 0, 0, -1}
	gateH = func() [4]complex128 {
		inv := complex(1/math.Sqrt2, 0)
		return [4]complex128{inv, inv, inv, -inv}
	}()
)

// gateCX is the 4x4 block in basis order (q0=control, q1=target) as
// |00>,|01>,|10>,|11>: identity on |00>,|01>; swap |10>,|11>. This basis
// ordering resolves the open question in spec.md §9 — it is the form the
// Bell-state scenario expects.
var gateCX = [16]complex128{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0, 1,
	0, 0, 1, 0,
}

var gateCZ = [16]complex128{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, -1,
}

// applyGate implements spec.md §4.3's ApplyGate(g) steps: measurement
// cooldown, native-gate/angle lookup, connectivity, blockade, the ideal
// unitary, then noise.
func (e *StatevectorEngine) applyGate(g isa.Gate) error {
	limits := e.state.HW.TimingLimits
	if limits.MeasurementCooldownNs > 0 {
		for _, t := range g.Targets {
			if t < 0 || t >= len(e.state.LastMeasurementTime) {
				continue
			}
			if e.state.LogicalTime-e.state.LastMeasurementTime[t] < limits.MeasurementCooldownNs {
				e.logEvent("TimingConstraint", fmt.Sprintf("measurement cooldown not satisfied for qubit %d", t))
				return isa.Errorf(isa.TimingViolation, "measurement cooldown not satisfied for qubit %d", t)
			}
		}
	}

	if len(e.state.HW.NativeGates) > 0 {
		native := e.state.HW.FindNativeGate(g.Name, len(g.Targets))
		if native == nil {
			return isa.Errorf(isa.UnsupportedGate, "gate %s/%d not in native catalog", g.Name, len(g.Targets))
		}
		if native.AngleMax > native.AngleMin {
			if g.Param < native.AngleMin || g.Param > native.AngleMax {
				return isa.Errorf(isa.InvalidArgument, "gate %s param %g outside [%g,%g]", g.Name, g.Param, native.AngleMin, native.AngleMax)
			}
		}
		if len(g.Targets) >= 2 {
			if reason := e.state.HW.ConnectivityViolationReason(e.siteIndex, native, g.Targets); reason != "" {
				return isa.Errorf(isa.ConnectivityViolation, "%s", reason)
			}
		}
	}

	if len(g.Targets) == 2 {
		if reason := e.state.HW.BlockadeViolationReason(e.siteIndex, g.Targets[0], g.Targets[1]); reason != "" {
			return isa.Errorf(isa.BlockadeViolation, "%s", reason)
		}
	}

	if err := e.applyIdealUnitary(g); err != nil {
		return err
	}

	if e.noise != nil {
		rng := e.randomStream()
		switch len(g.Targets) {
		case 1:
			e.noise.ApplySingleQubitGateNoise(g.Targets[0], e.state.NQubits, e.backend.State(), rng)
		case 2:
			e.noise.ApplyTwoQubitGateNoise(g.Targets[0], g.Targets[1], e.state.NQubits, e.backend.State(), rng)
		}
	}

	e.state.InstructionCounts["ApplyGate"]++
	e.logEvent("ApplyGate", fmt.Sprintf("%s targets=%v param=%g", g.Name, g.Targets, g.Param))
	return nil
}

func (e *StatevectorEngine) applyIdealUnitary(g isa.Gate) error {
	e.backend.SyncHostToDevice()
	var err error
	switch {
	case g.Name == "X" && len(g.Targets) == 1:
		err = e.backend.ApplySingleQubitUnitary(g.Targets[0], gateX)
	case g.Name == "H" && len(g.Targets) == 1:
		err = e.backend.ApplySingleQubitUnitary(g.Targets[0], gateH)
	case g.Name == "Z" && len(g.Targets) == 1:
		err = e.backend.ApplySingleQubitUnitary(g.Targets[0], gateZ)
	case g.Name == "CX" && len(g.Targets) == 2:
		err = e.backend.ApplyTwoQubitUnitary(g.Targets[0], g.Targets[1], gateCX)
	case g.Name == "CZ" && len(g.Targets) == 2:
		err = e.backend.ApplyTwoQubitUnitary(g.Targets[0], g.Targets[1], gateCZ)
	default:
		return isa.Errorf(isa.UnsupportedGate, "unsupported gate %s/%d", g.Name, len(g.Targets))
	}
	if err != nil {
		return err
	}
	e.backend.SyncDeviceToHost()
	return nil
}
