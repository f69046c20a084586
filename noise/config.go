package noise

import (
	"strconv"

	"github.com/perclft/qvm/isa"
)

const epsilon = 1e-12

// MeasurementNoiseConfig is classical readout noise applied per bit.
type MeasurementNoiseConfig struct {
	PFlip0to1 float64
	PFlip1to0 float64
}

// SingleQubitPauliConfig gives per-axis Pauli error probabilities; identity
// has probability 1-(Px+Py+Pz).
type SingleQubitPauliConfig struct {
	Px, Py, Pz float64
}

func (c SingleQubitPauliConfig) sum() float64 { return c.Px + c.Py + c.Pz }

// GateNoiseConfig carries single/two-qubit gate-level Pauli channels.
type GateNoiseConfig struct {
	SingleQubit      SingleQubitPauliConfig
	TwoQubitControl  SingleQubitPauliConfig
	TwoQubitTarget   SingleQubitPauliConfig
}

// TwoQubitCorrelatedPauliConfig is a 4x4 control-target joint Pauli table
// in (I, X, Y, Z) order.
type TwoQubitCorrelatedPauliConfig struct {
	Matrix [16]float64
}

// LossRuntimeConfig drives the per-shot loss-tracking bitmap.
type LossRuntimeConfig struct {
	PerGate  float64
	IdleRate float64 // per nanosecond
}

// PhaseNoiseConfig bounds random Z-rotation magnitudes (radians) for
// single-qubit gates, two-qubit control/target, and idle drift (per ns).
type PhaseNoiseConfig struct {
	SingleQubit     float64
	TwoQubitControl float64
	TwoQubitTarget  float64
	Idle            float64
}

// AmplitudeDampingConfig drives the deterministic Kraus-contraction channel.
type AmplitudeDampingConfig struct {
	PerGate  float64
	IdleRate float64
}

// Config aggregates every channel's configuration. A zero-valued Config
// builds an empty Composite (no sources — see Build).
type Config struct {
	PQuantumFlip float64
	PLoss        float64

	Readout MeasurementNoiseConfig
	Gate    GateNoiseConfig
	CorrelatedGate TwoQubitCorrelatedPauliConfig

	IdleRate float64
	Phase    PhaseNoiseConfig

	AmplitudeDamping AmplitudeDampingConfig
	LossRuntime      LossRuntimeConfig
}

// ConfigError names the offending channel and field, matching the
// original's descriptive validation messages rather than a generic
// InvalidConfig with no detail.
type ConfigError struct {
	Channel string
	Field   string
	Reason  string
}

func (e *ConfigError) Error() string {
	return "invalid " + e.Channel + " config: " + e.Field + " " + e.Reason
}

func newConfigErr(channel, field, reason string) error {
	return isa.Wrap(isa.InvalidConfig, &ConfigError{Channel: channel, Field: field, Reason: reason},
		"%s.%s %s", channel, field, reason)
}

func checkProbability(channel, field string, p float64) error {
	if p < 0 || p > 1 {
		return newConfigErr(channel, field, "must lie in [0,1]")
	}
	return nil
}

// Validate rejects a Config whose probabilities are out of range, whose
// per-qubit Pauli sums exceed 1 (+epsilon), whose phase magnitudes are
// negative, whose correlated matrix entries are out of range or sum past 1
// (+epsilon), or whose amplitude-damping/loss-runtime rates are negative or
// per-gate values fall outside [0,1].
func (c Config) Validate() error {
	if err := checkProbability("measurement", "p_quantum_flip", c.PQuantumFlip); err != nil {
		return err
	}
	if err := checkProbability("measurement", "p_loss", c.PLoss); err != nil {
		return err
	}
	if err := checkProbability("readout", "p_flip0_to_1", c.Readout.PFlip0to1); err != nil {
		return err
	}
	if err := checkProbability("readout", "p_flip1_to_0", c.Readout.PFlip1to0); err != nil {
		return err
	}
	for name, cfg := range map[string]SingleQubitPauliConfig{
		"gate.single_qubit":       c.Gate.SingleQubit,
		"gate.two_qubit_control":  c.Gate.TwoQubitControl,
		"gate.two_qubit_target":   c.Gate.TwoQubitTarget,
	} {
		if err := checkProbability(name, "px", cfg.Px); err != nil {
			return err
		}
		if err := checkProbability(name, "py", cfg.Py); err != nil {
			return err
		}
		if err := checkProbability(name, "pz", cfg.Pz); err != nil {
			return err
		}
		if cfg.sum() > 1+epsilon {
			return newConfigErr(name, "px+py+pz", "exceeds 1")
		}
	}
	var total float64
	for i, p := range c.CorrelatedGate.Matrix {
		if p < 0 || p > 1 {
			return newConfigErr("correlated_gate", "matrix["+strconv.Itoa(i)+"]", "must lie in [0,1]")
		}
		total += p
	}
	if total > 1+epsilon {
		return newConfigErr("correlated_gate", "matrix", "entries sum past 1")
	}
	if c.Phase.SingleQubit < 0 || c.Phase.TwoQubitControl < 0 || c.Phase.TwoQubitTarget < 0 || c.Phase.Idle < 0 {
		return newConfigErr("phase", "magnitude", "must be non-negative")
	}
	if c.IdleRate < 0 {
		return newConfigErr("idle", "rate", "must be non-negative")
	}
	if c.AmplitudeDamping.IdleRate < 0 {
		return newConfigErr("amplitude_damping", "idle_rate", "must be non-negative")
	}
	if c.AmplitudeDamping.PerGate < 0 || c.AmplitudeDamping.PerGate > 1 {
		return newConfigErr("amplitude_damping", "per_gate", "must lie in [0,1]")
	}
	if c.LossRuntime.IdleRate < 0 {
		return newConfigErr("loss_runtime", "idle_rate", "must be non-negative")
	}
	if c.LossRuntime.PerGate < 0 || c.LossRuntime.PerGate > 1 {
		return newConfigErr("loss_runtime", "per_gate", "must lie in [0,1]")
	}
	return nil
}
