package noise

// Build validates cfg and assembles a Composite containing, in this exact
// order, only the channels whose driving probability is non-zero:
// LossTracking, MeasurementNoise, AmplitudeDamping, SingleQubitPauli,
// TwoQubitPauli, CorrelatedPauli, PhaseKick, IdleDephasing, IdlePhaseDrift.
// The order is part of the contract: later channels observe the amplitudes
// left by earlier ones.
func Build(cfg Config) (*Composite, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var sources []Engine

	if cfg.PLoss > 0 || cfg.LossRuntime.PerGate > 0 || cfg.LossRuntime.IdleRate > 0 {
		sources = append(sources, &LossTracking{MeasurementLoss: cfg.PLoss, Cfg: cfg.LossRuntime})
	}
	if cfg.PQuantumFlip > 0 || cfg.Readout.PFlip0to1 > 0 || cfg.Readout.PFlip1to0 > 0 {
		sources = append(sources, &MeasurementNoise{PQuantumFlip: cfg.PQuantumFlip, Readout: cfg.Readout})
	}
	if cfg.AmplitudeDamping.PerGate > 0 || cfg.AmplitudeDamping.IdleRate > 0 {
		sources = append(sources, &AmplitudeDamping{PerGate: cfg.AmplitudeDamping.PerGate, IdleRate: cfg.AmplitudeDamping.IdleRate})
	}
	if cfg.Gate.SingleQubit.sum() > 0 {
		sources = append(sources, &SingleQubitPauli{Cfg: cfg.Gate.SingleQubit})
	}
	if cfg.Gate.TwoQubitControl.sum() > 0 || cfg.Gate.TwoQubitTarget.sum() > 0 {
		sources = append(sources, &TwoQubitPauli{Control: cfg.Gate.TwoQubitControl, Target: cfg.Gate.TwoQubitTarget})
	}
	if correlatedTotal(cfg.CorrelatedGate) > 0 {
		sources = append(sources, &CorrelatedPauli{Cfg: cfg.CorrelatedGate})
	}
	if cfg.Phase.SingleQubit > 0 || cfg.Phase.TwoQubitControl > 0 || cfg.Phase.TwoQubitTarget > 0 {
		sources = append(sources, &PhaseKick{Cfg: cfg.Phase})
	}
	if cfg.IdleRate > 0 {
		sources = append(sources, &IdleDephasing{Rate: cfg.IdleRate})
	}
	if cfg.Phase.Idle > 0 {
		sources = append(sources, &IdlePhaseDrift{Rate: cfg.Phase.Idle})
	}

	return NewComposite(sources...), nil
}

func correlatedTotal(cfg TwoQubitCorrelatedPauliConfig) float64 {
	var total float64
	for _, p := range cfg.Matrix {
		total += p
	}
	return total
}
