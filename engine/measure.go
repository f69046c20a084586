package engine

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/perclft/qvm/isa"
)

// measure computes marginal outcome probabilities over the target bits,
// samples a discrete outcome, collapses and renormalizes the amplitude
// vector, and records the resulting bits. An empty target list is a no-op
// (spec.md §9's resolved open question).
func (e *StatevectorEngine) measure(targets []int) error {
	if len(targets) == 0 {
		return nil
	}
	if e.state.NQubits == 0 {
		return isa.Errorf(isa.InvalidSequence, "cannot measure before allocation")
	}
	for _, t := range targets {
		if t < 0 || t >= e.state.NQubits {
			return isa.Errorf(isa.OutOfRange, "measurement target %d out of range", t)
		}
	}

	amps := e.backend.State()
	dim := len(amps)
	k := len(targets)
	combos := 1 << k
	outcomeProbs := make([]float64, combos)

	outcomeFor := func(i int) int {
		outcome := 0
		for idx, target := range targets {
			bit := (i >> target) & 1
			outcome |= bit << idx
		}
		return outcome
	}

	for i := 0; i < dim; i++ {
		p := cmplx.Abs(amps[i]) * cmplx.Abs(amps[i])
		if p == 0 {
			continue
		}
		outcomeProbs[outcomeFor(i)] += p
	}

	var total float64
	for _, p := range outcomeProbs {
		total += p
	}
	if total == 0 {
		return isa.Errorf(isa.InvalidState, "state has zero norm before measurement")
	}
	for i := range outcomeProbs {
		outcomeProbs[i] /= total
	}

	selected := e.sampleDiscrete(outcomeProbs)
	selectedProb := outcomeProbs[selected]
	if selectedProb <= 0 {
		return isa.Errorf(isa.InvalidState, "selected measurement outcome has zero probability")
	}
	normFactor := math.Sqrt(selectedProb)

	for i := 0; i < dim; i++ {
		if outcomeFor(i) == selected {
			amps[i] /= complex(normFactor, 0)
		} else {
			amps[i] = 0
		}
	}

	record := isa.MeasurementRecord{
		Targets: append([]int(nil), targets...),
		Bits:    make([]int, k),
	}
	for idx := 0; idx < k; idx++ {
		record.Bits[idx] = (selected >> idx) & 1
	}

	if e.noise != nil {
		e.noise.ApplyMeasurementNoise(&record, e.randomStream())
	}

	e.state.Measurements = append(e.state.Measurements, record)
	for _, t := range targets {
		e.state.LastMeasurementTime[t] = e.state.LogicalTime
	}
	e.state.InstructionCounts["Measure"]++
	e.logEvent("Measure", fmt.Sprintf("Measure targets=%v bits=%v", targets, record.Bits))

	e.backend.SyncHostToDevice()
	return nil
}

// sampleDiscrete draws an index from the discrete distribution given by
// per-outcome probabilities, walking their running sum against one uniform
// draw (std::discrete_distribution's cumulative-draw semantics).
func (e *StatevectorEngine) sampleDiscrete(probs []float64) int {
	r := e.randomStream().Uniform(0, 1)
	var cumulative float64
	for i, p := range probs {
		cumulative += p
		if r < cumulative {
			return i
		}
	}
	return len(probs) - 1
}
