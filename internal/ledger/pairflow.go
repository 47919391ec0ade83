package ledger

import (
	"context"
	"math"
	"strconv"
	"strings"
)

// PairStep identifies one state of the guided pair capture flow.
type PairStep int

// The flow is linear: drain name, drain percentage, boost name, boost
// percentage, then committed.
const (
	StepDrainName PairStep = iota
	StepDrainPercentage
	StepBoostName
	StepBoostPercentage
	StepCommitted
)

// PairFlow walks the user through capturing a linked drain/boost pair.
// Nothing is sent to the server until the final step commits both
// halves as one request.
type PairFlow struct {
	step  PairStep
	drain pairHalf
	boost pairHalf
}

type pairHalf struct {
	name       string
	percentage float64
}

// NewPairFlow starts a flow at the first step.
func NewPairFlow() *PairFlow {
	return &PairFlow{step: StepDrainName}
}

// Step reports the current state.
func (f *PairFlow) Step() PairStep {
	return f.step
}

// Advance feeds one field of input to the current step and moves to the
// next on success. Name steps require non-blank input; percentage steps
// require a number in [0,100]. Advancing a committed flow is an error.
func (f *PairFlow) Advance(input string) error {
	switch f.step {
	case StepDrainName, StepBoostName:
		name := strings.TrimSpace(input)
		if name == "" {
			return &ValidationError{Field: "name", Reason: "must not be empty"}
		}
		if f.step == StepDrainName {
			f.drain.name = name
		} else {
			f.boost.name = name
		}
	case StepDrainPercentage, StepBoostPercentage:
		value, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			return &ValidationError{Field: "percentage", Reason: "must be a number"}
		}
		if value < 0 || value > 100 {
			return &ValidationError{Field: "percentage", Reason: "must be between 0 and 100"}
		}
		if f.step == StepDrainPercentage {
			f.drain.percentage = value
		} else {
			f.boost.percentage = value
		}
	default:
		return &ValidationError{Field: "step", Reason: "flow already committed"}
	}

	f.step++
	return nil
}

// Ready reports whether all four fields have been captured.
func (f *PairFlow) Ready() bool {
	return f.step == StepCommitted
}

// Commit submits the pair as one request and appends both created
// activities to the ledger's catalog, where they are independently
// toggle-able. The flow resets to the first step afterwards.
func (f *PairFlow) Commit(ctx context.Context, l *Ledger) (*PairResult, error) {
	if !f.Ready() {
		return nil, &ValidationError{Field: "step", Reason: "pair is incomplete"}
	}

	pair, err := l.remote.CreatePair(ctx, f.drain.name, f.drain.percentage, f.boost.name, f.boost.percentage)
	if err != nil {
		return nil, err
	}

	l.catalog = append(l.catalog, pair.DrainActivity, pair.BoostActivity)
	f.Reset()

	return &PairResult{
		PairID: pair.ID,
		Drain:  pair.DrainActivity.ID,
		Boost:  pair.BoostActivity.ID,
	}, nil
}

// Reset returns the flow to the first step, discarding captured input.
func (f *PairFlow) Reset() {
	*f = PairFlow{step: StepDrainName}
}

// PairResult reports the server-assigned identifiers of a committed pair.
type PairResult struct {
	PairID string
	Drain  string
	Boost  string
}
