package search

import "math"

// Schedule is a decreasing list of similarity thresholds: Start, Start-Step,
// ... down to the last value still >= Min.
type Schedule struct {
	Start float64
	Min   float64
	Step  float64
}

const thresholdPrecision = 1e9

func roundThreshold(v float64) float64 {
	return math.Round(v*thresholdPrecision) / thresholdPrecision
}

// Thresholds computes each value from its index so repeated subtraction
// cannot drift past Min. A non-positive Step yields only Start, and a Start
// below Min yields nothing.
func (s Schedule) Thresholds() []float64 {
	start := roundThreshold(s.Start)
	min := roundThreshold(s.Min)
	if start < min {
		return nil
	}
	if s.Step <= 0 {
		return []float64{start}
	}

	var out []float64
	for i := 0; ; i++ {
		v := roundThreshold(s.Start - float64(i)*s.Step)
		if v < min {
			break
		}
		out = append(out, v)
	}
	return out
}
