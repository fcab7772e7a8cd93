package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchedule_Thresholds(t *testing.T) {
	tests := []struct {
		name     string
		schedule Schedule
		want     []float64
	}{
		{"six attempts without drift", Schedule{0.75, 0.5, 0.05}, []float64{0.75, 0.70, 0.65, 0.60, 0.55, 0.50}},
		{"text lane default", Schedule{0.75, 0.5, 0.1}, []float64{0.75, 0.65, 0.55}},
		{"image lane default", Schedule{1.0, 0.5, 0.05}, []float64{1.0, 0.95, 0.9, 0.85, 0.8, 0.75, 0.7, 0.65, 0.6, 0.55, 0.5}},
		{"history text", Schedule{0.7, 0.3, 0.1}, []float64{0.7, 0.6, 0.5, 0.4, 0.3}},
		{"zero step", Schedule{0.8, 0.5, 0}, []float64{0.8}},
		{"negative step", Schedule{0.8, 0.5, -0.1}, []float64{0.8}},
		{"start below min", Schedule{0.4, 0.5, 0.1}, nil},
		{"zero step below min", Schedule{0.4, 0.5, 0}, nil},
		{"start equals min", Schedule{0.5, 0.5, 0.1}, []float64{0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.schedule.Thresholds())
		})
	}
}
