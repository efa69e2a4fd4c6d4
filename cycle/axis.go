package cycle

import (
	"fmt"

	gait "github.com/milosgajdos/go-gaitid"
)

// TimeVector returns a time axis with the given number of samples spaced at
// the given sample rate in Hz, starting at zero.
// It returns error if samples or rate are not positive.
func TimeVector(samples int, rate float64) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("invalid sample count: %d: %w", samples, gait.ErrConfiguration)
	}
	if rate <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %f: %w", rate, gait.ErrConfiguration)
	}

	t := make([]float64, samples)
	for i := range t {
		t[i] = float64(i) / rate
	}

	return t, nil
}
