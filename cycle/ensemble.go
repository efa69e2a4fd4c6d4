package cycle

import (
	"fmt"

	gait "github.com/milosgajdos/go-gaitid"
	"github.com/milosgajdos/matrix"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Mean returns the per-sample ensemble mean of the named columns across the
// given cycles: one row per time sample, one column per name.
// It returns error if no cycles are given, the cycles disagree on sample
// count or a column is missing.
func Mean(cycles []*Cycle, cols []string) (*mat.Dense, error) {
	if len(cycles) == 0 {
		return nil, fmt.Errorf("mean of no cycles: %w", gait.ErrInvalidShape)
	}

	n := cycles[0].Len()
	acc := mat.NewDense(n, len(cols), nil)
	for _, c := range cycles {
		if c.Len() != n {
			return nil, fmt.Errorf("cycle %q has %d samples, want %d: %w",
				c.Name(), c.Len(), n, gait.ErrInvalidShape)
		}
		sel, err := c.Select(cols)
		if err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			floats.Add(acc.RawRowView(i), sel.RawRowView(i))
		}
	}
	acc.Scale(1/float64(len(cycles)), acc)

	return acc, nil
}

// Covariances returns the per-sample ensemble covariance of the named columns
// across the given cycles, one symmetric matrix per time sample, with cycles
// treated as observations.
// It returns error if fewer than two cycles are given, the cycles disagree on
// sample count or a column is missing.
func Covariances(cycles []*Cycle, cols []string) ([]mat.Symmetric, error) {
	if len(cycles) < 2 {
		return nil, fmt.Errorf("covariance needs at least 2 cycles, got %d: %w",
			len(cycles), gait.ErrInvalidShape)
	}

	n := cycles[0].Len()
	sels := make([]*mat.Dense, len(cycles))
	for i, c := range cycles {
		if c.Len() != n {
			return nil, fmt.Errorf("cycle %q has %d samples, want %d: %w",
				c.Name(), c.Len(), n, gait.ErrInvalidShape)
		}
		sel, err := c.Select(cols)
		if err != nil {
			return nil, err
		}
		sels[i] = sel
	}

	covs := make([]mat.Symmetric, n)
	for t := 0; t < n; t++ {
		// one observation column per cycle
		obs := mat.NewDense(len(cols), len(cycles), nil)
		for i := range sels {
			for k := range cols {
				obs.Set(k, i, sels[i].At(t, k))
			}
		}
		cov, err := matrix.Cov(obs, "cols")
		if err != nil {
			return nil, fmt.Errorf("failed to compute covariance at sample %d: %v", t, err)
		}
		covs[t] = cov
	}

	return covs, nil
}
