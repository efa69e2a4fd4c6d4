package solver

import (
	"fmt"

	gait "github.com/milosgajdos/go-gaitid"
	"gonum.org/v1/gonum/stat"
)

// VAF returns the percentage of variance in each measured validation control
// accounted for by the law predictions, keyed by control name:
//
//	VAF_j = 100 * (1 - Var(u_j - u^_j) / Var(u_j))
//
// with the predictions u^_j(t) = m*_j(t) - sum_k K_jk(t) * s_k(t) pooled
// over every validation cycle and time sample. A constant measured control
// yields NaN.
// It returns error if law is nil or does not match the solver dimensions or
// the dataset has no validation cycles.
func (s *Solver) VAF(law gait.Law) (map[string]float64, error) {
	if err := s.checkLaw(law); err != nil {
		return nil, err
	}

	valid := s.data.Validation()
	if len(valid) == 0 {
		return nil, fmt.Errorf("no validation cycles: %w", gait.ErrConfiguration)
	}

	q, p := s.Dims()

	measured := make([][]float64, q)
	residual := make([][]float64, q)
	for j := 0; j < q; j++ {
		measured[j] = make([]float64, 0, len(valid)*s.n)
		residual[j] = make([]float64, 0, len(valid)*s.n)
	}

	for _, c := range valid {
		sens, err := c.Select(s.sensors)
		if err != nil {
			return nil, err
		}
		ctrl, err := c.Select(s.controls)
		if err != nil {
			return nil, err
		}

		for t := 0; t < s.n; t++ {
			gain := law.Gain(t)
			nominal := law.Nominal(t)
			for j := 0; j < q; j++ {
				pred := nominal.AtVec(j)
				for k := 0; k < p; k++ {
					pred -= gain.At(j, k) * sens.At(t, k)
				}
				measured[j] = append(measured[j], ctrl.At(t, j))
				residual[j] = append(residual[j], ctrl.At(t, j)-pred)
			}
		}
	}

	vaf := make(map[string]float64, q)
	for j, name := range s.controls {
		vaf[name] = 100.0 * (1.0 - stat.Variance(residual[j], nil)/stat.Variance(measured[j], nil))
	}

	return vaf, nil
}
