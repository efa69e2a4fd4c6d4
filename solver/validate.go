package solver

import (
	"fmt"

	gait "github.com/milosgajdos/go-gaitid"
	"github.com/milosgajdos/go-gaitid/cycle"
	"gonum.org/v1/gonum/mat"
)

// EstimatedControls evaluates an identified control law against the
// validation cycles. The returned panel holds one cycle per validation cycle
// with three columns per control: the measured control under its own name,
// the law nominal under the name suffixed "*" and the control corrected to
// the ensemble mean sensors under the name suffixed "0":
//
//	u0_j(t) = u_j(t) - sum_k K_jk(t) * (s0_k(t) - s_k(t))
//
// where s0 is the per sample mean of the validation sensors. The measured
// controls are copied bit for bit.
// It returns error if law is nil or does not match the solver dimensions or
// the dataset has no validation cycles.
func (s *Solver) EstimatedControls(law gait.Law) (*cycle.Panel, error) {
	if err := s.checkLaw(law); err != nil {
		return nil, err
	}

	valid := s.data.Validation()
	if len(valid) == 0 {
		return nil, fmt.Errorf("no validation cycles: %w", gait.ErrConfiguration)
	}

	q, p := s.Dims()

	s0, err := cycle.Mean(valid, s.sensors)
	if err != nil {
		return nil, err
	}

	cols := make([]string, 3*q)
	for j, name := range s.controls {
		cols[j] = name
		cols[q+j] = name + "*"
		cols[2*q+j] = name + "0"
	}

	out := make([]*cycle.Cycle, len(valid))
	for i, c := range valid {
		sens, err := c.Select(s.sensors)
		if err != nil {
			return nil, err
		}
		ctrl, err := c.Select(s.controls)
		if err != nil {
			return nil, err
		}

		data := mat.NewDense(s.n, 3*q, nil)
		for t := 0; t < s.n; t++ {
			gain := law.Gain(t)
			nominal := law.Nominal(t)
			for j := 0; j < q; j++ {
				data.Set(t, j, ctrl.At(t, j))
				data.Set(t, q+j, nominal.AtVec(j))

				correction := 0.0
				for k := 0; k < p; k++ {
					correction += gain.At(j, k) * (s0.At(t, k) - sens.At(t, k))
				}
				data.Set(t, 2*q+j, ctrl.At(t, j)-correction)
			}
		}

		rc, err := cycle.New(c.Name(), c.Time(), cols, data)
		if err != nil {
			return nil, err
		}
		out[i] = rc
	}

	return cycle.NewPanel(out...)
}

func (s *Solver) checkLaw(law gait.Law) error {
	if law == nil {
		return fmt.Errorf("nil control law: %w", gait.ErrConfiguration)
	}

	q, p := s.Dims()
	lq, lp := law.Dims()
	if lq != q || lp != p || law.Samples() != s.n {
		return fmt.Errorf("law: [%d x %d] over %d samples, want [%d x %d] over %d: %w",
			lq, lp, law.Samples(), q, p, s.n, gait.ErrShapeMismatch)
	}

	return nil
}
