package solver

import (
	"fmt"

	gait "github.com/milosgajdos/go-gaitid"
	"gonum.org/v1/gonum/mat"
)

// DesignSystem assembles the least squares design matrix and response vector
// over every identification cycle and time sample. The unknown vector chains
// one block per time sample: the gain matrix entries in row major order
// followed by the nominal controls. Gains flagged by omit are dropped from
// the design matrix columns; a nil omit keeps every gain.
//
// The response chains the measured controls cycle by cycle, sample by
// sample. The row of cycle i, sample t and control j carries the negated
// sensors of that sample in the gain columns of control j and a one in its
// nominal column, all inside the block of sample t.
// It returns error if omit does not match the solver dimensions.
func (s *Solver) DesignSystem(omit *Mask) (*mat.Dense, *mat.VecDense, error) {
	q, p := s.Dims()
	if omit != nil {
		mq, mp := omit.Dims()
		if mq != q || mp != p {
			return nil, nil, fmt.Errorf("mask: [%d x %d], controls: %d, sensors: %d: %w",
				mq, mp, q, p, gait.ErrShapeMismatch)
		}
	}

	sens, err := s.SensorVectors()
	if err != nil {
		return nil, nil, err
	}
	ctrl, err := s.ControlVectors()
	if err != nil {
		return nil, nil, err
	}

	keep := blockKeep(omit, q, p)
	width := 0
	offset := make([]int, len(keep))
	for i, k := range keep {
		if k {
			offset[i] = width
			width++
			continue
		}
		offset[i] = -1
	}

	m := len(sens)
	rows := m * s.n * q
	cols := s.n * width

	a := mat.NewDense(rows, cols, nil)
	b := mat.NewVecDense(rows, nil)

	for i := 0; i < m; i++ {
		for t := 0; t < s.n; t++ {
			base := t * width
			for j := 0; j < q; j++ {
				row := (i*s.n+t)*q + j
				b.SetVec(row, ctrl[i].At(t, j))
				for k := 0; k < p; k++ {
					if off := offset[j*p+k]; off >= 0 {
						a.Set(row, base+off, -sens[i].At(t, k))
					}
				}
				// nominal columns are never masked
				a.Set(row, base+offset[q*p+j], 1.0)
			}
		}
	}

	return a, b, nil
}
