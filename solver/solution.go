package solver

import (
	"fmt"

	gait "github.com/milosgajdos/go-gaitid"
	"github.com/milosgajdos/go-gaitid/cycle"
	"github.com/milosgajdos/go-gaitid/estimate"
	"github.com/milosgajdos/go-gaitid/matrix"
	"gonum.org/v1/gonum/mat"
)

// Solution is an identified control law: a gain matrix, a nominal control
// and their parameter variances for every time sample, together with the
// residual variance of the fit. Solution implements the gait.Law interface.
type Solution struct {
	// time is the canonical time axis
	time []float64
	// q is the number of controls
	q int
	// p is the number of sensors
	p int
	// gains holds the gain matrix of every time sample
	gains []*mat.Dense
	// nominals holds the nominal control of every time sample
	nominals []*mat.VecDense
	// gainVars holds the gain parameter variances of every time sample
	gainVars []*mat.Dense
	// nominalVars holds the nominal parameter variances of every time sample
	nominalVars []*mat.VecDense
	// variance is the residual variance of the fit
	variance float64
	// singular marks laws recovered from rank deficient systems
	singular bool
	// recon holds the validation control reconstructions
	recon *cycle.Panel
}

// Deconstruct rebuilds the time sample structure of a control law from a fit
// of the design system assembled with the same gain omission mask. Gains
// flagged by omit come back as zeros with zero variance; the parameter
// variances of the rest are read off the fit covariance diagonal.
// It returns error if fit is nil, omit does not match the solver dimensions
// or the fit length disagrees with the masked design system.
func (s *Solver) Deconstruct(fit *estimate.Fit, omit *Mask) (*Solution, error) {
	if fit == nil {
		return nil, fmt.Errorf("nil fit: %w", gait.ErrInvalidShape)
	}
	q, p := s.Dims()
	if omit != nil {
		mq, mp := omit.Dims()
		if mq != q || mp != p {
			return nil, fmt.Errorf("mask: [%d x %d], controls: %d, sensors: %d: %w",
				mq, mp, q, p, gait.ErrShapeMismatch)
		}
	}

	keep := blockKeep(omit, q, p)
	width := 0
	for _, k := range keep {
		if k {
			width++
		}
	}

	params := fit.Params()
	if params.Len() != s.n*width {
		return nil, fmt.Errorf("fit: %d parameters, want %d: %w", params.Len(), s.n*width, gait.ErrShapeMismatch)
	}
	diag := matrix.Diag(fit.Cov())

	sol := &Solution{
		time:        s.data.Time(),
		q:           q,
		p:           p,
		gains:       make([]*mat.Dense, s.n),
		nominals:    make([]*mat.VecDense, s.n),
		gainVars:    make([]*mat.Dense, s.n),
		nominalVars: make([]*mat.VecDense, s.n),
		variance:    fit.Variance(),
		singular:    fit.Singular(),
	}

	idx := 0
	for t := 0; t < s.n; t++ {
		gain := mat.NewDense(q, p, nil)
		gainVar := mat.NewDense(q, p, nil)
		nominal := mat.NewVecDense(q, nil)
		nominalVar := mat.NewVecDense(q, nil)

		for col, kept := range keep {
			if !kept {
				continue
			}
			val := params.AtVec(idx)
			vr := diag[idx]
			idx++

			if col < q*p {
				gain.Set(col/p, col%p, val)
				gainVar.Set(col/p, col%p, vr)
				continue
			}
			nominal.SetVec(col-q*p, val)
			nominalVar.SetVec(col-q*p, vr)
		}

		sol.gains[t] = gain
		sol.gainVars[t] = gainVar
		sol.nominals[t] = nominal
		sol.nominalVars[t] = nominalVar
	}

	return sol, nil
}

// Gain returns the gain matrix at time sample t.
// It panics if t is out of range.
func (s *Solution) Gain(t int) mat.Matrix {
	s.check(t)

	gain := &mat.Dense{}
	gain.CloneFrom(s.gains[t])

	return gain
}

// Nominal returns the nominal control at time sample t.
// It panics if t is out of range.
func (s *Solution) Nominal(t int) mat.Vector {
	s.check(t)

	nominal := &mat.VecDense{}
	nominal.CloneFromVec(s.nominals[t])

	return nominal
}

// GainVariance returns the gain parameter variances at time sample t.
// It panics if t is out of range.
func (s *Solution) GainVariance(t int) mat.Matrix {
	s.check(t)

	vr := &mat.Dense{}
	vr.CloneFrom(s.gainVars[t])

	return vr
}

// NominalVariance returns the nominal parameter variances at time sample t.
// It panics if t is out of range.
func (s *Solution) NominalVariance(t int) mat.Vector {
	s.check(t)

	vr := &mat.VecDense{}
	vr.CloneFromVec(s.nominalVars[t])

	return vr
}

// Samples returns the number of time samples the law covers.
func (s *Solution) Samples() int {
	return len(s.time)
}

// Dims returns the number of controls q and sensors p of the law.
func (s *Solution) Dims() (q, p int) {
	return s.q, s.p
}

// Time returns a copy of the canonical time axis.
func (s *Solution) Time() []float64 {
	t := make([]float64, len(s.time))
	copy(t, s.time)

	return t
}

// ResidualVariance returns the residual variance of the fit.
func (s *Solution) ResidualVariance() float64 {
	return s.variance
}

// Singular reports whether the law was recovered from a rank deficient
// system. Singular laws are still usable but their parameters are not
// uniquely determined by the data.
func (s *Solution) Singular() bool {
	return s.singular
}

// Reconstructions returns the validation control reconstructions of the
// solve that produced the solution.
// It returns nil when the dataset had no validation cycles.
func (s *Solution) Reconstructions() *cycle.Panel {
	return s.recon
}

func (s *Solution) check(t int) {
	if t < 0 || t >= len(s.time) {
		panic(fmt.Sprintf("gait: sample index %d out of range [0, %d)", t, len(s.time)))
	}
}
