package estimate

import (
	"fmt"

	gait "github.com/milosgajdos/go-gaitid"
	"gonum.org/v1/gonum/mat"
)

// Fit is a least squares parameter estimate
type Fit struct {
	// params is the estimated parameter vector
	params *mat.VecDense
	// variance is the residual variance of the fit
	variance float64
	// cov is the parameter covariance
	cov *mat.SymDense
	// singular marks estimates recovered from rank deficient systems
	singular bool
}

// NewFit returns a new Fit given the estimated parameters, the residual
// variance and the parameter covariance. The singular flag marks estimates
// recovered from rank deficient systems.
// It returns error if params or cov is nil, their dimensions disagree or
// variance is negative.
func NewFit(params mat.Vector, variance float64, cov mat.Symmetric, singular bool) (*Fit, error) {
	if params == nil || cov == nil {
		return nil, fmt.Errorf("missing fit parameters or covariance: %w", gait.ErrInvalidShape)
	}

	rp, _ := params.Dims()
	rc := cov.SymmetricDim()
	if rp != rc {
		return nil, fmt.Errorf("params: %d, cov: [%d x %d]: %w", rp, rc, rc, gait.ErrShapeMismatch)
	}
	if variance < 0 {
		return nil, fmt.Errorf("negative residual variance: %f: %w", variance, gait.ErrInvalidShape)
	}

	p := &mat.VecDense{}
	p.CloneFromVec(params)

	c := mat.NewSymDense(rc, nil)
	c.CopySym(cov)

	return &Fit{
		params:   p,
		variance: variance,
		cov:      c,
		singular: singular,
	}, nil
}

// Params returns the estimated parameter vector
func (f *Fit) Params() mat.Vector {
	p := &mat.VecDense{}
	p.CloneFromVec(f.params)

	return p
}

// Variance returns the residual variance of the fit
func (f *Fit) Variance() float64 {
	return f.variance
}

// Cov returns the parameter covariance
func (f *Fit) Cov() mat.Symmetric {
	cov := mat.NewSymDense(f.cov.SymmetricDim(), nil)
	cov.CopySym(f.cov)

	return cov
}

// Singular reports whether the estimate was recovered from a rank deficient
// system
func (f *Fit) Singular() bool {
	return f.singular
}
