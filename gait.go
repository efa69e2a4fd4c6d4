package gait

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// Law is a time-varying linear feedback control law over one task cycle.
// At every time sample t the law maps a sensed state s to a control output
//
//	u(t) = m*(t) - K(t)*s(t)
//
// where K(t) is the feedback gain matrix and m*(t) the nominal control.
type Law interface {
	// Gain returns the feedback gain matrix at time sample t
	Gain(t int) mat.Matrix
	// Nominal returns the nominal control vector at time sample t
	Nominal(t int) mat.Vector
	// Samples returns the number of time samples the law spans
	Samples() int
	// Dims returns the number of control channels and sensors
	Dims() (q, p int)
}

// Noise is sensor measurement noise
type Noise interface {
	// Mean returns noise mean
	Mean() []float64
	// Cov returns covariance matrix of the noise
	Cov() mat.Symmetric
	// Sample returns a sample of the noise
	Sample() mat.Vector
	// Reset resets the noise
	Reset()
}

var (
	// ErrConfiguration is returned when cycles in a panel disagree on time
	// axis, column names or length, or when split parameters are out of range.
	ErrConfiguration = errors.New("inconsistent cycle configuration")

	// ErrInvalidShape is returned when supplied arrays are inconsistent with
	// the declared sensor, control or mask dimensions.
	ErrInvalidShape = errors.New("invalid shape")

	// ErrShapeMismatch is returned when a parameter vector, covariance or law
	// does not match the dimensions it is deconstructed or evaluated against.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrDegenerateSystem is returned when the assembled regression has no
	// more equations than unknowns.
	ErrDegenerateSystem = errors.New("degenerate system")
)
