package noise

import (
	"fmt"
	"time"

	"golang.org/x/exp/rand"

	gait "github.com/milosgajdos/go-gaitid"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
)

// Gaussian is multivariate Gaussian measurement noise
type Gaussian struct {
	// dist is a multivariate normal distribution
	dist *distmv.Normal
	// mean is the noise mean
	mean []float64
	// cov is the noise covariance
	cov *mat.SymDense
}

// NewGaussian creates new Gaussian noise with the given mean and covariance.
// It returns error if the dimensions disagree or cov is not positive definite.
func NewGaussian(mean []float64, cov mat.Symmetric) (*Gaussian, error) {
	if len(mean) == 0 || cov == nil {
		return nil, fmt.Errorf("missing noise mean or covariance: %w", gait.ErrInvalidShape)
	}
	if len(mean) != cov.SymmetricDim() {
		return nil, fmt.Errorf("mean: %d, cov: [%d x %d]: %w",
			len(mean), cov.SymmetricDim(), cov.SymmetricDim(), gait.ErrShapeMismatch)
	}

	m := make([]float64, len(mean))
	copy(m, mean)

	c := mat.NewSymDense(cov.SymmetricDim(), nil)
	c.CopySym(cov)

	dist, ok := newGaussianDist(m, c)
	if !ok {
		return nil, fmt.Errorf("noise covariance is not positive definite: %w", gait.ErrConfiguration)
	}

	return &Gaussian{
		dist: dist,
		mean: m,
		cov:  c,
	}, nil
}

// Sample generates a sample from the Gaussian noise and returns it.
func (g *Gaussian) Sample() mat.Vector {
	r := g.dist.Rand(nil)

	return mat.NewVecDense(len(r), r)
}

// Cov returns the noise covariance.
func (g *Gaussian) Cov() mat.Symmetric {
	cov := mat.NewSymDense(g.cov.SymmetricDim(), nil)
	cov.CopySym(g.cov)

	return cov
}

// Mean returns the noise mean.
func (g *Gaussian) Mean() []float64 {
	mean := make([]float64, len(g.mean))
	copy(mean, g.mean)

	return mean
}

// Reset re-seeds the noise distribution.
func (g *Gaussian) Reset() {
	// the constructor already proved cov positive definite
	if dist, ok := newGaussianDist(g.mean, g.cov); ok {
		g.dist = dist
	}
}

func newGaussianDist(mean []float64, cov mat.Symmetric) (*distmv.Normal, bool) {
	src := rand.New(rand.NewSource(uint64(time.Now().UnixNano())))

	return distmv.NewNormal(mean, cov, src)
}

// String implements the Stringer interface.
func (g *Gaussian) String() string {
	return fmt.Sprintf("Gaussian{\nMean=%v\nCov=%v\n}", g.mean, mat.Formatted(g.cov, mat.Prefix("    "), mat.Squeeze()))
}
