package solver

import (
	"testing"

	gait "github.com/milosgajdos/go-gaitid"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestLeastSquares(t *testing.T) {
	assert := assert.New(t)

	// mean estimation: x minimizes |x*1 - b|
	a := mat.NewDense(3, 1, []float64{1.0, 1.0, 1.0})
	b := mat.NewVecDense(3, []float64{1.0, 2.0, 3.0})

	fit, err := LeastSquares(a, b)
	assert.NotNil(fit)
	assert.NoError(err)

	assert.InDelta(2.0, fit.Params().AtVec(0), 1e-12)
	// residuals (-1, 0, 1) over 2 degrees of freedom
	assert.InDelta(1.0, fit.Variance(), 1e-12)
	assert.InDelta(1.0/3.0, fit.Cov().At(0, 0), 1e-12)
	assert.False(fit.Singular())
}

func TestLeastSquaresExact(t *testing.T) {
	assert := assert.New(t)

	a := mat.NewDense(3, 2, []float64{
		1.0, 0.0,
		0.0, 1.0,
		1.0, 1.0,
	})
	b := mat.NewVecDense(3, []float64{1.0, 2.0, 3.0})

	fit, err := LeastSquares(a, b)
	assert.NotNil(fit)
	assert.NoError(err)

	assert.InDelta(1.0, fit.Params().AtVec(0), 1e-12)
	assert.InDelta(2.0, fit.Params().AtVec(1), 1e-12)
	assert.InDelta(0.0, fit.Variance(), 1e-20)
	assert.False(fit.Singular())

	// a consistent system has no residual variance to propagate
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			assert.InDelta(0.0, fit.Cov().At(i, j), 1e-20)
		}
	}
}

func TestLeastSquaresSingular(t *testing.T) {
	assert := assert.New(t)

	// duplicated columns make the normal equations singular; the minimum
	// norm solution splits the weight evenly
	a := mat.NewDense(4, 2, []float64{
		1.0, 1.0,
		1.0, 1.0,
		2.0, 2.0,
		3.0, 3.0,
	})
	b := mat.NewVecDense(4, []float64{2.0, 2.0, 4.0, 6.0})

	fit, err := LeastSquares(a, b)
	assert.NotNil(fit)
	assert.NoError(err)

	assert.True(fit.Singular())
	assert.InDelta(1.0, fit.Params().AtVec(0), 1e-10)
	assert.InDelta(1.0, fit.Params().AtVec(1), 1e-10)
	assert.InDelta(0.0, fit.Variance(), 1e-18)
}

func TestLeastSquaresErrors(t *testing.T) {
	assert := assert.New(t)

	a := mat.NewDense(3, 1, []float64{1.0, 1.0, 1.0})
	b := mat.NewVecDense(3, []float64{1.0, 2.0, 3.0})

	fit, err := LeastSquares(nil, b)
	assert.Nil(fit)
	assert.ErrorIs(err, gait.ErrInvalidShape)

	fit, err = LeastSquares(a, nil)
	assert.Nil(fit)
	assert.ErrorIs(err, gait.ErrInvalidShape)

	fit, err = LeastSquares(a, mat.NewVecDense(2, nil))
	assert.Nil(fit)
	assert.ErrorIs(err, gait.ErrShapeMismatch)

	// square systems leave no degrees of freedom for the variance
	fit, err = LeastSquares(mat.NewDense(2, 2, []float64{1.0, 0.0, 0.0, 1.0}), mat.NewVecDense(2, nil))
	assert.Nil(fit)
	assert.ErrorIs(err, gait.ErrDegenerateSystem)

	fit, err = LeastSquares(mat.NewDense(1, 2, []float64{1.0, 2.0}), mat.NewVecDense(1, nil))
	assert.Nil(fit)
	assert.ErrorIs(err, gait.ErrDegenerateSystem)
}
