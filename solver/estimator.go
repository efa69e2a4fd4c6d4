package solver

import (
	"fmt"

	gait "github.com/milosgajdos/go-gaitid"
	"github.com/milosgajdos/go-gaitid/estimate"
	"github.com/milosgajdos/go-gaitid/matrix"
	"gonum.org/v1/gonum/mat"
)

// machine epsilon
const eps = 0x1p-52

// LeastSquares solves the linear system a*x = b in the least squares sense
// and returns the estimated parameters together with their residual variance
// and covariance. The residual variance divides the squared residual norm by
// the degrees of freedom, rows less columns. Rank deficient systems yield
// the minimum norm solution and a pseudoinverse covariance and are flagged
// singular on the returned fit.
// It returns error if a or b is nil, their dimensions disagree or the system
// does not have more equations than unknowns.
func LeastSquares(a *mat.Dense, b *mat.VecDense) (*estimate.Fit, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("missing design matrix or response: %w", gait.ErrInvalidShape)
	}

	rows, cols := a.Dims()
	if b.Len() != rows {
		return nil, fmt.Errorf("design: [%d x %d], response: %d: %w", rows, cols, b.Len(), gait.ErrShapeMismatch)
	}
	if rows <= cols {
		return nil, fmt.Errorf("%d equations for %d unknowns: %w", rows, cols, gait.ErrDegenerateSystem)
	}

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, fmt.Errorf("SVD factorization failed: %w", gait.ErrDegenerateSystem)
	}

	vals := svd.Values(nil)

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	// singular values below the scaled machine epsilon count as zero
	tol := float64(rows) * eps * vals[0]
	rank := 0
	for _, sv := range vals {
		if sv > tol {
			rank++
		}
	}
	singular := rank < cols

	// minimum norm solution through the truncated factorization
	y := mat.NewVecDense(cols, nil)
	for k := 0; k < rank; k++ {
		y.SetVec(k, mat.Dot(u.ColView(k), b)/vals[k])
	}
	x := mat.NewVecDense(cols, nil)
	x.MulVec(&v, y)

	res := mat.NewVecDense(rows, nil)
	res.MulVec(a, x)
	res.SubVec(b, res)
	variance := mat.Dot(res, res) / float64(rows-cols)

	cov := pinvCov(&v, vals, rank, cols, variance)

	return estimate.NewFit(x, variance, cov, singular)
}

// pinvCov scales the pseudoinverse of a'*a by the residual variance.
func pinvCov(v *mat.Dense, vals []float64, rank, cols int, variance float64) *mat.SymDense {
	if rank == 0 {
		return mat.NewSymDense(cols, nil)
	}

	vs := mat.NewDense(cols, rank, nil)
	for k := 0; k < rank; k++ {
		for i := 0; i < cols; i++ {
			vs.Set(i, k, v.At(i, k)/vals[k])
		}
	}

	cov := mat.NewDense(cols, cols, nil)
	cov.Mul(vs, vs.T())
	cov.Scale(variance, cov)

	return matrix.AsSym(cov)
}
