package matrix

import (
	"gonum.org/v1/gonum/mat"
)

// AsSym returns a symmetric copy of the square matrix m.
// Mirrored entries are averaged so that small asymmetries introduced by
// floating point round-off do not survive the conversion.
// It panics if m is nil or not square.
func AsSym(m *mat.Dense) *mat.SymDense {
	r, c := m.Dims()
	if r != c {
		panic("matrix: cannot symmetrize a non-square matrix")
	}

	s := mat.NewSymDense(r, nil)
	for i := 0; i < r; i++ {
		s.SetSym(i, i, m.At(i, i))
		for j := i + 1; j < c; j++ {
			s.SetSym(i, j, 0.5*(m.At(i, j)+m.At(j, i)))
		}
	}

	return s
}

// Diag returns the main diagonal of m as a new slice.
// It panics if m is nil.
func Diag(m mat.Symmetric) []float64 {
	n := m.SymmetricDim()
	d := make([]float64, n)

	for i := 0; i < n; i++ {
		d[i] = m.At(i, i)
	}

	return d
}
