package noise

import (
	"os"
	"testing"

	gait "github.com/milosgajdos/go-gaitid"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

var (
	mean []float64
	cov  *mat.SymDense
)

func setup() {
	mean = []float64{0.5, -0.5}
	cov = mat.NewSymDense(2, []float64{0.25, 0.1, 0.1, 0.5})
}

func TestMain(m *testing.M) {
	setup()
	retCode := m.Run()
	os.Exit(retCode)
}

func TestNewGaussian(t *testing.T) {
	assert := assert.New(t)

	g, err := NewGaussian(mean, cov)
	assert.NotNil(g)
	assert.NoError(err)

	var n gait.Noise = g
	assert.NotNil(n)

	assert.Equal(mean, g.Mean())
	assert.True(mat.EqualApprox(cov, g.Cov(), 1e-12))

	sample := g.Sample()
	assert.Equal(len(mean), sample.Len())

	g, err = NewGaussian(nil, cov)
	assert.Nil(g)
	assert.ErrorIs(err, gait.ErrInvalidShape)

	g, err = NewGaussian(mean, nil)
	assert.Nil(g)
	assert.ErrorIs(err, gait.ErrInvalidShape)

	g, err = NewGaussian([]float64{1.0}, cov)
	assert.Nil(g)
	assert.ErrorIs(err, gait.ErrShapeMismatch)

	notPD := mat.NewSymDense(2, []float64{1.0, 2.0, 2.0, 1.0})
	g, err = NewGaussian(mean, notPD)
	assert.Nil(g)
	assert.ErrorIs(err, gait.ErrConfiguration)
}

func TestGaussianSampleMean(t *testing.T) {
	assert := assert.New(t)

	g, err := NewGaussian(mean, cov)
	assert.NotNil(g)
	assert.NoError(err)

	const count = 20000
	avg := make([]float64, len(mean))
	for i := 0; i < count; i++ {
		s := g.Sample()
		for j := range avg {
			avg[j] += s.AtVec(j)
		}
	}
	for j := range avg {
		avg[j] /= count
	}

	assert.InDeltaSlice(mean, avg, 0.05)
}

func TestGaussianReset(t *testing.T) {
	assert := assert.New(t)

	g, err := NewGaussian(mean, cov)
	assert.NotNil(g)
	assert.NoError(err)

	g.Reset()

	sample := g.Sample()
	assert.Equal(len(mean), sample.Len())
}
