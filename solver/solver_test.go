package solver

import (
	"fmt"
	"math"
	"os"
	"testing"

	gait "github.com/milosgajdos/go-gaitid"
	"github.com/milosgajdos/go-gaitid/cycle"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

const (
	nSamples = 20
	nCycles  = 10
)

var (
	gaitTime    []float64
	gaitCols    []string
	gaitSensors []string
	gaitCtrls   []string
	trueGains   []*mat.Dense
	trueNoms    []*mat.VecDense
)

func setup() {
	gaitTime = make([]float64, nSamples)
	for i := range gaitTime {
		gaitTime[i] = 0.25 * float64(i)
	}

	gaitSensors = []string{"knee angle", "ankle angle"}
	gaitCtrls = []string{"knee moment", "ankle moment"}
	gaitCols = []string{"knee angle", "ankle angle", "knee moment", "ankle moment"}

	trueGains = make([]*mat.Dense, nSamples)
	trueNoms = make([]*mat.VecDense, nSamples)
	for i, tv := range gaitTime {
		trueGains[i] = mat.NewDense(2, 2, []float64{
			math.Sin(tv), math.Cos(tv),
			math.Sin(2.0 * tv), math.Cos(3.0 * tv),
		})
		trueNoms[i] = mat.NewVecDense(2, []float64{
			100.0 * math.Cos(tv),
			100.0 * math.Sin(tv),
		})
	}
}

func TestMain(m *testing.M) {
	setup()
	retCode := m.Run()
	os.Exit(retCode)
}

// sensorAt returns the synthetic sensor readings of cycle i at time tv. The
// phase shifted ripple keeps the cycles affinely independent at every sample
// so the identification blocks stay well conditioned.
func sensorAt(i int, tv float64) []float64 {
	base := []float64{math.Sin(tv), math.Cos(tv)}
	s := make([]float64, 2)
	for k := range s {
		s[k] = float64(i+1)*base[k] + math.Sin(7.3*tv+1.7*float64(i)+0.9*float64(k))
	}

	return s
}

// mkPanel builds a panel of synthetic cycles whose controls follow the true
// law exactly.
func mkPanel(t *testing.T) *cycle.Panel {
	cycles := make([]*cycle.Cycle, nCycles)
	for i := 0; i < nCycles; i++ {
		data := mat.NewDense(nSamples, 4, nil)
		for ti, tv := range gaitTime {
			s := sensorAt(i, tv)
			data.Set(ti, 0, s[0])
			data.Set(ti, 1, s[1])
			for j := 0; j < 2; j++ {
				u := trueNoms[ti].AtVec(j)
				for k := 0; k < 2; k++ {
					u -= trueGains[ti].At(j, k) * s[k]
				}
				data.Set(ti, 2+j, u)
			}
		}
		c, err := cycle.New(fmt.Sprintf("cycle %d", i), gaitTime, gaitCols, data)
		if err != nil {
			t.Fatalf("failed to create cycle %d: %v", i, err)
		}
		cycles[i] = c
	}

	p, err := cycle.NewPanel(cycles...)
	if err != nil {
		t.Fatalf("failed to create panel: %v", err)
	}

	return p
}

func mkSolver(t *testing.T) *Solver {
	d, err := cycle.NewDataset(mkPanel(t))
	if err != nil {
		t.Fatalf("failed to create dataset: %v", err)
	}

	s, err := New(d, gaitSensors, gaitCtrls)
	if err != nil {
		t.Fatalf("failed to create solver: %v", err)
	}

	return s
}

func TestNew(t *testing.T) {
	assert := assert.New(t)

	d, err := cycle.NewDataset(mkPanel(t))
	assert.NoError(err)

	s, err := New(d, gaitSensors, gaitCtrls)
	assert.NotNil(s)
	assert.NoError(err)

	assert.Equal(gaitSensors, s.Sensors())
	assert.Equal(gaitCtrls, s.Controls())
	q, p := s.Dims()
	assert.Equal(2, q)
	assert.Equal(2, p)
	assert.Equal(nSamples, s.Samples())

	s, err = New(nil, gaitSensors, gaitCtrls)
	assert.Nil(s)
	assert.ErrorIs(err, gait.ErrConfiguration)

	s, err = New(d, nil, gaitCtrls)
	assert.Nil(s)
	assert.ErrorIs(err, gait.ErrConfiguration)

	s, err = New(d, gaitSensors, nil)
	assert.Nil(s)
	assert.ErrorIs(err, gait.ErrConfiguration)

	s, err = New(d, []string{"knee angle", "knee angle"}, gaitCtrls)
	assert.Nil(s)
	assert.ErrorIs(err, gait.ErrConfiguration)

	s, err = New(d, []string{"knee angle", "hip angle"}, gaitCtrls)
	assert.Nil(s)
	assert.ErrorIs(err, gait.ErrConfiguration)

	// a column cannot act as both sensor and control
	s, err = New(d, gaitSensors, []string{"knee moment", "knee angle"})
	assert.Nil(s)
	assert.ErrorIs(err, gait.ErrConfiguration)
}

func TestSolve(t *testing.T) {
	assert := assert.New(t)

	s := mkSolver(t)

	sol, err := s.Solve(nil)
	assert.NotNil(sol)
	assert.NoError(err)

	for ti := 0; ti < nSamples; ti++ {
		assert.True(mat.EqualApprox(trueGains[ti], sol.Gain(ti), 1e-8), "gain mismatch at sample %d", ti)
		assert.True(mat.EqualApprox(trueNoms[ti], sol.Nominal(ti), 1e-8), "nominal mismatch at sample %d", ti)
	}

	assert.False(sol.Singular())
	assert.Less(sol.ResidualVariance(), 1e-12)
	assert.Equal(gaitTime, sol.Time())

	q, p := sol.Dims()
	assert.Equal(2, q)
	assert.Equal(2, p)
	assert.Equal(nSamples, sol.Samples())

	// half the panel was held out so reconstructions are present
	recon := sol.Reconstructions()
	assert.NotNil(recon)
	assert.Equal(nCycles/2, recon.Len())
}

func TestSolveMasked(t *testing.T) {
	assert := assert.New(t)

	s := mkSolver(t)

	omit, err := NewMask(2, 2)
	assert.NoError(err)
	omit.Omit(0, 1)
	omit.Omit(1, 0)

	sol, err := s.Solve(omit)
	assert.NotNil(sol)
	assert.NoError(err)

	for ti := 0; ti < nSamples; ti++ {
		gain := sol.Gain(ti)
		gv := sol.GainVariance(ti)

		// omitted gains are hard zeros with zero variance
		assert.Equal(0.0, gain.At(0, 1))
		assert.Equal(0.0, gain.At(1, 0))
		assert.Equal(0.0, gv.At(0, 1))
		assert.Equal(0.0, gv.At(1, 0))

		// kept gains carry the fit
		assert.True(math.Abs(gain.At(0, 0)) > 1e-16)
		assert.True(math.Abs(gain.At(1, 1)) > 1e-16)
		assert.True(gv.At(0, 0) > 0.0)
		assert.True(gv.At(1, 1) > 0.0)
	}
}

func TestSolveMaskedRecovery(t *testing.T) {
	assert := assert.New(t)

	// a law whose off diagonal gains really are zero
	const n = 8
	time := make([]float64, n)
	for i := range time {
		time[i] = 0.5 * float64(i)
	}

	gains := make([]*mat.Dense, n)
	noms := make([]*mat.VecDense, n)
	for i, tv := range time {
		gains[i] = mat.NewDense(2, 2, []float64{
			1.0 + 0.5*math.Sin(tv), 0.0,
			0.0, 2.0 + math.Cos(tv),
		})
		noms[i] = mat.NewVecDense(2, []float64{
			10.0 * math.Cos(tv),
			5.0 * math.Sin(tv),
		})
	}

	cycles := make([]*cycle.Cycle, 6)
	for i := range cycles {
		data := mat.NewDense(n, 4, nil)
		for ti, tv := range time {
			s := sensorAt(i, tv)
			data.Set(ti, 0, s[0])
			data.Set(ti, 1, s[1])
			for j := 0; j < 2; j++ {
				u := noms[ti].AtVec(j)
				for k := 0; k < 2; k++ {
					u -= gains[ti].At(j, k) * s[k]
				}
				data.Set(ti, 2+j, u)
			}
		}
		c, err := cycle.New(fmt.Sprintf("cycle %d", i), time, gaitCols, data)
		assert.NoError(err)
		cycles[i] = c
	}

	p, err := cycle.NewPanel(cycles...)
	assert.NoError(err)
	d, err := cycle.NewDataset(p)
	assert.NoError(err)
	s, err := New(d, gaitSensors, gaitCtrls)
	assert.NoError(err)

	omit, err := NewMask(2, 2)
	assert.NoError(err)
	omit.Omit(0, 1)
	omit.Omit(1, 0)

	sol, err := s.Solve(omit)
	assert.NotNil(sol)
	assert.NoError(err)

	for ti := 0; ti < n; ti++ {
		assert.True(mat.EqualApprox(gains[ti], sol.Gain(ti), 1e-8), "gain mismatch at sample %d", ti)
		assert.True(mat.EqualApprox(noms[ti], sol.Nominal(ti), 1e-8), "nominal mismatch at sample %d", ti)
	}
	assert.False(sol.Singular())
}

func TestSolveDegenerate(t *testing.T) {
	assert := assert.New(t)

	p := mkPanel(t)

	// one identification cycle leaves fewer equations than unknowns
	d, err := cycle.NewDatasetAt(p, 1)
	assert.NoError(err)
	s, err := New(d, gaitSensors, gaitCtrls)
	assert.NoError(err)

	sol, err := s.Solve(nil)
	assert.Nil(sol)
	assert.ErrorIs(err, gait.ErrDegenerateSystem)

	// three cycles make the system exactly square which is still degenerate
	d, err = cycle.NewDatasetAt(p, 3)
	assert.NoError(err)
	s, err = New(d, gaitSensors, gaitCtrls)
	assert.NoError(err)

	sol, err = s.Solve(nil)
	assert.Nil(sol)
	assert.ErrorIs(err, gait.ErrDegenerateSystem)
}

func TestSolveMaskMismatch(t *testing.T) {
	assert := assert.New(t)

	s := mkSolver(t)

	omit, err := NewMask(3, 2)
	assert.NoError(err)

	sol, err := s.Solve(omit)
	assert.Nil(sol)
	assert.ErrorIs(err, gait.ErrShapeMismatch)
}

func TestGainOmissionRecorded(t *testing.T) {
	assert := assert.New(t)

	s := mkSolver(t)
	assert.Nil(s.GainOmission())

	omit, err := NewMask(2, 2)
	assert.NoError(err)
	omit.Omit(0, 1)

	_, err = s.Solve(omit)
	assert.NoError(err)

	recorded := s.GainOmission()
	assert.NotNil(recorded)
	assert.True(recorded.At(0, 1))
	assert.Equal(1, recorded.Count())

	// the record freezes the mask as it was at solve time
	omit.Omit(1, 0)
	assert.Equal(1, s.GainOmission().Count())

	// a solve without a mask clears the record
	_, err = s.Solve(nil)
	assert.NoError(err)
	assert.Nil(s.GainOmission())
}
