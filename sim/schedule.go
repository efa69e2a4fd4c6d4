package sim

import (
	"fmt"

	gait "github.com/milosgajdos/go-gaitid"
	"gonum.org/v1/gonum/mat"
)

// Schedule is a prescribed control law: an explicit gain matrix and nominal
// control for every time sample. Schedule implements the gait.Law interface
// so synthesized data and identified laws go through the same code paths.
type Schedule struct {
	// q is the number of controls
	q int
	// p is the number of sensors
	p int
	// gains holds the gain matrix of every time sample
	gains []*mat.Dense
	// nominals holds the nominal control of every time sample
	nominals []*mat.VecDense
}

// NewSchedule creates a new Schedule from one gain matrix and one nominal
// control per time sample. All matrices and vectors are copied.
// It returns error if no samples are given, the slice lengths differ, an
// entry is nil or the dimensions disagree across samples.
func NewSchedule(gains []mat.Matrix, nominals []mat.Vector) (*Schedule, error) {
	if len(gains) == 0 || len(gains) != len(nominals) {
		return nil, fmt.Errorf("gains: %d samples, nominals: %d: %w",
			len(gains), len(nominals), gait.ErrConfiguration)
	}
	if gains[0] == nil || nominals[0] == nil {
		return nil, fmt.Errorf("nil gain or nominal at sample 0: %w", gait.ErrInvalidShape)
	}

	q, p := gains[0].Dims()

	s := &Schedule{
		q:        q,
		p:        p,
		gains:    make([]*mat.Dense, len(gains)),
		nominals: make([]*mat.VecDense, len(nominals)),
	}

	for t := range gains {
		if gains[t] == nil || nominals[t] == nil {
			return nil, fmt.Errorf("nil gain or nominal at sample %d: %w", t, gait.ErrInvalidShape)
		}
		gq, gp := gains[t].Dims()
		if gq != q || gp != p {
			return nil, fmt.Errorf("gain at sample %d is [%d x %d], want [%d x %d]: %w",
				t, gq, gp, q, p, gait.ErrShapeMismatch)
		}
		if nominals[t].Len() != q {
			return nil, fmt.Errorf("nominal at sample %d has %d controls, want %d: %w",
				t, nominals[t].Len(), q, gait.ErrShapeMismatch)
		}

		gain := &mat.Dense{}
		gain.CloneFrom(gains[t])
		s.gains[t] = gain

		nominal := &mat.VecDense{}
		nominal.CloneFromVec(nominals[t])
		s.nominals[t] = nominal
	}

	return s, nil
}

// Gain returns the gain matrix at time sample t.
// It panics if t is out of range.
func (s *Schedule) Gain(t int) mat.Matrix {
	s.check(t)

	gain := &mat.Dense{}
	gain.CloneFrom(s.gains[t])

	return gain
}

// Nominal returns the nominal control at time sample t.
// It panics if t is out of range.
func (s *Schedule) Nominal(t int) mat.Vector {
	s.check(t)

	nominal := &mat.VecDense{}
	nominal.CloneFromVec(s.nominals[t])

	return nominal
}

// Samples returns the number of time samples the schedule covers.
func (s *Schedule) Samples() int {
	return len(s.gains)
}

// Dims returns the number of controls q and sensors p of the schedule.
func (s *Schedule) Dims() (q, p int) {
	return s.q, s.p
}

func (s *Schedule) check(t int) {
	if t < 0 || t >= len(s.gains) {
		panic(fmt.Sprintf("gait: sample index %d out of range [0, %d)", t, len(s.gains)))
	}
}
