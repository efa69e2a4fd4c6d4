package solver

import (
	"fmt"

	gait "github.com/milosgajdos/go-gaitid"
	"github.com/milosgajdos/go-gaitid/cycle"
)

// Solver identifies a time varying control law from repeated cycles of
// sensor and control trajectories. The law maps sensors s(t) to controls
// u(t) through a gain matrix K(t) and a nominal control m*(t):
//
//	u(t) = m*(t) - K(t) * s(t)
//
// All identification cycles and time samples enter one least squares problem
// so every sample constrains the law.
type Solver struct {
	// data supplies the identification and validation cycles
	data *cycle.Dataset
	// sensors are the sensor column names
	sensors []string
	// controls are the control column names
	controls []string
	// n is the number of time samples per cycle
	n int
	// mask records the gain omission mask of the last solve
	mask *Mask
}

// New creates a new Solver identifying a control law that maps the named
// sensor columns to the named control columns of the dataset cycles.
// It returns error if data is nil, either name list is empty or repeats a
// name, a name is missing from the dataset or a column is named as both
// sensor and control.
func New(data *cycle.Dataset, sensors, controls []string) (*Solver, error) {
	if data == nil {
		return nil, fmt.Errorf("nil dataset: %w", gait.ErrConfiguration)
	}
	if len(sensors) == 0 || len(controls) == 0 {
		return nil, fmt.Errorf("no sensors or no controls named: %w", gait.ErrConfiguration)
	}

	avail := make(map[string]bool, len(data.Columns()))
	for _, col := range data.Columns() {
		avail[col] = true
	}

	seen := make(map[string]bool, len(sensors)+len(controls))
	for _, col := range append(append([]string{}, sensors...), controls...) {
		if seen[col] {
			return nil, fmt.Errorf("signal %q named twice: %w", col, gait.ErrConfiguration)
		}
		seen[col] = true
		if !avail[col] {
			return nil, fmt.Errorf("dataset has no column %q: %w", col, gait.ErrConfiguration)
		}
	}

	s := make([]string, len(sensors))
	copy(s, sensors)
	c := make([]string, len(controls))
	copy(c, controls)

	return &Solver{
		data:     data,
		sensors:  s,
		controls: c,
		n:        data.Samples(),
	}, nil
}

// Sensors returns the sensor column names.
func (s *Solver) Sensors() []string {
	sensors := make([]string, len(s.sensors))
	copy(sensors, s.sensors)

	return sensors
}

// Controls returns the control column names.
func (s *Solver) Controls() []string {
	controls := make([]string, len(s.controls))
	copy(controls, s.controls)

	return controls
}

// Dims returns the number of controls q and sensors p.
func (s *Solver) Dims() (q, p int) {
	return len(s.controls), len(s.sensors)
}

// Samples returns the number of time samples per cycle.
func (s *Solver) Samples() int {
	return s.n
}

// Solve identifies the control law and returns it. The gain omission mask is
// recorded first, a nil mask included, then the design system is assembled,
// solved and deconstructed. When the dataset carries validation cycles the
// solution also holds their control reconstructions.
// It returns error if the mask does not match the solver dimensions or the
// system is degenerate.
func (s *Solver) Solve(omit *Mask) (*Solution, error) {
	s.mask = omit.Clone()

	a, b, err := s.DesignSystem(omit)
	if err != nil {
		return nil, err
	}

	fit, err := LeastSquares(a, b)
	if err != nil {
		return nil, err
	}

	sol, err := s.Deconstruct(fit, omit)
	if err != nil {
		return nil, err
	}

	if len(s.data.Validation()) > 0 {
		recon, err := s.EstimatedControls(sol)
		if err != nil {
			return nil, err
		}
		sol.recon = recon
	}

	return sol, nil
}

// GainOmission returns the gain omission mask recorded by the last solve.
// It returns nil before any solve and after a solve without a mask.
func (s *Solver) GainOmission() *Mask {
	return s.mask.Clone()
}
