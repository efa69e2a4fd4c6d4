package solver

import (
	"github.com/milosgajdos/go-gaitid/cycle"
	"gonum.org/v1/gonum/mat"
)

// SensorVectors returns the sensor trajectories of the identification
// cycles, one matrix per cycle with one row per time sample and one column
// per sensor.
func (s *Solver) SensorVectors() ([]*mat.Dense, error) {
	return vectors(s.data.Identification(), s.sensors)
}

// ControlVectors returns the control trajectories of the identification
// cycles, one matrix per cycle with one row per time sample and one column
// per control.
func (s *Solver) ControlVectors() ([]*mat.Dense, error) {
	return vectors(s.data.Identification(), s.controls)
}

func vectors(cycles []*cycle.Cycle, cols []string) ([]*mat.Dense, error) {
	out := make([]*mat.Dense, len(cycles))
	for i, c := range cycles {
		sel, err := c.Select(cols)
		if err != nil {
			return nil, err
		}
		out[i] = sel
	}

	return out, nil
}
