package sim

import (
	"fmt"

	gait "github.com/milosgajdos/go-gaitid"
	"github.com/milosgajdos/go-gaitid/cycle"
	"gonum.org/v1/gonum/mat"
)

// Trial synthesizes cycles that follow a control law exactly: given sensor
// trajectories it computes the controls the law prescribes for them. Noise,
// when configured, perturbs the sensor trajectories before the controls are
// computed so the recorded cycles still follow the law without error.
type Trial struct {
	// law prescribes the gains and nominal controls
	law gait.Law
	// time is the cycle time axis
	time []float64
	// sensors are the sensor column names
	sensors []string
	// controls are the control column names
	controls []string
	// noise perturbs the sensor trajectories
	noise gait.Noise
}

// NewTrial creates a new Trial synthesizing cycles with the named sensor and
// control columns from the given law over the given time axis. A nil noise
// leaves the sensor trajectories untouched.
// It returns error if law is nil, the time axis length differs from the law
// samples, the name counts do not match the law dimensions, a name repeats
// or the noise dimension does not match the sensors.
func NewTrial(law gait.Law, time []float64, sensors, controls []string, noise gait.Noise) (*Trial, error) {
	if law == nil {
		return nil, fmt.Errorf("nil control law: %w", gait.ErrConfiguration)
	}

	q, p := law.Dims()
	if len(time) != law.Samples() {
		return nil, fmt.Errorf("time axis: %d samples, law: %d: %w",
			len(time), law.Samples(), gait.ErrShapeMismatch)
	}
	if len(sensors) != p || len(controls) != q {
		return nil, fmt.Errorf("sensors: %d, controls: %d, law: [%d x %d]: %w",
			len(sensors), len(controls), q, p, gait.ErrShapeMismatch)
	}

	seen := make(map[string]bool, p+q)
	for _, col := range append(append([]string{}, sensors...), controls...) {
		if seen[col] {
			return nil, fmt.Errorf("signal %q named twice: %w", col, gait.ErrConfiguration)
		}
		seen[col] = true
	}

	if noise != nil && len(noise.Mean()) != p {
		return nil, fmt.Errorf("noise: %d dimensions, sensors: %d: %w",
			len(noise.Mean()), p, gait.ErrShapeMismatch)
	}

	tv := make([]float64, len(time))
	copy(tv, time)
	s := make([]string, len(sensors))
	copy(s, sensors)
	c := make([]string, len(controls))
	copy(c, controls)

	return &Trial{
		law:      law,
		time:     tv,
		sensors:  s,
		controls: c,
		noise:    noise,
	}, nil
}

// Cycle synthesizes one cycle named name from a sensor trajectory with one
// row per time sample and one column per sensor.
// It returns error if traj is nil or its dimensions disagree with the trial.
func (tr *Trial) Cycle(name string, traj *mat.Dense) (*cycle.Cycle, error) {
	if traj == nil {
		return nil, fmt.Errorf("cycle %q has no trajectory: %w", name, gait.ErrInvalidShape)
	}

	q, p := tr.law.Dims()
	n := len(tr.time)
	r, c := traj.Dims()
	if r != n || c != p {
		return nil, fmt.Errorf("cycle %q trajectory is [%d x %d], want [%d x %d]: %w",
			name, r, c, n, p, gait.ErrShapeMismatch)
	}

	cols := make([]string, 0, p+q)
	cols = append(cols, tr.sensors...)
	cols = append(cols, tr.controls...)

	data := mat.NewDense(n, p+q, nil)
	s := make([]float64, p)
	for t := 0; t < n; t++ {
		for k := 0; k < p; k++ {
			s[k] = traj.At(t, k)
		}
		if tr.noise != nil {
			sample := tr.noise.Sample()
			for k := 0; k < p; k++ {
				s[k] += sample.AtVec(k)
			}
		}

		gain := tr.law.Gain(t)
		nominal := tr.law.Nominal(t)
		for k := 0; k < p; k++ {
			data.Set(t, k, s[k])
		}
		for j := 0; j < q; j++ {
			u := nominal.AtVec(j)
			for k := 0; k < p; k++ {
				u -= gain.At(j, k) * s[k]
			}
			data.Set(t, p+j, u)
		}
	}

	return cycle.New(name, tr.time, cols, data)
}

// Panel synthesizes one cycle per trajectory and collects them in a panel.
// It returns error if the name and trajectory counts differ or a cycle
// fails to synthesize.
func (tr *Trial) Panel(names []string, trajs []*mat.Dense) (*cycle.Panel, error) {
	if len(names) == 0 || len(names) != len(trajs) {
		return nil, fmt.Errorf("names: %d, trajectories: %d: %w",
			len(names), len(trajs), gait.ErrConfiguration)
	}

	cycles := make([]*cycle.Cycle, len(names))
	for i, name := range names {
		c, err := tr.Cycle(name, trajs[i])
		if err != nil {
			return nil, err
		}
		cycles[i] = c
	}

	return cycle.NewPanel(cycles...)
}
