package cycle

import (
	"fmt"

	gait "github.com/milosgajdos/go-gaitid"
	"gonum.org/v1/gonum/mat"
)

// Cycle is one repetition of a periodic task: an immutable table of named
// signals sampled on a shared time axis.
type Cycle struct {
	// name identifies the cycle within a panel
	name string
	// time is the canonical time axis
	time []float64
	// cols holds the column names in table order
	cols []string
	// index maps column names to their positions
	index map[string]int
	// data stores one row per time sample and one column per signal
	data *mat.Dense
}

// New creates a new Cycle and returns it.
// The data matrix must have one row per time sample and one column per name;
// all inputs are copied so the cycle cannot be mutated through them.
// It returns error if the dimensions disagree or a column name repeats.
func New(name string, time []float64, cols []string, data *mat.Dense) (*Cycle, error) {
	if len(time) == 0 || len(cols) == 0 {
		return nil, fmt.Errorf("cycle %q has no samples or no columns: %w", name, gait.ErrInvalidShape)
	}

	r, c := data.Dims()
	if r != len(time) || c != len(cols) {
		return nil, fmt.Errorf("cycle %q data is [%d x %d], want [%d x %d]: %w",
			name, r, c, len(time), len(cols), gait.ErrInvalidShape)
	}

	index := make(map[string]int, len(cols))
	for i, col := range cols {
		if _, ok := index[col]; ok {
			return nil, fmt.Errorf("cycle %q repeats column %q: %w", name, col, gait.ErrInvalidShape)
		}
		index[col] = i
	}

	t := make([]float64, len(time))
	copy(t, time)

	cs := make([]string, len(cols))
	copy(cs, cols)

	d := &mat.Dense{}
	d.CloneFrom(data)

	return &Cycle{
		name:  name,
		time:  t,
		cols:  cs,
		index: index,
		data:  d,
	}, nil
}

// Name returns the cycle name.
func (c *Cycle) Name() string {
	return c.name
}

// Len returns the number of time samples.
func (c *Cycle) Len() int {
	return len(c.time)
}

// Time returns a copy of the time axis.
func (c *Cycle) Time() []float64 {
	t := make([]float64, len(c.time))
	copy(t, c.time)

	return t
}

// Columns returns a copy of the column names in table order.
func (c *Cycle) Columns() []string {
	cols := make([]string, len(c.cols))
	copy(cols, c.cols)

	return cols
}

// Has reports whether the cycle has a column named col.
func (c *Cycle) Has(col string) bool {
	_, ok := c.index[col]

	return ok
}

// Column returns a copy of the named column.
// It returns error if the cycle has no such column.
func (c *Cycle) Column(col string) (*mat.VecDense, error) {
	j, ok := c.index[col]
	if !ok {
		return nil, fmt.Errorf("cycle %q has no column %q: %w", c.name, col, gait.ErrConfiguration)
	}

	v := mat.NewVecDense(len(c.time), nil)
	v.CopyVec(c.data.ColView(j))

	return v, nil
}

// Select returns a dense matrix holding the named columns in the given order,
// one row per time sample. The returned matrix is a fresh allocation.
// It returns error if no names are given or a column is missing.
func (c *Cycle) Select(cols []string) (*mat.Dense, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("cycle %q: no columns selected: %w", c.name, gait.ErrInvalidShape)
	}

	out := mat.NewDense(len(c.time), len(cols), nil)
	for k, col := range cols {
		j, ok := c.index[col]
		if !ok {
			return nil, fmt.Errorf("cycle %q has no column %q: %w", c.name, col, gait.ErrConfiguration)
		}
		out.SetCol(k, mat.Col(nil, j, c.data))
	}

	return out, nil
}
