package cycle

import (
	"fmt"
	"sort"

	gait "github.com/milosgajdos/go-gaitid"
)

// Dataset partitions cycles into an identification set used to fit a control
// law and a validation set used to evaluate it. Every cycle in a dataset
// shares the same time axis and the same set of column names.
type Dataset struct {
	// ident holds the identification cycles
	ident []*Cycle
	// valid holds the validation cycles
	valid []*Cycle
	// time is the canonical time axis shared by all cycles
	time []float64
	// cols holds the shared column names sorted lexically
	cols []string
}

// NewDataset creates a new Dataset by splitting panel in half: the first
// half of the cycles identifies the control law, the rest validates it.
// It returns error if panel is nil or has fewer than two cycles.
func NewDataset(panel *Panel) (*Dataset, error) {
	if panel == nil {
		return nil, fmt.Errorf("nil panel: %w", gait.ErrConfiguration)
	}

	return NewDatasetAt(panel, panel.Len()/2)
}

// NewDatasetAt creates a new Dataset by splitting panel at index m: the
// first m cycles identify the control law, the remaining cycles validate it.
// When m equals the panel length the validation set is empty.
// It returns error if panel is nil, m is out of range or the cycles are
// inconsistent with each other.
func NewDatasetAt(panel *Panel, m int) (*Dataset, error) {
	if panel == nil {
		return nil, fmt.Errorf("nil panel: %w", gait.ErrConfiguration)
	}
	if m < 1 || m > panel.Len() {
		return nil, fmt.Errorf("split index %d out of range for %d cycles: %w",
			m, panel.Len(), gait.ErrConfiguration)
	}

	cs := panel.Cycles()

	return newDataset(cs[:m], cs[m:])
}

// NewDatasetWithValidation creates a new Dataset that identifies the control
// law on every cycle of panel and validates it on every cycle of validation.
// It returns error if either panel is nil or the cycles are inconsistent.
func NewDatasetWithValidation(panel, validation *Panel) (*Dataset, error) {
	if panel == nil || validation == nil {
		return nil, fmt.Errorf("nil panel: %w", gait.ErrConfiguration)
	}

	return newDataset(panel.Cycles(), validation.Cycles())
}

// newDataset validates that all cycles agree on time axis and column names.
func newDataset(ident, valid []*Cycle) (*Dataset, error) {
	ref := ident[0]
	cols := sortedColumns(ref)

	check := func(c *Cycle) error {
		if c.Len() != ref.Len() {
			return fmt.Errorf("cycle %q has %d samples, cycle %q has %d: %w",
				c.Name(), c.Len(), ref.Name(), ref.Len(), gait.ErrConfiguration)
		}
		if !equalAxes(c.time, ref.time) {
			return fmt.Errorf("cycle %q time axis differs from cycle %q: %w",
				c.Name(), ref.Name(), gait.ErrConfiguration)
		}
		if got := sortedColumns(c); !equalNames(got, cols) {
			return fmt.Errorf("cycle %q columns %v differ from cycle %q columns %v: %w",
				c.Name(), got, ref.Name(), cols, gait.ErrConfiguration)
		}

		return nil
	}

	for _, c := range ident[1:] {
		if err := check(c); err != nil {
			return nil, err
		}
	}
	for _, c := range valid {
		if err := check(c); err != nil {
			return nil, err
		}
	}

	return &Dataset{
		ident: ident,
		valid: valid,
		time:  ref.Time(),
		cols:  cols,
	}, nil
}

// Identification returns the identification cycles.
func (d *Dataset) Identification() []*Cycle {
	cs := make([]*Cycle, len(d.ident))
	copy(cs, d.ident)

	return cs
}

// Validation returns the validation cycles.
// The returned slice is empty when the whole dataset identifies the law.
func (d *Dataset) Validation() []*Cycle {
	cs := make([]*Cycle, len(d.valid))
	copy(cs, d.valid)

	return cs
}

// SplitIndex returns the number of identification cycles.
func (d *Dataset) SplitIndex() int {
	return len(d.ident)
}

// Samples returns the length of the canonical time axis.
func (d *Dataset) Samples() int {
	return len(d.time)
}

// Time returns a copy of the canonical time axis.
func (d *Dataset) Time() []float64 {
	t := make([]float64, len(d.time))
	copy(t, d.time)

	return t
}

// Columns returns the shared column names sorted lexically.
func (d *Dataset) Columns() []string {
	cols := make([]string, len(d.cols))
	copy(cols, d.cols)

	return cols
}

// sortedColumns returns the cycle column names sorted lexically.
func sortedColumns(c *Cycle) []string {
	cols := c.Columns()
	sort.Strings(cols)

	return cols
}

// equalAxes reports whether two time axes are sample for sample identical.
func equalAxes(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// equalNames reports whether two name slices are element for element equal.
func equalNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
