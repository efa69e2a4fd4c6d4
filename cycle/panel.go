package cycle

import (
	"fmt"

	gait "github.com/milosgajdos/go-gaitid"
)

// Panel is an ordered collection of uniquely named cycles.
type Panel struct {
	// cycles holds the cycles in panel order
	cycles []*Cycle
	// index maps cycle names to their positions
	index map[string]int
}

// NewPanel creates a new Panel from the given cycles and returns it.
// It returns error if no cycles are given, a cycle is nil or a name repeats.
func NewPanel(cycles ...*Cycle) (*Panel, error) {
	if len(cycles) == 0 {
		return nil, fmt.Errorf("empty panel: %w", gait.ErrConfiguration)
	}

	index := make(map[string]int, len(cycles))
	cs := make([]*Cycle, len(cycles))
	for i, c := range cycles {
		if c == nil {
			return nil, fmt.Errorf("nil cycle at position %d: %w", i, gait.ErrConfiguration)
		}
		if _, ok := index[c.Name()]; ok {
			return nil, fmt.Errorf("panel repeats cycle %q: %w", c.Name(), gait.ErrConfiguration)
		}
		index[c.Name()] = i
		cs[i] = c
	}

	return &Panel{cycles: cs, index: index}, nil
}

// Len returns the number of cycles in the panel.
func (p *Panel) Len() int {
	return len(p.cycles)
}

// Names returns the cycle names in panel order.
func (p *Panel) Names() []string {
	names := make([]string, len(p.cycles))
	for i, c := range p.cycles {
		names[i] = c.Name()
	}

	return names
}

// Cycles returns the cycles in panel order.
// Cycles are immutable so the returned slice shares them with the panel.
func (p *Panel) Cycles() []*Cycle {
	cs := make([]*Cycle, len(p.cycles))
	copy(cs, p.cycles)

	return cs
}

// ByName returns the cycle with the given name.
// It returns error if the panel has no such cycle.
func (p *Panel) ByName(name string) (*Cycle, error) {
	i, ok := p.index[name]
	if !ok {
		return nil, fmt.Errorf("panel has no cycle %q: %w", name, gait.ErrConfiguration)
	}

	return p.cycles[i], nil
}
