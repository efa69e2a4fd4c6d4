package solver

import (
	"fmt"

	gait "github.com/milosgajdos/go-gaitid"
)

// Mask flags control law gains excluded from identification. A set entry at
// control j and sensor k forces the gain coupling sensor k into control j to
// zero and drops its column from the design matrix.
type Mask struct {
	// q is the number of controls
	q int
	// p is the number of sensors
	p int
	// omit flags omitted gains in row major order
	omit []bool
}

// NewMask creates a new all clear Mask for q controls and p sensors.
// It returns error if q or p are not positive.
func NewMask(q, p int) (*Mask, error) {
	if q <= 0 || p <= 0 {
		return nil, fmt.Errorf("invalid mask dimensions: [%d x %d]: %w", q, p, gait.ErrInvalidShape)
	}

	return &Mask{
		q:    q,
		p:    p,
		omit: make([]bool, q*p),
	}, nil
}

// NewMaskFrom creates a new Mask for q controls and p sensors from omission
// flags laid out in row major order. The flags are copied.
// It returns error if q or p are not positive or omit has the wrong length.
func NewMaskFrom(q, p int, omit []bool) (*Mask, error) {
	m, err := NewMask(q, p)
	if err != nil {
		return nil, err
	}
	if len(omit) != q*p {
		return nil, fmt.Errorf("omission flags: %d, want %d: %w", len(omit), q*p, gait.ErrShapeMismatch)
	}
	copy(m.omit, omit)

	return m, nil
}

// Omit flags the gain coupling sensor k into control j as omitted.
// It panics if j or k are out of range.
func (m *Mask) Omit(j, k int) {
	m.omit[m.at(j, k)] = true
}

// Keep clears the omission flag of the gain coupling sensor k into control j.
// It panics if j or k are out of range.
func (m *Mask) Keep(j, k int) {
	m.omit[m.at(j, k)] = false
}

// At reports whether the gain coupling sensor k into control j is omitted.
// It panics if j or k are out of range.
func (m *Mask) At(j, k int) bool {
	return m.omit[m.at(j, k)]
}

// Dims returns the number of controls and sensors the mask covers.
func (m *Mask) Dims() (q, p int) {
	return m.q, m.p
}

// Count returns the number of omitted gains.
func (m *Mask) Count() int {
	count := 0
	for _, om := range m.omit {
		if om {
			count++
		}
	}

	return count
}

// Clone returns a deep copy of the mask. Cloning a nil mask returns nil.
func (m *Mask) Clone() *Mask {
	if m == nil {
		return nil
	}

	omit := make([]bool, len(m.omit))
	copy(omit, m.omit)

	return &Mask{
		q:    m.q,
		p:    m.p,
		omit: omit,
	}
}

func (m *Mask) at(j, k int) int {
	if j < 0 || j >= m.q || k < 0 || k >= m.p {
		panic(fmt.Sprintf("gait: gain index [%d, %d] out of range [%d x %d]", j, k, m.q, m.p))
	}

	return j*m.p + k
}

// blockKeep returns the column keep flags of a single time block: one flag
// per gain column in row major order followed by one flag per nominal column.
// A nil mask keeps every column. Both the design matrix assembly and the
// solution deconstruction walk blocks through these flags so the two can
// never disagree on the column layout.
func blockKeep(mask *Mask, q, p int) []bool {
	keep := make([]bool, q*p+q)
	for i := range keep {
		keep[i] = true
	}
	if mask != nil {
		for i, om := range mask.omit {
			keep[i] = !om
		}
	}

	return keep
}
