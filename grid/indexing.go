package grid

import "fmt"

// MaxDim is the largest supported grid dimension. 2D grids use a degenerate
// third axis of extent one so that all kernels iterate the same way.
const MaxDim = 3

// MultiIndex addresses one cell (or face) of the extended domain. The unused
// third component of a 2D index is always zero.
type MultiIndex [MaxDim]int

func (I MultiIndex) Add(J MultiIndex) (R MultiIndex) {
	for d := 0; d < MaxDim; d++ {
		R[d] = I[d] + J[d]
	}
	return
}

func (I MultiIndex) Sub(J MultiIndex) (R MultiIndex) {
	for d := 0; d < MaxDim; d++ {
		R[d] = I[d] - J[d]
	}
	return
}

// Shift returns I moved n steps along axis. Stencils use only single or double
// applications of the unit offset.
func (I MultiIndex) Shift(axis, n int) (R MultiIndex) {
	R = I
	R[axis] += n
	return
}

// Offset returns the canonical unit step along axis
func Offset(axis int) (e MultiIndex) {
	e[axis] = 1
	return
}

// IndexSet is a rectangular half-open range [Lo, Hi) of multi-indices with a
// row-major linear ordering (last axis fastest). Membership tests against an
// IndexSet are the only legal way for an operator to decide whether a neighbor
// access is interior.
type IndexSet struct {
	Lo, Hi MultiIndex
}

func NewIndexSet(lo, hi MultiIndex) (s IndexSet, err error) {
	for d := 0; d < MaxDim; d++ {
		if hi[d] < lo[d] {
			err = fmt.Errorf("invalid index set: hi < lo on axis %d: [%d, %d)", d, lo[d], hi[d])
			return
		}
	}
	s = IndexSet{Lo: lo, Hi: hi}
	return
}

// Span returns the extent of the set along axis
func (s IndexSet) Span(axis int) int {
	return s.Hi[axis] - s.Lo[axis]
}

// Len returns the number of indices in the set
func (s IndexSet) Len() int {
	n := 1
	for d := 0; d < MaxDim; d++ {
		n *= s.Span(d)
	}
	return n
}

// Contains reports whether I lies inside the set
func (s IndexSet) Contains(I MultiIndex) bool {
	for d := 0; d < MaxDim; d++ {
		if I[d] < s.Lo[d] || I[d] >= s.Hi[d] {
			return false
		}
	}
	return true
}

// At returns the multi-index at linear position lin in the set's ordering
func (s IndexSet) At(lin int) (I MultiIndex) {
	var (
		n1 = s.Span(1)
		n2 = s.Span(2)
	)
	I[2] = s.Lo[2] + lin%n2
	lin /= n2
	I[1] = s.Lo[1] + lin%n1
	I[0] = s.Lo[0] + lin/n1
	return
}

// LinearOf returns the linear position of I in the set's ordering. I must be a
// member of the set.
func (s IndexSet) LinearOf(I MultiIndex) int {
	var (
		n1 = s.Span(1)
		n2 = s.Span(2)
	)
	return ((I[0]-s.Lo[0])*n1+(I[1]-s.Lo[1]))*n2 + (I[2] - s.Lo[2])
}
