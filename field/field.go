package field

import (
	"fmt"

	"github.com/notargets/goins/grid"
)

/*
Scalar is a dense field over the extended domain, stored flat in the row-major
ordering of grid.IndexSet (last axis fastest). Neighbor access along an axis is
a fixed-stride step in the flat slice, which is what keeps the stencil kernels
free of per-access index arithmetic.

Fields are allocated once per setup and mutated in place; they are never
resized.
*/
type Scalar struct {
	Data []float64
	N    grid.MultiIndex // extents
	strd grid.MultiIndex
}

func NewScalar(g *grid.Grid) *Scalar {
	return NewScalarShape(g.N)
}

func NewScalarShape(n grid.MultiIndex) (f *Scalar) {
	f = &Scalar{N: n}
	f.strd[2] = 1
	f.strd[1] = n[2]
	f.strd[0] = n[1] * n[2]
	f.Data = make([]float64, n[0]*f.strd[0])
	return
}

// Idx returns the flat position of I
func (f *Scalar) Idx(I grid.MultiIndex) int {
	return I[0]*f.strd[0] + I[1]*f.strd[1] + I[2]*f.strd[2]
}

// Stride returns the flat step corresponding to one unit offset along axis
func (f *Scalar) Stride(axis int) int { return f.strd[axis] }

func (f *Scalar) At(I grid.MultiIndex) float64     { return f.Data[f.Idx(I)] }
func (f *Scalar) Set(I grid.MultiIndex, v float64) { f.Data[f.Idx(I)] = v }
func (f *Scalar) AddAt(I grid.MultiIndex, v float64) {
	f.Data[f.Idx(I)] += v
}

func (f *Scalar) Zero() {
	for i := range f.Data {
		f.Data[i] = 0
	}
}

func (f *Scalar) Fill(v float64) {
	for i := range f.Data {
		f.Data[i] = v
	}
}

func (f *Scalar) Clone() (r *Scalar) {
	r = NewScalarShape(f.N)
	copy(r.Data, f.Data)
	return
}

// Inner is the unweighted inner product of two commensurate scalar fields
func Inner(a, b *Scalar) (dot float64) {
	if len(a.Data) != len(b.Data) {
		panic(fmt.Sprintf("inner product of incommensurate fields: %d vs %d",
			len(a.Data), len(b.Data)))
	}
	for i, v := range a.Data {
		dot += v * b.Data[i]
	}
	return
}

// InnerOn restricts the inner product to an index set
func InnerOn(is grid.IndexSet, a, b *Scalar) (dot float64) {
	for l, n := 0, is.Len(); l < n; l++ {
		I := is.At(l)
		dot += a.At(I) * b.At(I)
	}
	return
}

// Vector is a D-tuple of scalar fields, one per velocity component. Components
// share the extended extents; the per-component interior index sets Iu[α]
// select each component's degrees of freedom.
type Vector struct {
	Cmp []*Scalar
}

func NewVector(g *grid.Grid) (v *Vector) {
	v = &Vector{Cmp: make([]*Scalar, g.Dim.D())}
	for a := range v.Cmp {
		v.Cmp[a] = NewScalar(g)
	}
	return
}

func (v *Vector) Len() int { return len(v.Cmp) }

func (v *Vector) Zero() {
	for _, c := range v.Cmp {
		c.Zero()
	}
}

func (v *Vector) Clone() (r *Vector) {
	r = &Vector{Cmp: make([]*Scalar, len(v.Cmp))}
	for a, c := range v.Cmp {
		r.Cmp[a] = c.Clone()
	}
	return
}

// InnerVec sums the component-wise inner products
func InnerVec(a, b *Vector) (dot float64) {
	if a.Len() != b.Len() {
		panic(fmt.Sprintf("inner product of incommensurate vector fields: %d vs %d components",
			a.Len(), b.Len()))
	}
	for i, c := range a.Cmp {
		dot += Inner(c, b.Cmp[i])
	}
	return
}
