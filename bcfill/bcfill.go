// Package bcfill applies boundary conditions by filling the ghost slots of
// extended fields. It is the separate boundary-application step the operator
// core requires its callers to run: operators never mutate ghost values
// themselves. Values are homogeneous; a boundary-condition collaborator with
// time-dependent values layers on top by overwriting the filled slabs.
package bcfill

import (
	"fmt"

	"github.com/notargets/goins/field"
	"github.com/notargets/goins/grid"
)

// slab returns the full cross-section of the extended domain at position pos
// along axis
func slab(g *grid.Grid, axis, pos int) (s grid.IndexSet) {
	for d := 0; d < grid.MaxDim; d++ {
		s.Lo[d], s.Hi[d] = 0, g.N[d]
	}
	s.Lo[axis], s.Hi[axis] = pos, pos+1
	return
}

func copySlab(f *field.Scalar, dst, src grid.IndexSet, scale float64) {
	for l, n := 0, dst.Len(); l < n; l++ {
		f.Set(dst.At(l), scale*f.At(src.At(l)))
	}
}

func zeroSlab(f *field.Scalar, s grid.IndexSet) {
	for l, n := 0, s.Len(); l < n; l++ {
		f.Set(s.At(l), 0)
	}
}

// ApplyFaceFlux fills the boundary faces of a face-centered vector such as a
// pressure gradient or a diffusive flux: periodic axes wrap the seam face,
// walls take a zero normal flux, outflow extrapolates. Cross-axis slots wrap
// or copy with zero gradient so corner averages stay consistent.
func ApplyFaceFlux(g *grid.Grid, f *field.Vector) (err error) {
	var (
		d = g.Dim.D()
	)
	if f.Len() != d {
		err = fmt.Errorf("dimension mismatch: flux has %d components, grid is %dD", f.Len(), d)
		return
	}
	for a := 0; a < d; a++ {
		var (
			n = g.N[a] - 2
		)
		for c := 0; c < d; c++ {
			fc := f.Cmp[c]
			if c == a {
				switch g.BC[a][0] {
				case grid.BCPeriodic:
					copySlab(fc, slab(g, a, 0), slab(g, a, n), 1)
				case grid.BCDirichlet, grid.BCSymmetric:
					zeroSlab(fc, slab(g, a, 0))
				case grid.BCPressure:
					copySlab(fc, slab(g, a, 0), slab(g, a, 1), 1)
				}
				switch g.BC[a][1] {
				case grid.BCPeriodic:
					copySlab(fc, slab(g, a, n+1), slab(g, a, 1), 1)
				case grid.BCDirichlet, grid.BCSymmetric:
					zeroSlab(fc, slab(g, a, n))
					zeroSlab(fc, slab(g, a, n+1))
				case grid.BCPressure:
					copySlab(fc, slab(g, a, n+1), slab(g, a, n), 1)
				}
				continue
			}
			if g.BC[a][0] == grid.BCPeriodic {
				copySlab(fc, slab(g, a, 0), slab(g, a, n), 1)
			} else {
				copySlab(fc, slab(g, a, 0), slab(g, a, 1), 1)
			}
			if g.BC[a][1] == grid.BCPeriodic {
				copySlab(fc, slab(g, a, n+1), slab(g, a, 1), 1)
			} else {
				copySlab(fc, slab(g, a, n+1), slab(g, a, n), 1)
			}
		}
	}
	return
}

// ApplyTensor fills the ghost ring of a cell-centered tensor field, all
// components at once: periodic axes wrap, all other tags extrapolate with
// zero gradient
func ApplyTensor(g *grid.Grid, t *field.Tensor) {
	var (
		d = g.Dim.D()
	)
	for a := 0; a < d; a++ {
		var (
			n = g.N[a] - 2
		)
		if g.BC[a][0] == grid.BCPeriodic {
			copyTensorSlab(t, slab(g, a, 0), slab(g, a, n))
			copyTensorSlab(t, slab(g, a, n+1), slab(g, a, 1))
			continue
		}
		copyTensorSlab(t, slab(g, a, 0), slab(g, a, 1))
		copyTensorSlab(t, slab(g, a, n+1), slab(g, a, n))
	}
}

func copyTensorSlab(t *field.Tensor, dst, src grid.IndexSet) {
	var (
		dd = t.D * t.D
	)
	for l, n := 0, dst.Len(); l < n; l++ {
		var (
			di = t.Idx(dst.At(l))
			si = t.Idx(src.At(l))
		)
		copy(t.Data[di:di+dd], t.Data[si:si+dd])
	}
}

// ApplyPressure fills the pressure ghost ring: periodic axes wrap, all other
// tags extrapolate with zero gradient
func ApplyPressure(g *grid.Grid, p *field.Scalar) {
	var (
		d = g.Dim.D()
	)
	for a := 0; a < d; a++ {
		var (
			n = g.N[a] - 2 // interior cells
		)
		if g.BC[a][0] == grid.BCPeriodic {
			copySlab(p, slab(g, a, 0), slab(g, a, n), 1)
			copySlab(p, slab(g, a, n+1), slab(g, a, 1), 1)
			continue
		}
		copySlab(p, slab(g, a, 0), slab(g, a, 1), 1)
		copySlab(p, slab(g, a, n+1), slab(g, a, n), 1)
	}
}

// ApplyVelocity fills ghost and boundary-face slots of every velocity
// component. Normal components get their no-penetration or wrap values;
// tangential components mirror, negate or wrap so that face averages honor
// the wall condition.
func ApplyVelocity(g *grid.Grid, u *field.Vector) (err error) {
	var (
		d = g.Dim.D()
	)
	if u.Len() != d {
		err = fmt.Errorf("dimension mismatch: velocity has %d components, grid is %dD", u.Len(), d)
		return
	}
	for a := 0; a < d; a++ {
		var (
			n = g.N[a] - 2
		)
		for c := 0; c < d; c++ {
			uc := u.Cmp[c]
			if c == a {
				switch g.BC[a][0] {
				case grid.BCPeriodic:
					// Face 0 is the wrap image of the DOF at face n
					copySlab(uc, slab(g, a, 0), slab(g, a, n), 1)
				case grid.BCDirichlet, grid.BCSymmetric:
					// No-penetration: the normal boundary face vanishes
					zeroSlab(uc, slab(g, a, 0))
				case grid.BCPressure:
					copySlab(uc, slab(g, a, 0), slab(g, a, 1), 1)
				}
				switch g.BC[a][1] {
				case grid.BCPeriodic:
					copySlab(uc, slab(g, a, n+1), slab(g, a, 1), 1)
				case grid.BCDirichlet, grid.BCSymmetric:
					zeroSlab(uc, slab(g, a, n))
					zeroSlab(uc, slab(g, a, n+1))
				case grid.BCPressure:
					copySlab(uc, slab(g, a, n), slab(g, a, n-1), 1)
					copySlab(uc, slab(g, a, n+1), slab(g, a, n), 1)
				}
				continue
			}
			switch g.BC[a][0] {
			case grid.BCPeriodic:
				copySlab(uc, slab(g, a, 0), slab(g, a, n), 1)
			case grid.BCDirichlet:
				copySlab(uc, slab(g, a, 0), slab(g, a, 1), -1)
			case grid.BCSymmetric, grid.BCPressure:
				copySlab(uc, slab(g, a, 0), slab(g, a, 1), 1)
			}
			switch g.BC[a][1] {
			case grid.BCPeriodic:
				copySlab(uc, slab(g, a, n+1), slab(g, a, 1), 1)
			case grid.BCDirichlet:
				copySlab(uc, slab(g, a, n+1), slab(g, a, n), -1)
			case grid.BCSymmetric, grid.BCPressure:
				copySlab(uc, slab(g, a, n+1), slab(g, a, n), 1)
			}
		}
	}
	return
}
