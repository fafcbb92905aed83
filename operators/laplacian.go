package operators

import (
	"fmt"

	"github.com/notargets/goins/field"
	"github.com/notargets/goins/grid"
	"github.com/notargets/goins/utils"
)

/*
Laplacian writes div(grad p) at every interior pressure point as a 2·D-point
stencil with boundary-aware substitution: a neighbor outside the interior set
is replaced according to the axis boundary tag instead of being read from the
ghost region, so the stencil form and the assembled matrix agree entry for
entry.

Per face the coupling coefficient is 1/(Δ[α]·Δu[α]); rows are the
volume-scaled coefficients Ω/Δ/Δu divided by the cell volume Ω, which keeps
Laplacian(p) identical to Divergence(PressureGradient(p)) on periodic axes.
*/
func (m *Model) Laplacian(p *field.Scalar, L *field.Scalar) (err error) {
	if err = m.checkScalar(p, "pressure"); err != nil {
		return
	}
	if err = m.checkScalar(L, "laplacian"); err != nil {
		return
	}
	var (
		g = m.Grid
		d = g.Dim.D()
	)
	m.Ctx.Run(g.Ip, func(I grid.MultiIndex) {
		var s float64
		for a := 0; a < d; a++ {
			var (
				ia = I[a]
				c1 = 1. / (g.Delta[a][ia] * g.DeltaU[a][ia-1])
				c2 = 1. / (g.Delta[a][ia] * g.DeltaU[a][ia])
				pI = p.At(I)
			)
			// Lower face
			if J := I.Shift(a, -1); g.Ip.Contains(J) {
				s += c1 * (p.At(J) - pI)
			} else {
				switch g.BC[a][0] {
				case grid.BCPeriodic:
					J[a] = g.Ip.Hi[a] - 1
					s += c1 * (p.At(J) - pI)
				case grid.BCDirichlet:
					s += c1 * (0 - pI) // homogeneous ghost value
				case grid.BCSymmetric:
					// mirrored neighbor is I itself: zero net flux
				case grid.BCPressure:
					// free boundary: coupling dropped
				}
			}
			// Upper face
			if J := I.Shift(a, 1); g.Ip.Contains(J) {
				s += c2 * (p.At(J) - pI)
			} else {
				switch g.BC[a][1] {
				case grid.BCPeriodic:
					J[a] = g.Ip.Lo[a]
					s += c2 * (p.At(J) - pI)
				case grid.BCDirichlet:
					s += c2 * (0 - pI)
				case grid.BCSymmetric:
				case grid.BCPressure:
				}
			}
		}
		L.Data[L.Idx(I)] = s
	})
	return
}

// LaplacianMatrix assembles the stencil form as an explicit sparse operator
// over the interior pressure points, in the interior set's own linear
// ordering. Entries accumulate through a growable coordinate structure and
// finalize to CSR; the boundary-adjusted entry count varies by tag, so nothing
// is preallocated.
func (m *Model) LaplacianMatrix() (R utils.CSR, err error) {
	var (
		g   = m.Grid
		d   = g.Dim.D()
		n   = g.Np()
		dok = utils.NewDOK(n, n)
	)
	for l := 0; l < n; l++ {
		I := g.Ip.At(l)
		for a := 0; a < d; a++ {
			var (
				ia = I[a]
				c1 = 1. / (g.Delta[a][ia] * g.DeltaU[a][ia-1])
				c2 = 1. / (g.Delta[a][ia] * g.DeltaU[a][ia])
			)
			if err = m.assembleFace(dok, l, I, a, 0, -1, c1); err != nil {
				return
			}
			if err = m.assembleFace(dok, l, I, a, 1, 1, c2); err != nil {
				return
			}
		}
	}
	R = dok.ToCSR()
	return
}

// assembleFace adds one face coupling of row l: the interior three-point
// coefficients when the neighbor is interior, the tag-substituted coupling
// otherwise
func (m *Model) assembleFace(dok utils.DOK, l int, I grid.MultiIndex,
	axis, side, dir int, c float64) (err error) {
	var (
		g = m.Grid
		J = I.Shift(axis, dir)
	)
	if g.Ip.Contains(J) {
		dok.Add(l, g.Ip.LinearOf(J), c)
		dok.Add(l, l, -c)
		return
	}
	switch g.BC[axis][side] {
	case grid.BCPeriodic:
		// Wrap to the opposite interior index
		if dir < 0 {
			J[axis] = g.Ip.Hi[axis] - 1
		} else {
			J[axis] = g.Ip.Lo[axis]
		}
		dok.Add(l, g.Ip.LinearOf(J), c)
		dok.Add(l, l, -c)
	case grid.BCDirichlet:
		// Homogeneous ghost: the off-diagonal term is dropped
		dok.Add(l, l, -c)
	case grid.BCSymmetric:
		// Mirror to the nearest interior index, which is the row itself;
		// the pair cancels in the accumulator
		dok.Add(l, l, c)
		dok.Add(l, l, -c)
	case grid.BCPressure:
		// Zero-gradient free boundary: coupling dropped entirely
	default:
		err = fmt.Errorf("unsupported boundary tag %v on axis %d side %d in matrix assembly",
			g.BC[axis][side], axis, side)
	}
	return
}

// InteriorIndex maps the Laplacian matrix's row ordering to flat positions in
// an extended scalar field, for gathering and scattering solver vectors
func (m *Model) InteriorIndex() (I utils.Index) {
	var (
		g = m.Grid
		n = g.Np()
	)
	I = utils.NewIndex(n)
	for l := 0; l < n; l++ {
		I[l] = g.Flat(g.Ip.At(l))
	}
	return
}
