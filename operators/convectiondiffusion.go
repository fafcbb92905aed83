package operators

import (
	"github.com/notargets/goins/field"
	"github.com/notargets/goins/grid"
)

/*
Flux operators accumulate into the caller's F; they never zero it. Convection
enters the momentum equation negatively, diffusion positively, and the fused
variant sums the identical per-face expressions so it is numerically equal to
calling the two separately.

Width conventions on the staggered layout, for component α and contributing
axis β:
  - β == α: the half-differences span pressure cells (width Δ[α]) and the
    control volume is the staggered cell (width Δu[α]).
  - β != α: the half-differences span staggered cells (width Δu[β]) and the
    control volume is the pressure cell (width Δ[β]).
This asymmetry is what makes the stencil a finite-volume discretization rather
than a naive central difference.
*/

// diffusionTerm returns the axis-β viscous contribution to F[α][I]
func diffusionTerm(g *grid.Grid, nu float64, u *field.Vector, a, b int, I grid.MultiIndex) float64 {
	var (
		ua = u.Cmp[a]
		i  = ua.Idx(I)
		sb = ua.Stride(b)
	)
	if b == a {
		ia := I[a]
		d1 := (ua.Data[i] - ua.Data[i-sb]) / g.Delta[a][ia]
		d2 := (ua.Data[i+sb] - ua.Data[i]) / g.Delta[a][ia+1]
		return nu * (d2 - d1) / g.DeltaU[a][ia]
	}
	ib := I[b]
	d1 := (ua.Data[i] - ua.Data[i-sb]) / g.DeltaU[b][ib-1]
	d2 := (ua.Data[i+sb] - ua.Data[i]) / g.DeltaU[b][ib]
	return nu * (d2 - d1) / g.Delta[b][ib]
}

// convectionTerm returns the axis-β momentum-flux contribution to F[α][I]
// (sign included). The advected velocity u[α] is the arithmetic mean of its
// two axis-β neighbors; the transporting velocity u[β] is interpolated with
// the precomputed weights A.
func convectionTerm(g *grid.Grid, u *field.Vector, a, b int, I grid.MultiIndex) float64 {
	var (
		ua = u.Cmp[a]
		i  = ua.Idx(I)
		sa = ua.Stride(a)
		sb = ua.Stride(b)
		ia = I[a]
	)
	if b == a {
		var (
			lo, hi = g.ALo[a][a], g.AHi[a][a]
			ua1    = 0.5 * (ua.Data[i-sa] + ua.Data[i])
			ub1    = lo[ia]*ua.Data[i-sa] + hi[ia]*ua.Data[i]
			ua2    = 0.5 * (ua.Data[i] + ua.Data[i+sa])
			ub2    = lo[ia+1]*ua.Data[i] + hi[ia+1]*ua.Data[i+sa]
		)
		return -(ua2*ub2 - ua1*ub1) / g.DeltaU[a][ia]
	}
	var (
		ub     = u.Cmp[b]
		lo, hi = g.ALo[b][a], g.AHi[b][a]
		ua1    = 0.5 * (ua.Data[i-sb] + ua.Data[i])
		ub1    = lo[ia]*ub.Data[i-sb] + hi[ia]*ub.Data[i-sb+sa]
		ua2    = 0.5 * (ua.Data[i] + ua.Data[i+sb])
		ub2    = lo[ia]*ub.Data[i] + hi[ia]*ub.Data[i+sa]
	)
	return -(ua2*ub2 - ua1*ub1) / g.Delta[b][I[b]]
}

// Diffusion accumulates the viscous flux differences into F
func (m *Model) Diffusion(u, F *field.Vector) (err error) {
	if err = m.checkVector(u, "velocity"); err != nil {
		return
	}
	if err = m.checkVector(F, "momentum"); err != nil {
		return
	}
	var (
		g  = m.Grid
		d  = g.Dim.D()
		nu = m.Visc
	)
	for a := 0; a < d; a++ {
		var (
			a_ = a
			Fa = F.Cmp[a]
		)
		m.Ctx.Run(g.Iu[a], func(I grid.MultiIndex) {
			var s float64
			for b := 0; b < d; b++ {
				s += diffusionTerm(g, nu, u, a_, b, I)
			}
			Fa.Data[Fa.Idx(I)] += s
		})
	}
	return
}

// Convection accumulates the momentum-flux differences into F
func (m *Model) Convection(u, F *field.Vector) (err error) {
	if err = m.checkVector(u, "velocity"); err != nil {
		return
	}
	if err = m.checkVector(F, "momentum"); err != nil {
		return
	}
	var (
		g = m.Grid
		d = g.Dim.D()
	)
	for a := 0; a < d; a++ {
		var (
			a_ = a
			Fa = F.Cmp[a]
		)
		m.Ctx.Run(g.Iu[a], func(I grid.MultiIndex) {
			var s float64
			for b := 0; b < d; b++ {
				s += convectionTerm(g, u, a_, b, I)
			}
			Fa.Data[Fa.Idx(I)] += s
		})
	}
	return
}

// ConvectionDiffusion fuses the two flux loops over the shared face indices.
// Numerically identical to calling Diffusion then Convection on the same
// input; the fusion only saves the second pass.
func (m *Model) ConvectionDiffusion(u, F *field.Vector) (err error) {
	if err = m.checkVector(u, "velocity"); err != nil {
		return
	}
	if err = m.checkVector(F, "momentum"); err != nil {
		return
	}
	var (
		g  = m.Grid
		d  = g.Dim.D()
		nu = m.Visc
	)
	for a := 0; a < d; a++ {
		var (
			a_ = a
			Fa = F.Cmp[a]
		)
		m.Ctx.Run(g.Iu[a], func(I grid.MultiIndex) {
			var s float64
			for b := 0; b < d; b++ {
				s += diffusionTerm(g, nu, u, a_, b, I)
				s += convectionTerm(g, u, a_, b, I)
			}
			Fa.Data[Fa.Idx(I)] += s
		})
	}
	return
}
