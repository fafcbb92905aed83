package operators

import (
	"github.com/notargets/goins/field"
	"github.com/notargets/goins/grid"
)

/*
Adjoint flux kernels reverse the forward scatter patterns exactly: four
neighbor positions per axis for diffusion, eight terms per axis for convection
(each forward contribution touches both the α and β component index sets at
four offset positions each). Every scatter is guarded by the index-set
membership test of the position it targets, so a term is propagated back only
onto degrees of freedom; sensitivities of prescribed boundary and ghost values
belong to the external boundary step.

Scatter kernels accumulate into neighbor slots and therefore run serially.
*/

// DiffusionAdjoint writes the vector-Jacobian product of Diffusion into ubar
func (m *Model) DiffusionAdjoint(ubar, Fbar *field.Vector) (err error) {
	if err = m.checkVector(ubar, "velocity sensitivity"); err != nil {
		return
	}
	if err = m.checkVector(Fbar, "momentum sensitivity"); err != nil {
		return
	}
	ubar.Zero()
	m.scatterDiffusion(ubar, Fbar)
	return
}

// ConvectionAdjoint writes the vector-Jacobian product of Convection at the
// saved forward input u into ubar
func (m *Model) ConvectionAdjoint(ubar, Fbar, u *field.Vector) (err error) {
	if err = m.checkVector(ubar, "velocity sensitivity"); err != nil {
		return
	}
	if err = m.checkVector(Fbar, "momentum sensitivity"); err != nil {
		return
	}
	if err = m.checkVector(u, "velocity"); err != nil {
		return
	}
	ubar.Zero()
	m.scatterConvection(ubar, Fbar, u)
	return
}

// ConvectionDiffusionAdjoint reverses the fused operator: both scatters
// accumulate into the same zeroed output
func (m *Model) ConvectionDiffusionAdjoint(ubar, Fbar, u *field.Vector) (err error) {
	if err = m.checkVector(ubar, "velocity sensitivity"); err != nil {
		return
	}
	if err = m.checkVector(Fbar, "momentum sensitivity"); err != nil {
		return
	}
	if err = m.checkVector(u, "velocity"); err != nil {
		return
	}
	ubar.Zero()
	m.scatterDiffusion(ubar, Fbar)
	m.scatterConvection(ubar, Fbar, u)
	return
}

func (m *Model) scatterDiffusion(ubar, Fbar *field.Vector) {
	var (
		g  = m.Grid
		d  = g.Dim.D()
		nu = m.Visc
	)
	for a := 0; a < d; a++ {
		var (
			a_ = a
			Fa = Fbar.Cmp[a]
			ua = ubar.Cmp[a]
		)
		m.Ctx.RunSerial(g.Iu[a], func(I grid.MultiIndex) {
			var (
				fb = Fa.Data[Fa.Idx(I)]
				i  = ua.Idx(I)
			)
			if fb == 0 {
				return
			}
			for b := 0; b < d; b++ {
				var (
					sb     = ua.Stride(b)
					w1, w2 float64
					k      float64
				)
				if b == a_ {
					ia := I[a_]
					w1 = g.Delta[a_][ia]
					w2 = g.Delta[a_][ia+1]
					k = fb * nu / g.DeltaU[a_][ia]
				} else {
					ib := I[b]
					w1 = g.DeltaU[b][ib-1]
					w2 = g.DeltaU[b][ib]
					k = fb * nu / g.Delta[b][ib]
				}
				if g.Iu[a_].Contains(I.Shift(b, 1)) {
					ua.Data[i+sb] += k / w2
				}
				ua.Data[i] -= k * (1/w2 + 1/w1)
				if g.Iu[a_].Contains(I.Shift(b, -1)) {
					ua.Data[i-sb] += k / w1
				}
			}
		})
	}
}

func (m *Model) scatterConvection(ubar, Fbar, u *field.Vector) {
	var (
		g = m.Grid
		d = g.Dim.D()
	)
	for a := 0; a < d; a++ {
		var (
			a_  = a
			Fa  = Fbar.Cmp[a]
			ufa = u.Cmp[a]
			ba  = ubar.Cmp[a]
		)
		m.Ctx.RunSerial(g.Iu[a], func(I grid.MultiIndex) {
			fb := Fa.Data[Fa.Idx(I)]
			if fb == 0 {
				return
			}
			var (
				i  = ufa.Idx(I)
				sa = ufa.Stride(a_)
				ia = I[a_]
			)
			for b := 0; b < d; b++ {
				sb := ufa.Stride(b)
				if b == a_ {
					var (
						lo, hi = g.ALo[a_][a_], g.AHi[a_][a_]
						k      = fb / g.DeltaU[a_][ia]
						ua1    = 0.5 * (ufa.Data[i-sa] + ufa.Data[i])
						ub1    = lo[ia]*ufa.Data[i-sa] + hi[ia]*ufa.Data[i]
						ua2    = 0.5 * (ufa.Data[i] + ufa.Data[i+sa])
						ub2    = lo[ia+1]*ufa.Data[i] + hi[ia+1]*ufa.Data[i+sa]
					)
					// F -= (ua2·ub2 - ua1·ub1)/Δu, both factors from u[α]
					if g.Iu[a_].Contains(I.Shift(a_, -1)) {
						ba.Data[i-sa] += k * (0.5*ub1 + lo[ia]*ua1)
					}
					ba.Data[i] += k * (0.5*ub1 + hi[ia]*ua1)
					ba.Data[i] -= k * (0.5*ub2 + lo[ia+1]*ua2)
					if g.Iu[a_].Contains(I.Shift(a_, 1)) {
						ba.Data[i+sa] -= k * (0.5*ub2 + hi[ia+1]*ua2)
					}
					continue
				}
				var (
					ufb    = u.Cmp[b]
					bb     = ubar.Cmp[b]
					lo, hi = g.ALo[b][a_], g.AHi[b][a_]
					k      = fb / g.Delta[b][I[b]]
					ua1    = 0.5 * (ufa.Data[i-sb] + ufa.Data[i])
					ub1    = lo[ia]*ufb.Data[i-sb] + hi[ia]*ufb.Data[i-sb+sa]
					ua2    = 0.5 * (ufa.Data[i] + ufa.Data[i+sb])
					ub2    = lo[ia]*ufb.Data[i] + hi[ia]*ufb.Data[i+sa]
				)
				// Advected factor u[α] at four β offsets
				if g.Iu[a_].Contains(I.Shift(b, -1)) {
					ba.Data[i-sb] += k * 0.5 * ub1
				}
				ba.Data[i] += k * 0.5 * (ub1 - ub2)
				if g.Iu[a_].Contains(I.Shift(b, 1)) {
					ba.Data[i+sb] -= k * 0.5 * ub2
				}
				// Transporting factor u[β] at four offsets
				if J := I.Shift(b, -1); g.Iu[b].Contains(J) {
					bb.Data[i-sb] += k * lo[ia] * ua1
				}
				if J := I.Shift(b, -1).Shift(a_, 1); g.Iu[b].Contains(J) {
					bb.Data[i-sb+sa] += k * hi[ia] * ua1
				}
				if g.Iu[b].Contains(I) {
					bb.Data[i] -= k * lo[ia] * ua2
				}
				if J := I.Shift(a_, 1); g.Iu[b].Contains(J) {
					bb.Data[i+sa] -= k * hi[ia] * ua2
				}
			}
		})
	}
}
