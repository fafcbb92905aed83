package operators

import (
	"github.com/notargets/goins/field"
	"github.com/notargets/goins/grid"
)

// Divergence writes the discrete divergence of u at every interior pressure
// point: div[I] = Σ_α (u[α][I] - u[α][I-e(α)]) / Δ[α]
func (m *Model) Divergence(u *field.Vector, div *field.Scalar) (err error) {
	if err = m.checkVector(u, "velocity"); err != nil {
		return
	}
	if err = m.checkScalar(div, "divergence"); err != nil {
		return
	}
	var (
		g = m.Grid
		d = g.Dim.D()
	)
	m.Ctx.Run(g.Ip, func(I grid.MultiIndex) {
		var s float64
		for a := 0; a < d; a++ {
			ua := u.Cmp[a]
			i := ua.Idx(I)
			s += (ua.Data[i] - ua.Data[i-ua.Stride(a)]) / g.Delta[a][I[a]]
		}
		div.Data[div.Idx(I)] = s
	})
	return
}

// DivergenceAdjoint scatters a divergence sensitivity back onto the faces the
// forward stencil read from, sign-flipped for the lower neighbor. The output
// is zeroed first; contributions are additive only at touched positions.
func (m *Model) DivergenceAdjoint(ubar *field.Vector, divbar *field.Scalar) (err error) {
	if err = m.checkVector(ubar, "velocity sensitivity"); err != nil {
		return
	}
	if err = m.checkScalar(divbar, "divergence sensitivity"); err != nil {
		return
	}
	var (
		g = m.Grid
		d = g.Dim.D()
	)
	ubar.Zero()
	m.Ctx.RunSerial(g.Ip, func(I grid.MultiIndex) {
		for a := 0; a < d; a++ {
			var (
				ua = ubar.Cmp[a]
				i  = ua.Idx(I)
				k  = divbar.Data[divbar.Idx(I)] / g.Delta[a][I[a]]
			)
			ua.Data[i] += k
			ua.Data[i-ua.Stride(a)] -= k
		}
	})
	return
}

// PressureGradient writes G[α][I] = (p[I+e(α)] - p[I]) / Δu[α] at every
// interior face of each component
func (m *Model) PressureGradient(p *field.Scalar, G *field.Vector) (err error) {
	if err = m.checkScalar(p, "pressure"); err != nil {
		return
	}
	if err = m.checkVector(G, "gradient"); err != nil {
		return
	}
	var (
		g = m.Grid
		d = g.Dim.D()
	)
	for a := 0; a < d; a++ {
		var (
			a_  = a
			Ga  = G.Cmp[a]
			du  = g.DeltaU[a]
			str = Ga.Stride(a)
		)
		m.Ctx.Run(g.Iu[a], func(I grid.MultiIndex) {
			i := p.Idx(I)
			Ga.Data[i] = (p.Data[i+str] - p.Data[i]) / du[I[a_]]
		})
	}
	return
}

// PressureGradientAdjoint is the negative-divergence-like scatter of a
// gradient sensitivity back onto pressure points
func (m *Model) PressureGradientAdjoint(pbar *field.Scalar, Gbar *field.Vector) (err error) {
	if err = m.checkScalar(pbar, "pressure sensitivity"); err != nil {
		return
	}
	if err = m.checkVector(Gbar, "gradient sensitivity"); err != nil {
		return
	}
	var (
		g = m.Grid
		d = g.Dim.D()
	)
	pbar.Zero()
	for a := 0; a < d; a++ {
		var (
			a_  = a
			Ga  = Gbar.Cmp[a]
			du  = g.DeltaU[a]
			str = pbar.Stride(a)
		)
		m.Ctx.RunSerial(g.Iu[a], func(I grid.MultiIndex) {
			var (
				i = pbar.Idx(I)
				k = Ga.Data[Ga.Idx(I)] / du[I[a_]]
			)
			pbar.Data[i+str] += k
			pbar.Data[i] -= k
		})
	}
	return
}

// ApplyPressure projects u in place: u[α][I] -= (p[I+e(α)] - p[I]) / Δu[α],
// reusing the gradient formula without materializing G
func (m *Model) ApplyPressure(u *field.Vector, p *field.Scalar) (err error) {
	if err = m.checkVector(u, "velocity"); err != nil {
		return
	}
	if err = m.checkScalar(p, "pressure"); err != nil {
		return
	}
	var (
		g = m.Grid
		d = g.Dim.D()
	)
	for a := 0; a < d; a++ {
		var (
			a_  = a
			ua  = u.Cmp[a]
			du  = g.DeltaU[a]
			str = ua.Stride(a)
		)
		m.Ctx.Run(g.Iu[a], func(I grid.MultiIndex) {
			i := ua.Idx(I)
			ua.Data[i] -= (p.Data[i+str] - p.Data[i]) / du[I[a_]]
		})
	}
	return
}
