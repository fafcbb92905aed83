package operators

import (
	"fmt"

	"github.com/notargets/goins/bcfill"
	"github.com/notargets/goins/field"
	"github.com/notargets/goins/grid"
)

// ConvectionDiffusionTemp accumulates the transported-temperature fluxes into
// the caller's buffer c: diffusive face gradients scaled by the diffusivity
// minus convective face fluxes with upwind-free central averaging
func (m *Model) ConvectionDiffusionTemp(u *field.Vector, temp, c *field.Scalar) (err error) {
	if err = m.checkVector(u, "velocity"); err != nil {
		return
	}
	if err = m.checkScalar(temp, "temperature"); err != nil {
		return
	}
	if err = m.checkScalar(c, "temperature rhs"); err != nil {
		return
	}
	if m.Temp == nil {
		err = fmt.Errorf("temperature parameters are not configured on this model")
		return
	}
	var (
		g     = m.Grid
		d     = g.Dim.D()
		kappa = m.Temp.Diffusivity
	)
	m.Ctx.Run(g.Ip, func(I grid.MultiIndex) {
		var (
			i = temp.Idx(I)
			s float64
		)
		for b := 0; b < d; b++ {
			var (
				ub  = u.Cmp[b]
				sb  = temp.Stride(b)
				ib  = I[b]
				dT1 = (temp.Data[i] - temp.Data[i-sb]) / g.DeltaU[b][ib-1]
				dT2 = (temp.Data[i+sb] - temp.Data[i]) / g.DeltaU[b][ib]
				uT1 = ub.Data[i-sb] * 0.5 * (temp.Data[i-sb] + temp.Data[i])
				uT2 = ub.Data[i] * 0.5 * (temp.Data[i] + temp.Data[i+sb])
			)
			s += ((kappa*dT2 - uT2) - (kappa*dT1 - uT1)) / g.Delta[b][ib]
		}
		c.Data[c.Idx(I)] += s
	})
	return
}

// Dissipation accumulates the viscous heating term into diss: the diffusion
// flux contracted with the velocity at the two faces of each pressure cell,
// scaled by the configured Reynolds/Prandtl-derived coefficient. The internal
// flux buffer is allocated once and reused across calls.
func (m *Model) Dissipation(u *field.Vector, diss *field.Scalar) (err error) {
	if err = m.checkVector(u, "velocity"); err != nil {
		return
	}
	if err = m.checkScalar(diss, "dissipation"); err != nil {
		return
	}
	if m.Temp == nil {
		err = fmt.Errorf("temperature parameters are not configured on this model")
		return
	}
	var (
		g     = m.Grid
		d     = g.Dim.D()
		coeff = m.Temp.DissipationCoeff
	)
	if m.dissFlux == nil {
		m.dissFlux = field.NewVector(g)
	}
	m.dissFlux.Zero()
	if err = m.Diffusion(u, m.dissFlux); err != nil {
		return
	}
	// The contraction reads the lower face of each cell, which sits outside
	// the flux DOF set at boundary-adjacent cells; periodic axes must see
	// the wrapped flux there
	if err = bcfill.ApplyFaceFlux(g, m.dissFlux); err != nil {
		return
	}
	m.Ctx.Run(g.Ip, func(I grid.MultiIndex) {
		var s float64
		for a := 0; a < d; a++ {
			var (
				ua = u.Cmp[a]
				fa = m.dissFlux.Cmp[a]
				i  = ua.Idx(I)
				sa = ua.Stride(a)
			)
			s += 0.5 * (ua.Data[i-sa]*fa.Data[i-sa] + ua.Data[i]*fa.Data[i])
		}
		diss.Data[diss.Idx(I)] += coeff * s
	})
	return
}

// Buoyancy accumulates the gravity force: per axis, the gravity component
// times the face-interpolated temperature
func (m *Model) Buoyancy(temp *field.Scalar, F *field.Vector) (err error) {
	if err = m.checkScalar(temp, "temperature"); err != nil {
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
		if m.Gravity[a] == 0 {
			continue
		}
		var (
			a_     = a
			ga     = m.Gravity[a]
			Fa     = F.Cmp[a]
			lo, hi = g.CLo[a], g.CHi[a]
			str    = Fa.Stride(a)
		)
		m.Ctx.Run(g.Iu[a], func(I grid.MultiIndex) {
			i := Fa.Idx(I)
			Fa.Data[i] += ga * (lo[I[a_]]*temp.Data[i] + hi[I[a_]]*temp.Data[i+str])
		})
	}
	return
}
