package operators

import (
	"github.com/notargets/goins/field"
	"github.com/notargets/goins/grid"
)

// BodyForce accumulates the configured forcing into F. A steady precomputed
// field takes precedence over the closed-form function; with neither
// configured the call is a no-op. The adjoint of the body force is identically
// zero: the force does not depend on the state.
func (m *Model) BodyForce(F *field.Vector, t float64) (err error) {
	if err = m.checkVector(F, "momentum"); err != nil {
		return
	}
	if m.SteadyForce == nil && m.Force == nil {
		return
	}
	var (
		g = m.Grid
		d = g.Dim.D()
	)
	if m.SteadyForce != nil {
		if err = m.checkVector(m.SteadyForce, "steady force"); err != nil {
			return
		}
		for a := 0; a < d; a++ {
			var (
				Fa = F.Cmp[a]
				fa = m.SteadyForce.Cmp[a]
			)
			m.Ctx.Run(g.Iu[a], func(I grid.MultiIndex) {
				Fa.Data[Fa.Idx(I)] += fa.Data[fa.Idx(I)]
			})
		}
		return
	}
	for a := 0; a < d; a++ {
		var (
			a_ = a
			Fa = F.Cmp[a]
		)
		m.Ctx.Run(g.Iu[a], func(I grid.MultiIndex) {
			var x grid.Vec
			for b := 0; b < d; b++ {
				if b == a_ {
					x[b] = g.X[b][I[b]] // component position: on its own face
				} else {
					x[b] = g.Xp[b][I[b]]
				}
			}
			Fa.Data[Fa.Idx(I)] += m.Force(a_, x, t)
		})
	}
	return
}
