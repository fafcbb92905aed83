package operators

import "github.com/notargets/goins/field"

// Momentum assembles the right-hand side of the momentum equation: F is
// zeroed, then convection-diffusion, body force and (when a temperature field
// is present) gravity accumulate in that fixed order. The terms write disjoint
// or summed contributions only, so the ordering carries no numerical meaning
// beyond reproducibility. The pressure gradient is deliberately excluded; the
// external projection step applies it.
func (m *Model) Momentum(u *field.Vector, temp *field.Scalar, t float64, F *field.Vector) (err error) {
	if err = m.checkVector(u, "velocity"); err != nil {
		return
	}
	if err = m.checkVector(F, "momentum"); err != nil {
		return
	}
	F.Zero()
	if err = m.ConvectionDiffusion(u, F); err != nil {
		return
	}
	if err = m.BodyForce(F, t); err != nil {
		return
	}
	if temp != nil {
		err = m.Buoyancy(temp, F)
	}
	return
}
