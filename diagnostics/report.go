package diagnostics

import (
	"golang.org/x/sync/errgroup"

	"github.com/notargets/goins/field"
)

// Report bundles the derived fields computed together after a solve step.
// Nil members are skipped. Each field is caller-owned and written by exactly
// one diagnostic, so the members can be produced concurrently.
type Report struct {
	Vorticity     *field.Vector
	Q             *field.Scalar
	D             *field.Scalar
	KineticEnergy *field.Scalar

	DEps      float64
	KEVariant KineticEnergyVariant
}

// Run computes the requested diagnostics concurrently. The velocity and
// pressure inputs must have their ghost values filled; p may be nil when no
// D-field is requested.
func (dg *Diagnostics) Run(u *field.Vector, p *field.Scalar, r *Report) (err error) {
	var (
		eg errgroup.Group
	)
	if r.Vorticity != nil {
		eg.Go(func() error { return dg.Vorticity(u, r.Vorticity) })
	}
	if r.Q != nil {
		eg.Go(func() error { return dg.QField(u, r.Q) })
	}
	if r.D != nil {
		eg.Go(func() error { return dg.DField(p, r.D, r.DEps) })
	}
	if r.KineticEnergy != nil {
		eg.Go(func() error { return dg.KineticEnergy(u, r.KineticEnergy, r.KEVariant) })
	}
	err = eg.Wait()
	return
}
