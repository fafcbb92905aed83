package operators

import (
	"fmt"

	"github.com/notargets/goins/exec"
	"github.com/notargets/goins/field"
	"github.com/notargets/goins/grid"
)

// ForceFunc evaluates a closed-form body force component at a physical
// position and time
type ForceFunc func(axis int, x grid.Vec, t float64) float64

// TemperatureParams carries the coefficients of the temperature equation. The
// dissipation coefficient is the Reynolds/Prandtl-derived scale owned by the
// nondimensionalization of the caller.
type TemperatureParams struct {
	Diffusivity      float64
	DissipationCoeff float64
}

/*
Model owns the discrete operators over one grid. All operators share the same
contract: the caller has already filled ghost values of every input field, and
the operator produces correct values only on the output's interior index set.

Operators validate field arity against the grid dimension and return a
descriptive error before touching any output; there is no partial-failure mode.
*/
type Model struct {
	Grid *grid.Grid
	Ctx  *exec.Context

	Visc    float64  // kinematic viscosity (1/Re in nondimensional form)
	Gravity grid.Vec // buoyancy direction and magnitude
	Temp    *TemperatureParams

	Force       ForceFunc     // closed-form force, may be nil
	SteadyForce *field.Vector // precomputed steady force, may be nil

	dissFlux *field.Vector // reused scratch for Dissipation
}

func NewModel(g *grid.Grid, ctx *exec.Context, visc float64) (m *Model) {
	m = &Model{
		Grid: g,
		Ctx:  ctx,
		Visc: visc,
	}
	return
}

func (m *Model) checkVector(u *field.Vector, name string) (err error) {
	var (
		d = m.Grid.Dim.D()
	)
	if u == nil || u.Len() != d {
		have := 0
		if u != nil {
			have = u.Len()
		}
		err = fmt.Errorf("dimension mismatch: %s field has %d components, grid is %dD",
			name, have, d)
	}
	return
}

func (m *Model) checkScalar(p *field.Scalar, name string) (err error) {
	if p == nil || p.N != m.Grid.N {
		err = fmt.Errorf("dimension mismatch: %s field extents do not match the grid", name)
	}
	return
}
