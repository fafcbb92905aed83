package diagnostics

import (
	"fmt"

	"github.com/notargets/goins/field"
	"github.com/notargets/goins/grid"
	"github.com/notargets/goins/operators"
)

// Diagnostics derives post-processing fields from a velocity/pressure state.
// All methods are pure: they read boundary-filled inputs and write only their
// caller-owned output buffers. Internal scratch is allocated once.
type Diagnostics struct {
	m *operators.Model

	gradBuf *field.Vector
	lapBuf  *field.Scalar
}

func New(m *operators.Model) (dg *Diagnostics) {
	dg = &Diagnostics{
		m:       m,
		gradBuf: field.NewVector(m.Grid),
		lapBuf:  field.NewScalar(m.Grid),
	}
	return
}

// Vorticity writes the discrete curl of u at the corner points. The output is
// a single scalar component in 2D and a three-component vector in 3D; the
// dimension split is selected once, outside the hot loop.
func (dg *Diagnostics) Vorticity(u, w *field.Vector) (err error) {
	var (
		g = dg.m.Grid
		d = g.Dim.D()
	)
	if u.Len() != d {
		err = fmt.Errorf("dimension mismatch: velocity has %d components, grid is %dD", u.Len(), d)
		return
	}
	switch g.Dim {
	case grid.Dim2:
		if w.Len() != 1 {
			err = fmt.Errorf("2D vorticity is a scalar: output must have 1 component, has %d", w.Len())
			return
		}
		dg.curlComponent(u, w.Cmp[0], 0, 1)
	case grid.Dim3:
		if w.Len() != 3 {
			err = fmt.Errorf("3D vorticity is a vector: output must have 3 components, has %d", w.Len())
			return
		}
		dg.curlComponent(u, w.Cmp[0], 1, 2)
		dg.curlComponent(u, w.Cmp[1], 2, 0)
		dg.curlComponent(u, w.Cmp[2], 0, 1)
	}
	return
}

// curlComponent writes ∂u[b]/∂x[a] - ∂u[a]/∂x[b] at the corners shared by the
// two face stencils
func (dg *Diagnostics) curlComponent(u *field.Vector, w *field.Scalar, a, b int) {
	var (
		g      = dg.m.Grid
		ua, ub = u.Cmp[a], u.Cmp[b]
		sa     = ua.Stride(a)
		sb     = ua.Stride(b)
	)
	dg.m.Ctx.Run(g.Ip, func(I grid.MultiIndex) {
		i := w.Idx(I)
		w.Data[i] = (ub.Data[i+sa]-ub.Data[i])/g.DeltaU[a][I[a]] -
			(ua.Data[i+sb]-ua.Data[i])/g.DeltaU[b][I[b]]
	})
}

// InterpolateToCenters writes each velocity component averaged from its two
// faces onto the pressure points
func (dg *Diagnostics) InterpolateToCenters(u, up *field.Vector) (err error) {
	var (
		g = dg.m.Grid
		d = g.Dim.D()
	)
	if u.Len() != d || up.Len() != d {
		err = fmt.Errorf("dimension mismatch: %d/%d field components, grid is %dD",
			u.Len(), up.Len(), d)
		return
	}
	for a := 0; a < d; a++ {
		var (
			a_     = a
			ua     = u.Cmp[a]
			ca     = up.Cmp[a]
			lo, hi = g.ALo[a][a], g.AHi[a][a]
			sa     = ua.Stride(a)
		)
		dg.m.Ctx.Run(g.Ip, func(I grid.MultiIndex) {
			i := ua.Idx(I)
			ca.Data[i] = lo[I[a_]]*ua.Data[i-sa] + hi[I[a_]]*ua.Data[i]
		})
	}
	return
}

// KineticEnergyVariant selects the face-average ordering for the kinetic
// energy field
type KineticEnergyVariant uint8

const (
	// InterpolateThenSquare averages the face velocities first
	InterpolateThenSquare KineticEnergyVariant = iota
	// SquareThenInterpolate averages the squared face velocities
	SquareThenInterpolate
)

// KineticEnergy writes k = ½ Σ_α u[α]² at pressure points, with the
// face-average applied per the selected variant
func (dg *Diagnostics) KineticEnergy(u *field.Vector, k *field.Scalar, variant KineticEnergyVariant) (err error) {
	var (
		g = dg.m.Grid
		d = g.Dim.D()
	)
	if u.Len() != d {
		err = fmt.Errorf("dimension mismatch: velocity has %d components, grid is %dD", u.Len(), d)
		return
	}
	if variant > SquareThenInterpolate {
		err = fmt.Errorf("unknown kinetic energy variant %d", variant)
		return
	}
	dg.m.Ctx.Run(g.Ip, func(I grid.MultiIndex) {
		var s float64
		for a := 0; a < d; a++ {
			var (
				ua     = u.Cmp[a]
				i      = ua.Idx(I)
				sa     = ua.Stride(a)
				lo, hi = g.ALo[a][a][I[a]], g.AHi[a][a][I[a]]
			)
			if variant == SquareThenInterpolate {
				s += lo*ua.Data[i-sa]*ua.Data[i-sa] + hi*ua.Data[i]*ua.Data[i]
			} else {
				v := lo*ua.Data[i-sa] + hi*ua.Data[i]
				s += v * v
			}
		}
		k.Data[k.Idx(I)] = 0.5 * s
	})
	return
}
