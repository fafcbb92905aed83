package closure

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/goins/bcfill"
	"github.com/notargets/goins/exec"
	"github.com/notargets/goins/field"
	"github.com/notargets/goins/grid"
	"github.com/notargets/goins/utils"
)

/*
Smagorinsky models the sub-grid stress as σ = 2·ν_t·S with eddy viscosity

	ν_t = θ²·d²·sqrt(2·S:S)

where d is the root-mean-square of the local cell widths. The stress tensor is
evaluated at pressure points into a buffer allocated once at setup and reused
across time steps; DivOfTensor pushes it back onto the faces through the same
staggered-average pattern as convection's cross terms.
*/
type Smagorinsky struct {
	Theta float64

	g     *grid.Grid
	ctx   *exec.Context
	sigma *field.Tensor
}

func NewSmagorinsky(g *grid.Grid, ctx *exec.Context, theta float64) (s *Smagorinsky) {
	s = &Smagorinsky{
		Theta: theta,
		g:     g,
		ctx:   ctx,
		sigma: field.NewTensor(g),
	}
	return
}

// Apply accumulates the divergence of the closure stress tensor into F.
// The caller owns F; the internal stress buffer must not be shared across
// concurrent invocations.
func (s *Smagorinsky) Apply(u, F *field.Vector) (err error) {
	var (
		g = s.g
		d = g.Dim.D()
	)
	if u.Len() != d || F.Len() != d {
		err = fmt.Errorf("dimension mismatch: %d/%d field components, grid is %dD",
			u.Len(), F.Len(), d)
		return
	}
	s.sigma.Zero()
	s.ctx.Run(g.Ip, func(I grid.MultiIndex) {
		var (
			G  = s.sigma.Matrix(I) // filled in place, then overwritten by σ
			S  mat.Dense
			ss float64
			d2 float64
		)
		S.ReuseAs(d, d)
		GradTensor(g, u, I, G)
		for i := 0; i < d; i++ {
			for j := 0; j < d; j++ {
				S.Set(i, j, 0.5*(G.At(i, j)+G.At(j, i)))
			}
		}
		for i := 0; i < d; i++ {
			for j := 0; j < d; j++ {
				ss += utils.POW(S.At(i, j), 2)
			}
			d2 += utils.POW(g.Delta[i][I[i]], 2)
		}
		d2 /= float64(d)
		nut := utils.POW(s.Theta, 2) * d2 * math.Sqrt(2*ss)
		for i := 0; i < d; i++ {
			for j := 0; j < d; j++ {
				G.Set(i, j, 2*nut*S.At(i, j))
			}
		}
	})
	// The divergence stencil reaches one slot outside Ip at boundary-adjacent
	// faces; fill the stress ghost ring per tag so seam faces see the wrap
	// image rather than zeros
	bcfill.ApplyTensor(g, s.sigma)
	s.divOfTensor(F)
	return
}

// divOfTensor differences the stress tensor onto each component's faces.
// Same-axis entries live at pressure points and difference directly; cross
// entries are averaged to the four adjacent corners first, mirroring the
// convection cross-term pattern.
func (s *Smagorinsky) divOfTensor(F *field.Vector) {
	var (
		g  = s.g
		d  = g.Dim.D()
		sg = s.sigma
	)
	for a := 0; a < d; a++ {
		var (
			a_ = a
			Fa = F.Cmp[a]
		)
		s.ctx.Run(g.Iu[a], func(I grid.MultiIndex) {
			var acc float64
			for b := 0; b < d; b++ {
				if b == a_ {
					acc += (sg.At(I.Shift(a_, 1), a_, a_) - sg.At(I, a_, a_)) /
						g.DeltaU[a_][I[a_]]
					continue
				}
				var (
					Ia = I.Shift(a_, 1)
					s1 = 0.25 * (sg.At(I, a_, b) + sg.At(Ia, a_, b) +
						sg.At(I.Shift(b, -1), a_, b) + sg.At(Ia.Shift(b, -1), a_, b))
					s2 = 0.25 * (sg.At(I, a_, b) + sg.At(Ia, a_, b) +
						sg.At(I.Shift(b, 1), a_, b) + sg.At(Ia.Shift(b, 1), a_, b))
				)
				acc += (s2 - s1) / g.Delta[b][I[b]]
			}
			Fa.Data[Fa.Idx(I)] += acc
		})
	}
}
