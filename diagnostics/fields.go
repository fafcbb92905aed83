package diagnostics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/goins/bcfill"
	"github.com/notargets/goins/closure"
	"github.com/notargets/goins/field"
	"github.com/notargets/goins/grid"
)

// QField writes the second invariant of the velocity gradient,
// Q = -½ Σ ∂u[α]/∂x[β] · ∂u[β]/∂x[α], at pressure points
func (dg *Diagnostics) QField(u *field.Vector, q *field.Scalar) (err error) {
	var (
		g = dg.m.Grid
		d = g.Dim.D()
	)
	if u.Len() != d {
		err = fmt.Errorf("dimension mismatch: velocity has %d components, grid is %dD", u.Len(), d)
		return
	}
	dg.m.Ctx.Run(g.Ip, func(I grid.MultiIndex) {
		var (
			G = mat.NewDense(d, d, nil)
			s float64
		)
		closure.GradTensor(g, u, I, G)
		for a := 0; a < d; a++ {
			for b := 0; b < d; b++ {
				s += G.At(a, b) * G.At(b, a)
			}
		}
		q.Data[q.Idx(I)] = -0.5 * s
	})
	return
}

// DField writes |∇p| / Laplacian(p) at pressure points. The denominator is
// clamped to magnitude eps with its sign preserved; a degenerate Laplacian is
// a numerical-stability policy here, not a fault.
func (dg *Diagnostics) DField(p, dfield *field.Scalar, eps float64) (err error) {
	var (
		g = dg.m.Grid
		d = g.Dim.D()
	)
	if err = dg.m.PressureGradient(p, dg.gradBuf); err != nil {
		return
	}
	// The gradient lives on interior faces only; the center interpolation
	// below reads one face outside that set at boundary-adjacent cells
	if err = bcfill.ApplyFaceFlux(g, dg.gradBuf); err != nil {
		return
	}
	if err = dg.m.Laplacian(p, dg.lapBuf); err != nil {
		return
	}
	var (
		G   = dg.gradBuf
		lap = dg.lapBuf
	)
	dg.m.Ctx.Run(g.Ip, func(I grid.MultiIndex) {
		var mag float64
		for a := 0; a < d; a++ {
			var (
				ga     = G.Cmp[a]
				i      = ga.Idx(I)
				sa     = ga.Stride(a)
				lo, hi = g.ALo[a][a][I[a]], g.AHi[a][a][I[a]]
				v      = lo*ga.Data[i-sa] + hi*ga.Data[i]
			)
			mag += v * v
		}
		den := lap.Data[lap.Idx(I)]
		if math.Abs(den) < eps {
			den = math.Copysign(eps, den)
		}
		dfield.Data[dfield.Idx(I)] = math.Sqrt(mag) / den
	})
	return
}

// Lambda2Field writes the second (middle) eigenvalue of S²+R² at pressure
// points. Defined in 3D only; a 2D invocation fails fast.
func (dg *Diagnostics) Lambda2Field(u *field.Vector, l2 *field.Scalar) (err error) {
	var (
		g = dg.m.Grid
	)
	if g.Dim != grid.Dim3 {
		err = fmt.Errorf("lambda2 field requires a 3D grid, have %dD", g.Dim.D())
		return
	}
	if u.Len() != 3 {
		err = fmt.Errorf("dimension mismatch: velocity has %d components, grid is 3D", u.Len())
		return
	}
	dg.m.Ctx.Run(g.Ip, func(I grid.MultiIndex) {
		var (
			G = mat.NewDense(3, 3, nil)
			S = mat.NewDense(3, 3, nil)
			R = mat.NewDense(3, 3, nil)
			M mat.Dense
		)
		closure.GradTensor(g, u, I, G)
		closure.StrainRotation(G, S, R)
		var S2, R2 mat.Dense
		S2.Mul(S, S)
		R2.Mul(R, R)
		M.Add(&S2, &R2)
		// S²+R² is symmetric analytically; symmetrize against round-off
		sym := mat.NewSymDense(3, nil)
		for i := 0; i < 3; i++ {
			for j := i; j < 3; j++ {
				sym.SetSym(i, j, 0.5*(M.At(i, j)+M.At(j, i)))
			}
		}
		var eig mat.EigenSym
		if !eig.Factorize(sym, false) {
			// Factorization of a 3x3 symmetric matrix does not fail for
			// finite input; surface NaN rather than abort the pass
			l2.Data[l2.Idx(I)] = math.NaN()
			return
		}
		vals := eig.Values(nil) // ascending
		l2.Data[l2.Idx(I)] = vals[1]
	})
	return
}
