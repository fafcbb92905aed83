package operators

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/goins/bcfill"
	"github.com/notargets/goins/field"
	"github.com/notargets/goins/grid"
)

func TestFusedMatchesSequential(t *testing.T) {
	// The fused kernel sums the identical per-face terms, so it agrees with
	// the two-pass evaluation to round-off
	var (
		rng = rand.New(rand.NewSource(19))
		m   = stretchedModel2D()
		g   = m.Grid
		u   = randomVector(g, rng)
		F1  = field.NewVector(g)
		F2  = field.NewVector(g)
	)
	assert.NoError(t, m.Diffusion(u, F1))
	assert.NoError(t, m.Convection(u, F1))
	assert.NoError(t, m.ConvectionDiffusion(u, F2))
	for a := 0; a < 2; a++ {
		is := g.Iu[a]
		for l, n := 0, is.Len(); l < n; l++ {
			I := is.At(l)
			assert.InDelta(t, F1.Cmp[a].At(I), F2.Cmp[a].At(I), 1.e-13)
		}
	}
}

func TestFluxOperatorsAccumulate(t *testing.T) {
	// Flux operators add into the caller's buffer rather than overwrite it
	var (
		rng = rand.New(rand.NewSource(23))
		m   = stretchedModel2D()
		g   = m.Grid
		u   = randomVector(g, rng)
		F   = field.NewVector(g)
		F2  = field.NewVector(g)
	)
	for a := range F.Cmp {
		F.Cmp[a].Fill(10)
	}
	assert.NoError(t, m.ConvectionDiffusion(u, F))
	assert.NoError(t, m.ConvectionDiffusion(u, F2))
	for a := 0; a < 2; a++ {
		is := g.Iu[a]
		for l, n := 0, is.Len(); l < n; l++ {
			I := is.At(l)
			assert.InDelta(t, 10+F2.Cmp[a].At(I), F.Cmp[a].At(I), 1.e-12)
		}
	}
}

func TestDiffusionAdjoint(t *testing.T) {
	// Diffusion is linear: <D x, y> == <x, D* y> exactly, with both fields
	// supported on the degrees of freedom only. The adjoint guards its
	// scatters by index-set membership, so sensitivities never leak onto
	// prescribed boundary or ghost positions.
	var (
		rng  = rand.New(rand.NewSource(29))
		m    = dirichletModel2D(6)
		g    = m.Grid
		x    = randomDOFVector(g, rng)
		y    = randomDOFVector(g, rng)
		F    = field.NewVector(g)
		xbar = field.NewVector(g)
	)
	assert.NoError(t, m.Diffusion(x, F))
	assert.NoError(t, m.DiffusionAdjoint(xbar, y))
	var s1 float64
	for a := 0; a < 2; a++ {
		s1 += field.InnerOn(g.Iu[a], F.Cmp[a], y.Cmp[a])
	}
	assert.InEpsilon(t, s1, field.InnerVec(x, xbar), 1.e-12)
	{ // Nothing scattered outside the DOF sets
		all := grid.IndexSet{Hi: g.N}
		for a := 0; a < 2; a++ {
			ba := xbar.Cmp[a]
			for l, n := 0, all.Len(); l < n; l++ {
				I := all.At(l)
				if !g.Iu[a].Contains(I) {
					assert.Equal(t, 0.0, ba.At(I))
				}
			}
		}
	}
}

func TestConvectionAdjoint(t *testing.T) {
	// Convection is quadratic, so the centered difference of the forward
	// operator recovers its exact Jacobian action: the identity
	// <(C(u+eps x) - C(u-eps x))/(2 eps), y> == <x, C*_u(y)> holds to
	// round-off, not merely to O(eps^2)
	var (
		rng  = rand.New(rand.NewSource(31))
		m    = dirichletModel2D(6)
		g    = m.Grid
		u    = randomDOFVector(g, rng)
		x    = randomDOFVector(g, rng)
		y    = randomDOFVector(g, rng)
		eps  = 1.e-2
		up   = field.NewVector(g)
		um   = field.NewVector(g)
		Fp   = field.NewVector(g)
		Fm   = field.NewVector(g)
		ubar = field.NewVector(g)
	)
	for a := 0; a < 2; a++ {
		for i := range u.Cmp[a].Data {
			up.Cmp[a].Data[i] = u.Cmp[a].Data[i] + eps*x.Cmp[a].Data[i]
			um.Cmp[a].Data[i] = u.Cmp[a].Data[i] - eps*x.Cmp[a].Data[i]
		}
	}
	assert.NoError(t, m.Convection(up, Fp))
	assert.NoError(t, m.Convection(um, Fm))
	assert.NoError(t, m.ConvectionAdjoint(ubar, y, u))
	var s1 float64
	for a := 0; a < 2; a++ {
		is := g.Iu[a]
		for l, n := 0, is.Len(); l < n; l++ {
			I := is.At(l)
			jvp := (Fp.Cmp[a].At(I) - Fm.Cmp[a].At(I)) / (2 * eps)
			s1 += jvp * y.Cmp[a].At(I)
		}
	}
	assert.InEpsilon(t, s1, field.InnerVec(x, ubar), 1.e-9)
}

func TestFusedAdjoint(t *testing.T) {
	// The fused reverse pass is the sum of the two separate reverse passes
	var (
		rng   = rand.New(rand.NewSource(37))
		m     = dirichletModel2D(5)
		g     = m.Grid
		u     = randomDOFVector(g, rng)
		y     = randomDOFVector(g, rng)
		bConv = field.NewVector(g)
		bDiff = field.NewVector(g)
		bBoth = field.NewVector(g)
	)
	assert.NoError(t, m.ConvectionAdjoint(bConv, y, u))
	assert.NoError(t, m.DiffusionAdjoint(bDiff, y))
	assert.NoError(t, m.ConvectionDiffusionAdjoint(bBoth, y, u))
	for a := 0; a < 2; a++ {
		for i := range bBoth.Cmp[a].Data {
			assert.InDelta(t, bConv.Cmp[a].Data[i]+bDiff.Cmp[a].Data[i],
				bBoth.Cmp[a].Data[i], 1.e-13)
		}
	}
}

// taylorGreenConvectionError measures the worst deviation of the discrete
// x-momentum flux from the analytic value -pi/2 sin(2 pi x) on an n x n grid
func taylorGreenConvectionError(n int) (err float64) {
	var (
		m = periodicModel2D(n)
		g = m.Grid
		u = field.NewVector(g)
		F = field.NewVector(g)
	)
	taylorGreenVelocity(g, u)
	if e := bcfill.ApplyVelocity(g, u); e != nil {
		panic(e)
	}
	if e := m.Convection(u, F); e != nil {
		panic(e)
	}
	is := g.Iu[0]
	for l, nl := 0, is.Len(); l < nl; l++ {
		var (
			I     = is.At(l)
			exact = -0.5 * math.Pi * math.Sin(2*math.Pi*g.X[0][I[0]])
			e     = math.Abs(F.Cmp[0].At(I) - exact)
		)
		if e > err {
			err = e
		}
	}
	return
}

func TestConvectionTaylorGreen(t *testing.T) {
	// The x-momentum flux of the vortex is -pi/2 sin(2 pi x); the staggered
	// stencil converges to it at second order
	var (
		e32 = taylorGreenConvectionError(32)
		e64 = taylorGreenConvectionError(64)
	)
	assert.True(t, e64 < 0.01, "error at n=64: %v", e64)
	ratio := e32 / e64
	assert.True(t, ratio > 3 && ratio < 5, "convergence ratio %v", ratio)
}
