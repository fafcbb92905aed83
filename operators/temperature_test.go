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

func TestTemperatureRequiresParams(t *testing.T) {
	var (
		m    = periodicModel2D(4)
		g    = m.Grid
		u    = field.NewVector(g)
		temp = field.NewScalar(g)
		c    = field.NewScalar(g)
	)
	assert.Error(t, m.ConvectionDiffusionTemp(u, temp, c))
	assert.Error(t, m.Dissipation(u, c))
}

func TestTemperatureTransportConstantField(t *testing.T) {
	// A constant temperature in a divergence-free flow is in equilibrium: the
	// diffusive fluxes vanish and the convective fluxes telescope to the
	// discrete divergence, which the vortex cancels exactly
	var (
		m    = periodicModel2D(10)
		g    = m.Grid
		u    = field.NewVector(g)
		temp = field.NewScalar(g)
		c    = field.NewScalar(g)
	)
	m.Temp = &TemperatureParams{Diffusivity: 0.7}
	taylorGreenVelocity(g, u)
	assert.NoError(t, bcfill.ApplyVelocity(g, u))
	temp.Fill(3.5)
	assert.NoError(t, m.ConvectionDiffusionTemp(u, temp, c))
	assert.True(t, maxAbsOn(c, g.Ip) < 1.e-11)
}

// temperatureDiffusionError measures the deviation of the diffusive flux of
// T = sin(pi x) in a quiescent flow from -kappa pi^2 sin(pi x)
func temperatureDiffusionError(n int, kappa float64) (err float64) {
	var (
		m    = periodicModel2D(n)
		g    = m.Grid
		u    = field.NewVector(g)
		temp = field.NewScalar(g)
		c    = field.NewScalar(g)
		all  = grid.IndexSet{Hi: g.N}
	)
	m.Temp = &TemperatureParams{Diffusivity: kappa}
	for l, nl := 0, all.Len(); l < nl; l++ {
		I := all.At(l)
		temp.Set(I, math.Sin(math.Pi*g.Xp[0][I[0]]))
	}
	if e := m.ConvectionDiffusionTemp(u, temp, c); e != nil {
		panic(e)
	}
	for l, nl := 0, g.Ip.Len(); l < nl; l++ {
		var (
			I     = g.Ip.At(l)
			exact = -kappa * math.Pi * math.Pi * math.Sin(math.Pi*g.Xp[0][I[0]])
			e     = math.Abs(c.At(I) - exact)
		)
		if e > err {
			err = e
		}
	}
	return
}

func TestTemperatureDiffusion(t *testing.T) {
	var (
		kappa = 0.3
		e32   = temperatureDiffusionError(32, kappa)
		e64   = temperatureDiffusionError(64, kappa)
	)
	assert.True(t, e64 < 0.01*kappa*math.Pi*math.Pi, "error at n=64: %v", e64)
	ratio := e32 / e64
	assert.True(t, ratio > 3 && ratio < 5, "convergence ratio %v", ratio)
}

func TestDissipation(t *testing.T) {
	var (
		rng = rand.New(rand.NewSource(41))
		m   = dirichletModel2D(6)
		g   = m.Grid
		u   = randomDOFVector(g, rng)
	)
	m.Temp = &TemperatureParams{Diffusivity: 0.1, DissipationCoeff: 1}
	{ // Uniform rest state dissipates nothing
		var (
			rest = field.NewVector(g)
			d    = field.NewScalar(g)
		)
		assert.NoError(t, m.Dissipation(rest, d))
		assert.True(t, maxAbsOn(d, g.Ip) == 0)
	}
	{ // The result scales linearly with the configured coefficient
		var (
			d1 = field.NewScalar(g)
			d2 = field.NewScalar(g)
		)
		assert.NoError(t, m.Dissipation(u, d1))
		m.Temp.DissipationCoeff = 2
		assert.NoError(t, m.Dissipation(u, d2))
		for l, n := 0, g.Ip.Len(); l < n; l++ {
			I := g.Ip.At(l)
			assert.InDelta(t, 2*d1.At(I), d2.At(I), 1.e-12)
		}
	}
	{ // Accumulation into a non-empty buffer
		var (
			d = field.NewScalar(g)
		)
		d.Fill(5)
		m.Temp.DissipationCoeff = 1
		assert.NoError(t, m.Dissipation(u, d))
		var (
			ref = field.NewScalar(g)
		)
		assert.NoError(t, m.Dissipation(u, ref))
		for l, n := 0, g.Ip.Len(); l < n; l++ {
			I := g.Ip.At(l)
			assert.InDelta(t, 5+ref.At(I), d.At(I), 1.e-12)
		}
	}
}

func TestGravityBuoyancy(t *testing.T) {
	// Constant temperature and unit interpolation weights: every vertical
	// face receives exactly g_y * T
	var (
		m    = periodicModel2D(6)
		g    = m.Grid
		temp = field.NewScalar(g)
		F    = field.NewVector(g)
	)
	m.Gravity = grid.Vec{0, -9.81, 0}
	temp.Fill(2)
	assert.NoError(t, m.Buoyancy(temp, F))
	for l, n := 0, g.Iu[1].Len(); l < n; l++ {
		I := g.Iu[1].At(l)
		assert.InDelta(t, -9.81*2, F.Cmp[1].At(I), 1.e-12)
	}
	// The zero-gravity component is never touched
	assert.True(t, maxAbsOn(F.Cmp[0], g.Iu[0]) == 0)
}

func TestGravityNonuniformWeights(t *testing.T) {
	// On a stretched grid the face interpolation is position-exact: a linear
	// temperature profile interpolates to its value at the face coordinate
	var (
		m    = stretchedModel2D()
		g    = m.Grid
		temp = field.NewScalar(g)
		F    = field.NewVector(g)
		all  = grid.IndexSet{Hi: g.N}
	)
	m.Gravity = grid.Vec{0, 1, 0}
	for l, n := 0, all.Len(); l < n; l++ {
		I := all.At(l)
		temp.Set(I, 2*g.Xp[1][I[1]]+1)
	}
	assert.NoError(t, m.Buoyancy(temp, F))
	for l, n := 0, g.Iu[1].Len(); l < n; l++ {
		I := g.Iu[1].At(l)
		assert.InDelta(t, 2*g.X[1][I[1]]+1, F.Cmp[1].At(I), 1.e-12)
	}
}

// cyclicDown maps an interior slot one cell down the axis, wrapping the seam
// slot 0 back to slot n
func cyclicDown(I grid.MultiIndex, axis, n int) (J grid.MultiIndex) {
	J = I
	J[axis]--
	if J[axis] == 0 {
		J[axis] = n
	}
	return
}

func TestDissipationTranslationEquivariance(t *testing.T) {
	// On a fully periodic grid a one-cell cyclic shift of the velocity must
	// shift the viscous heating by the same cell, seam cells included
	var (
		n  = 8
		m  = periodicModel2D(n)
		g  = m.Grid
		u1 = field.NewVector(g)
		u2 = field.NewVector(g)
		d1 = field.NewScalar(g)
		d2 = field.NewScalar(g)
	)
	m.Temp = &TemperatureParams{Diffusivity: 0.1, DissipationCoeff: 2.5}
	taylorGreenVelocity(g, u1)
	for a := 0; a < 2; a++ {
		for l, nn := 0, g.Iu[a].Len(); l < nn; l++ {
			I := g.Iu[a].At(l)
			u2.Cmp[a].Set(I, u1.Cmp[a].At(cyclicDown(I, 0, n)))
		}
	}
	assert.NoError(t, bcfill.ApplyVelocity(g, u1))
	assert.NoError(t, bcfill.ApplyVelocity(g, u2))
	assert.NoError(t, m.Dissipation(u1, d1))
	assert.NoError(t, m.Dissipation(u2, d2))
	for l, nn := 0, g.Ip.Len(); l < nn; l++ {
		I := g.Ip.At(l)
		assert.InDelta(t, d1.At(cyclicDown(I, 0, n)), d2.At(I), 1.e-12)
	}
}
