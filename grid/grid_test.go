package grid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func uniformBC(d int, tag BCType) (bc [MaxDim][2]BCType) {
	for a := 0; a < d; a++ {
		bc[a] = [2]BCType{tag, tag}
	}
	return
}

func TestIndexing(t *testing.T) {
	{ // Offsets and shifts
		assert.Equal(t, MultiIndex{1, 0, 0}, Offset(0))
		assert.Equal(t, MultiIndex{0, 0, 1}, Offset(2))
		I := MultiIndex{3, 4, 5}
		assert.Equal(t, MultiIndex{3, 6, 5}, I.Shift(1, 2))
		assert.Equal(t, MultiIndex{2, 4, 5}, I.Add(MultiIndex{-1, 0, 0}))
		assert.Equal(t, MultiIndex{3, 4, 4}, I.Sub(MultiIndex{0, 0, 1}))
	}
	{ // Linear ordering round trip, last axis fastest
		s := IndexSet{Lo: MultiIndex{1, 1, 0}, Hi: MultiIndex{4, 3, 1}}
		assert.Equal(t, 6, s.Len())
		assert.Equal(t, MultiIndex{1, 1, 0}, s.At(0))
		assert.Equal(t, MultiIndex{1, 2, 0}, s.At(1))
		assert.Equal(t, MultiIndex{2, 1, 0}, s.At(2))
		for l := 0; l < s.Len(); l++ {
			assert.Equal(t, l, s.LinearOf(s.At(l)))
			assert.True(t, s.Contains(s.At(l)))
		}
		assert.False(t, s.Contains(MultiIndex{4, 1, 0}))
		assert.False(t, s.Contains(MultiIndex{1, 0, 0}))
	}
}

func TestGridMetrics(t *testing.T) {
	var (
		xf = [][]float64{{0, 1, 3, 6}, {0, 1, 2, 3}}
	)
	{ // Periodic ghost widths wrap around the axis
		g, err := NewGrid(Dim2, xf, uniformBC(2, BCPeriodic))
		assert.NoError(t, err)
		assert.Equal(t, MultiIndex{5, 5, 1}, g.N)
		assert.True(t, near(g.Delta[0][1], 1))
		assert.True(t, near(g.Delta[0][2], 2))
		assert.True(t, near(g.Delta[0][3], 3))
		assert.True(t, near(g.Delta[0][0], 3)) // wrapped from the last cell
		assert.True(t, near(g.Delta[0][4], 1)) // wrapped from the first cell
		// Centers and staggered widths follow from the cell widths
		assert.True(t, near(g.Xp[0][1], 0.5))
		assert.True(t, near(g.Xp[0][2], 2))
		assert.True(t, near(g.DeltaU[0][1], 1.5))
		assert.True(t, near(g.Xp[0][0], -1.5))
	}
	{ // Non-periodic ghost widths mirror the adjacent interior cell
		g, err := NewGrid(Dim2, xf, uniformBC(2, BCDirichlet))
		assert.NoError(t, err)
		assert.True(t, near(g.Delta[0][0], 1))
		assert.True(t, near(g.Delta[0][4], 3))
	}
	{ // The degenerate 2D axis has unit extent and unit metrics
		g, err := NewGrid(Dim2, xf, uniformBC(2, BCPeriodic))
		assert.NoError(t, err)
		assert.Equal(t, 1, g.N[2])
		assert.True(t, near(g.Delta[2][0], 1))
		assert.True(t, near(g.Omega(MultiIndex{1, 1, 0}), 1))
		assert.True(t, near(g.Omega(MultiIndex{3, 2, 0}), 3))
	}
}

func TestIndexSets(t *testing.T) {
	var (
		n  = MultiIndex{4, 3, 0}
		x0 = Vec{0, 0, 0}
		x1 = Vec{1, 1, 0}
	)
	{ // Periodic: every face is a DOF, one per cell
		g, err := NewUniformGrid(Dim2, n, x0, x1, uniformBC(2, BCPeriodic))
		assert.NoError(t, err)
		assert.Equal(t, IndexSet{Lo: MultiIndex{1, 1, 0}, Hi: MultiIndex{5, 4, 1}}, g.Ip)
		assert.Equal(t, g.Ip, g.Iu[0])
		assert.Equal(t, g.Ip, g.Iu[1])
		assert.Equal(t, 12, g.Np())
		assert.Equal(t, 12, g.Nu(0))
	}
	{ // Walls: the face on the high boundary is prescribed
		g, err := NewUniformGrid(Dim2, n, x0, x1, uniformBC(2, BCDirichlet))
		assert.NoError(t, err)
		assert.Equal(t, 4, g.Iu[0].Hi[0])
		assert.Equal(t, 4, g.Iu[0].Hi[1])
		assert.Equal(t, 5, g.Iu[1].Hi[0])
		assert.Equal(t, 3, g.Iu[1].Hi[1])
		assert.Equal(t, 9, g.Nu(0))
		assert.Equal(t, 8, g.Nu(1))
	}
}

func TestWeights(t *testing.T) {
	var (
		xf = [][]float64{{0, 1, 3, 6}, {0, 0.5, 1, 2}}
	)
	g, err := NewGrid(Dim2, xf, uniformBC(2, BCPeriodic))
	assert.NoError(t, err)
	{ // Same-axis weights: faces i-1, i onto center i, summing to 1
		for a := 0; a < 2; a++ {
			for i := 1; i < g.N[a]; i++ {
				lo, hi := g.ALo[a][a][i], g.AHi[a][a][i]
				assert.True(t, near(lo+hi, 1))
				assert.True(t, near(lo*g.X[a][i-1]+hi*g.X[a][i], g.Xp[a][i]))
			}
		}
	}
	{ // Cross-axis weights: centers i, i+1 onto face i, shared across components
		for a := 0; a < 2; a++ {
			b := 1 - a
			assert.Same(t, &g.CLo[a][0], &g.ALo[b][a][0])
			for i := 0; i < g.N[a]-1; i++ {
				lo, hi := g.CLo[a][i], g.CHi[a][i]
				assert.True(t, near(lo+hi, 1))
				assert.True(t, near(lo*g.Xp[a][i]+hi*g.Xp[a][i+1], g.X[a][i]))
			}
		}
	}
	{ // Uniform spacing degenerates to plain averaging
		gu, err := NewUniformGrid(Dim2, MultiIndex{8, 8, 0}, Vec{}, Vec{1, 1, 0},
			uniformBC(2, BCPeriodic))
		assert.NoError(t, err)
		for i := 1; i < gu.N[0]-1; i++ {
			assert.True(t, near(gu.ALo[0][0][i], 0.5))
			assert.True(t, near(gu.CLo[0][i], 0.5))
		}
	}
}

func TestGridErrors(t *testing.T) {
	var (
		xf = [][]float64{{0, 1, 2}, {0, 1, 2}}
	)
	{ // Dimension checks
		_, err := NewGrid(Dimension(1), xf, uniformBC(2, BCPeriodic))
		assert.Error(t, err)
		_, err = NewGrid(Dim3, xf, uniformBC(3, BCPeriodic))
		assert.Error(t, err)
	}
	{ // Too few cells
		_, err := NewGrid(Dim2, [][]float64{{0, 1}, {0, 1, 2}}, uniformBC(2, BCPeriodic))
		assert.Error(t, err)
		_, err = NewUniformGrid(Dim2, MultiIndex{1, 4, 0}, Vec{}, Vec{1, 1, 0},
			uniformBC(2, BCPeriodic))
		assert.Error(t, err)
	}
	{ // Unpaired periodic tag
		bc := uniformBC(2, BCPeriodic)
		bc[0][1] = BCDirichlet
		_, err := NewGrid(Dim2, xf, bc)
		assert.Error(t, err)
	}
	{ // Unknown tag
		bc := uniformBC(2, BCDirichlet)
		bc[1][0] = BCNone
		_, err := NewGrid(Dim2, xf, bc)
		assert.Error(t, err)
	}
}

func TestBCNames(t *testing.T) {
	assert.Equal(t, BCPeriodic, ParseBCName("periodic"))
	assert.Equal(t, BCDirichlet, ParseBCName("dirichlet"))
	assert.Equal(t, BCNone, ParseBCName("bogus"))
	assert.Equal(t, "Symmetric", BCSymmetric.String())
	assert.Equal(t, "PressureBC", BCPressure.String())
}

func near(a, b float64) (l bool) {
	if math.Abs(a-b) <= 1.e-12*math.Max(1, math.Abs(a)) {
		l = true
	}
	return
}
