package grid

import "fmt"

// Dimension selects the 2D or 3D kernel variants once at setup time
type Dimension uint8

const (
	Dim2 Dimension = 2
	Dim3 Dimension = 3
)

func (d Dimension) D() int { return int(d) }

/*
Grid carries the staggered Cartesian layout consumed by every operator:
  - Pressure lives at cell centers, velocity component α on the faces normal
    to axis α.
  - Extended arrays have one ghost cell per side: axis α with n interior cells
    has extent N[α] = n+2. Cell i spans faces i-1 and i; face i sits between
    cells i and i+1.
  - All metrics are 1-D per axis and reused across the orthogonal directions.

Index sets, metrics and interpolation weights are immutable after construction.
*/
type Grid struct {
	Dim Dimension
	N   MultiIndex // extended extents per axis (1 on the unused 2D axis)

	Ip IndexSet           // interior pressure cells
	Iu [MaxDim]IndexSet   // interior faces per velocity component
	BC [MaxDim][2]BCType  // per-axis (low, high) boundary tags

	// Metrics, indexed by the axis coordinate only.
	Delta  [MaxDim][]float64 // pressure-volume widths, len N[axis]
	DeltaU [MaxDim][]float64 // staggered-volume widths Xp[i+1]-Xp[i], len N[axis]

	// Coordinates, len N[axis]. X[a][i] is the position of face i (the
	// component-a velocity point); Xp[a][i] is the center of cell i.
	X  [MaxDim][]float64
	Xp [MaxDim][]float64

	// Interpolation weights: ALo/AHi[β][α][i] interpolate a component-β
	// quantity along axis α onto a component-α location with α-coordinate i.
	// For β == α the sources are the faces i-1, i and the target is center i;
	// otherwise the sources are the centers i, i+1 and the target is face i.
	// The two weights at a location always sum to 1.
	ALo, AHi [MaxDim][MaxDim][]float64

	// CLo/CHi[α] interpolate a cell-center quantity along axis α onto face i
	// from centers i, i+1 (the β ≠ α columns of A share this backing).
	CLo, CHi [MaxDim][]float64
}

// Flat returns the row-major flat position of I in an extended array
func (g *Grid) Flat(I MultiIndex) int {
	return (I[0]*g.N[1]+I[1])*g.N[2] + I[2]
}

// NewGrid builds the staggered layout from per-axis interior face coordinates.
// xf[a] must hold the n+1 face positions of axis a, strictly increasing.
// Periodic tags must be paired on both sides of their axis.
func NewGrid(dim Dimension, xf [][]float64, bc [MaxDim][2]BCType) (g *Grid, err error) {
	var (
		d = dim.D()
	)
	if dim != Dim2 && dim != Dim3 {
		err = fmt.Errorf("unsupported grid dimension %d: must be 2 or 3", dim)
		return
	}
	if len(xf) != d {
		err = fmt.Errorf("dimension mismatch: %d coordinate axes for a %dD grid", len(xf), d)
		return
	}
	g = &Grid{Dim: dim, BC: bc}
	for a := 0; a < d; a++ {
		if len(xf[a]) < 3 {
			err = fmt.Errorf("axis %d needs at least 2 cells, have %d faces", a, len(xf[a]))
			return
		}
		if (bc[a][0] == BCPeriodic) != (bc[a][1] == BCPeriodic) {
			err = fmt.Errorf("axis %d: periodic boundaries must be paired, have (%v, %v)",
				a, bc[a][0], bc[a][1])
			return
		}
		for _, side := range bc[a] {
			if side == BCNone || side > BCPressure {
				err = fmt.Errorf("axis %d: unsupported boundary tag %v", a, side)
				return
			}
		}
		g.setupAxis(a, xf[a])
	}
	for a := d; a < MaxDim; a++ {
		// Degenerate axis: unit extent, unit metric, so volume products and
		// the shared 3D iteration work unchanged in 2D.
		g.N[a] = 1
		g.Delta[a] = []float64{1}
		g.DeltaU[a] = []float64{1}
		g.X[a] = []float64{0}
		g.Xp[a] = []float64{0}
	}
	g.setupIndexSets()
	g.setupWeights()
	return
}

// NewUniformGrid builds an evenly spaced grid over [x0, x1] per axis
func NewUniformGrid(dim Dimension, n MultiIndex, x0, x1 Vec, bc [MaxDim][2]BCType) (g *Grid, err error) {
	var (
		d  = dim.D()
		xf = make([][]float64, d)
	)
	for a := 0; a < d; a++ {
		if n[a] < 2 {
			err = fmt.Errorf("axis %d needs at least 2 cells, have %d", a, n[a])
			return
		}
		h := (x1[a] - x0[a]) / float64(n[a])
		xf[a] = make([]float64, n[a]+1)
		for i := range xf[a] {
			xf[a][i] = x0[a] + float64(i)*h
		}
	}
	return NewGrid(dim, xf, bc)
}

// Vec is a per-axis float tuple (coordinates, gravity, forces)
type Vec [MaxDim]float64

func (g *Grid) setupAxis(a int, xf []float64) {
	var (
		n = len(xf) - 1 // interior cells
		N = n + 2       // extended extent
	)
	g.N[a] = N
	g.Delta[a] = make([]float64, N)
	g.DeltaU[a] = make([]float64, N)
	g.X[a] = make([]float64, N)
	g.Xp[a] = make([]float64, N)
	for i := 1; i <= n; i++ {
		g.Delta[a][i] = xf[i] - xf[i-1]
	}
	// Ghost widths wrap for periodic axes, mirror otherwise
	if g.BC[a][0] == BCPeriodic {
		g.Delta[a][0] = g.Delta[a][n]
		g.Delta[a][N-1] = g.Delta[a][1]
	} else {
		g.Delta[a][0] = g.Delta[a][1]
		g.Delta[a][N-1] = g.Delta[a][n]
	}
	for i := 0; i <= n; i++ {
		g.X[a][i] = xf[i]
	}
	g.X[a][N-1] = xf[n] + g.Delta[a][N-1] // unused slot, extrapolated
	for i := 1; i <= n; i++ {
		g.Xp[a][i] = 0.5 * (xf[i-1] + xf[i])
	}
	g.Xp[a][0] = xf[0] - 0.5*g.Delta[a][0]
	g.Xp[a][N-1] = xf[n] + 0.5*g.Delta[a][N-1]
	for i := 0; i < N-1; i++ {
		g.DeltaU[a][i] = g.Xp[a][i+1] - g.Xp[a][i]
	}
	g.DeltaU[a][N-1] = g.DeltaU[a][N-2] // unused slot
}

func (g *Grid) setupIndexSets() {
	var (
		d      = g.Dim.D()
		lo, hi MultiIndex
	)
	for a := 0; a < MaxDim; a++ {
		if a < d {
			lo[a], hi[a] = 1, g.N[a]-1
		} else {
			lo[a], hi[a] = 0, 1
		}
	}
	g.Ip = IndexSet{Lo: lo, Hi: hi}
	for alpha := 0; alpha < d; alpha++ {
		s := g.Ip
		if g.BC[alpha][1] != BCPeriodic {
			// The face on the high boundary is prescribed, not a DOF. Under
			// periodicity faces 1..n are DOFs and face 0 wraps from face n.
			s.Hi[alpha]--
		}
		g.Iu[alpha] = s
	}
}

func (g *Grid) setupWeights() {
	var (
		d = g.Dim.D()
	)
	for alpha := 0; alpha < d; alpha++ {
		var (
			N   = g.N[alpha]
			clo = make([]float64, N)
			chi = make([]float64, N)
		)
		// Centers i, i+1 onto face i
		for i := 0; i < N-1; i++ {
			clo[i] = (g.Xp[alpha][i+1] - g.X[alpha][i]) / g.DeltaU[alpha][i]
			chi[i] = 1 - clo[i]
		}
		g.CLo[alpha] = clo
		g.CHi[alpha] = chi
	}
	for beta := 0; beta < d; beta++ {
		for alpha := 0; alpha < d; alpha++ {
			if beta == alpha {
				var (
					N  = g.N[alpha]
					lo = make([]float64, N)
					hi = make([]float64, N)
				)
				// Faces i-1, i onto center i
				for i := 1; i < N; i++ {
					w := g.X[alpha][i] - g.X[alpha][i-1]
					lo[i] = (g.X[alpha][i] - g.Xp[alpha][i]) / w
					hi[i] = 1 - lo[i]
				}
				g.ALo[beta][alpha] = lo
				g.AHi[beta][alpha] = hi
			} else {
				g.ALo[beta][alpha] = g.CLo[alpha]
				g.AHi[beta][alpha] = g.CHi[alpha]
			}
		}
	}
}

// Omega returns the pressure-cell volume at I
func (g *Grid) Omega(I MultiIndex) (w float64) {
	w = 1
	for a := 0; a < MaxDim; a++ {
		w *= g.Delta[a][I[a]]
	}
	return
}

// Np returns the number of interior pressure points
func (g *Grid) Np() int { return g.Ip.Len() }

// Nu returns the number of interior faces of component alpha
func (g *Grid) Nu(alpha int) int { return g.Iu[alpha].Len() }
