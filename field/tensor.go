package field

import (
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/goins/grid"
)

// Tensor stores one D×D matrix per pressure point, flat over the extended
// domain. Closure buffers of this type are allocated once at setup and reused
// across evaluations; they are never persisted beyond one call chain.
type Tensor struct {
	Data []float64
	N    grid.MultiIndex
	D    int
	strd grid.MultiIndex
}

func NewTensor(g *grid.Grid) (t *Tensor) {
	var (
		d  = g.Dim.D()
		dd = d * d
	)
	t = &Tensor{N: g.N, D: d}
	t.strd[2] = dd
	t.strd[1] = g.N[2] * dd
	t.strd[0] = g.N[1] * g.N[2] * dd
	t.Data = make([]float64, g.N[0]*t.strd[0])
	return
}

func (t *Tensor) Idx(I grid.MultiIndex) int {
	return I[0]*t.strd[0] + I[1]*t.strd[1] + I[2]*t.strd[2]
}

func (t *Tensor) At(I grid.MultiIndex, r, c int) float64 {
	return t.Data[t.Idx(I)+r*t.D+c]
}

func (t *Tensor) Set(I grid.MultiIndex, r, c int, v float64) {
	t.Data[t.Idx(I)+r*t.D+c] = v
}

// Matrix returns a gonum view sharing the point's backing storage
func (t *Tensor) Matrix(I grid.MultiIndex) *mat.Dense {
	off := t.Idx(I)
	return mat.NewDense(t.D, t.D, t.Data[off:off+t.D*t.D])
}

func (t *Tensor) Zero() {
	for i := range t.Data {
		t.Data[i] = 0
	}
}
