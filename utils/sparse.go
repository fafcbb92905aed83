package utils

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// DOK is a growable coordinate accumulator for sparse assembly. Add sums into
// an entry, which is what boundary-adjusted stencil assembly needs: a face can
// contribute to the same (row, col) pair more than once (for example a
// Symmetric mirror cancelling against its own diagonal term).
type DOK struct {
	M *sparse.DOK
}

func NewDOK(nr, nc int) (R DOK) {
	R = DOK{sparse.NewDOK(nr, nc)}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m DOK) Dims() (r, c int) { return m.M.Dims() }
func (m DOK) At(i, j int) float64 { return m.M.At(i, j) }
func (m DOK) T() mat.Matrix { return m.M.T() }

func (m DOK) Set(i, j int, v float64) { m.M.Set(i, j, v) }

// Add accumulates v into entry (i, j)
func (m DOK) Add(i, j int, v float64) {
	if v == 0 {
		return
	}
	m.M.Set(i, j, m.M.At(i, j)+v)
}

func (m DOK) NNZ() int { return m.M.NNZ() }

// ToCSR finalizes the accumulator into compressed sparse row form
func (m DOK) ToCSR() CSR {
	return CSR{M: m.M.ToCSR()}
}

// CSR wraps a compressed sparse row matrix for consumption by linear solvers
type CSR struct {
	M *sparse.CSR
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m CSR) Dims() (r, c int) { return m.M.Dims() }
func (m CSR) At(i, j int) float64 { return m.M.At(i, j) }
func (m CSR) T() mat.Matrix { return m.M.T() }

func (m CSR) NNZ() int { return m.M.NNZ() }

// MulVec computes y = M·x over the nonzero structure
func (m CSR) MulVec(x []float64) (y []float64, err error) {
	var (
		nr, nc = m.M.Dims()
	)
	if len(x) != nc {
		err = fmt.Errorf("dimension mismatch in sparse MulVec: matrix is %dx%d, vector length %d",
			nr, nc, len(x))
		return
	}
	y = make([]float64, nr)
	m.M.DoNonZero(func(i, j int, v float64) {
		y[i] += v * x[j]
	})
	return
}
