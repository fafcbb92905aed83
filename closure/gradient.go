package closure

import (
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/goins/field"
	"github.com/notargets/goins/grid"
)

/*
GradTensor fills G with the D×D velocity-gradient matrix ∇u at pressure point
I. The diagonal (same-axis) derivative is a plain difference of the cell's two
faces. Off-diagonal derivatives live naturally at cell corners, so each is the
average of the four corner differences adjacent to the cell. The values must
be brought to the pressure point before any tensor algebra is meaningful.
*/
func GradTensor(g *grid.Grid, u *field.Vector, I grid.MultiIndex, G *mat.Dense) {
	var (
		d = g.Dim.D()
	)
	for a := 0; a < d; a++ {
		var (
			ua = u.Cmp[a]
			i  = ua.Idx(I)
			sa = ua.Stride(a)
		)
		G.Set(a, a, (ua.Data[i]-ua.Data[i-sa])/g.Delta[a][I[a]])
		for b := 0; b < d; b++ {
			if b == a {
				continue
			}
			var (
				sb = ua.Stride(b)
				ib = I[b]
				s  float64
			)
			for _, f := range [2]int{i - sa, i} {
				s += (ua.Data[f+sb] - ua.Data[f]) / g.DeltaU[b][ib]
				s += (ua.Data[f] - ua.Data[f-sb]) / g.DeltaU[b][ib-1]
			}
			G.Set(a, b, 0.25*s)
		}
	}
}

// StrainRotation splits a gradient tensor into its symmetric strain part
// S = (∇u + ∇uᵀ)/2 and antisymmetric rotation part R = (∇u - ∇uᵀ)/2
func StrainRotation(G, S, R *mat.Dense) {
	var (
		d, _ = G.Dims()
	)
	for i := 0; i < d; i++ {
		for j := 0; j < d; j++ {
			gij, gji := G.At(i, j), G.At(j, i)
			S.Set(i, j, 0.5*(gij+gji))
			R.Set(i, j, 0.5*(gij-gji))
		}
	}
}
