package closure

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/goins/field"
	"github.com/notargets/goins/grid"
)

/*
TensorBasis returns the fixed polynomial basis in the strain S and rotation R
at pressure point I, used as features for data-driven closures:

	2D: 3 tensors {I, S, SR-RS} and 2 invariants {tr S², tr R²}
	3D: the 11-tensor integrity basis (identity plus the ten Pope tensors)
	    and 5 invariants {tr S², tr R², tr S³, tr SR², tr S²R²}

The element-for-element enumeration is a fixed mathematical contract.
*/
func TensorBasis(g *grid.Grid, u *field.Vector, I grid.MultiIndex) (T []*mat.Dense, V []float64, err error) {
	var (
		d = g.Dim.D()
	)
	if u.Len() != d {
		err = fmt.Errorf("dimension mismatch: velocity has %d components, grid is %dD",
			u.Len(), d)
		return
	}
	var (
		G = mat.NewDense(d, d, nil)
		S = mat.NewDense(d, d, nil)
		R = mat.NewDense(d, d, nil)
	)
	GradTensor(g, u, I, G)
	StrainRotation(G, S, R)
	if d == 2 {
		T = []*mat.Dense{
			eye(2),
			S,
			sub(mul(S, R), mul(R, S)),
		}
		V = []float64{
			mat.Trace(mul(S, S)),
			mat.Trace(mul(R, R)),
		}
		return
	}
	var (
		S2   = mul(S, S)
		R2   = mul(R, R)
		SR   = mul(S, R)
		RS   = mul(R, S)
		SR2  = mul(S, R2)
		R2S  = mul(R2, S)
		S2R2 = mul(S2, R2)
	)
	T = []*mat.Dense{
		eye(3),
		S,
		sub(SR, RS),
		dev(S2, mat.Trace(S2)),
		dev(R2, mat.Trace(R2)),
		sub(mul(R, S2), mul(S2, R)),
		devScaled(add(R2S, SR2), mat.Trace(SR2)),
		sub(mul(RS, R2), mul(R2, mul(S, R))),
		sub(mul(SR, S2), mul(S2, mul(R, S))),
		devScaled(add(mul(R2, S2), mul(S2, R2)), mat.Trace(S2R2)),
		sub(mul(R, mul(S2, R2)), mul(R2, mul(S2, R))),
	}
	V = []float64{
		mat.Trace(S2),
		mat.Trace(R2),
		mat.Trace(mul(S2, S)),
		mat.Trace(SR2),
		mat.Trace(S2R2),
	}
	return
}

func eye(d int) (M *mat.Dense) {
	M = mat.NewDense(d, d, nil)
	for i := 0; i < d; i++ {
		M.Set(i, i, 1)
	}
	return
}

func mul(a, b *mat.Dense) (M *mat.Dense) {
	r, _ := a.Dims()
	_, c := b.Dims()
	M = mat.NewDense(r, c, nil)
	M.Mul(a, b)
	return
}

func add(a, b *mat.Dense) (M *mat.Dense) {
	r, c := a.Dims()
	M = mat.NewDense(r, c, nil)
	M.Add(a, b)
	return
}

func sub(a, b *mat.Dense) (M *mat.Dense) {
	r, c := a.Dims()
	M = mat.NewDense(r, c, nil)
	M.Sub(a, b)
	return
}

// dev removes tr/3 of the identity (deviatoric part)
func dev(a *mat.Dense, tr float64) (M *mat.Dense) {
	r, c := a.Dims()
	M = mat.NewDense(r, c, nil)
	M.CloneFrom(a)
	for i := 0; i < r; i++ {
		M.Set(i, i, M.At(i, i)-tr/3)
	}
	return
}

// devScaled removes 2·tr/3 of the identity, the normalization the symmetric
// pair tensors carry in the integrity basis
func devScaled(a *mat.Dense, tr float64) (M *mat.Dense) {
	r, c := a.Dims()
	M = mat.NewDense(r, c, nil)
	M.CloneFrom(a)
	for i := 0; i < r; i++ {
		M.Set(i, i, M.At(i, i)-2*tr/3)
	}
	return
}
