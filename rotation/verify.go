package rotation

import "gonum.org/v1/gonum/mat"

// OrthonormalityResidual cross-checks that m is orthonormal by computing
// ||m*m^T - I||_F through gonum's general dense solver rather than the
// fixed-array math used on the per-query hot path (dcm.go). This is a
// verification utility called only from tests — not the
// composition path itself, which stays allocation-free (see DESIGN.md for
// why gonum is confined to this boundary).
func OrthonormalityResidual(m [3][3]float64) float64 {
	d := mat.NewDense(3, 3, flatten(m))
	mt := mat.NewDense(3, 3, flatten(matTranspose(m)))

	var prod mat.Dense
	prod.Mul(d, mt)

	ident := mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})

	var diff mat.Dense
	diff.Sub(&prod, ident)
	return mat.Norm(&diff, 2)
}

func flatten(m [3][3]float64) []float64 {
	return []float64{
		m[0][0], m[0][1], m[0][2],
		m[1][0], m[1][1], m[1][2],
		m[2][0], m[2][1], m[2][2],
	}
}
