package measure

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Ellipse is a fitted conic reduced to its center and semi-axes.
type Ellipse struct {
	CX, CY float64
	A, B   float64
}

// FitEllipse least-squares fits the general conic
// Ax² + Bxy + Cy² + Dx + Ey = 1 to the point set and extracts the
// ellipse parameters in closed form. ok is false when the fit is
// under-determined, degenerate, or not an ellipse.
func FitEllipse(xs, ys []float64) (Ellipse, bool) {
	var e Ellipse
	n := len(xs)
	if n < 5 || len(ys) != n {
		return e, false
	}

	design := mat.NewDense(n, 5, nil)
	rhs := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		x, y := xs[i], ys[i]
		design.Set(i, 0, x*x)
		design.Set(i, 1, x*y)
		design.Set(i, 2, y*y)
		design.Set(i, 3, x)
		design.Set(i, 4, y)
		rhs.SetVec(i, 1)
	}

	var sol mat.VecDense
	if err := sol.SolveVec(design, rhs); err != nil {
		return e, false
	}

	a, b, c := sol.AtVec(0), sol.AtVec(1), sol.AtVec(2)
	d, f := sol.AtVec(3), sol.AtVec(4)
	const g = -1.0 // conic constant term, moved to the right-hand side above

	disc := b*b - 4*a*c
	if !(disc < 0) {
		return e, false
	}

	e.CX = (2*c*d - b*f) / disc
	e.CY = (2*a*f - b*d) / disc

	num := 2 * (a*f*f + c*d*d - b*d*f + disc*g)
	root := math.Sqrt((a-c)*(a-c) + b*b)
	major := num * (a + c + root)
	minor := num * (a + c - root)
	if major < 0 || minor < 0 {
		return e, false
	}

	e.A = -math.Sqrt(major) / disc
	e.B = -math.Sqrt(minor) / disc
	if !(e.A > 0) || !(e.B > 0) || math.IsInf(e.A, 0) || math.IsInf(e.B, 0) {
		return e, false
	}
	return e, true
}

// Circumference approximates the ellipse perimeter with Ramanujan's
// second formula, accurate to well under a millimeter at body scales.
func (e Ellipse) Circumference() float64 {
	return Ramanujan(e.A, e.B)
}

// Ramanujan is the perimeter approximation
// π(a+b)(1 + 3h/(10+√(4−3h))) with h = ((a−b)/(a+b))².
func Ramanujan(a, b float64) float64 {
	sum := a + b
	if sum <= 0 {
		return 0
	}
	h := (a - b) / sum
	h *= h
	return math.Pi * sum * (1 + 3*h/(10+math.Sqrt(4-3*h)))
}
