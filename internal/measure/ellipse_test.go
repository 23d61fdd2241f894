package measure_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"bodyscan-recon/internal/measure"
)

// conicPoints samples an ellipse with semi-axes a and b, rotated by phi
// and centered at (cx, cy).
func conicPoints(n int, a, b, phi, cx, cy float64) (xs, ys []float64) {
	xs = make([]float64, n)
	ys = make([]float64, n)
	for i := 0; i < n; i++ {
		th := 2 * math.Pi * float64(i) / float64(n)
		x := a * math.Cos(th)
		y := b * math.Sin(th)
		xs[i] = cx + x*math.Cos(phi) - y*math.Sin(phi)
		ys[i] = cy + x*math.Sin(phi) + y*math.Cos(phi)
	}
	return xs, ys
}

// TestFitEllipseCircle verifies recovering a circle's center and
// radius.
func TestFitEllipseCircle(t *testing.T) {
	xs, ys := conicPoints(12, 15, 15, 0, 3, -2)
	e, ok := measure.FitEllipse(xs, ys)
	require.True(t, ok)
	require.InDelta(t, 3, e.CX, 1e-8)
	require.InDelta(t, -2, e.CY, 1e-8)
	require.InDelta(t, 15, e.A, 1e-8)
	require.InDelta(t, 15, e.B, 1e-8)
	require.InDelta(t, 2*math.Pi*15, e.Circumference(), 1e-6)
}

// TestFitEllipseRotated verifies recovering a rotated, offset ellipse
// with the semi-axes sorted major first.
func TestFitEllipseRotated(t *testing.T) {
	xs, ys := conicPoints(16, 20, 10, math.Pi/6, 5, 5)
	e, ok := measure.FitEllipse(xs, ys)
	require.True(t, ok)
	require.InDelta(t, 5, e.CX, 1e-8)
	require.InDelta(t, 5, e.CY, 1e-8)
	require.InDelta(t, 20, e.A, 1e-7)
	require.InDelta(t, 10, e.B, 1e-7)
	require.InDelta(t, measure.Ramanujan(20, 10), e.Circumference(), 1e-7)
}

// TestFitEllipseTooFewPoints verifies the minimum sample guard and the
// length mismatch guard.
func TestFitEllipseTooFewPoints(t *testing.T) {
	xs, ys := conicPoints(4, 10, 10, 0, 0, 0)
	_, ok := measure.FitEllipse(xs, ys)
	require.False(t, ok)

	_, ok = measure.FitEllipse([]float64{1, 2, 3, 4, 5}, []float64{1, 2, 3})
	require.False(t, ok)
}

// TestFitEllipseRejectsDegenerate verifies rejection of collinear and
// hyperbolic point sets.
func TestFitEllipseRejectsDegenerate(t *testing.T) {
	var xs, ys []float64
	for i := 0; i < 8; i++ {
		x := float64(i + 1)
		xs = append(xs, x)
		ys = append(ys, 2*x)
	}
	_, ok := measure.FitEllipse(xs, ys)
	require.False(t, ok)

	xs = xs[:0]
	ys = ys[:0]
	for _, v := range []float64{-3, -2, -1.5, -1, 1, 1.5, 2, 3} {
		xs = append(xs, v)
		ys = append(ys, 1/v)
	}
	_, ok = measure.FitEllipse(xs, ys)
	require.False(t, ok)
}

// TestRamanujan verifies the perimeter approximation on circles and
// degenerate input.
func TestRamanujan(t *testing.T) {
	require.InDelta(t, 2*math.Pi*10, measure.Ramanujan(10, 10), 1e-9)
	require.Zero(t, measure.Ramanujan(0, 0))

	// For a fixed a+b, the circle minimizes the perimeter.
	require.Greater(t, measure.Ramanujan(20, 10), measure.Ramanujan(15, 15))
}
