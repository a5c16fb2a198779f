// Package fit derives calibration curves from measured duty/flow points.
package fit

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/itohio/gopump/pkg/pump"
)

// Degree is the polynomial degree of a calibration curve.
const Degree = 3

// ErrTooFewPoints is returned when fewer than Degree+1 distinct duty values are given.
var ErrTooFewPoints = errors.New("not enough calibration points")

// Point is one measured flow rate at a duty cycle.
type Point struct {
	Duty float64
	Flow float64
}

// Result is a fitted curve and its coefficient of determination over the input points.
type Result struct {
	Curve    pump.Curve
	RSquared float64
}

// Cubic fits flow = a*d^3 + b*d^2 + c*d + d0 to the points by least squares.
func Cubic(points []Point) (Result, error) {
	if distinct(points) < Degree+1 {
		return Result{}, fmt.Errorf("%w: need %d distinct duty values, got %d", ErrTooFewPoints, Degree+1, distinct(points))
	}

	// Duty is normalized to [-1, 1] to keep the Vandermonde matrix well conditioned.
	scale := 0.0
	for _, p := range points {
		scale = math.Max(scale, math.Abs(p.Duty))
	}

	n := len(points)
	x := mat.NewDense(n, Degree+1, nil)
	y := mat.NewVecDense(n, nil)
	for i, p := range points {
		u := p.Duty / scale
		x.Set(i, 0, u*u*u)
		x.Set(i, 1, u*u)
		x.Set(i, 2, u)
		x.Set(i, 3, 1)
		y.SetVec(i, p.Flow)
	}

	var beta mat.VecDense
	if err := beta.SolveVec(x, y); err != nil {
		return Result{}, fmt.Errorf("failed to solve calibration fit: %w", err)
	}

	curve := pump.Curve{
		A: beta.AtVec(0) / (scale * scale * scale),
		B: beta.AtVec(1) / (scale * scale),
		C: beta.AtVec(2) / scale,
		D: beta.AtVec(3),
	}

	estimates := make([]float64, n)
	values := make([]float64, n)
	for i, p := range points {
		estimates[i] = curve.Estimate(p.Duty)
		values[i] = p.Flow
	}

	return Result{
		Curve:    curve,
		RSquared: stat.RSquaredFrom(estimates, values, nil),
	}, nil
}

func distinct(points []Point) int {
	seen := make(map[float64]struct{}, len(points))
	for _, p := range points {
		seen[p.Duty] = struct{}{}
	}
	return len(seen)
}
