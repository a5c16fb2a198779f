package fit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/gopump/pkg/pump"
)

func pointsFrom(c pump.Curve, duties ...float64) []Point {
	points := make([]Point, 0, len(duties))
	for _, d := range duties {
		points = append(points, Point{Duty: d, Flow: c.Estimate(d)})
	}
	return points
}

func TestCubic_Linear(t *testing.T) {
	want := pump.Curve{C: 0.82, D: -135}
	res, err := Cubic(pointsFrom(want, 40, 80, 120, 160, 200))
	require.NoError(t, err)

	assert.InDelta(t, 0, res.Curve.A, 1e-6)
	assert.InDelta(t, 0, res.Curve.B, 1e-4)
	assert.InDelta(t, 0.82, res.Curve.C, 1e-3)
	assert.InDelta(t, -135, res.Curve.D, 1e-2)
	assert.InDelta(t, 1.0, res.RSquared, 1e-9)
	assert.InDelta(t, 29.0, res.Curve.Estimate(200), 1e-4)
}

func TestCubic_RecoversCubic(t *testing.T) {
	want := pump.Curve{A: 4.11331682e-05, B: -2.42744217e-02, C: 5.12851003e+00, D: -3.38448966e+02}
	points := pointsFrom(want, 40, 60, 80, 100, 120, 140, 160, 180, 200)

	res, err := Cubic(points)
	require.NoError(t, err)
	for _, p := range points {
		assert.InDelta(t, p.Flow, res.Curve.Estimate(p.Duty), 1e-4)
	}
	assert.InDelta(t, 1.0, res.RSquared, 1e-9)
}

func TestCubic_NoisyPointsStillFit(t *testing.T) {
	points := []Point{
		{40, -100.5}, {60, -86.0}, {80, -69.2}, {100, -53.1},
		{120, -36.8}, {140, -20.0}, {160, -4.1}, {200, 28.7},
	}
	res, err := Cubic(points)
	require.NoError(t, err)
	assert.Greater(t, res.RSquared, 0.99)
	assert.Less(t, res.RSquared, 1.0+1e-12)
}

func TestCubic_TooFewPoints(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
	}{
		{"empty", nil},
		{"three points", []Point{{40, 1}, {100, 2}, {200, 3}}},
		{"repeated duty", []Point{{40, 1}, {40, 1.1}, {100, 2}, {200, 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Cubic(tt.points)
			assert.ErrorIs(t, err, ErrTooFewPoints)
		})
	}
}
