package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/gopump/pkg/fit"
	"github.com/itohio/gopump/pkg/hw"
	"github.com/itohio/gopump/pkg/pump"
)

func TestParseMotorID(t *testing.T) {
	id, err := ParseMotorID("a")
	require.NoError(t, err)
	assert.Equal(t, pump.MotorA, id)

	id, err = ParseMotorID(" B ")
	require.NoError(t, err)
	assert.Equal(t, pump.MotorB, id)

	_, err = ParseMotorID("C")
	assert.ErrorIs(t, err, pump.ErrUnknownMotor)
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in   string
		want pump.Direction
	}{
		{"off", pump.Off},
		{"Forward", pump.Forward},
		{"R", pump.Reverse},
	}
	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseDirection("sideways")
	assert.ErrorIs(t, err, pump.ErrInvalidDirection)
}

func TestTable_Default(t *testing.T) {
	table, err := Default().Table()
	require.NoError(t, err)
	assert.Equal(t, 4, table.Len())

	fwd, ok := table.Curve(pump.MotorB, pump.Forward)
	require.True(t, ok)
	rev, ok := table.Curve(pump.MotorB, pump.Reverse)
	require.True(t, ok)
	assert.Equal(t, fwd, rev)
}

func TestTable_FitsPoints(t *testing.T) {
	cfg := Default()
	cfg.Calibration[0].Coefficients = nil
	cfg.Calibration[0].Points = linearPoints(0.82, -135)

	table, err := cfg.Table()
	require.NoError(t, err)
	c, ok := table.Curve(pump.MotorA, pump.Forward)
	require.True(t, ok)
	assert.InDelta(t, 29.0, c.Estimate(200), 1e-6)
}

func TestTable_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{
			name:    "no data",
			mutate:  func(c *Config) { c.Calibration[0].Coefficients = nil },
			wantErr: ErrNoCurveData,
		},
		{
			name: "too few points",
			mutate: func(c *Config) {
				c.Calibration[0].Coefficients = nil
				c.Calibration[0].Points = []CalibrationPoint{{40, 1}, {100, 2}}
			},
			wantErr: fit.ErrTooFewPoints,
		},
		{
			name:    "bad motor",
			mutate:  func(c *Config) { c.Calibration[1].Motor = "Z" },
			wantErr: pump.ErrUnknownMotor,
		},
		{
			name:    "off direction",
			mutate:  func(c *Config) { c.Calibration[1].Direction = "off" },
			wantErr: pump.ErrInvalidDirection,
		},
		{
			name:    "duplicate",
			mutate:  func(c *Config) { c.Calibration[1].Direction = "forward" },
			wantErr: pump.ErrDuplicateCurve,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			_, err := cfg.Table()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFit(t *testing.T) {
	cfg := Default()
	cfg.Calibration[2].Coefficients = nil
	cfg.Calibration[2].Points = linearPoints(0.82, -135)

	results, err := cfg.Fit()
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "B", results[0].Motor)
	assert.Equal(t, "forward", results[0].Direction)
	assert.InDelta(t, 1.0, results[0].RSquared, 1e-9)

	require.NotNil(t, cfg.Calibration[2].Coefficients)
	assert.InDelta(t, 0.82, cfg.Calibration[2].Coefficients.C, 1e-6)
	assert.InDelta(t, -135, cfg.Calibration[2].Coefficients.D, 1e-6)
}

func TestFit_Error(t *testing.T) {
	cfg := Default()
	cfg.Calibration[0].Points = []CalibrationPoint{{40, 1}}
	_, err := cfg.Fit()
	assert.ErrorIs(t, err, fit.ErrTooFewPoints)
}

func TestBuild(t *testing.T) {
	io := hw.NewMock()
	var reports []pump.Status
	ctrl, assemblies, err := Default().Build(io, pump.SinkFunc(func(s pump.Status) { reports = append(reports, s) }))
	require.NoError(t, err)
	require.Len(t, assemblies, 2)

	io.SetAnalog(15, 1023)
	io.Press(12)
	s := ctrl.Tick(assemblies[1])

	assert.Equal(t, 200, s.Duty)
	assert.Equal(t, pump.Forward, assemblies[1].Direction())
	require.Len(t, reports, 1)
	assert.Equal(t, pump.MotorB, reports[0].Motor)
}

func TestBuild_MissingCurveFailsBeforeTick(t *testing.T) {
	cfg := Default()
	cfg.Calibration = cfg.Calibration[:3] // drop motor B reverse

	io := hw.NewMock()
	ctrl, assemblies, err := cfg.Build(io, nil)
	assert.ErrorIs(t, err, pump.ErrMissingCurve)
	assert.Nil(t, ctrl)
	assert.Nil(t, assemblies)
}

func TestBuild_PinConflict(t *testing.T) {
	cfg := Default()
	cfg.Assemblies[1].Switches.Pot = cfg.Assemblies[0].Switches.Pot

	_, _, err := cfg.Build(hw.NewMock(), nil)
	assert.ErrorIs(t, err, pump.ErrPinConflict)
}

func linearPoints(c, d float64) []CalibrationPoint {
	var points []CalibrationPoint
	for duty := 40.0; duty <= 200; duty += 20 {
		points = append(points, CalibrationPoint{Duty: duty, Flow: c*duty + d})
	}
	return points
}
