package pump

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimate(t *testing.T) {
	curves := []Curve{
		{0, 0, 0.82, -135},
		{4.11331682e-05, -2.42744217e-02, 5.12851003e+00, -3.38448966e+02},
		{-1.72290739e-05, 1.20133993e-02, -2.54089495e+00, 1.76741358e+02},
		{1, 1, 1, 1},
	}
	duties := []float64{-10, 0, 0.5, 40, 120, 200, 255, 1000}

	for _, c := range curves {
		for _, d := range duties {
			want := c.A*d*d*d + c.B*d*d + c.C*d + c.D
			assert.InDelta(t, want, Estimate(d, c), 1e-9)
			assert.Equal(t, Estimate(d, c), c.Estimate(d))
		}
	}
}

func TestEstimate_LinearMotorB(t *testing.T) {
	assert.InDelta(t, 29.0, Estimate(200, Curve{C: 0.82, D: -135}), 1e-9)
}

func TestEstimate_Zero(t *testing.T) {
	assert.Equal(t, -135.0, Estimate(0, Curve{C: 0.82, D: -135}))
}

func TestNewTable(t *testing.T) {
	table := testTable()
	assert.Equal(t, 4, table.Len())

	c, ok := table.Curve(MotorB, Forward)
	require.True(t, ok)
	assert.Equal(t, Curve{0, 0, 0.82, -135}, c)

	c, ok = table.Curve(MotorA, Reverse)
	require.True(t, ok)
	assert.Equal(t, Curve{0, 0, 0.81, -139}, c)
}

func TestTable_OffUsesForward(t *testing.T) {
	table := testTable()
	off, ok := table.Curve(MotorA, Off)
	require.True(t, ok)
	fwd, _ := table.Curve(MotorA, Forward)
	assert.Equal(t, fwd, off)
}

func TestNewTable_Errors(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		wantErr error
	}{
		{
			name:    "duplicate pair",
			entries: []Entry{{MotorA, Forward, Curve{}}, {MotorA, Forward, Curve{C: 1}}},
			wantErr: ErrDuplicateCurve,
		},
		{
			name:    "off direction",
			entries: []Entry{{MotorA, Off, Curve{}}},
			wantErr: ErrInvalidDirection,
		},
		{
			name:    "unknown motor",
			entries: []Entry{{MotorID(7), Forward, Curve{}}},
			wantErr: ErrUnknownMotor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.entries...)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTable_Validate(t *testing.T) {
	table, err := NewTable(Entry{MotorA, Forward, Curve{}})
	require.NoError(t, err)

	assert.ErrorIs(t, table.Validate(MotorA), ErrMissingCurve)
	assert.ErrorIs(t, table.Validate(MotorB), ErrMissingCurve)
	assert.NoError(t, testTable().Validate(MotorB))

	var nilTable *Table
	assert.ErrorIs(t, nilTable.Validate(MotorA), ErrMissingCurve)
}
