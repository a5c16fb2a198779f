package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/itohio/gopump/pkg/fit"
	"github.com/itohio/gopump/pkg/hw"
	"github.com/itohio/gopump/pkg/pump"
)

// ErrNoCurveData is returned for a calibration entry without coefficients or points.
var ErrNoCurveData = errors.New("calibration entry has neither coefficients nor points")

// ParseMotorID converts "A"/"B" into a motor id.
func ParseMotorID(s string) (pump.MotorID, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return pump.MotorA, nil
	case "B":
		return pump.MotorB, nil
	default:
		return 0, fmt.Errorf("%w: %q", pump.ErrUnknownMotor, s)
	}
}

// ParseDirection converts off/forward/reverse into a direction.
func ParseDirection(s string) (pump.Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "o":
		return pump.Off, nil
	case "forward", "f":
		return pump.Forward, nil
	case "reverse", "r":
		return pump.Reverse, nil
	default:
		return pump.Off, fmt.Errorf("%w: %q", pump.ErrInvalidDirection, s)
	}
}

// Pump converts the assembly into core configuration.
func (a AssemblyConfig) Pump() (pump.MotorConfig, pump.SwitchConfig, error) {
	id, err := ParseMotorID(a.Motor.ID)
	if err != nil {
		return pump.MotorConfig{}, pump.SwitchConfig{}, err
	}

	m := pump.MotorConfig{
		ID:      id,
		Enable:  pump.Pin(a.Motor.Enable),
		Input1:  pump.Pin(a.Motor.Input1),
		Input2:  pump.Pin(a.Motor.Input2),
		MinDuty: a.Motor.MinDuty,
		MaxDuty: a.Motor.MaxDuty,
	}
	s := pump.SwitchConfig{
		Forward: pump.Pin(a.Switches.Forward),
		Reverse: pump.Pin(a.Switches.Reverse),
		Pot:     pump.Pin(a.Switches.Pot),
	}
	return m, s, nil
}

// Curve returns the configured coefficients, or fits them from the points.
func (c CurveConfig) Curve() (pump.Curve, error) {
	if c.Coefficients != nil {
		return pump.Curve{A: c.Coefficients.A, B: c.Coefficients.B, C: c.Coefficients.C, D: c.Coefficients.D}, nil
	}
	if len(c.Points) == 0 {
		return pump.Curve{}, ErrNoCurveData
	}
	res, err := fit.Cubic(c.points())
	if err != nil {
		return pump.Curve{}, err
	}
	return res.Curve, nil
}

func (c CurveConfig) points() []fit.Point {
	points := make([]fit.Point, len(c.Points))
	for i, p := range c.Points {
		points[i] = fit.Point{Duty: p.Duty, Flow: p.Flow}
	}
	return points
}

// Table builds the calibration table from the calibration entries.
func (c *Config) Table() (*pump.Table, error) {
	entries := make([]pump.Entry, 0, len(c.Calibration))
	for i, cc := range c.Calibration {
		e, err := cc.entry()
		if err != nil {
			return nil, fmt.Errorf("calibration[%d]: %w", i, err)
		}
		entries = append(entries, e)
	}
	return pump.NewTable(entries...)
}

func (c CurveConfig) entry() (pump.Entry, error) {
	id, err := ParseMotorID(c.Motor)
	if err != nil {
		return pump.Entry{}, err
	}
	dir, err := ParseDirection(c.Direction)
	if err != nil {
		return pump.Entry{}, err
	}
	curve, err := c.Curve()
	if err != nil {
		return pump.Entry{}, fmt.Errorf("motor %s %s: %w", id, dir, err)
	}
	return pump.Entry{Motor: id, Direction: dir, Curve: curve}, nil
}

// FitResult reports the fit of one calibration entry.
type FitResult struct {
	Motor     string
	Direction string
	fit.Result
}

// Fit replaces the coefficients of every entry that has points with a fresh
// least-squares fit. Entries with only coefficients are left untouched.
func (c *Config) Fit() ([]FitResult, error) {
	var results []FitResult
	for i := range c.Calibration {
		cc := &c.Calibration[i]
		if len(cc.Points) == 0 {
			continue
		}
		res, err := fit.Cubic(cc.points())
		if err != nil {
			return nil, fmt.Errorf("calibration[%d] motor %s %s: %w", i, cc.Motor, cc.Direction, err)
		}
		cc.Coefficients = &Coefficients{A: res.Curve.A, B: res.Curve.B, C: res.Curve.C, D: res.Curve.D}
		results = append(results, FitResult{Motor: cc.Motor, Direction: cc.Direction, Result: res})
	}
	return results, nil
}

// Build creates a controller on io and configures every assembly. Analog reads
// are averaged when more than one sample per tick is configured. Any
// configuration error is returned before a single tick can run.
func (c *Config) Build(io pump.IO, sink pump.Sink) (*pump.Controller, []*pump.Assembly, error) {
	table, err := c.Table()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build calibration table: %w", err)
	}

	if c.Clock.AnalogSamples > 1 {
		io = hw.NewAveraging(io, c.Clock.AnalogSamples)
	}

	ctrl := pump.NewController(io, sink, table)
	assemblies := make([]*pump.Assembly, 0, len(c.Assemblies))
	for i, ac := range c.Assemblies {
		m, s, err := ac.Pump()
		if err != nil {
			return nil, nil, fmt.Errorf("assemblies[%d]: %w", i, err)
		}
		a, err := ctrl.Configure(m, s)
		if err != nil {
			return nil, nil, fmt.Errorf("assemblies[%d]: %w", i, err)
		}
		assemblies = append(assemblies, a)
	}
	return ctrl, assemblies, nil
}
