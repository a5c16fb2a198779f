package pump

import "fmt"

// Assembly bundles one motor, its switches and the result of its last tick.
// It is only mutated by the Controller that configured it.
type Assembly struct {
	motor     MotorConfig
	switches  SwitchConfig
	curves    [3]Curve // indexed by Direction
	sample    FlowSample
	direction Direction
}

// Motor returns the motor configuration.
func (a *Assembly) Motor() MotorConfig { return a.motor }

// Switches returns the switch configuration.
func (a *Assembly) Switches() SwitchConfig { return a.switches }

// Sample returns the result of the last tick.
func (a *Assembly) Sample() FlowSample { return a.sample }

// Direction returns the direction resolved on the last tick.
func (a *Assembly) Direction() Direction { return a.direction }

// Controller runs the flow pipeline for up to two assemblies sharing one IO.
// It is not safe for concurrent use; ticks are expected from a single caller.
type Controller struct {
	io         IO
	table      *Table
	actuator   *Actuator
	assemblies []*Assembly
	pins       map[Pin]string
}

// NewController creates a controller. The calibration table is consulted at
// Configure time only.
func NewController(io IO, sink Sink, table *Table) *Controller {
	return &Controller{
		io:       io,
		table:    table,
		actuator: NewActuator(io, sink),
		pins:     make(map[Pin]string),
	}
}

// Configure validates the motor and switches, initializes their lines and returns
// the assembly handle. The motor is left stopped.
func (c *Controller) Configure(m MotorConfig, s SwitchConfig) (*Assembly, error) {
	a, err := c.validate(m, s)
	if err != nil {
		return nil, &ConfigError{Motor: m.ID, Err: err}
	}

	for pin, name := range assemblyPins(m, s) {
		c.pins[pin] = fmt.Sprintf("motor %s %s", m.ID, name)
	}
	c.assemblies = append(c.assemblies, a)

	c.io.ConfigurePin(s.Forward, PinInputPullup)
	c.io.ConfigurePin(s.Reverse, PinInputPullup)
	c.io.ConfigurePin(s.Pot, PinAnalog)
	c.io.ConfigurePin(m.Enable, PinOutput)
	c.io.ConfigurePin(m.Input1, PinOutput)
	c.io.ConfigurePin(m.Input2, PinOutput)
	c.io.WriteDigital(m.Enable, false)
	c.io.WriteDigital(m.Input1, false)
	c.io.WriteDigital(m.Input2, false)

	return a, nil
}

func (c *Controller) validate(m MotorConfig, s SwitchConfig) (*Assembly, error) {
	if !m.ID.Valid() {
		return nil, ErrUnknownMotor
	}
	if m.MinDuty > m.MaxDuty {
		return nil, fmt.Errorf("%w: min %d > max %d", ErrInvalidRange, m.MinDuty, m.MaxDuty)
	}
	for _, a := range c.assemblies {
		if a.motor.ID == m.ID {
			return nil, ErrDuplicateMotor
		}
	}

	seen := make(map[Pin]string, 6)
	for _, line := range []struct {
		name string
		pin  Pin
	}{
		{"enable", m.Enable},
		{"input1", m.Input1},
		{"input2", m.Input2},
		{"forward switch", s.Forward},
		{"reverse switch", s.Reverse},
		{"potentiometer", s.Pot},
	} {
		if other, ok := seen[line.pin]; ok {
			return nil, fmt.Errorf("%w: pin %d used by %s and %s", ErrPinConflict, line.pin, other, line.name)
		}
		if other, ok := c.pins[line.pin]; ok {
			return nil, fmt.Errorf("%w: pin %d used by %s and %s", ErrPinConflict, line.pin, other, line.name)
		}
		seen[line.pin] = line.name
	}

	if err := c.table.Validate(m.ID); err != nil {
		return nil, err
	}

	a := &Assembly{motor: m, switches: s}
	for _, d := range []Direction{Off, Forward, Reverse} {
		a.curves[d], _ = c.table.Curve(m.ID, d)
	}
	return a, nil
}

func assemblyPins(m MotorConfig, s SwitchConfig) map[Pin]string {
	return map[Pin]string{
		m.Enable:  "enable",
		m.Input1:  "input1",
		m.Input2:  "input2",
		s.Forward: "forward switch",
		s.Reverse: "reverse switch",
		s.Pot:     "potentiometer",
	}
}

// Tick runs one pass of the pipeline for a: sample the potentiometer, map the duty
// cycle, resolve the direction from the switches, estimate the flow with the curve
// for that direction and actuate the motor.
func (c *Controller) Tick(a *Assembly) FlowSample {
	var s FlowSample
	s.Pot = c.io.ReadAnalog(a.switches.Pot)
	s.Duty = MapDuty(s.Pot, a.motor)

	// Switches are active low.
	d := ResolveDirection(
		!c.io.ReadDigital(a.switches.Forward),
		!c.io.ReadDigital(a.switches.Reverse),
	)

	s.Flow = Estimate(float64(s.Duty), a.curves[d])

	a.sample = s
	a.direction = d
	c.actuator.Apply(a.motor, d, s)

	return s
}

// TickAll ticks every configured assembly once.
func (c *Controller) TickAll() {
	for _, a := range c.assemblies {
		c.Tick(a)
	}
}

// StopAll stops every configured motor.
func (c *Controller) StopAll() {
	for _, a := range c.assemblies {
		a.direction = Off
		c.actuator.Stop(a.motor, a.sample)
	}
}

// Assemblies returns the configured assemblies in configuration order.
func (c *Controller) Assemblies() []*Assembly {
	out := make([]*Assembly, len(c.assemblies))
	copy(out, c.assemblies)
	return out
}
