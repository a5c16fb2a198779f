package pump

// Actuator is the only writer of motor control lines. A direction line is always
// released before the opposite one is raised, so both are never high together.
type Actuator struct {
	io   IO
	sink Sink
}

// NewActuator creates an actuator writing to io and reporting to sink. sink may be nil.
func NewActuator(io IO, sink Sink) *Actuator {
	return &Actuator{io: io, sink: sink}
}

// Stop removes power and releases both direction lines.
func (a *Actuator) Stop(m MotorConfig, s FlowSample) {
	a.io.WritePower(m.Enable, 0)
	a.io.WriteDigital(m.Input1, false)
	a.io.WriteDigital(m.Input2, false)

	a.report(Status{
		Motor:     m.ID,
		Direction: Off,
		Pot:       s.Pot,
	})
}

// DriveForward raises Input1 and applies the sample's duty as power.
func (a *Actuator) DriveForward(m MotorConfig, s FlowSample) {
	a.io.WriteDigital(m.Input2, false)
	a.io.WriteDigital(m.Input1, true)
	a.drive(m, Forward, s)
}

// DriveReverse raises Input2 and applies the sample's duty as power.
func (a *Actuator) DriveReverse(m MotorConfig, s FlowSample) {
	a.io.WriteDigital(m.Input1, false)
	a.io.WriteDigital(m.Input2, true)
	a.drive(m, Reverse, s)
}

// Apply dispatches to Stop, DriveForward or DriveReverse.
func (a *Actuator) Apply(m MotorConfig, d Direction, s FlowSample) {
	switch d {
	case Forward:
		a.DriveForward(m, s)
	case Reverse:
		a.DriveReverse(m, s)
	default:
		a.Stop(m, s)
	}
}

func (a *Actuator) drive(m MotorConfig, d Direction, s FlowSample) {
	level := clamp(s.Duty, 0, PowerMax)
	a.io.WritePower(m.Enable, uint8(level))

	a.report(Status{
		Motor:     m.ID,
		Direction: d,
		Percent:   DutyPercent(s.Duty, m),
		Duty:      level,
		Pot:       s.Pot,
		Flow:      s.Flow,
	})
}

func (a *Actuator) report(s Status) {
	if a.sink != nil {
		a.sink.Report(s)
	}
}
