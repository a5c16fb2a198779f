package pump

// fakeIO is a pin bank that records every write.
type fakeIO struct {
	modes   map[Pin]PinMode
	levels  map[Pin]bool
	analog  map[Pin]int
	power   map[Pin]uint8
	writes  []string
	illegal bool // set when both direction lines of a motor were high at once
	pairs   [][2]Pin
}

func newFakeIO() *fakeIO {
	return &fakeIO{
		modes:  make(map[Pin]PinMode),
		levels: make(map[Pin]bool),
		analog: make(map[Pin]int),
		power:  make(map[Pin]uint8),
	}
}

func (f *fakeIO) ConfigurePin(pin Pin, mode PinMode) {
	f.modes[pin] = mode
	if mode == PinInputPullup {
		f.levels[pin] = true
	}
}

func (f *fakeIO) ReadDigital(pin Pin) bool { return f.levels[pin] }

func (f *fakeIO) ReadAnalog(pin Pin) int { return f.analog[pin] }

func (f *fakeIO) WriteDigital(pin Pin, high bool) {
	f.levels[pin] = high
	if high {
		f.writes = append(f.writes, "high")
	} else {
		f.writes = append(f.writes, "low")
	}
	for _, p := range f.pairs {
		if f.levels[p[0]] && f.levels[p[1]] {
			f.illegal = true
		}
	}
}

func (f *fakeIO) WritePower(pin Pin, level uint8) {
	f.power[pin] = level
	f.writes = append(f.writes, "power")
}

func (f *fakeIO) press(pin Pin)   { f.levels[pin] = false }
func (f *fakeIO) release(pin Pin) { f.levels[pin] = true }

// recordSink keeps every report.
type recordSink struct {
	reports []Status
}

func (r *recordSink) Report(s Status) { r.reports = append(r.reports, s) }

func (r *recordSink) last() Status { return r.reports[len(r.reports)-1] }

var (
	motorA = MotorConfig{ID: MotorA, Enable: 9, Input1: 8, Input2: 7, MinDuty: 40, MaxDuty: 200}
	motorB = MotorConfig{ID: MotorB, Enable: 3, Input1: 5, Input2: 4, MinDuty: 40, MaxDuty: 200}
	swA    = SwitchConfig{Forward: 10, Reverse: 11, Pot: 14}
	swB    = SwitchConfig{Forward: 12, Reverse: 13, Pot: 15}
)

func testTable() *Table {
	t, err := NewTable(
		Entry{MotorA, Forward, Curve{0, 0, 0.8, -133}},
		Entry{MotorA, Reverse, Curve{0, 0, 0.81, -139}},
		Entry{MotorB, Forward, Curve{0, 0, 0.82, -135}},
		Entry{MotorB, Reverse, Curve{0, 0, 0.8, -132}},
	)
	if err != nil {
		panic(err)
	}
	return t
}
