// Package hw provides pump.IO implementations that run without a board.
package hw

import (
	"sync"

	"github.com/itohio/gopump/pkg/pump"
)

// Write records a single output operation.
type Write struct {
	Pin   pump.Pin
	Power bool  // true for WritePower, false for WriteDigital
	Level uint8 // 0/1 for digital writes, power level otherwise
}

// Mock simulates a pin bank. Inputs are set with SetAnalog, Press and Release;
// outputs are recorded. Unset pull-up inputs read high.
// It is safe for concurrent use so a UI can turn knobs while a clock ticks.
type Mock struct {
	mu      sync.RWMutex
	modes   map[pump.Pin]pump.PinMode
	digital map[pump.Pin]bool
	analog  map[pump.Pin]int
	power   map[pump.Pin]uint8
	writes  []Write

	// Direction line pairs watched for simultaneous assertion.
	pairs    [][2]pump.Pin
	violated bool
}

var _ pump.IO = (*Mock)(nil)

// NewMock creates an empty simulated pin bank.
func NewMock() *Mock {
	return &Mock{
		modes:   make(map[pump.Pin]pump.PinMode),
		digital: make(map[pump.Pin]bool),
		analog:  make(map[pump.Pin]int),
		power:   make(map[pump.Pin]uint8),
	}
}

// Watch registers the direction lines of m so that asserting both is recorded as a violation.
func (m *Mock) Watch(motor pump.MotorConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pairs = append(m.pairs, [2]pump.Pin{motor.Input1, motor.Input2})
}

// ConfigurePin records the pin mode.
func (m *Mock) ConfigurePin(pin pump.Pin, mode pump.PinMode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.modes[pin] = mode
}

// ReadDigital returns the pin level. Pull-up inputs that were never driven read high.
func (m *Mock) ReadDigital(pin pump.Pin) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if level, ok := m.digital[pin]; ok {
		return level
	}
	return m.modes[pin] == pump.PinInputPullup
}

// ReadAnalog returns the simulated analog value of pin.
func (m *Mock) ReadAnalog(pin pump.Pin) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.analog[pin]
}

// WriteDigital drives a pin and records the write.
func (m *Mock) WriteDigital(pin pump.Pin, high bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.digital[pin] = high
	var level uint8
	if high {
		level = 1
	}
	m.writes = append(m.writes, Write{Pin: pin, Level: level})

	for _, p := range m.pairs {
		if m.digital[p[0]] && m.digital[p[1]] {
			m.violated = true
		}
	}
}

// WritePower sets the power level of pin and records the write.
func (m *Mock) WritePower(pin pump.Pin, level uint8) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.power[pin] = level
	m.writes = append(m.writes, Write{Pin: pin, Power: true, Level: level})
}

// SetAnalog sets the value returned by ReadAnalog for pin.
func (m *Mock) SetAnalog(pin pump.Pin, value int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.analog[pin] = value
}

// Press pulls an active-low switch input low.
func (m *Mock) Press(pin pump.Pin) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.digital[pin] = false
}

// Release lets an active-low switch input float back high.
func (m *Mock) Release(pin pump.Pin) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.digital[pin] = true
}

// SetDirection positions the switches of s to command d.
func (m *Mock) SetDirection(s pump.SwitchConfig, d pump.Direction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.digital[s.Forward] = d != pump.Forward
	m.digital[s.Reverse] = d != pump.Reverse
}

// Mode returns the configured mode of pin.
func (m *Mock) Mode(pin pump.Pin) (pump.PinMode, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	mode, ok := m.modes[pin]
	return mode, ok
}

// Level returns the current digital level of pin.
func (m *Mock) Level(pin pump.Pin) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.digital[pin]
}

// Power returns the last power level written to pin.
func (m *Mock) Power(pin pump.Pin) uint8 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.power[pin]
}

// Writes returns a copy of the write journal.
func (m *Mock) Writes() []Write {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Write, len(m.writes))
	copy(out, m.writes)
	return out
}

// ResetWrites clears the write journal.
func (m *Mock) ResetWrites() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes = m.writes[:0]
}

// Violated reports whether both direction lines of a watched motor were ever high together.
func (m *Mock) Violated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.violated
}
