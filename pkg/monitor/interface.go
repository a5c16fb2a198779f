package monitor

import "github.com/itohio/gopump/pkg/pump"

// Device is a source of pump status reports (a board on a serial port or a simulation).
type Device interface {
	Connect() error
	Close() error
	Reports() <-chan pump.Status
	IsConnected() bool
}

// Ensure Serial implements Device.
var _ Device = (*Serial)(nil)

// Ensure Mock implements Device.
var _ Device = (*Mock)(nil)
