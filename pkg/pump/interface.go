package pump

// IO is the digital/analog line capability the controller drives.
// Implementations must return immediately; the controller never retries.
type IO interface {
	ConfigurePin(pin Pin, mode PinMode)
	ReadDigital(pin Pin) bool
	ReadAnalog(pin Pin) int
	WriteDigital(pin Pin, high bool)
	WritePower(pin Pin, level uint8)
}

// Sink receives a status report after every actuation. Rendering is entirely its concern.
type Sink interface {
	Report(s Status)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(s Status)

// Report calls f(s).
func (f SinkFunc) Report(s Status) {
	f(s)
}

// MultiSink fans a report out to several sinks in order.
type MultiSink []Sink

// Report forwards s to every sink.
func (m MultiSink) Report(s Status) {
	for _, sink := range m {
		if sink != nil {
			sink.Report(s)
		}
	}
}

var _ Sink = SinkFunc(nil)
var _ Sink = MultiSink(nil)
