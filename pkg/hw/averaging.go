package hw

import "github.com/itohio/gopump/pkg/pump"

// DefaultAnalogSamples is the number of reads averaged per analog sample.
const DefaultAnalogSamples = 8

// Averaging wraps an IO and averages consecutive analog reads to reduce
// potentiometer noise. All other operations pass through.
type Averaging struct {
	pump.IO
	samples int
}

var _ pump.IO = (*Averaging)(nil)

// NewAveraging creates an averaging wrapper. samples <= 0 selects DefaultAnalogSamples.
func NewAveraging(io pump.IO, samples int) *Averaging {
	if samples <= 0 {
		samples = DefaultAnalogSamples
	}
	return &Averaging{IO: io, samples: samples}
}

// ReadAnalog returns the rounded mean of several reads of pin.
func (a *Averaging) ReadAnalog(pin pump.Pin) int {
	sum := 0
	for i := 0; i < a.samples; i++ {
		sum += a.IO.ReadAnalog(pin)
	}
	// Round half up for non-negative sums.
	return (sum + a.samples/2) / a.samples
}
