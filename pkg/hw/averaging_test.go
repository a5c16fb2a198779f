package hw

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/itohio/gopump/pkg/pump"
)

// sequenceIO returns successive analog values from a fixed list.
type sequenceIO struct {
	*Mock
	values []int
	next   int
}

func (s *sequenceIO) ReadAnalog(pump.Pin) int {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func TestAveraging_Mean(t *testing.T) {
	src := &sequenceIO{Mock: NewMock(), values: []int{500, 510, 520, 530}}
	avg := NewAveraging(src, 4)

	assert.Equal(t, 515, avg.ReadAnalog(14))
	assert.Equal(t, 4, src.next)
}

func TestAveraging_Rounds(t *testing.T) {
	src := &sequenceIO{Mock: NewMock(), values: []int{1, 2}}
	avg := NewAveraging(src, 2)
	assert.Equal(t, 2, avg.ReadAnalog(14))
}

func TestAveraging_DefaultsAndPassThrough(t *testing.T) {
	m := NewMock()
	avg := NewAveraging(m, 0)
	assert.Equal(t, DefaultAnalogSamples, avg.samples)

	m.SetAnalog(14, 1023)
	assert.Equal(t, 1023, avg.ReadAnalog(14))

	avg.WritePower(9, 77)
	assert.Equal(t, uint8(77), m.Power(9))
}
