// Package status encodes pump status reports as text lines and provides simple sinks.
//
// Line format: motor,direction,percent,duty,pot,flow
// Example: A,F,50,120,511,12.3
package status

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/itohio/gopump/pkg/pump"
)

const fieldCount = 6

// Append appends the line encoding of s, without a newline, to buf.
// It avoids fmt so it stays small on microcontrollers.
func Append(buf []byte, s pump.Status) []byte {
	buf = append(buf, s.Motor.String()...)
	buf = append(buf, ',', s.Direction.Letter(), ',')
	buf = strconv.AppendInt(buf, int64(s.Percent), 10)
	buf = append(buf, ',')
	buf = strconv.AppendInt(buf, int64(s.Duty), 10)
	buf = append(buf, ',')
	buf = strconv.AppendInt(buf, int64(s.Pot), 10)
	buf = append(buf, ',')
	buf = strconv.AppendFloat(buf, s.Flow, 'f', 1, 64)
	return buf
}

// Format returns the line encoding of s without a newline.
func Format(s pump.Status) string {
	return string(Append(nil, s))
}

// ParseLine parses a status line produced by Format.
func ParseLine(line string) (pump.Status, error) {
	parts := strings.Split(strings.TrimSpace(line), ",")
	if len(parts) != fieldCount {
		return pump.Status{}, fmt.Errorf("invalid line format: expected %d comma-separated values, got %d", fieldCount, len(parts))
	}

	var s pump.Status
	switch parts[0] {
	case "A":
		s.Motor = pump.MotorA
	case "B":
		s.Motor = pump.MotorB
	default:
		return pump.Status{}, fmt.Errorf("invalid motor %q", parts[0])
	}

	switch parts[1] {
	case "O":
		s.Direction = pump.Off
	case "F":
		s.Direction = pump.Forward
	case "R":
		s.Direction = pump.Reverse
	default:
		return pump.Status{}, fmt.Errorf("invalid direction %q", parts[1])
	}

	percent, err := strconv.Atoi(parts[2])
	if err != nil {
		return pump.Status{}, fmt.Errorf("invalid percent: %w", err)
	}
	if percent < 0 || percent > 100 {
		return pump.Status{}, fmt.Errorf("percent out of range: %d", percent)
	}
	s.Percent = percent

	duty, err := strconv.Atoi(parts[3])
	if err != nil {
		return pump.Status{}, fmt.Errorf("invalid duty: %w", err)
	}
	if duty < 0 || duty > pump.PowerMax {
		return pump.Status{}, fmt.Errorf("duty out of range: %d (max %d)", duty, pump.PowerMax)
	}
	s.Duty = duty

	s.Pot, err = strconv.Atoi(parts[4])
	if err != nil {
		return pump.Status{}, fmt.Errorf("invalid pot: %w", err)
	}

	s.Flow, err = strconv.ParseFloat(parts[5], 64)
	if err != nil {
		return pump.Status{}, fmt.Errorf("invalid flow: %w", err)
	}

	return s, nil
}
