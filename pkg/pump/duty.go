package pump

import "math"

// MapDuty maps a potentiometer reading from [0, PotMax] linearly onto the motor's
// duty range, rounding to the nearest PWM unit. Readings outside the domain
// extrapolate along the same line.
func MapDuty(pot int, m MotorConfig) int {
	lo, hi := float64(m.MinDuty), float64(m.MaxDuty)
	return int(math.Round(lo + float64(pot)*(hi-lo)/PotMax))
}

// DutyPercent returns the position of duty within the motor range as 0-100.
func DutyPercent(duty int, m MotorConfig) int {
	span := int(m.MaxDuty) - int(m.MinDuty)
	if span <= 0 {
		if duty >= int(m.MaxDuty) {
			return 100
		}
		return 0
	}
	p := int(math.Round(float64(duty-int(m.MinDuty)) * 100 / float64(span)))
	return clamp(p, 0, 100)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
