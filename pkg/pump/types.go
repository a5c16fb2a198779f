// Package pump implements the flow-control pipeline of a DC peristaltic pump:
// potentiometer to duty cycle, switches to direction, calibrated flow estimate and
// motor actuation, once per tick for each configured assembly.
package pump

// MotorID identifies one of the two pump motors.
type MotorID uint8

const (
	MotorA MotorID = iota
	MotorB
)

// String returns the motor letter.
func (id MotorID) String() string {
	switch id {
	case MotorA:
		return "A"
	case MotorB:
		return "B"
	default:
		return "?"
	}
}

// Valid reports whether id names a known motor.
func (id MotorID) Valid() bool {
	return id == MotorA || id == MotorB
}

// Direction is the commanded rotation of a motor.
type Direction uint8

const (
	Off Direction = iota
	Forward
	Reverse
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Off:
		return "Off"
	case Forward:
		return "Forward"
	case Reverse:
		return "Reverse"
	default:
		return "Unknown"
	}
}

// Letter returns the single character shown on status displays: O, F or R.
func (d Direction) Letter() byte {
	switch d {
	case Forward:
		return 'F'
	case Reverse:
		return 'R'
	default:
		return 'O'
	}
}

// Pin is a logical line designator. Drivers map it onto real hardware.
type Pin uint8

// PinMode selects how a line is configured.
type PinMode uint8

const (
	PinOutput PinMode = iota
	PinInputPullup
	PinAnalog
)

const (
	// PotMax is the top of the potentiometer reading domain (10-bit ADC).
	PotMax = 1023
	// PowerMax is the top of the power output domain (8-bit PWM).
	PowerMax = 255
)

// MotorConfig defines the control lines and operating duty range of a DC motor.
// Below MinDuty the motor stalls.
type MotorConfig struct {
	ID      MotorID
	Enable  Pin // PWM power output
	Input1  Pin // Forward direction line
	Input2  Pin // Reverse direction line
	MinDuty uint8
	MaxDuty uint8
}

// SwitchConfig defines the direction switches and speed potentiometer of an assembly.
// Switches are active low.
type SwitchConfig struct {
	Forward Pin
	Reverse Pin
	Pot     Pin
}

// FlowSample is the result of one tick.
type FlowSample struct {
	Pot  int     // Raw potentiometer reading (0-1023)
	Duty int     // Mapped duty cycle
	Flow float64 // Estimated flow rate in ml/min
}

// Status is what an actuation reports to the status sink.
type Status struct {
	Motor     MotorID
	Direction Direction
	Percent   int // Duty position within the motor operating range, 0 when stopped
	Duty      int // Power level written to the enable line
	Pot       int
	Flow      float64 // 0 when stopped
}
