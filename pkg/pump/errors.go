package pump

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCurve is returned when a motor/direction pair has no calibration curve.
	ErrMissingCurve = errors.New("missing calibration curve")
	// ErrDuplicateCurve is returned when a calibration table has two curves for one pair.
	ErrDuplicateCurve = errors.New("duplicate calibration curve")
	// ErrPinConflict is returned when two configured lines share a pin.
	ErrPinConflict = errors.New("pin conflict")
	// ErrInvalidRange is returned when MinDuty is above MaxDuty.
	ErrInvalidRange = errors.New("invalid duty range")
	// ErrUnknownMotor is returned for a motor id other than A or B.
	ErrUnknownMotor = errors.New("unknown motor")
	// ErrDuplicateMotor is returned when a motor id is configured twice.
	ErrDuplicateMotor = errors.New("motor already configured")
	// ErrInvalidDirection is returned when a curve is registered for Off.
	ErrInvalidDirection = errors.New("invalid direction")
)

// ConfigError reports why an assembly was rejected at configure time.
type ConfigError struct {
	Motor MotorID
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configure motor %s: %v", e.Motor, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
