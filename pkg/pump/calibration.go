package pump

import "fmt"

// Curve holds the coefficients of a cubic polynomial mapping duty cycle to flow rate:
// flow = A*d^3 + B*d^2 + C*d + D.
type Curve struct {
	A float64
	B float64
	C float64
	D float64
}

// Estimate evaluates the curve at the given duty cycle. It is total over the
// numeric domain and does not clamp or round.
func Estimate(duty float64, c Curve) float64 {
	return c.A*duty*duty*duty + c.B*duty*duty + c.C*duty + c.D
}

// Estimate evaluates c at duty.
func (c Curve) Estimate(duty float64) float64 {
	return Estimate(duty, c)
}

// Entry binds a curve to a motor and a running direction.
type Entry struct {
	Motor     MotorID
	Direction Direction
	Curve     Curve
}

type curveKey struct {
	motor     MotorID
	direction Direction
}

// Table is a read-only set of calibration curves keyed by motor and direction.
// Forward and Reverse entries may carry the same coefficients.
type Table struct {
	curves map[curveKey]Curve
}

// NewTable builds a table from entries. Entries for Off or unknown motors and
// duplicate pairs are rejected.
func NewTable(entries ...Entry) (*Table, error) {
	t := &Table{curves: make(map[curveKey]Curve, len(entries))}
	for _, e := range entries {
		if !e.Motor.Valid() {
			return nil, fmt.Errorf("curve for motor %d: %w", e.Motor, ErrUnknownMotor)
		}
		if e.Direction != Forward && e.Direction != Reverse {
			return nil, fmt.Errorf("curve for motor %s: %w: %s", e.Motor, ErrInvalidDirection, e.Direction)
		}
		key := curveKey{e.Motor, e.Direction}
		if _, ok := t.curves[key]; ok {
			return nil, fmt.Errorf("motor %s %s: %w", e.Motor, e.Direction, ErrDuplicateCurve)
		}
		t.curves[key] = e.Curve
	}
	return t, nil
}

// Curve returns the curve used for motor id running in direction d.
// A stopped motor uses its Forward curve.
func (t *Table) Curve(id MotorID, d Direction) (Curve, bool) {
	if t == nil {
		return Curve{}, false
	}
	if d == Off {
		d = Forward
	}
	c, ok := t.curves[curveKey{id, d}]
	return c, ok
}

// Validate checks that every direction of motor id has a curve.
func (t *Table) Validate(id MotorID) error {
	for _, d := range []Direction{Forward, Reverse} {
		if _, ok := t.Curve(id, d); !ok {
			return fmt.Errorf("motor %s %s: %w", id, d, ErrMissingCurve)
		}
	}
	return nil
}

// Len returns the number of curves in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.curves)
}
