package puzzle

import "fmt"

// Angle is a clockwise rotation in degrees. Only right angles are valid.
type Angle int

const (
	Angle0   Angle = 0
	Angle90  Angle = 90
	Angle180 Angle = 180
	Angle270 Angle = 270
)

// Angles lists every valid rotation in ascending order.
var Angles = [4]Angle{Angle0, Angle90, Angle180, Angle270}

// Valid reports whether a is one of Angles.
func (a Angle) Valid() bool {
	switch a {
	case Angle0, Angle90, Angle180, Angle270:
		return true
	default:
		return false
	}
}

// Inverse returns the counter-rotation that undoes a.
func (a Angle) Inverse() Angle {
	return (360 - a) % 360
}

// Next returns a rotated a further quarter turn clockwise.
func (a Angle) Next() Angle {
	return (a + 90) % 360
}

// Add combines two rotations.
func (a Angle) Add(b Angle) Angle {
	return (a + b) % 360
}

// String returns the angle in degrees, e.g. "90°".
func (a Angle) String() string {
	return fmt.Sprintf("%d°", int(a))
}
