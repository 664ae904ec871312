package d3

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Transform represents a 4x4 homogeneous transformation.
// The zero value of Transform is the identity transform.
type Transform struct {
	// The identity matrix is subtracted from the stored diagonal so that
	// the zero value is the identity:
	//  d00 = x00-1, d11 = x11-1, d22 = x22-1, d33 = x33-1
	// Identity checks can then be written as
	//  if T == (Transform{})
	d00, x01, x02, x03 float64
	x10, d11, x12, x13 float64
	x20, x21, d22, x23 float64
	x30, x31, x32, d33 float64
}

// NewTransform returns a new Transform type and populates its elements
// with values passed in row-major form.
func NewTransform(a []float64) Transform {
	if len(a) != 16 {
		panic("Transform is initialized with 16 values")
	}
	return Transform{
		d00: a[0] - 1, x01: a[1], x02: a[2], x03: a[3],
		x10: a[4], d11: a[5] - 1, x12: a[6], x13: a[7],
		x20: a[8], x21: a[9], d22: a[10] - 1, x23: a[11],
		x30: a[12], x31: a[13], x32: a[14], d33: a[15] - 1,
	}
}

// RowTransform applies the Transform to the row vector v
// and returns the result (v·M).
func (t Transform) RowTransform(v r3.Vec) r3.Vec {
	w := 1 / (t.x03*v.X + t.x13*v.Y + t.x23*v.Z + t.d33 + 1)
	return r3.Vec{
		X: ((t.d00+1)*v.X + t.x10*v.Y + t.x20*v.Z + t.x30) * w,
		Y: (t.x01*v.X + (t.d11+1)*v.Y + t.x21*v.Z + t.x31) * w,
		Z: (t.x02*v.X + t.x12*v.Y + (t.d22+1)*v.Z + t.x32) * w,
	}
}
