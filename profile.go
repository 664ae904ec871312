package boltmesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// ProfileBuilder accumulates a cross section in the XZ half plane (y = 0)
// that is later revolved about the z axis. Points are kept in insertion order;
// consecutive points become consecutive rows of the revolved surface.
type ProfileBuilder struct {
	verts []r3.Vec
}

// Add appends the point (x, 0, z) to the profile.
func (p *ProfileBuilder) Add(x, z float64) *ProfileBuilder {
	p.verts = append(p.verts, r3.Vec{X: x, Z: z})
	return p
}

// Arc appends points on a circle of radius r centered at (cx, cz), one per
// angle from startDeg to endDeg inclusive in stepDeg increments. Angles are
// measured from +z towards +x. A negative stepDeg walks the arc backwards.
func (p *ProfileBuilder) Arc(cx, cz, r, startDeg, endDeg, stepDeg float64) *ProfileBuilder {
	if stepDeg == 0 {
		return p
	}
	n := int(math.Floor((endDeg-startDeg)/stepDeg+1e-9)) + 1
	for i := 0; i < n; i++ {
		s, c := math.Sincos((startDeg + float64(i)*stepDeg) * math.Pi / 180)
		p.Add(cx+s*r, cz+c*r)
	}
	return p
}

// Len returns the number of points in the profile.
func (p *ProfileBuilder) Len() int { return len(p.verts) }

// LowestZ returns the minimum z of the points in the profile and 0 if empty.
func (p *ProfileBuilder) LowestZ() float64 {
	if len(p.verts) == 0 {
		return 0
	}
	low := math.Inf(1)
	for _, v := range p.verts {
		low = math.Min(low, v.Z)
	}
	return low
}

// Profile returns a copy of the accumulated points.
func (p *ProfileBuilder) Profile() []r3.Vec {
	return append([]r3.Vec(nil), p.verts...)
}
