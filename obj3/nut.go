package obj3

import (
	"fmt"
	"math"

	"github.com/soypat/boltmesh"
	"github.com/soypat/boltmesh/internal/d3"
	"github.com/soypat/boltmesh/obj3/thread"
	"gonum.org/v1/gonum/spatial/r3"
)

// NutStyle selects a plain hex nut or a nylon insert lock nut.
type NutStyle int

const (
	_ NutStyle = iota
	NutHex
	NutLock
)

func (c NutStyle) String() (str string) {
	switch c {
	case NutHex:
		str = "hex"
	case NutLock:
		str = "lock"
	default:
		str = "unknown"
	}
	return str
}

// NutParms defines the parameters for a nut.
type NutParms struct {
	Thread thread.Parameters
	Style  NutStyle
	Flat   float64 // hex flat to flat distance
	Height float64 // nominal threaded height
}

// Nut returns a threaded nut resting on z=0. A lock nut carries a nylon
// insert under a domed cap below its hex body. The fragment Height is the
// overall nut height.
func Nut(k NutParms) (f boltmesh.Fragment, err error) {
	switch {
	case k.Style != NutHex && k.Style != NutLock:
		err = fmt.Errorf("unknown nut style %d: %w", k.Style, boltmesh.ErrInvalidParameter)
	case k.Flat <= k.Thread.MajorDia:
		err = fmt.Errorf("nut flat %g <= major diameter %g: %w", k.Flat, k.Thread.MajorDia, boltmesh.ErrInvalidParameter)
	}
	if err != nil {
		return f, err
	}
	bore, err := thread.Internal(thread.InternalParms{Thread: k.Thread, Height: k.Height})
	if err != nil {
		return f, err
	}
	// The body is made as tall as the bore actually came out.
	body, err := HexNutBody(k.Flat, k.Thread.MajorDia, bore.Height)
	if err != nil {
		return f, err
	}
	parts := []boltmesh.Fragment{bore, body}
	low := -bore.Height
	if k.Style == NutLock {
		lockRadius := body.Height
		head, err := NylonHead(lockRadius, -bore.Height)
		if err != nil {
			return f, err
		}
		insert, err := NylonInsert(lockRadius, -bore.Height)
		if err != nil {
			return f, err
		}
		parts = append(parts, head, insert)
		low = head.Height
	}
	f = boltmesh.Concat(parts...).Lift(-low)
	f.Height = -low
	return f, nil
}

// HexNutBody returns the hexagonal body of a nut with a bore of diameter
// hole, beveled on both faces, with its top face at z=0. The fragment Height is
// the radius of the top bevel, where a lock nut's nylon cap is seated.
func HexNutBody(flat, hole, height float64) (f boltmesh.Fragment, err error) {
	switch {
	case flat <= 0:
		err = fmt.Errorf("nut flat %g <= 0", flat)
	case hole <= 0 || hole >= flat:
		err = fmt.Errorf("nut hole %g not in (0, %g)", hole, flat)
	case height <= 0:
		err = fmt.Errorf("nut height %g <= 0", height)
	}
	if err != nil {
		return f, fmt.Errorf("%v: %w", err, boltmesh.ErrInvalidParameter)
	}
	half := flat / 2
	topBevel := half - 0.05
	if topBevel <= hole/2 {
		return f, fmt.Errorf("nut flat %g leaves no bevel around hole %g: %w", flat, hole, boltmesh.ErrInvalidParameter)
	}
	onFlat := func(a, z float64) r3.Vec {
		return r3.Vec{X: math.Tan(d2r(a)) * half, Y: half, Z: z}
	}
	bevelDrop := func(a float64) float64 {
		return -r3.Norm(r3.Sub(d3.Polar(topBevel, a, 0), onFlat(a, 0)))
	}
	lowestBevel := bevelDrop(hexCorner[3])
	// Top half of one half flat, mirrored about the mid plane below.
	rings := []func(a float64) r3.Vec{
		func(a float64) r3.Vec { return d3.Polar(hole/2, a, 0) },
		func(a float64) r3.Vec { return d3.Polar(topBevel, a, 0) },
		func(a float64) r3.Vec { return onFlat(a, bevelDrop(a)) },
		func(a float64) r3.Vec { return onFlat(a, lowestBevel) },
		func(a float64) r3.Vec { return onFlat(a, -height/2) },
	}
	verts := make([]r3.Vec, 0, len(rings)*len(hexCorner))
	for _, ring := range rings {
		for _, a := range hexCorner {
			verts = append(verts, ring(a))
		}
	}
	faces, err := boltmesh.QuadGrid(0, len(hexCorner)-1, len(rings)-1, false)
	if err != nil {
		return f, err
	}
	f = boltmesh.Fragment{Vertices: verts, Faces: faces}
	f = boltmesh.MirrorAppend(f, boltmesh.AxisZ, d3.Set(verts).Min().Z)
	f = boltmesh.MirrorAppend(f, boltmesh.AxisX, 0)
	f = boltmesh.Spin(f, 360, 6, boltmesh.AxisZ)
	f.Height = topBevel
	return f, nil
}

// NylonHead returns the rounded cap that holds a lock nut's nylon insert.
// radius is the cap's outer radius and z the height of the face it is seated
// on. The fragment Height is the lowest z of the cap.
func NylonHead(radius, z float64) (f boltmesh.Fragment, err error) {
	if radius <= 0 {
		return f, fmt.Errorf("nylon head radius %g <= 0: %w", radius, boltmesh.ErrInvalidParameter)
	}
	inner := radius - radius*(1.25/4.75)
	edge := radius * (0.4 / 4.75)
	rad1 := radius * (0.5 / 4.75)
	overall := radius * (2.0 / 4.75)

	var p boltmesh.ProfileBuilder
	p.Add(inner, z-overall+edge)
	p.Add(inner, z-overall)
	p.Arc(radius-rad1, z-overall+rad1, rad1, 180, 90, -10)
	p.Add(radius, z)
	f, err = boltmesh.Revolve(p.Profile(), headDivisions, true)
	if err != nil {
		return f, err
	}
	f.Height = math.Min(p.LowestZ(), 0)
	return f, nil
}

// NylonInsert returns the nylon ring of a lock nut seated inside the cap made
// by NylonHead with the same radius and z. The fragment Height is the
// thickness of the ring.
func NylonInsert(radius, z float64) (f boltmesh.Fragment, err error) {
	if radius <= 0 {
		return f, fmt.Errorf("nylon insert radius %g <= 0: %w", radius, boltmesh.ErrInvalidParameter)
	}
	inner := radius - radius*(1.5/4.75)
	edge := radius * (0.4 / 4.75)
	overall := radius * (2.0 / 4.75)
	thickness := overall - edge
	partInner := radius * (2.5 / 4.75)

	var p boltmesh.ProfileBuilder
	p.Add(inner+edge, z)
	p.Add(partInner, z)
	p.Add(partInner, z-thickness)
	p.Add(inner+edge, z-thickness)
	f, err = boltmesh.Revolve(p.Profile(), headDivisions, true)
	if err != nil {
		return f, err
	}
	f.Height = thickness
	return f, nil
}
