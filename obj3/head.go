package obj3

import (
	"fmt"
	"math"

	"github.com/soypat/boltmesh"
	"github.com/soypat/boltmesh/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Bolt heads. Every head has its top face at z=0 and extends downward to
// meet the shank. The hole in the top face receives the drive bit.

// headDivisions is the number of steps in which round heads are revolved.
const headDivisions = 36

// hexCorner holds the angles sampled across one half flat of a hexagon.
var hexCorner = [4]float64{0, 10, 20, 30}

func d2r(deg float64) float64 { return deg * math.Pi / 180 }

// HexHead returns a hexagonal bolt head with flat as the distance across
// flats. The top edge is beveled, the underside undercut and the joint with a
// shank of diameter shank chamfered. hole is the diameter of the top face
// opening left for a drive bit. The fragment Height is the head height.
func HexHead(flat, hole, shank, height float64) (f boltmesh.Fragment, err error) {
	switch {
	case flat <= 0:
		err = fmt.Errorf("hex head flat %g <= 0: %w", flat, boltmesh.ErrInvalidParameter)
	case height <= 0:
		err = fmt.Errorf("hex head height %g <= 0: %w", height, boltmesh.ErrInvalidParameter)
	case shank <= 0 || shank >= flat:
		err = fmt.Errorf("shank diameter %g not in (0, %g): %w", shank, flat, boltmesh.ErrInvalidParameter)
	case hole < 0 || hole >= flat:
		err = fmt.Errorf("hex head hole %g not in [0, %g): %w", hole, flat, boltmesh.ErrInvalidParameter)
	}
	if err != nil {
		return f, err
	}
	half := flat / 2
	k := half * (0.05 / 8)
	topBevel := half - k
	undercut, shankBevel := k, k
	flatHeight := height - undercut - shankBevel
	shankRadius := shank / 2

	// lowest z of the bevel cut into the flats, found at the corner.
	bevelPt := d3.Polar(topBevel, hexCorner[3], 0)
	flatPt := r3.Vec{X: math.Tan(d2r(hexCorner[3])) * half, Y: half}
	lowest := -r3.Norm(r3.Sub(bevelPt, flatPt))

	// Nine rings of four samples each, from the top face down to the shank.
	rings := []func(deg float64) r3.Vec{
		func(a float64) r3.Vec { return d3.Polar(hole/2, a, 0) },
		func(a float64) r3.Vec { return d3.Polar(topBevel, a, 0) },
		func(a float64) r3.Vec {
			onFlat := r3.Vec{X: math.Tan(d2r(a)) * half, Y: half}
			onFlat.Z = -r3.Norm(r3.Sub(d3.Polar(topBevel, a, 0), onFlat))
			return onFlat
		},
		func(a float64) r3.Vec { return r3.Vec{X: math.Tan(d2r(a)) * half, Y: half, Z: lowest} },
		func(a float64) r3.Vec { return r3.Vec{X: math.Tan(d2r(a)) * half, Y: half, Z: -flatHeight} },
		func(a float64) r3.Vec { return d3.Polar(half, a, -flatHeight) },
		func(a float64) r3.Vec { return d3.Polar(half, a, -flatHeight-undercut) },
		func(a float64) r3.Vec { return d3.Polar(shankRadius+shankBevel, a, -flatHeight-undercut) },
		func(a float64) r3.Vec { return d3.Polar(shankRadius, a, -flatHeight-undercut-shankBevel) },
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
	// One half flat mirrored into a full flat, then six flats.
	f = boltmesh.MirrorAppend(boltmesh.Fragment{Vertices: verts, Faces: faces}, boltmesh.AxisX, 0)
	f = boltmesh.Spin(f, 360, 6, boltmesh.AxisZ)
	f.Height = height
	return f, nil
}

// CapHead returns a cylindrical socket cap head of diameter dia and height
// height. The top edge and the joint with the shank are filleted with a
// radius of dia/19. The fragment Height is the head height plus the shank fillet.
func CapHead(hole, dia, shank, height float64) (f boltmesh.Fragment, err error) {
	err = checkRoundHead("cap", hole, dia, shank)
	if err == nil && height <= 0 {
		err = fmt.Errorf("cap head height %g <= 0: %w", height, boltmesh.ErrInvalidParameter)
	}
	if err != nil {
		return f, err
	}
	radius := dia / 2
	shankRadius := shank / 2
	rad1 := dia / 19
	rad2 := rad1
	bevel := height * 0.01

	var p boltmesh.ProfileBuilder
	p.Add(hole/2, 0)
	p.Arc(radius-rad1, -rad1, rad1, 0, 90, 10)
	p.Add(radius, -height+bevel)
	p.Add(radius-bevel, -height)
	for deg := 0.0; deg <= 90; deg += 10 {
		s, c := math.Sincos(d2r(deg))
		p.Add(shankRadius+rad2-s*rad2, -height-rad2+c*rad2)
	}
	f, err = boltmesh.Revolve(p.Profile(), headDivisions, false)
	if err != nil {
		return f, err
	}
	f.Height = height + rad2
	return f, nil
}

// DomeHead returns a dome shaped head of diameter dia. Its proportions are
// fixed relative to the diameter. The fragment Height is the dome height.
func DomeHead(hole, dia, shank float64) (f boltmesh.Fragment, err error) {
	if err = checkRoundHead("dome", hole, dia, shank); err != nil {
		return f, err
	}
	radius := dia / 2
	domeRad := radius * 1.12
	radOffset := radius * 0.98
	domeHeight := radius * 0.64
	otherRad := radius * 0.16
	otherX := radius * 0.84
	otherZ := radius * 0.504

	var p boltmesh.ProfileBuilder
	p.Add(hole/2, 0)
	for deg := 0.0; deg <= 50; deg += 10 {
		s, c := math.Sincos(d2r(deg))
		if z := -radOffset + c*domeRad; z <= 0 {
			p.Add(s*domeRad, z)
		}
	}
	for deg := 60.0; deg <= 150; deg += 10 {
		s, c := math.Sincos(d2r(deg))
		p.Add(otherX+s*otherRad, math.Max(-otherZ+c*otherRad, -domeHeight))
	}
	p.Add(shank/2, -domeHeight)
	f, err = boltmesh.Revolve(p.Profile(), headDivisions, false)
	if err != nil {
		return f, err
	}
	f.Height = domeHeight
	return f, nil
}

// MaxPanBitDia returns the largest bit diameter that fits the flat top of a
// pan head of diameter dia.
func MaxPanBitDia(dia float64) float64 {
	return math.Sin(d2r(10)) * dia / 2 * 1.976 * 2
}

// PanHead returns a pan head of diameter dia. Its proportions are fixed
// relative to the diameter. The fragment Height is the pan height.
func PanHead(hole, dia, shank float64) (f boltmesh.Fragment, err error) {
	if err = checkRoundHead("pan", hole, dia, shank); err != nil {
		return f, err
	}
	radius := dia / 2
	xRad := radius * 1.976
	zRad := radius * 1.768
	endRad := radius * 0.284
	endZOffset := radius * 0.432
	height := radius * 0.59

	var p boltmesh.ProfileBuilder
	top := -zRad + math.Cos(d2r(10))*zRad
	p.Add(hole/2, top)
	for deg := 10.0; deg <= 20; deg += 10 {
		s, c := math.Sincos(d2r(deg))
		p.Add(s*xRad, -zRad+c*zRad)
	}
	for deg := 20.0; deg <= 130; deg += 10 {
		s, c := math.Sincos(d2r(deg))
		p.Add(radius-endRad+s*endRad, math.Max(-endZOffset+c*endRad, -height))
	}
	p.Add(shank/2, -height)
	p.Add(shank/2, -height+top)
	f, err = boltmesh.Revolve(p.Profile(), headDivisions, false)
	if err != nil {
		return f, err
	}
	// The crown was built below z=0, lift its flat top back to z=0.
	f = f.Lift(-top)
	f.Height = height
	return f, nil
}

func checkRoundHead(name string, hole, dia, shank float64) (err error) {
	switch {
	case dia <= 0:
		err = fmt.Errorf("%s head diameter %g <= 0", name, dia)
	case shank <= 0 || shank >= dia:
		err = fmt.Errorf("shank diameter %g not in (0, %g) for %s head", shank, dia, name)
	case hole < 0 || hole >= dia:
		err = fmt.Errorf("%s head hole %g not in [0, %g)", name, hole, dia)
	}
	if err != nil {
		return fmt.Errorf("%v: %w", err, boltmesh.ErrInvalidParameter)
	}
	return nil
}
