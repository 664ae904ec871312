package thread

import (
	"fmt"
	"math"

	"github.com/soypat/boltmesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// ExternalParms defines an externally threaded shank.
type ExternalParms struct {
	Thread      Parameters
	ShankDia    float64 // diameter of the unthreaded shank
	ShankLength float64 // unthreaded length below the head
	Length      float64 // threaded length
}

// InternalParms defines a threaded bore.
type InternalParms struct {
	Thread Parameters
	Height float64 // nominal bore length
}

func (k ExternalParms) validate() (err error) {
	if err = k.Thread.Validate(); err != nil {
		return err
	}
	switch {
	case k.ShankDia <= 0:
		err = fmt.Errorf("shank diameter %g <= 0", k.ShankDia)
	case k.ShankLength < 0:
		err = fmt.Errorf("shank length %g < 0", k.ShankLength)
	case k.Length <= 0:
		err = fmt.Errorf("thread length %g <= 0", k.Length)
	}
	if err != nil {
		return fmt.Errorf("thread: %v: %w", err, boltmesh.ErrInvalidParameter)
	}
	return nil
}

// ExternalZones returns the shank, start, body and end zones of an external
// thread hanging below z=0, chained through their height offsets.
func ExternalZones(k ExternalParms) ([]Zone, error) {
	if err := k.validate(); err != nil {
		return nil, err
	}
	t := k.Thread
	shank := Shank(k.ShankDia/2, t.MajorRadius(), k.ShankLength, 0)
	start := Start(t, shank.End)
	body := Body(t, BodyTurns(t, k.Length), start.End)
	end := End(t, body.End)
	return []Zone{shank, start, body, end}, nil
}

// External returns the mesh of an externally threaded shank whose top ring
// sits at z=0. The rings of all zones are stitched into one quad grid and the
// bottom ring is closed with a fill. The fragment Height is the distance from
// z=0 to the lowest vertex.
func External(k ExternalParms) (boltmesh.Fragment, error) {
	zones, err := ExternalZones(k)
	if err != nil {
		return boltmesh.Fragment{}, err
	}
	f, err := stitch(zones, false)
	if err != nil {
		return f, err
	}
	bottom, err := boltmesh.FillRing(len(f.Vertices)-Divisions, Divisions, true)
	if err != nil {
		return f, err
	}
	f.Faces = append(f.Faces, bottom...)
	return f, nil
}

// InternalTurns returns the number of full depth turns in a bore of the
// given height. One pitch is left for the start and end zones.
func InternalTurns(t Parameters, height float64) int {
	n := int(math.RoundToEven((height - t.Pitch) / t.Pitch))
	if n < 0 {
		return 0
	}
	return n
}

// InternalZones returns the start, body and end zones of a bore thread
// descending from z=0.
func InternalZones(k InternalParms) ([]Zone, error) {
	if err := k.Thread.Validate(); err != nil {
		return nil, err
	}
	if k.Height <= 0 {
		return nil, fmt.Errorf("thread: bore height %g <= 0: %w", k.Height, boltmesh.ErrInvalidParameter)
	}
	t := k.Thread
	start := InternalStart(t, 0)
	body := InternalBody(t, InternalTurns(t, k.Height), start.End)
	end := InternalEnd(t, body.End)
	return []Zone{start, body, end}, nil
}

// Internal returns the mesh of a threaded bore descending from z=0 with
// faces wound towards the axis. The fragment Height is the bore depth, which
// may differ from the requested height by up to half a pitch.
func Internal(k InternalParms) (boltmesh.Fragment, error) {
	zones, err := InternalZones(k)
	if err != nil {
		return boltmesh.Fragment{}, err
	}
	return stitch(zones, true)
}

// stitch concatenates the rings of zones into one quad grid.
func stitch(zones []Zone, flip bool) (boltmesh.Fragment, error) {
	var rows int
	lowest := 0.0
	for _, z := range zones {
		rows += len(z.Rings)
		lowest = math.Min(lowest, z.Lowest)
	}
	verts := make([]r3.Vec, 0, rows*(Divisions+1))
	for _, z := range zones {
		for _, ring := range z.Rings {
			verts = append(verts, ring...)
		}
	}
	faces, err := boltmesh.QuadGrid(0, Divisions, rows-1, flip)
	if err != nil {
		return boltmesh.Fragment{}, err
	}
	return boltmesh.Fragment{Vertices: verts, Faces: faces, Height: -lowest}, nil
}
