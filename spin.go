package boltmesh

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Spin replicates f divisions times about axis through the origin, stepping
// totalDeg/divisions degrees between copies. Faces are copied for every
// replica and offset by the replica's first vertex index. The last replica is
// not stitched back to the first; closing the seam is left to the caller.
// A divisions value less than 1 is treated as 1.
func Spin(f Fragment, totalDeg float64, divisions int, axis Axis) Fragment {
	if divisions < 1 {
		divisions = 1
	}
	step := totalDeg / float64(divisions)
	n := len(f.Vertices)
	out := Fragment{
		Vertices: make([]r3.Vec, 0, n*divisions),
		Faces:    make([]Face, 0, len(f.Faces)*divisions),
		Height:   f.Height,
	}
	for i := 0; i < divisions; i++ {
		rot := RotationMatrix(step*float64(i), axis)
		out.Faces = append(out.Faces, copyFaces(f.Faces, len(out.Vertices))...)
		out.Vertices = append(out.Vertices, RotateVertices(f.Vertices, rot)...)
	}
	return out
}

// Revolve sweeps a profile in the XZ half plane a full turn about the z axis
// in divisions steps. The unrotated profile is appended after the spun copies
// to close the seam and consecutive copies are stitched with QuadGrid.
// The returned fragment holds (divisions+1)*len(profile) vertices and
// divisions*(len(profile)-1) quads.
func Revolve(profile []r3.Vec, divisions int, flip bool) (Fragment, error) {
	if len(profile) < 2 {
		return Fragment{}, fmt.Errorf("revolve profile of %d vertices: %w", len(profile), ErrDegenerateRing)
	}
	if divisions < 1 {
		return Fragment{}, fmt.Errorf("revolve with %d divisions: %w", divisions, ErrInvalidParameter)
	}
	spun := Spin(Fragment{Vertices: profile}, 360, divisions, AxisZ)
	verts := append(spun.Vertices, profile...)
	faces, err := QuadGrid(0, len(profile)-1, divisions, flip)
	if err != nil {
		return Fragment{}, err
	}
	return Fragment{Vertices: verts, Faces: faces}, nil
}
