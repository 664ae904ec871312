// Package boltmesh builds polygon meshes of metric fasteners from numeric
// parameters. This package holds the mesh fragment type and the geometry
// primitives the part builders in obj3 compose: rotations, mirroring, grid and
// ring face builders, the revolution engine and the vertex welding finalizer.
package boltmesh

import (
	"errors"
	"fmt"

	"github.com/soypat/boltmesh/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// ErrInvalidParameter is returned when a numeric constraint on a
	// builder argument is violated.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrDegenerateRing is returned when a face builder is asked to
	// stitch fewer vertices than a polygon needs.
	ErrDegenerateRing = errors.New("degenerate ring")
)

// Face is an ordered list of 3 or 4 vertex indices. Winding order
// determines the outward normal.
type Face []int

// Axis selects one of the coordinate axes.
type Axis int

const (
	_ Axis = iota
	AxisX
	AxisY
	AxisZ
)

func (a Axis) String() (str string) {
	switch a {
	case AxisX:
		str = "x"
	case AxisY:
		str = "y"
	case AxisZ:
		str = "z"
	default:
		str = "unknown"
	}
	return str
}

// Fragment is a self contained set of vertices and faces. Face indices are
// relative to the start of Vertices. Height carries the reference dimension
// of the builder that produced the fragment, its meaning is documented by
// each builder.
type Fragment struct {
	Vertices []r3.Vec
	Faces    []Face
	Height   float64
}

// Append returns a new fragment with the vertices of src appended to dst
// and the faces of src offset by the vertex count of dst.
// The height of dst is kept.
func Append(dst, src Fragment) Fragment {
	out := Fragment{
		Vertices: make([]r3.Vec, 0, len(dst.Vertices)+len(src.Vertices)),
		Faces:    make([]Face, 0, len(dst.Faces)+len(src.Faces)),
		Height:   dst.Height,
	}
	out.Vertices = append(out.Vertices, dst.Vertices...)
	out.Vertices = append(out.Vertices, src.Vertices...)
	out.Faces = append(out.Faces, copyFaces(dst.Faces, 0)...)
	out.Faces = append(out.Faces, copyFaces(src.Faces, len(dst.Vertices))...)
	return out
}

// Concat appends each fragment in order. The result height is zero.
func Concat(frags ...Fragment) Fragment {
	var out Fragment
	for _, f := range frags {
		out = Append(out, f)
	}
	out.Height = 0
	return out
}

// copyFaces returns a copy of faces with every index incremented by offset.
func copyFaces(faces []Face, offset int) []Face {
	out := make([]Face, len(faces))
	for i, f := range faces {
		nf := make(Face, len(f))
		for j := range f {
			nf[j] = f[j] + offset
		}
		out[i] = nf
	}
	return out
}

// Bounds returns the bounding box of the fragment's vertices.
func (f Fragment) Bounds() r3.Box {
	return r3.Box(d3.BoxOf(f.Vertices))
}

// Validate checks every face has 3 or 4 distinct indices that are within
// the vertex range and every vertex is finite.
func (f Fragment) Validate() error {
	for i, v := range f.Vertices {
		if !d3.IsFinite(v) {
			return fmt.Errorf("vertex %d not finite: %w", i, ErrInvalidParameter)
		}
	}
	for i, face := range f.Faces {
		if len(face) != 3 && len(face) != 4 {
			return fmt.Errorf("face %d has %d vertices: %w", i, len(face), ErrDegenerateRing)
		}
		for j, idx := range face {
			if idx < 0 || idx >= len(f.Vertices) {
				return fmt.Errorf("face %d index %d out of range [0,%d)", i, idx, len(f.Vertices))
			}
			for _, other := range face[:j] {
				if other == idx {
					return fmt.Errorf("face %d repeats vertex %d: %w", i, idx, ErrDegenerateRing)
				}
			}
		}
	}
	return nil
}

// Unreferenced returns the number of vertices no face refers to.
func (f Fragment) Unreferenced() int {
	seen := make([]bool, len(f.Vertices))
	n := len(f.Vertices)
	for _, face := range f.Faces {
		for _, idx := range face {
			if idx >= 0 && idx < len(seen) && !seen[idx] {
				seen[idx] = true
				n--
			}
		}
	}
	return n
}
