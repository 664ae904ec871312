// Package render converts face lists into triangles and writes them to
// binary STL files.
package render

import (
	"fmt"

	"github.com/soypat/boltmesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// Triangle is a triangle with counter-clockwise winding when viewed from
// outside the solid.
type Triangle [3]r3.Vec

// Normal returns the unit normal of the triangle.
func (t Triangle) Normal() r3.Vec {
	e1 := r3.Sub(t[1], t[0])
	e2 := r3.Sub(t[2], t[0])
	return r3.Unit(r3.Cross(e1, e2))
}

// Triangulate splits faces into triangles. Quads are split along the
// diagonal from their first to third vertex.
func Triangulate(verts []r3.Vec, faces []boltmesh.Face) ([]Triangle, error) {
	tris := make([]Triangle, 0, 2*len(faces))
	for i, f := range faces {
		for _, idx := range f {
			if idx < 0 || idx >= len(verts) {
				return nil, fmt.Errorf("face %d index %d out of range: %w", i, idx, boltmesh.ErrInvalidParameter)
			}
		}
		switch len(f) {
		case 3:
			tris = append(tris, Triangle{verts[f[0]], verts[f[1]], verts[f[2]]})
		case 4:
			tris = append(tris,
				Triangle{verts[f[0]], verts[f[1]], verts[f[2]]},
				Triangle{verts[f[0]], verts[f[2]], verts[f[3]]},
			)
		default:
			return nil, fmt.Errorf("face %d has %d vertices: %w", i, len(f), boltmesh.ErrDegenerateRing)
		}
	}
	return tris, nil
}
