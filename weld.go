package boltmesh

import (
	"github.com/soypat/boltmesh/internal/d3"
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultDecimalPlaces is the rounding used to weld vertices.
const DefaultDecimalPlaces = 4

// RemoveDoubles welds vertices that round to the same coordinates at the
// given number of decimal places. Faces are walked in order and the first
// vertex seen for a rounded position wins, keeping its unrounded coordinates.
// Repeated indices within a face are dropped, and faces left without exactly 3
// or 4 distinct indices are discarded. Vertices no face refers to do not
// appear in the result.
func RemoveDoubles(f Fragment, decimals int) Fragment {
	cache := make(map[d3.Key]int, len(f.Vertices))
	out := Fragment{
		Vertices: make([]r3.Vec, 0, len(f.Vertices)),
		Faces:    make([]Face, 0, len(f.Faces)),
		Height:   f.Height,
	}
	for _, face := range f.Faces {
		nf := make(Face, 0, len(face))
		for _, idx := range face {
			v := f.Vertices[idx]
			key := d3.RoundKey(v, decimals)
			welded, ok := cache[key]
			if !ok {
				welded = len(out.Vertices)
				cache[key] = welded
				out.Vertices = append(out.Vertices, v)
			}
			if !contains(nf, welded) {
				nf = append(nf, welded)
			}
		}
		if len(nf) == 3 || len(nf) == 4 {
			out.Faces = append(out.Faces, nf)
		}
	}
	return out
}

func contains(f Face, idx int) bool {
	for _, v := range f {
		if v == idx {
			return true
		}
	}
	return false
}

// Scale returns a copy of f with every vertex scaled by factor. Height is scaled too.
func Scale(f Fragment, factor float64) Fragment {
	return Fragment{
		Vertices: ScaleVertices(f.Vertices, factor),
		Faces:    copyFaces(f.Faces, 0),
		Height:   f.Height * factor,
	}
}

// NearCoincident returns the number of vertex pairs closer than tol.
// Rounding based welding misses pairs that straddle a rounding boundary;
// this reports them.
func NearCoincident(verts []r3.Vec, tol float64) int {
	if len(verts) < 2 {
		return 0
	}
	pts := make(kdtree.Points, len(verts))
	for i, v := range verts {
		pts[i] = kdtree.Point{v.X, v.Y, v.Z}
	}
	// kdtree.New reorders its argument.
	tree := kdtree.New(append(kdtree.Points(nil), pts...), false)
	hits := 0
	for _, q := range pts {
		keep := kdtree.NewDistKeeper(tol * tol)
		tree.NearestSet(keep, q)
		for _, c := range keep.Heap {
			if c.Comparable != nil {
				hits++
			}
		}
		hits-- // the query point itself.
	}
	return hits / 2
}
