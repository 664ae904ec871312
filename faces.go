package boltmesh

import "fmt"

// QuadGrid returns the quads stitching a grid of vertices laid out row-major
// starting at index offset. Each row holds columns+1 vertices so that
// columns*rows quads are emitted. With flip set the quad connecting
// vertex (r,c) is wound (r,c),(r+1,c),(r+1,c+1),(r,c+1), otherwise the
// reverse order is used.
func QuadGrid(offset, columns, rows int, flip bool) ([]Face, error) {
	switch {
	case offset < 0:
		return nil, fmt.Errorf("quad grid offset %d < 0: %w", offset, ErrInvalidParameter)
	case columns < 1 || rows < 1:
		return nil, fmt.Errorf("quad grid of %d columns by %d rows: %w", columns, rows, ErrDegenerateRing)
	}
	faces := make([]Face, 0, columns*rows)
	rowStart := offset
	stride := columns + 1
	for j := 0; j < rows; j++ {
		for i := 0; i < columns; i++ {
			r1 := rowStart + i
			r2 := r1 + stride
			r3 := r2 + 1
			r4 := r1 + 1
			if flip {
				faces = append(faces, Face{r1, r2, r3, r4})
			} else {
				faces = append(faces, Face{r4, r3, r2, r1})
			}
		}
		rowStart += stride
	}
	return faces, nil
}

// FillRing triangulates a closed ring of n vertices starting at offset into
// n-2 triangles. Triangles are emitted in a zig-zag that walks from both ends
// of the ring towards the middle so that no single vertex fans out to
// every other. faceDown reverses the winding of every triangle.
func FillRing(offset, n int, faceDown bool) ([]Face, error) {
	switch {
	case n < 3:
		return nil, fmt.Errorf("fill ring of %d vertices: %w", n, ErrDegenerateRing)
	case offset < 0:
		return nil, fmt.Errorf("fill ring offset %d < 0: %w", offset, ErrInvalidParameter)
	}
	const a, b, c = 0, 1, 2
	face := [3]int{1, 2, 0}
	faces := make([]Face, 0, n-2)
	for i := 0; i < n-2; i++ {
		var next [3]int
		odd := i%2 == 1
		next[0] = face[c]
		switch {
		case odd:
			next[1] = face[c] + 1
		case face[c] == 0:
			next[1] = n - 1
		default:
			next[1] = face[c] - 1
		}
		next[2] = face[b]
		// Odd steps walk forward from the start and even steps walk
		// backward from the end, each with its own base winding.
		up := Face{offset + face[a], offset + face[b], offset + face[c]}
		if odd == faceDown {
			reverse(up)
		}
		faces = append(faces, up)
		face = next
	}
	return faces, nil
}
