package obj3

import (
	"fmt"
	"math"

	"github.com/soypat/boltmesh"
	"github.com/soypat/boltmesh/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Drive bit sockets. Both sockets have irregular topology so their faces
// come from fixed adjacency tables rather than a generated grid.

// allenFill stitches the 19 outer chamfer vertices (0-18) to the
// 4 hex corner vertices (19-22) of half an Allen socket.
var allenFill = [21][3]int{
	{19, 1, 0}, {19, 2, 1}, {19, 3, 2}, {19, 20, 3},
	{20, 4, 3}, {20, 5, 4}, {20, 6, 5}, {20, 7, 6}, {20, 8, 7}, {20, 9, 8},
	{20, 21, 9},
	{21, 10, 9}, {21, 11, 10}, {21, 12, 11}, {21, 13, 12}, {21, 14, 13}, {21, 15, 14},
	{21, 22, 15},
	{22, 16, 15}, {22, 17, 16}, {22, 18, 17},
}

// phillipsFill covers a quarter of a Phillips socket. Vertices 0-9 are the
// outer chamfer, 10-14 the top of the cross and 15-18 its floor.
// Entries are wound inward and reversed when used.
var phillipsFill = [18][]int{
	{0, 1, 10}, {1, 11, 10}, {1, 2, 11}, {2, 12, 11},
	{2, 3, 12}, {3, 4, 12}, {4, 5, 12}, {5, 6, 12}, {6, 7, 12},
	{7, 13, 12}, {7, 8, 13}, {8, 14, 13}, {8, 9, 14},
	{10, 11, 16, 15}, {11, 12, 16}, {12, 13, 16}, {13, 14, 17, 16}, {15, 16, 17, 18},
}

var cos30 = math.Cos(30 * math.Pi / 180)

// AllenBitDia returns the chamfered outer diameter of an Allen socket
// with the given distance across flats.
func AllenBitDia(flat float64) float64 {
	return flat / 2 / cos30 * 1.05 * 2
}

// AllenDiaToFlat is the inverse of AllenBitDia.
func AllenDiaToFlat(dia float64) float64 {
	return dia / 2 / 1.05 * cos30 * 2
}

// PhillipsBitWidth returns the width of a Phillips cross arm.
func PhillipsBitWidth(dia float64) float64 {
	return dia * (0.5 / 1.82)
}

// PhillipsBitDepth returns the depth of a Phillips socket whose arms
// end in a 60 degree point.
func PhillipsBitDepth(dia float64) float64 {
	x := dia/2 - PhillipsBitWidth(dia)/2
	return math.Tan(60*math.Pi/180) * x
}

// AllenBit returns a hexagonal socket with flat as the distance across flats,
// recessed depth below z=0. The socket opening is chamfered out to
// AllenBitDia(flat). The fragment Height is the socket's outer diameter.
func AllenBit(flat, depth float64) (f boltmesh.Fragment, err error) {
	switch {
	case flat <= 0:
		err = fmt.Errorf("allen flat %g <= 0: %w", flat, boltmesh.ErrInvalidParameter)
	case depth <= 0:
		err = fmt.Errorf("allen depth %g <= 0: %w", depth, boltmesh.ErrInvalidParameter)
	}
	if err != nil {
		return f, err
	}
	flatRadius := flat / 2 / cos30
	outer := flatRadius * 1.05
	chamfer := flatRadius * (0.1 / 5.77)
	verts := make([]r3.Vec, 0, 27)
	// Half of the opening, mirrored below.
	for i := 0; i <= 18; i++ {
		verts = append(verts, d3.Polar(outer, float64(i)*10, 0))
	}
	for i := 0; i <= 3; i++ {
		verts = append(verts, d3.Polar(flatRadius, float64(i)*60, -chamfer))
	}
	for i := 0; i <= 3; i++ {
		verts = append(verts, d3.Polar(flatRadius, float64(i)*60, -depth))
	}
	faces := make([]boltmesh.Face, 0, len(allenFill)+5)
	for _, tri := range allenFill {
		faces = append(faces, boltmesh.Face{tri[0], tri[1], tri[2]})
	}
	walls, err := boltmesh.QuadGrid(19, 3, 1, true)
	if err != nil {
		return f, err
	}
	floor, err := boltmesh.FillRing(23, 4, false)
	if err != nil {
		return f, err
	}
	faces = append(faces, walls...)
	faces = append(faces, floor...)
	f = boltmesh.MirrorAppend(boltmesh.Fragment{Vertices: verts, Faces: faces}, boltmesh.AxisX, 0)
	f.Height = outer * 2
	return f, nil
}

// PhillipsBit returns a cross socket of diameter dia, arm width width,
// recessed depth below z=0. A quarter of the socket is built from a fixed
// table and revolved four times. The fragment Height is the socket's outer diameter.
func PhillipsBit(dia, width, depth float64) (f boltmesh.Fragment, err error) {
	switch {
	case dia <= 0:
		err = fmt.Errorf("phillips diameter %g <= 0: %w", dia, boltmesh.ErrInvalidParameter)
	case width <= 0 || width >= dia:
		err = fmt.Errorf("phillips width %g not in (0, %g): %w", width, dia, boltmesh.ErrInvalidParameter)
	case depth <= 0:
		err = fmt.Errorf("phillips depth %g <= 0: %w", depth, boltmesh.ErrInvalidParameter)
	}
	if err != nil {
		return f, err
	}
	flatRadius := dia / 2
	outer := flatRadius * 1.05
	half := width / 2
	verts := make([]r3.Vec, 0, 19)
	for i := 0; i <= 9; i++ {
		verts = append(verts, d3.Polar(outer, float64(i)*10, 0))
	}
	verts = append(verts,
		r3.Vec{X: 0, Y: flatRadius},
		r3.Vec{X: half, Y: flatRadius},
		r3.Vec{X: half, Y: half},
		r3.Vec{X: flatRadius, Y: half},
		r3.Vec{X: flatRadius, Y: 0},

		r3.Vec{X: 0, Y: half, Z: -depth},
		r3.Vec{X: half, Y: half, Z: -depth},
		r3.Vec{X: half, Y: 0, Z: -depth},
		r3.Vec{X: 0, Y: 0, Z: -depth},
	)
	faces := make([]boltmesh.Face, len(phillipsFill))
	for i, entry := range phillipsFill {
		face := make(boltmesh.Face, len(entry))
		for j := range entry {
			face[len(entry)-1-j] = entry[j]
		}
		faces[i] = face
	}
	f = boltmesh.Spin(boltmesh.Fragment{Vertices: verts, Faces: faces}, 360, 4, boltmesh.AxisZ)
	f.Height = outer * 2
	return f, nil
}
