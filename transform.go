package boltmesh

import (
	"math"

	"github.com/soypat/boltmesh/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// RotationMatrix returns the 4x4 rotation matrix for angleDeg degrees about
// axis, laid out to be applied to row vectors (v·M) as RotateVertices and
// Spin do: counter-clockwise about the axis looking down it towards the
// origin. The faces stitched by Revolve wind outward only under this
// convention.
//
// RotationMatrix panics if axis is not AxisX, AxisY or AxisZ.
func RotationMatrix(angleDeg float64, axis Axis) d3.Transform {
	s, c := math.Sincos(angleDeg * math.Pi / 180)
	switch axis {
	case AxisX:
		return d3.NewTransform([]float64{
			1, 0, 0, 0,
			0, c, s, 0,
			0, -s, c, 0,
			0, 0, 0, 1,
		})
	case AxisY:
		return d3.NewTransform([]float64{
			c, 0, -s, 0,
			0, 1, 0, 0,
			s, 0, c, 0,
			0, 0, 0, 1,
		})
	case AxisZ:
		return d3.NewTransform([]float64{
			c, s, 0, 0,
			-s, c, 0, 0,
			0, 0, 1, 0,
			0, 0, 0, 1,
		})
	}
	panic("bad rotation axis " + axis.String())
}

// RotateVertices returns the vertices multiplied as row vectors by m.
func RotateVertices(verts []r3.Vec, m d3.Transform) []r3.Vec {
	out := make([]r3.Vec, len(verts))
	for i, v := range verts {
		out[i] = m.RowTransform(v)
	}
	return out
}

// ScaleVertices returns the vertices scaled uniformly by factor about the origin.
func ScaleVertices(verts []r3.Vec, factor float64) []r3.Vec {
	out := make([]r3.Vec, len(verts))
	for i, v := range verts {
		out[i] = r3.Scale(factor, v)
	}
	return out
}

// TranslateZ returns the vertices moved dz along the z axis.
func TranslateZ(verts []r3.Vec, dz float64) []r3.Vec {
	out := make([]r3.Vec, len(verts))
	for i, v := range verts {
		v.Z += dz
		out[i] = v
	}
	return out
}

// Lift returns a copy of f with its vertices moved dz along z.
func (f Fragment) Lift(dz float64) Fragment {
	return Fragment{Vertices: TranslateZ(f.Vertices, dz), Faces: copyFaces(f.Faces, 0), Height: f.Height}
}

// Mirror reflects every vertex of f about the plane perpendicular to axis
// that passes through flipPoint. The faces are offset by the vertex count of f
// and their winding is reversed so normals still point outward.
// Only the mirrored copy is returned; callers Append it to f.
//
// Mirror panics if axis is not AxisX, AxisY or AxisZ.
func Mirror(f Fragment, axis Axis, flipPoint float64) Fragment {
	verts := make([]r3.Vec, len(f.Vertices))
	for i, v := range f.Vertices {
		switch axis {
		case AxisX:
			v.X = 2*flipPoint - v.X
		case AxisY:
			v.Y = 2*flipPoint - v.Y
		case AxisZ:
			v.Z = 2*flipPoint - v.Z
		default:
			panic("bad mirror axis " + axis.String())
		}
		verts[i] = v
	}
	faces := copyFaces(f.Faces, len(f.Vertices))
	for _, face := range faces {
		reverse(face)
	}
	return Fragment{Vertices: verts, Faces: faces, Height: f.Height}
}

// MirrorAppend returns f with its mirror image appended.
func MirrorAppend(f Fragment, axis Axis, flipPoint float64) Fragment {
	m := Mirror(f, axis, flipPoint)
	// Mirror already offset the faces.
	out := Fragment{
		Vertices: append(append(make([]r3.Vec, 0, 2*len(f.Vertices)), f.Vertices...), m.Vertices...),
		Faces:    append(copyFaces(f.Faces, 0), m.Faces...),
		Height:   f.Height,
	}
	return out
}

func reverse(f Face) {
	for i, j := 0, len(f)-1; i < j; i, j = i+1, j-1 {
		f[i], f[j] = f[j], f[i]
	}
}
