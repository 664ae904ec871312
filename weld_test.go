package boltmesh

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/soypat/boltmesh/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
	"pgregory.net/rapid"
)

func TestRemoveDoubles(t *testing.T) {
	f := Fragment{
		Vertices: []r3.Vec{
			{X: 0}, {X: 1}, {X: 1, Y: 1},
			{X: 1.00001, Y: 0}, // welds onto 1
			{X: 0, Y: 1},
			{X: 7}, // unreferenced
		},
		Faces: []Face{
			{0, 1, 2},
			{0, 3, 2, 4},
			{1, 3, 2}, // collapses to an edge
		},
		Height: 2,
	}
	got := RemoveDoubles(f, 4)
	wantVerts := []r3.Vec{{X: 0}, {X: 1}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	wantFaces := []Face{{0, 1, 2}, {0, 1, 2, 3}}
	if !reflect.DeepEqual(got.Vertices, wantVerts) {
		t.Errorf("vertices: got %v, want %v", got.Vertices, wantVerts)
	}
	if !reflect.DeepEqual(got.Faces, wantFaces) {
		t.Errorf("faces: got %v, want %v", got.Faces, wantFaces)
	}
	if got.Height != f.Height {
		t.Error("height not kept")
	}
}

// randomFragment draws vertices on a coarse lattice so that many coincide.
func randomFragment(t *rapid.T) Fragment {
	nv := rapid.IntRange(3, 40).Draw(t, "nv")
	verts := make([]r3.Vec, nv)
	for i := range verts {
		verts[i] = r3.Vec{
			X: float64(rapid.IntRange(-3, 3).Draw(t, "x")) * 0.25,
			Y: float64(rapid.IntRange(-3, 3).Draw(t, "y")) * 0.25,
			Z: float64(rapid.IntRange(-3, 3).Draw(t, "z"))*0.25 + rapid.Float64Range(-1e-6, 1e-6).Draw(t, "jitter"),
		}
	}
	nf := rapid.IntRange(0, 30).Draw(t, "nf")
	faces := make([]Face, nf)
	for i := range faces {
		faces[i] = Face(rapid.SliceOfN(rapid.IntRange(0, nv-1), 3, 4).Draw(t, "face"))
	}
	return Fragment{Vertices: verts, Faces: faces}
}

func TestRemoveDoublesProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		f := randomFragment(t)
		once := RemoveDoubles(f, DefaultDecimalPlaces)
		if err := once.Validate(); err != nil {
			t.Fatal(err)
		}
		if n := once.Unreferenced(); n != 0 {
			t.Fatalf("%d unreferenced vertices", n)
		}
		seen := make(map[d3.Key]bool)
		for _, v := range once.Vertices {
			k := d3.RoundKey(v, DefaultDecimalPlaces)
			if seen[k] {
				t.Fatalf("vertex %v welded twice", v)
			}
			seen[k] = true
		}
		twice := RemoveDoubles(once, DefaultDecimalPlaces)
		if !reflect.DeepEqual(once, twice) {
			t.Fatalf("not idempotent:\n%v\n%v", once, twice)
		}
	})
}

func TestMirrorInvolution(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("mirroring twice restores vertices and winding", prop.ForAll(
		func(xs []float64, axis int, flip float64) bool {
			f := Fragment{}
			for i := 0; i+2 < len(xs); i += 3 {
				f.Vertices = append(f.Vertices, r3.Vec{X: xs[i], Y: xs[i+1], Z: xs[i+2]})
			}
			for i := 0; i+2 < len(f.Vertices); i++ {
				f.Faces = append(f.Faces, Face{i, i + 1, i + 2})
			}
			ax := Axis(axis)
			m := Mirror(f, ax, flip)
			mm := Mirror(m, ax, flip)
			n := len(f.Vertices)
			for i, v := range f.Vertices {
				if !equalWithin(v, mm.Vertices[i], 1e-9) {
					return false
				}
				if ax == AxisZ && math.Abs(m.Vertices[i].Z+v.Z-2*flip) > 1e-9 {
					return false
				}
			}
			for i, face := range f.Faces {
				for j := range face {
					if mm.Faces[i][j] != face[j]+2*n {
						return false
					}
					if m.Faces[i][len(face)-1-j] != face[j]+n {
						return false
					}
				}
			}
			return true
		},
		gen.SliceOf(gen.Float64Range(-100, 100)),
		gen.IntRange(int(AxisX), int(AxisZ)),
		gen.Float64Range(-10, 10),
	))

	properties.TestingRun(t)
}

func TestMirrorAppend(t *testing.T) {
	f := Fragment{
		Vertices: []r3.Vec{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 2, Y: 2}},
		Faces:    []Face{{0, 1, 2}},
		Height:   1,
	}
	got := MirrorAppend(f, AxisX, 0)
	if len(got.Vertices) != 6 || len(got.Faces) != 2 || got.Height != 1 {
		t.Fatalf("got %+v", got)
	}
	if got.Vertices[4] != (r3.Vec{X: -2, Y: 1}) {
		t.Errorf("mirrored vertex: got %v", got.Vertices[4])
	}
	if !reflect.DeepEqual(got.Faces[1], Face{5, 4, 3}) {
		t.Errorf("mirrored face: got %v", got.Faces[1])
	}
	// The source is not modified.
	if !reflect.DeepEqual(f.Faces[0], Face{0, 1, 2}) {
		t.Error("source faces modified")
	}
}

func TestNearCoincident(t *testing.T) {
	verts := []r3.Vec{
		{X: 0},
		{X: 1e-6},
		{X: 1},
		{X: 1, Y: 2e-6},
		{X: 1, Y: 1},
	}
	if got := NearCoincident(verts, 1e-4); got != 2 {
		t.Errorf("got %d pairs, want 2", got)
	}
	if got := NearCoincident(verts, 1e-9); got != 0 {
		t.Errorf("got %d pairs, want 0", got)
	}
	if got := NearCoincident(verts[:1], 1); got != 0 {
		t.Errorf("single vertex: got %d", got)
	}
}

func TestFragmentValidate(t *testing.T) {
	verts := []r3.Vec{{}, {X: 1}, {Y: 1}}
	for _, test := range []struct {
		f    Fragment
		want error
	}{
		{Fragment{Vertices: verts, Faces: []Face{{0, 1, 2}}}, nil},
		{Fragment{Vertices: verts, Faces: []Face{{0, 1}}}, ErrDegenerateRing},
		{Fragment{Vertices: verts, Faces: []Face{{0, 1, 1}}}, ErrDegenerateRing},
		{Fragment{Vertices: []r3.Vec{{X: math.NaN()}}}, ErrInvalidParameter},
	} {
		err := test.f.Validate()
		if (test.want == nil) != (err == nil) || (test.want != nil && !errors.Is(err, test.want)) {
			t.Errorf("Validate(%v): got %v, want %v", test.f, err, test.want)
		}
	}
	if err := (Fragment{Vertices: verts, Faces: []Face{{0, 1, 3}}}).Validate(); err == nil {
		t.Error("expected out of range error")
	}
}

func TestConcat(t *testing.T) {
	a := Fragment{Vertices: []r3.Vec{{}, {X: 1}, {Y: 1}}, Faces: []Face{{0, 1, 2}}, Height: 4}
	got := Concat(a, a.Lift(1), Scale(a, 2))
	if len(got.Vertices) != 9 || got.Height != 0 {
		t.Fatalf("got %+v", got)
	}
	if !reflect.DeepEqual(got.Faces, []Face{{0, 1, 2}, {3, 4, 5}, {6, 7, 8}}) {
		t.Errorf("faces: got %v", got.Faces)
	}
	if got.Vertices[3].Z != 1 || got.Vertices[7].X != 2 {
		t.Errorf("transformed vertices: got %v", got.Vertices)
	}
	b := got.Bounds()
	if b.Min != (r3.Vec{}) || b.Max != (r3.Vec{X: 2, Y: 2, Z: 1}) {
		t.Errorf("bounds: got %+v", b)
	}
}
