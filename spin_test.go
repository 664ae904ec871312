package boltmesh

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
	"pgregory.net/rapid"
)

const tol = 1e-12

// equalWithin tests the component-wise equality of two vectors within tol.
func equalWithin(a, b r3.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol &&
		math.Abs(a.Y-b.Y) <= tol &&
		math.Abs(a.Z-b.Z) <= tol
}

func TestRotationConvention(t *testing.T) {
	for _, test := range []struct {
		axis Axis
		in   r3.Vec
		want r3.Vec
	}{
		{AxisZ, r3.Vec{X: 1}, r3.Vec{Y: 1}},
		{AxisZ, r3.Vec{Y: 1}, r3.Vec{X: -1}},
		{AxisX, r3.Vec{Y: 1}, r3.Vec{Z: 1}},
		{AxisY, r3.Vec{Z: 1}, r3.Vec{X: 1}},
	} {
		m := RotationMatrix(90, test.axis)
		got := RotateVertices([]r3.Vec{test.in}, m)[0]
		if !equalWithin(got, test.want, tol) {
			t.Errorf("row rotation about %s of %v: got %v, want %v", test.axis, test.in, got, test.want)
		}
		// Negative angles rotate the other way round.
		back := RotateVertices([]r3.Vec{test.in}, RotationMatrix(-90, test.axis))[0]
		if !equalWithin(back, r3.Scale(-1, test.want), tol) {
			t.Errorf("-90 rotation about %s of %v: got %v, want %v", test.axis, test.in, back, r3.Scale(-1, test.want))
		}
	}
}

func TestRotationBadAxis(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	RotationMatrix(10, Axis(0))
}

func TestSpin(t *testing.T) {
	f := Fragment{
		Vertices: []r3.Vec{{X: 1}, {X: 2}, {X: 2, Z: 1}},
		Faces:    []Face{{0, 1, 2}},
		Height:   3,
	}
	got := Spin(f, 360, 6, AxisZ)
	if len(got.Vertices) != 18 || len(got.Faces) != 6 {
		t.Fatalf("got %d vertices %d faces", len(got.Vertices), len(got.Faces))
	}
	if got.Height != f.Height {
		t.Error("height not kept")
	}
	for i, face := range got.Faces {
		for j, idx := range face {
			if idx != f.Faces[0][j]+3*i {
				t.Fatalf("replica %d face %v not offset", i, face)
			}
		}
	}
	// Second replica is 60 degrees counter-clockwise.
	want := r3.Vec{X: math.Cos(math.Pi / 3), Y: math.Sin(math.Pi / 3)}
	if !equalWithin(got.Vertices[3], want, tol) {
		t.Errorf("got %v, want %v", got.Vertices[3], want)
	}
	if err := got.Validate(); err != nil {
		t.Error(err)
	}
	// Clamped divisions.
	one := Spin(f, 90, 0, AxisX)
	if len(one.Vertices) != 3 || !equalWithin(one.Vertices[2], f.Vertices[2], tol) {
		t.Errorf("zero divisions: got %v", one.Vertices)
	}
}

func TestSpinCounts(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		nv := rapid.IntRange(3, 20).Draw(t, "vertices")
		nf := rapid.IntRange(0, 10).Draw(t, "faces")
		div := rapid.IntRange(-2, 40).Draw(t, "divisions")
		f := Fragment{Vertices: make([]r3.Vec, nv)}
		for i := range f.Vertices {
			f.Vertices[i] = r3.Vec{X: float64(i + 1), Z: float64(i)}
		}
		for i := 0; i < nf; i++ {
			a := rapid.IntRange(0, nv-3).Draw(t, "a")
			f.Faces = append(f.Faces, Face{a, a + 1, a + 2})
		}
		got := Spin(f, 360, div, AxisZ)
		wantDiv := div
		if wantDiv < 1 {
			wantDiv = 1
		}
		if len(got.Vertices) != nv*wantDiv {
			t.Fatalf("got %d vertices, want %d", len(got.Vertices), nv*wantDiv)
		}
		if len(got.Faces) != nf*wantDiv {
			t.Fatalf("got %d faces, want %d", len(got.Faces), nf*wantDiv)
		}
		if err := got.Validate(); err != nil {
			t.Fatal(err)
		}
	})
}

func TestRevolveOutward(t *testing.T) {
	// Cylinder wall profile from top to bottom.
	var p ProfileBuilder
	p.Add(1, 1).Add(1, 0)
	f, err := Revolve(p.Profile(), 36, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Vertices) != 37*2 || len(f.Faces) != 36 {
		t.Fatalf("got %d vertices %d faces", len(f.Vertices), len(f.Faces))
	}
	for i, face := range f.Faces {
		a, b, c := f.Vertices[face[0]], f.Vertices[face[1]], f.Vertices[face[2]]
		n := r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
		centroid := r3.Scale(1./3, r3.Add(a, r3.Add(b, c)))
		centroid.Z = 0
		if r3.Dot(n, centroid) <= 0 {
			t.Fatalf("face %d %v points inward", i, face)
		}
	}
	// The seam is closed by welding.
	welded := RemoveDoubles(f, DefaultDecimalPlaces)
	if len(welded.Vertices) != 36*2 || len(welded.Faces) != 36 {
		t.Errorf("welded: got %d vertices %d faces", len(welded.Vertices), len(welded.Faces))
	}
}

func TestRevolveErrors(t *testing.T) {
	if _, err := Revolve([]r3.Vec{{X: 1}}, 4, false); !errors.Is(err, ErrDegenerateRing) {
		t.Errorf("single point profile: got %v", err)
	}
	if _, err := Revolve([]r3.Vec{{X: 1}, {X: 1, Z: 1}}, 0, false); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("zero divisions: got %v", err)
	}
}

func TestProfileArc(t *testing.T) {
	var p ProfileBuilder
	p.Arc(0, 0, 2, 0, 90, 10)
	if p.Len() != 10 {
		t.Fatalf("got %d points", p.Len())
	}
	prof := p.Profile()
	if !equalWithin(prof[0], r3.Vec{Z: 2}, tol) || !equalWithin(prof[9], r3.Vec{X: 2}, tol) {
		t.Errorf("arc ends %v %v", prof[0], prof[9])
	}
	var back ProfileBuilder
	back.Arc(0, 0, 1, 180, 90, -10)
	if back.Len() != 10 || back.LowestZ() != -1 {
		t.Errorf("backwards arc: %d points lowest %g", back.Len(), back.LowestZ())
	}
}
