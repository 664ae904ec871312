package thread

import (
	"errors"
	"math"
	"testing"

	"github.com/soypat/boltmesh"
	"gonum.org/v1/gonum/spatial/r3"
)

func iso(major, pitch float64) Parameters {
	return Parameters{
		MajorDia:     major,
		MinorDia:     ISOMinorDiameter(major, pitch),
		Pitch:        pitch,
		CrestPercent: 10,
		RootPercent:  10,
	}
}

func radius(v r3.Vec) float64 { return math.Hypot(v.X, v.Y) }

func TestISOMinorDiameter(t *testing.T) {
	if got := ISOMinorDiameter(8, 1); math.Abs(got-6.917468) > 1e-9 {
		t.Errorf("got %g", got)
	}
	p := iso(8, 1)
	if math.Abs(p.CrestHeight()+p.RootHeight()+2*p.FlankHeight()-p.Pitch) > 1e-12 {
		t.Error("crest, root and flanks do not add up to a pitch")
	}
}

func TestParametersValidate(t *testing.T) {
	good := iso(3, 0.35)
	if err := good.Validate(); err != nil {
		t.Fatal(err)
	}
	for _, mod := range []func(p *Parameters){
		func(p *Parameters) { p.Pitch = 0 },
		func(p *Parameters) { p.MinorDia = 0 },
		func(p *Parameters) { p.MinorDia = p.MajorDia },
		func(p *Parameters) { p.CrestPercent = 0 },
		func(p *Parameters) { p.CrestPercent, p.RootPercent = 50, 50 },
		func(p *Parameters) { p.CrestPercent, p.RootPercent = 60, 45 },
	} {
		p := good
		mod(&p)
		if err := p.Validate(); !errors.Is(err, boltmesh.ErrInvalidParameter) {
			t.Errorf("%+v: got %v", p, err)
		}
	}
}

func TestExternalZones(t *testing.T) {
	for _, k := range []ExternalParms{
		{Thread: iso(3, 0.35), ShankDia: 3, Length: 6},
		{Thread: iso(12, 1.5), ShankDia: 12, ShankLength: 33, Length: 32},
		{Thread: iso(6, 0.5), ShankDia: 6, Length: 0.5},
		{Thread: iso(6, 0.75), ShankDia: 8, ShankLength: 0.5, Length: 12},
	} {
		zones, err := ExternalZones(k)
		if err != nil {
			t.Fatal(err)
		}
		if len(zones) != 4 || zones[0].Start != 0 {
			t.Fatalf("got %d zones starting at %g", len(zones), zones[0].Start)
		}
		for i := 1; i < len(zones); i++ {
			if zones[i].Start != zones[i-1].End {
				t.Errorf("%+v: zone %d starts at %g, previous ended at %g", k, i, zones[i].Start, zones[i-1].End)
			}
		}
		for _, z := range zones {
			for _, ring := range z.Rings {
				if len(ring) != Divisions+1 {
					t.Fatalf("ring of %d samples", len(ring))
				}
			}
		}
		tp := k.Thread
		for _, ring := range zones[2].Rings {
			for _, v := range ring {
				r := radius(v)
				if math.Abs(r-tp.MajorRadius()) > 1e-9 && math.Abs(r-tp.MinorRadius()) > 1e-9 {
					t.Fatalf("body sample %v at radius %g, not on major or minor radius", v, r)
				}
			}
		}
		// Start samples never rise above the shank.
		for _, ring := range zones[1].Rings {
			for _, v := range ring {
				if v.Z > zones[1].Start+1e-12 {
					t.Fatalf("start sample %v above %g", v, zones[1].Start)
				}
			}
		}
		if got, want := zones[1].End, zones[1].Start-2*tp.Pitch; math.Abs(got-want) > 1e-9 {
			t.Errorf("start zone ends at %g, want %g", got, want)
		}
		if got, want := len(zones[2].Rings), 4*BodyTurns(tp, k.Length); got != want {
			t.Errorf("body has %d rings, want %d", got, want)
		}
	}
}

func TestExternal(t *testing.T) {
	k := ExternalParms{Thread: iso(3, 0.35), ShankDia: 3, Length: 6}
	f, err := External(k)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Validate(); err != nil {
		t.Fatal(err)
	}
	// 2 shank rings, 3 start turns, 10 body turns and 4 end turns.
	const rings = 2 + 4*(3+10+4)
	if len(f.Vertices) != rings*(Divisions+1) {
		t.Errorf("got %d vertices, want %d", len(f.Vertices), rings*(Divisions+1))
	}
	if want := Divisions*(rings-1) + Divisions - 2; len(f.Faces) != want {
		t.Errorf("got %d faces, want %d", len(f.Faces), want)
	}
	P := k.Thread.Pitch
	if f.Height < k.Length-3*P || f.Height > k.Length {
		t.Errorf("height %g outside [%g, %g]", f.Height, k.Length-3*P, k.Length)
	}
	if math.Abs(f.Height-5.25) > 1e-9 {
		t.Errorf("height %g, want 5.25", f.Height)
	}
	b := f.Bounds()
	if math.Abs(b.Max.Z) > 1e-12 || math.Abs(b.Min.Z+f.Height) > 1e-9 {
		t.Errorf("bounds %+v do not match height %g", b, f.Height)
	}
	for _, v := range f.Vertices {
		if r := radius(v); r > k.Thread.MajorRadius()+1e-9 {
			t.Fatalf("sample %v outside major radius", v)
		}
	}
}

func TestExternalShankTaper(t *testing.T) {
	// A shank wider than the thread tapers down to the major diameter.
	k := ExternalParms{Thread: iso(6, 0.75), ShankDia: 8, ShankLength: 5, Length: 12}
	zones, err := ExternalZones(k)
	if err != nil {
		t.Fatal(err)
	}
	taper := 1 / math.Tan(31*math.Pi/180)
	if got := zones[0].End; math.Abs(got+5) > 1e-9 {
		t.Errorf("shank ends at %g", got)
	}
	if got := zones[0].Rings[1][0].Z; math.Abs(got-(taper-5)) > 1e-9 {
		t.Errorf("taper starts at %g, want %g", got, taper-5)
	}
	// Too short for the taper: the straight section takes the length.
	k.ShankLength = 0.5
	zones, err = ExternalZones(k)
	if err != nil {
		t.Fatal(err)
	}
	if got := zones[0].Rings[1][0].Z; math.Abs(got+0.5) > 1e-12 {
		t.Errorf("short shank second ring at %g", got)
	}
}

func TestBodyTurns(t *testing.T) {
	p := iso(3, 0.35)
	for _, test := range []struct {
		length float64
		want   int
	}{
		{6, 10},
		{7 * 0.35, 0},
		{1, 0},
		{0.1, 0},
	} {
		if got := BodyTurns(p, test.length); got != test.want {
			t.Errorf("BodyTurns(%g) = %d, want %d", test.length, got, test.want)
		}
	}
}

func TestInternal(t *testing.T) {
	k := InternalParms{Thread: iso(8, 1), Height: 6.5}
	if n := InternalTurns(k.Thread, k.Height); n != 6 {
		t.Fatalf("got %d turns, want 6", n)
	}
	zones, err := InternalZones(k)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(zones); i++ {
		if zones[i].Start != zones[i-1].End {
			t.Errorf("zone %d discontinuous", i)
		}
	}
	f, err := Internal(k)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Validate(); err != nil {
		t.Fatal(err)
	}
	if math.Abs(f.Height-7) > 1e-9 {
		t.Errorf("bore depth %g, want 7", f.Height)
	}
	rings := 4 * (1 + 6 + 2)
	if len(f.Vertices) != rings*(Divisions+1) || len(f.Faces) != Divisions*(rings-1) {
		t.Errorf("got %d vertices %d faces", len(f.Vertices), len(f.Faces))
	}
	// The last turn opens the bore to the major radius.
	last := zones[2].Rings[len(zones[2].Rings)-1]
	for _, v := range last {
		if math.Abs(radius(v)-k.Thread.MajorRadius()) > 1e-9 {
			t.Fatalf("last ring sample %v not on major radius", v)
		}
	}
	if _, err := Internal(InternalParms{Thread: k.Thread}); !errors.Is(err, boltmesh.ErrInvalidParameter) {
		t.Errorf("zero height: got %v", err)
	}
}

func TestInternalMatesExternal(t *testing.T) {
	tp := iso(8, 1.25)
	ext, err := ExternalZones(ExternalParms{Thread: tp, ShankDia: 8, Length: 20})
	if err != nil {
		t.Fatal(err)
	}
	bore, err := InternalZones(InternalParms{Thread: tp, Height: 8})
	if err != nil {
		t.Fatal(err)
	}
	male, female := ext[2], bore[1]
	if len(female.Rings) == 0 || len(male.Rings) < len(female.Rings) {
		t.Fatalf("bore body has %d rings, bolt body %d", len(female.Rings), len(male.Rings))
	}
	minR := math.Inf(1)
	for k, ring := range female.Rings {
		for i, v := range ring {
			w := male.Rings[k][i]
			if math.Abs(radius(v)-radius(w)) > 1e-9 {
				t.Fatalf("ring %d sample %d: bore radius %g, bolt radius %g", k, i, radius(v), radius(w))
			}
			if dz := (v.Z - female.Start) - (w.Z - male.Start); math.Abs(dz) > 1e-9 {
				t.Fatalf("ring %d sample %d: z offset differs by %g", k, i, dz)
			}
			if math.Abs(v.X-w.X) > 1e-9 || math.Abs(v.Y-w.Y) > 1e-9 {
				t.Fatalf("ring %d sample %d: angle differs %v %v", k, i, v, w)
			}
			minR = math.Min(minR, radius(v))
		}
	}
	// The bore crest rides on the bolt root.
	if math.Abs(minR-tp.MinorRadius()) > 1e-9 {
		t.Errorf("bore crest radius %g, bolt minor radius %g", minR, tp.MinorRadius())
	}
	if span := female.Start - female.End; math.Abs(span-float64(InternalTurns(tp, 8))*tp.Pitch) > 1e-9 {
		t.Errorf("bore body spans %g", span)
	}
}

func TestInternalTurnsRounding(t *testing.T) {
	p := iso(3, 0.5)
	for _, test := range []struct {
		height float64
		want   int
	}{
		{1.25, 2}, // 1.5 rounds to even
		{1.75, 2}, // 2.5 rounds to even
		{0.25, 0},
		{0.1, 0},
	} {
		if got := InternalTurns(p, test.height); got != test.want {
			t.Errorf("InternalTurns(%g) = %d, want %d", test.height, got, test.want)
		}
	}
}

func TestExternalErrors(t *testing.T) {
	for _, k := range []ExternalParms{
		{Thread: iso(3, 0.35), ShankDia: 0, Length: 6},
		{Thread: iso(3, 0.35), ShankDia: 3, ShankLength: -1, Length: 6},
		{Thread: iso(3, 0.35), ShankDia: 3, Length: 0},
		{Thread: iso(3, -0.35), ShankDia: 3, Length: 6},
	} {
		if _, err := External(k); !errors.Is(err, boltmesh.ErrInvalidParameter) {
			t.Errorf("%+v: got %v", k, err)
		}
	}
}

func BenchmarkExternal(b *testing.B) {
	k := ExternalParms{Thread: iso(12, 1.5), ShankDia: 12, ShankLength: 33, Length: 32}
	for i := 0; i < b.N; i++ {
		External(k)
	}
}
