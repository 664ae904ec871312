package thread

import (
	"math"

	"github.com/soypat/boltmesh/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Threads are meshed as a stack of rings. Every ring holds Divisions+1
// samples, the last repeating the angle of the first, and descends one
// Divisions'th of the pitch per sample so that consecutive rings trace a
// helix. One pitch is made of four rings: crest, falling flank, root and
// rising flank. The thread is cut in zones that hand a running height offset
// from one to the next.

// Divisions is the number of angular steps per turn of thread.
const Divisions = 36

const degStep = 360.0 / Divisions

// Zone is a run of thread rings.
type Zone struct {
	Rings [][]r3.Vec
	// Start is the height offset the zone begins at and End the offset
	// handed to the next zone.
	Start, End float64
	// Lowest is the lowest z of any sample in the zone.
	Lowest float64
}

// part names the four rings of one pitch in the order they are emitted.
type part int

const (
	crestPart part = iota
	fallingFlank
	rootPart
	risingFlank
)

// atCrest reports whether the ring sits on the crest side of the pitch,
// which is the major radius for a full depth thread.
func (p part) atCrest() bool { return p == crestPart || p == fallingFlank }

type builder struct {
	Zone
	t      Parameters
	offset float64
	// clamp limits the height of every sample when not nil.
	clamp func(z float64) float64
}

func newBuilder(t Parameters, start, offset float64) *builder {
	return &builder{
		Zone:   Zone{Start: start, Lowest: math.Inf(1)},
		t:      t,
		offset: offset,
	}
}

// level adds a ring with all samples at height z.
func (b *builder) level(radius, z float64) {
	ring := make([]r3.Vec, Divisions+1)
	for i := range ring {
		ring[i] = d3.Polar(radius, float64(i)*degStep, z)
	}
	b.Lowest = math.Min(b.Lowest, z)
	b.Rings = append(b.Rings, ring)
}

// ring adds a helical ring starting at the current offset.
func (b *builder) ring(radius func(i int, z float64) float64) {
	step := b.t.Pitch / Divisions
	ring := make([]r3.Vec, Divisions+1)
	for i := range ring {
		z := b.offset - step*float64(i)
		if b.clamp != nil {
			z = b.clamp(z)
		}
		ring[i] = d3.Polar(radius(i, z), float64(i)*degStep, z)
		b.Lowest = math.Min(b.Lowest, z)
	}
	b.Rings = append(b.Rings, ring)
}

// turn adds the four rings of one pitch and lowers the offset by one pitch.
func (b *builder) turn(radius func(p part, i int, z float64) float64) {
	heights := [4]float64{b.t.CrestHeight(), b.t.FlankHeight(), b.t.RootHeight(), b.t.FlankHeight()}
	for k, h := range heights {
		p := part(k)
		b.ring(func(i int, z float64) float64 { return radius(p, i, z) })
		b.offset -= h
	}
}

func (b *builder) zone() Zone {
	b.End = b.offset
	return b.Zone
}

// fullDepth places crest rings on the major radius and root rings on the minor radius.
func (t Parameters) fullDepth(p part, _ int, _ float64) float64 {
	if p.atCrest() {
		return t.MajorRadius()
	}
	return t.MinorRadius()
}

// rank is the radial step that ramps a root from one radius to the other
// over one turn.
func (t Parameters) rank() float64 {
	return (t.MajorRadius() - t.MinorRadius()) / Divisions
}

// Shank returns the plain cylinder above a thread: a straight section of
// radius startRadius followed by a taper down to outerRadius. The taper runs
// at 31 degrees and is skipped when it would be longer than length, in which
// case the straight section takes the whole length.
func Shank(startRadius, outerRadius, length, z float64) Zone {
	taper := math.Abs(startRadius-outerRadius) / math.Tan(31*math.Pi/180)
	if taper > length {
		taper = 0
	}
	straight := length - taper
	b := newBuilder(Parameters{}, z, z)
	b.level(startRadius, b.offset)
	b.offset -= straight
	b.level(startRadius, b.offset)
	b.offset -= taper
	return b.zone()
}

// Start returns the zone where an external thread grows out of the shank.
// The first turn lies on the major radius, clamped so that it does not rise
// above z, and overlaps the shank's last ring. Over the next turn the root
// deepens linearly from the major to the minor radius. A final full depth
// turn completes the zone, which ends two pitches below z.
func Start(t Parameters, z float64) Zone {
	b := newBuilder(t, z, z+t.Pitch)
	b.clamp = func(v float64) float64 { return math.Min(v, z) }
	outer, inner, rank := t.MajorRadius(), t.MinorRadius(), t.rank()
	b.turn(func(part, int, float64) float64 { return outer })
	for j := 0; j < 2; j++ {
		b.turn(func(p part, i int, _ float64) float64 {
			switch {
			case p.atCrest():
				return outer
			case j == 0:
				return outer - float64(i)*rank
			}
			return inner
		})
	}
	return b.zone()
}

// BodyTurns returns the number of full depth turns in an external thread of
// the given length. Four pitches are reserved for the start zone and three
// for the end zone.
func BodyTurns(t Parameters, length float64) int {
	n := int(math.Floor((length - 7*t.Pitch) / t.Pitch))
	if n < 0 {
		return 0
	}
	return n
}

// Body returns n full depth turns starting at z.
func Body(t Parameters, n int, z float64) Zone {
	b := newBuilder(t, z, z)
	for j := 0; j < n; j++ {
		b.turn(t.fullDepth)
	}
	return b.zone()
}

// End returns the zone where an external thread fades out. Two pitches below
// z the crests start shrinking at 45 degrees towards the axis and samples
// are not allowed below one more pitch, the lowest plane of the thread.
func End(t Parameters, z float64) Zone {
	taperStart := z - 2*t.Pitch
	floor := taperStart - t.Pitch
	b := newBuilder(t, z, z)
	b.clamp = func(v float64) float64 { return math.Max(v, floor) }
	outer, inner := t.MajorRadius(), t.MinorRadius()
	for j := 0; j < 4; j++ {
		b.turn(func(p part, _ int, zz float64) float64 {
			r := outer - (taperStart - zz)
			if p.atCrest() {
				if zz < taperStart {
					return r
				}
				return outer
			}
			return math.Min(r, inner)
		})
	}
	return b.zone()
}

// InternalStart returns the first turn of a bore thread. Its samples are
// clamped at z and its root ramps out from the major radius to the minor
// radius. The zone ends at z.
func InternalStart(t Parameters, z float64) Zone {
	b := newBuilder(t, z, z+t.Pitch)
	b.clamp = func(v float64) float64 { return math.Min(v, z) }
	outer, rank := t.MajorRadius(), t.rank()
	b.turn(func(p part, i int, _ float64) float64 {
		if p.atCrest() {
			return outer
		}
		return outer - float64(i)*rank
	})
	return b.zone()
}

// InternalBody returns n full depth bore turns starting at z.
func InternalBody(t Parameters, n int, z float64) Zone { return Body(t, n, z) }

// InternalEnd returns the last two turns of a bore thread. The root ramps
// back out to the major radius over the first turn and stays there for the
// second, opening the bore to the full major diameter. Samples are clamped
// one pitch below z which is the lowest plane of the bore.
func InternalEnd(t Parameters, z float64) Zone {
	floor := z - t.Pitch
	b := newBuilder(t, z, z)
	b.clamp = func(v float64) float64 { return math.Max(v, floor) }
	outer, inner, rank := t.MajorRadius(), t.MinorRadius(), t.rank()
	for j := 0; j < 2; j++ {
		b.turn(func(p part, i int, _ float64) float64 {
			if p.atCrest() || j > 0 {
				return outer
			}
			return inner + float64(i)*rank
		})
	}
	return b.zone()
}
