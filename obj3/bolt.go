package obj3

import (
	"fmt"

	"github.com/soypat/boltmesh"
	"github.com/soypat/boltmesh/obj3/thread"
	"golang.org/x/sync/errgroup"
)

// HeadStyle selects the shape of a bolt head.
type HeadStyle int

const (
	_ HeadStyle = iota
	HeadHex
	HeadCap
	HeadDome
	HeadPan
)

func (c HeadStyle) String() (str string) {
	switch c {
	case HeadHex:
		str = "hex"
	case HeadCap:
		str = "cap"
	case HeadDome:
		str = "dome"
	case HeadPan:
		str = "pan"
	default:
		str = "unknown"
	}
	return str
}

// BitStyle selects the drive recess cut into a bolt head.
type BitStyle int

const (
	BitNone BitStyle = iota
	BitAllen
	BitPhillips
)

func (c BitStyle) String() (str string) {
	switch c {
	case BitNone:
		str = "none"
	case BitAllen:
		str = "allen"
	case BitPhillips:
		str = "phillips"
	default:
		str = "unknown"
	}
	return str
}

// noBitDia is the diameter of the pinhole left in a head without a bit.
const noBitDia = 0.001

// BoltParms defines the parameters for a bolt.
type BoltParms struct {
	Thread       thread.Parameters
	Head         HeadStyle
	Bit          BitStyle
	ShankDia     float64
	ShankLength  float64 // unthreaded length
	ThreadLength float64

	HexHeadFlat   float64
	HexHeadHeight float64
	CapHeadDia    float64
	CapHeadHeight float64
	DomeHeadDia   float64
	PanHeadDia    float64

	AllenBitFlat     float64
	AllenBitDepth    float64
	PhillipsBitDia   float64
	PhillipsBitDepth float64
}

// AllenFlat returns the Allen flat distance the bolt is built with. An Allen
// socket too wide for the flat top of a pan head is shrunk to fit, in which
// case resized is true.
func (k BoltParms) AllenFlat() (flat float64, resized bool) {
	flat = k.AllenBitFlat
	if k.Bit == BitAllen && k.Head == HeadPan {
		maxDia := MaxPanBitDia(k.PanHeadDia)
		if AllenBitDia(flat) > maxDia {
			return AllenDiaToFlat(maxDia) * 1.05, true
		}
	}
	return flat, false
}

// Bolt returns a bolt standing on z=0 with its head on top. The drive bit is
// recessed into the top of the head and the thread hangs below the head.
// The fragment Height is the overall bolt height.
func Bolt(k BoltParms) (boltmesh.Fragment, error) {
	switch k.Head {
	case HeadHex, HeadCap, HeadDome, HeadPan:
	default:
		return boltmesh.Fragment{}, fmt.Errorf("unknown head style %d: %w", k.Head, boltmesh.ErrInvalidParameter)
	}
	var bit, head, shank boltmesh.Fragment
	// The head needs the bit diameter, the thread needs nothing from either.
	var g errgroup.Group
	g.Go(func() (err error) {
		bit, head, err = boltHead(k)
		return err
	})
	g.Go(func() (err error) {
		shank, err = thread.External(thread.ExternalParms{
			Thread:      k.Thread,
			ShankDia:    k.ShankDia,
			ShankLength: k.ShankLength,
			Length:      k.ThreadLength,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return boltmesh.Fragment{}, err
	}
	bolt := boltmesh.Concat(bit.Lift(head.Height), head.Lift(head.Height), shank).Lift(shank.Height)
	bolt.Height = head.Height + shank.Height
	return bolt, nil
}

// boltHead builds the drive bit and the head that receives it, both with
// their top at z=0.
func boltHead(k BoltParms) (bit, head boltmesh.Fragment, err error) {
	bitDia := noBitDia
	switch k.Bit {
	case BitNone:
	case BitAllen:
		flat, _ := k.AllenFlat()
		bit, err = AllenBit(flat, k.AllenBitDepth)
		bitDia = bit.Height
	case BitPhillips:
		bit, err = PhillipsBit(k.PhillipsBitDia, PhillipsBitWidth(k.PhillipsBitDia), k.PhillipsBitDepth)
		bitDia = bit.Height
	default:
		err = fmt.Errorf("unknown bit style %d: %w", k.Bit, boltmesh.ErrInvalidParameter)
	}
	if err != nil {
		return bit, head, err
	}
	switch k.Head {
	case HeadHex:
		head, err = HexHead(k.HexHeadFlat, bitDia, k.ShankDia, k.HexHeadHeight)
	case HeadCap:
		head, err = CapHead(bitDia, k.CapHeadDia, k.ShankDia, k.CapHeadHeight)
	case HeadDome:
		head, err = DomeHead(bitDia, k.DomeHeadDia, k.ShankDia)
	case HeadPan:
		head, err = PanHead(bitDia, k.PanHeadDia, k.ShankDia)
	}
	return bit, head, err
}
