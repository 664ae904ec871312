package factory

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/soypat/boltmesh"
	"github.com/soypat/boltmesh/obj3"
	"github.com/soypat/boltmesh/obj3/thread"
)

// preset holds the tabulated dimensions of a metric size. Thread minor
// diameter and Phillips bit dimensions are derived when applied.
type preset struct {
	shankDia, pitch, majorDia   float64
	hexHeadFlat, hexHeadHeight  float64
	capHeadDia, capHeadHeight   float64
	allenBitFlat, allenBitDepth float64
	panHeadDia, domeHeadDia     float64
	hexNutHeight, hexNutFlat    float64
	threadLength, shankLength   float64
}

// Fine pitches are used throughout.
var presets = map[string]preset{
	"M3":  {3, 0.35, 3, 5.5, 2, 5.5, 3, 2.5, 1.5, 5.6, 5.6, 2.4, 5.5, 6, 0},
	"M4":  {4, 0.5, 4, 7, 2.8, 7, 4, 3, 2, 8, 8, 3.2, 7, 8, 0},
	"M5":  {5, 0.5, 5, 8, 3.5, 8.5, 5, 4, 2.5, 9.5, 9.5, 4, 8, 10, 0},
	"M6":  {6, 0.75, 6, 10, 4, 10, 6, 5, 3, 12, 12, 5, 10, 12, 0},
	"M8":  {8, 1, 8, 13, 5.3, 13.5, 8, 6, 4, 16, 16, 6.5, 13, 16, 0},
	"M10": {10, 1.25, 10, 17, 6.4, 16, 10, 8, 5, 20, 20, 8, 17, 20, 0},
	"M12": {12, 1.5, 12, 19, 7.5, 18.5, 12, 10, 6, 24, 24, 10, 19, 32, 33},
}

// PresetNames returns the names of all presets from smallest to largest.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, _ := strconv.Atoi(names[i][1:])
		b, _ := strconv.Atoi(names[j][1:])
		return a < b
	})
	return names
}

// Preset returns Defaults with the named preset applied.
func Preset(name string) (Params, error) {
	p := Defaults()
	err := p.Apply(name)
	return p, err
}

// Apply overwrites the dimensions of p with those of the named preset. The
// model, head, bit and nut selections are left untouched.
func (p *Params) Apply(name string) error {
	s, ok := presets[name]
	if !ok {
		return fmt.Errorf("unknown preset %q: %w", name, boltmesh.ErrInvalidParameter)
	}
	p.ShankDia = s.shankDia
	p.Pitch = s.pitch
	p.CrestPercent = 10
	p.RootPercent = 10
	p.MajorDia = s.majorDia
	p.MinorDia = thread.ISOMinorDiameter(s.majorDia, s.pitch)
	p.HexHeadFlat = s.hexHeadFlat
	p.HexHeadHeight = s.hexHeadHeight
	p.CapHeadDia = s.capHeadDia
	p.CapHeadHeight = s.capHeadHeight
	p.AllenBitFlat = s.allenBitFlat
	p.AllenBitDepth = s.allenBitDepth
	p.PanHeadDia = s.panHeadDia
	p.DomeHeadDia = s.domeHeadDia
	p.PhillipsBitDia = s.panHeadDia * (1.82 / 5.6)
	p.PhillipsBitDepth = obj3.PhillipsBitDepth(p.PhillipsBitDia)
	p.HexNutHeight = s.hexNutHeight
	p.HexNutFlat = s.hexNutFlat
	p.ThreadLength = s.threadLength
	p.ShankLength = s.shankLength
	return nil
}
