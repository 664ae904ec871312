package factory

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/soypat/boltmesh"
	"github.com/soypat/boltmesh/obj3"
	"github.com/soypat/boltmesh/obj3/thread"
	"gopkg.in/yaml.v3"
)

// Limits on user input, in millimeters.
const (
	MaxInput   = 50.0
	MinPitch   = 0.1
	MaxPitch   = 7.0
	MinPercent = 1.0
	MaxPercent = 90.0
)

// Params is the full set of user facing parameters for a bolt or a nut.
// All lengths are in millimeters.
type Params struct {
	Model Model    `yaml:"model"`
	Head  HeadType `yaml:"head_type"`
	Bit   BitType  `yaml:"bit_type"`
	Nut   NutType  `yaml:"nut_type"`

	ShankDia     float64 `yaml:"shank_dia"`
	ShankLength  float64 `yaml:"shank_length"`
	ThreadLength float64 `yaml:"thread_length"`

	MajorDia     float64 `yaml:"major_dia"`
	MinorDia     float64 `yaml:"minor_dia"`
	Pitch        float64 `yaml:"pitch"`
	CrestPercent float64 `yaml:"crest_percent"`
	RootPercent  float64 `yaml:"root_percent"`

	HexHeadFlat   float64 `yaml:"hex_head_flat_distance"`
	HexHeadHeight float64 `yaml:"hex_head_height"`
	CapHeadDia    float64 `yaml:"cap_head_dia"`
	CapHeadHeight float64 `yaml:"cap_head_height"`
	DomeHeadDia   float64 `yaml:"dome_head_dia"`
	PanHeadDia    float64 `yaml:"pan_head_dia"`

	AllenBitFlat     float64 `yaml:"allen_bit_flat_distance"`
	AllenBitDepth    float64 `yaml:"allen_bit_depth"`
	PhillipsBitDia   float64 `yaml:"phillips_bit_dia"`
	PhillipsBitDepth float64 `yaml:"phillips_bit_depth"`

	HexNutHeight float64 `yaml:"hex_nut_height"`
	HexNutFlat   float64 `yaml:"hex_nut_flat_distance"`
}

// DefaultPreset is the preset applied by Defaults.
const DefaultPreset = "M3"

// Defaults returns a hex headed M3 bolt without a drive bit.
func Defaults() Params {
	p := Params{
		Model: ModelBolt,
		Head:  HeadHex,
		Bit:   BitNone,
		Nut:   NutHex,
	}
	if err := p.Apply(DefaultPreset); err != nil {
		panic(err)
	}
	return p
}

// Thread returns the thread described by p.
func (p Params) Thread() thread.Parameters {
	return thread.Parameters{
		MajorDia:     p.MajorDia,
		MinorDia:     p.MinorDia,
		Pitch:        p.Pitch,
		CrestPercent: p.CrestPercent,
		RootPercent:  p.RootPercent,
	}
}

// BoltParms returns the bolt builder parameters for p.
func (p Params) BoltParms() obj3.BoltParms {
	return obj3.BoltParms{
		Thread:           p.Thread(),
		Head:             p.Head.style(),
		Bit:              p.Bit.style(),
		ShankDia:         p.ShankDia,
		ShankLength:      p.ShankLength,
		ThreadLength:     p.ThreadLength,
		HexHeadFlat:      p.HexHeadFlat,
		HexHeadHeight:    p.HexHeadHeight,
		CapHeadDia:       p.CapHeadDia,
		CapHeadHeight:    p.CapHeadHeight,
		DomeHeadDia:      p.DomeHeadDia,
		PanHeadDia:       p.PanHeadDia,
		AllenBitFlat:     p.AllenBitFlat,
		AllenBitDepth:    p.AllenBitDepth,
		PhillipsBitDia:   p.PhillipsBitDia,
		PhillipsBitDepth: p.PhillipsBitDepth,
	}
}

// NutParms returns the nut builder parameters for p.
func (p Params) NutParms() obj3.NutParms {
	return obj3.NutParms{
		Thread: p.Thread(),
		Style:  p.Nut.style(),
		Flat:   p.HexNutFlat,
		Height: p.HexNutHeight,
	}
}

// Validate checks p can be built. Only dimensions used by the selected
// model, head and bit are checked. Returned errors wrap
// boltmesh.ErrInvalidParameter.
func (p Params) Validate() (err error) {
	switch {
	case p.Model != ModelBolt && p.Model != ModelNut:
		err = fmt.Errorf("unknown model %d", p.Model)
	case p.Pitch <= 0:
		err = fmt.Errorf("pitch %g <= 0", p.Pitch)
	case !inRange(p.Pitch, MinPitch, MaxPitch):
		err = fmt.Errorf("pitch %g outside [%g, %g]", p.Pitch, MinPitch, MaxPitch)
	case !inRange(p.CrestPercent, MinPercent, MaxPercent):
		err = fmt.Errorf("crest percent %g outside [%g, %g]", p.CrestPercent, MinPercent, MaxPercent)
	case !inRange(p.RootPercent, MinPercent, MaxPercent):
		err = fmt.Errorf("root percent %g outside [%g, %g]", p.RootPercent, MinPercent, MaxPercent)
	case p.CrestPercent+p.RootPercent >= 100:
		err = fmt.Errorf("crest percent %g + root percent %g >= 100", p.CrestPercent, p.RootPercent)
	}
	if err == nil {
		err = firstBad(
			dim{"major diameter", p.MajorDia},
			dim{"minor diameter", p.MinorDia},
		)
	}
	if err == nil && p.MinorDia >= p.MajorDia {
		err = fmt.Errorf("minor diameter %g >= major diameter %g", p.MinorDia, p.MajorDia)
	}
	if err == nil {
		if p.Model == ModelBolt {
			err = p.validateBolt()
		} else {
			err = p.validateNut()
		}
	}
	if err != nil {
		return fmt.Errorf("%v: %w", err, boltmesh.ErrInvalidParameter)
	}
	return nil
}

func (p Params) validateBolt() error {
	if !inRange(p.ShankLength, 0, MaxInput) {
		return fmt.Errorf("shank length %g outside [0, %g]", p.ShankLength, MaxInput)
	}
	dims := []dim{{"shank diameter", p.ShankDia}, {"thread length", p.ThreadLength}}
	switch p.Head {
	case HeadHex:
		dims = append(dims, dim{"hex head flat distance", p.HexHeadFlat}, dim{"hex head height", p.HexHeadHeight})
	case HeadCap:
		dims = append(dims, dim{"cap head diameter", p.CapHeadDia}, dim{"cap head height", p.CapHeadHeight})
	case HeadDome:
		dims = append(dims, dim{"dome head diameter", p.DomeHeadDia})
	case HeadPan:
		dims = append(dims, dim{"pan head diameter", p.PanHeadDia})
	default:
		return fmt.Errorf("unknown head type %d", p.Head)
	}
	switch p.Bit {
	case BitNone:
	case BitAllen:
		dims = append(dims, dim{"allen bit flat distance", p.AllenBitFlat}, dim{"allen bit depth", p.AllenBitDepth})
	case BitPhillips:
		dims = append(dims, dim{"phillips bit diameter", p.PhillipsBitDia}, dim{"phillips bit depth", p.PhillipsBitDepth})
	default:
		return fmt.Errorf("unknown bit type %d", p.Bit)
	}
	return firstBad(dims...)
}

func (p Params) validateNut() error {
	if p.Nut != NutHex && p.Nut != NutLock {
		return fmt.Errorf("unknown nut type %d", p.Nut)
	}
	return firstBad(dim{"hex nut height", p.HexNutHeight}, dim{"hex nut flat distance", p.HexNutFlat})
}

// dim is a named dimension that must lie in (0, MaxInput].
type dim struct {
	name string
	v    float64
}

func firstBad(dims ...dim) error {
	for _, d := range dims {
		if !(d.v > 0 && d.v <= MaxInput) {
			return fmt.Errorf("%s %g outside (0, %g]", d.name, d.v, MaxInput)
		}
	}
	return nil
}

// inRange reports whether v lies in [lo, hi]. NaN is never in range.
func inRange(v, lo, hi float64) bool { return v >= lo && v <= hi }

// LoadParams decodes YAML parameters from r over Defaults and validates the
// result. Unknown keys are rejected. A preset key, when present, is applied
// first so that explicit dimensions in the document override it.
func LoadParams(r io.Reader) (Params, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return Params{}, err
	}
	var doc struct {
		Preset string `yaml:"preset"`
		Params `yaml:",inline"`
	}
	doc.Params = Defaults()
	if err := decodeStrict(b, &doc); err != nil {
		return Params{}, err
	}
	if doc.Preset != "" {
		p := doc.Params
		if err := p.Apply(doc.Preset); err != nil {
			return Params{}, err
		}
		doc.Params = p
		if err := decodeStrict(b, &doc); err != nil {
			return Params{}, err
		}
	}
	return doc.Params, doc.Params.Validate()
}

func decodeStrict(b []byte, v interface{}) error {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decoding params: %w", err)
	}
	return nil
}
