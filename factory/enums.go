package factory

import (
	"fmt"

	"github.com/soypat/boltmesh"
	"github.com/soypat/boltmesh/obj3"
	"gopkg.in/yaml.v3"
)

// Model selects what Generate builds.
type Model int

const (
	_ Model = iota
	ModelBolt
	ModelNut
)

func (m Model) String() (str string) {
	switch m {
	case ModelBolt:
		str = "bolt"
	case ModelNut:
		str = "nut"
	default:
		str = "unknown"
	}
	return str
}

// HeadType selects the bolt head.
type HeadType int

const (
	_ HeadType = iota
	HeadHex
	HeadCap
	HeadDome
	HeadPan
)

func (h HeadType) String() string { return h.style().String() }

func (h HeadType) style() obj3.HeadStyle {
	switch h {
	case HeadHex:
		return obj3.HeadHex
	case HeadCap:
		return obj3.HeadCap
	case HeadDome:
		return obj3.HeadDome
	case HeadPan:
		return obj3.HeadPan
	}
	return 0
}

// BitType selects the drive recess in a bolt head.
type BitType int

const (
	_ BitType = iota
	BitNone
	BitAllen
	BitPhillips
)

func (b BitType) String() string {
	if b < BitNone || b > BitPhillips {
		return "unknown"
	}
	return b.style().String()
}

func (b BitType) style() obj3.BitStyle {
	switch b {
	case BitAllen:
		return obj3.BitAllen
	case BitPhillips:
		return obj3.BitPhillips
	case BitNone:
		return obj3.BitNone
	}
	return -1
}

// NutType selects a plain or nylon insert lock nut.
type NutType int

const (
	_ NutType = iota
	NutHex
	NutLock
)

func (n NutType) String() string { return n.style().String() }

func (n NutType) style() obj3.NutStyle {
	switch n {
	case NutHex:
		return obj3.NutHex
	case NutLock:
		return obj3.NutLock
	}
	return 0
}

// enumNames lists the text form of every valid value of an enum.
func enumNames[T fmt.Stringer](values ...T) map[string]T {
	m := make(map[string]T, len(values))
	for _, v := range values {
		m[v.String()] = v
	}
	return m
}

var (
	modelNames = enumNames(ModelBolt, ModelNut)
	headNames  = enumNames(HeadHex, HeadCap, HeadDome, HeadPan)
	bitNames   = enumNames(BitNone, BitAllen, BitPhillips)
	nutNames   = enumNames(NutHex, NutLock)
)

func decodeEnum[T any](node *yaml.Node, kind string, names map[string]T, dst *T) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, ok := names[s]
	if !ok {
		return fmt.Errorf("line %d: unknown %s %q: %w", node.Line, kind, s, boltmesh.ErrInvalidParameter)
	}
	*dst = v
	return nil
}

func (m *Model) UnmarshalYAML(node *yaml.Node) error {
	return decodeEnum(node, "model", modelNames, m)
}

func (m Model) MarshalYAML() (interface{}, error) { return m.String(), nil }

func (h *HeadType) UnmarshalYAML(node *yaml.Node) error {
	return decodeEnum(node, "head type", headNames, h)
}

func (h HeadType) MarshalYAML() (interface{}, error) { return h.String(), nil }

func (b *BitType) UnmarshalYAML(node *yaml.Node) error {
	return decodeEnum(node, "bit type", bitNames, b)
}

func (b BitType) MarshalYAML() (interface{}, error) { return b.String(), nil }

func (n *NutType) UnmarshalYAML(node *yaml.Node) error {
	return decodeEnum(node, "nut type", nutNames, n)
}

func (n NutType) MarshalYAML() (interface{}, error) { return n.String(), nil }
