// Package factory turns bolt and nut parameters into a welded, scaled mesh
// ready to be handed to a host application.
package factory

import (
	"fmt"
	"math"

	"github.com/chewxy/math32"
	"github.com/soypat/boltmesh"
	"github.com/soypat/boltmesh/obj3"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultGlobalScale converts millimeters to host units.
const DefaultGlobalScale = 0.1

// Config controls how Generate finalizes a mesh.
type Config struct {
	// GlobalScale multiplies every vertex. Zero means DefaultGlobalScale.
	GlobalScale float64
	// DecimalPlaces is the rounding used to weld coincident vertices.
	// Zero means boltmesh.DefaultDecimalPlaces.
	DecimalPlaces int
	// Logger receives build diagnostics. Nil disables logging.
	Logger *zap.Logger
}

func (cfg Config) withDefaults() Config {
	if cfg.GlobalScale == 0 {
		cfg.GlobalScale = DefaultGlobalScale
	}
	if cfg.DecimalPlaces == 0 {
		cfg.DecimalPlaces = boltmesh.DefaultDecimalPlaces
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return cfg
}

// Mesh is the final vertex and face list of a generated model.
type Mesh struct {
	Vertices []r3.Vec
	Faces    []boltmesh.Face
	// Height is the overall height of the model in host units.
	Height float64
}

// Generate validates p, builds the selected model and welds and scales the
// result. No mesh is returned alongside an error.
func Generate(p Params, cfg Config) (Mesh, error) {
	cfg = cfg.withDefaults()
	if err := p.Validate(); err != nil {
		return Mesh{}, err
	}
	log := cfg.Logger.With(zap.Stringer("model", p.Model))
	var (
		f   boltmesh.Fragment
		err error
	)
	switch p.Model {
	case ModelBolt:
		k := p.BoltParms()
		if flat, resized := k.AllenFlat(); resized {
			log.Info("allen bit too large for pan head, resized",
				zap.Float64("flat", k.AllenBitFlat),
				zap.Float64("resized", flat),
				zap.Float64("panHeadDia", k.PanHeadDia),
			)
		}
		log = log.With(zap.Stringer("head", p.Head), zap.Stringer("bit", p.Bit))
		f, err = obj3.Bolt(k)
	case ModelNut:
		log = log.With(zap.Stringer("nut", p.Nut))
		f, err = obj3.Nut(p.NutParms())
	}
	if err != nil {
		return Mesh{}, fmt.Errorf("building %s: %w", p.Model, err)
	}
	built := len(f.Vertices)
	f = boltmesh.RemoveDoubles(f, cfg.DecimalPlaces)
	f = boltmesh.Scale(f, cfg.GlobalScale)
	if err := f.Validate(); err != nil {
		return Mesh{}, fmt.Errorf("finalizing %s: %w", p.Model, err)
	}
	log.Debug("mesh generated",
		zap.Int("built", built),
		zap.Int("vertices", len(f.Vertices)),
		zap.Int("faces", len(f.Faces)),
		zap.Float64("height", f.Height),
	)
	// Welding tolerance expressed in host units.
	tol := math.Pow10(-cfg.DecimalPlaces) * cfg.GlobalScale
	if n := boltmesh.NearCoincident(f.Vertices, tol); n > 0 {
		log.Warn("near coincident vertices survived welding",
			zap.Int("pairs", n),
			zap.Float64("tolerance", tol),
		)
	}
	return Mesh{Vertices: f.Vertices, Faces: f.Faces, Height: f.Height}, nil
}

// Pack flattens m into the buffers a host mesh API consumes: three float32
// per vertex and four indices per face. Triangles are padded with a trailing
// 0 index. A quad whose last index is 0 would read as a triangle so its
// indices are rotated to put the 0 first.
func (m Mesh) Pack() (verts []float32, faces []uint32, err error) {
	verts = make([]float32, 0, 3*len(m.Vertices))
	for i, v := range m.Vertices {
		x, y, z := float32(v.X), float32(v.Y), float32(v.Z)
		if !finite32(x) || !finite32(y) || !finite32(z) {
			return nil, nil, fmt.Errorf("vertex %d %v not representable: %w", i, v, boltmesh.ErrInvalidParameter)
		}
		verts = append(verts, x, y, z)
	}
	faces = make([]uint32, 0, 4*len(m.Faces))
	for i, f := range m.Faces {
		for _, idx := range f {
			if idx < 0 || idx >= len(m.Vertices) {
				return nil, nil, fmt.Errorf("face %d index %d out of range: %w", i, idx, boltmesh.ErrInvalidParameter)
			}
		}
		switch len(f) {
		case 3:
			faces = append(faces, uint32(f[0]), uint32(f[1]), uint32(f[2]), 0)
		case 4:
			if f[3] == 0 {
				faces = append(faces, 0, uint32(f[0]), uint32(f[1]), uint32(f[2]))
			} else {
				faces = append(faces, uint32(f[0]), uint32(f[1]), uint32(f[2]), uint32(f[3]))
			}
		default:
			return nil, nil, fmt.Errorf("face %d has %d vertices: %w", i, len(f), boltmesh.ErrDegenerateRing)
		}
	}
	return verts, faces, nil
}

func finite32(f float32) bool { return !math32.IsNaN(f) && !math32.IsInf(f, 0) }
