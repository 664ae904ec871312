package render

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/chewxy/math32"
	"github.com/soypat/boltmesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// stlHeader defines the STL file header.
type stlHeader struct {
	_     [80]uint8 // Header
	Count uint32    // Number of triangles
}

const (
	stlTriangleSize   = 50
	trianglesInBuffer = 1 << 10
)

// CreateSTL writes the mesh to a binary STL file at path.
func CreateSTL(path string, verts []r3.Vec, faces []boltmesh.Face) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	err = WriteSTL(file, verts, faces)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	return err
}

// WriteSTL writes the mesh to w in binary STL format. Faces are
// triangulated with Triangulate.
func WriteSTL(w io.Writer, verts []r3.Vec, faces []boltmesh.Face) error {
	model, err := Triangulate(verts, faces)
	if err != nil {
		return err
	}
	if len(model) == 0 {
		return errors.New("empty triangle slice")
	}
	header := stlHeader{
		Count: uint32(len(model)),
	}
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return err
	}
	buf := make([]byte, 0, stlTriangleSize*trianglesInBuffer)
	var d stlTriangle
	for i, triangle := range model {
		d.set(triangle)
		if bad3F32(d.Vertex1) || bad3F32(d.Vertex2) || bad3F32(d.Vertex3) {
			return fmt.Errorf("triangle %d not representable: %w", i, boltmesh.ErrInvalidParameter)
		}
		buf = buf[:len(buf)+stlTriangleSize]
		d.put(buf[len(buf)-stlTriangleSize:])
		if len(buf) == cap(buf) {
			if _, err := w.Write(buf); err != nil {
				return err
			}
			buf = buf[:0]
		}
	}
	_, err = w.Write(buf)
	return err
}

// stlTriangle defines the triangle data within an STL file.
type stlTriangle struct {
	Normal  [3]float32
	Vertex1 [3]float32
	Vertex2 [3]float32
	Vertex3 [3]float32
	_       uint16 // Attribute byte count
}

// set stores tri. Zero area triangles get a zero normal.
func (t *stlTriangle) set(tri Triangle) {
	t.Normal = to3F32(tri.Normal())
	if bad3F32(t.Normal) {
		t.Normal = [3]float32{}
	}
	t.Vertex1 = to3F32(tri[0])
	t.Vertex2 = to3F32(tri[1])
	t.Vertex3 = to3F32(tri[2])
}

func (t stlTriangle) put(b []byte) {
	if len(b) < stlTriangleSize {
		panic("need length 50 to marshal stlTriangle")
	}
	put3F32(b, t.Normal)
	put3F32(b[12:], t.Vertex1)
	put3F32(b[24:], t.Vertex2)
	put3F32(b[36:], t.Vertex3)
	binary.LittleEndian.PutUint16(b[48:], 0)
}

func put3F32(b []byte, f [3]float32) {
	_ = b[11] // early bounds check
	binary.LittleEndian.PutUint32(b, math.Float32bits(f[0]))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(f[1]))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(f[2]))
}

func to3F32(v r3.Vec) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}

func bad3F32(f [3]float32) bool {
	return math32.IsNaN(f[0]) || math32.IsInf(f[0], 0) ||
		math32.IsNaN(f[1]) || math32.IsInf(f[1], 0) ||
		math32.IsNaN(f[2]) || math32.IsInf(f[2], 0)
}
