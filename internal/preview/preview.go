// Package preview software renders meshes to images for inspection.
package preview

import (
	"fmt"
	"image"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"github.com/soypat/boltmesh"
	"github.com/soypat/boltmesh/internal/render"
	"gonum.org/v1/gonum/spatial/r3"
)

// View positions the camera. The mesh is fit in a bi-unit cube centered at
// the origin before rendering.
type View struct {
	// what position (point) to look at
	LookAt r3.Vec
	// which way is up (direction)
	Up r3.Vec
	// where the camera/eye located at (point)
	Eye       r3.Vec
	Near, Far float64
}

// Iso looks at the origin from an isometric corner with Z up.
var Iso = View{
	Up:   r3.Vec{Z: 1},
	Eye:  r3.Vec{X: 2.4, Y: 2.4, Z: 2.4},
	Near: 1,
	Far:  10,
}

const supersample = 2

func vec(v r3.Vec) fauxgl.Vector { return fauxgl.V(v.X, v.Y, v.Z) }

// Render draws the mesh with a phong shader and returns a width by height
// image. Faces are split into triangles by render.Triangulate.
func Render(verts []r3.Vec, faces []boltmesh.Face, width, height int, view View) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("bad image size %dx%d", width, height)
	}
	model, err := render.Triangulate(verts, faces)
	if err != nil {
		return nil, err
	}
	if len(model) == 0 {
		return nil, fmt.Errorf("empty mesh")
	}
	tris := make([]*fauxgl.Triangle, len(model))
	for i, t := range model {
		tris[i] = fauxgl.NewTriangleForPoints(vec(t[0]), vec(t[1]), vec(t[2]))
	}
	mesh := fauxgl.NewTriangleMesh(tris)
	const fovy = 30 // vertical field of view in degrees
	var (
		eye    = vec(view.Eye)
		center = vec(view.LookAt)
		up     = vec(view.Up)
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize()
		color  = fauxgl.HexColor("#468966")
	)
	mesh.BiUnitCube()
	context := fauxgl.NewContext(width*supersample, height*supersample)
	context.ClearColorBufferWith(fauxgl.HexColor("#FFF8E3"))
	aspect := float64(width) / float64(height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, view.Near, view.Far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = color
	context.Shader = shader
	context.DrawMesh(mesh)
	// downsample image for antialiasing
	return resize.Resize(uint(width), uint(height), context.Image(), resize.Bilinear), nil
}
