// Package preview turns decoded template meshes into shaded PNG snapshots
// for quick visual checks without a 3D viewer.
package preview

import (
	"image"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/LinskyDan/OpenScadParametric/stl"
)

// View configures the snapshot camera.
type View struct {
	// Lookat is the point the camera looks at.
	Lookat r3.Vec
	// Up is the camera's up direction.
	Up r3.Vec
	// Eyepos is the camera position.
	Eyepos        r3.Vec
	Near, Far     float64
	Width, Height int
}

// DefaultView is an isometric view sized for documentation images.
var DefaultView = View{
	Up:     r3.Vec{Z: 1},
	Eyepos: r3.Vec{X: 2.4, Y: 2.4, Z: 2.4},
	Near:   1,
	Far:    10,
	Width:  768,
	Height: 432,
}

const (
	scale = 2  // supersampling factor
	fovy  = 30 // vertical field of view in degrees
)

// Snapshot centers and scales the mesh to the display cube, renders it with
// a Phong shader and returns the antialiased image. A mesh the normalizer
// rejects is returned as stl.ErrDegenerateMesh.
func Snapshot(m stl.Mesh, view View) (image.Image, error) {
	m, err := stl.Normalize(m, stl.DisplaySize)
	if err != nil {
		return nil, err
	}
	triangles := make([]*fauxgl.Triangle, len(m))
	for i, tri := range m {
		triangles[i] = fauxgl.NewTriangleForPoints(
			fglVec(tri.V[0]), fglVec(tri.V[1]), fglVec(tri.V[2]))
	}
	mesh := fauxgl.NewTriangleMesh(triangles)

	var (
		eye    = fglVec(view.Eyepos)
		center = fglVec(view.Lookat)
		up     = fglVec(view.Up)
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize()
		color  = fauxgl.HexColor("#468966")
	)
	context := fauxgl.NewContext(view.Width*scale, view.Height*scale)
	context.ClearColorBufferWith(fauxgl.HexColor("#FFF8E3"))
	aspect := float64(view.Width) / float64(view.Height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, view.Near, view.Far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = color
	context.Shader = shader
	context.DrawMesh(mesh)
	// downsample for antialiasing
	img := resize.Resize(uint(view.Width), uint(view.Height), context.Image(), resize.Bilinear)
	return img, nil
}

// SavePNG writes a snapshot to disk.
func SavePNG(path string, img image.Image) error {
	return fauxgl.SavePNG(path, img)
}

func fglVec(v r3.Vec) fauxgl.Vector {
	return fauxgl.V(v.X, v.Y, v.Z)
}
