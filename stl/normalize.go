package stl

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// DisplaySize is the default edge length the largest bounding-box dimension
// of a normalized mesh maps to, a bi-unit cube for viewer cameras.
const DisplaySize = 2.0

// Normalize returns a copy of m translated so its bounding-box center sits
// at the origin and scaled uniformly so the largest bounding-box dimension
// equals target. Normals are unchanged; translation and uniform scaling
// preserve them.
//
// An empty mesh or one with a zero-size bounding box is returned unchanged
// alongside ErrDegenerateMesh.
func Normalize(m Mesh, target float64) (Mesh, error) {
	if len(m) == 0 {
		return m, ErrDegenerateMesh
	}
	bb := bounds(m)
	size := bb.Size()
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	if maxDim <= 0 {
		return m, ErrDegenerateMesh
	}
	var (
		center = bb.Center()
		scale  = target / maxDim
		out    = make(Mesh, len(m))
	)
	for i, tri := range m {
		out[i].Normal = tri.Normal
		for j, v := range tri.V {
			out[i].V[j] = r3.Scale(scale, r3.Sub(v, center))
		}
	}
	return out, nil
}

// box is an axis-aligned 3d bounding box.
type box struct {
	Min, Max r3.Vec
}

func (a box) Size() r3.Vec   { return r3.Sub(a.Max, a.Min) }
func (a box) Center() r3.Vec { return r3.Add(a.Min, r3.Scale(0.5, a.Size())) }

// include enlarges the box to include a point.
func (a box) include(v r3.Vec) box {
	return box{Min: minElem(a.Min, v), Max: maxElem(a.Max, v)}
}

func bounds(m Mesh) box {
	bb := box{Min: m[0].V[0], Max: m[0].V[0]}
	for _, tri := range m {
		for _, v := range tri.V {
			bb = bb.include(v)
		}
	}
	return bb
}

func minElem(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)}
}

func maxElem(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)}
}
