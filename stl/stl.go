// Package stl encodes and decodes triangle meshes in the STL file format,
// both the 50-byte-record binary layout and the ASCII facet syntax, and
// prepares decoded meshes for display.
//
// Meshes are non-indexed: every triangle carries its own three vertices and
// a face normal, matching the redundancy of the format itself.
package stl

import (
	"errors"

	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/spatial/r3"
)

// Triangle is a single STL facet: one face normal applied to three vertices.
type Triangle struct {
	Normal r3.Vec
	V      [3]r3.Vec
}

// Mesh is an ordered, non-indexed triangle soup.
type Mesh []Triangle

// Form selects the STL wire representation used by Encode.
type Form int

const (
	Binary Form = iota
	ASCII
)

var (
	// ErrUnrecognizedFormat reports bytes that are neither a well-formed
	// binary STL nor contain the ASCII "solid" token.
	ErrUnrecognizedFormat = errors.New("bytes are not binary or ASCII STL")
	// ErrTruncated reports a binary STL whose declared triangle count
	// requires more bytes than the buffer holds.
	ErrTruncated = errors.New("binary STL truncated")
	// ErrEmptyMesh reports an STL with zero triangles.
	ErrEmptyMesh = errors.New("STL contains no triangles")
	// ErrDegenerateMesh reports a mesh whose bounding box has no extent,
	// which cannot be scaled for display.
	ErrDegenerateMesh = errors.New("mesh bounding box has zero size")
)

// stlTriangle is the 50-byte binary record: normal, three vertices and an
// attribute word, all little-endian.
type stlTriangle struct {
	Normal  [3]float32
	Vertex1 [3]float32
	Vertex2 [3]float32
	Vertex3 [3]float32
	_       uint16 // Attribute byte count
}

const (
	headerSize   = 84 // 80 arbitrary bytes + uint32 triangle count
	triangleSize = 50
	// maxTriangles bounds the declared count during format detection.
	// Counts beyond it are treated as corrupt headers, not as binary STL.
	maxTriangles = 5_000_000
)

func (t stlTriangle) toTriangle() Triangle {
	return Triangle{
		Normal: r3From3F32(t.Normal),
		V: [3]r3.Vec{
			r3From3F32(t.Vertex1),
			r3From3F32(t.Vertex2),
			r3From3F32(t.Vertex3),
		},
	}
}

func fromTriangle(tri Triangle) (t stlTriangle) {
	t.Normal = f32From3R3(tri.Normal)
	t.Vertex1 = f32From3R3(tri.V[0])
	t.Vertex2 = f32From3R3(tri.V[1])
	t.Vertex3 = f32From3R3(tri.V[2])
	return t
}

func (t stlTriangle) validate() error {
	if bad3F32(t.Normal) {
		return errors.New("inf/NaN STL triangle normal")
	}
	if bad3F32(t.Vertex1) || bad3F32(t.Vertex2) || bad3F32(t.Vertex3) {
		return errors.New("inf/NaN STL triangle vertex")
	}
	return nil
}

func r3From3F32(f [3]float32) r3.Vec {
	return r3.Vec{X: float64(f[0]), Y: float64(f[1]), Z: float64(f[2])}
}

func f32From3R3(v r3.Vec) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}

func bad3F32(f [3]float32) bool {
	return math32.IsNaN(f[0]) || math32.IsInf(f[0], 0) ||
		math32.IsNaN(f[1]) || math32.IsInf(f[1], 0) ||
		math32.IsNaN(f[2]) || math32.IsInf(f[2], 0)
}
