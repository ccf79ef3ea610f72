package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/gonum/spatial/r3"
)

// Decode parses STL bytes in either wire form.
//
// A buffer is taken as binary STL only when its length is exactly
// 84 + 50·n for the sane triangle count n declared at byte offset 80.
// A buffer that declares a sane count but is too short for it decodes as
// ErrTruncated rather than falling back: real ASCII text cannot declare a
// sane count, since printable bytes at offsets 82-83 alone push the
// little-endian count past the sanity bound, and "solid" routinely appears
// inside binary headers. Everything else is tried as ASCII; buffers
// carrying neither signal fail with ErrUnrecognizedFormat.
func Decode(b []byte) (Mesh, error) {
	if len(b) == 0 {
		return nil, ErrEmptyMesh
	}
	if len(b) >= headerSize {
		count := binary.LittleEndian.Uint32(b[80:])
		if count <= maxTriangles {
			want := headerSize + triangleSize*int64(count)
			switch {
			case int64(len(b)) == want:
				if count == 0 {
					return nil, ErrEmptyMesh
				}
				return decodeBinary(b[headerSize:], int(count))
			case int64(len(b)) < want:
				return nil, fmt.Errorf("%w: header declares %d triangles (%d bytes), buffer holds %d",
					ErrTruncated, count, want, len(b))
			}
		}
	}
	if !bytes.Contains(b, []byte("solid")) {
		return nil, ErrUnrecognizedFormat
	}
	return decodeASCII(b)
}

func decodeBinary(b []byte, count int) (Mesh, error) {
	mesh := make(Mesh, 0, count)
	var d stlTriangle
	for i := 0; i < count; i++ {
		off := i * triangleSize
		if off+triangleSize > len(b) {
			return nil, fmt.Errorf("%w: triangle %d/%d crosses end of buffer", ErrTruncated, i+1, count)
		}
		d.get(b[off:])
		if err := d.validate(); err != nil {
			return nil, fmt.Errorf("triangle %d/%d: %w", i+1, count, err)
		}
		mesh = append(mesh, d.toTriangle())
	}
	return mesh, nil
}

func (t *stlTriangle) get(b []byte) {
	if len(b) < triangleSize {
		panic("need length 50 to unmarshal stlTriangle")
	}
	get3F32(b, &t.Normal)
	get3F32(b[12:], &t.Vertex1)
	get3F32(b[24:], &t.Vertex2)
	get3F32(b[36:], &t.Vertex3)
	// attribute word ignored.
}

func get3F32(b []byte, f *[3]float32) {
	_ = b[11] // early bounds check
	f[0] = math.Float32frombits(binary.LittleEndian.Uint32(b))
	f[1] = math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))
	f[2] = math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))
}

// decodeASCII walks the whitespace-separated token stream of an ASCII STL.
// The facet normal applies to all three vertices of its loop. Facet blocks
// with an empty loop are skipped, matching files emitted by tools that
// write placeholder facets.
func decodeASCII(b []byte) (Mesh, error) {
	sc := bufio.NewScanner(bytes.NewReader(b))
	sc.Split(bufio.ScanWords)
	var mesh Mesh
	for sc.Scan() {
		if sc.Text() != "facet" {
			continue
		}
		if !sc.Scan() || sc.Text() != "normal" {
			return nil, fmt.Errorf("facet %d: expected \"normal\" after \"facet\"", len(mesh)+1)
		}
		n, err := scanVec(sc)
		if err != nil {
			return nil, fmt.Errorf("facet %d normal: %w", len(mesh)+1, err)
		}
		if !sc.Scan() || sc.Text() != "outer" || !sc.Scan() || sc.Text() != "loop" {
			return nil, fmt.Errorf("facet %d: expected \"outer loop\"", len(mesh)+1)
		}
		var verts []r3.Vec
		for {
			if !sc.Scan() {
				return nil, fmt.Errorf("facet %d: unexpected end of input inside loop", len(mesh)+1)
			}
			tok := sc.Text()
			if tok == "endloop" {
				break
			}
			if tok != "vertex" {
				return nil, fmt.Errorf("facet %d: unexpected token %q inside loop", len(mesh)+1, tok)
			}
			v, err := scanVec(sc)
			if err != nil {
				return nil, fmt.Errorf("facet %d vertex: %w", len(mesh)+1, err)
			}
			verts = append(verts, v)
		}
		if !sc.Scan() || sc.Text() != "endfacet" {
			return nil, fmt.Errorf("facet %d: expected \"endfacet\"", len(mesh)+1)
		}
		if len(verts) == 0 {
			continue // placeholder facet, nothing to triangulate.
		}
		if len(verts) != 3 {
			return nil, fmt.Errorf("facet %d: loop has %d vertices, want 3", len(mesh)+1, len(verts))
		}
		mesh = append(mesh, Triangle{Normal: n, V: [3]r3.Vec{verts[0], verts[1], verts[2]}})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(mesh) == 0 {
		return nil, ErrEmptyMesh
	}
	return mesh, nil
}

func scanVec(sc *bufio.Scanner) (r3.Vec, error) {
	var f [3]float64
	for i := range f {
		if !sc.Scan() {
			return r3.Vec{}, fmt.Errorf("unexpected end of input, want coordinate %d of 3", i+1)
		}
		// Parse at wire precision: STL coordinates are float32 in both
		// forms, and parsing at 32 bits keeps ASCII round trips exact.
		v, err := strconv.ParseFloat(sc.Text(), 32)
		if err != nil {
			return r3.Vec{}, fmt.Errorf("bad coordinate %q: %w", sc.Text(), err)
		}
		f[i] = v
	}
	return r3.Vec{X: f[0], Y: f[1], Z: f[2]}, nil
}
