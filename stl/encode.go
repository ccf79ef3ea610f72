package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"strconv"
)

// solidName labels ASCII output. Binary headers carry no name; the 80-byte
// header content is not preserved across a decode/encode round trip.
const solidName = "template"

// stlHeader is the binary STL file header.
type stlHeader struct {
	_     [80]uint8 // Header
	Count uint32    // Number of triangles
}

// Encode writes m to w in the requested form. Decoding the written bytes
// reproduces m exactly up to float32 precision, which is the precision of
// both wire forms.
func Encode(w io.Writer, m Mesh, form Form) error {
	if len(m) == 0 {
		return ErrEmptyMesh
	}
	if form == ASCII {
		return encodeASCII(w, m)
	}
	return encodeBinary(w, m)
}

// EncodeBytes is Encode into a fresh buffer.
func EncodeBytes(m Mesh, form Form) ([]byte, error) {
	var b bytes.Buffer
	b.Grow(headerSize + triangleSize*len(m))
	if err := Encode(&b, m, form); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func encodeBinary(w io.Writer, m Mesh) error {
	if len(m) > maxTriangles {
		return errors.New("mesh exceeds encodable triangle count")
	}
	header := stlHeader{Count: uint32(len(m))}
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return err
	}
	var b [triangleSize]byte
	for _, tri := range m {
		fromTriangle(tri).put(b[:])
		if _, err := w.Write(b[:]); err != nil {
			return err
		}
	}
	return nil
}

func (t stlTriangle) put(b []byte) {
	if len(b) < triangleSize {
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

// encodeASCII buffers writes and relies on bufio's sticky error: the final
// Flush reports the first write failure.
func encodeASCII(w io.Writer, m Mesh) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("solid " + solidName + "\n")
	for _, tri := range m {
		bw.WriteString("  facet normal ")
		writeVecASCII(bw, f32From3R3(tri.Normal))
		bw.WriteString("\n    outer loop\n")
		for _, v := range tri.V {
			bw.WriteString("      vertex ")
			writeVecASCII(bw, f32From3R3(v))
			bw.WriteByte('\n')
		}
		bw.WriteString("    endloop\n  endfacet\n")
	}
	bw.WriteString("endsolid " + solidName + "\n")
	return bw.Flush()
}

// writeVecASCII prints the shortest decimal string that parses back to the
// same float32, so ASCII round trips are exact at wire precision.
func writeVecASCII(bw *bufio.Writer, f [3]float32) {
	for i, c := range f {
		if i > 0 {
			bw.WriteByte(' ')
		}
		bw.WriteString(strconv.FormatFloat(float64(c), 'g', -1, 32))
	}
}
