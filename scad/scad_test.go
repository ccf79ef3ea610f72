package scad

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestScript(t *testing.T) {
	p := Program{
		Segments: 64,
		Root: Difference{
			Union{
				Cube{L: 100, W: 50, H: 6.35},
				Translate{Off: r3.Vec{Z: 6.35}, Child: Cube{L: 100, W: 12.7, H: 9.525}},
			},
			Translate{
				Off: r3.Vec{X: 10, Y: 20},
				Child: Hull{
					Cylinder{H: 6.35, R: 4},
					Translate{Off: r3.Vec{X: 30}, Child: Cylinder{H: 6.35, R: 4}},
				},
			},
		},
	}
	want := `$fn = 64;
difference() {
  union() {
    cube([100, 50, 6.35]);
    translate([0, 0, 6.35])
      cube([100, 12.7, 9.525]);
  }
  translate([10, 20, 0])
    hull() {
      cylinder(h = 6.35, r = 4);
      translate([30, 0, 0])
        cylinder(h = 6.35, r = 4);
    }
}
`
	assert.Equal(t, want, p.Script())
}

func TestScriptTextEscaping(t *testing.T) {
	p := Program{Root: Text{S: `1-3/4" x 3/8"`, Size: 5, Depth: 1}}
	s := p.Script()
	assert.Contains(t, s, `text("1-3/4\" x 3/8\"", size = 5`)
	assert.Contains(t, s, "linear_extrude(height = 1)")
	assert.NotContains(t, s, "$fn", "zero Segments must not emit $fn")
}

func TestScratch(t *testing.T) {
	s, err := NewScratch(t.TempDir())
	require.NoError(t, err)
	p := s.Path("model.scad")
	require.NoError(t, os.WriteFile(p, []byte("cube([1,1,1]);"), 0o644))
	assert.Equal(t, filepath.Dir(p), s.Path(""))
	require.NoError(t, s.Close())
	_, err = os.Stat(p)
	assert.True(t, os.IsNotExist(err), "Close must remove scratch contents")
}

func TestRenderMissingBinary(t *testing.T) {
	s, err := NewScratch(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	r := Renderer{Bin: filepath.Join(t.TempDir(), "no-such-openscad")}
	_, err = r.Render(ctx, Program{Root: Cube{L: 1, W: 1, H: 1}}, s)
	require.Error(t, err)
	assert.ErrorContains(t, err, "renderer")
}
