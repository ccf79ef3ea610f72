package scad

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Scratch is a caller-owned temporary workspace for one renderer invocation.
// Concurrent renders each get their own Scratch, so script and mesh files
// never collide between requests.
type Scratch struct {
	dir string
}

// NewScratch creates a scratch directory under parent. An empty parent uses
// the system temporary directory. The caller must Close it.
func NewScratch(parent string) (*Scratch, error) {
	dir, err := os.MkdirTemp(parent, "openscad-*")
	if err != nil {
		return nil, fmt.Errorf("creating scratch directory: %w", err)
	}
	return &Scratch{dir: dir}, nil
}

// Path returns the scratch-local path for name.
func (s *Scratch) Path(name string) string { return filepath.Join(s.dir, name) }

// Close removes the scratch directory and everything in it.
func (s *Scratch) Close() error { return os.RemoveAll(s.dir) }

// Renderer turns programs into STL bytes by invoking the OpenSCAD binary.
// The zero value looks the binary up on PATH.
type Renderer struct {
	// Bin is the renderer executable. Empty means "openscad".
	Bin string
}

// Render writes the program's script into scratch, runs the renderer on it
// and returns the produced STL bytes. The context bounds the external
// process; the caller decides the timeout policy.
func (r *Renderer) Render(ctx context.Context, p Program, scratch *Scratch) ([]byte, error) {
	bin := r.Bin
	if bin == "" {
		bin = "openscad"
	}
	script := scratch.Path("model.scad")
	mesh := scratch.Path("model.stl")
	if err := os.WriteFile(script, []byte(p.Script()), 0o644); err != nil {
		return nil, fmt.Errorf("writing renderer script: %w", err)
	}
	cmd := exec.CommandContext(ctx, bin, "-o", mesh, script)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("renderer %s failed: %w\n%s", bin, err, out)
	}
	b, err := os.ReadFile(mesh)
	if err != nil {
		return nil, fmt.Errorf("reading renderer output: %w", err)
	}
	return b, nil
}
