package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	mortise "github.com/LinskyDan/OpenScadParametric"
	"github.com/LinskyDan/OpenScadParametric/scad"
	"github.com/LinskyDan/OpenScadParametric/stl"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Derive template geometry and write the renderer script",
	Long: `Reads a TOML parameter file, derives the template geometry and writes
template.scad into the output directory. With --render the OpenSCAD binary
is invoked and the resulting mesh is validated and written as template.stl.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runGenerate(cmd)
	},
}

var genFlags struct {
	params   string
	out      string
	render   bool
	ascii    bool
	segments int
	openscad string
	timeout  time.Duration
}

func init() {
	f := generateCmd.Flags()
	f.StringVarP(&genFlags.params, "params", "p", "params.toml", "parameter file")
	f.StringVarP(&genFlags.out, "out", "o", ".", "output directory")
	f.BoolVar(&genFlags.render, "render", false, "invoke the renderer and write template.stl")
	f.BoolVar(&genFlags.ascii, "ascii", false, "write the mesh in ASCII STL form")
	f.IntVar(&genFlags.segments, "fn", 64, "polygon segments per circle ($fn)")
	f.StringVar(&genFlags.openscad, "openscad", "", "renderer executable (default: openscad on PATH)")
	f.DurationVar(&genFlags.timeout, "timeout", 2*time.Minute, "renderer time limit")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command) error {
	b, err := os.ReadFile(genFlags.params)
	if err != nil {
		return err
	}
	p, err := mortise.LoadParameterSet(b)
	if err != nil {
		return err
	}
	g, tree, err := mortise.Derive(p)
	if err != nil {
		return fmt.Errorf("deriving geometry: %w", err)
	}
	program := scad.Program{Root: tree, Segments: genFlags.segments}

	if err := os.MkdirAll(genFlags.out, 0o755); err != nil {
		return err
	}
	scadPath := filepath.Join(genFlags.out, "template.scad")
	if err := os.WriteFile(scadPath, []byte(program.Script()), 0o644); err != nil {
		return err
	}
	cmd.Printf("template: %.1f x %.1f x %.1f mm, cutout %.1f x %.1f at (%.1f, %.1f)\n",
		g.PlateLength, g.PlateWidth, g.Thickness,
		g.CutoutLength, g.CutoutWidth, g.CutoutOrigin.X, g.CutoutOrigin.Y)
	cmd.Printf("engraved: %s | %s | %s\n", g.Labels.Mortise, g.Labels.Guide, g.Labels.Edge)
	cmd.Printf("wrote %s\n", scadPath)

	if !genFlags.render {
		return nil
	}
	return renderMesh(cmd, program)
}

// renderMesh runs the external renderer and re-validates its output through
// the codec before anything is written: a truncated or corrupt mesh never
// reaches the output file.
func renderMesh(cmd *cobra.Command, program scad.Program) error {
	scratch, err := scad.NewScratch("")
	if err != nil {
		return err
	}
	defer scratch.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), genFlags.timeout)
	defer cancel()
	r := scad.Renderer{Bin: genFlags.openscad}
	raw, err := r.Render(ctx, program, scratch)
	if err != nil {
		return err
	}
	mesh, err := stl.Decode(raw)
	if err != nil {
		return fmt.Errorf("renderer produced a bad mesh: %w", err)
	}

	form := stl.Binary
	if genFlags.ascii {
		form = stl.ASCII
	}
	out, err := stl.EncodeBytes(mesh, form)
	if err != nil {
		return err
	}
	stlPath := filepath.Join(genFlags.out, "template.stl")
	if err := os.WriteFile(stlPath, out, 0o644); err != nil {
		return err
	}
	cmd.Printf("wrote %s (%d triangles)\n", stlPath, len(mesh))
	return nil
}
