package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/LinskyDan/OpenScadParametric/preview"
	"github.com/LinskyDan/OpenScadParametric/stl"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render an STL file to a shaded PNG snapshot",
	RunE: func(cmd *cobra.Command, _ []string) error {
		b, err := os.ReadFile(previewFlags.in)
		if err != nil {
			return err
		}
		mesh, err := stl.Decode(b)
		if err != nil {
			return fmt.Errorf("decoding %s: %w", previewFlags.in, err)
		}
		img, err := preview.Snapshot(mesh, preview.DefaultView)
		if err != nil {
			return err
		}
		if err := preview.SavePNG(previewFlags.out, img); err != nil {
			return err
		}
		cmd.Printf("wrote %s (%d triangles)\n", previewFlags.out, len(mesh))
		return nil
	},
}

var previewFlags struct {
	in  string
	out string
}

func init() {
	f := previewCmd.Flags()
	f.StringVarP(&previewFlags.in, "in", "i", "template.stl", "STL file to preview")
	f.StringVarP(&previewFlags.out, "out", "o", "template.png", "PNG output path")
	rootCmd.AddCommand(previewCmd)
}
