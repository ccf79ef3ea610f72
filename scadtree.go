package mortise

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/LinskyDan/OpenScadParametric/scad"
)

// Overshoot for subtracted solids so difference surfaces never coincide
// with plate faces.
const cutEps = 0.5

// solidTree assembles the fixed boolean tree
// (plate ∪ edge_stop) − (cutout ∪ engravings) from a derived layout.
// The plate sits with its bottom face on z=0, its near-stop edge on y=0.
func solidTree(side EdgeSide, g DerivedGeometry) scad.Node {
	plate := scad.Cube{L: g.PlateLength, W: g.PlateWidth, H: g.Thickness}

	stopY := 0.0
	if side == Right {
		stopY = g.PlateWidth - edgeStopThickness
	}
	stop := scad.Translate{
		Off:   r3.Vec{Y: stopY, Z: g.Thickness},
		Child: scad.Cube{L: g.PlateLength, W: edgeStopThickness, H: edgeStopHeight},
	}

	cuts := scad.Union{roundedSlot(g)}
	for i, s := range engravingLines(g.Labels) {
		if text, ok := engraving(side, g, s, i); ok {
			cuts = append(cuts, text)
		}
	}

	return scad.Difference{
		scad.Union{plate, stop},
		cuts,
	}
}

// roundedSlot is the through-cutout: the convex hull of four cylinders, one
// per corner of the cutout rectangle, inset by the corner radius.
func roundedSlot(g DerivedGeometry) scad.Node {
	var (
		r      = g.CornerRadius
		x0     = g.CutoutOrigin.X + r
		x1     = g.CutoutOrigin.X + g.CutoutLength - r
		y0     = g.CutoutOrigin.Y + r
		y1     = g.CutoutOrigin.Y + g.CutoutWidth - r
		height = g.Thickness + 2*cutEps
	)
	pin := scad.Cylinder{H: height, R: r}
	corner := func(x, y float64) scad.Node {
		return scad.Translate{Off: r3.Vec{X: x, Y: y, Z: -cutEps}, Child: pin}
	}
	return scad.Hull{
		corner(x0, y0),
		corner(x1, y0),
		corner(x1, y1),
		corner(x0, y1),
	}
}

func engravingLines(l Labels) []string {
	return []string{l.Mortise, l.Guide, l.Edge}
}

// engraving places one text line in the extension margin beside the cutout,
// sunk into the plate top face. Lines stack away from the cutout so none
// ever overlaps it; a line whose band would leave the plate is dropped
// rather than engraved off the edge, so ok reports whether the line fits.
func engraving(side EdgeSide, g DerivedGeometry, s string, line int) (scad.Node, bool) {
	x := g.CutoutOrigin.X
	pitch := labelSize + labelMargin
	var y float64
	if side == Left {
		// Margin is above the cutout; stack upward.
		y = g.CutoutOrigin.Y + g.CutoutWidth + labelMargin + float64(line)*pitch
	} else {
		// Margin is below the cutout; stack downward, baseline under the text.
		y = g.CutoutOrigin.Y - labelMargin - labelSize - float64(line)*pitch
	}
	if y < 0 || y+labelSize > g.PlateWidth {
		return nil, false
	}
	return scad.Translate{
		Off: r3.Vec{X: x, Y: y, Z: g.Thickness - engraveDepth},
		Child: scad.Text{
			S:     s,
			Size:  labelSize,
			Depth: engraveDepth + cutEps,
		},
	}, true
}
