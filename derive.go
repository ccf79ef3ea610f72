package mortise

import (
	"errors"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/LinskyDan/OpenScadParametric/scad"
	"github.com/LinskyDan/OpenScadParametric/units"
)

// Fixed template stock, millimeters.
const (
	// edgeStopThickness is the edge stop's cross-section along the plate
	// width; edgeStopHeight is how far it stands proud of the plate top.
	// 1/2in x 3/8in fence stock.
	edgeStopThickness = 12.7
	edgeStopHeight    = 9.525

	// maxBuildDim is the renderer's build-volume edge limit.
	maxBuildDim = 256

	// Engraving cuts this deep into the plate top face.
	engraveDepth = 1.0
	labelSize    = 5.0 // text height
	labelMargin  = 4.0 // clearance between cutout edge and label baseline
)

var (
	// ErrInvalidOffset reports a guide bushing narrower than the bit.
	ErrInvalidOffset = errors.New("bushing outer diameter smaller than bit diameter")
	// ErrFootprintTooLarge reports a plate exceeding the renderer's build volume.
	ErrFootprintTooLarge = errors.New("template footprint exceeds build volume")
	// ErrCutoutOutsidePlate reports a cutout that does not sit strictly
	// inside the plate; the edge distance must be under the extension width.
	ErrCutoutOutsidePlate = errors.New("cutout does not fit inside plate")
	// ErrCornerRadiusTooLarge reports a bushing too wide for the mortise's
	// narrow dimension, which would degenerate the rounded cutout.
	ErrCornerRadiusTooLarge = errors.New("bushing diameter exceeds cutout width or length")
)

// Labels are the engraved, rule-readable measurement strings.
type Labels struct {
	// Mortise is the finished mortise size, e.g. "1-3/4 x 3/8 in".
	Mortise string
	// Guide names the bushing and bit the template was compensated for.
	Guide string
	// Edge is the fence setback, e.g. "edge 1/4 in right".
	Edge string
}

// DerivedGeometry is the resolved template layout. All lengths are in
// millimeters; nothing here is mutated after Derive returns it.
type DerivedGeometry struct {
	// Offset is the radial bushing-to-bit clearance. The cutout is grown by
	// it on every side so the bit, not the bushing, traces the mortise.
	Offset       float64
	CutoutLength float64
	CutoutWidth  float64
	CornerRadius float64
	PlateLength  float64
	PlateWidth   float64
	Thickness    float64
	// CutoutOrigin is the near corner of the cutout rectangle: X from the
	// plate's left end, Y from the edge-stop side of the plate.
	CutoutOrigin r2.Vec
	Labels       Labels
}

// Derive resolves a parameter set into the template layout and the solid
// model the renderer consumes. It is pure: same inputs, same outputs, and on
// any invariant violation it returns a typed error and no geometry at all.
func Derive(p ParameterSet) (DerivedGeometry, scad.Node, error) {
	var (
		bushing = units.ToMillimeters(p.BushingOD)
		bit     = units.ToMillimeters(p.BitDiameter)
		mortL   = units.ToMillimeters(p.MortiseLength)
		mortW   = units.ToMillimeters(p.MortiseWidth)
		edge    = units.ToMillimeters(p.EdgeDistance)
		extL    = units.ToMillimeters(p.ExtensionLength)
		extW    = units.ToMillimeters(p.ExtensionWidth)
		thick   = units.ToMillimeters(p.Thickness)
	)

	offset := (bushing - bit) / 2
	if offset < 0 {
		return DerivedGeometry{}, nil, ErrInvalidOffset
	}

	g := DerivedGeometry{
		Offset:       offset,
		CutoutLength: mortL + 2*offset,
		CutoutWidth:  mortW + 2*offset,
		CornerRadius: bushing / 2,
		Thickness:    thick,
	}
	g.PlateLength = g.CutoutLength + 2*extL
	g.PlateWidth = g.CutoutWidth + edgeStopThickness + extW

	if 2*g.CornerRadius > g.CutoutWidth || 2*g.CornerRadius > g.CutoutLength {
		return DerivedGeometry{}, nil, ErrCornerRadiusTooLarge
	}

	// The cutout is centered along the plate; across it, EdgeDistance is
	// measured from the edge-stop inner face on whichever side the stop
	// sits. The Right layout redraws the stop on the far edge, so its
	// formula is not a mirror of the Left one.
	g.CutoutOrigin = r2.Vec{X: (g.PlateLength - g.CutoutLength) / 2}
	switch p.Edge {
	case Left:
		g.CutoutOrigin.Y = edgeStopThickness + edge
	case Right:
		g.CutoutOrigin.Y = g.PlateWidth - edge - g.CutoutWidth - edgeStopThickness
	}
	if edge >= extW {
		// Equivalent to the cutout touching or crossing the far plate edge.
		return DerivedGeometry{}, nil, ErrCutoutOutsidePlate
	}
	if g.PlateLength > maxBuildDim || g.PlateWidth > maxBuildDim {
		return DerivedGeometry{}, nil, ErrFootprintTooLarge
	}

	g.Labels = p.labels()
	return g, solidTree(p.Edge, g), nil
}

// labels formats the measurement strings in the request's display unit.
func (p ParameterSet) labels() Labels {
	disp := func(inches float64) string {
		if p.Unit == units.Metric {
			return units.FormatMetric(units.ToMillimeters(inches))
		}
		return units.FormatImperial(inches)
	}
	suffix := " in"
	if p.Unit == units.Metric {
		suffix = " mm"
	}
	return Labels{
		Mortise: disp(p.MortiseLength) + " x " + disp(p.MortiseWidth) + suffix,
		Guide:   disp(p.BushingOD) + " bushing / " + disp(p.BitDiameter) + " bit",
		Edge:    "edge " + disp(p.EdgeDistance) + suffix + " " + p.Edge.String(),
	}
}
