package mortise

import (
	"errors"
	"math"
	"testing"

	"github.com/LinskyDan/OpenScadParametric/units"
)

// validParams is the worked example from the project notes: 5/16 bushing,
// 1/4 bit, 1-3/4 x 3/8 mortise referenced 1/4 from the fence.
func validParams() ParameterSet {
	return ParameterSet{
		Unit:            units.Imperial,
		Edge:            Right,
		BushingOD:       0.3125,
		BitDiameter:     0.25,
		MortiseLength:   1.75,
		MortiseWidth:    0.375,
		EdgeDistance:    0.25,
		ExtensionLength: 3,
		ExtensionWidth:  3,
		Thickness:       0.25,
	}
}

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func TestDerive(t *testing.T) {
	g, tree, err := Derive(validParams())
	if err != nil {
		t.Fatal(err)
	}
	if tree == nil {
		t.Fatal("nil solid tree for valid parameters")
	}
	approx(t, "Offset", g.Offset, 0.03125*25.4)
	approx(t, "CutoutLength", g.CutoutLength, 1.8125*25.4)
	approx(t, "CutoutWidth", g.CutoutWidth, 0.4375*25.4)
	approx(t, "CornerRadius", g.CornerRadius, 0.15625*25.4)
	approx(t, "PlateLength", g.PlateLength, 198.4375)
	approx(t, "PlateWidth", g.PlateWidth, 100.0125)
	approx(t, "Thickness", g.Thickness, 6.35)
	approx(t, "CutoutOrigin.X", g.CutoutOrigin.X, 76.2)
	// Right side: stop is on the far edge, cutout measured back from its
	// inner face.
	approx(t, "CutoutOrigin.Y", g.CutoutOrigin.Y, 100.0125-6.35-0.4375*25.4-12.7)
}

func TestDeriveLabels(t *testing.T) {
	g, _, err := Derive(validParams())
	if err != nil {
		t.Fatal(err)
	}
	if g.Labels.Mortise != "1-3/4 x 3/8 in" {
		t.Fatalf("mortise label %q", g.Labels.Mortise)
	}
	if g.Labels.Guide != "5/16 bushing / 1/4 bit" {
		t.Fatalf("guide label %q", g.Labels.Guide)
	}
	if g.Labels.Edge != "edge 1/4 in right" {
		t.Fatalf("edge label %q", g.Labels.Edge)
	}
}

func TestDeriveMetricLabels(t *testing.T) {
	p := validParams()
	p.Unit = units.Metric
	g, _, err := Derive(p)
	if err != nil {
		t.Fatal(err)
	}
	if g.Labels.Mortise != "44.5 x 9.5 mm" {
		t.Fatalf("mortise label %q", g.Labels.Mortise)
	}
}

func TestDeriveEdgeSideConvention(t *testing.T) {
	for _, side := range []EdgeSide{Left, Right} {
		p := validParams()
		p.Edge = side
		g, _, err := Derive(p)
		if err != nil {
			t.Fatal(err)
		}
		edge := units.ToMillimeters(p.EdgeDistance)
		// The distance from the edge-stop inner face to the near cutout
		// edge is the user's EdgeDistance on either side.
		var fenceToCutout float64
		if side == Left {
			fenceToCutout = g.CutoutOrigin.Y - edgeStopThickness
		} else {
			fenceToCutout = g.PlateWidth - edgeStopThickness - (g.CutoutOrigin.Y + g.CutoutWidth)
		}
		approx(t, side.String()+" fence distance", fenceToCutout, edge)
	}
}

func TestDeriveContainment(t *testing.T) {
	sets := []ParameterSet{
		validParams(),
		{Unit: units.Imperial, Edge: Left, BushingOD: 0.625, BitDiameter: 0.5,
			MortiseLength: 3, MortiseWidth: 0.75, EdgeDistance: 0.5,
			ExtensionLength: 2, ExtensionWidth: 2, Thickness: 0.5},
		{Unit: units.Metric, Edge: Right, BushingOD: units.ToInches(16),
			BitDiameter: units.ToInches(12), MortiseLength: units.ToInches(60),
			MortiseWidth: units.ToInches(14), EdgeDistance: units.ToInches(10),
			ExtensionLength: units.ToInches(40), ExtensionWidth: units.ToInches(40),
			Thickness: units.ToInches(6)},
	}
	for i, p := range sets {
		g, _, err := Derive(p)
		if err != nil {
			t.Fatalf("set %d: %v", i, err)
		}
		if g.CutoutLength > g.PlateLength {
			t.Fatalf("set %d: cutout length %v exceeds plate %v", i, g.CutoutLength, g.PlateLength)
		}
		if g.CutoutWidth+edgeStopThickness > g.PlateWidth {
			t.Fatalf("set %d: cutout width + stop %v exceeds plate %v", i,
				g.CutoutWidth+edgeStopThickness, g.PlateWidth)
		}
		// Strict interior, both axes.
		if g.CutoutOrigin.X <= 0 || g.CutoutOrigin.X+g.CutoutLength >= g.PlateLength {
			t.Fatalf("set %d: cutout crosses plate ends", i)
		}
		if g.CutoutOrigin.Y <= 0 || g.CutoutOrigin.Y+g.CutoutWidth >= g.PlateWidth {
			t.Fatalf("set %d: cutout crosses plate sides", i)
		}
	}
}

func TestDeriveInvalidOffset(t *testing.T) {
	p := validParams()
	p.BushingOD = 0.2
	_, tree, err := Derive(p)
	if !errors.Is(err, ErrInvalidOffset) {
		t.Fatalf("got %v, want ErrInvalidOffset", err)
	}
	if tree != nil {
		t.Fatal("partial geometry returned alongside error")
	}
}

func TestDeriveFootprintTooLarge(t *testing.T) {
	p := validParams()
	p.MortiseLength = 4
	p.ExtensionLength = 3.5
	_, _, err := Derive(p)
	if !errors.Is(err, ErrFootprintTooLarge) {
		t.Fatalf("got %v, want ErrFootprintTooLarge", err)
	}
}

func TestDeriveCutoutOutsidePlate(t *testing.T) {
	p := validParams()
	p.EdgeDistance = 1.0
	p.ExtensionWidth = 0.5
	_, _, err := Derive(p)
	if !errors.Is(err, ErrCutoutOutsidePlate) {
		t.Fatalf("got %v, want ErrCutoutOutsidePlate", err)
	}
}

func TestDeriveCornerRadiusTooLarge(t *testing.T) {
	p := validParams()
	p.BushingOD = 0.5
	p.BitDiameter = 0.25
	p.MortiseWidth = 0.2
	_, _, err := Derive(p)
	if !errors.Is(err, ErrCornerRadiusTooLarge) {
		t.Fatalf("got %v, want ErrCornerRadiusTooLarge", err)
	}
}

func TestDeriveZeroOffsetSucceeds(t *testing.T) {
	p := validParams()
	p.BushingOD = p.BitDiameter
	g, _, err := Derive(p)
	if err != nil {
		t.Fatal(err)
	}
	if g.Offset != 0 {
		t.Fatalf("offset %v, want 0", g.Offset)
	}
	approx(t, "CutoutLength", g.CutoutLength, units.ToMillimeters(p.MortiseLength))
}
