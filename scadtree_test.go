package mortise

import (
	"strings"
	"testing"

	"github.com/LinskyDan/OpenScadParametric/scad"
)

func TestSolidTreeScript(t *testing.T) {
	_, tree, err := Derive(validParams())
	if err != nil {
		t.Fatal(err)
	}
	script := scad.Program{Root: tree, Segments: 64}.Script()

	if !strings.HasPrefix(script, "$fn = 64;\ndifference() {\n  union() {\n") {
		t.Fatalf("script does not open with the fixed boolean tree:\n%s", script)
	}
	for _, want := range []string{
		"hull() {",
		"text(\"1-3/4 x 3/8 in\"",
		"text(\"5/16 bushing / 1/4 bit\"",
		"text(\"edge 1/4 in right\"",
	} {
		if !strings.Contains(script, want) {
			t.Fatalf("script missing %q:\n%s", want, script)
		}
	}
	if got := strings.Count(script, "cylinder(h = "); got != 4 {
		t.Fatalf("rounded slot uses %d cylinders, want 4", got)
	}
	if got := strings.Count(script, "cube(["); got != 2 {
		t.Fatalf("script has %d cubes (plate + stop), want 2", got)
	}
}

func TestSolidTreeNarrowMarginDropsLabels(t *testing.T) {
	// 3/4in of extension past a 1/4in edge distance leaves room for one
	// label line; the rest must be dropped, never engraved past y=0.
	p := validParams()
	p.ExtensionWidth = 0.75
	_, tree, err := Derive(p)
	if err != nil {
		t.Fatal(err)
	}
	script := scad.Program{Root: tree}.Script()
	if got := strings.Count(script, "text("); got != 1 {
		t.Fatalf("narrow margin engraves %d lines, want 1:\n%s", got, script)
	}
	// The surviving line stays on the plate: no label translate at the
	// cutout's x origin with a negative y.
	if strings.Contains(script, "translate([76.2, -") {
		t.Fatalf("label at negative y:\n%s", script)
	}
}

func TestSolidTreeStopSide(t *testing.T) {
	p := validParams()
	p.Edge = Left
	_, tree, err := Derive(p)
	if err != nil {
		t.Fatal(err)
	}
	left := scad.Program{Root: tree}.Script()
	// Left stop sits on y=0: its translate carries no Y offset.
	if !strings.Contains(left, "translate([0, 0, 6.35])") {
		t.Fatalf("left-side stop not at near edge:\n%s", left)
	}

	p.Edge = Right
	_, tree, err = Derive(p)
	if err != nil {
		t.Fatal(err)
	}
	right := scad.Program{Root: tree}.Script()
	if strings.Contains(right, "translate([0, 0, 6.35])") {
		t.Fatalf("right-side stop still at near edge:\n%s", right)
	}
}
