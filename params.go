// Package mortise derives solid router-template geometry from a handful of
// shop measurements: guide bushing and bit diameters, the mortise to cut,
// and where the template's edge stop registers against the workpiece.
//
// All derivation is pure. Lengths are stored canonically in inches on the
// parameter set and in millimeters on everything derived from it.
package mortise

import (
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/LinskyDan/OpenScadParametric/units"
)

// EdgeSide selects which long edge of the template carries the edge stop.
type EdgeSide int

const (
	Left EdgeSide = iota
	Right
)

func (e EdgeSide) String() string {
	if e == Right {
		return "right"
	}
	return "left"
}

// ParameterSet is one immutable template request. All lengths are in inches
// regardless of the display unit system.
type ParameterSet struct {
	Unit units.System
	Edge EdgeSide

	BushingOD       float64 // guide bushing outer diameter
	BitDiameter     float64
	MortiseLength   float64
	MortiseWidth    float64
	EdgeDistance    float64 // edge-stop inner face to near cutout edge
	ExtensionLength float64 // template margin past each end of the cutout
	ExtensionWidth  float64 // template margin past the far side of the cutout
	Thickness       float64
}

// Ingestion bounds, millimeter equivalents. Derive re-checks its own derived
// invariants; these only catch nonsense input at the boundary.
const (
	minDimension = 0.1 // mm
	maxDimension = 250 // mm
)

var ErrDimensionOutOfRange = errors.New("dimension outside accepted range")

// paramsFile is the TOML document shape. Lengths are written in the file's
// declared unit system, the way the user measured them.
type paramsFile struct {
	Units           string  `toml:"units"`
	Edge            string  `toml:"edge"`
	BushingOD       float64 `toml:"bushing_od"`
	BitDiameter     float64 `toml:"bit_diameter"`
	MortiseLength   float64 `toml:"mortise_length"`
	MortiseWidth    float64 `toml:"mortise_width"`
	EdgeDistance    float64 `toml:"edge_distance"`
	ExtensionLength float64 `toml:"extension_length"`
	ExtensionWidth  float64 `toml:"extension_width"`
	Thickness       float64 `toml:"thickness"`
}

// LoadParameterSet parses a TOML parameter document, converts it to
// canonical inches and validates the ingestion bounds.
func LoadParameterSet(b []byte) (ParameterSet, error) {
	var f paramsFile
	if err := toml.Unmarshal(b, &f); err != nil {
		return ParameterSet{}, fmt.Errorf("parsing parameters: %w", err)
	}
	var p ParameterSet
	switch f.Units {
	case "imperial", "":
		p.Unit = units.Imperial
	case "metric":
		p.Unit = units.Metric
	default:
		return ParameterSet{}, fmt.Errorf("unknown unit system %q", f.Units)
	}
	switch f.Edge {
	case "left", "":
		p.Edge = Left
	case "right":
		p.Edge = Right
	default:
		return ParameterSet{}, fmt.Errorf("unknown edge side %q", f.Edge)
	}
	conv := func(v float64) float64 {
		if p.Unit == units.Metric {
			return units.ToInches(v)
		}
		return v
	}
	p.BushingOD = conv(f.BushingOD)
	p.BitDiameter = conv(f.BitDiameter)
	p.MortiseLength = conv(f.MortiseLength)
	p.MortiseWidth = conv(f.MortiseWidth)
	p.EdgeDistance = conv(f.EdgeDistance)
	p.ExtensionLength = conv(f.ExtensionLength)
	p.ExtensionWidth = conv(f.ExtensionWidth)
	p.Thickness = conv(f.Thickness)
	if err := p.checkBounds(); err != nil {
		return ParameterSet{}, err
	}
	return p, nil
}

// MarshalTOML renders p back to the TOML document shape in its display unit.
func (p ParameterSet) MarshalTOML() ([]byte, error) {
	conv := func(v float64) float64 {
		if p.Unit == units.Metric {
			return units.ToMillimeters(v)
		}
		return v
	}
	return toml.Marshal(paramsFile{
		Units:           p.Unit.String(),
		Edge:            p.Edge.String(),
		BushingOD:       conv(p.BushingOD),
		BitDiameter:     conv(p.BitDiameter),
		MortiseLength:   conv(p.MortiseLength),
		MortiseWidth:    conv(p.MortiseWidth),
		EdgeDistance:    conv(p.EdgeDistance),
		ExtensionLength: conv(p.ExtensionLength),
		ExtensionWidth:  conv(p.ExtensionWidth),
		Thickness:       conv(p.Thickness),
	})
}

func (p ParameterSet) checkBounds() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"bushing_od", p.BushingOD},
		{"bit_diameter", p.BitDiameter},
		{"mortise_length", p.MortiseLength},
		{"mortise_width", p.MortiseWidth},
		{"edge_distance", p.EdgeDistance},
		{"extension_length", p.ExtensionLength},
		{"extension_width", p.ExtensionWidth},
		{"thickness", p.Thickness},
	}
	for _, f := range fields {
		mm := units.ToMillimeters(f.v)
		if mm < minDimension || mm > maxDimension {
			return fmt.Errorf("%w: %s = %.3fmm, accepted %g-%gmm",
				ErrDimensionOutOfRange, f.name, mm, float64(minDimension), float64(maxDimension))
		}
	}
	return nil
}
