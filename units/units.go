// Package units converts between the imperial and metric length units used
// on router templates and renders lengths the way they are read off a
// woodworking rule.
package units

import (
	"math"
	"strconv"
)

// System selects how lengths entered by the user are interpreted and how
// measurement labels are rendered.
type System int

const (
	Imperial System = iota
	Metric
)

func (s System) String() string {
	if s == Metric {
		return "metric"
	}
	return "imperial"
}

const mmPerInch = 25.4

// ToMillimeters converts inches to millimeters.
func ToMillimeters(in float64) float64 { return in * mmPerInch }

// ToInches converts millimeters to inches.
func ToInches(mm float64) float64 { return mm / mmPerInch }

// fractionDenominators are the rule graduations tried by FormatImperial,
// coarsest first. Sixteenths are the practical limit for shop measurement.
var fractionDenominators = [...]int{2, 4, 8, 16}

// wholeEps is how close a value must be to an integer to print as one.
const wholeEps = 1e-3

// FormatImperial renders v (in inches) as a rule-readable mixed fraction:
// "5/16", "1-3/4", or "2". The fraction is reduced and uses denominators up
// to sixteenths. Values that no sixteenth approximates well fall back to a
// fixed 3-decimal string.
func FormatImperial(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return strconv.FormatFloat(v, 'f', 3, 64)
	}
	// Values past int range cannot take the whole-part split below; no
	// fraction is meaningful at that magnitude anyway.
	if v >= 1<<62 {
		return strconv.FormatFloat(v, 'f', 3, 64)
	}
	whole := int(v)
	frac := v - float64(whole)
	if frac < wholeEps {
		return strconv.Itoa(whole)
	}
	if frac > 1-wholeEps {
		return strconv.Itoa(whole + 1)
	}
	n, d, ok := bestFraction(frac)
	if !ok {
		return strconv.FormatFloat(v, 'f', 3, 64)
	}
	fs := strconv.Itoa(n) + "/" + strconv.Itoa(d)
	if whole == 0 {
		return fs
	}
	return strconv.Itoa(whole) + "-" + fs
}

// bestFraction finds the numerator/denominator pair closest to frac,
// frac in (0,1). Each denominator's tolerance band is half a graduation;
// ok is false when even sixteenths miss by more than that.
func bestFraction(frac float64) (n, d int, ok bool) {
	best := math.MaxFloat64
	for _, den := range fractionDenominators {
		num := int(math.Round(frac * float64(den)))
		if num == 0 || num == den {
			continue
		}
		err := math.Abs(frac - float64(num)/float64(den))
		if err < best {
			best = err
			n, d = num, den
		}
	}
	if d == 0 || best > 1.0/32.0 {
		return 0, 0, false
	}
	g := gcd(n, d)
	return n / g, d / g, true
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// FormatMetric renders a millimeter value with one decimal, e.g. "12.7".
func FormatMetric(mm float64) string {
	return strconv.FormatFloat(math.Round(mm*10+1e-9)/10, 'f', 1, 64)
}

// Format renders v in the given system's display unit: inches as a mixed
// fraction for Imperial, millimeters to one decimal for Metric.
func Format(v float64, s System) string {
	if s == Metric {
		return FormatMetric(v)
	}
	return FormatImperial(v)
}
