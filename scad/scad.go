// Package scad describes solids as boolean expression trees over a small set
// of primitives and serializes them to the OpenSCAD script language consumed
// by the external CSG renderer.
package scad

import (
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Node is one vertex of a solid-model expression tree. Trees are built once
// and read many times; nothing mutates a node after construction.
type Node interface {
	emit(w *writer)
}

// Cube is an axis-aligned box with one corner at the origin.
type Cube struct {
	L, W, H float64
}

// Cylinder is a Z-aligned cylinder with its base at the origin.
type Cylinder struct {
	H, R float64
}

// Text is an engraving solid: the string extruded Depth units along Z.
type Text struct {
	S     string
	Size  float64
	Depth float64
}

// Translate offsets its child.
type Translate struct {
	Off   r3.Vec
	Child Node
}

// Union is the boolean sum of its children.
type Union []Node

// Difference subtracts every later child from the first.
type Difference []Node

// Hull is the convex hull of its children.
type Hull []Node

func (c Cube) emit(w *writer) {
	w.line("cube([" + ftoa(c.L) + ", " + ftoa(c.W) + ", " + ftoa(c.H) + "]);")
}

func (c Cylinder) emit(w *writer) {
	w.line("cylinder(h = " + ftoa(c.H) + ", r = " + ftoa(c.R) + ");")
}

func (t Text) emit(w *writer) {
	w.line("linear_extrude(height = " + ftoa(t.Depth) + ")")
	w.indent()
	w.line("text(" + strconv.Quote(t.S) + ", size = " + ftoa(t.Size) + ", halign = \"left\", valign = \"baseline\");")
	w.dedent()
}

func (t Translate) emit(w *writer) {
	w.line("translate([" + ftoa(t.Off.X) + ", " + ftoa(t.Off.Y) + ", " + ftoa(t.Off.Z) + "])")
	w.indent()
	t.Child.emit(w)
	w.dedent()
}

func (u Union) emit(w *writer) { emitOp(w, "union", u) }

func (d Difference) emit(w *writer) { emitOp(w, "difference", d) }

func (h Hull) emit(w *writer) { emitOp(w, "hull", h) }

func emitOp(w *writer, op string, children []Node) {
	w.line(op + "() {")
	w.indent()
	for _, c := range children {
		c.emit(w)
	}
	w.dedent()
	w.line("}")
}

// Program is a complete renderable script: one root solid plus the circle
// fidelity setting the renderer tessellates with.
type Program struct {
	Root Node
	// Segments is the number of polygon segments per full circle ($fn).
	// Zero leaves the renderer's default in place.
	Segments int
}

// Script serializes the program to OpenSCAD source.
func (p Program) Script() string {
	var w writer
	if p.Segments > 0 {
		w.line("$fn = " + strconv.Itoa(p.Segments) + ";")
	}
	p.Root.emit(&w)
	return w.b.String()
}

type writer struct {
	b     strings.Builder
	depth int
}

func (w *writer) line(s string) {
	for i := 0; i < w.depth; i++ {
		w.b.WriteString("  ")
	}
	w.b.WriteString(s)
	w.b.WriteByte('\n')
}

func (w *writer) indent() { w.depth++ }
func (w *writer) dedent() { w.depth-- }

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
