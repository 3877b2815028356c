// Package export serializes assemblies and meshes into downloadable
// artifacts: declarative CSG source text and triangulated mesh formats.
package export

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chazu/forma/pkg/csg"
)

// DefaultFacets is the curve facet count written into the source header,
// matching the original generator's "$fn = 100;" preamble.
const DefaultFacets = 100

// scadPrecision is the fixed number of decimal places for numeric
// literals. Fixed precision makes output byte-identical for identical
// input parameters.
const scadPrecision = 4

// SCAD renders the assembly as OpenSCAD-style CSG source using
// DefaultFacets.
func SCAD(a *csg.Assembly) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteSCAD(&buf, a, DefaultFacets); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteSCAD writes the assembly as CSG source text. The tree is emitted
// depth-first in construction order, so two assemblies built from
// identical parameters serialize byte for byte.
func WriteSCAD(w io.Writer, a *csg.Assembly, facets int) error {
	if a == nil || a.Root == nil {
		return fmt.Errorf("export: assembly has no geometry")
	}
	if facets < 1 {
		facets = DefaultFacets
	}
	if _, err := fmt.Fprintf(w, "$fn = %d;\n", facets); err != nil {
		return err
	}
	return writeNode(w, a.Root, 0)
}

func writeNode(w io.Writer, n csg.Node, depth int) error {
	indent := strings.Repeat("  ", depth)
	switch v := n.(type) {
	case *csg.Leaf:
		line, err := leafSource(v)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s%s\n", indent, line)
		return err

	case *csg.Combine:
		if _, err := fmt.Fprintf(w, "%s%s() {\n", indent, v.Op); err != nil {
			return err
		}
		if err := writeNode(w, v.Left, depth+1); err != nil {
			return err
		}
		if err := writeNode(w, v.Right, depth+1); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "%s}\n", indent)
		return err

	default:
		return fmt.Errorf("export: unknown node type %T", n)
	}
}

// leafSource renders one placed primitive. Modifiers are written
// outermost-first, so the innermost (first applied) operation is the
// local-frame translation, then the global rotation.
func leafSource(l *csg.Leaf) (string, error) {
	var sb strings.Builder

	if !l.Transform.Rotate.IsZero() {
		fmt.Fprintf(&sb, "rotate(%s) ", vec(l.Transform.Rotate))
	}
	if !l.Transform.Translate.IsZero() {
		fmt.Fprintf(&sb, "translate(%s) ", vec(l.Transform.Translate))
	}

	switch p := l.Prim.(type) {
	case csg.Box:
		fmt.Fprintf(&sb, "cube([%s, %s, %s], center = true);", num(p.X), num(p.Y), num(p.Z))
	case csg.Cylinder:
		fmt.Fprintf(&sb, "cylinder(h = %s, r = %s, center = true);", num(p.Height), num(p.Radius))
	case csg.TextExtrusion:
		fmt.Fprintf(&sb, "linear_extrude(height = %s) text(%s, size = %s, font = %s);",
			num(p.Height), strconv.Quote(p.Text), num(p.Size), strconv.Quote(p.Font))
	default:
		return "", fmt.Errorf("export: unknown primitive type %T", l.Prim)
	}

	return sb.String(), nil
}

func vec(v csg.Vec3) string {
	return fmt.Sprintf("[%s, %s, %s]", num(v.X), num(v.Y), num(v.Z))
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', scadPrecision, 64)
}
