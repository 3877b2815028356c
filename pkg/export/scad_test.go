package export_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/forma/pkg/builder"
	"github.com/chazu/forma/pkg/csg"
	"github.com/chazu/forma/pkg/export"
)

func TestSCADSingleLeaf(t *testing.T) {
	asm := csg.NewAssembly("one", &csg.Leaf{Prim: csg.Box{X: 60, Y: 60, Z: 10}}, 1)

	out, err := export.SCAD(asm)
	require.NoError(t, err)
	assert.Equal(t, "$fn = 100;\ncube([60.0000, 60.0000, 10.0000], center = true);\n", string(out))
}

func TestSCADPlacedLeafModifierOrder(t *testing.T) {
	asm := csg.NewAssembly("placed", &csg.Leaf{
		Prim: csg.Box{X: 100, Y: 10, Z: 6},
		Transform: csg.Transform{
			Translate: csg.Vec3{X: 80},
			Rotate:    csg.Vec3{Z: 90},
		},
	}, 1)

	out, err := export.SCAD(asm)
	require.NoError(t, err)

	// Rotation is written outermost: the reader applies translate first.
	assert.Contains(t, string(out),
		"rotate([0.0000, 0.0000, 90.0000]) translate([80.0000, 0.0000, 0.0000]) cube([100.0000, 10.0000, 6.0000], center = true);")
}

func TestSCADUnionNesting(t *testing.T) {
	asm := csg.NewAssembly("pair", csg.Union(
		&csg.Leaf{Prim: csg.Box{X: 1, Y: 1, Z: 1}},
		&csg.Leaf{Prim: csg.Cylinder{Radius: 5, Height: 8}},
	), 1)

	out, err := export.SCAD(asm)
	require.NoError(t, err)
	assert.Equal(t, "$fn = 100;\n"+
		"union() {\n"+
		"  cube([1.0000, 1.0000, 1.0000], center = true);\n"+
		"  cylinder(h = 8.0000, r = 5.0000, center = true);\n"+
		"}\n", string(out))
}

func TestSCADTextQuoting(t *testing.T) {
	asm := csg.NewAssembly("label", &csg.Leaf{
		Prim: csg.TextExtrusion{Text: `say "hi"`, Font: "Go Regular", Size: 10, Height: 5},
	}, 1)

	out, err := export.SCAD(asm)
	require.NoError(t, err)
	assert.Contains(t, string(out),
		`linear_extrude(height = 5.0000) text("say \"hi\"", size = 10.0000, font = "Go Regular");`)
}

func TestWriteSCADCustomFacets(t *testing.T) {
	asm := csg.NewAssembly("one", &csg.Leaf{Prim: csg.Box{X: 1, Y: 1, Z: 1}}, 1)

	var buf bytes.Buffer
	require.NoError(t, export.WriteSCAD(&buf, asm, 32))
	assert.True(t, strings.HasPrefix(buf.String(), "$fn = 32;\n"))

	buf.Reset()
	require.NoError(t, export.WriteSCAD(&buf, asm, 0))
	assert.True(t, strings.HasPrefix(buf.String(), "$fn = 100;\n"), "non-positive facets fall back to default")
}

func TestSCADFrameIsByteIdentical(t *testing.T) {
	p := builder.DefaultRadialFrameParams()

	build := func() []byte {
		asm, err := builder.BuildRadialFrame(p)
		require.NoError(t, err)
		out, err := export.SCAD(asm)
		require.NoError(t, err)
		return out
	}

	first := build()
	assert.Equal(t, first, build(), "identical parameters must serialize byte for byte")

	// Source covers every placed primitive once.
	src := string(first)
	assert.Equal(t, 5, strings.Count(src, "cube("), "body + 4 arms")
	assert.Equal(t, 4, strings.Count(src, "cylinder("), "4 mounts")
	assert.Equal(t, 8, strings.Count(src, "union() {"), "left-deep fold over 9 leaves")
}

func TestSCADErrors(t *testing.T) {
	_, err := export.SCAD(nil)
	assert.Error(t, err)

	_, err = export.SCAD(&csg.Assembly{Name: "empty"})
	assert.Error(t, err)
}
