package builder_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/forma/pkg/builder"
	"github.com/chazu/forma/pkg/csg"
	"github.com/chazu/forma/pkg/typeface"
)

func TestTextPlaqueBuild_HiWorld(t *testing.T) {
	b := builder.NewTextPlaqueBuilder(nil)

	asm, err := b.Build(builder.TextPlaqueParams{
		Text:          "Hi",
		Font:          "Go Regular",
		Size:          10,
		ExtrudeHeight: 5,
		BaseThickness: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "text-plaque", asm.Name)
	assert.Equal(t, 1, asm.Symmetry)

	leaves := csg.Leaves(asm.Root)
	require.Len(t, leaves, 2)

	// Text leaf first, untransformed: extrusion occupies Z in [0, 5].
	text, ok := leaves[0].Prim.(csg.TextExtrusion)
	require.True(t, ok)
	assert.Equal(t, "Hi", text.Text)
	assert.Equal(t, 10.0, text.Size)
	assert.Equal(t, 5.0, text.Height)
	assert.True(t, leaves[0].Transform.IsIdentity())

	// Base width = 10 * 2 * 0.6 = 12, shifted down so its extent is
	// [-2, 0]: z-center at -1.
	base, ok := leaves[1].Prim.(csg.Box)
	require.True(t, ok)
	assert.InDelta(t, 12.0, base.X, 1e-12)
	assert.Equal(t, 10.0, base.Y)
	assert.Equal(t, 2.0, base.Z)
	assert.Equal(t, csg.Vec3{X: 6, Y: 5, Z: -1}, leaves[1].Transform.Translate)
	assert.True(t, leaves[1].Transform.Rotate.IsZero())

	assert.Empty(t, csg.Validate(asm))
}

func TestTextPlaqueBuild_RuneCount(t *testing.T) {
	b := builder.NewTextPlaqueBuilder(nil)

	p := builder.DefaultTextPlaqueParams()
	p.Text = "héllo" // 5 runes, 6 bytes

	asm, err := b.Build(p)
	require.NoError(t, err)

	base := csg.Leaves(asm.Root)[1].Prim.(csg.Box)
	assert.InDelta(t, 10*5*0.6, base.X, 1e-12)
}

func TestTextPlaqueBuild_WidthFactorOverride(t *testing.T) {
	b := builder.NewTextPlaqueBuilder(nil)

	p := builder.DefaultTextPlaqueParams()
	p.Text = "ab"
	p.BaseWidthFactor = 1.5

	asm, err := b.Build(p)
	require.NoError(t, err)

	base := csg.Leaves(asm.Root)[1].Prim.(csg.Box)
	assert.InDelta(t, 10*2*1.5, base.X, 1e-12)
}

func TestTextPlaqueBuild_FontNotFound(t *testing.T) {
	b := builder.NewTextPlaqueBuilder(nil)

	p := builder.DefaultTextPlaqueParams()
	p.Font = "Comic Sans MS"

	asm, err := b.Build(p)
	require.Error(t, err)
	assert.Nil(t, asm)
	assert.True(t, errors.Is(err, typeface.ErrFontNotFound))

	var fnf *typeface.FontNotFoundError
	require.True(t, errors.As(err, &fnf))
	assert.Equal(t, "Comic Sans MS", fnf.Name)
}

func TestTextPlaqueBuild_Deterministic(t *testing.T) {
	b := builder.NewTextPlaqueBuilder(nil)
	p := builder.DefaultTextPlaqueParams()

	a1, err := b.Build(p)
	require.NoError(t, err)
	a2, err := b.Build(p)
	require.NoError(t, err)

	assert.True(t, reflect.DeepEqual(a1, a2))
}

func TestTextPlaqueBuild_InvalidParameters(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*builder.TextPlaqueParams)
		param  string
	}{
		{"empty text", func(p *builder.TextPlaqueParams) { p.Text = "" }, "text"},
		{"size under range", func(p *builder.TextPlaqueParams) { p.Size = 0.5 }, "size"},
		{"size over range", func(p *builder.TextPlaqueParams) { p.Size = 101 }, "size"},
		{"extrude height zero", func(p *builder.TextPlaqueParams) { p.ExtrudeHeight = 0 }, "extrude_height"},
		{"base thickness negative", func(p *builder.TextPlaqueParams) { p.BaseThickness = -1 }, "base_thickness"},
		{"negative width factor", func(p *builder.TextPlaqueParams) { p.BaseWidthFactor = -0.1 }, "base_width_factor"},
	}

	b := builder.NewTextPlaqueBuilder(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := builder.DefaultTextPlaqueParams()
			tt.mutate(&p)

			asm, err := b.Build(p)
			require.Error(t, err)
			assert.Nil(t, asm)
			assert.True(t, errors.Is(err, builder.ErrInvalidParameter))

			var ipe *builder.InvalidParameterError
			require.True(t, errors.As(err, &ipe))
			assert.Equal(t, tt.param, ipe.Param)
		})
	}
}

func TestDefaultTextPlaqueParamsAreValid(t *testing.T) {
	assert.NoError(t, builder.DefaultTextPlaqueParams().Validate())
}
