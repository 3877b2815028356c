package builder

import (
	"unicode/utf8"

	"github.com/chazu/forma/pkg/csg"
	"github.com/chazu/forma/pkg/typeface"
)

// Declared valid ranges for text plaque parameters, matching the input
// widgets of the original generator (sliders 1..100).
var (
	SizeRange          = Range{Min: 1, Max: 100}
	ExtrudeHeightRange = Range{Min: 1, Max: 100}
	BaseThicknessRange = Range{Min: 1, Max: 100}
)

// DefaultBaseWidthFactor is the heuristic scale relating glyph size and
// character count to base width. It deliberately does not measure real
// glyph metrics: text may overhang or underhang the base for unusual
// fonts or characters, and that is accepted behavior. Changing the factor
// changes visible output for every existing input, so it is a named,
// overridable field rather than a buried literal.
const DefaultBaseWidthFactor = 0.6

// TextPlaqueParams is the immutable parameter set for a text plaque: an
// extruded line of text unioned with a rectangular base beneath it.
type TextPlaqueParams struct {
	Text          string
	Font          string  // name resolved by the typography capability
	Size          float64 // glyph size, mm
	ExtrudeHeight float64 // text extrusion depth, mm
	BaseThickness float64 // base slab height, mm

	BaseWidthFactor float64 // base width heuristic, 0 means DefaultBaseWidthFactor
}

// DefaultTextPlaqueParams mirrors the original generator's form defaults.
func DefaultTextPlaqueParams() TextPlaqueParams {
	return TextPlaqueParams{
		Text:            "Hello World",
		Font:            "Go Regular",
		Size:            10,
		ExtrudeHeight:   5,
		BaseThickness:   2,
		BaseWidthFactor: DefaultBaseWidthFactor,
	}
}

// Validate checks every field against its declared range. Font resolution
// is checked separately by the builder since it needs the registry.
func (p TextPlaqueParams) Validate() error {
	if p.Text == "" {
		return &InvalidParameterError{Param: "text", Reason: "must not be empty"}
	}
	if err := SizeRange.check("size", p.Size); err != nil {
		return err
	}
	if err := ExtrudeHeightRange.check("extrude_height", p.ExtrudeHeight); err != nil {
		return err
	}
	if err := BaseThicknessRange.check("base_thickness", p.BaseThickness); err != nil {
		return err
	}
	if p.BaseWidthFactor < 0 {
		return &InvalidParameterError{
			Param:  "base_width_factor",
			Value:  p.BaseWidthFactor,
			Reason: "must not be negative",
		}
	}
	return nil
}

// TextPlaqueBuilder builds text plaque assemblies. It holds the font
// registry so unresolvable fonts fail at build time, before any geometry
// is constructed, instead of falling through to a kernel default.
type TextPlaqueBuilder struct {
	fonts *typeface.Registry
}

// NewTextPlaqueBuilder returns a builder resolving fonts through the
// given registry. A nil registry means the default embedded faces.
func NewTextPlaqueBuilder(fonts *typeface.Registry) *TextPlaqueBuilder {
	if fonts == nil {
		fonts = typeface.Default()
	}
	return &TextPlaqueBuilder{fonts: fonts}
}

// Build constructs the CSG tree for a text plaque: the extruded text leaf
// (Z in [0, ExtrudeHeight]) unioned with a base box translated down so it
// occupies Z in [-BaseThickness, 0] directly beneath the text.
//
// The base width is Size * runeCount(Text) * BaseWidthFactor; rune count
// matches the original generator's character count for multibyte text.
func (b *TextPlaqueBuilder) Build(p TextPlaqueParams) (*csg.Assembly, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if _, err := b.fonts.Resolve(p.Font); err != nil {
		return nil, err
	}

	factor := p.BaseWidthFactor
	if factor == 0 {
		factor = DefaultBaseWidthFactor
	}

	text := &csg.Leaf{
		Prim: csg.TextExtrusion{
			Text:   p.Text,
			Font:   p.Font,
			Size:   p.Size,
			Height: p.ExtrudeHeight,
		},
	}

	baseWidth := p.Size * float64(utf8.RuneCountInString(p.Text)) * factor
	base := &csg.Leaf{
		Prim: csg.Box{X: baseWidth, Y: p.Size, Z: p.BaseThickness},
		Transform: csg.Transform{
			// Box is center-origin: shift into the +X/+Y quadrant under
			// the text outline, and down so the top face sits at Z=0.
			Translate: csg.Vec3{X: baseWidth / 2, Y: p.Size / 2, Z: -p.BaseThickness / 2},
		},
	}

	return csg.NewAssembly("text-plaque", csg.Union(text, base), 1), nil
}
