package csg

// Primitive is the interface for leaf shape payloads. All primitives are
// immutable value types centered on the origin unless noted otherwise.
type Primitive interface {
	primitive() // marker method restricting implementations to this package
}

// ---------------------------------------------------------------------------
// Box
// ---------------------------------------------------------------------------

// Box is a rectangular solid centered on the origin.
type Box struct {
	X float64 `json:"x"` // width, mm
	Y float64 `json:"y"` // depth, mm
	Z float64 `json:"z"` // height, mm
}

func (Box) primitive() {}

// ---------------------------------------------------------------------------
// Cylinder
// ---------------------------------------------------------------------------

// Cylinder is a circular cylinder centered on the origin with its axis
// along Z.
type Cylinder struct {
	Radius float64 `json:"radius"` // mm
	Height float64 `json:"height"` // mm
}

func (Cylinder) primitive() {}

// ---------------------------------------------------------------------------
// TextExtrusion
// ---------------------------------------------------------------------------

// TextExtrusion is a string of glyph outlines extruded along Z. The text
// baseline starts at the origin in the XY plane and the extrusion occupies
// Z in [0, Height]. Font names are resolved by the kernel's typography
// capability at evaluation time.
type TextExtrusion struct {
	Text   string  `json:"text"`
	Font   string  `json:"font"`
	Size   float64 `json:"size"`   // glyph size, mm
	Height float64 `json:"height"` // extrusion depth, mm
}

func (TextExtrusion) primitive() {}
