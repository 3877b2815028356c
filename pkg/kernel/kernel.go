// Package kernel defines the abstract geometry kernel interface.
// Implementations provide solid modeling, boolean operations, and
// triangulation behind this interface, so the rest of the system never
// depends on a specific CAD library.
package kernel

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
//
// Primitive constructors return an error when the backend rejects the
// geometry (degenerate dimensions, unresolvable font). Boolean operations
// and rigid transforms never fail on valid inputs and return solids
// directly. Implementations must be safe for concurrent use or be
// externally serialized by the caller; no method retains state between
// calls.
type Kernel interface {
	// Primitives. Box and Cylinder are centered on the origin; Text is a
	// glyph-outline extrusion with its baseline at the origin occupying
	// Z in [0, height].
	Box(x, y, z float64) (Solid, error)
	Cylinder(height, radius float64) (Solid, error)
	Text(text, font string, size, height float64) (Solid, error)

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Rigid transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}
