package csg

// Vec3 is a 3D vector in millimeters (or degrees, for rotations).
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns the component-wise sum of two vectors.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// IsZero reports whether all components are exactly zero.
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Op enumerates the boolean combination operators.
type Op int

const (
	OpUnion Op = iota
	OpDifference
	OpIntersection
)

func (o Op) String() string {
	switch o {
	case OpUnion:
		return "union"
	case OpDifference:
		return "difference"
	case OpIntersection:
		return "intersection"
	default:
		return "unknown"
	}
}

// Transform is a rigid-body placement for a primitive. Application order is
// fixed: the translation is applied in the primitive's local frame first,
// then the already-placed primitive is rotated about the global origin by
// the Euler angles in Rotate (degrees, applied X then Y then Z).
type Transform struct {
	Translate Vec3 `json:"translate"`
	Rotate    Vec3 `json:"rotate"`
}

// IsIdentity reports whether the transform leaves a primitive in place.
func (t Transform) IsIdentity() bool {
	return t.Translate.IsZero() && t.Rotate.IsZero()
}

// Node is a node in a CSG tree: either a *Leaf or a *Combine.
type Node interface {
	node() // marker method restricting implementations to this package
}

// Leaf is a placed primitive.
type Leaf struct {
	Prim      Primitive `json:"prim"`
	Transform Transform `json:"transform"`
}

func (*Leaf) node() {}

// Combine is a boolean combination of two subtrees.
type Combine struct {
	Op    Op   `json:"op"`
	Left  Node `json:"left"`
	Right Node `json:"right"`
}

func (*Combine) node() {}

// Union folds nodes into a left-deep union tree in argument order. The
// order is semantically irrelevant for non-overlapping solids but is kept
// deterministic so exported artifacts are reproducible byte for byte.
// Returns nil for an empty argument list.
func Union(nodes ...Node) Node {
	if len(nodes) == 0 {
		return nil
	}
	root := nodes[0]
	for _, n := range nodes[1:] {
		root = &Combine{Op: OpUnion, Left: root, Right: n}
	}
	return root
}

// Difference returns a - b.
func Difference(a, b Node) Node {
	return &Combine{Op: OpDifference, Left: a, Right: b}
}

// Intersection returns the intersection of a and b.
func Intersection(a, b Node) Node {
	return &Combine{Op: OpIntersection, Left: a, Right: b}
}

// Leaves returns all leaves of the tree in pre-order (left before right).
// This is the same order in which builders unioned them.
func Leaves(n Node) []*Leaf {
	var out []*Leaf
	var walk func(Node)
	walk = func(n Node) {
		switch v := n.(type) {
		case *Leaf:
			out = append(out, v)
		case *Combine:
			walk(v.Left)
			walk(v.Right)
		}
	}
	walk(n)
	return out
}
