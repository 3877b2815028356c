package csg

// UnitsMillimeters is the only unit system Forma assemblies use.
const UnitsMillimeters = "mm"

// Assembly is a complete build result: one root CSG tree plus metadata.
// Created fresh per generation request, never mutated after construction.
type Assembly struct {
	Name     string `json:"name,omitempty"`
	Root     Node   `json:"root"`
	Units    string `json:"units"`
	Symmetry int    `json:"symmetry"` // N-fold rotational symmetry about Z, 1 = none
}

// NewAssembly wraps a root node with standard metadata.
func NewAssembly(name string, root Node, symmetry int) *Assembly {
	if symmetry < 1 {
		symmetry = 1
	}
	return &Assembly{
		Name:     name,
		Root:     root,
		Units:    UnitsMillimeters,
		Symmetry: symmetry,
	}
}
