// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
package sdfx

import (
	"fmt"
	"math"

	"github.com/chazu/forma/pkg/kernel"
	"github.com/chazu/forma/pkg/typeface"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// defaultMeshCells controls marching cubes tessellation resolution.
const defaultMeshCells = 200

// sdfxSolid wraps an sdf.SDF3 to implement kernel.Solid.
type sdfxSolid struct {
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() (min, max [3]float64) {
	bb := s.s.BoundingBox()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

// SdfxKernel implements kernel.Kernel using sdfx. The zero value is not
// usable; construct with New or NewWithFonts.
type SdfxKernel struct {
	fonts *typeface.Registry
	cells int
}

// New returns a new SdfxKernel with the default embedded font registry.
func New() *SdfxKernel {
	return NewWithFonts(typeface.Default())
}

// NewWithFonts returns a new SdfxKernel resolving text through the given
// registry.
func NewWithFonts(fonts *typeface.Registry) *SdfxKernel {
	return &SdfxKernel{fonts: fonts, cells: defaultMeshCells}
}

// SetMeshCells overrides the marching cubes resolution. Values below 1
// are ignored.
func (k *SdfxKernel) SetMeshCells(n int) {
	if n >= 1 {
		k.cells = n
	}
}

// unwrap extracts the underlying sdf.SDF3 from a kernel.Solid.
func unwrap(s kernel.Solid) sdf.SDF3 {
	return s.(*sdfxSolid).s
}

// wrap creates a kernel.Solid from an sdf.SDF3.
func wrap(s sdf.SDF3) kernel.Solid {
	return &sdfxSolid{s: s}
}

// Box creates a box with the given dimensions, centered on the origin.
func (k *SdfxKernel) Box(x, y, z float64) (kernel.Solid, error) {
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		return nil, fmt.Errorf("sdfx: box: %w", err)
	}
	return wrap(s), nil
}

// Cylinder creates a cylinder with the given height and radius, centered
// on the origin with its axis along Z.
func (k *SdfxKernel) Cylinder(height, radius float64) (kernel.Solid, error) {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		return nil, fmt.Errorf("sdfx: cylinder: %w", err)
	}
	return wrap(s), nil
}

// Text renders glyph outlines for text in the named font and extrudes
// them along Z. The outline's minimum corner is moved to the XY origin and
// the extrusion occupies Z in [0, height]. Size sets the rendered line
// height in millimeters.
func (k *SdfxKernel) Text(text, font string, size, height float64) (kernel.Solid, error) {
	face, err := k.fonts.Resolve(font)
	if err != nil {
		return nil, err
	}
	s2d, err := sdf.TextSDF2(face, sdf.NewText(text), size)
	if err != nil {
		return nil, fmt.Errorf("sdfx: text outline: %w", err)
	}
	// Anchor the outline at the origin so base placement heuristics work
	// in the +X/+Y quadrant.
	bb := s2d.BoundingBox()
	s2d = sdf.Transform2D(s2d, sdf.Translate2d(v2.Vec{X: -bb.Min.X, Y: -bb.Min.Y}))

	// Extrude3D is symmetric about Z=0; shift up so the solid occupies
	// [0, height].
	s3d := sdf.Extrude3D(s2d, height)
	s3d = sdf.Transform3D(s3d, sdf.Translate3d(v3.Vec{Z: height / 2}))
	return wrap(s3d), nil
}

// Union returns the union of two solids.
func (k *SdfxKernel) Union(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Union3D(unwrap(a), unwrap(b)))
}

// Difference returns the difference a - b.
func (k *SdfxKernel) Difference(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Difference3D(unwrap(a), unwrap(b)))
}

// Intersection returns the intersection of two solids.
func (k *SdfxKernel) Intersection(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Intersect3D(unwrap(a), unwrap(b)))
}

// Translate moves a solid by (x, y, z).
func (k *SdfxKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	m := sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z})
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// Rotate rotates a solid by Euler angles (degrees) around X, Y, Z axes
// through the global origin.
func (k *SdfxKernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	xRad := x * math.Pi / 180.0
	yRad := y * math.Pi / 180.0
	zRad := z * math.Pi / 180.0

	m := sdf.RotateZ(zRad).Mul(sdf.RotateY(yRad)).Mul(sdf.RotateX(xRad))
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// ToMesh converts a solid to a triangle mesh using marching cubes.
func (k *SdfxKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	sdf3 := unwrap(s)

	renderer := render.NewMarchingCubesUniform(k.cells)
	triangles := render.ToTriangles(sdf3, renderer)
	if len(triangles) == 0 {
		return nil, fmt.Errorf("sdfx: tessellation produced no triangles")
	}

	numVerts := len(triangles) * 3

	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		n := tri.Normal()
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri.V[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}, nil
}
