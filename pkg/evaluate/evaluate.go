// Package evaluate walks a CSG tree and produces a single solid (and
// optionally a triangle mesh) using a geometry kernel. The evaluator is
// read-only and never mutates the assembly.
package evaluate

import (
	"errors"
	"fmt"

	"github.com/chazu/forma/pkg/csg"
	"github.com/chazu/forma/pkg/kernel"
	"github.com/chazu/forma/pkg/typeface"
)

// KernelError reports a failure inside the geometry kernel, naming the
// evaluation stage that failed. It is fatal to the current request: the
// failure is deterministic for the given input, so the core never retries.
type KernelError struct {
	Stage string // "box", "cylinder", "text", "combine", "mesh"
	Err   error
}

func (e *KernelError) Error() string {
	return fmt.Sprintf("kernel %s stage failed: %v", e.Stage, e.Err)
}

func (e *KernelError) Unwrap() error { return e.Err }

// Solidify evaluates the assembly's CSG tree bottom-up against the kernel
// and returns the root solid. Structural validation runs first; a tree
// with error-severity findings is rejected before any kernel call.
func Solidify(a *csg.Assembly, k kernel.Kernel) (kernel.Solid, error) {
	for _, ve := range csg.Validate(a) {
		if ve.Severity == csg.SeverityError {
			return nil, fmt.Errorf("evaluate: invalid assembly: %w", ve)
		}
	}
	return walk(a.Root, k)
}

// Mesh evaluates the assembly and triangulates the result. The mesh
// carries the assembly name for artifact labeling.
func Mesh(a *csg.Assembly, k kernel.Kernel) (*kernel.Mesh, error) {
	solid, err := Solidify(a, k)
	if err != nil {
		return nil, err
	}
	m, err := k.ToMesh(solid)
	if err != nil {
		return nil, &KernelError{Stage: "mesh", Err: err}
	}
	m.Name = a.Name
	return m, nil
}

// walk recursively evaluates a node into a kernel solid.
func walk(n csg.Node, k kernel.Kernel) (kernel.Solid, error) {
	switch v := n.(type) {
	case *csg.Leaf:
		return evalLeaf(v, k)

	case *csg.Combine:
		left, err := walk(v.Left, k)
		if err != nil {
			return nil, err
		}
		right, err := walk(v.Right, k)
		if err != nil {
			return nil, err
		}
		switch v.Op {
		case csg.OpUnion:
			return k.Union(left, right), nil
		case csg.OpDifference:
			return k.Difference(left, right), nil
		case csg.OpIntersection:
			return k.Intersection(left, right), nil
		default:
			return nil, &KernelError{Stage: "combine", Err: fmt.Errorf("unknown operator %v", v.Op)}
		}

	default:
		return nil, fmt.Errorf("evaluate: unknown node type %T", n)
	}
}

// evalLeaf constructs a primitive solid and applies its placement:
// translation in the primitive's local frame first, then rotation about
// the global origin.
func evalLeaf(l *csg.Leaf, k kernel.Kernel) (kernel.Solid, error) {
	var (
		solid kernel.Solid
		err   error
		stage string
	)

	switch p := l.Prim.(type) {
	case csg.Box:
		stage = "box"
		solid, err = k.Box(p.X, p.Y, p.Z)
	case csg.Cylinder:
		stage = "cylinder"
		solid, err = k.Cylinder(p.Height, p.Radius)
	case csg.TextExtrusion:
		stage = "text"
		solid, err = k.Text(p.Text, p.Font, p.Size, p.Height)
	default:
		return nil, fmt.Errorf("evaluate: unsupported primitive type %T", l.Prim)
	}
	if err != nil {
		// Font resolution failures keep their own identity; everything
		// else is a kernel evaluation failure.
		if errors.Is(err, typeface.ErrFontNotFound) {
			return nil, err
		}
		return nil, &KernelError{Stage: stage, Err: err}
	}

	t := l.Transform
	if !t.Translate.IsZero() {
		solid = k.Translate(solid, t.Translate.X, t.Translate.Y, t.Translate.Z)
	}
	if !t.Rotate.IsZero() {
		solid = k.Rotate(solid, t.Rotate.X, t.Rotate.Y, t.Rotate.Z)
	}
	return solid, nil
}
