package csg

import (
	"fmt"
	"math"
)

// Severity indicates whether a validation finding blocks evaluation.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// ValidationError describes a structural problem found in an assembly.
// Path locates the offending node as a /-separated trail of left|right
// steps from the root.
type ValidationError struct {
	Path     string
	Message  string
	Severity Severity
}

func (e ValidationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("%s: %s (at %s)", e.Severity, e.Message, e.Path)
}

// Validate checks an assembly for structural defects: nil nodes, empty
// subtrees, non-positive or non-finite primitive dimensions. Builders
// already validate their parameter sets; this is the defense at the
// evaluation boundary for trees assembled by hand or by scripts.
func Validate(a *Assembly) []ValidationError {
	if a == nil {
		return []ValidationError{{Message: "assembly is nil", Severity: SeverityError}}
	}
	var errs []ValidationError
	if a.Root == nil {
		errs = append(errs, ValidationError{Message: "assembly has no root node", Severity: SeverityError})
		return errs
	}
	if a.Units != UnitsMillimeters {
		errs = append(errs, ValidationError{
			Message:  fmt.Sprintf("unsupported units %q", a.Units),
			Severity: SeverityWarning,
		})
	}
	if a.Symmetry < 1 {
		errs = append(errs, ValidationError{
			Message:  fmt.Sprintf("symmetry count %d, expected >= 1", a.Symmetry),
			Severity: SeverityError,
		})
	}
	errs = append(errs, validateNode(a.Root, "root")...)
	return errs
}

func validateNode(n Node, path string) []ValidationError {
	var errs []ValidationError
	switch v := n.(type) {
	case nil:
		errs = append(errs, ValidationError{Path: path, Message: "nil node", Severity: SeverityError})
	case *Leaf:
		errs = append(errs, validateLeaf(v, path)...)
	case *Combine:
		if v.Op < OpUnion || v.Op > OpIntersection {
			errs = append(errs, ValidationError{
				Path:     path,
				Message:  fmt.Sprintf("invalid operator %d", v.Op),
				Severity: SeverityError,
			})
		}
		errs = append(errs, validateNode(v.Left, path+"/left")...)
		errs = append(errs, validateNode(v.Right, path+"/right")...)
	default:
		errs = append(errs, ValidationError{
			Path:     path,
			Message:  fmt.Sprintf("unknown node type %T", n),
			Severity: SeverityError,
		})
	}
	return errs
}

func validateLeaf(l *Leaf, path string) []ValidationError {
	var errs []ValidationError

	fail := func(format string, args ...interface{}) {
		errs = append(errs, ValidationError{
			Path:     path,
			Message:  fmt.Sprintf(format, args...),
			Severity: SeverityError,
		})
	}

	switch p := l.Prim.(type) {
	case Box:
		if !positive(p.X) || !positive(p.Y) || !positive(p.Z) {
			fail("box dimensions must be positive, got %gx%gx%g", p.X, p.Y, p.Z)
		}
	case Cylinder:
		if !positive(p.Radius) {
			fail("cylinder radius must be positive, got %g", p.Radius)
		}
		if !positive(p.Height) {
			fail("cylinder height must be positive, got %g", p.Height)
		}
	case TextExtrusion:
		if p.Text == "" {
			fail("text extrusion has empty text")
		}
		if p.Font == "" {
			fail("text extrusion has empty font name")
		}
		if !positive(p.Size) {
			fail("text size must be positive, got %g", p.Size)
		}
		if !positive(p.Height) {
			fail("text extrusion height must be positive, got %g", p.Height)
		}
	case nil:
		fail("leaf has no primitive")
	default:
		fail("unknown primitive type %T", l.Prim)
	}

	for _, f := range []float64{
		l.Transform.Translate.X, l.Transform.Translate.Y, l.Transform.Translate.Z,
		l.Transform.Rotate.X, l.Transform.Rotate.Y, l.Transform.Rotate.Z,
	} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			fail("transform contains non-finite component")
			break
		}
	}

	return errs
}

func positive(f float64) bool {
	return f > 0 && !math.IsInf(f, 1)
}
