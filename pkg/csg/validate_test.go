package csg_test

import (
	"math"
	"strings"
	"testing"

	"github.com/chazu/forma/pkg/csg"
)

func validAssembly() *csg.Assembly {
	return csg.NewAssembly("t", csg.Union(
		&csg.Leaf{Prim: csg.Box{X: 10, Y: 10, Z: 10}},
		&csg.Leaf{Prim: csg.Cylinder{Radius: 2, Height: 5}},
	), 1)
}

func errorCount(errs []csg.ValidationError) int {
	n := 0
	for _, e := range errs {
		if e.Severity == csg.SeverityError {
			n++
		}
	}
	return n
}

func TestValidateCleanAssembly(t *testing.T) {
	if errs := csg.Validate(validAssembly()); len(errs) != 0 {
		t.Fatalf("unexpected findings: %v", errs)
	}
}

func TestValidateNilCases(t *testing.T) {
	if errs := csg.Validate(nil); errorCount(errs) == 0 {
		t.Fatal("nil assembly should be an error")
	}
	a := validAssembly()
	a.Root = nil
	if errs := csg.Validate(a); errorCount(errs) == 0 {
		t.Fatal("nil root should be an error")
	}
	a = validAssembly()
	a.Root = &csg.Combine{Op: csg.OpUnion, Left: a.Root, Right: nil}
	if errs := csg.Validate(a); errorCount(errs) == 0 {
		t.Fatal("nil combine child should be an error")
	}
}

func TestValidateBadPrimitives(t *testing.T) {
	tests := []struct {
		name string
		prim csg.Primitive
		want string
	}{
		{"zero box", csg.Box{X: 0, Y: 1, Z: 1}, "box"},
		{"negative cylinder radius", csg.Cylinder{Radius: -1, Height: 5}, "radius"},
		{"zero cylinder height", csg.Cylinder{Radius: 1, Height: 0}, "height"},
		{"empty text", csg.TextExtrusion{Font: "Go Regular", Size: 10, Height: 5}, "empty text"},
		{"empty font", csg.TextExtrusion{Text: "Hi", Size: 10, Height: 5}, "font"},
		{"no primitive", nil, "no primitive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := csg.NewAssembly("t", &csg.Leaf{Prim: tt.prim}, 1)
			errs := csg.Validate(a)
			if errorCount(errs) == 0 {
				t.Fatal("expected an error finding")
			}
			found := false
			for _, e := range errs {
				if strings.Contains(e.Message, tt.want) {
					found = true
				}
			}
			if !found {
				t.Fatalf("no finding mentions %q: %v", tt.want, errs)
			}
		})
	}
}

func TestValidateNonFiniteTransform(t *testing.T) {
	a := csg.NewAssembly("t", &csg.Leaf{
		Prim:      csg.Box{X: 1, Y: 1, Z: 1},
		Transform: csg.Transform{Translate: csg.Vec3{X: math.NaN()}},
	}, 1)
	if errs := csg.Validate(a); errorCount(errs) == 0 {
		t.Fatal("NaN translation should be an error")
	}
}

func TestValidateWrongUnitsIsWarning(t *testing.T) {
	a := validAssembly()
	a.Units = "in"
	errs := csg.Validate(a)
	if errorCount(errs) != 0 {
		t.Fatalf("units mismatch should not be an error: %v", errs)
	}
	if len(errs) == 0 {
		t.Fatal("units mismatch should produce a warning")
	}
}
