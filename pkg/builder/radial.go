package builder

import (
	"github.com/chazu/forma/pkg/csg"
)

// Declared valid ranges for radial frame parameters, in millimeters.
// Out-of-range values are rejected, never clamped.
var (
	ArmLengthRange     = Range{Min: 50, Max: 200}
	ArmWidthRange      = Range{Min: 5, Max: 50}
	BodySizeRange      = Range{Min: 20, Max: 150}
	MountDiameterRange = Range{Min: 5, Max: 50}
)

// Default vertical extents for the frame sub-assemblies. These used to be
// hidden literals; they are now named parameter fields so they can be
// overridden and tested in isolation.
const (
	DefaultBodyHeight  = 10.0
	DefaultArmHeight   = 6.0
	DefaultMountHeight = 8.0
)

// RadialFrameParams is the immutable parameter set for a radial frame:
// a central body with SymmetryCount arms and motor mounts arranged by
// rotational symmetry about Z. All lengths are millimeters.
type RadialFrameParams struct {
	ArmLength     float64 // arm span from body face to tip
	ArmWidth      float64
	BodySize      float64 // square body edge length
	MountDiameter float64 // motor mount outer diameter
	SymmetryCount int     // number of arms/mounts, >= 1

	BodyHeight  float64
	ArmHeight   float64
	MountHeight float64
}

// DefaultRadialFrameParams returns a buildable quadcopter-sized frame.
func DefaultRadialFrameParams() RadialFrameParams {
	return RadialFrameParams{
		ArmLength:     100,
		ArmWidth:      10,
		BodySize:      60,
		MountDiameter: 10,
		SymmetryCount: 4,
		BodyHeight:    DefaultBodyHeight,
		ArmHeight:     DefaultArmHeight,
		MountHeight:   DefaultMountHeight,
	}
}

// Validate checks every field against its declared range plus the
// cross-field rules. It reports the first failure.
func (p RadialFrameParams) Validate() error {
	if err := ArmLengthRange.check("arm_length", p.ArmLength); err != nil {
		return err
	}
	if err := ArmWidthRange.check("arm_width", p.ArmWidth); err != nil {
		return err
	}
	if err := BodySizeRange.check("body_size", p.BodySize); err != nil {
		return err
	}
	if err := MountDiameterRange.check("mount_diameter", p.MountDiameter); err != nil {
		return err
	}
	if p.SymmetryCount < 1 {
		return &InvalidParameterError{
			Param:  "symmetry_count",
			Value:  float64(p.SymmetryCount),
			Reason: "must be at least 1",
		}
	}
	// The mount disc must sit fully within the arm's span.
	if p.MountDiameter >= p.ArmLength {
		return &InvalidParameterError{
			Param:  "mount_diameter",
			Value:  p.MountDiameter,
			Reason: "must be strictly less than arm_length",
		}
	}
	for _, h := range []struct {
		name  string
		value float64
	}{
		{"body_height", p.BodyHeight},
		{"arm_height", p.ArmHeight},
		{"mount_height", p.MountHeight},
	} {
		if h.value <= 0 {
			return &InvalidParameterError{Param: h.name, Value: h.value, Reason: "must be positive"}
		}
	}
	return nil
}

// BuildRadialFrame constructs the CSG tree for a radial frame. The build
// is a pure fold over an ordered sequence of placed primitives: the body
// first, then arms in ascending index order, then mounts in ascending
// index order, each unioned left-deep so identical parameters always
// yield an identical tree.
//
// Arm i is translated along +X so its inner edge touches the body's outer
// face, centered on the body's mid-plane, then the placed arm is rotated
// by i * (360 / N) degrees about the global Z axis. Mount i is placed at
// the outer end of arm i's span and rotated by the same angle.
func BuildRadialFrame(p RadialFrameParams) (*csg.Assembly, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	n := p.SymmetryCount
	step := 360.0 / float64(n)

	nodes := make([]csg.Node, 0, 1+2*n)
	nodes = append(nodes, &csg.Leaf{
		Prim: csg.Box{X: p.BodySize, Y: p.BodySize, Z: p.BodyHeight},
	})

	for i := 0; i < n; i++ {
		nodes = append(nodes, &csg.Leaf{
			Prim: csg.Box{X: p.ArmLength, Y: p.ArmWidth, Z: p.ArmHeight},
			Transform: csg.Transform{
				Translate: csg.Vec3{X: p.BodySize/2 + p.ArmLength/2},
				Rotate:    csg.Vec3{Z: float64(i) * step},
			},
		})
	}

	for i := 0; i < n; i++ {
		nodes = append(nodes, &csg.Leaf{
			Prim: csg.Cylinder{Radius: p.MountDiameter / 2, Height: p.MountHeight},
			Transform: csg.Transform{
				Translate: csg.Vec3{X: p.BodySize/2 + p.ArmLength - p.MountDiameter/2},
				Rotate:    csg.Vec3{Z: float64(i) * step},
			},
		})
	}

	return csg.NewAssembly("radial-frame", csg.Union(nodes...), n), nil
}
