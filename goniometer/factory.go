package goniometer

import (
	"fmt"
	"math"

	"github.com/beamtools/diffgeom/geom"
)

// This file is the construction surface for goniometer models.  Format
// adapters should come in through one of these entry points rather than
// building models directly, so the parameter contract is enforced the same
// way regardless of whether the geometry came from an instrument header, a
// serialized dictionary, a configuration override, or a known preset.

// SingleAxis returns the canonical single-axis goniometer: rotation about
// +x with an identity fixed rotation.
func SingleAxis() *Goniometer {
	return NewGoniometer(geom.Vec3{1, 0, 0}, geom.Identity())
}

// SingleAxisReverse returns the canonical single-axis goniometer with the
// rotation direction reversed: rotation about -x.
func SingleAxisReverse() *Goniometer {
	return NewGoniometer(geom.Vec3{-1, 0, 0}, geom.Identity())
}

// KnownAxis returns a single-axis goniometer for a known rotation axis,
// assuming nothing is known about the fixed element of the rotation.
func KnownAxis(axis []float64) (*Goniometer, error) {
	if len(axis) != 3 {
		return nil, fmt.Errorf("%w: axis has %d components, want 3", ErrDimensionMismatch, len(axis))
	}
	return NewGoniometer(geom.Vec3{axis[0], axis[1], axis[2]}, geom.Identity()), nil
}

// Kappa returns the three-axis phi/kappa/omega goniometer used by
// kappa-type instruments.  The omega and phi axes lie along +x and are
// coincident when the kappa arm is at zero.  alpha is the kappa arm
// half-angle in degrees, and direction gives the plane the kappa axis is
// tilted into at omega = 0: one of "+y", "+z", "-y", "-z".  scanAxis is
// "phi" to scan phi; any other value scans omega.  All angles are degrees.
func Kappa(alpha, omega, kappa, phi float64, direction, scanAxis string) (*MultiAxisGoniometer, error) {
	omegaAxis := geom.Vec3{1, 0, 0}
	phiAxis := geom.Vec3{1, 0, 0}

	c := math.Cos(alpha * math.Pi / 180)
	s := math.Sin(alpha * math.Pi / 180)
	var kappaAxis geom.Vec3
	switch direction {
	case "+y":
		kappaAxis = geom.Vec3{c, s, 0}
	case "+z":
		kappaAxis = geom.Vec3{c, 0, s}
	case "-y":
		kappaAxis = geom.Vec3{c, -s, 0}
	case "-z":
		kappaAxis = geom.Vec3{c, 0, -s}
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidDirection, direction)
	}

	scan := 2
	if scanAxis == "phi" {
		scan = 0
	}

	return NewMultiAxis(
		[]geom.Vec3{phiAxis, kappaAxis, omegaAxis},
		[]float64{phi, kappa, omega},
		[]string{"PHI", "KAPPA", "OMEGA"},
		scan)
}

// MultiAxis returns a multi-axis goniometer for the given chain, applying
// no validation beyond the model's own length invariants.
func MultiAxis(axes []geom.Vec3, angles []float64, names []string, scanAxis int) (*MultiAxisGoniometer, error) {
	return NewMultiAxis(axes, angles, names, scanAxis)
}

// FromParams builds a model from an explicit option set, or overrides
// fields of an existing reference model.  With no reference, the option
// set routes to single-axis construction when axis/axes holds exactly 3
// values and to multi-axis construction when it holds more; if neither
// axis nor axes is supplied the result is a nil model and nil error.  With
// a reference, the reference's variant decides the route and supplied
// options are applied as overrides, each checked against the reference's
// current dimensions.
func FromParams(p Params, reference Model) (Model, error) {
	if p.Axis != nil && p.Axes != nil {
		return nil, fmt.Errorf("%w: only one of axis or axes may be set", ErrConflictingAxisSpec)
	}
	if reference != nil {
		switch ref := reference.(type) {
		case *MultiAxisGoniometer:
			return multiAxisFromParams(p, ref)
		case *Goniometer:
			return singleAxisFromParams(p, ref)
		default:
			return nil, fmt.Errorf("%w: unknown reference model %T", ErrConflictingAxisSpec, reference)
		}
	}
	if len(p.Axes) > 3 {
		return multiAxisFromParams(p, nil)
	}
	if p.Axis != nil || p.Axes != nil {
		return singleAxisFromParams(p, nil)
	}
	return nil, nil
}

func singleAxisFromParams(p Params, reference *Goniometer) (*Goniometer, error) {
	// axis and axes are alternative spellings here
	axis := p.Axis
	if axis == nil {
		axis = p.Axes
	}
	if axis != nil && len(axis) != 3 {
		return nil, fmt.Errorf("%w: single-axis goniometer requires 3 axis values, got %d", ErrDimensionMismatch, len(axis))
	}
	if p.Angles != nil {
		return nil, fmt.Errorf("%w: angles are only valid for a multi-axis goniometer", ErrConflictingAxisSpec)
	}
	if p.Names != nil {
		return nil, fmt.Errorf("%w: names are only valid for a multi-axis goniometer", ErrConflictingAxisSpec)
	}

	g := reference
	if g == nil {
		g = SingleAxis()
	}

	if axis != nil {
		g.SetRotationAxisDatum(geom.Vec3{axis[0], axis[1], axis[2]})
	}
	if p.FixedRotation != nil {
		m, err := matFromFloats(p.FixedRotation, "fixed_rotation")
		if err != nil {
			return nil, err
		}
		g.SetFixedRotation(m)
	}
	if p.SettingRotation != nil {
		m, err := matFromFloats(p.SettingRotation, "setting_rotation")
		if err != nil {
			return nil, err
		}
		g.SetSettingRotation(m)
	}
	if p.InvertRotationAxis {
		g.SetRotationAxisDatum(g.RotationAxisDatum().Neg())
	}
	return g, nil
}

func multiAxisFromParams(p Params, reference *MultiAxisGoniometer) (*MultiAxisGoniometer, error) {
	if p.FixedRotation != nil {
		return nil, fmt.Errorf("%w: fixed_rotation is only valid for a single-axis goniometer", ErrConflictingAxisSpec)
	}
	if p.SettingRotation != nil {
		return nil, fmt.Errorf("%w: setting_rotation is only valid for a single-axis goniometer", ErrConflictingAxisSpec)
	}
	var axes []geom.Vec3
	if p.Axes != nil {
		if len(p.Axes)%3 != 0 {
			return nil, fmt.Errorf("%w: number of axes values must be a multiple of 3, got %d", ErrDimensionMismatch, len(p.Axes))
		}
		axes = make([]geom.Vec3, len(p.Axes)/3)
		for i := range axes {
			axes[i] = geom.Vec3{p.Axes[3*i], p.Axes[3*i+1], p.Axes[3*i+2]}
		}
	}

	if reference == nil {
		if axes == nil {
			return nil, fmt.Errorf("%w: no axes set", ErrDimensionMismatch)
		}
		if p.InvertRotationAxis {
			for i := range axes {
				axes[i] = axes[i].Neg()
			}
		}
		angles := p.Angles
		if angles == nil {
			angles = make([]float64, len(axes))
		} else if len(angles) != len(axes) {
			return nil, fmt.Errorf("%w: %d angles for %d axes", ErrDimensionMismatch, len(angles), len(axes))
		}
		names := p.Names
		if names == nil {
			names = make([]string, len(axes))
		} else if len(names) != len(axes) {
			return nil, fmt.Errorf("%w: %d names for %d axes", ErrDimensionMismatch, len(names), len(axes))
		}
		scanAxis := 0
		if p.ScanAxis != nil {
			scanAxis = *p.ScanAxis
		}
		return NewMultiAxis(axes, angles, names, scanAxis)
	}

	// override path: every supplied field must match the reference's
	// current dimensions, and the scan axis may never change
	if p.ScanAxis != nil {
		return nil, fmt.Errorf("%w: even to its current value", ErrImmutableScanAxis)
	}
	if axes != nil {
		if err := reference.SetAxes(axes); err != nil {
			return nil, err
		}
	}
	if p.InvertRotationAxis {
		inverted := reference.Axes()
		for i := range inverted {
			inverted[i] = inverted[i].Neg()
		}
		if err := reference.SetAxes(inverted); err != nil {
			return nil, err
		}
	}
	if p.Angles != nil {
		if err := reference.SetAngles(p.Angles); err != nil {
			return nil, err
		}
	}
	if p.Names != nil {
		if err := reference.SetNames(p.Names); err != nil {
			return nil, err
		}
	}
	return reference, nil
}

func matFromFloats(fs []float64, what string) (geom.Mat3, error) {
	if len(fs) != 9 {
		return geom.Mat3{}, fmt.Errorf("%w: %s has %d elements, want 9", ErrDimensionMismatch, what, len(fs))
	}
	var m geom.Mat3
	copy(m[:], fs)
	return m, nil
}
