// Package goniometer builds and validates rotation models for the sample
// stages used in diffraction experiments.  A model is either a single-axis
// Goniometer (one rotation axis plus static fixed and setting corrections)
// or a MultiAxisGoniometer (a serial chain of axes, ordered from the axis
// nearest the crystal to the axis nearest the base, with one designated
// scan axis).  Format adapters construct models through the factory entry
// points in this package and query them through the accessors here;
// downstream geometry code never sees the instrument header they came from.
package goniometer

import (
	"fmt"

	"github.com/beamtools/diffgeom/geom"
)

const tol = 1e-9

// Model is a constructed goniometer, either a single-axis *Goniometer
// or a *MultiAxisGoniometer.
type Model interface {
	// RotationAxis returns the effective rotation axis, with the setting
	// rotation applied.
	RotationAxis() geom.Vec3

	// ToDict returns the flat key-value form of the model.
	ToDict() Dict
}

// Goniometer is a single-axis rotation model: one physical rotation axis
// plus a fixed rotation applied between the crystal and the axis, and a
// setting rotation applied between the axis and the lab frame.
type Goniometer struct {
	axis    geom.Vec3
	fixed   geom.Mat3
	setting geom.Mat3
}

// NewGoniometer returns a single-axis goniometer with the given rotation
// axis and fixed rotation, and an identity setting rotation.
func NewGoniometer(axis geom.Vec3, fixed geom.Mat3) *Goniometer {
	return &Goniometer{axis: axis, fixed: fixed, setting: geom.Identity()}
}

// NewGoniometerFull returns a single-axis goniometer with all three
// elements supplied.
func NewGoniometerFull(axis geom.Vec3, fixed, setting geom.Mat3) *Goniometer {
	return &Goniometer{axis: axis, fixed: fixed, setting: setting}
}

// RotationAxisDatum returns the rotation axis before the setting rotation
// is applied.
func (g *Goniometer) RotationAxisDatum() geom.Vec3 { return g.axis }

// RotationAxis returns the rotation axis with the setting rotation applied.
func (g *Goniometer) RotationAxis() geom.Vec3 { return g.setting.MulVec(g.axis) }

// FixedRotation returns the fixed rotation matrix.
func (g *Goniometer) FixedRotation() geom.Mat3 { return g.fixed }

// SettingRotation returns the setting rotation matrix.
func (g *Goniometer) SettingRotation() geom.Mat3 { return g.setting }

// SetRotationAxisDatum replaces the rotation axis datum.
func (g *Goniometer) SetRotationAxisDatum(axis geom.Vec3) { g.axis = axis }

// SetFixedRotation replaces the fixed rotation matrix.
func (g *Goniometer) SetFixedRotation(m geom.Mat3) { g.fixed = m }

// SetSettingRotation replaces the setting rotation matrix.
func (g *Goniometer) SetSettingRotation(m geom.Mat3) { g.setting = m }

// Equal reports whether g and o describe the same single-axis model to
// within a small numerical tolerance.
func (g *Goniometer) Equal(o *Goniometer) bool {
	return g.axis.ApproxEqual(o.axis, tol) &&
		g.fixed.ApproxEqual(o.fixed, tol) &&
		g.setting.ApproxEqual(o.setting, tol)
}

// MultiAxisGoniometer is a serial chain of rotation axes.  Index 0 is the
// axis closest to the crystal, index N-1 the outermost (base) axis.  The
// single-axis view of the chain is maintained as derived state: the fixed
// rotation is the composition of the axes inside the scan axis at their
// current angles, the setting rotation the composition of the axes outside
// it, and the rotation axis datum is the scan axis vector itself.
type MultiAxisGoniometer struct {
	Goniometer

	axes     []geom.Vec3
	angles   []float64
	names    []string
	scanAxis int
}

// NewMultiAxis returns a multi-axis goniometer.  axes, angles, and names
// must have equal nonzero length and scanAxis must index into them.
func NewMultiAxis(axes []geom.Vec3, angles []float64, names []string, scanAxis int) (*MultiAxisGoniometer, error) {
	if len(axes) == 0 {
		return nil, fmt.Errorf("%w: need at least one axis", ErrDimensionMismatch)
	}
	if len(angles) != len(axes) {
		return nil, fmt.Errorf("%w: %d angles for %d axes", ErrDimensionMismatch, len(angles), len(axes))
	}
	if len(names) != len(axes) {
		return nil, fmt.Errorf("%w: %d names for %d axes", ErrDimensionMismatch, len(names), len(axes))
	}
	if scanAxis < 0 || scanAxis >= len(axes) {
		return nil, fmt.Errorf("%w: scan axis %d out of range [0,%d)", ErrDimensionMismatch, scanAxis, len(axes))
	}
	g := &MultiAxisGoniometer{
		axes:     append([]geom.Vec3(nil), axes...),
		angles:   append([]float64(nil), angles...),
		names:    append([]string(nil), names...),
		scanAxis: scanAxis}
	g.recompute()
	return g, nil
}

// recompute refreshes the embedded single-axis view from the chain state.
func (g *MultiAxisGoniometer) recompute() {
	fixed := geom.Identity()
	for i := 0; i < g.scanAxis; i++ {
		fixed = geom.RotationAboutAxis(g.axes[i], g.angles[i]).Mul(fixed)
	}
	setting := geom.Identity()
	for i := g.scanAxis + 1; i < len(g.axes); i++ {
		setting = geom.RotationAboutAxis(g.axes[i], g.angles[i]).Mul(setting)
	}
	g.axis = g.axes[g.scanAxis]
	g.fixed = fixed
	g.setting = setting
}

// Axes returns a copy of the axis vectors in crystal-to-base order.
func (g *MultiAxisGoniometer) Axes() []geom.Vec3 {
	return append([]geom.Vec3(nil), g.axes...)
}

// Angles returns a copy of the current axis angles in degrees.
func (g *MultiAxisGoniometer) Angles() []float64 {
	return append([]float64(nil), g.angles...)
}

// Names returns a copy of the axis names.
func (g *MultiAxisGoniometer) Names() []string {
	return append([]string(nil), g.names...)
}

// ScanAxis returns the index of the scanned axis.
func (g *MultiAxisGoniometer) ScanAxis() int { return g.scanAxis }

// SetAxes replaces the axis vectors.  The length must match the current
// axis count.
func (g *MultiAxisGoniometer) SetAxes(axes []geom.Vec3) error {
	if len(axes) != len(g.axes) {
		return fmt.Errorf("%w: %d axes for current %d", ErrDimensionMismatch, len(axes), len(g.axes))
	}
	g.axes = append([]geom.Vec3(nil), axes...)
	g.recompute()
	return nil
}

// SetAngles replaces the axis angles.  The length must match the current
// axis count.
func (g *MultiAxisGoniometer) SetAngles(angles []float64) error {
	if len(angles) != len(g.axes) {
		return fmt.Errorf("%w: %d angles for current %d axes", ErrDimensionMismatch, len(angles), len(g.axes))
	}
	g.angles = append([]float64(nil), angles...)
	g.recompute()
	return nil
}

// SetNames replaces the axis names.  The length must match the current
// axis count.
func (g *MultiAxisGoniometer) SetNames(names []string) error {
	if len(names) != len(g.axes) {
		return fmt.Errorf("%w: %d names for current %d axes", ErrDimensionMismatch, len(names), len(g.axes))
	}
	g.names = append([]string(nil), names...)
	return nil
}

// Equal reports whether g and o describe the same multi-axis model to
// within a small numerical tolerance.
func (g *MultiAxisGoniometer) Equal(o *MultiAxisGoniometer) bool {
	if len(g.axes) != len(o.axes) || g.scanAxis != o.scanAxis {
		return false
	}
	for i := range g.axes {
		if !g.axes[i].ApproxEqual(o.axes[i], tol) {
			return false
		}
		if d := g.angles[i] - o.angles[i]; d > tol || d < -tol {
			return false
		}
		if g.names[i] != o.names[i] {
			return false
		}
	}
	return true
}
