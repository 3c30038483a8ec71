package goniometer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beamtools/diffgeom/geom"
	"github.com/beamtools/diffgeom/goniometer"
)

const tol = 1e-9

// phiChiOmega is the three-axis chain of the NXmx reference example:
// phi and omega along +x, chi along -z, omega scanned.
func phiChiOmega(t *testing.T) *goniometer.MultiAxisGoniometer {
	t.Helper()
	g, err := goniometer.NewMultiAxis(
		[]geom.Vec3{{1, 0, 0}, {0, 0, -1}, {1, 0, 0}},
		[]float64{0, 0, 0},
		[]string{"phi", "chi", "omega"},
		2)
	require.NoError(t, err)
	return g
}

// TestNewMultiAxisLengthInvariant verifies that every length mismatch at
// construction is rejected.
func TestNewMultiAxisLengthInvariant(t *testing.T) {
	axes := []geom.Vec3{{1, 0, 0}, {0, 1, 0}}

	_, err := goniometer.NewMultiAxis(axes, []float64{0}, []string{"a", "b"}, 0)
	assert.ErrorIs(t, err, goniometer.ErrDimensionMismatch)

	_, err = goniometer.NewMultiAxis(axes, []float64{0, 0}, []string{"a"}, 0)
	assert.ErrorIs(t, err, goniometer.ErrDimensionMismatch)

	_, err = goniometer.NewMultiAxis(nil, nil, nil, 0)
	assert.ErrorIs(t, err, goniometer.ErrDimensionMismatch)

	_, err = goniometer.NewMultiAxis(axes, []float64{0, 0}, []string{"a", "b"}, 2)
	assert.ErrorIs(t, err, goniometer.ErrDimensionMismatch)

	_, err = goniometer.NewMultiAxis(axes, []float64{0, 0}, []string{"a", "b"}, -1)
	assert.ErrorIs(t, err, goniometer.ErrDimensionMismatch)
}

// TestAccessorsReturnCopies verifies a caller cannot mutate model state
// through an accessor's return value.
func TestAccessorsReturnCopies(t *testing.T) {
	g := phiChiOmega(t)
	g.Angles()[1] = 45
	assert.Equal(t, []float64{0, 0, 0}, g.Angles())
	g.Axes()[0] = geom.Vec3{0, 0, 9}
	assert.Equal(t, geom.Vec3{1, 0, 0}, g.Axes()[0])
}

// TestDerivedSingleAxisView verifies the embedded single-axis view of a
// chain at zero angles: the scan axis itself, with identity corrections.
func TestDerivedSingleAxisView(t *testing.T) {
	g := phiChiOmega(t)
	assert.Equal(t, geom.Vec3{1, 0, 0}, g.RotationAxisDatum())
	assert.True(t, g.RotationAxis().ApproxEqual(geom.Vec3{1, 0, 0}, tol))
	assert.True(t, g.FixedRotation().ApproxEqual(geom.Identity(), tol))
	assert.True(t, g.SettingRotation().ApproxEqual(geom.Identity(), tol))
}

// TestDerivedSettingRotation verifies axes outside the scan axis compose
// into the setting rotation and reorient the effective rotation axis.
func TestDerivedSettingRotation(t *testing.T) {
	// phi along +x scanned, omega along +z holding 90 degrees
	g, err := goniometer.NewMultiAxis(
		[]geom.Vec3{{1, 0, 0}, {0, 0, 1}},
		[]float64{0, 90},
		[]string{"phi", "omega"},
		0)
	require.NoError(t, err)

	want := geom.RotationAboutAxis(geom.Vec3{0, 0, 1}, 90)
	assert.True(t, g.SettingRotation().ApproxEqual(want, tol))
	assert.True(t, g.FixedRotation().ApproxEqual(geom.Identity(), tol))
	// the effective axis is the datum carried through omega's setting
	assert.True(t, g.RotationAxis().ApproxEqual(geom.Vec3{0, 1, 0}, tol), "got %v", g.RotationAxis())
}

// TestDerivedFixedRotation verifies axes inside the scan axis compose into
// the fixed rotation.
func TestDerivedFixedRotation(t *testing.T) {
	g, err := goniometer.NewMultiAxis(
		[]geom.Vec3{{0, 1, 0}, {1, 0, 0}},
		[]float64{30, 0},
		[]string{"phi", "omega"},
		1)
	require.NoError(t, err)

	want := geom.RotationAboutAxis(geom.Vec3{0, 1, 0}, 30)
	assert.True(t, g.FixedRotation().ApproxEqual(want, tol))
	assert.True(t, g.SettingRotation().ApproxEqual(geom.Identity(), tol))
}

// TestSetAnglesRecomputesDerivedState verifies mutation refreshes the
// single-axis view.
func TestSetAnglesRecomputesDerivedState(t *testing.T) {
	g, err := goniometer.NewMultiAxis(
		[]geom.Vec3{{1, 0, 0}, {0, 0, 1}},
		[]float64{0, 0},
		[]string{"phi", "omega"},
		0)
	require.NoError(t, err)
	assert.True(t, g.RotationAxis().ApproxEqual(geom.Vec3{1, 0, 0}, tol))

	require.NoError(t, g.SetAngles([]float64{0, 90}))
	assert.True(t, g.RotationAxis().ApproxEqual(geom.Vec3{0, 1, 0}, tol))
}

// TestMutatorsRejectLengthMismatch verifies every sequence mutator checks
// against the current axis count.
func TestMutatorsRejectLengthMismatch(t *testing.T) {
	g := phiChiOmega(t)
	assert.ErrorIs(t, g.SetAxes([]geom.Vec3{{1, 0, 0}}), goniometer.ErrDimensionMismatch)
	assert.ErrorIs(t, g.SetAngles([]float64{1, 2, 3, 4}), goniometer.ErrDimensionMismatch)
	assert.ErrorIs(t, g.SetNames([]string{"only"}), goniometer.ErrDimensionMismatch)
	// state untouched after rejected mutation
	assert.Equal(t, []string{"phi", "chi", "omega"}, g.Names())
}

// TestSingleAxisMutators verifies the single-axis accessor/mutator pairs.
func TestSingleAxisMutators(t *testing.T) {
	g := goniometer.NewGoniometer(geom.Vec3{1, 0, 0}, geom.Identity())
	g.SetRotationAxisDatum(geom.Vec3{0, 1, 0})
	assert.Equal(t, geom.Vec3{0, 1, 0}, g.RotationAxisDatum())

	m := geom.RotationAboutAxis(geom.Vec3{0, 0, 1}, 90)
	g.SetSettingRotation(m)
	assert.True(t, g.RotationAxis().ApproxEqual(geom.Vec3{-1, 0, 0}, tol), "got %v", g.RotationAxis())

	g.SetFixedRotation(m)
	assert.True(t, g.FixedRotation().ApproxEqual(m, tol))
}

// TestEquality verifies value comparison for both variants.
func TestEquality(t *testing.T) {
	a := phiChiOmega(t)
	b := phiChiOmega(t)
	assert.True(t, a.Equal(b))

	require.NoError(t, b.SetAngles([]float64{0, 10, 0}))
	assert.False(t, a.Equal(b))

	s1 := goniometer.NewGoniometer(geom.Vec3{1, 0, 0}, geom.Identity())
	s2 := goniometer.NewGoniometer(geom.Vec3{1, 0, 0}, geom.Identity())
	assert.True(t, s1.Equal(s2))
	s2.SetRotationAxisDatum(geom.Vec3{0, 1, 0})
	assert.False(t, s1.Equal(s2))
}
