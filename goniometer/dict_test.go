package goniometer_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beamtools/diffgeom/geom"
	"github.com/beamtools/diffgeom/goniometer"
)

// TestMultiAxisDictRoundTrip verifies serializing then deserializing a
// multi-axis model reproduces an equal model.
func TestMultiAxisDictRoundTrip(t *testing.T) {
	g, err := goniometer.Kappa(50, 30, -10, 75, "-z", "phi")
	require.NoError(t, err)

	m, err := goniometer.FromDict(g.ToDict(), nil)
	require.NoError(t, err)
	back, ok := m.(*goniometer.MultiAxisGoniometer)
	require.True(t, ok, "round trip lost the multi-axis variant, got %T", m)
	assert.True(t, g.Equal(back))
	assert.Equal(t, g.ScanAxis(), back.ScanAxis())
}

// TestSingleAxisDictRoundTrip verifies the single-axis form never carries
// the multi-axis discriminator keys.
func TestSingleAxisDictRoundTrip(t *testing.T) {
	fixed := geom.RotationAboutAxis(geom.Vec3{0, 1, 0}, 12)
	g := goniometer.NewGoniometerFull(geom.Vec3{0, 0, 1}, fixed, geom.Identity())

	d := g.ToDict()
	assert.NotContains(t, d, "axes")
	assert.NotContains(t, d, "angles")
	assert.NotContains(t, d, "scan_axis")

	m, err := goniometer.FromDict(d, nil)
	require.NoError(t, err)
	back, ok := m.(*goniometer.Goniometer)
	require.True(t, ok, "got %T", m)
	assert.True(t, g.Equal(back))
}

// TestDictDiscriminatorNeedsAllThreeKeys verifies the structural
// discriminator: any proper subset of {axes, angles, scan_axis} reads as
// single-axis.
func TestDictDiscriminatorNeedsAllThreeKeys(t *testing.T) {
	d := goniometer.Dict{
		"rotation_axis": []float64{1, 0, 0},
		"axes":          [][]float64{{1, 0, 0}},
		"angles":        []float64{0},
		// no scan_axis
	}
	m, err := goniometer.FromDict(d, nil)
	require.NoError(t, err)
	_, ok := m.(*goniometer.Goniometer)
	assert.True(t, ok, "got %T", m)
}

// TestFromDictTemplateMerge verifies template entries are defaults and
// explicit entries override them.
func TestFromDictTemplateMerge(t *testing.T) {
	template := goniometer.SingleAxis().ToDict()
	d := goniometer.Dict{"rotation_axis": []float64{0, 1, 0}}

	m, err := goniometer.FromDict(d, template)
	require.NoError(t, err)
	g := m.(*goniometer.Goniometer)
	assert.Equal(t, geom.Vec3{0, 1, 0}, g.RotationAxisDatum())
	assert.Equal(t, geom.Identity(), g.FixedRotation())
}

// TestFromDictNil verifies nothing in, nothing out.
func TestFromDictNil(t *testing.T) {
	m, err := goniometer.FromDict(nil, nil)
	assert.NoError(t, err)
	assert.Nil(t, m)

	// a template alone is enough to build from
	m, err = goniometer.FromDict(nil, goniometer.SingleAxis().ToDict())
	require.NoError(t, err)
	assert.NotNil(t, m)
}

// TestFromDictValidation verifies malformed dict entries are rejected
// rather than silently defaulted.
func TestFromDictValidation(t *testing.T) {
	_, err := goniometer.FromDict(goniometer.Dict{}, nil)
	assert.ErrorIs(t, err, goniometer.ErrDimensionMismatch, "missing rotation_axis")

	_, err = goniometer.FromDict(goniometer.Dict{"rotation_axis": []float64{1, 0}}, nil)
	assert.ErrorIs(t, err, goniometer.ErrDimensionMismatch)

	_, err = goniometer.FromDict(goniometer.Dict{
		"axes":      [][]float64{{1, 0, 0}, {0, 1, 0}},
		"angles":    []float64{0},
		"scan_axis": 0,
	}, nil)
	assert.ErrorIs(t, err, goniometer.ErrDimensionMismatch)
}

// TestDictYAMLRoundTrip verifies a model survives the YAML file form,
// including the loosely typed values YAML decoding produces.
func TestDictYAMLRoundTrip(t *testing.T) {
	g, err := goniometer.Kappa(50, 0, 0, 0, "+y", "omega")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "gonio.yaml")
	require.NoError(t, goniometer.SaveDict(path, g.ToDict()))

	d, err := goniometer.LoadDict(path)
	require.NoError(t, err)
	m, err := goniometer.FromDict(d, nil)
	require.NoError(t, err)
	back, ok := m.(*goniometer.MultiAxisGoniometer)
	require.True(t, ok, "got %T", m)
	assert.True(t, g.Equal(back))
}
