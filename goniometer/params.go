package goniometer

import (
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
)

// Params is the recognized option set for explicit goniometer
// construction.  A nil slice or pointer means the option was not supplied;
// the factory treats absence and presence differently, so the zero value
// of Params requests nothing.
//
// Axis and Axes are alternative spellings of the same concept: Axis names
// a single 3-vector, Axes a flat list of 3-vector components in
// crystal-to-base order (e.g. phi,kappa,omega for a kappa goniometer).
// Setting both is an error.
type Params struct {
	// Axis overrides the axis of a single-axis goniometer.
	Axis []float64 `koanf:"axis" yaml:"axis,omitempty"`

	// Axes overrides the axes, grouped in consecutive triples.
	Axes []float64 `koanf:"axes" yaml:"axes,omitempty"`

	// Angles overrides the multi-axis angles, in degrees.
	Angles []float64 `koanf:"angles" yaml:"angles,omitempty"`

	// Names overrides the multi-axis axis names.
	Names []string `koanf:"names" yaml:"names,omitempty"`

	// FixedRotation overrides the single-axis fixed rotation, 9 elements row-major.
	FixedRotation []float64 `koanf:"fixed_rotation" yaml:"fixed_rotation,omitempty"`

	// SettingRotation overrides the single-axis setting rotation, 9 elements row-major.
	SettingRotation []float64 `koanf:"setting_rotation" yaml:"setting_rotation,omitempty"`

	// ScanAxis sets the scan axis at fresh multi-axis construction.  It may
	// never be applied to an existing goniometer.
	ScanAxis *int `koanf:"scan_axis" yaml:"scan_axis,omitempty"`

	// InvertRotationAxis negates every axis vector.
	InvertRotationAxis bool `koanf:"invert_rotation_axis" yaml:"invert_rotation_axis,omitempty"`
}

// ParamsFromMap reads Params from a flat key-value configuration object
// with the recognized option keys.
func ParamsFromMap(m map[string]interface{}) (Params, error) {
	var p Params
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(m, "."), nil); err != nil {
		return p, err
	}
	err := k.Unmarshal("", &p)
	return p, err
}

// LoadParams reads Params from a YAML file with the recognized option keys.
func LoadParams(path string) (Params, error) {
	var p Params
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return p, err
	}
	err := k.Unmarshal("", &p)
	return p, err
}
