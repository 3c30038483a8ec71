package goniometer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/beamtools/diffgeom/geom"
)

// Dict is the flat key-value form of a goniometer model.  A multi-axis
// model is recognized by the simultaneous presence of the "axes", "angles",
// and "scan_axis" keys; any other combination is read as single-axis.
// There is no explicit variant tag; the key set is the discriminator.
type Dict = map[string]interface{}

// ToDict returns the flat key-value form of a single-axis goniometer.
func (g *Goniometer) ToDict() Dict {
	return Dict{
		"rotation_axis":    append([]float64(nil), g.axis[:]...),
		"fixed_rotation":   append([]float64(nil), g.fixed[:]...),
		"setting_rotation": append([]float64(nil), g.setting[:]...)}
}

// ToDict returns the flat key-value form of a multi-axis goniometer.  The
// derived single-axis keys are included alongside the chain state.
func (g *MultiAxisGoniometer) ToDict() Dict {
	axes := make([][]float64, len(g.axes))
	for i, a := range g.axes {
		v := a
		axes[i] = v[:]
	}
	d := g.Goniometer.ToDict()
	d["axes"] = axes
	d["angles"] = append([]float64(nil), g.angles...)
	d["names"] = append([]string(nil), g.names...)
	d["scan_axis"] = g.scanAxis
	return d
}

// FromDict reconstructs a model from its flat key-value form, optionally
// merged over a template: template entries are base defaults, entries of d
// override them.  A nil d with a nil template yields a nil model.
func FromDict(d, template Dict) (Model, error) {
	if d == nil && template == nil {
		return nil, nil
	}
	joint := Dict{}
	for k, v := range template {
		joint[k] = v
	}
	for k, v := range d {
		joint[k] = v
	}
	_, hasAxes := joint["axes"]
	_, hasAngles := joint["angles"]
	_, hasScan := joint["scan_axis"]
	if hasAxes && hasAngles && hasScan {
		return multiAxisFromDict(joint)
	}
	return singleAxisFromDict(joint)
}

func singleAxisFromDict(d Dict) (*Goniometer, error) {
	axis, err := vec3Value(d, "rotation_axis")
	if err != nil {
		return nil, err
	}
	fixed, err := mat3Value(d, "fixed_rotation")
	if err != nil {
		return nil, err
	}
	setting, err := mat3Value(d, "setting_rotation")
	if err != nil {
		return nil, err
	}
	return NewGoniometerFull(axis, fixed, setting), nil
}

func multiAxisFromDict(d Dict) (*MultiAxisGoniometer, error) {
	rawAxes, err := floatRows(d["axes"])
	if err != nil {
		return nil, fmt.Errorf("%w: axes: %v", ErrDimensionMismatch, err)
	}
	axes := make([]geom.Vec3, len(rawAxes))
	for i, row := range rawAxes {
		if len(row) != 3 {
			return nil, fmt.Errorf("%w: axes[%d] has %d components", ErrDimensionMismatch, i, len(row))
		}
		copy(axes[i][:], row)
	}
	angles, err := floatSlice(d["angles"])
	if err != nil {
		return nil, fmt.Errorf("%w: angles: %v", ErrDimensionMismatch, err)
	}
	scanAxis, err := intValue(d["scan_axis"])
	if err != nil {
		return nil, fmt.Errorf("%w: scan_axis: %v", ErrDimensionMismatch, err)
	}
	var names []string
	if raw, ok := d["names"]; ok {
		names, err = stringSlice(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: names: %v", ErrDimensionMismatch, err)
		}
	} else {
		names = make([]string, len(axes))
	}
	return NewMultiAxis(axes, angles, names, scanAxis)
}

func vec3Value(d Dict, key string) (geom.Vec3, error) {
	var v geom.Vec3
	raw, ok := d[key]
	if !ok {
		return v, fmt.Errorf("%w: missing %q", ErrDimensionMismatch, key)
	}
	fs, err := floatSlice(raw)
	if err != nil {
		return v, fmt.Errorf("%w: %s: %v", ErrDimensionMismatch, key, err)
	}
	if len(fs) != 3 {
		return v, fmt.Errorf("%w: %s has %d components, want 3", ErrDimensionMismatch, key, len(fs))
	}
	copy(v[:], fs)
	return v, nil
}

func mat3Value(d Dict, key string) (geom.Mat3, error) {
	raw, ok := d[key]
	if !ok {
		return geom.Identity(), nil
	}
	fs, err := floatSlice(raw)
	if err != nil {
		return geom.Mat3{}, fmt.Errorf("%w: %s: %v", ErrDimensionMismatch, key, err)
	}
	if len(fs) != 9 {
		return geom.Mat3{}, fmt.Errorf("%w: %s has %d elements, want 9", ErrDimensionMismatch, key, len(fs))
	}
	var m geom.Mat3
	copy(m[:], fs)
	return m, nil
}

// The coercion helpers below accept both natively typed values (from
// ToDict) and the loosely typed values produced by YAML decoding.

func floatValue(v interface{}) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	default:
		return 0, fmt.Errorf("cannot read %T as float", v)
	}
}

func intValue(v interface{}) (int, error) {
	switch t := v.(type) {
	case int:
		return t, nil
	case int64:
		return int(t), nil
	case float64:
		return int(t), nil
	default:
		return 0, fmt.Errorf("cannot read %T as int", v)
	}
}

func floatSlice(v interface{}) ([]float64, error) {
	switch t := v.(type) {
	case []float64:
		return t, nil
	case []interface{}:
		out := make([]float64, len(t))
		for i, e := range t {
			f, err := floatValue(e)
			if err != nil {
				return nil, err
			}
			out[i] = f
		}
		return out, nil
	default:
		return nil, fmt.Errorf("cannot read %T as float sequence", v)
	}
}

func floatRows(v interface{}) ([][]float64, error) {
	switch t := v.(type) {
	case [][]float64:
		return t, nil
	case []interface{}:
		out := make([][]float64, len(t))
		for i, e := range t {
			row, err := floatSlice(e)
			if err != nil {
				return nil, err
			}
			out[i] = row
		}
		return out, nil
	default:
		return nil, fmt.Errorf("cannot read %T as sequence of float rows", v)
	}
}

func stringSlice(v interface{}) ([]string, error) {
	switch t := v.(type) {
	case []string:
		return t, nil
	case []interface{}:
		out := make([]string, len(t))
		for i, e := range t {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("cannot read %T as string", e)
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("cannot read %T as string sequence", v)
	}
}

// LoadDict reads a YAML file holding the flat key-value form of a model.
func LoadDict(path string) (Dict, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d := Dict{}
	err = yaml.NewDecoder(f).Decode(&d)
	return d, err
}

// SaveDict writes the flat key-value form of a model to a YAML file.
func SaveDict(path string, d Dict) error {
	b, err := yaml.Marshal(d)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
