// Package beam models the incident X-ray beam of a diffraction experiment:
// a direction and a wavelength, the minimum a format adapter needs to hand
// downstream geometry code.
package beam

import (
	"errors"
	"fmt"

	"github.com/beamtools/diffgeom/geom"
)

var (
	// ErrBadWavelength indicates a non-positive wavelength.
	ErrBadWavelength = errors.New("beam: wavelength must be positive")
	// ErrZeroDirection indicates a zero direction vector.
	ErrZeroDirection = errors.New("beam: direction must be non-zero")
)

// Beam is a monochromatic beam.  The direction points from the sample
// towards the source and is stored unit length.
type Beam struct {
	direction  geom.Vec3
	wavelength float64
}

// New returns a beam with the given direction and wavelength in Angstroms.
func New(direction geom.Vec3, wavelength float64) (*Beam, error) {
	if direction.IsZero() {
		return nil, ErrZeroDirection
	}
	if wavelength <= 0 {
		return nil, fmt.Errorf("%w, got %g", ErrBadWavelength, wavelength)
	}
	return &Beam{direction: direction.Unit(), wavelength: wavelength}, nil
}

// Simple returns a beam along the canonical sample-to-source direction
// (0, 0, 1) with the given wavelength in Angstroms.
func Simple(wavelength float64) (*Beam, error) {
	return New(geom.Vec3{0, 0, 1}, wavelength)
}

// Direction returns the unit direction from the sample towards the source.
func (b *Beam) Direction() geom.Vec3 { return b.direction }

// Wavelength returns the wavelength in Angstroms.
func (b *Beam) Wavelength() float64 { return b.wavelength }

// SetWavelength replaces the wavelength.
func (b *Beam) SetWavelength(wavelength float64) error {
	if wavelength <= 0 {
		return fmt.Errorf("%w, got %g", ErrBadWavelength, wavelength)
	}
	b.wavelength = wavelength
	return nil
}

// ToDict returns the flat key-value form of the beam.
func (b *Beam) ToDict() map[string]interface{} {
	return map[string]interface{}{
		"direction":  append([]float64(nil), b.direction[:]...),
		"wavelength": b.wavelength}
}

// FromDict reconstructs a beam from its flat key-value form.
func FromDict(d map[string]interface{}) (*Beam, error) {
	raw, ok := d["direction"]
	if !ok {
		return nil, ErrZeroDirection
	}
	fs, err := floats(raw)
	if err != nil || len(fs) != 3 {
		return nil, fmt.Errorf("%w: bad direction %v", ErrZeroDirection, raw)
	}
	w, err := floatVal(d["wavelength"])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadWavelength, err)
	}
	return New(geom.Vec3{fs[0], fs[1], fs[2]}, w)
}

func floatVal(v interface{}) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case int:
		return float64(t), nil
	default:
		return 0, fmt.Errorf("cannot read %T as float", v)
	}
}

func floats(v interface{}) ([]float64, error) {
	switch t := v.(type) {
	case []float64:
		return t, nil
	case []interface{}:
		out := make([]float64, len(t))
		for i, e := range t {
			f, err := floatVal(e)
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
