// Package scan models an image sequence: the image number range, the
// oscillation of the goniometer's scan axis across it, and per-image
// exposure metadata.  It is the downstream consumer of the scan axis a
// goniometer model designates.
package scan

import (
	"errors"
	"fmt"
)

var (
	// ErrImageRange indicates an empty or inverted image range.
	ErrImageRange = errors.New("scan: image range must contain at least one image")
	// ErrDimensionMismatch indicates per-image data of the wrong length.
	ErrDimensionMismatch = errors.New("scan: per-image data length does not match image range")
	// ErrIndexOutOfRange indicates an image index outside the scan.
	ErrIndexOutOfRange = errors.New("scan: image index out of range")
)

// Scan describes a sequence of images.  Image numbers are 1-based and the
// range is inclusive at both ends.
type Scan struct {
	first, last   int
	oscStart      float64 // degrees, scan axis angle at the start of the first image
	oscWidth      float64 // degrees per image; zero for a still sequence
	exposureTimes []float64
	epochs        []float64
}

// New returns a scan covering images first..last with the given
// oscillation start and per-image width in degrees.  exposureTimes and
// epochs must either be nil (defaulted to zero) or hold one entry per
// image.
func New(first, last int, oscStart, oscWidth float64, exposureTimes, epochs []float64) (*Scan, error) {
	n := last - first + 1
	if n < 1 {
		return nil, fmt.Errorf("%w: [%d, %d]", ErrImageRange, first, last)
	}
	if exposureTimes == nil {
		exposureTimes = make([]float64, n)
	} else if len(exposureTimes) != n {
		return nil, fmt.Errorf("%w: %d exposure times for %d images", ErrDimensionMismatch, len(exposureTimes), n)
	}
	if epochs == nil {
		epochs = make([]float64, n)
	} else if len(epochs) != n {
		return nil, fmt.Errorf("%w: %d epochs for %d images", ErrDimensionMismatch, len(epochs), n)
	}
	return &Scan{
		first:         first,
		last:          last,
		oscStart:      oscStart,
		oscWidth:      oscWidth,
		exposureTimes: append([]float64(nil), exposureTimes...),
		epochs:        append([]float64(nil), epochs...)}, nil
}

// Still returns a zero-oscillation scan covering n images, as used by
// XFEL and other still-shot formats.
func Still(n int) (*Scan, error) {
	return New(1, n, 0, 0, nil, nil)
}

// ImageRange returns the first and last image numbers, inclusive.
func (s *Scan) ImageRange() (first, last int) { return s.first, s.last }

// NumImages returns the number of images in the scan.
func (s *Scan) NumImages() int { return s.last - s.first + 1 }

// Oscillation returns the start angle and per-image width in degrees.
func (s *Scan) Oscillation() (start, width float64) { return s.oscStart, s.oscWidth }

// IsStill reports whether the sequence was collected without rotation.
func (s *Scan) IsStill() bool { return s.oscWidth == 0 }

// AngleFromImage returns the scan axis angle at the start of the given
// image number.
func (s *Scan) AngleFromImage(image int) (float64, error) {
	if image < s.first || image > s.last {
		return 0, fmt.Errorf("%w: %d not in [%d, %d]", ErrIndexOutOfRange, image, s.first, s.last)
	}
	return s.oscStart + float64(image-s.first)*s.oscWidth, nil
}

// ExposureTime returns the exposure time of the given image number.
func (s *Scan) ExposureTime(image int) (float64, error) {
	if image < s.first || image > s.last {
		return 0, fmt.Errorf("%w: %d not in [%d, %d]", ErrIndexOutOfRange, image, s.first, s.last)
	}
	return s.exposureTimes[image-s.first], nil
}

// Epoch returns the epoch of the given image number.
func (s *Scan) Epoch(image int) (float64, error) {
	if image < s.first || image > s.last {
		return 0, fmt.Errorf("%w: %d not in [%d, %d]", ErrIndexOutOfRange, image, s.first, s.last)
	}
	return s.epochs[image-s.first], nil
}

// ToDict returns the flat key-value form of the scan.
func (s *Scan) ToDict() map[string]interface{} {
	return map[string]interface{}{
		"image_range":    []int{s.first, s.last},
		"oscillation":    []float64{s.oscStart, s.oscWidth},
		"exposure_times": append([]float64(nil), s.exposureTimes...),
		"epochs":         append([]float64(nil), s.epochs...)}
}

// FromDict reconstructs a scan from its flat key-value form.
func FromDict(d map[string]interface{}) (*Scan, error) {
	ir, err := intPair(d["image_range"])
	if err != nil {
		return nil, fmt.Errorf("%w: image_range: %v", ErrImageRange, err)
	}
	osc, err := floatPair(d["oscillation"])
	if err != nil {
		return nil, fmt.Errorf("%w: oscillation: %v", ErrImageRange, err)
	}
	var exposure, epochs []float64
	if raw, ok := d["exposure_times"]; ok {
		if exposure, err = floatSeq(raw); err != nil {
			return nil, fmt.Errorf("%w: exposure_times: %v", ErrDimensionMismatch, err)
		}
	}
	if raw, ok := d["epochs"]; ok {
		if epochs, err = floatSeq(raw); err != nil {
			return nil, fmt.Errorf("%w: epochs: %v", ErrDimensionMismatch, err)
		}
	}
	return New(ir[0], ir[1], osc[0], osc[1], exposure, epochs)
}

func intPair(v interface{}) ([2]int, error) {
	fs, err := floatSeq(v)
	if err != nil {
		return [2]int{}, err
	}
	if len(fs) != 2 {
		return [2]int{}, fmt.Errorf("want 2 values, got %d", len(fs))
	}
	return [2]int{int(fs[0]), int(fs[1])}, nil
}

func floatPair(v interface{}) ([2]float64, error) {
	fs, err := floatSeq(v)
	if err != nil {
		return [2]float64{}, err
	}
	if len(fs) != 2 {
		return [2]float64{}, fmt.Errorf("want 2 values, got %d", len(fs))
	}
	return [2]float64{fs[0], fs[1]}, nil
}

func floatSeq(v interface{}) ([]float64, error) {
	switch t := v.(type) {
	case []float64:
		return t, nil
	case []int:
		out := make([]float64, len(t))
		for i, e := range t {
			out[i] = float64(e)
		}
		return out, nil
	case []interface{}:
		out := make([]float64, len(t))
		for i, e := range t {
			switch f := e.(type) {
			case float64:
				out[i] = f
			case int:
				out[i] = float64(f)
			default:
				return nil, fmt.Errorf("cannot read %T as float", e)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("cannot read %T as float sequence", v)
	}
}
