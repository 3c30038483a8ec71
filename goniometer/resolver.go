package goniometer

import (
	"fmt"

	"github.com/beamtools/diffgeom/geom"
)

// Root is the sentinel dependency value terminating an axis chain: an axis
// whose depends_on is Root hangs directly off the goniometer base.
const Root = "."

// EquipmentGoniometer is the equipment role identifying goniometer axes in
// an instrument header's axis table.
const EquipmentGoniometer = "goniometer"

// AxisRow is one row of an instrument header's axis table.
type AxisRow struct {
	// Name identifies the axis.
	Name string
	// Equipment is the role of the axis; only goniometer axes are resolved.
	Equipment string
	// Vector is the axis direction.
	Vector geom.Vec3
	// DependsOn names the axis this one is mounted on, or Root.
	DependsOn string
}

// ScanRow is one row of the header's scan-axis table.
type ScanRow struct {
	// Name identifies the axis the row describes.
	Name string
	// AngleStart is the axis position at the first image, degrees.
	AngleStart float64
	// AngleIncrement is the per-image angle step; nonzero marks the scan axis.
	AngleIncrement float64
}

// ScanSetting is the start angle and per-image increment of one axis.
type ScanSetting struct {
	Start     float64
	Increment float64
}

// FromHeaderTables builds a multi-axis goniometer from raw instrument
// header tables.  Axis rows whose equipment role is not goniometer are
// ignored, as are scan rows naming axes absent from the axis table;
// whatever remains is resolved with ResolveAxes.
func FromHeaderTables(axisRows []AxisRow, scanRows []ScanRow) (*MultiAxisGoniometer, error) {
	vectors := make(map[string]geom.Vec3)
	dependants := make(map[string]string)
	for _, r := range axisRows {
		if r.Equipment != EquipmentGoniometer {
			continue
		}
		vectors[r.Name] = r.Vector
		// the edge is stored reversed: "X depends on Y" as dependants[Y] = X
		dependants[r.DependsOn] = r.Name
	}
	scan := make(map[string]ScanSetting)
	for _, r := range scanRows {
		if _, ok := vectors[r.Name]; !ok {
			continue
		}
		scan[r.Name] = ScanSetting{Start: r.AngleStart, Increment: r.AngleIncrement}
	}
	return ResolveAxes(vectors, dependants, scan)
}

// ResolveAxes turns raw geometric facts into a multi-axis goniometer.
// vectors maps axis name to direction; dependants records each dependency
// edge reversed, parent name to child name, with Root as the outermost
// parent; scan maps axis name to its start angle and increment.
//
// The dependency data is walked from Root outward, giving base-to-crystal
// order, then reversed to the crystal-to-base order the model requires.
// The scan axis is the one axis with a nonzero increment.  If no axis has
// a nonzero increment the exposure is a still and the scan axis defaults
// to index 0 of the resolved order.
func ResolveAxes(vectors map[string]geom.Vec3, dependants map[string]string, scan map[string]ScanSetting) (*MultiAxisGoniometer, error) {
	if len(vectors) != len(scan) {
		return nil, fmt.Errorf("%w: %d axes in the axis table, %d in the scan-axis table",
			ErrHeaderInconsistency, len(vectors), len(scan))
	}
	scanName := ""
	for name, s := range scan {
		if s.Increment == 0 {
			continue
		}
		if scanName != "" {
			return nil, fmt.Errorf("%w: %s and %s both have nonzero increments", ErrAmbiguousScanAxis, scanName, name)
		}
		scanName = name
	}

	// walk Root -> tip; the walk is bounded by the axis count so cyclic
	// dependency data terminates in an error instead of looping
	ordered := make([]string, 0, len(vectors))
	for name := dependants[Root]; name != ""; name = dependants[name] {
		if len(ordered) == len(vectors) {
			return nil, fmt.Errorf("%w: dependency chain exceeds %d axes (cycle)", ErrMalformedAxisGraph, len(vectors))
		}
		ordered = append(ordered, name)
	}
	if len(ordered) != len(vectors) {
		return nil, fmt.Errorf("%w: resolved %d of %d axes from the dependency data",
			ErrMalformedAxisGraph, len(ordered), len(vectors))
	}

	// reverse to crystal-to-base order
	for i, j := 0, len(ordered)-1; i < j; i, j = i+1, j-1 {
		ordered[i], ordered[j] = ordered[j], ordered[i]
	}

	axes := make([]geom.Vec3, len(ordered))
	angles := make([]float64, len(ordered))
	scanAxis := 0
	for i, name := range ordered {
		v, ok := vectors[name]
		if !ok {
			return nil, fmt.Errorf("%w: chain names unknown axis %q", ErrMalformedAxisGraph, name)
		}
		axes[i] = v
		angles[i] = scan[name].Start
		if name == scanName {
			scanAxis = i
		}
	}
	return NewMultiAxis(axes, angles, ordered, scanAxis)
}
