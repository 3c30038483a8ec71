// Package modelcache provides a process-wide read-through cache for
// geometric models, keyed by source file path.  Many acquisition formats
// write one file per image while the physical instrument configuration is
// fixed for the whole run; adapters for those formats build the models
// once and reuse them for every image.
//
// The cache never invalidates: an instrument configuration is immutable
// for the lifetime of a run.  Under concurrent ingestion the builder may
// run more than once for a key, but insert-if-absent semantics guarantee
// every caller observes the same stored model; model construction is never
// serialized behind a lock.
package modelcache

import (
	"sync"

	"github.com/beamtools/diffgeom/beam"
	"github.com/beamtools/diffgeom/goniometer"
	"github.com/beamtools/diffgeom/scan"
)

// Cache holds previously constructed models per source file path.
type Cache struct {
	mu     sync.Mutex
	gonios map[string]goniometer.Model
	beams  map[string]*beam.Beam
	scans  map[string]*scan.Scan
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{
		gonios: make(map[string]goniometer.Model),
		beams:  make(map[string]*beam.Beam),
		scans:  make(map[string]*scan.Scan)}
}

// GoniometerFor returns the goniometer model cached for path, building and
// storing it with build on first use.  A build error is returned without
// being cached.
func (c *Cache) GoniometerFor(path string, build func() (goniometer.Model, error)) (goniometer.Model, error) {
	c.mu.Lock()
	if m, ok := c.gonios[path]; ok {
		c.mu.Unlock()
		return m, nil
	}
	c.mu.Unlock()

	m, err := build()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if prior, ok := c.gonios[path]; ok {
		// a concurrent builder won the race; keep its model
		return prior, nil
	}
	c.gonios[path] = m
	return m, nil
}

// BeamFor returns the beam model cached for path, building and storing it
// with build on first use.
func (c *Cache) BeamFor(path string, build func() (*beam.Beam, error)) (*beam.Beam, error) {
	c.mu.Lock()
	if b, ok := c.beams[path]; ok {
		c.mu.Unlock()
		return b, nil
	}
	c.mu.Unlock()

	b, err := build()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if prior, ok := c.beams[path]; ok {
		return prior, nil
	}
	c.beams[path] = b
	return b, nil
}

// ScanFor returns the scan model cached for path, building and storing it
// with build on first use.
func (c *Cache) ScanFor(path string, build func() (*scan.Scan, error)) (*scan.Scan, error) {
	c.mu.Lock()
	if s, ok := c.scans[path]; ok {
		c.mu.Unlock()
		return s, nil
	}
	c.mu.Unlock()

	s, err := build()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if prior, ok := c.scans[path]; ok {
		return prior, nil
	}
	c.scans[path] = s
	return s, nil
}
