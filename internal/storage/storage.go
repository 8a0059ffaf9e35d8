package storage

import (
	"fmt"
	"sync"

	"github.com/pulsemobile/pulse-insights/internal/synth"
)

// Store holds the loaded dataset behind a read-write lock. The generator
// writes flat CSV files; everything else — pricing, insights, the API —
// reads through this in-memory snapshot. The customer table is the only
// state shared across components and it is read-only between reloads.
type Store struct {
	mu   sync.RWMutex
	dir  string
	ds   *synth.Dataset
	byID map[string]synth.Customer
}

// New creates a store rooted at the dataset directory. Call Load or
// SetDataset before serving reads.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the dataset directory.
func (s *Store) Dir() string {
	return s.dir
}

// Load reads the CSV artifacts from the store's directory.
func (s *Store) Load() error {
	ds, err := synth.Load(s.dir)
	if err != nil {
		return fmt.Errorf("loading dataset from %s: %w", s.dir, err)
	}
	s.SetDataset(ds)
	return nil
}

// SetDataset swaps in a freshly generated dataset.
func (s *Store) SetDataset(ds *synth.Dataset) {
	idx := ds.CustomerIndex()
	s.mu.Lock()
	s.ds = ds
	s.byID = idx
	s.mu.Unlock()
}

// Dataset returns the current snapshot, nil if nothing is loaded.
func (s *Store) Dataset() *synth.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds
}

// Ready reports whether a dataset is loaded.
func (s *Store) Ready() bool {
	return s.Dataset() != nil
}

// CustomerCount returns the customer table's row count, zero when empty.
func (s *Store) CustomerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.ds == nil {
		return 0
	}
	return len(s.ds.Customers)
}

// SegmentCounts returns the customer population per segment.
func (s *Store) SegmentCounts() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.ds == nil {
		return map[string]int{}
	}
	return s.ds.SegmentCounts()
}

// Customer looks up a customer row by id.
func (s *Store) Customer(id string) (synth.Customer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.byID[id]
	return c, ok
}

// Manifest returns the current run manifest, zero-valued when no dataset is
// loaded or the artifacts predate manifests.
func (s *Store) Manifest() synth.Manifest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.ds == nil {
		return synth.Manifest{}
	}
	return s.ds.Manifest
}
