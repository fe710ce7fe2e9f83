// Package memory provides an in-process implementation of the unit of work and every
// repository. It keeps immutable snapshot records behind a mutex and applies the staged
// writes of a unit of work atomically on commit.
//
// The store is used when the service runs without PostgreSQL and by the HTTP tests.
package memory

import (
	"maps"
	"sync"
	"time"

	"warehouse/internal/core/domain/model/handlingunit"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/location"
	"warehouse/internal/core/domain/model/zone"
	"warehouse/internal/core/ports"
)

type locationRecord struct {
	id         kernel.ID
	version    int
	accessKind location.AccessKind
	dimension  location.Dimension
	status     location.Status
	updatedBy  string
	updatedAt  time.Time
}

type unitRecord struct {
	id         kernel.ID
	version    int
	weight     int
	volume     float64
	height     kernel.HeightCategory
	length     kernel.LengthCategory
	width      kernel.WidthCategory
	locationID *kernel.ID
	locaPos    *int
	baseID     *kernel.ID
	updatedBy  string
	updatedAt  time.Time
}

type zoneRecord struct {
	id        kernel.ID
	version   int
	rating    int
	locations []kernel.ID
	updatedBy string
	updatedAt time.Time
}

type memoryState struct {
	locations map[kernel.ID]locationRecord
	units     map[kernel.ID]unitRecord
	zones     map[kernel.ID]zoneRecord
}

func newMemoryState() memoryState {
	return memoryState{
		locations: map[kernel.ID]locationRecord{},
		units:     map[kernel.ID]unitRecord{},
		zones:     map[kernel.ID]zoneRecord{},
	}
}

// clone copies the maps. Records are values and their slices are never written in place.
func (m memoryState) clone() memoryState {
	return memoryState{
		locations: maps.Clone(m.locations),
		units:     maps.Clone(m.units),
		zones:     maps.Clone(m.zones),
	}
}

// Store is the shared state behind every unit of work created by it.
type Store struct {
	mu    sync.RWMutex
	state memoryState
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{state: newMemoryState()}
}

// Create implements ports.UnitOfWorkFactory.
func (s *Store) Create() ports.UnitOfWork {
	return newUnitOfWork(s)
}

// read runs fn with a consistent view of the committed state.
func (s *Store) read(fn func(state memoryState)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.state)
}

// apply verifies and writes the staged changes in order on a copy of the committed state
// and publishes the copy only if every change passed.
func (s *Store) apply(changes []change) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.clone()
	for _, c := range changes {
		if err := c.check(next); err != nil {
			return err
		}
		c.write(next)
	}
	s.state = next
	return nil
}

func locationToRecord(loc *location.Location, version int) locationRecord {
	return locationRecord{
		id:         loc.ID(),
		version:    version,
		accessKind: loc.AccessKind(),
		dimension:  loc.Dimension(),
		status:     loc.Status(),
		updatedBy:  loc.Audit().UpdatedBy(),
		updatedAt:  loc.Audit().UpdatedAt(),
	}
}

func (r locationRecord) restore() (*location.Location, error) {
	return location.RestoreLocation(r.id, r.version, r.accessKind, r.dimension, r.status,
		kernel.NewAudit(r.updatedBy, r.updatedAt))
}

func unitToRecord(hu *handlingunit.HandlingUnit, version int) unitRecord {
	return unitRecord{
		id:         hu.ID(),
		version:    version,
		weight:     hu.Weight(),
		volume:     hu.Volume(),
		height:     hu.Height(),
		length:     hu.Length(),
		width:      hu.Width(),
		locationID: hu.Location(),
		locaPos:    hu.LocaPos(),
		baseID:     hu.Base(),
		updatedBy:  hu.Audit().UpdatedBy(),
		updatedAt:  hu.Audit().UpdatedAt(),
	}
}

func (r unitRecord) restore(children []kernel.ID) (*handlingunit.HandlingUnit, error) {
	return handlingunit.RestoreHandlingUnit(r.id, r.version, r.weight, r.volume,
		r.height, r.length, r.width, r.locationID, r.locaPos, r.baseID, children,
		kernel.NewAudit(r.updatedBy, r.updatedAt))
}

func zoneToRecord(z *zone.Zone, version int) zoneRecord {
	return zoneRecord{
		id:        z.ID(),
		version:   version,
		rating:    z.Rating(),
		locations: z.Locations(),
		updatedBy: z.Audit().UpdatedBy(),
		updatedAt: z.Audit().UpdatedAt(),
	}
}

func (r zoneRecord) restore() (*zone.Zone, error) {
	return zone.RestoreZone(r.id, r.version, r.rating, r.locations,
		kernel.NewAudit(r.updatedBy, r.updatedAt))
}
