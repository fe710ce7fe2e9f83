// Package queries contains read operations for retrieving warehouse state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return read models shaped for the REST surface and never write.
package queries

import (
	"warehouse/internal/core/ports"
)

// Reader hands out repositories for a read. A fresh Reader per query keeps the identity
// map of one read separate from every other.
type (
	LocationReader interface {
		LocationRepository() ports.LocationRepository
	}

	HandlingUnitReader interface {
		HandlingUnitRepository() ports.HandlingUnitRepository
	}

	ZoneReader interface {
		ZoneRepository() ports.ZoneRepository
	}

	Reader interface {
		LocationReader
		HandlingUnitReader
		ZoneReader
	}

	// ReaderFactory creates a Reader per query execution.
	ReaderFactory interface {
		Create() Reader
	}

	FuncReaderFactory func() Reader
)

func (f FuncReaderFactory) Create() Reader {
	return f()
}
