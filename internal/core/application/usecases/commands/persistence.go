package commands

import (
	"context"
	"time"

	"warehouse/internal/core/domain/model/handlingunit"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/core/ports"
)

// writeOutcome stamps and writes every aggregate a domain service touched. Locations go
// first so that concurrent operations on the same location fail before any unit is written.
func writeOutcome(
	ctx context.Context,
	locations ports.LocationRepository,
	units ports.HandlingUnitRepository,
	outcome services.Outcome,
	user string,
) error {
	audit := kernel.NewAudit(user, time.Time{})

	for _, loc := range outcome.Locations {
		loc.Touch(audit)
		if err := locations.Update(ctx, loc); err != nil {
			return err
		}
	}

	return writeUnits(ctx, units, outcome.HandlingUnits, audit)
}

func writeUnits(
	ctx context.Context,
	units ports.HandlingUnitRepository,
	touched []*handlingunit.HandlingUnit,
	audit kernel.Audit,
) error {
	for _, hu := range touched {
		hu.Touch(audit)
		if err := units.Update(ctx, hu); err != nil {
			return err
		}
	}

	return nil
}

// loadSite reads a location together with the units placed on it.
func loadSite(
	ctx context.Context,
	locations ports.LocationRepository,
	units ports.HandlingUnitRepository,
	id kernel.ID,
) (services.Site, error) {
	loc, err := locations.Get(ctx, id)
	if err != nil {
		return services.Site{}, err
	}

	placed, err := units.GetAllOnLocation(ctx, id)
	if err != nil {
		return services.Site{}, err
	}

	return services.Site{Location: loc, Units: placed}, nil
}

// lookupIn adapts a repository to the lookup the composition manager walks the tree with.
func lookupIn(ctx context.Context, units ports.HandlingUnitRepository) services.HandlingUnitLookup {
	return func(id kernel.ID) (*handlingunit.HandlingUnit, error) {
		return units.Get(ctx, id)
	}
}
