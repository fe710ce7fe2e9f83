package topology

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/domain/model/handlingunit"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/zone"
	"warehouse/internal/pkg/errs"
)

// defaultUser stamps seeded records when the file names no user.
const defaultUser = "SampleWarehouse"

type (
	locationCreator interface {
		Handle(ctx context.Context, command commands.CreateLocationCommand) error
	}

	handlingUnitCreator interface {
		Handle(ctx context.Context, command commands.CreateHandlingUnitCommand) error
	}

	dropper interface {
		Handle(ctx context.Context, command commands.DropCommand) error
	}

	assigner interface {
		Handle(ctx context.Context, command commands.AssignCommand) (*handlingunit.HandlingUnit, error)
	}

	zoneCreator interface {
		Handle(ctx context.Context, command commands.CreateOrUpdateZoneCommand) (bool, error)
	}

	zoneInitializer interface {
		Handle(ctx context.Context, command commands.InitZoneCommand) (*zone.Zone, error)
	}
)

// Summary counts what a Seed call created. Records that already existed are skipped.
type Summary struct {
	Locations     int
	Zones         int
	Memberships   int
	HandlingUnits int
	Drops         int
	Assignments   int
	Skipped       int
}

// Seeder applies a topology through the regular command handlers, so seeded data passes
// the same validation as API traffic. Seeding twice is harmless: existing ids are skipped.
type Seeder struct {
	createLocation     locationCreator
	createHandlingUnit handlingUnitCreator
	drop               dropper
	assign             assigner
	createZone         zoneCreator
	initZone           zoneInitializer
	logger             *slog.Logger
}

func NewSeeder(
	createLocation locationCreator,
	createHandlingUnit handlingUnitCreator,
	drop dropper,
	assign assigner,
	createZone zoneCreator,
	initZone zoneInitializer,
	logger *slog.Logger,
) *Seeder {
	return &Seeder{
		createLocation:     createLocation,
		createHandlingUnit: createHandlingUnit,
		drop:               drop,
		assign:             assign,
		createZone:         createZone,
		initZone:           initZone,
		logger:             logger.With("component", "topology_seeder"),
	}
}

// Seed creates every location first, then every zone with its members, then every handling
// unit with its drop and base.
func (s *Seeder) Seed(ctx context.Context, file *File) (Summary, error) {
	var summary Summary
	user := file.User
	if user == "" {
		user = defaultUser
	}

	for i, group := range file.Locations {
		if err := s.seedLocations(ctx, group, user, &summary); err != nil {
			return summary, fmt.Errorf("locations[%d]: %w", i, err)
		}
	}
	for i, group := range file.Zones {
		if err := s.seedZone(ctx, group, user, &summary); err != nil {
			return summary, fmt.Errorf("zones[%d]: %w", i, err)
		}
	}
	for i, group := range file.HandlingUnits {
		if err := s.seedHandlingUnits(ctx, group, user, &summary); err != nil {
			return summary, fmt.Errorf("handlingUnits[%d]: %w", i, err)
		}
	}

	s.logger.InfoContext(ctx, "warehouse topology seeded",
		"locations", summary.Locations,
		"zones", summary.Zones,
		"memberships", summary.Memberships,
		"handling_units", summary.HandlingUnits,
		"drops", summary.Drops,
		"assignments", summary.Assignments,
		"skipped", summary.Skipped,
	)
	return summary, nil
}

func (s *Seeder) seedLocations(ctx context.Context, group LocationGroup, user string, summary *Summary) error {
	ids, err := group.ids()
	if err != nil {
		return err
	}
	kind, err := group.accessKind()
	if err != nil {
		return err
	}
	dim, err := group.Dimension.toDomain()
	if err != nil {
		return err
	}

	for _, id := range ids {
		cmd, err := commands.NewCreateLocationCommand(id, kind, dim, user)
		if err != nil {
			return err
		}
		err = s.createLocation.Handle(ctx, cmd)
		if errors.Is(err, errs.ErrObjectAlreadyExists) {
			s.logger.DebugContext(ctx, "location already exists", "location_id", id)
			summary.Skipped++
			continue
		}
		if err != nil {
			return err
		}
		summary.Locations++
	}
	return nil
}

// seedZone keeps the members of an existing zone. Only its rating follows the file.
func (s *Seeder) seedZone(ctx context.Context, group ZoneGroup, user string, summary *Summary) error {
	zoneID, members, err := group.ids()
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateOrUpdateZoneCommand(zoneID, group.Rating, user)
	if err != nil {
		return err
	}
	created, err := s.createZone.Handle(ctx, cmd)
	if err != nil {
		return err
	}
	if !created {
		s.logger.DebugContext(ctx, "zone already exists", "zone_id", zoneID)
		summary.Skipped++
		return nil
	}
	summary.Zones++

	if len(members) == 0 {
		return nil
	}
	initCmd, err := commands.NewInitZoneCommand(zoneID, members, user)
	if err != nil {
		return err
	}
	z, err := s.initZone.Handle(ctx, initCmd)
	if err != nil {
		return err
	}
	summary.Memberships += len(z.Locations())
	return nil
}

func (s *Seeder) seedHandlingUnits(ctx context.Context, group HandlingUnitGroup, user string, summary *Summary) error {
	ids, err := group.ids()
	if err != nil {
		return err
	}
	measures, err := group.measures()
	if err != nil {
		return err
	}
	dropOn, err := optionalID(group.DropOn)
	if err != nil {
		return err
	}
	base, err := optionalID(group.Base)
	if err != nil {
		return err
	}

	for _, id := range ids {
		cmd, err := commands.NewCreateHandlingUnitCommand(id, measures, user)
		if err != nil {
			return err
		}
		err = s.createHandlingUnit.Handle(ctx, cmd)
		if errors.Is(err, errs.ErrObjectAlreadyExists) {
			s.logger.DebugContext(ctx, "handling unit already exists", "handling_unit_id", id)
			summary.Skipped++
			continue
		}
		if err != nil {
			return err
		}
		summary.HandlingUnits++

		if dropOn != nil {
			if err := s.dropUnit(ctx, *dropOn, id, user); err != nil {
				return err
			}
			summary.Drops++
		}
		if base != nil {
			if err := s.assignUnit(ctx, id, *base, user); err != nil {
				return err
			}
			summary.Assignments++
		}
	}
	return nil
}

func (s *Seeder) dropUnit(ctx context.Context, locationID, unitID kernel.ID, user string) error {
	cmd, err := commands.NewDropCommand(locationID, unitID, user)
	if err != nil {
		return err
	}
	return s.drop.Handle(ctx, cmd)
}

func (s *Seeder) assignUnit(ctx context.Context, unitID, baseID kernel.ID, user string) error {
	cmd, err := commands.NewAssignCommand(unitID, baseID, user)
	if err != nil {
		return err
	}
	_, err = s.assign.Handle(ctx, cmd)
	return err
}

func optionalID(s string) (*kernel.ID, error) {
	if s == "" {
		return nil, nil //nolint:nilnil // absent reference
	}
	id, err := kernel.NewID(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
