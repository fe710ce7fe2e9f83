// Package topology seeds a warehouse from a YAML description: groups of locations with a
// shared access kind and dimension, zones listing their member locations, and handling
// units optionally dropped onto a location or assigned to a base.
//
// Example file:
//
//	user: SampleWarehouse
//	locations:
//	  - prefix: ""
//	    count: 3
//	    accessKind: RANDOM
//	  - prefix: FIFO_
//	    count: 3
//	    accessKind: FIFO
//	    dimension: {maxCapacity: 4, maxHeight: MIDDLE}
//	zones:
//	  - id: Cooler
//	    rating: 5
//	    locations: [FIFO_A, FIFO_B]
//	handlingUnits:
//	  - prefix: ""
//	    count: 10
//	    weight: 12
//	  - id: PALLET-1
//	    dropOn: FIFO_A
package topology

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/location"
	"warehouse/internal/pkg/errs"

	"gopkg.in/yaml.v3"
)

// maxLetterGroup is the largest location group named by single letters A..Z.
const maxLetterGroup = 26

// File is the root of a topology document.
type File struct {
	User          string              `yaml:"user"`
	Locations     []LocationGroup     `yaml:"locations"`
	Zones         []ZoneGroup         `yaml:"zones"`
	HandlingUnits []HandlingUnitGroup `yaml:"handlingUnits"`
}

// LocationGroup describes one location when ID is set, otherwise Count locations named
// Prefix followed by a letter (A, B, ...).
type LocationGroup struct {
	ID         string    `yaml:"id"`
	Prefix     string    `yaml:"prefix"`
	Count      int       `yaml:"count"`
	AccessKind string    `yaml:"accessKind"`
	Dimension  Dimension `yaml:"dimension"`
}

// Dimension mirrors location.Dimension. Empty categories mean NOT_RELEVANT.
type Dimension struct {
	MaxCapacity int    `yaml:"maxCapacity"`
	MaxWeight   int    `yaml:"maxWeight"`
	MaxHeight   string `yaml:"maxHeight"`
	MaxLength   string `yaml:"maxLength"`
	MaxWidth    string `yaml:"maxWidth"`
}

// ZoneGroup describes one zone and its members. A location listed here leaves every zone
// seeded before it.
type ZoneGroup struct {
	ID        string   `yaml:"id"`
	Rating    int      `yaml:"rating"`
	Locations []string `yaml:"locations"`
}

// HandlingUnitGroup describes one unit when ID is set, Count units named Prefix followed
// by a number (1, 2, ...) otherwise, or Count units with random ids when Random is set.
type HandlingUnitGroup struct {
	ID     string  `yaml:"id"`
	Prefix string  `yaml:"prefix"`
	Count  int     `yaml:"count"`
	Random bool    `yaml:"random"`
	Weight int     `yaml:"weight"`
	Volume float64 `yaml:"volume"`
	Height string  `yaml:"height"`
	Length string  `yaml:"length"`
	Width  string  `yaml:"width"`
	DropOn string  `yaml:"dropOn"`
	Base   string  `yaml:"base"`
}

// Load reads and parses a topology file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading topology file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a topology document and rejects unknown fields.
func Parse(data []byte) (*File, error) {
	var file File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing topology file: %w", err)
	}
	if err := file.Validate(); err != nil {
		return nil, fmt.Errorf("validating topology file: %w", err)
	}
	return &file, nil
}

// Validate checks that every group names either an id or a positive count.
func (f *File) Validate() error {
	var errList []error
	for i, group := range f.Locations {
		if err := group.validate(); err != nil {
			errList = append(errList, fmt.Errorf("locations[%d]: %w", i, err))
		}
	}
	for i, group := range f.Zones {
		if group.ID == "" {
			errList = append(errList, fmt.Errorf("zones[%d]: %w", i, errs.NewValueIsRequiredError("id")))
		}
	}
	for i, group := range f.HandlingUnits {
		if err := group.validate(); err != nil {
			errList = append(errList, fmt.Errorf("handlingUnits[%d]: %w", i, err))
		}
	}
	return errors.Join(errList...)
}

func (g LocationGroup) validate() error {
	if g.ID != "" {
		return nil
	}
	if g.Count < 1 || g.Count > maxLetterGroup {
		return errs.NewValueIsOutOfRangeError("count", g.Count, 1, maxLetterGroup)
	}
	return nil
}

func (g HandlingUnitGroup) validate() error {
	if g.ID != "" {
		return nil
	}
	if g.Count < 1 {
		return errs.NewValueIsOutOfRangeError("count", g.Count, 1, "unbounded")
	}
	return nil
}

// ids expands the group into location ids.
func (g LocationGroup) ids() ([]kernel.ID, error) {
	if g.ID != "" {
		id, err := kernel.NewID(g.ID)
		return []kernel.ID{id}, err
	}
	result := make([]kernel.ID, 0, g.Count)
	for i := range g.Count {
		id, err := kernel.NewID(g.Prefix + string(rune('A'+i)))
		if err != nil {
			return nil, err
		}
		result = append(result, id)
	}
	return result, nil
}

func (g ZoneGroup) ids() (kernel.ID, []kernel.ID, error) {
	zoneID, err := kernel.NewID(g.ID)
	if err != nil {
		return kernel.ID{}, nil, err
	}
	members := make([]kernel.ID, 0, len(g.Locations))
	for _, raw := range g.Locations {
		id, err := kernel.NewID(raw)
		if err != nil {
			return kernel.ID{}, nil, err
		}
		members = append(members, id)
	}
	return zoneID, members, nil
}

func (g LocationGroup) accessKind() (location.AccessKind, error) {
	if g.AccessKind == "" {
		return location.Random, nil
	}
	return location.ParseAccessKind(g.AccessKind)
}

func (d Dimension) toDomain() (location.Dimension, error) {
	height, heightErr := parseOr(d.MaxHeight, kernel.HeightNotRelevant, kernel.ParseHeightCategory)
	length, lengthErr := parseOr(d.MaxLength, kernel.LengthNotRelevant, kernel.ParseLengthCategory)
	width, widthErr := parseOr(d.MaxWidth, kernel.WidthNotRelevant, kernel.ParseWidthCategory)
	if err := errors.Join(heightErr, lengthErr, widthErr); err != nil {
		return location.Dimension{}, err
	}
	return location.NewDimension(d.MaxCapacity, d.MaxWeight, height, length, width)
}

// ids expands the group into handling unit ids.
func (g HandlingUnitGroup) ids() ([]kernel.ID, error) {
	if g.ID != "" {
		id, err := kernel.NewID(g.ID)
		return []kernel.ID{id}, err
	}
	result := make([]kernel.ID, 0, g.Count)
	for i := 1; i <= g.Count; i++ {
		if g.Random {
			result = append(result, kernel.NewRandomID())
			continue
		}
		id, err := kernel.NewID(g.Prefix + strconv.Itoa(i))
		if err != nil {
			return nil, err
		}
		result = append(result, id)
	}
	return result, nil
}

func (g HandlingUnitGroup) measures() (commands.HandlingUnitMeasures, error) {
	height, heightErr := parseOr(g.Height, kernel.HeightNotRelevant, kernel.ParseHeightCategory)
	length, lengthErr := parseOr(g.Length, kernel.LengthNotRelevant, kernel.ParseLengthCategory)
	width, widthErr := parseOr(g.Width, kernel.WidthNotRelevant, kernel.ParseWidthCategory)
	measures := commands.HandlingUnitMeasures{
		Weight: g.Weight,
		Volume: g.Volume,
		Height: height,
		Length: length,
		Width:  width,
	}
	if err := errors.Join(heightErr, lengthErr, widthErr); err != nil {
		return commands.HandlingUnitMeasures{}, err
	}
	return measures, measures.Validate()
}

func parseOr[T any](s string, fallback T, parse func(string) (T, error)) (T, error) {
	if s == "" {
		return fallback, nil
	}
	return parse(s)
}
