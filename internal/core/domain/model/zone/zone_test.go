package zone_test

import (
	"testing"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/zone"
	"warehouse/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustID(t *testing.T, s string) kernel.ID {
	t.Helper()
	id, err := kernel.NewID(s)
	require.NoError(t, err)
	return id
}

func newZone(t *testing.T, id string, rating int) *zone.Zone {
	t.Helper()
	z, err := zone.NewZone(mustID(t, id), rating)
	require.NoError(t, err)
	return z
}

func TestNewZone(t *testing.T) {
	z := newZone(t, "Cooler", 5)

	require.NoError(t, z.Validate())
	assert.Equal(t, "Cooler", z.ID().String())
	assert.Equal(t, 5, z.Rating())
	assert.Equal(t, 0, z.Version())
	assert.Empty(t, z.Locations())

	_, err := zone.NewZone(kernel.ID{}, zone.DefaultRating)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	var zero zone.Zone
	require.ErrorIs(t, zero.Validate(), zone.ErrZoneIsNotConstructed)
}

func TestZone_Membership(t *testing.T) {
	t.Run("add keeps ids sorted and ignores repeats", func(t *testing.T) {
		z := newZone(t, "Freezer", 10)

		added, err := z.Add(mustID(t, "LOCF"))
		require.NoError(t, err)
		assert.True(t, added)
		_, err = z.Add(mustID(t, "LOCA"))
		require.NoError(t, err)
		added, err = z.Add(mustID(t, "LOCF"))
		require.NoError(t, err)
		assert.False(t, added)

		assert.Equal(t, []kernel.ID{mustID(t, "LOCA"), mustID(t, "LOCF")}, z.Locations())
		assert.True(t, z.Contains(mustID(t, "LOCA")))
		assert.False(t, z.Contains(mustID(t, "LOCB")))
	})

	t.Run("add rejects the zero id", func(t *testing.T) {
		z := newZone(t, "Freezer", 10)
		_, err := z.Add(kernel.ID{})
		require.ErrorIs(t, err, kernel.ErrIDIsNotConstructed)
	})

	t.Run("remove reports whether the location was a member", func(t *testing.T) {
		z := newZone(t, "Bulk", 0)
		_, err := z.Add(mustID(t, "LOCA"))
		require.NoError(t, err)

		assert.True(t, z.Remove(mustID(t, "LOCA")))
		assert.False(t, z.Remove(mustID(t, "LOCA")))
		assert.Empty(t, z.Locations())
	})

	t.Run("replace collapses duplicates", func(t *testing.T) {
		z := newZone(t, "Bulk", 0)
		require.NoError(t, z.Replace([]kernel.ID{mustID(t, "B"), mustID(t, "A"), mustID(t, "B")}))
		assert.Equal(t, []kernel.ID{mustID(t, "A"), mustID(t, "B")}, z.Locations())
	})

	t.Run("clear", func(t *testing.T) {
		z := newZone(t, "Bulk", 0)
		assert.False(t, z.Clear())
		_, err := z.Add(mustID(t, "A"))
		require.NoError(t, err)
		assert.True(t, z.Clear())
		assert.Empty(t, z.Locations())
	})

	t.Run("locations is a copy", func(t *testing.T) {
		z := newZone(t, "Bulk", 0)
		_, err := z.Add(mustID(t, "A"))
		require.NoError(t, err)

		ids := z.Locations()
		ids[0] = mustID(t, "Z")
		assert.True(t, z.Contains(mustID(t, "A")))
	})
}

func TestZone_ChangeRating(t *testing.T) {
	z := newZone(t, "AutoStorage", 3)
	assert.False(t, z.ChangeRating(3))
	assert.True(t, z.ChangeRating(1))
	assert.Equal(t, 1, z.Rating())
}

func TestRestoreZone(t *testing.T) {
	audit := kernel.NewAudit("operator", time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	z, err := zone.RestoreZone(mustID(t, "Cooler"), 4, 5, []kernel.ID{mustID(t, "LOCB"), mustID(t, "LOCA")}, audit)
	require.NoError(t, err)
	assert.Equal(t, 4, z.Version())
	assert.Equal(t, "operator", z.Audit().UpdatedBy())
	assert.Equal(t, []kernel.ID{mustID(t, "LOCA"), mustID(t, "LOCB")}, z.Locations())

	_, err = zone.RestoreZone(mustID(t, "Cooler"), -1, 5, nil, audit)
	require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
}
