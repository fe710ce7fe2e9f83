package guard_test

import (
	"errors"
	"testing"

	"warehouse/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("creates_properly_constructed_guard", func(t *testing.T) {
		// When
		g := guard.NewConstructorGuard()

		// Then
		require.NoError(t, g.Validate(errors.New("slot not constructed")))
		require.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		expectedError := errors.New("entity not constructed")

		// When
		err := g.Validate(expectedError)

		// Then
		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(nil)

		// Then
		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
	})
}

// TestConstructorGuardUsageExample shows the guard embedded in a command-like value.
func TestConstructorGuardUsageExample(t *testing.T) {
	type slotRequest struct {
		locationID string
		capacity   int
		guard      guard.ConstructorGuard
	}

	errSlotRequestNotConstructed := errors.New("slotRequest must be created via newSlotRequest")

	newSlotRequest := func(locationID string, capacity int) (slotRequest, error) {
		if locationID == "" {
			return slotRequest{}, errors.New("location id is required")
		}
		if capacity < 0 {
			return slotRequest{}, errors.New("capacity cannot be negative")
		}
		return slotRequest{
			locationID: locationID,
			capacity:   capacity,
			guard:      guard.NewConstructorGuard(),
		}, nil
	}

	validate := func(r slotRequest) error {
		return r.guard.Validate(errSlotRequestNotConstructed)
	}

	testCases := []struct {
		name       string
		locationID string
		capacity   int
		wantErr    string
	}{
		{name: "valid", locationID: "A-01", capacity: 3},
		{name: "missing_location", locationID: "", capacity: 3, wantErr: "location id is required"},
		{name: "negative_capacity", locationID: "A-01", capacity: -1, wantErr: "capacity cannot be negative"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := newSlotRequest(tc.locationID, tc.capacity)
			if tc.wantErr != "" {
				require.EqualError(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, validate(r))
			assert.Equal(t, tc.locationID, r.locationID)
		})
	}

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var r slotRequest
		assert.Equal(t, errSlotRequestNotConstructed, validate(r))
	})
}
