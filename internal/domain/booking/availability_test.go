//go:build unit

package booking_test

import (
	"testing"

	"stayhub/internal/domain/booking"

	"github.com/stretchr/testify/assert"
)

func TestStatusBlocksAvailability(t *testing.T) {
	cases := []struct {
		status booking.Status
		want   bool
	}{
		{booking.StatusPending, true},
		{booking.StatusApproved, true},
		{booking.StatusCancelled, false},
		{booking.StatusRefunded, false},
		{booking.StatusCompleted, false},
	}
	for _, tc := range cases {
		t.Run(tc.status.String(), func(t *testing.T) {
			assert.Equal(t, tc.want, booking.StatusBlocksAvailability(tc.status))
		})
	}
}

func TestFindConflict(t *testing.T) {
	candidate := mustPeriod(t, date(2025, 1, 5), date(2025, 1, 10))

	t.Run("no conflict on empty calendar", func(t *testing.T) {
		assert.Equal(t, booking.ConflictNone, booking.FindConflict(candidate, nil, nil))
		assert.True(t, booking.IsAvailable(candidate, nil, nil))
	})

	t.Run("reservation overlap", func(t *testing.T) {
		reservations := []booking.StayPeriod{
			mustPeriod(t, date(2025, 1, 8), date(2025, 1, 12)),
		}
		assert.Equal(t, booking.ConflictReservation, booking.FindConflict(candidate, reservations, nil))
	})

	t.Run("host block overlap", func(t *testing.T) {
		blocks := []booking.StayPeriod{
			mustPeriod(t, date(2025, 1, 1), date(2025, 1, 6)),
		}
		assert.Equal(t, booking.ConflictHostBlock, booking.FindConflict(candidate, nil, blocks))
	})

	t.Run("reservation conflict wins when both overlap", func(t *testing.T) {
		reservations := []booking.StayPeriod{
			mustPeriod(t, date(2025, 1, 8), date(2025, 1, 12)),
		}
		blocks := []booking.StayPeriod{
			mustPeriod(t, date(2025, 1, 1), date(2025, 1, 6)),
		}
		assert.Equal(t, booking.ConflictReservation, booking.FindConflict(candidate, reservations, blocks))
	})

	t.Run("adjacent ranges do not conflict", func(t *testing.T) {
		reservations := []booking.StayPeriod{
			mustPeriod(t, date(2025, 1, 1), date(2025, 1, 5)),
			mustPeriod(t, date(2025, 1, 10), date(2025, 1, 14)),
		}
		assert.Equal(t, booking.ConflictNone, booking.FindConflict(candidate, reservations, nil))
	})
}
