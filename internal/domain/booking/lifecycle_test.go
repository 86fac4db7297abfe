//go:build unit

package booking_test

import (
	"testing"

	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	for _, s := range []string{"approve", "cancel", "refund", "complete"} {
		t.Run(s, func(t *testing.T) {
			action, err := booking.ParseAction(s)
			require.NoError(t, err)
			assert.Equal(t, s, action.String())
		})
	}

	t.Run("unknown strings are rejected, never defaulted", func(t *testing.T) {
		for _, s := range []string{"", "Approve", "delete", "approved"} {
			_, err := booking.ParseAction(s)
			assert.ErrorIs(t, err, booking.ErrUnknownAction, "input %q", s)
		}
	})
}

func TestNextStatus(t *testing.T) {
	cases := []struct {
		name    string
		current booking.Status
		action  booking.Action
		want    booking.Status
		errIs   error
	}{
		{name: "approve pending", current: booking.StatusPending, action: booking.ActionApprove, want: booking.StatusApproved},
		{name: "approve approved NG", current: booking.StatusApproved, action: booking.ActionApprove, errIs: booking.ErrInvalidTransition},
		{name: "cancel pending", current: booking.StatusPending, action: booking.ActionCancel, want: booking.StatusCancelled},
		{name: "cancel approved", current: booking.StatusApproved, action: booking.ActionCancel, want: booking.StatusCancelled},
		{name: "refund pending", current: booking.StatusPending, action: booking.ActionRefund, want: booking.StatusRefunded},
		{name: "refund approved", current: booking.StatusApproved, action: booking.ActionRefund, want: booking.StatusRefunded},
		{name: "complete approved", current: booking.StatusApproved, action: booking.ActionComplete, want: booking.StatusCompleted},
		{name: "complete pending NG", current: booking.StatusPending, action: booking.ActionComplete, errIs: booking.ErrInvalidTransition},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := booking.NextStatus(tc.current, tc.action)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("terminal statuses reject every action", func(t *testing.T) {
		terminals := []booking.Status{booking.StatusCancelled, booking.StatusRefunded, booking.StatusCompleted}
		actions := []booking.Action{booking.ActionApprove, booking.ActionCancel, booking.ActionRefund, booking.ActionComplete}
		for _, status := range terminals {
			for _, action := range actions {
				_, err := booking.NextStatus(status, action)
				assert.ErrorIs(t, err, booking.ErrTerminalStatus, "%s + %s", status, action)
			}
		}
	})
}

func TestAuthorizeTransition(t *testing.T) {
	guestID := uuid.New()
	hostID := uuid.New()

	guest := booking.Actor{ID: guestID, Role: user.RoleGuest}
	otherGuest := booking.Actor{ID: uuid.New(), Role: user.RoleGuest}
	host := booking.Actor{ID: hostID, Role: user.RoleHost}
	otherHost := booking.Actor{ID: uuid.New(), Role: user.RoleHost}
	admin := booking.Actor{ID: uuid.New(), Role: user.RoleAdmin}

	cases := []struct {
		name   string
		action booking.Action
		actor  booking.Actor
		errIs  error
	}{
		{name: "approve by owning host", action: booking.ActionApprove, actor: host},
		{name: "approve by other host NG", action: booking.ActionApprove, actor: otherHost, errIs: booking.ErrActorNotAllowed},
		{name: "approve by guest NG", action: booking.ActionApprove, actor: guest, errIs: booking.ErrActorNotAllowed},
		{name: "cancel by owning guest", action: booking.ActionCancel, actor: guest},
		{name: "cancel by other guest NG", action: booking.ActionCancel, actor: otherGuest, errIs: booking.ErrActorNotAllowed},
		{name: "refund by host NG", action: booking.ActionRefund, actor: host, errIs: booking.ErrActorNotAllowed},
		{name: "refund by guest NG", action: booking.ActionRefund, actor: guest, errIs: booking.ErrActorNotAllowed},
		{name: "complete by host NG", action: booking.ActionComplete, actor: host, errIs: booking.ErrActorNotAllowed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := booking.AuthorizeTransition(tc.action, tc.actor, guestID, hostID)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			assert.NoError(t, err)
		})
	}

	t.Run("admin may perform every action", func(t *testing.T) {
		for _, action := range []booking.Action{booking.ActionApprove, booking.ActionCancel, booking.ActionRefund, booking.ActionComplete} {
			assert.NoError(t, booking.AuthorizeTransition(action, admin, guestID, hostID))
		}
	})
}
