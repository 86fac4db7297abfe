package booking

import (
	"errors"

	"stayhub/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrTerminalStatus    = errors.New("booking is in a terminal status")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrActorNotAllowed   = errors.New("actor is not allowed to perform this action")
	ErrUnknownAction     = errors.New("unknown action")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusCancelled Status = "cancelled"
	StatusRefunded  Status = "refunded"
	StatusCompleted Status = "completed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusCancelled, StatusRefunded, StatusCompleted:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusCancelled, StatusRefunded, StatusCompleted:
		return true
	default:
		return false
	}
}

// Action is the closed set of lifecycle transitions. There is deliberately
// no fallback for unrecognized strings; ParseAction is the only way in.
type Action string

const (
	ActionApprove  Action = "approve"
	ActionCancel   Action = "cancel"
	ActionRefund   Action = "refund"
	ActionComplete Action = "complete"
)

func (a Action) String() string {
	return string(a)
}

func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionApprove, ActionCancel, ActionRefund, ActionComplete:
		return Action(s), nil
	default:
		return "", ErrUnknownAction
	}
}

// Actor is the already-verified identity performing a transition. Token
// verification happens upstream; the lifecycle only checks authorization.
type Actor struct {
	ID   uuid.UUID
	Role user.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == user.RoleAdmin
}

// NextStatus returns the target status for an action applied to the current
// status. Terminal statuses are non-re-enterable, checked before anything
// else so the error is stable regardless of action.
func NextStatus(current Status, action Action) (Status, error) {
	if current.IsTerminal() {
		return "", ErrTerminalStatus
	}

	switch action {
	case ActionApprove:
		if current != StatusPending {
			return "", ErrInvalidTransition
		}
		return StatusApproved, nil
	case ActionCancel:
		if current != StatusPending && current != StatusApproved {
			return "", ErrInvalidTransition
		}
		return StatusCancelled, nil
	case ActionRefund:
		// Any non-terminal status refunds; the terminal guard above already ran.
		return StatusRefunded, nil
	case ActionComplete:
		if current != StatusApproved {
			return "", ErrInvalidTransition
		}
		return StatusCompleted, nil
	default:
		return "", ErrUnknownAction
	}
}

// AuthorizeTransition checks the actor against the transition table:
// approve by the property's host or an admin, cancel by the owning guest or
// an admin, refund and complete by an admin (system callers act as admin).
func AuthorizeTransition(action Action, actor Actor, guestID, propertyHostID uuid.UUID) error {
	if actor.IsAdmin() {
		return nil
	}

	switch action {
	case ActionApprove:
		if actor.Role == user.RoleHost && actor.ID == propertyHostID {
			return nil
		}
	case ActionCancel:
		if actor.ID == guestID {
			return nil
		}
	case ActionRefund, ActionComplete:
		// Admin only.
	default:
		return ErrUnknownAction
	}

	return ErrActorNotAllowed
}
