package schedule

import (
	"fmt"

	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
)

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusAssigned   Status = "assigned"
	StatusUnassigned Status = "unassigned"
	StatusDone       Status = "done"
	StatusInProgress Status = "in-progress"
	StatusCancelled  Status = "cancelled"
	StatusDeparted   Status = "departed"
	StatusSuspended  Status = "suspended"
	StatusTraining   Status = "training"
	StatusMeeting    Status = "meeting"
)

var knownStatuses = map[Status]bool{
	StatusAssigned:   true,
	StatusUnassigned: true,
	StatusDone:       true,
	StatusInProgress: true,
	StatusCancelled:  true,
	StatusDeparted:   true,
	StatusSuspended:  true,
	StatusTraining:   true,
	StatusMeeting:    true,
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !knownStatuses[st] {
		return "", fmt.Errorf("unknown booking status %q", s)
	}
	return st, nil
}

// IsTerminal reports whether a booking can no longer be moved or re-statused.
func (s Status) IsTerminal() bool {
	return s == StatusDone || s == StatusCancelled
}

// ===============================
// Validations
// ===============================

// CanReassign reports whether a visit may be dragged to another carer or time.
func CanReassign(current Status) error {
	if current.IsTerminal() {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanTransition validates a status change.
func CanTransition(current, next Status) error {
	if !knownStatuses[next] {
		return httperr.ErrBusiness("invalid_status")
	}
	if current.IsTerminal() {
		return httperr.ErrBusiness("invalid_state")
	}
	if current == next {
		return httperr.ErrBusiness("status_unchanged")
	}
	return nil
}
