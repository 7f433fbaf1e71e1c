package transit

import (
	"time"

	"freight/internal/pkg/errs"
)

// assignmentStateKind tags the two states of an assignment.
type assignmentStateKind int

const (
	stateActive assignmentStateKind = iota + 1
	stateDeactivated
)

// AssignmentState is the lifecycle of a transit assignment as a tagged value:
// either Active, or Deactivated with the time and reason of the removal.
// Assignments are never hard-deleted, so "removed" rows keep their full
// history and audit queries can rely on the deactivation metadata being
// present whenever the record is inactive.
type AssignmentState struct {
	kind   assignmentStateKind
	at     time.Time
	reason string
}

// ActiveState returns the state of a live assignment.
func ActiveState() AssignmentState {
	return AssignmentState{kind: stateActive}
}

// DeactivatedState returns the state of a removed assignment.
// The timestamp is required; the reason may be empty.
func DeactivatedState(at time.Time, reason string) (AssignmentState, error) {
	if at.IsZero() {
		return AssignmentState{}, errs.NewValueIsRequiredError("deactivatedAt")
	}
	return AssignmentState{kind: stateDeactivated, at: at, reason: reason}, nil
}

// IsActive reports whether the assignment is live.
func (s AssignmentState) IsActive() bool {
	return s.kind == stateActive
}

// IsDeactivated reports whether the assignment has been removed.
func (s AssignmentState) IsDeactivated() bool {
	return s.kind == stateDeactivated
}

// DeactivatedAt returns the removal time, or nil for an active assignment.
func (s AssignmentState) DeactivatedAt() *time.Time {
	if s.kind != stateDeactivated {
		return nil
	}
	at := s.at
	return &at
}

// Reason returns the recorded removal reason, empty for an active assignment.
func (s AssignmentState) Reason() string {
	if s.kind != stateDeactivated {
		return ""
	}
	return s.reason
}

// Validate checks the state carries one of the two valid tags.
func (s AssignmentState) Validate() error {
	if s.kind != stateActive && s.kind != stateDeactivated {
		return errs.NewValueIsRequiredError("assignmentState")
	}
	return nil
}
