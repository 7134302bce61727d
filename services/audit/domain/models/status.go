package models

import "fmt"

// Status is the closed set of audit lifecycle states.
// Draft is used only when an audit resolved zero assets at creation and is
// terminal, as is Completed. The only forward transition is Ongoing→Completed.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
)

// ParseStatus converts a stored string into a Status, rejecting anything
// outside the closed set.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusDraft, StatusOngoing, StatusCompleted:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown audit status %q", s)
	}
}

// CanTransitionTo reports whether moving from s to next is a legal lifecycle
// transition. Status never regresses; Draft and Completed are terminal.
func (s Status) CanTransitionTo(next Status) bool {
	return s == StatusOngoing && next == StatusCompleted
}

// Terminal reports whether no transition leaves this state.
func (s Status) Terminal() bool {
	return s == StatusDraft || s == StatusCompleted
}

// String returns the underlying string value.
func (s Status) String() string {
	return string(s)
}
