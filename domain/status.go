package domain

import "fmt"

// Status is the lifecycle state of an application. Transitions are driven
// exclusively by administrator action and validated through CanTransition,
// never by comparing raw strings at call sites.
type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
)

// ParseStatus converts a wire string into a Status
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusAccepted, StatusRejected, StatusCompleted:
		return Status(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

// Valid reports whether s is a member of the closed enumeration
func (s Status) Valid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

// Terminal reports whether no further transitions are possible
func (s Status) Terminal() bool {
	return s == StatusRejected || s == StatusCompleted
}

// CanTransition reports whether moving from s to next is a legal step.
// pending may be accepted or rejected; accepted may be completed.
func (s Status) CanTransition(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusAccepted || next == StatusRejected
	case StatusAccepted:
		return next == StatusCompleted
	}
	return false
}

// NextStatuses returns the legal targets from s, in a stable order.
// The admin view renders exactly one action per element.
func (s Status) NextStatuses() []Status {
	switch s {
	case StatusPending:
		return []Status{StatusAccepted, StatusRejected}
	case StatusAccepted:
		return []Status{StatusCompleted}
	}
	return nil
}
