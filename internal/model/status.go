package model

import "fmt"

// Status is the workflow state of a task. Values are the record literals.
type Status string

const (
	StatusTodo       Status = "TODO"
	StatusUpNext     Status = "UP_NEXT"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

// ValidStatuses returns all valid status values.
func ValidStatuses() []Status {
	return []Status{StatusTodo, StatusUpNext, StatusInProgress, StatusDone}
}

// IsValid returns true if the status is a known value.
func (s Status) IsValid() bool {
	for _, valid := range ValidStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// ParseStatus maps a record literal onto a Status.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return s, nil
}

// Label is the human-readable form ("UP NEXT").
func (s Status) Label() string {
	switch s {
	case StatusUpNext:
		return "UP NEXT"
	case StatusInProgress:
		return "IN PROGRESS"
	default:
		return string(s)
	}
}
