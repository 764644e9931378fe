package model

import "fmt"

// Priority levels, ordered from most to least pressing.
const (
	LevelUrgentImportant = 1
	LevelUrgent          = 2
	LevelImportant       = 3
	LevelNone            = 4
)

// Priority is an urgent/important pair. The zero value is level 4.
type Priority struct {
	urgent    bool
	important bool
}

// NewPriority returns the priority for the given flags.
func NewPriority(urgent, important bool) Priority {
	return Priority{urgent: urgent, important: important}
}

// PriorityFromLevel is the inverse of Level.
func PriorityFromLevel(level int) (Priority, error) {
	switch level {
	case LevelUrgentImportant:
		return NewPriority(true, true), nil
	case LevelUrgent:
		return NewPriority(true, false), nil
	case LevelImportant:
		return NewPriority(false, true), nil
	case LevelNone:
		return NewPriority(false, false), nil
	default:
		return Priority{}, fmt.Errorf("%w: %d", ErrInvalidPriorityLevel, level)
	}
}

func (p Priority) Urgent() bool    { return p.urgent }
func (p Priority) Important() bool { return p.important }

// Level collapses the pair into 1 (urgent and important) through 4 (neither).
func (p Priority) Level() int {
	switch {
	case p.urgent && p.important:
		return LevelUrgentImportant
	case p.urgent:
		return LevelUrgent
	case p.important:
		return LevelImportant
	default:
		return LevelNone
	}
}

// Equal reports whether both flags match.
func (p Priority) Equal(o Priority) bool {
	return p == o
}

func (p Priority) String() string {
	switch p.Level() {
	case LevelUrgentImportant:
		return "urgent, important"
	case LevelUrgent:
		return "urgent"
	case LevelImportant:
		return "important"
	default:
		return "default"
	}
}
