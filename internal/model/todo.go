package model

import "fmt"

// Todo is the behaviour shared by tasks and projects. The set of
// implementations is closed: only *Task and *Project satisfy it.
type Todo interface {
	Description() string
	Priority() Priority
	SetPriority(p Priority)

	// Progress is a percentage in [0, 100].
	Progress() int

	// EstimatedTimeToComplete is a non-negative effort estimate in hours.
	EstimatedTimeToComplete() int

	// Equal is the containment equality used by projects. It is not
	// identity: two projects with the same description are equal.
	Equal(other Todo) bool

	String() string

	sumOfProgress() int
	estimateNotifier() *notifier
}

// todoBase holds the fields common to tasks and projects.
type todoBase struct {
	description string
	priority    Priority
	estimates   notifier
}

func newTodoBase(description string) (todoBase, error) {
	if description == "" {
		return todoBase{}, fmt.Errorf("%w: description", ErrEmptyString)
	}
	return todoBase{description: description}, nil
}

func (b *todoBase) Description() string { return b.description }

func (b *todoBase) Priority() Priority { return b.priority }

func (b *todoBase) SetPriority(p Priority) { b.priority = p }

func (b *todoBase) estimateNotifier() *notifier { return &b.estimates }

// isNil catches both a nil interface and a typed nil pointer.
func isNil(t Todo) bool {
	switch v := t.(type) {
	case nil:
		return true
	case *Task:
		return v == nil
	case *Project:
		return v == nil
	default:
		return false
	}
}
