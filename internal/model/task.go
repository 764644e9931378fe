package model

import (
	"fmt"
	"sort"
	"strings"
)

// Task is a leaf todo.
type Task struct {
	todoBase

	status   Status
	dueDate  *DueDate
	progress int
	etc      int
	tags     map[string]Tag
}

// NewTask returns a task with status TODO, default priority, no due date,
// no tags and zero progress and estimate.
func NewTask(description string) (*Task, error) {
	base, err := newTodoBase(description)
	if err != nil {
		return nil, err
	}
	return &Task{
		todoBase: base,
		status:   StatusTodo,
		tags:     make(map[string]Tag),
	}, nil
}

// SetDescription replaces the description. Equality follows the new value.
func (t *Task) SetDescription(description string) error {
	if description == "" {
		return fmt.Errorf("%w: description", ErrEmptyString)
	}
	t.description = description
	return nil
}

func (t *Task) Status() Status { return t.status }

// SetStatus rejects values outside ValidStatuses.
func (t *Task) SetStatus(s Status) error {
	if !s.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	t.status = s
	return nil
}

// DueDate returns the due date and whether one is set.
func (t *Task) DueDate() (DueDate, bool) {
	if t.dueDate == nil {
		return DueDate{}, false
	}
	return *t.dueDate, true
}

func (t *Task) SetDueDate(d DueDate) { t.dueDate = &d }

func (t *Task) ClearDueDate() { t.dueDate = nil }

func (t *Task) Progress() int { return t.progress }

// SetProgress stores p when it lies in [0, 100]; otherwise the previous
// value is kept.
func (t *Task) SetProgress(p int) error {
	if p < 0 || p > 100 {
		return fmt.Errorf("%w: %d", ErrInvalidProgress, p)
	}
	t.progress = p
	return nil
}

func (t *Task) EstimatedTimeToComplete() int { return t.etc }

// SetEstimatedTimeToComplete stores hours and reports the difference to
// every project holding this task before returning.
func (t *Task) SetEstimatedTimeToComplete(hours int) error {
	if hours < 0 {
		return fmt.Errorf("%w: estimated time %d", ErrNegativeInput, hours)
	}
	delta := hours - t.etc
	t.etc = hours
	t.estimates.broadcast(delta)
	return nil
}

// AddTag is a no-op when a tag with the same name is already present.
func (t *Task) AddTag(tag Tag) error {
	if tag.name == "" {
		return fmt.Errorf("%w: tag", ErrNilArgument)
	}
	if t.tags == nil {
		t.tags = make(map[string]Tag)
	}
	if _, ok := t.tags[tag.name]; !ok {
		t.tags[tag.name] = tag
	}
	return nil
}

// AddTagName adds the tag called name.
func (t *Task) AddTagName(name string) error {
	tag, err := NewTag(name)
	if err != nil {
		return err
	}
	return t.AddTag(tag)
}

// RemoveTag is a no-op when the tag is absent.
func (t *Task) RemoveTag(tag Tag) error {
	if tag.name == "" {
		return fmt.Errorf("%w: tag", ErrNilArgument)
	}
	delete(t.tags, tag.name)
	return nil
}

// RemoveTagName removes the tag called name, if present.
func (t *Task) RemoveTagName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: tag name", ErrEmptyString)
	}
	delete(t.tags, name)
	return nil
}

// ContainsTag reports whether a tag called name is attached.
func (t *Task) ContainsTag(name string) (bool, error) {
	if name == "" {
		return false, fmt.Errorf("%w: tag name", ErrEmptyString)
	}
	_, ok := t.tags[name]
	return ok, nil
}

// Tags returns the tag set ordered by name.
func (t *Task) Tags() []Tag {
	tags := make([]Tag, 0, len(t.tags))
	for _, tag := range t.tags {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].name < tags[j].name })
	return tags
}

// Equal compares description, due date, priority and status. Tags,
// progress and estimate are ignored.
func (t *Task) Equal(other Todo) bool {
	o, ok := other.(*Task)
	if !ok || o == nil {
		return false
	}
	if t == o {
		return true
	}
	if t.description != o.description || !t.priority.Equal(o.priority) || t.status != o.status {
		return false
	}
	switch {
	case t.dueDate == nil && o.dueDate == nil:
		return true
	case t.dueDate == nil || o.dueDate == nil:
		return false
	default:
		return t.dueDate.Equal(*o.dueDate)
	}
}

func (t *Task) String() string {
	var b strings.Builder
	b.WriteString(t.description)
	fmt.Fprintf(&b, " [%s, %s", t.status.Label(), t.priority)
	if t.dueDate != nil {
		fmt.Fprintf(&b, ", due %s", t.dueDate)
	}
	fmt.Fprintf(&b, ", %d%%, %dh]", t.progress, t.etc)
	for _, tag := range t.Tags() {
		b.WriteString(" ")
		b.WriteString(tag.String())
	}
	return b.String()
}

func (t *Task) sumOfProgress() int { return t.progress }
