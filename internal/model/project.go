package model

import (
	"fmt"
	"slices"
)

// Project is a composite todo holding an ordered set of tasks and
// sub-projects. A child may sit under several projects at once.
//
// The estimated time to complete is a running total kept current by
// deltas pushed from children, so reading it never walks the tree.
// Progress is recomputed from the direct children on every read.
type Project struct {
	todoBase

	children []Todo
	// subs is keyed by child identity, never by Equal, so that two
	// same-named projects under one parent keep separate subscriptions.
	subs map[Todo]subscription
	etc  int
}

// NewProject returns an empty project.
func NewProject(description string) (*Project, error) {
	base, err := newTodoBase(description)
	if err != nil {
		return nil, err
	}
	return &Project{
		todoBase: base,
		subs:     make(map[Todo]subscription),
	}, nil
}

// Add appends todo unless an equal child is already present or todo equals
// p itself. Adding a project that already contains p, directly or
// transitively, fails with ErrCycle.
func (p *Project) Add(todo Todo) error {
	if isNil(todo) {
		return fmt.Errorf("%w: todo to add", ErrNilArgument)
	}
	if todo.Equal(p) || p.indexOf(todo) >= 0 {
		return nil
	}
	if sub, ok := todo.(*Project); ok && sub.reaches(p) {
		return fmt.Errorf("%w: %q is an ancestor of %q", ErrCycle, sub.description, p.description)
	}

	p.children = append(p.children, todo)
	if p.subs == nil {
		p.subs = make(map[Todo]subscription)
	}
	p.subs[todo] = todo.estimateNotifier().subscribe(p)
	p.estimateChanged(todo.EstimatedTimeToComplete())
	return nil
}

// Remove detaches the child equal to todo, if any. The child keeps its own
// state and its registrations with other projects.
func (p *Project) Remove(todo Todo) error {
	if isNil(todo) {
		return fmt.Errorf("%w: todo to remove", ErrNilArgument)
	}
	i := p.indexOf(todo)
	if i < 0 {
		return nil
	}

	child := p.children[i]
	if s, ok := p.subs[child]; ok {
		child.estimateNotifier().unsubscribe(s)
		delete(p.subs, child)
	}
	p.estimateChanged(-child.EstimatedTimeToComplete())
	p.children = slices.Delete(p.children, i, i+1)
	return nil
}

// Contains reports whether a child equal to todo is present.
func (p *Project) Contains(todo Todo) (bool, error) {
	if isNil(todo) {
		return false, fmt.Errorf("%w: todo to look up", ErrNilArgument)
	}
	return p.indexOf(todo) >= 0, nil
}

func (p *Project) indexOf(todo Todo) int {
	for i, c := range p.children {
		if c.Equal(todo) {
			return i
		}
	}
	return -1
}

// Children returns the direct children in insertion order.
func (p *Project) Children() []Todo {
	return slices.Clone(p.children)
}

// NumberOfTasks counts direct children only.
func (p *Project) NumberOfTasks() int {
	return len(p.children)
}

// Progress is the floored mean of the direct children's progress. A child
// project contributes its own mean, not its leaves. An empty project
// reports 0.
func (p *Project) Progress() int {
	if len(p.children) == 0 {
		return 0
	}
	sum := 0
	for _, c := range p.children {
		sum += c.Progress()
	}
	return sum / len(p.children)
}

// SumOfTaskProgress adds up the progress of every task below p.
func (p *Project) SumOfTaskProgress() int {
	return p.sumOfProgress()
}

func (p *Project) sumOfProgress() int {
	sum := 0
	for _, c := range p.children {
		sum += c.sumOfProgress()
	}
	return sum
}

// EstimatedTimeToComplete returns the running total over all descendants.
func (p *Project) EstimatedTimeToComplete() int {
	return p.etc
}

// IsCompleted is true when p has children and its progress is 100.
func (p *Project) IsCompleted() bool {
	return p.NumberOfTasks() != 0 && p.Progress() == 100
}

// Equal compares descriptions only; contents are ignored.
func (p *Project) Equal(other Todo) bool {
	o, ok := other.(*Project)
	if !ok || o == nil {
		return false
	}
	return p == o || p.description == o.description
}

func (p *Project) String() string {
	return fmt.Sprintf("%s [%s, %d tasks, %d%%, %dh]",
		p.description, p.priority, len(p.children), p.Progress(), p.etc)
}

func (p *Project) estimateChanged(delta int) {
	if delta == 0 {
		return
	}
	p.etc += delta
	p.estimates.broadcast(delta)
}

// reaches reports whether target is p or sits anywhere below p.
func (p *Project) reaches(target *Project) bool {
	seen := make(map[*Project]bool)
	var walk func(cur *Project) bool
	walk = func(cur *Project) bool {
		if cur == target {
			return true
		}
		if seen[cur] {
			return false
		}
		seen[cur] = true
		for _, c := range cur.children {
			if sub, ok := c.(*Project); ok && walk(sub) {
				return true
			}
		}
		return false
	}
	return walk(p)
}
