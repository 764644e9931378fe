package model

import "iter"

// Iterator walks a project's direct children by ascending priority level,
// keeping insertion order within a level.
//
// The order is fixed when the iterator is created: children and their
// levels are copied then, so later priority changes or membership changes
// do not affect a traversal already under way.
type Iterator struct {
	queue []Todo
	pos   int
}

// Iterator returns a priority-ordered iterator over the current children.
func (p *Project) Iterator() *Iterator {
	queue := make([]Todo, 0, len(p.children))
	for level := LevelUrgentImportant; level <= LevelNone; level++ {
		for _, c := range p.children {
			if c.Priority().Level() == level {
				queue = append(queue, c)
			}
		}
	}
	return &Iterator{queue: queue}
}

// HasNext reports whether Next will return a todo.
func (it *Iterator) HasNext() bool {
	return it.pos < len(it.queue)
}

// Next returns the following todo, or ErrIterationDone once exhausted.
func (it *Iterator) Next() (Todo, error) {
	if !it.HasNext() {
		return nil, ErrIterationDone
	}
	t := it.queue[it.pos]
	it.pos++
	return t, nil
}

// ByPriority yields the children in iterator order. Each range over the
// returned sequence takes a fresh snapshot.
func (p *Project) ByPriority() iter.Seq[Todo] {
	return func(yield func(Todo) bool) {
		it := p.Iterator()
		for it.HasNext() {
			t, _ := it.Next()
			if !yield(t) {
				return
			}
		}
	}
}
