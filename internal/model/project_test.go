package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProject(t *testing.T, description string) *Project {
	t.Helper()
	p, err := NewProject(description)
	require.NoError(t, err)
	return p
}

func TestNewProject(t *testing.T) {
	p := newTestProject(t, "aaa")
	assert.Equal(t, "aaa", p.Description())
	assert.Equal(t, 0, p.NumberOfTasks())

	_, err := NewProject("")
	assert.ErrorIs(t, err, ErrEmptyString)
}

func TestProjectAddRemove(t *testing.T) {
	p := newTestProject(t, "aaa")
	t1 := newTestTask(t, "1")
	t2 := newTestTask(t, "2")

	require.NoError(t, p.Add(t1))
	require.NoError(t, p.Add(t2))
	assert.Equal(t, 2, p.NumberOfTasks())
	assert.Equal(t, []Todo{t1, t2}, p.Children())

	require.NoError(t, p.Remove(t2))
	assert.Equal(t, 1, p.NumberOfTasks())
	ok, err := p.Contains(t2)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, p.Remove(t1))
	assert.Equal(t, 0, p.NumberOfTasks())

	require.NoError(t, p.Remove(newTestTask(t, "absent")))
	assert.Equal(t, 0, p.NumberOfTasks())
}

func TestProjectNilArguments(t *testing.T) {
	p := newTestProject(t, "aaa")
	var task *Task

	assert.ErrorIs(t, p.Add(nil), ErrNilArgument)
	assert.ErrorIs(t, p.Add(task), ErrNilArgument)
	assert.ErrorIs(t, p.Remove(nil), ErrNilArgument)
	_, err := p.Contains(nil)
	assert.ErrorIs(t, err, ErrNilArgument)
}

func TestProjectAddSelfIsNoop(t *testing.T) {
	p := newTestProject(t, "aaa")
	require.NoError(t, p.Add(p))
	assert.Equal(t, 0, p.NumberOfTasks())

	// A same-named project is equal to p and is refused the same way.
	require.NoError(t, p.Add(newTestProject(t, "aaa")))
	assert.Equal(t, 0, p.NumberOfTasks())
}

func TestProjectAddDuplicateIsNoop(t *testing.T) {
	p := newTestProject(t, "aaa")
	t1 := newTestTask(t, "1")

	require.NoError(t, p.Add(t1))
	require.NoError(t, p.Add(t1))
	require.NoError(t, p.Add(newTestTask(t, "1")))
	assert.Equal(t, 1, p.NumberOfTasks())
}

func TestProjectAddCycle(t *testing.T) {
	outer := newTestProject(t, "outer")
	inner := newTestProject(t, "inner")
	leaf := newTestProject(t, "leaf")

	require.NoError(t, outer.Add(inner))
	require.NoError(t, inner.Add(leaf))

	assert.ErrorIs(t, leaf.Add(outer), ErrCycle)
	assert.ErrorIs(t, inner.Add(outer), ErrCycle)
	assert.Equal(t, 0, leaf.NumberOfTasks())
}

func TestProjectEquality(t *testing.T) {
	a := newTestProject(t, "a")
	b := newTestProject(t, "a")
	require.NoError(t, b.Add(newTestTask(t, "x")))

	assert.True(t, a.Equal(a))
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(newTestProject(t, "b")))
	assert.False(t, a.Equal(newTestTask(t, "a")))
}

func TestProgressEmptyProject(t *testing.T) {
	p := newTestProject(t, "aaa")
	assert.Equal(t, 0, p.Progress())
	assert.False(t, p.IsCompleted())
}

func TestProgressAverage(t *testing.T) {
	p := newTestProject(t, "aaa")
	t1 := newTestTask(t, "1")
	t2 := newTestTask(t, "2")

	require.NoError(t, p.Add(t1))
	require.NoError(t, p.Add(t2))
	assert.Equal(t, 0, p.Progress())

	require.NoError(t, t1.SetProgress(100))
	assert.Equal(t, 50, p.Progress())
}

func TestProgressFloorsAndNests(t *testing.T) {
	p := newTestProject(t, "aaa")
	a := newTestTask(t, "task1")
	b := newTestTask(t, "task2")
	c := newTestTask(t, "task3")
	for _, task := range []*Task{a, b, c} {
		require.NoError(t, p.Add(task))
	}

	require.NoError(t, a.SetProgress(100))
	assert.Equal(t, 33, p.Progress())

	require.NoError(t, b.SetProgress(50))
	require.NoError(t, c.SetProgress(25))
	assert.Equal(t, 58, p.Progress())

	// The parent averages its two direct children (0 and 58), not the leaves.
	p2 := newTestProject(t, "project 2")
	require.NoError(t, p2.Add(newTestTask(t, "task 4")))
	require.NoError(t, p2.Add(p))
	assert.Equal(t, 29, p2.Progress())
}

func TestIsCompleted(t *testing.T) {
	p := newTestProject(t, "aaa")
	task := newTestTask(t, "a")

	require.NoError(t, p.Add(task))
	assert.False(t, p.IsCompleted())

	require.NoError(t, task.SetProgress(100))
	assert.True(t, p.IsCompleted())
}

func TestNumberOfTasksCountsDirectChildren(t *testing.T) {
	p := newTestProject(t, "aaa")
	pa := newTestProject(t, "Project a")
	pb := newTestProject(t, "Project b")
	ba := newTestTask(t, "Task b")

	require.NoError(t, pa.Add(newTestTask(t, "Task a")))
	require.NoError(t, pb.Add(ba))
	require.NoError(t, pb.Add(newTestProject(t, "Project c")))

	require.NoError(t, p.Add(newTestTask(t, "Test task")))
	require.NoError(t, p.Add(pa))
	require.NoError(t, p.Add(ba))

	assert.Equal(t, 3, p.NumberOfTasks())
}

func TestSumOfTaskProgress(t *testing.T) {
	p := newTestProject(t, "aaa")
	pa := newTestProject(t, "Project a")
	ta := newTestTask(t, "Task a")
	ba := newTestTask(t, "Task b")
	top := newTestTask(t, "Test task")
	require.NoError(t, ta.SetProgress(50))
	require.NoError(t, ba.SetProgress(20))
	require.NoError(t, top.SetProgress(87))

	require.NoError(t, pa.Add(ta))
	require.NoError(t, p.Add(top))
	require.NoError(t, p.Add(pa))
	require.NoError(t, p.Add(ba))

	assert.Equal(t, 50+20+87, p.SumOfTaskProgress())
}

func TestEstimatedTimePropagatesLive(t *testing.T) {
	p1 := newTestProject(t, "aaa")
	t1 := newTestTask(t, "task1")
	t2 := newTestTask(t, "task2")
	t3 := newTestTask(t, "task3")
	for _, task := range []*Task{t1, t2, t3} {
		require.NoError(t, p1.Add(task))
	}
	assert.Equal(t, 0, p1.EstimatedTimeToComplete())

	require.NoError(t, t1.SetEstimatedTimeToComplete(8))
	assert.Equal(t, 8, p1.EstimatedTimeToComplete())
	require.NoError(t, t2.SetEstimatedTimeToComplete(2))
	require.NoError(t, t3.SetEstimatedTimeToComplete(10))
	assert.Equal(t, 20, p1.EstimatedTimeToComplete())

	p2 := newTestProject(t, "project 2")
	t4 := newTestTask(t, "task 4")
	require.NoError(t, t4.SetEstimatedTimeToComplete(4))
	require.NoError(t, p2.Add(t4))
	require.NoError(t, p2.Add(p1))
	assert.Equal(t, 24, p2.EstimatedTimeToComplete())

	require.NoError(t, t3.SetEstimatedTimeToComplete(1))
	assert.Equal(t, 11, p1.EstimatedTimeToComplete())
	assert.Equal(t, 15, p2.EstimatedTimeToComplete())

	require.NoError(t, p1.Remove(t1))
	assert.Equal(t, 3, p1.EstimatedTimeToComplete())
	assert.Equal(t, 7, p2.EstimatedTimeToComplete())

	// A detached task no longer reports to its former parent.
	require.NoError(t, t1.SetEstimatedTimeToComplete(50))
	assert.Equal(t, 3, p1.EstimatedTimeToComplete())
}

func TestEstimatedTimeSharedChild(t *testing.T) {
	a := newTestProject(t, "a")
	b := newTestProject(t, "b")
	shared := newTestTask(t, "shared")
	require.NoError(t, shared.SetEstimatedTimeToComplete(5))

	require.NoError(t, a.Add(shared))
	require.NoError(t, b.Add(shared))
	assert.Equal(t, 2, shared.estimateNotifier().subscribers())

	require.NoError(t, a.Remove(shared))
	require.NoError(t, shared.SetEstimatedTimeToComplete(9))
	assert.Equal(t, 0, a.EstimatedTimeToComplete())
	assert.Equal(t, 9, b.EstimatedTimeToComplete())
	assert.Equal(t, 1, shared.estimateNotifier().subscribers())
}

func TestEstimatedTimeSameNamedSubprojects(t *testing.T) {
	parent := newTestProject(t, "parent")
	first := newTestProject(t, "twin")
	second := newTestProject(t, "twin")
	t1 := newTestTask(t, "one")
	t2 := newTestTask(t, "two")
	require.NoError(t, first.Add(t1))
	require.NoError(t, second.Add(t2))

	require.NoError(t, parent.Add(first))
	require.NoError(t, parent.Add(second))
	assert.Equal(t, 1, parent.NumberOfTasks(), "equal projects are not added twice")

	// Only the project actually added reports to the parent.
	require.NoError(t, t2.SetEstimatedTimeToComplete(7))
	assert.Equal(t, 0, parent.EstimatedTimeToComplete())
	require.NoError(t, t1.SetEstimatedTimeToComplete(3))
	assert.Equal(t, 3, parent.EstimatedTimeToComplete())

	// Removing by an equal-but-distinct project detaches the stored child.
	require.NoError(t, parent.Remove(second))
	assert.Equal(t, 0, parent.NumberOfTasks())
	assert.Equal(t, 0, parent.EstimatedTimeToComplete())
	assert.Equal(t, 0, first.estimateNotifier().subscribers())
}
