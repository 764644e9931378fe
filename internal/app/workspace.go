// Package app holds the session state the CLI works on: the flat task list
// loaded from a store and the projects built over it.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nhle/todobar/internal/codec"
	"github.com/nhle/todobar/internal/model"
	"github.com/nhle/todobar/internal/quickadd"
	"github.com/nhle/todobar/internal/store"
)

var (
	ErrTaskNotFound    = errors.New("app: task not found")
	ErrUnknownGrouping = errors.New("app: unknown grouping")
)

// Names of the projects Group builds.
const (
	RootProject     = "Everything"
	InboxProject    = "Inbox"
	AllTasksProject = "All tasks"
)

// Workspace is a single-user session over a Store. It is not safe for
// concurrent use.
type Workspace struct {
	store store.Store
	log   *log.Logger
	now   func() time.Time

	tasks    []*model.Task
	projects []*model.Project
	byName   map[string]*model.Project
}

// ImportResult summarises an Import.
type ImportResult struct {
	Added      int
	Duplicates int
	Report     *codec.Report
}

// New creates an empty workspace. A nil logger discards output.
func New(s store.Store, logger *log.Logger) *Workspace {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Workspace{
		store:  s,
		log:    logger,
		now:    time.Now,
		byName: make(map[string]*model.Project),
	}
}

// Load replaces the task list with the stored batch. Rejected records are
// logged and left out.
func (w *Workspace) Load(ctx context.Context) (*codec.Report, error) {
	data, err := w.store.LoadTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}

	report, err := codec.ParseReport(data)
	if err != nil {
		return nil, fmt.Errorf("parsing stored tasks: %w", err)
	}
	w.logRejected(report)

	w.tasks = report.Tasks
	w.resetProjects()
	w.log.Debug("loaded tasks", "count", len(w.tasks), "rejected", len(report.Rejected))
	return report, nil
}

// Save writes the task list to the store.
func (w *Workspace) Save(ctx context.Context) error {
	data, err := w.Export()
	if err != nil {
		return err
	}
	if err := w.store.SaveTasks(ctx, data); err != nil {
		return fmt.Errorf("saving tasks: %w", err)
	}
	w.log.Debug("saved tasks", "count", len(w.tasks))
	return nil
}

// Import appends the acceptable records of data, skipping tasks equal to
// one already present.
func (w *Workspace) Import(ctx context.Context, data []byte) (*ImportResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report, err := codec.ParseReport(data)
	if err != nil {
		return nil, fmt.Errorf("parsing import: %w", err)
	}
	w.logRejected(report)

	result := &ImportResult{Report: report}
	for _, task := range report.Tasks {
		if w.containsEqual(task) {
			result.Duplicates++
			continue
		}
		w.tasks = append(w.tasks, task)
		result.Added++
	}
	w.log.Info("imported tasks",
		"added", result.Added,
		"duplicates", result.Duplicates,
		"rejected", len(report.Rejected))
	return result, nil
}

// Export serializes the task list.
func (w *Workspace) Export() ([]byte, error) {
	data, err := codec.Serialize(w.tasks)
	if err != nil {
		return nil, fmt.Errorf("exporting tasks: %w", err)
	}
	return data, nil
}

// AddTask appends task to the list.
func (w *Workspace) AddTask(task *model.Task) error {
	if task == nil {
		return fmt.Errorf("%w: task", model.ErrNilArgument)
	}
	w.tasks = append(w.tasks, task)
	return nil
}

// AddQuick parses a quick-add line and appends the result.
func (w *Workspace) AddQuick(line string) (*model.Task, error) {
	task, err := quickadd.Parse(line, w.now())
	if err != nil {
		return nil, err
	}
	return task, w.AddTask(task)
}

// RemoveTask deletes task from the list and detaches it from every
// session project holding it.
func (w *Workspace) RemoveTask(task *model.Task) error {
	if task == nil {
		return fmt.Errorf("%w: task", model.ErrNilArgument)
	}
	i := slices.Index(w.tasks, task)
	if i < 0 {
		return ErrTaskNotFound
	}
	w.tasks = slices.Delete(w.tasks, i, i+1)

	for _, p := range w.projects {
		if !holds(p, task) {
			continue
		}
		if err := p.Remove(task); err != nil {
			return fmt.Errorf("detaching from %q: %w", p.Description(), err)
		}
	}
	return nil
}

// Task returns the n-th task, counting from 1.
func (w *Workspace) Task(n int) (*model.Task, error) {
	if n < 1 || n > len(w.tasks) {
		return nil, fmt.Errorf("%w: #%d (have %d)", ErrTaskNotFound, n, len(w.tasks))
	}
	return w.tasks[n-1], nil
}

// Tasks returns the task list in order.
func (w *Workspace) Tasks() []*model.Task {
	return slices.Clone(w.tasks)
}

// Project returns the session project named name, creating it on first use.
func (w *Workspace) Project(name string) (*model.Project, error) {
	if p, ok := w.byName[name]; ok {
		return p, nil
	}
	p, err := model.NewProject(name)
	if err != nil {
		return nil, err
	}
	w.byName[name] = p
	w.projects = append(w.projects, p)
	return p, nil
}

// Projects returns the session projects in creation order.
func (w *Workspace) Projects() []*model.Project {
	return slices.Clone(w.projects)
}

func (w *Workspace) resetProjects() {
	w.projects = nil
	w.byName = make(map[string]*model.Project)
}

func (w *Workspace) containsEqual(task *model.Task) bool {
	return slices.ContainsFunc(w.tasks, func(t *model.Task) bool {
		return t.Equal(task)
	})
}

func (w *Workspace) logRejected(report *codec.Report) {
	for _, rej := range report.Rejected {
		w.log.Warn("skipping record", "index", rej.Index, "path", rej.Path, "err", rej.Err)
	}
	if report.SkippedTags > 0 {
		w.log.Warn("skipped malformed tags", "count", report.SkippedTags)
	}
}

// holds reports whether task itself, not merely an equal task, is a child
// of p.
func holds(p *model.Project, task *model.Task) bool {
	return slices.ContainsFunc(p.Children(), func(c model.Todo) bool {
		t, ok := c.(*model.Task)
		return ok && t == task
	})
}
