package app

import (
	"fmt"
	"sort"

	"github.com/nhle/todobar/internal/model"
)

// Group rebuilds the session projects from the task list and returns the
// root. by is one of model.GroupByTag, model.GroupByStatus or
// model.GroupByNone.
//
// Grouping by tag puts a task in one project per tag ("#home"); untagged
// tasks go to Inbox. Grouping by status makes one project per non-empty
// status. Every group project hangs off the root, so the root's estimate
// and progress cover the whole list.
func (w *Workspace) Group(by string) (*model.Project, error) {
	w.resetProjects()

	root, err := w.Project(RootProject)
	if err != nil {
		return nil, err
	}

	switch by {
	case model.GroupByTag:
		err = w.groupByTag(root)
	case model.GroupByStatus:
		err = w.groupByStatus(root)
	case model.GroupByNone:
		err = w.addAll(root, AllTasksProject, w.tasks)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGrouping, by)
	}
	if err != nil {
		return nil, err
	}

	w.log.Debug("grouped tasks", "by", by, "projects", len(w.projects)-1)
	return root, nil
}

func (w *Workspace) groupByTag(root *model.Project) error {
	byTag := make(map[string][]*model.Task)
	var untagged []*model.Task
	for _, task := range w.tasks {
		tags := task.Tags()
		if len(tags) == 0 {
			untagged = append(untagged, task)
			continue
		}
		for _, tag := range tags {
			byTag[tag.String()] = append(byTag[tag.String()], task)
		}
	}

	names := make([]string, 0, len(byTag))
	for name := range byTag {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := w.addAll(root, name, byTag[name]); err != nil {
			return err
		}
	}
	if len(untagged) > 0 {
		return w.addAll(root, InboxProject, untagged)
	}
	return nil
}

func (w *Workspace) groupByStatus(root *model.Project) error {
	byStatus := make(map[model.Status][]*model.Task)
	for _, task := range w.tasks {
		byStatus[task.Status()] = append(byStatus[task.Status()], task)
	}
	for _, status := range model.ValidStatuses() {
		tasks := byStatus[status]
		if len(tasks) == 0 {
			continue
		}
		if err := w.addAll(root, status.Label(), tasks); err != nil {
			return err
		}
	}
	return nil
}

func (w *Workspace) addAll(root *model.Project, name string, tasks []*model.Task) error {
	p, err := w.Project(name)
	if err != nil {
		return err
	}
	for _, task := range tasks {
		if err := p.Add(task); err != nil {
			return fmt.Errorf("adding %q to %q: %w", task.Description(), name, err)
		}
	}
	return root.Add(p)
}
