// Package report renders a project tree for the terminal, either as a
// styled lipgloss tree or as markdown passed through glamour.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/nhle/todobar/internal/model"
	"github.com/nhle/todobar/internal/theme"
)

// Tree renders root and its descendants. Children appear in priority order.
func Tree(root *model.Project, now time.Time) string {
	t := projectTree(root, now)
	t.RootStyle(theme.HeaderStyle)
	return t.String() + "\n" + theme.HelpStyle.Render(Summary(root)) + "\n"
}

func projectTree(p *model.Project, now time.Time) *tree.Tree {
	t := tree.Root(theme.ProjectStyle.Render(p.Description()) + " " + projectMetrics(p)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(theme.EnumeratorStyle)

	for child := range p.ByPriority() {
		switch c := child.(type) {
		case *model.Project:
			t.Child(projectTree(c, now))
		case *model.Task:
			t.Child(taskLine(c, now))
		}
	}
	return t
}

func projectMetrics(p *model.Project) string {
	progress := theme.ProgressStyle(p.Progress()).Render(fmt.Sprintf("%d%%", p.Progress()))
	return theme.DimmedStyle.Render("(") + progress +
		theme.DimmedStyle.Render(fmt.Sprintf(", %dh left)", p.EstimatedTimeToComplete()))
}

func taskLine(task *model.Task, now time.Time) string {
	parts := []string{
		theme.StatusStyle(task.Status()).Render("[" + task.Status().Label() + "]"),
	}

	description := task.Description()
	if task.Status() == model.StatusDone {
		description = theme.DimmedStyle.Render(description)
	}
	parts = append(parts, description)

	if level := task.Priority().Level(); level != model.LevelNone {
		parts = append(parts, theme.PriorityStyle(level).Render("!"+task.Priority().String()))
	}
	if due, ok := task.DueDate(); ok {
		style := theme.DueDateStyle
		if due.IsOverdue(now) && task.Status() != model.StatusDone {
			style = theme.OverdueStyle
		}
		parts = append(parts, style.Render("due "+due.String()))
	}
	if task.Progress() > 0 {
		parts = append(parts, theme.ProgressStyle(task.Progress()).Render(fmt.Sprintf("%d%%", task.Progress())))
	}
	if etc := task.EstimatedTimeToComplete(); etc > 0 {
		parts = append(parts, theme.DimmedStyle.Render(fmt.Sprintf("%dh", etc)))
	}
	for _, tag := range task.Tags() {
		parts = append(parts, theme.TagStyle.Render(tag.String()))
	}
	return strings.Join(parts, " ")
}

// Summary is a one-line account of root's aggregate metrics.
func Summary(root *model.Project) string {
	return fmt.Sprintf("%d items · %d%% done · %dh left",
		root.NumberOfTasks(), root.Progress(), root.EstimatedTimeToComplete())
}

// Markdown renders root as a markdown document. Projects become headings
// and tasks become checklist items.
func Markdown(root *model.Project, now time.Time) string {
	var b strings.Builder
	writeProject(&b, root, 1, now)
	return b.String()
}

func writeProject(b *strings.Builder, p *model.Project, depth int, now time.Time) {
	fmt.Fprintf(b, "%s %s\n\n", strings.Repeat("#", min(depth, 6)), p.Description())
	fmt.Fprintf(b, "_%d%% done, %dh left_\n\n", p.Progress(), p.EstimatedTimeToComplete())

	var subprojects []*model.Project
	wroteTask := false
	for child := range p.ByPriority() {
		switch c := child.(type) {
		case *model.Project:
			subprojects = append(subprojects, c)
		case *model.Task:
			writeTask(b, c, now)
			wroteTask = true
		}
	}
	if wroteTask {
		b.WriteString("\n")
	}
	for _, sub := range subprojects {
		writeProject(b, sub, depth+1, now)
	}
}

func writeTask(b *strings.Builder, task *model.Task, now time.Time) {
	box := " "
	if task.Status() == model.StatusDone {
		box = "x"
	}
	fmt.Fprintf(b, "- [%s] **%s** (%s)", box, task.Description(), task.Status().Label())

	if level := task.Priority().Level(); level != model.LevelNone {
		fmt.Fprintf(b, " · %s", task.Priority())
	}
	if due, ok := task.DueDate(); ok {
		if due.IsOverdue(now) && task.Status() != model.StatusDone {
			fmt.Fprintf(b, " · **overdue** %s", due)
		} else {
			fmt.Fprintf(b, " · due %s", due)
		}
	}
	if task.Progress() > 0 || task.EstimatedTimeToComplete() > 0 {
		fmt.Fprintf(b, " · %d%%, %dh", task.Progress(), task.EstimatedTimeToComplete())
	}
	for _, tag := range task.Tags() {
		fmt.Fprintf(b, " `%s`", tag)
	}
	b.WriteString("\n")
}

// RenderMarkdown passes md through glamour with the given standard style.
func RenderMarkdown(md, style string) (string, error) {
	if strings.TrimSpace(md) == "" {
		return "", nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}
