// Package quickadd builds tasks from one-line shorthand such as
//
//	file taxes ## tomorrow; urgent; home; in progress
//
// Everything before "##" is the description. The remaining text is split on
// ";" into tokens. Recognised tokens set the due date (today, tomorrow), the
// priority flags (urgent, important) or the status (todo, up next,
// in progress, done). Any other token becomes a tag.
package quickadd

import (
	"fmt"
	"strings"
	"time"

	"github.com/nhle/todobar/internal/model"
)

// Separator splits the description from the token list.
const Separator = "##"

var statusTokens = map[string]model.Status{
	"todo":        model.StatusTodo,
	"up next":     model.StatusUpNext,
	"in progress": model.StatusInProgress,
	"done":        model.StatusDone,
}

// Parse builds a task from line. Due dates resolve against now and fall at
// 23:59 in now's location.
func Parse(line string, now time.Time) (*model.Task, error) {
	description, rest, found := strings.Cut(line, Separator)
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("%w: description", model.ErrEmptyString)
	}

	task, err := model.NewTask(description)
	if err != nil {
		return nil, err
	}
	if !found {
		return task, nil
	}

	urgent, important := false, false
	for _, raw := range strings.Split(rest, ";") {
		token := strings.TrimSpace(raw)
		if token == "" {
			continue
		}
		key := strings.Join(strings.Fields(strings.ToLower(token)), " ")

		switch key {
		case "today":
			task.SetDueDate(endOfDay(now, 0))
		case "tomorrow":
			task.SetDueDate(endOfDay(now, 1))
		case "urgent":
			urgent = true
		case "important":
			important = true
		default:
			if status, ok := statusTokens[key]; ok {
				if err := task.SetStatus(status); err != nil {
					return nil, err
				}
				continue
			}
			if err := task.AddTagName(token); err != nil {
				return nil, fmt.Errorf("adding tag %q: %w", token, err)
			}
		}
	}
	task.SetPriority(model.NewPriority(urgent, important))
	return task, nil
}

func endOfDay(now time.Time, days int) model.DueDate {
	y, m, d := now.Date()
	return model.Date(y, m, d+days, 23, 59, now.Location())
}
