package codec

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nhle/todobar/internal/model"
)

type taskRecord struct {
	Description             string         `json:"description"`
	DueDate                 *dueDateRecord `json:"due-date"`
	Priority                priorityRecord `json:"priority"`
	Status                  model.Status   `json:"status"`
	Tags                    []tagRecord    `json:"tags"`
	Progress                int            `json:"progress"`
	EstimatedTimeToComplete int            `json:"estimated-time-to-complete"`
}

type dueDateRecord struct {
	Year   int `json:"year"`
	Month  int `json:"month"`
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

type priorityRecord struct {
	Urgent    bool `json:"urgent"`
	Important bool `json:"important"`
}

type tagRecord struct {
	Name string `json:"name"`
}

// Serialize encodes tasks as a batch, in order. Nil entries are skipped.
func Serialize(tasks []*model.Task) ([]byte, error) {
	records := make([]taskRecord, 0, len(tasks))
	for _, task := range tasks {
		if task == nil {
			continue
		}
		records = append(records, toRecord(task))
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding tasks: %w", err)
	}
	return append(data, '\n'), nil
}

// SerializeTask encodes a single record.
func SerializeTask(task *model.Task) ([]byte, error) {
	if task == nil {
		return nil, model.ErrNilArgument
	}
	data, err := json.Marshal(toRecord(task))
	if err != nil {
		return nil, fmt.Errorf("encoding task: %w", err)
	}
	return data, nil
}

func toRecord(task *model.Task) taskRecord {
	rec := taskRecord{
		Description: task.Description(),
		Priority: priorityRecord{
			Urgent:    task.Priority().Urgent(),
			Important: task.Priority().Important(),
		},
		Status:                  task.Status(),
		Tags:                    []tagRecord{},
		Progress:                task.Progress(),
		EstimatedTimeToComplete: task.EstimatedTimeToComplete(),
	}
	if due, ok := task.DueDate(); ok {
		at := due.Time().In(time.Local)
		rec.DueDate = &dueDateRecord{
			Year:   at.Year(),
			Month:  int(at.Month()) - 1,
			Day:    at.Day(),
			Hour:   at.Hour(),
			Minute: at.Minute(),
		}
	}
	for _, tag := range task.Tags() {
		rec.Tags = append(rec.Tags, tagRecord{Name: tag.Name()})
	}
	return rec
}
