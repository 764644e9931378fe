package codec

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nhle/todobar/internal/model"
)

//go:embed record.schema.json
var recordSchemaJSON string

var recordSchema = jsonschema.MustCompileString("record.schema.json", recordSchemaJSON)

// ErrNotArray is returned when a batch is not a JSON array at all.
var ErrNotArray = errors.New("codec: batch is not a JSON array")

// RecordError describes why a single record was rejected.
type RecordError struct {
	Index int    // position in the batch, -1 for a lone record
	Path  string // field path inside the record
	Err   error
}

func (e *RecordError) Error() string {
	prefix := "record"
	if e.Index >= 0 {
		prefix = fmt.Sprintf("record %d", e.Index)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", prefix, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Err)
}

// Unwrap returns the underlying error.
func (e *RecordError) Unwrap() error {
	return e.Err
}

// Report is the outcome of parsing a batch.
type Report struct {
	Tasks    []*model.Task
	Rejected []*RecordError
	// SkippedTags counts malformed tag entries dropped from kept tasks.
	SkippedTags int
}

// Parse decodes a batch and returns the tasks of every acceptable record.
// Rejected records are left out silently; only a blob that is not a JSON
// array is an error.
func Parse(data []byte) ([]*model.Task, error) {
	report, err := ParseReport(data)
	if err != nil {
		return nil, err
	}
	return report.Tasks, nil
}

// ParseReport is Parse with the rejections spelled out.
func ParseReport(data []byte) (*Report, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return &Report{}, nil
	}

	var records []any
	if err := decodeJSON(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotArray, err)
	}
	return ParseRecords(records), nil
}

// ParseRecords applies ParseTask to each decoded record.
func ParseRecords(records []any) *Report {
	report := &Report{Tasks: make([]*model.Task, 0, len(records))}
	for i, rec := range records {
		task, skipped, err := decodeTask(rec)
		if err != nil {
			err.Index = i
			report.Rejected = append(report.Rejected, err)
			continue
		}
		report.SkippedTags += skipped
		report.Tasks = append(report.Tasks, task)
	}
	return report
}

// ParseTask converts one record into a task. The record may be raw JSON
// ([]byte, json.RawMessage, string) or an already decoded value. ok is false
// when the record is rejected.
func ParseTask(record any) (task *model.Task, ok bool) {
	task, err := ValidateTask(record)
	return task, err == nil
}

// ValidateTask is ParseTask returning the reason for a rejection.
func ValidateTask(record any) (*model.Task, error) {
	value, err := normalize(record)
	if err != nil {
		return nil, &RecordError{Index: -1, Err: err}
	}
	task, _, recErr := decodeTask(value)
	if recErr != nil {
		recErr.Index = -1
		return nil, recErr
	}
	return task, nil
}

// normalize turns record into the shapes produced by decodeJSON, so that
// numbers are json.Number and objects are map[string]any.
func normalize(record any) (any, error) {
	var raw []byte
	switch r := record.(type) {
	case json.RawMessage:
		raw = r
	case []byte:
		raw = r
	case string:
		raw = []byte(r)
	default:
		b, err := json.Marshal(record)
		if err != nil {
			return nil, fmt.Errorf("encoding record: %w", err)
		}
		raw = b
	}
	var value any
	if err := decodeJSON(raw, &value); err != nil {
		return nil, fmt.Errorf("decoding record: %w", err)
	}
	return value, nil
}

func decodeJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

// decodeTask validates rec against the record schema, then builds the task.
// It returns the number of tag entries it skipped.
func decodeTask(rec any) (*model.Task, int, *RecordError) {
	if err := recordSchema.Validate(rec); err != nil {
		return nil, 0, schemaError(err)
	}
	obj := rec.(map[string]any)

	task, err := model.NewTask(obj["description"].(string))
	if err != nil {
		return nil, 0, &RecordError{Path: "description", Err: err}
	}

	if raw, ok := obj["due-date"].(map[string]any); ok {
		due, err := decodeDueDate(raw)
		if err != nil {
			return nil, 0, &RecordError{Path: "due-date", Err: err}
		}
		task.SetDueDate(due)
	}

	p := obj["priority"].(map[string]any)
	task.SetPriority(model.NewPriority(p["urgent"].(bool), p["important"].(bool)))

	status, err := model.ParseStatus(obj["status"].(string))
	if err != nil {
		return nil, 0, &RecordError{Path: "status", Err: err}
	}
	if err := task.SetStatus(status); err != nil {
		return nil, 0, &RecordError{Path: "status", Err: err}
	}

	if raw, ok := obj["progress"]; ok {
		n, err := intValue(raw)
		if err == nil {
			err = task.SetProgress(n)
		}
		if err != nil {
			return nil, 0, &RecordError{Path: "progress", Err: err}
		}
	}
	if raw, ok := obj["estimated-time-to-complete"]; ok {
		n, err := intValue(raw)
		if err == nil {
			err = task.SetEstimatedTimeToComplete(n)
		}
		if err != nil {
			return nil, 0, &RecordError{Path: "estimated-time-to-complete", Err: err}
		}
	}

	skipped := 0
	if tags, ok := obj["tags"].([]any); ok {
		for _, entry := range tags {
			if !addTag(task, entry) {
				skipped++
			}
		}
	}
	return task, skipped, nil
}

func addTag(task *model.Task, entry any) bool {
	obj, ok := entry.(map[string]any)
	if !ok {
		return false
	}
	name, ok := obj["name"].(string)
	if !ok {
		return false
	}
	return task.AddTagName(name) == nil
}

// decodeDueDate reads a zero-based-month date in the local time zone.
func decodeDueDate(raw map[string]any) (model.DueDate, error) {
	var parts [5]int
	for i, key := range []string{"year", "month", "day", "hour", "minute"} {
		n, err := intValue(raw[key])
		if err != nil {
			return model.DueDate{}, fmt.Errorf("%s: %w", key, err)
		}
		parts[i] = n
	}
	return model.Date(parts[0], time.Month(parts[1]+1), parts[2], parts[3], parts[4], time.Local), nil
}

// intValue accepts integer literals only; 5.0 and 1e3 are rejected.
func intValue(v any) (int, error) {
	num, ok := v.(json.Number)
	if !ok {
		return 0, fmt.Errorf("expected integer, got %T", v)
	}
	n, err := strconv.ParseInt(num.String(), 10, 64)
	if err != nil || n < math.MinInt32 || n > math.MaxInt32 {
		return 0, fmt.Errorf("expected integer, got %s", num)
	}
	return int(n), nil
}

// schemaError reduces a schema failure to its first leaf cause.
func schemaError(err error) *RecordError {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &RecordError{Err: err}
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return &RecordError{
		Path: jsonPointerToPath(ve.InstanceLocation),
		Err:  errors.New(ve.Message),
	}
}

func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	path := ""
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			path += fmt.Sprintf("[%d]", idx)
			continue
		}
		if path == "" {
			path = part
		} else {
			path += "." + part
		}
	}
	return path
}
