package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/nhle/todobar/internal/model"
)

type Type string

const (
	TypeAdd     Type = "add"
	TypeList    Type = "list"
	TypeUpdate  Type = "update"
	TypeRemove  Type = "remove"
	TypeImport  Type = "import"
	TypeExport  Type = "export"
	TypeHistory Type = "history"
	TypeInit    Type = "init"
	TypeHelp    Type = "help"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeUnsupported     ErrorCode = "unsupported"
)

// CommandError is a usage problem. The process exits with status 2.
type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func invalid(format string, args ...any) *CommandError {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

type AddArgs struct {
	Line string
}

type ListArgs struct {
	// GroupBy is empty when the configured default applies.
	GroupBy  string
	Markdown bool
}

// UpdateArgs carries only the fields given on the command line.
type UpdateArgs struct {
	Index     int
	Progress  *int
	ETC       *int
	Status    *model.Status
	Urgent    *bool
	Important *bool
}

type RemoveArgs struct {
	Index int
}

type ImportArgs struct {
	Path string
}

type ExportArgs struct {
	// Path is empty for stdout.
	Path string
}

type HistoryArgs struct {
	Limit int
}

type Command struct {
	Type    Type
	Add     *AddArgs
	List    *ListArgs
	Update  *UpdateArgs
	Remove  *RemoveArgs
	Import  *ImportArgs
	Export  *ExportArgs
	History *HistoryArgs
}

// Parse turns the words after the global flags into a Command.
func Parse(args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "no command given"}
	}

	head := strings.ToLower(args[0])
	rest := args[1:]

	switch Type(head) {
	case TypeAdd:
		line := strings.TrimSpace(strings.Join(rest, " "))
		if line == "" {
			return Command{}, invalid("add needs a description")
		}
		return Command{Type: TypeAdd, Add: &AddArgs{Line: line}}, nil
	case TypeList, "ls":
		return parseList(rest)
	case TypeUpdate:
		return parseUpdate(rest)
	case TypeRemove, "rm":
		n, err := parseIndex("remove", rest)
		if err != nil {
			return Command{}, err
		}
		return Command{Type: TypeRemove, Remove: &RemoveArgs{Index: n}}, nil
	case TypeImport:
		if len(rest) != 1 {
			return Command{}, invalid("import takes exactly one file")
		}
		return Command{Type: TypeImport, Import: &ImportArgs{Path: rest[0]}}, nil
	case TypeExport:
		if len(rest) > 1 {
			return Command{}, invalid("export takes at most one file")
		}
		args := &ExportArgs{}
		if len(rest) == 1 {
			args.Path = rest[0]
		}
		return Command{Type: TypeExport, Export: args}, nil
	case TypeHistory:
		return parseHistory(rest)
	case TypeInit:
		if len(rest) != 0 {
			return Command{}, invalid("init takes no arguments")
		}
		return Command{Type: TypeInit}, nil
	case TypeHelp:
		return Command{Type: TypeHelp}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command %q", args[0])}
	}
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)
	return fs
}

func parseFlags(fs *pflag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return invalid("%s: see todobar help", fs.Name())
		}
		return invalid("%s: %v", fs.Name(), err)
	}
	return nil
}

func parseList(args []string) (Command, error) {
	fs := newFlagSet("list")
	group := fs.StringP("group", "g", "", "group by tag, status or none")
	markdown := fs.BoolP("markdown", "m", false, "render as markdown")
	if err := parseFlags(fs, args); err != nil {
		return Command{}, err
	}
	if fs.NArg() > 0 {
		return Command{}, invalid("list takes no arguments")
	}

	switch *group {
	case "", model.GroupByTag, model.GroupByStatus, model.GroupByNone:
	default:
		return Command{}, invalid("unknown grouping %q", *group)
	}
	return Command{Type: TypeList, List: &ListArgs{GroupBy: *group, Markdown: *markdown}}, nil
}

func parseUpdate(args []string) (Command, error) {
	fs := newFlagSet("update")
	progress := fs.Int("progress", 0, "progress percentage 0-100")
	etc := fs.Int("etc", 0, "estimated hours to complete")
	status := fs.String("status", "", "todo, up-next, in-progress or done")
	urgent := fs.Bool("urgent", false, "mark urgent")
	important := fs.Bool("important", false, "mark important")
	if err := parseFlags(fs, args); err != nil {
		return Command{}, err
	}

	n, err := parseIndex("update", fs.Args())
	if err != nil {
		return Command{}, err
	}
	upd := &UpdateArgs{Index: n}

	if fs.Changed("progress") {
		if *progress < 0 || *progress > 100 {
			return Command{}, invalid("progress must be between 0 and 100, got %d", *progress)
		}
		upd.Progress = progress
	}
	if fs.Changed("etc") {
		if *etc < 0 {
			return Command{}, invalid("etc must not be negative, got %d", *etc)
		}
		upd.ETC = etc
	}
	if fs.Changed("status") {
		s, err := parseStatus(*status)
		if err != nil {
			return Command{}, invalid("%v", err)
		}
		upd.Status = &s
	}
	if fs.Changed("urgent") {
		upd.Urgent = urgent
	}
	if fs.Changed("important") {
		upd.Important = important
	}
	if upd.Progress == nil && upd.ETC == nil && upd.Status == nil && upd.Urgent == nil && upd.Important == nil {
		return Command{}, invalid("update needs at least one of --progress, --etc, --status, --urgent, --important")
	}
	return Command{Type: TypeUpdate, Update: upd}, nil
}

func parseHistory(args []string) (Command, error) {
	fs := newFlagSet("history")
	limit := fs.IntP("limit", "n", 10, "number of snapshots to show, 0 for all")
	if err := parseFlags(fs, args); err != nil {
		return Command{}, err
	}
	if fs.NArg() > 0 {
		return Command{}, invalid("history takes no arguments")
	}
	return Command{Type: TypeHistory, History: &HistoryArgs{Limit: *limit}}, nil
}

func parseIndex(name string, args []string) (int, error) {
	if len(args) != 1 {
		return 0, invalid("%s takes exactly one task number", name)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, invalid("%s: task number must be a positive integer, got %q", name, args[0])
	}
	return n, nil
}

// parseStatus accepts the record literal and the friendlier "in-progress"
// and "up next" spellings.
func parseStatus(raw string) (model.Status, error) {
	norm := strings.ToUpper(strings.TrimSpace(raw))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	return model.ParseStatus(norm)
}
