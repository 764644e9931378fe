// Package cli implements the todobar command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"

	"github.com/nhle/todobar/internal/app"
	"github.com/nhle/todobar/internal/model"
	"github.com/nhle/todobar/internal/report"
	"github.com/nhle/todobar/internal/store"
	"github.com/nhle/todobar/internal/theme"
)

const usage = `Usage: todobar [--config PATH] [--log-level LEVEL] <command> [flags] [args]

Commands:
  add <line>                 add a task ("pay rent ## tomorrow; urgent; home")
  list [--group G] [--markdown]
                             show tasks grouped by tag, status or none
  update <n> [--progress P] [--etc H] [--status S] [--urgent] [--important]
                             change task n (numbered as in list --group none)
  remove <n>                 delete task n
  import <file>              merge a JSON batch into the task list
  export [file]              write the JSON batch to stdout or file
  history [--limit N]        list saved snapshots (sqlite backend)
  init                       write the effective configuration to --config
  help                       show this message
`

// CLI runs one todobar invocation.
type CLI struct {
	Stdout io.Writer
	Stderr io.Writer

	// FS is used for import and export files.
	FS afero.Fs

	// OpenStore opens the configured store. Defaults to store.Open.
	OpenStore func(model.StorageConfig) (store.Store, error)

	Now func() time.Time
}

// New returns a CLI writing to stdout and stderr on the OS filesystem.
func New(stdout, stderr io.Writer) *CLI {
	return &CLI{
		Stdout:    stdout,
		Stderr:    stderr,
		FS:        afero.NewOsFs(),
		OpenStore: store.Open,
		Now:       time.Now,
	}
}

// ExitCode maps an error returned by Run onto a process exit status.
func ExitCode(err error) int {
	var ce *CommandError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &ce):
		return 2
	default:
		return 1
	}
}

// Run parses args (without the program name) and executes the command.
func (c *CLI) Run(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("todobar", pflag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	configPath := fs.String("config", model.DefaultConfigPath(), "config file")
	fs.String("log-level", "", "debug, info, warn or error")
	help := fs.BoolP("help", "h", false, "show help")

	if err := fs.Parse(args); err != nil {
		return invalid("%v", err)
	}
	if *help {
		fmt.Fprint(c.Stdout, usage)
		return nil
	}

	cmd, err := Parse(fs.Args())
	if err != nil {
		return err
	}
	if cmd.Type == TypeHelp {
		fmt.Fprint(c.Stdout, usage)
		return nil
	}

	v := model.NewViper()
	if err := v.BindPFlag("log.level", fs.Lookup("log-level")); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	cfg, err := model.LoadConfigFrom(v, *configPath)
	if err != nil {
		return err
	}
	if cmd.Type == TypeInit {
		return c.initConfig(*configPath, cfg)
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return invalid("log level: %v", err)
	}
	logger := log.NewWithOptions(c.Stderr, log.Options{
		Level:  level,
		Prefix: "todobar",
	})
	theme.Apply(cfg.Display.Theme)

	st, err := c.OpenStore(cfg.Storage)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	ws := app.New(st, logger)
	if _, err := ws.Load(ctx); err != nil {
		return err
	}
	logger.Debug("running command", "command", cmd.Type, "backend", cfg.Storage.Backend)

	return c.Execute(ctx, cmd, ws, st, cfg)
}

// Execute runs a parsed command against a loaded workspace.
func (c *CLI) Execute(ctx context.Context, cmd Command, ws *app.Workspace, st store.Store, cfg *model.AppConfig) error {
	switch cmd.Type {
	case TypeAdd:
		return c.add(ctx, ws, *cmd.Add)
	case TypeList:
		return c.list(ws, cfg, *cmd.List)
	case TypeUpdate:
		return c.update(ctx, ws, *cmd.Update)
	case TypeRemove:
		return c.remove(ctx, ws, *cmd.Remove)
	case TypeImport:
		return c.importFile(ctx, ws, *cmd.Import)
	case TypeExport:
		return c.export(ws, *cmd.Export)
	case TypeHistory:
		return c.history(ctx, st, *cmd.History)
	default:
		return &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func (c *CLI) add(ctx context.Context, ws *app.Workspace, args AddArgs) error {
	task, err := ws.AddQuick(args.Line)
	if errors.Is(err, model.ErrEmptyString) {
		return invalid("add: %v", err)
	}
	if err != nil {
		return err
	}
	if err := ws.Save(ctx); err != nil {
		return err
	}
	fmt.Fprintf(c.Stdout, "Added #%d: %s\n", len(ws.Tasks()), task.Description())
	return nil
}

func (c *CLI) list(ws *app.Workspace, cfg *model.AppConfig, args ListArgs) error {
	if len(ws.Tasks()) == 0 {
		fmt.Fprintln(c.Stdout, "No tasks yet.")
		return nil
	}

	by := args.GroupBy
	if by == "" {
		by = cfg.Display.GroupBy
	}
	root, err := ws.Group(by)
	if err != nil {
		return err
	}

	if !args.Markdown {
		fmt.Fprint(c.Stdout, report.Tree(root, c.Now()))
		return nil
	}
	out, err := report.RenderMarkdown(report.Markdown(root, c.Now()), theme.GlamourStyle(cfg.Display.Theme))
	if err != nil {
		return err
	}
	fmt.Fprint(c.Stdout, out)
	return nil
}

func (c *CLI) update(ctx context.Context, ws *app.Workspace, args UpdateArgs) error {
	task, err := ws.Task(args.Index)
	if err != nil {
		return invalid("update: %v", err)
	}

	if args.Progress != nil {
		if err := task.SetProgress(*args.Progress); err != nil {
			return invalid("update: %v", err)
		}
	}
	if args.ETC != nil {
		if err := task.SetEstimatedTimeToComplete(*args.ETC); err != nil {
			return invalid("update: %v", err)
		}
	}
	if args.Status != nil {
		if err := task.SetStatus(*args.Status); err != nil {
			return invalid("update: %v", err)
		}
	}
	if args.Urgent != nil || args.Important != nil {
		p := task.Priority()
		urgent, important := p.Urgent(), p.Important()
		if args.Urgent != nil {
			urgent = *args.Urgent
		}
		if args.Important != nil {
			important = *args.Important
		}
		task.SetPriority(model.NewPriority(urgent, important))
	}

	if err := ws.Save(ctx); err != nil {
		return err
	}
	fmt.Fprintf(c.Stdout, "Updated #%d: %s\n", args.Index, task)
	return nil
}

func (c *CLI) remove(ctx context.Context, ws *app.Workspace, args RemoveArgs) error {
	task, err := ws.Task(args.Index)
	if err != nil {
		return invalid("remove: %v", err)
	}
	if err := ws.RemoveTask(task); err != nil {
		return err
	}
	if err := ws.Save(ctx); err != nil {
		return err
	}
	fmt.Fprintf(c.Stdout, "Removed #%d: %s\n", args.Index, task.Description())
	return nil
}

func (c *CLI) importFile(ctx context.Context, ws *app.Workspace, args ImportArgs) error {
	data, err := afero.ReadFile(c.FS, args.Path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", args.Path, err)
	}

	result, err := ws.Import(ctx, data)
	if err != nil {
		return invalid("import %s: %v", args.Path, err)
	}
	if err := ws.Save(ctx); err != nil {
		return err
	}

	fmt.Fprintf(c.Stdout, "Imported %d tasks (%d duplicates, %d rejected)\n",
		result.Added, result.Duplicates, len(result.Report.Rejected))
	for _, rej := range result.Report.Rejected {
		fmt.Fprintf(c.Stdout, "  %v\n", rej)
	}
	return nil
}

func (c *CLI) export(ws *app.Workspace, args ExportArgs) error {
	data, err := ws.Export()
	if err != nil {
		return err
	}
	if args.Path == "" {
		_, err = c.Stdout.Write(data)
		return err
	}

	if err := c.FS.MkdirAll(filepath.Dir(args.Path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(args.Path), err)
	}
	if err := afero.WriteFile(c.FS, args.Path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", args.Path, err)
	}
	fmt.Fprintf(c.Stdout, "Exported %d tasks to %s\n", len(ws.Tasks()), args.Path)
	return nil
}

func (c *CLI) history(ctx context.Context, st store.Store, args HistoryArgs) error {
	db, ok := st.(*store.SQLiteStore)
	if !ok {
		return &CommandError{Code: ErrCodeUnsupported, Message: "history needs the sqlite storage backend"}
	}

	infos, err := db.Snapshots(ctx, args.Limit)
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		fmt.Fprintln(c.Stdout, "No snapshots yet.")
		return nil
	}

	tw := tabwriter.NewWriter(c.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSAVED\tTASKS")
	for _, info := range infos {
		fmt.Fprintf(tw, "%s\t%s\t%d\n",
			info.ID, info.CreatedAt.Local().Format(time.DateTime), info.TaskCount)
	}
	return tw.Flush()
}

func (c *CLI) initConfig(path string, cfg *model.AppConfig) error {
	if _, err := os.Stat(path); err == nil {
		return invalid("init: %s already exists", path)
	}
	if err := model.SaveConfig(path, cfg); err != nil {
		return err
	}
	fmt.Fprintf(c.Stdout, "Wrote %s\n", path)
	return nil
}
