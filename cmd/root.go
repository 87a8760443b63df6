// Package cmd implements the CLI command structure for todo.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todo-go/internal/app"
	"github.com/nibzard/todo-go/internal/config"
	"github.com/nibzard/todo-go/internal/logging"
	"github.com/nibzard/todo-go/internal/storage"
	"github.com/nibzard/todo-go/internal/todo"
	"github.com/nibzard/todo-go/internal/utils"
	"github.com/nibzard/todo-go/internal/view"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Output streams, replaced in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

const defaultLogLines = 50

// Run executes the todo CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("todo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// No args or a leading flag means the TUI
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "ls", "list":
		return lsCommand(cfg, remainingArgs)
	case "add":
		return addCommand(cfg, remainingArgs)
	case "done":
		return toggleCommand(cfg, "done", remainingArgs, true)
	case "undo":
		return toggleCommand(cfg, "undo", remainingArgs, false)
	case "edit":
		return editCommand(cfg, remainingArgs)
	case "rm", "delete":
		return rmCommand(cfg, remainingArgs)
	case "clear":
		return clearCommand(cfg, remainingArgs)
	case "doctor":
		return doctorCommand(cfg, remainingArgs)
	case "config":
		return configCommand(cws, remainingArgs)
	case "logs":
		return logsCommand(cfg, remainingArgs)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// env is everything a command needs to touch the item list.
type env struct {
	cfg     *config.Config
	storage storage.Storage
	store   *todo.Store
	logger  *log.Logger
	session *logging.Session
}

// openEnv starts a log session, opens the configured storage and loads
// the store. console receives log output alongside the session file;
// pass nil when the terminal is owned by the TUI.
func openEnv(cfg *config.Config, console io.Writer) (*env, error) {
	e := &env{cfg: cfg}

	var writers []io.Writer
	if console != nil {
		writers = append(writers, console)
	}
	session, sessionErr := logging.NewSession(cfg.LogDir, cfg.ProjectRoot)
	if sessionErr == nil {
		e.session = session
		writers = append(writers, session.Writer())
	}
	e.logger = logging.New(io.MultiWriter(writers...), logging.Options{
		Level:           cfg.LogLevel,
		Format:          cfg.LogFormat,
		ReportTimestamp: cfg.LogTimestamps,
		ReportCaller:    cfg.LogCaller,
		Prefix:          "todo",
	})
	if sessionErr != nil {
		e.logger.Warn("session log disabled", "err", sessionErr)
	}

	st, err := storage.Open(cfg.Storage, cfg.DataDir)
	if err != nil {
		e.close()
		return nil, fmt.Errorf("opening storage: %w", err)
	}
	e.storage = st

	e.store = todo.NewStore(st, todo.WithKey(cfg.StorageKey), todo.WithLogger(e.logger))
	if err := e.store.Load(); err != nil {
		e.close()
		return nil, fmt.Errorf("loading items: %w", err)
	}
	e.logger.Debug("store loaded", "storage", cfg.Storage, "dir", cfg.DataDir, "key", e.store.Key(), "items", e.store.Len())
	return e, nil
}

func (e *env) close() {
	if e.storage != nil {
		if err := e.storage.Close(); err != nil {
			e.logger.Error("closing storage failed", "err", err)
		}
	}
	_ = e.session.Close()
}

// tuiCommand launches the interactive list.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todo tui", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if !view.IsTTY(os.Stdout) {
		return errors.New("tui requires a terminal (use 'todo ls' for plain output)")
	}

	e, err := openEnv(cfg, nil)
	if err != nil {
		return err
	}
	defer e.close()

	tui := view.NewTUI(view.NewTemplate(cfg.Theme))
	a := app.New(e.store, tui, e.logger)
	defer a.Close()
	a.Initialize()

	e.logger.Info("tui started", "items", e.store.Len())
	if err := tui.Run(ctx); err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	e.logger.Info("tui stopped", "items", e.store.Len())
	return nil
}

// plainCommand loads the list into the plain renderer, runs fn against
// it and prints the resulting list.
func plainCommand(cfg *config.Config, fn func(p *view.Plain, e *env) error) error {
	e, err := openEnv(cfg, stderr)
	if err != nil {
		return err
	}
	defer e.close()

	p := view.NewPlain(view.NewTemplate(cfg.Theme))
	a := app.New(e.store, p, e.logger)
	defer a.Close()
	a.Initialize()

	if fn != nil {
		if err := fn(p, e); err != nil {
			return err
		}
	}
	if err := p.Err(); err != nil {
		return err
	}
	return p.Render(stdout)
}

// nodeAt finds the rendered node for a command-line index.
func nodeAt(p *view.Plain, e *env, arg string) (*view.Node, error) {
	index, err := utils.ParseIndex(arg)
	if err != nil {
		return nil, err
	}
	n, ok := p.Node(index)
	if !ok {
		return nil, fmt.Errorf("%w: %d (have %d items)", todo.ErrIndexOutOfRange, index, e.store.Len())
	}
	return n, nil
}

// lsCommand prints the list, newest first.
func lsCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todo ls", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "Show counts after the list")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	var stats todo.Stats
	err := plainCommand(cfg, func(p *view.Plain, e *env) error {
		stats = e.store.Stats()
		return nil
	})
	if err != nil {
		return err
	}
	if *verbose {
		fmt.Fprintf(stdout, "\n%d items, %d completed, %d left\n", stats.Total, stats.Completed, stats.Active)
	}
	return nil
}

// addCommand appends an item.
func addCommand(cfg *config.Config, args []string) error {
	text := utils.JoinArgs(args)
	if text == "" {
		return errors.New("usage: todo add <text>")
	}
	return plainCommand(cfg, func(p *view.Plain, e *env) error {
		p.Submit(text)
		return nil
	})
}

// toggleCommand marks an item completed or not completed.
func toggleCommand(cfg *config.Config, name string, args []string, completed bool) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: todo %s <index>", name)
	}
	return plainCommand(cfg, func(p *view.Plain, e *env) error {
		n, err := nodeAt(p, e, args[0])
		if err != nil {
			return err
		}
		if n.Item().Completed != completed {
			n.Check()
		}
		return nil
	})
}

// editCommand replaces an item's description.
func editCommand(cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: todo edit <index> <text>")
	}
	text := utils.JoinArgs(args[1:])
	return plainCommand(cfg, func(p *view.Plain, e *env) error {
		n, err := nodeAt(p, e, args[0])
		if err != nil {
			return err
		}
		n.PointerEnter()
		n.CommitEdit(text)
		n.PointerLeave()
		return nil
	})
}

// rmCommand deletes an item.
func rmCommand(cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: todo rm <index>")
	}
	return plainCommand(cfg, func(p *view.Plain, e *env) error {
		n, err := nodeAt(p, e, args[0])
		if err != nil {
			return err
		}
		n.PointerEnter()
		n.ClickBin()
		return nil
	})
}

// clearCommand removes completed items.
func clearCommand(cfg *config.Config, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	return plainCommand(cfg, func(p *view.Plain, e *env) error {
		p.ClickClear()
		return nil
	})
}

// logsCommand prints the tail of the latest session log.
func logsCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todo logs", flag.ContinueOnError)
	fs.SetOutput(stderr)
	n := fs.Int("n", defaultLogLines, "Number of lines to show (0 = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logDir, err := logging.FindLogDir(cfg.LogDir, cfg.ProjectRoot)
	if err != nil {
		return fmt.Errorf("finding log directory: %w", err)
	}
	logPath, err := logging.FindLatestLog(logDir)
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}
	if logPath == "" {
		fmt.Fprintln(stdout, "No log files found.")
		return nil
	}

	fmt.Fprintf(stdout, "Log: %s\n\n", logPath)
	return logging.TailLog(stdout, logPath, *n)
}

// configCommand prints the effective configuration or an example file.
func configCommand(cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("todo config", flag.ContinueOnError)
	fs.SetOutput(stderr)
	example := fs.Bool("example", false, "Print an example todo.toml")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *example {
		fmt.Fprint(stdout, config.ExampleConfig())
		return nil
	}

	fmt.Fprintln(stdout, "Config files:")
	if len(cws.Files) == 0 {
		fmt.Fprintln(stdout, "  (none)")
	}
	for _, f := range cws.Files {
		fmt.Fprintf(stdout, "  %s\n", f)
	}
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Effective config:")
	for _, e := range cws.Entries() {
		fmt.Fprintf(stdout, "  %-15s %s  (%s)\n", e.Key, e.Value, e.Source)
	}
	return nil
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Fprintf(stdout, "todo version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Todo - A to-do list for the terminal")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  todo [options] [command] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui                 Launch the interactive list (default command)")
	fmt.Fprintln(w, "  ls [-v]             List items, newest first")
	fmt.Fprintln(w, "  add <text>          Add an item")
	fmt.Fprintln(w, "  done <index>        Mark an item completed")
	fmt.Fprintln(w, "  undo <index>        Mark an item not completed")
	fmt.Fprintln(w, "  edit <index> <text> Change an item's description")
	fmt.Fprintln(w, "  rm <index>          Delete an item")
	fmt.Fprintln(w, "  clear               Delete all completed items")
	fmt.Fprintln(w, "  doctor [-v]         Check storage, stored items and log directory")
	fmt.Fprintln(w, "  config [-example]   Show effective config, or an example todo.toml")
	fmt.Fprintln(w, "  logs [-n N]         Show the latest session log")
	fmt.Fprintln(w, "  version             Show version information")
	fmt.Fprintln(w, "  help                Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Indices are the numbers shown by 'todo ls'.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}
