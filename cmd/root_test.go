// Package cmd provides tests for CLI command handlers.
package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nibzard/todo-go/internal/todo"
	"github.com/nibzard/todo-go/internal/view"
)

// isolate gives each test its own home, project directory and clean
// TODO_* environment.
func isolate(t *testing.T) (project string) {
	t.Helper()
	home := t.TempDir()
	project = t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("APPDATA", filepath.Join(home, "AppData"))
	for _, env := range []string{
		"TODO_STORAGE", "TODO_DATA_DIR", "TODO_STORAGE_KEY", "TODO_LOG_DIR",
		"TODO_LOG_LEVEL", "TODO_LOG_FORMAT", "TODO_LOG_TIMESTAMPS", "TODO_LOG_CALLER",
	} {
		t.Setenv(env, "")
	}
	// Equivalent of t.Chdir (Go 1.24+) for the Go 1.21 toolchain.
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(project); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatal(err)
		}
	})
	t.Setenv("PWD", project)
	return project
}

// run executes the CLI and returns what it printed to stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	oldOut, oldErr := stdout, stderr
	stdout, stderr = &out, &errOut
	defer func() { stdout, stderr = oldOut, oldErr }()

	err := Run(context.Background(), args)
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	if err != nil {
		t.Fatalf("todo %v: %v", args, err)
	}
	return out
}

func storedItems(t *testing.T, project string) []todo.Item {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(project, ".todo", todo.DefaultKey+".json"))
	if err != nil {
		t.Fatal(err)
	}
	var items []todo.Item
	if err := json.Unmarshal(data, &items); err != nil {
		t.Fatalf("stored blob is not an item list: %v\n%s", err, data)
	}
	return items
}

func TestRun(t *testing.T) {
	t.Run("shows help with --help flag", func(t *testing.T) {
		isolate(t)
		out, err := run(t, "--help")
		if err != nil {
			t.Errorf("expected no error with --help, got %v", err)
		}
		if !strings.Contains(out, "Commands:") || !strings.Contains(out, "-storage") {
			t.Errorf("help output missing commands or flags:\n%s", out)
		}
	})

	t.Run("shows help with help command", func(t *testing.T) {
		isolate(t)
		if _, err := run(t, "help"); err != nil {
			t.Errorf("expected no error with help command, got %v", err)
		}
	})

	t.Run("shows version", func(t *testing.T) {
		isolate(t)
		for _, args := range [][]string{{"--version"}, {"-v"}, {"version"}} {
			out, err := run(t, args...)
			if err != nil {
				t.Errorf("%v: %v", args, err)
			}
			if out != "todo version dev\n" {
				t.Errorf("%v: got %q", args, out)
			}
		}
	})

	t.Run("unknown command returns error", func(t *testing.T) {
		isolate(t)
		_, err := run(t, "unknown-command")
		if err == nil || !strings.Contains(err.Error(), "unknown command") {
			t.Errorf("expected 'unknown command' error, got %v", err)
		}
	})

	t.Run("unknown flag returns error", func(t *testing.T) {
		isolate(t)
		_, err := run(t, "-nope")
		if err == nil || !strings.Contains(err.Error(), "loading config") {
			t.Errorf("expected config error, got %v", err)
		}
	})

	t.Run("tui requires a terminal", func(t *testing.T) {
		if view.IsTTY(os.Stdout) {
			t.Skip("stdout is a terminal")
		}
		isolate(t)
		_, err := run(t)
		if err == nil || !strings.Contains(err.Error(), "terminal") {
			t.Errorf("expected terminal error, got %v", err)
		}
	})
}

func TestListWorkflow(t *testing.T) {
	project := isolate(t)

	if out := mustRun(t, "ls"); out != "No items.\n" {
		t.Errorf("empty ls: got %q", out)
	}

	mustRun(t, "add", "buy milk")
	out := mustRun(t, "add", "buy", "bread")
	want := "[ ]  1  buy bread\n[ ]  0  buy milk\n"
	if out != want {
		t.Errorf("after add:\n got %q\nwant %q", out, want)
	}

	mustRun(t, "done", "0")
	out = mustRun(t, "done", "0")
	if want := "[ ]  1  buy bread\n[x]  0  buy milk\n"; out != want {
		t.Errorf("done twice should stay completed:\n got %q\nwant %q", out, want)
	}

	out = mustRun(t, "undo", "0")
	if want := "[ ]  1  buy bread\n[ ]  0  buy milk\n"; out != want {
		t.Errorf("after undo:\n got %q\nwant %q", out, want)
	}

	mustRun(t, "edit", "1", "brown", "bread")
	mustRun(t, "done", "1")
	mustRun(t, "add", "walk the dog")

	out = mustRun(t, "ls", "-v")
	if !strings.Contains(out, "3 items, 1 completed, 2 left") {
		t.Errorf("ls -v missing counts:\n%s", out)
	}

	mustRun(t, "rm", "0")
	wantItems := []todo.Item{
		{Description: "brown bread", Completed: true, Index: 0},
		{Description: "walk the dog", Index: 1},
	}
	if diff := cmp.Diff(wantItems, storedItems(t, project)); diff != "" {
		t.Errorf("after rm (-want +got):\n%s", diff)
	}

	out = mustRun(t, "clear")
	if out != "[ ]  0  walk the dog\n" {
		t.Errorf("after clear: got %q", out)
	}
	wantItems = []todo.Item{{Description: "walk the dog", Index: 0}}
	if diff := cmp.Diff(wantItems, storedItems(t, project)); diff != "" {
		t.Errorf("stored after clear (-want +got):\n%s", diff)
	}
}

func TestCommandErrors(t *testing.T) {
	isolate(t)
	mustRun(t, "add", "a")

	tests := []struct {
		args    []string
		wantErr string
	}{
		{[]string{"add"}, "usage: todo add"},
		{[]string{"done"}, "usage: todo done"},
		{[]string{"undo", "1", "2"}, "usage: todo undo"},
		{[]string{"edit", "0"}, "usage: todo edit"},
		{[]string{"rm"}, "usage: todo rm"},
		{[]string{"clear", "now"}, "unexpected arguments"},
		{[]string{"done", "x"}, "invalid index"},
		{[]string{"rm", "-1"}, "must not be negative"},
	}
	for _, tt := range tests {
		_, err := run(t, tt.args...)
		if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
			t.Errorf("todo %v: got %v, want error containing %q", tt.args, err, tt.wantErr)
		}
	}

	for _, args := range [][]string{{"done", "5"}, {"edit", "1", "x"}, {"rm", "1"}} {
		_, err := run(t, args...)
		if !errors.Is(err, todo.ErrIndexOutOfRange) {
			t.Errorf("todo %v: got %v, want ErrIndexOutOfRange", args, err)
		}
	}

	if out := mustRun(t, "ls"); out != "[ ]  0  a\n" {
		t.Errorf("failed commands changed the list: %q", out)
	}
}

func TestStorageBackends(t *testing.T) {
	t.Run("sqlite persists between runs", func(t *testing.T) {
		project := isolate(t)
		mustRun(t, "-storage", "sqlite", "add", "a")
		if out := mustRun(t, "-storage", "sqlite", "ls"); out != "[ ]  0  a\n" {
			t.Errorf("sqlite ls: got %q", out)
		}
		if _, err := os.Stat(filepath.Join(project, ".todo", "todo.db")); err != nil {
			t.Errorf("sqlite database not created: %v", err)
		}
	})

	t.Run("memory forgets between runs", func(t *testing.T) {
		isolate(t)
		if out := mustRun(t, "-storage", "memory", "add", "a"); out != "[ ]  0  a\n" {
			t.Errorf("memory add: got %q", out)
		}
		if out := mustRun(t, "-storage", "memory", "ls"); out != "No items.\n" {
			t.Errorf("memory ls: got %q", out)
		}
	})

	t.Run("keys are separate lists", func(t *testing.T) {
		isolate(t)
		mustRun(t, "-key", "work", "add", "report")
		if out := mustRun(t, "ls"); out != "No items.\n" {
			t.Errorf("default key: got %q", out)
		}
		t.Setenv("TODO_STORAGE_KEY", "work")
		if out := mustRun(t, "ls"); out != "[ ]  0  report\n" {
			t.Errorf("work key: got %q", out)
		}
	})
}

func TestCorruptBlobHeals(t *testing.T) {
	project := isolate(t)
	path := filepath.Join(project, ".todo", todo.DefaultKey+".json")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(`{"not":"a list"}`), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "doctor")
	if err == nil {
		t.Error("doctor should fail on an invalid blob")
	}
	if !strings.Contains(out, "Validation failed") {
		t.Errorf("doctor output missing validation failure:\n%s", out)
	}

	if out := mustRun(t, "ls"); out != "No items.\n" {
		t.Errorf("ls after heal: got %q", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]" {
		t.Errorf("healed blob: got %q, want []", data)
	}
}

func TestDoctorCommand(t *testing.T) {
	t.Run("fresh project", func(t *testing.T) {
		isolate(t)
		out := mustRun(t, "doctor")
		if !strings.Contains(out, "Not found (will be created on first write)") {
			t.Errorf("doctor should report the missing data dir:\n%s", out)
		}
		if !strings.Contains(out, "All checks passed") {
			t.Errorf("doctor output:\n%s", out)
		}
	})

	t.Run("verbose lists items", func(t *testing.T) {
		isolate(t)
		mustRun(t, "add", "a")
		mustRun(t, "add", "b")
		mustRun(t, "done", "1")

		out := mustRun(t, "doctor", "-v")
		for _, want := range []string{"✅ Valid", "Items: 2 (1 completed)", "[ ] 0: a", "[x] 1: b"} {
			if !strings.Contains(out, want) {
				t.Errorf("doctor -v missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("sqlite without a database", func(t *testing.T) {
		project := isolate(t)
		if err := os.MkdirAll(filepath.Join(project, ".todo"), 0755); err != nil {
			t.Fatal(err)
		}
		out := mustRun(t, "-storage", "sqlite", "doctor")
		if !strings.Contains(out, "Not found (list starts empty)") {
			t.Errorf("doctor should report the missing database:\n%s", out)
		}
		if _, err := os.Stat(filepath.Join(project, ".todo", "todo.db")); !os.IsNotExist(err) {
			t.Errorf("doctor created the sqlite database: %v", err)
		}
	})

	t.Run("memory storage", func(t *testing.T) {
		isolate(t)
		out := mustRun(t, "-storage", "memory", "doctor")
		if !strings.Contains(out, "not used by memory storage") {
			t.Errorf("doctor output:\n%s", out)
		}
	})
}

func TestConfigCommand(t *testing.T) {
	isolate(t)
	t.Setenv("TODO_STORAGE", "memory")

	out := mustRun(t, "config")
	if !strings.Contains(out, "(none)") {
		t.Errorf("config should list no files:\n%s", out)
	}
	if !strings.Contains(out, "memory  (environment)") {
		t.Errorf("config should attribute storage to the environment:\n%s", out)
	}
	if !strings.Contains(out, "todoItems  (default)") {
		t.Errorf("config should show the default key:\n%s", out)
	}

	out = mustRun(t, "config", "-example")
	if !strings.Contains(out, `storage_key = "todoItems"`) {
		t.Errorf("example config:\n%s", out)
	}
}

func TestLogsCommand(t *testing.T) {
	isolate(t)

	if out := mustRun(t, "logs"); out != "No log files found.\n" {
		t.Errorf("logs before any run: got %q", out)
	}

	mustRun(t, "-log-level", "debug", "add", "a")
	out := mustRun(t, "logs", "-n", "0")
	if !strings.Contains(out, "store loaded") || !strings.Contains(out, "add") {
		t.Errorf("logs should show the last session:\n%s", out)
	}
}
