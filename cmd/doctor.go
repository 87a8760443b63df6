package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nibzard/todo-go/internal/config"
	"github.com/nibzard/todo-go/internal/storage"
	"github.com/nibzard/todo-go/internal/todo"
	"github.com/nibzard/todo-go/internal/view"
)

// doctorCommand checks config, storage, stored items and the log directory.
// It never writes: a missing data dir is reported, not created.
func doctorCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todo doctor", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	fmt.Fprintln(stdout, "Todo Doctor")
	fmt.Fprintln(stdout, "===========")
	fmt.Fprintln(stdout)

	allOK := true

	// Check project root
	fmt.Fprintf(stdout, "Project root: %s\n", cfg.ProjectRoot)
	if _, err := os.Stat(cfg.ProjectRoot); err != nil {
		fmt.Fprintf(stdout, "  ❌ Error: %v\n", err)
		allOK = false
	} else {
		fmt.Fprintln(stdout, "  ✅ OK")
	}
	fmt.Fprintln(stdout)

	// Check config
	fmt.Fprintln(stdout, "Config:")
	kind, kindErr := storage.ParseKind(cfg.Storage)
	if kindErr != nil {
		fmt.Fprintf(stdout, "  ❌ Storage: %v\n", kindErr)
		allOK = false
	} else {
		fmt.Fprintf(stdout, "  ✅ Storage: %s\n", kind)
	}
	fmt.Fprintf(stdout, "  ✅ Storage key: %s\n", cfg.StorageKey)
	fmt.Fprintln(stdout)

	if kindErr == nil && !checkStorage(cfg, kind, *verbose) {
		allOK = false
	}

	// Check log directory
	fmt.Fprintf(stdout, "Log directory: %s\n", cfg.LogDir)
	if info, err := os.Stat(cfg.LogDir); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(stdout, "  ⚠️  Not found (will be created on first run)")
		} else {
			fmt.Fprintf(stdout, "  ❌ Error: %v\n", err)
			allOK = false
		}
	} else if !info.IsDir() {
		fmt.Fprintln(stdout, "  ❌ Error: path is not a directory")
		allOK = false
	} else {
		fmt.Fprintln(stdout, "  ✅ OK")
	}
	fmt.Fprintln(stdout)

	// Overall status
	if allOK {
		fmt.Fprintln(stdout, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(stdout, "⚠️  Some checks failed. Todo may not function correctly.")
	return fmt.Errorf("doctor checks failed")
}

// checkStorage reports on the data dir and the stored item list.
func checkStorage(cfg *config.Config, kind storage.Kind, verbose bool) bool {
	if kind == storage.KindMemory {
		fmt.Fprintln(stdout, "Data directory: (not used by memory storage)")
		fmt.Fprintln(stdout)
		return true
	}

	fmt.Fprintf(stdout, "Data directory: %s\n", cfg.DataDir)
	info, err := os.Stat(cfg.DataDir)
	switch {
	case os.IsNotExist(err):
		fmt.Fprintln(stdout, "  ⚠️  Not found (will be created on first write)")
		fmt.Fprintln(stdout)
		return true
	case err != nil:
		fmt.Fprintf(stdout, "  ❌ Error: %v\n", err)
		fmt.Fprintln(stdout)
		return false
	case !info.IsDir():
		fmt.Fprintln(stdout, "  ❌ Error: path is not a directory")
		fmt.Fprintln(stdout)
		return false
	}
	fmt.Fprintln(stdout, "  ✅ OK")
	fmt.Fprintln(stdout)

	// Opening sqlite creates the database file.
	if kind == storage.KindSQLite {
		db := filepath.Join(cfg.DataDir, storage.DefaultSQLiteFile)
		if _, err := os.Stat(db); os.IsNotExist(err) {
			fmt.Fprintf(stdout, "Stored items: %s\n", db)
			fmt.Fprintln(stdout, "  ⚠️  Not found (list starts empty)")
			fmt.Fprintln(stdout)
			return true
		}
	}

	st, err := storage.Open(string(kind), cfg.DataDir)
	if err != nil {
		fmt.Fprintf(stdout, "Storage:\n  ❌ Error: %v\n\n", err)
		return false
	}
	defer st.Close()

	fmt.Fprintf(stdout, "Stored items: %s\n", slotLocation(st, cfg.StorageKey))
	raw, ok, err := st.GetItem(cfg.StorageKey)
	if err != nil {
		fmt.Fprintf(stdout, "  ❌ Read error: %v\n\n", err)
		return false
	}
	if !ok {
		fmt.Fprintln(stdout, "  ⚠️  Not found (list starts empty)")
		fmt.Fprintln(stdout)
		return true
	}

	result := todo.Validate([]byte(raw))
	for _, w := range result.Warnings {
		fmt.Fprintf(stdout, "  ⚠️  %s\n", w)
	}
	if !result.Valid {
		fmt.Fprintln(stdout, "  ❌ Validation failed (the list will be reset to empty on next load):")
		for _, e := range result.Errors {
			fmt.Fprintf(stdout, "     - %v\n", e)
		}
		fmt.Fprintln(stdout)
		return false
	}
	fmt.Fprintln(stdout, "  ✅ Valid")
	if verbose {
		tpl := view.NewTemplate(cfg.Theme)
		completed := 0
		for _, item := range result.Items {
			if item.Completed {
				completed++
			}
		}
		fmt.Fprintf(stdout, "  Items: %d (%d completed)\n", len(result.Items), completed)
		for i, item := range result.Items {
			fmt.Fprintf(stdout, "    %s %d: %s\n", tpl.Checkbox(item.Completed), i, item.Description)
		}
	}
	fmt.Fprintln(stdout)
	return true
}

// slotLocation describes where a backend keeps key.
func slotLocation(st storage.Storage, key string) string {
	switch s := st.(type) {
	case *storage.FileStorage:
		return s.Path(key)
	case *storage.SQLiteStorage:
		return fmt.Sprintf("%s (key %q)", s.Path(), key)
	default:
		return filepath.Join("<memory>", key)
	}
}
