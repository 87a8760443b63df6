package todo

import (
	"errors"
	"fmt"
)

// DefaultKey is the storage key holding the item sequence.
const DefaultKey = "todoItems"

// ErrIndexOutOfRange is returned when an index names no item.
var ErrIndexOutOfRange = errors.New("index out of range")

// Item is a single to-do entry.
type Item struct {
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	Index       int    `json:"index"`
}

// Op identifies the mutation behind a Change.
type Op string

const (
	OpAdd    Op = "add"
	OpToggle Op = "toggle"
	OpDelete Op = "delete"
	OpClear  Op = "clear"
	OpReload Op = "reload"
)

// Change describes a mutation that requires a re-render.
type Change struct {
	Op Op
	// Index is the affected position, or -1 for whole-list changes.
	Index int
}

// Stats counts items by completion.
type Stats struct {
	Total     int
	Completed int
	Active    int
}

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // JSON path to the error location
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid    bool
	Errors   []error
	Warnings []string
	// Items holds the decoded sequence when Valid is true.
	Items []Item
}

func indexError(index, length int) error {
	return fmt.Errorf("%w: %d (have %d items)", ErrIndexOutOfRange, index, length)
}
