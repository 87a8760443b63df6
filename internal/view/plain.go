package view

import (
	"errors"
	"fmt"
	"io"
)

// Plain renders items as text lines and lets callers fire item events
// directly. It backs the one-shot CLI commands.
type Plain struct {
	list
	errs []error
}

// NewPlain returns a text renderer using tpl.
func NewPlain(tpl *Template) *Plain {
	return &Plain{list: list{tpl: tpl}}
}

// ReportError records a handler failure; Err returns it.
func (p *Plain) ReportError(err error) {
	if err != nil {
		p.errs = append(p.errs, err)
	}
}

// Err returns every reported error joined, or nil.
func (p *Plain) Err() error {
	return errors.Join(p.errs...)
}

// Submit enters text in the new-item field and confirms it.
// Empty text is ignored.
func (p *Plain) Submit(text string) {
	p.submit(text)
}

// ClickClear clicks the clear-completed control.
func (p *Plain) ClickClear() {
	p.clearCompleted()
}

// Render writes one line per node. An empty list prints a hint.
func (p *Plain) Render(w io.Writer) error {
	if len(p.nodes) == 0 {
		_, err := fmt.Fprintln(w, "No items.")
		return err
	}
	for _, n := range p.nodes {
		if _, err := fmt.Fprintln(w, p.tpl.PlainLine(n)); err != nil {
			return err
		}
	}
	return nil
}
