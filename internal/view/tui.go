package view

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type focusArea int

const (
	focusList focusArea = iota
	focusInput
)

// TUI is an interactive terminal renderer. The cursor acts as the
// pointer: moving onto a row enters it, moving off leaves it.
type TUI struct {
	list

	cursor   int
	focus    focusArea
	input    textinput.Model
	editor   textinput.Model
	editing  *Node
	onReload func()

	status    string
	statusErr bool
	showHelp  bool
}

// NewTUI returns an interactive renderer using tpl.
func NewTUI(tpl *Template) *TUI {
	input := textinput.New()
	input.Placeholder = "Add to your list..."
	input.CharLimit = 0
	input.Width = 40
	input.Prompt = "+ "

	// Items have no length limit; the editor must hold any of them.
	editor := textinput.New()
	editor.CharLimit = 0
	editor.Width = 40
	editor.Prompt = ""

	return &TUI{
		list:   list{tpl: tpl},
		input:  input,
		editor: editor,
	}
}

// BindReload wires the reload key.
func (t *TUI) BindReload(handler func()) {
	t.onReload = handler
}

// ReportError shows err on the status line.
func (t *TUI) ReportError(err error) {
	if err == nil {
		return
	}
	t.status = err.Error()
	t.statusErr = true
}

// Reset discards every rendered node, including an open editor.
func (t *TUI) Reset() {
	t.list.Reset()
	t.editing = nil
	t.editor.Blur()
}

// Run starts the program on the terminal and blocks until it quits.
func (t *TUI) Run(ctx context.Context, opts ...tea.ProgramOption) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(t, opts...).Run()
	return err
}

func (t *TUI) Init() tea.Cmd {
	t.syncPointer()
	return nil
}

func (t *TUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if w := msg.Width - 10; w > 10 {
			t.input.Width = w
			t.editor.Width = w
		}
		return t, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return t, tea.Quit
		}
		t.status, t.statusErr = "", false

		var cmd tea.Cmd
		switch {
		case t.editing != nil:
			cmd = t.updateEditor(msg)
		case t.focus == focusInput:
			cmd = t.updateInput(msg)
		default:
			cmd = t.updateList(msg)
		}
		// Handlers may have rebuilt the nodes.
		t.syncPointer()
		return t, cmd
	}
	return t, nil
}

func (t *TUI) updateList(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "up", "k":
		t.move(-1)
	case "down", "j":
		t.move(1)
	case " ", "space", "x":
		if n := t.current(); n != nil {
			n.Check()
		}
	case "e", "enter":
		if n := t.current(); n != nil {
			t.editing = n
			t.editor.SetValue(n.Item().Description)
			t.editor.CursorEnd()
			return t.editor.Focus()
		}
	case "d", "delete":
		if n := t.current(); n != nil {
			n.ClickBin()
		}
	case "C":
		t.clearCompleted()
	case "tab", "a":
		t.focus = focusInput
		return t.input.Focus()
	case "r":
		if t.onReload != nil {
			t.onReload()
		}
	case "?", "h":
		t.showHelp = !t.showHelp
	}
	return nil
}

func (t *TUI) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		text := t.input.Value()
		t.input.SetValue("")
		t.submit(text)
		return nil
	case "esc", "tab":
		t.focus = focusList
		t.input.Blur()
		return nil
	}
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return cmd
}

func (t *TUI) updateEditor(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		n := t.editing
		t.editing = nil
		t.editor.Blur()
		n.CommitEdit(t.editor.Value())
		return nil
	case "esc":
		t.editing = nil
		t.editor.Blur()
		return nil
	}
	var cmd tea.Cmd
	t.editor, cmd = t.editor.Update(msg)
	return cmd
}

func (t *TUI) current() *Node {
	if t.cursor < 0 || t.cursor >= len(t.nodes) {
		return nil
	}
	return t.nodes[t.cursor]
}

func (t *TUI) move(delta int) {
	next := clampCursor(t.cursor+delta, len(t.nodes))
	if next == t.cursor {
		return
	}
	if n := t.current(); n != nil {
		n.PointerLeave()
	}
	t.cursor = next
	if n := t.current(); n != nil {
		n.PointerEnter()
	}
}

// syncPointer keeps the cursor inside the list and makes sure exactly
// the node under it is entered, which matters after a re-render.
func (t *TUI) syncPointer() {
	t.cursor = clampCursor(t.cursor, len(t.nodes))
	for i, n := range t.nodes {
		if i == t.cursor && t.focus == focusList {
			if !n.Hovered() {
				n.PointerEnter()
			}
			continue
		}
		if n.Hovered() {
			n.PointerLeave()
		}
	}
}

func clampCursor(cursor, length int) int {
	if length == 0 {
		return 0
	}
	if cursor < 0 {
		return 0
	}
	if cursor >= length {
		return length - 1
	}
	return cursor
}

func (t *TUI) View() string {
	var b strings.Builder
	b.WriteString(t.tpl.title.Render("Today's To Do"))
	b.WriteString("\n\n")

	if t.showHelp {
		writeHelp(&b)
		return b.String()
	}

	b.WriteString(t.input.View())
	b.WriteString("\n\n")

	if len(t.nodes) == 0 {
		b.WriteString(t.tpl.muted.Render("  Nothing to do. Press tab to add an item."))
		b.WriteString("\n")
	}
	for _, n := range t.nodes {
		desc := ""
		if n == t.editing {
			desc = t.editor.View()
		}
		b.WriteString(t.tpl.StyledLine(n, desc))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(t.tpl.muted.Render(fmt.Sprintf("%d left · C clear all completed", t.activeCount())))
	b.WriteString("\n")
	if t.status != "" {
		if t.statusErr {
			b.WriteString(t.tpl.errorStyle.Render("error: " + t.status))
		} else {
			b.WriteString(t.status)
		}
		b.WriteString("\n")
	}
	b.WriteString(t.tpl.muted.Render("? help · q quit"))
	b.WriteString("\n")
	return b.String()
}

func (t *TUI) activeCount() int {
	active := 0
	for _, n := range t.nodes {
		if !n.Item().Completed {
			active++
		}
	}
	return active
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  up/k, down/j  Move between items\n")
	b.WriteString("  space, x      Toggle completed\n")
	b.WriteString("  e, enter      Edit description (enter saves, esc cancels)\n")
	b.WriteString("  d, delete     Delete item\n")
	b.WriteString("  tab, a        Focus the new item field (enter adds, esc leaves)\n")
	b.WriteString("  C             Clear all completed\n")
	b.WriteString("  r             Reload from storage\n")
	b.WriteString("  ?, h          Toggle this help screen\n")
	b.WriteString("  q, ctrl+c     Quit\n")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
