package view

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/todo-go/internal/todo"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func newTestTUI(r *recorder, items ...todo.Item) *TUI {
	tui := NewTUI(NewTemplate(testTheme()))
	for _, item := range items {
		tui.RenderItem(item, r.handlers())
	}
	tui.Init()
	return tui
}

func send(tui *TUI, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = tui.Update(msg)
	}
	return cmd
}

var threeItems = []todo.Item{
	{Description: "c", Index: 2},
	{Description: "b", Completed: true, Index: 1},
	{Description: "a", Index: 0},
}

func TestTUICursorHover(t *testing.T) {
	tui := newTestTUI(&recorder{}, threeItems...)
	nodes := tui.Nodes()

	if !nodes[0].Hovered() || !nodes[0].BinVisible() {
		t.Fatal("first node should be under the cursor after Init")
	}

	send(tui, key(tea.KeyDown))
	if nodes[0].Hovered() || nodes[0].HasClass(ClassItemEdit) {
		t.Error("first node should have been left")
	}
	if !nodes[1].Hovered() || !nodes[1].HasClass(ClassItemEdit) {
		t.Error("second node should have been entered")
	}

	send(tui, runes("j"), runes("j"), runes("j"))
	if tui.cursor != 2 {
		t.Errorf("cursor: got %d, want clamped to 2", tui.cursor)
	}
	send(tui, runes("k"), key(tea.KeyUp), key(tea.KeyUp))
	if tui.cursor != 0 {
		t.Errorf("cursor: got %d, want clamped to 0", tui.cursor)
	}
}

func TestTUIItemKeys(t *testing.T) {
	r := &recorder{}
	tui := newTestTUI(r, threeItems...)

	send(tui, runes("x"), key(tea.KeyDown), runes("x"), runes("d"))

	want := []toggleCall{{2, true}, {1, false}}
	if len(r.toggles) != 2 || r.toggles[0] != want[0] || r.toggles[1] != want[1] {
		t.Errorf("toggles: got %v, want %v", r.toggles, want)
	}
	if len(r.deletes) != 1 || r.deletes[0] != 1 {
		t.Errorf("deletes: got %v, want [1]", r.deletes)
	}
}

func TestTUIEdit(t *testing.T) {
	r := &recorder{}
	tui := newTestTUI(r, threeItems...)

	send(tui, runes("e"))
	if tui.editing == nil {
		t.Fatal("e should open the editor")
	}
	if tui.editor.Value() != "c" {
		t.Errorf("editor value: got %q, want c", tui.editor.Value())
	}

	// Keys go to the editor, not the list bindings.
	send(tui, runes("x!"), key(tea.KeyEnter))
	if len(r.toggles) != 0 {
		t.Errorf("typing in the editor toggled items: %v", r.toggles)
	}
	if len(r.updates) != 1 || r.updates[0] != (updateCall{"cx!", 2}) {
		t.Errorf("updates: got %v, want [{cx! 2}]", r.updates)
	}
	if tui.editing != nil {
		t.Error("enter should close the editor")
	}
	if tui.Nodes()[0].Item().Description != "cx!" {
		t.Errorf("node text: got %q", tui.Nodes()[0].Item().Description)
	}
}

func TestTUIEditCancel(t *testing.T) {
	r := &recorder{}
	tui := newTestTUI(r, threeItems...)

	send(tui, key(tea.KeyEnter), runes("zzz"), key(tea.KeyEsc))
	if tui.editing != nil {
		t.Error("esc should close the editor")
	}
	if len(r.updates) != 0 {
		t.Errorf("esc should not commit: %v", r.updates)
	}
}

func TestTUIEditKeepsLongDescription(t *testing.T) {
	long := strings.Repeat("x", 300)
	r := &recorder{}
	tui := newTestTUI(r, todo.Item{Description: long, Index: 0})

	send(tui, runes("e"), key(tea.KeyEnter))
	if len(r.updates) != 1 {
		t.Fatalf("updates: got %d, want 1", len(r.updates))
	}
	if r.updates[0].text != long {
		t.Errorf("committed %d characters, want %d", len(r.updates[0].text), len(long))
	}
}

func TestTUINewItemLong(t *testing.T) {
	long := strings.Repeat("y", 300)
	tui := newTestTUI(&recorder{})
	var submitted []string
	tui.BindNewItemSubmit(func(text string) { submitted = append(submitted, text) })

	send(tui, key(tea.KeyTab), runes(long), key(tea.KeyEnter))
	if len(submitted) != 1 || submitted[0] != long {
		t.Errorf("submitted a truncated item: %d characters", len(strings.Join(submitted, "")))
	}
}

func TestTUINewItem(t *testing.T) {
	tui := newTestTUI(&recorder{}, threeItems...)
	var submitted []string
	tui.BindNewItemSubmit(func(text string) { submitted = append(submitted, text) })

	send(tui, key(tea.KeyTab))
	if tui.focus != focusInput {
		t.Fatal("tab should focus the input")
	}
	if tui.Nodes()[0].Hovered() {
		t.Error("no node should be under the pointer while typing")
	}

	send(tui, key(tea.KeyEnter), runes("q milk"), key(tea.KeyEnter))
	if len(submitted) != 1 || submitted[0] != "q milk" {
		t.Errorf("submitted: got %v, want [q milk]", submitted)
	}
	if tui.input.Value() != "" {
		t.Errorf("input not cleared: %q", tui.input.Value())
	}

	send(tui, key(tea.KeyEsc))
	if tui.focus != focusList {
		t.Error("esc should return to the list")
	}
	if !tui.Nodes()[0].Hovered() {
		t.Error("cursor node should be entered again")
	}
}

func TestTUIListKeys(t *testing.T) {
	tui := newTestTUI(&recorder{}, threeItems...)
	cleared, reloaded := 0, 0
	tui.BindClearCompleted(func() { cleared++ })
	tui.BindReload(func() { reloaded++ })

	send(tui, runes("C"), runes("r"))
	if cleared != 1 || reloaded != 1 {
		t.Errorf("cleared=%d reloaded=%d, want 1 and 1", cleared, reloaded)
	}

	send(tui, runes("?"))
	if !strings.Contains(tui.View(), "Keyboard Shortcuts") {
		t.Error("? should show help")
	}
	send(tui, runes("?"))
	if strings.Contains(tui.View(), "Keyboard Shortcuts") {
		t.Error("second ? should hide help")
	}
}

func TestTUIQuit(t *testing.T) {
	tui := newTestTUI(&recorder{})
	for _, msg := range []tea.KeyMsg{runes("q"), key(tea.KeyCtrlC)} {
		cmd := send(tui, msg)
		if cmd == nil {
			t.Fatalf("%s: expected quit command", msg)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: expected tea.QuitMsg", msg)
		}
	}
}

func TestTUIRerenderClampsCursor(t *testing.T) {
	tui := newTestTUI(&recorder{}, threeItems...)
	send(tui, key(tea.KeyDown), key(tea.KeyDown))

	tui.Reset()
	tui.RenderItem(todo.Item{Description: "only", Index: 0}, Handlers{})
	send(tui, runes("j"))

	if tui.cursor != 0 {
		t.Errorf("cursor: got %d, want 0", tui.cursor)
	}
	if !tui.Nodes()[0].Hovered() {
		t.Error("remaining node should be under the cursor")
	}
}

func TestTUIView(t *testing.T) {
	tui := newTestTUI(&recorder{}, threeItems...)
	tui.ReportError(errors.New("disk full"))

	view := tui.View()
	for _, want := range []string{"Today's To Do", "a", "2 left", "error: disk full"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	send(tui, key(tea.KeyDown))
	if strings.Contains(tui.View(), "disk full") {
		t.Error("status should clear on the next key")
	}

	empty := newTestTUI(&recorder{})
	if !strings.Contains(empty.View(), "Nothing to do") {
		t.Error("empty list should show a hint")
	}
}
