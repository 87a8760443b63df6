package view

import "github.com/nibzard/todo-go/internal/todo"

// list is the node container shared by the renderers.
type list struct {
	tpl      *Template
	nodes    []*Node
	onClear  func()
	onSubmit func(text string)
}

// Reset discards every rendered node.
func (l *list) Reset() {
	if len(l.nodes) == 0 {
		return
	}
	l.nodes = nil
}

// RenderItem instantiates a node for item and appends it.
func (l *list) RenderItem(item todo.Item, h Handlers) {
	l.nodes = append(l.nodes, newNode(item, h))
}

// BindClearCompleted wires the clear-completed control.
func (l *list) BindClearCompleted(handler func()) {
	l.onClear = handler
}

// BindNewItemSubmit wires the new-item input's confirm keystroke.
func (l *list) BindNewItemSubmit(handler func(text string)) {
	l.onSubmit = handler
}

// Nodes returns the rendered nodes in display order.
func (l *list) Nodes() []*Node {
	return l.nodes
}

// Node returns the node rendered for the item at index.
func (l *list) Node(index int) (*Node, bool) {
	for _, n := range l.nodes {
		if n.item.Index == index {
			return n, true
		}
	}
	return nil, false
}

func (l *list) clearCompleted() {
	if l.onClear != nil {
		l.onClear()
	}
}

func (l *list) submit(text string) {
	if text == "" || l.onSubmit == nil {
		return
	}
	l.onSubmit(text)
}
