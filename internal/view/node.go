package view

import "github.com/nibzard/todo-go/internal/todo"

// Visual classes a node can carry.
const (
	ClassStrikethrough = "strikethrough"
	ClassItemEdit      = "item-edit"
)

// Handlers are the item callbacks wired into a rendered node.
type Handlers struct {
	Toggle func(index int, checked bool)
	Update func(text string, index int)
	Delete func(index int)
}

// Node is one rendered item.
type Node struct {
	item       todo.Item
	handlers   Handlers
	classes    map[string]bool
	hovered    bool
	binVisible bool
}

func newNode(item todo.Item, h Handlers) *Node {
	n := &Node{
		item:     item,
		handlers: h,
		classes:  make(map[string]bool),
	}
	if item.Completed {
		n.classes[ClassStrikethrough] = true
	}
	return n
}

// Item returns the item snapshot the node was rendered from, including
// any description committed through the node since.
func (n *Node) Item() todo.Item {
	return n.item
}

// HasClass reports whether the node carries a visual class.
func (n *Node) HasClass(class string) bool {
	return n.classes[class]
}

// Hovered reports whether the pointer is on the node.
func (n *Node) Hovered() bool {
	return n.hovered
}

// BinVisible reports whether the delete icon is showing.
func (n *Node) BinVisible() bool {
	return n.binVisible
}

// Check clicks the checkbox, flipping the completion state.
func (n *Node) Check() {
	if n.handlers.Toggle != nil {
		n.handlers.Toggle(n.item.Index, !n.item.Completed)
	}
}

// CommitEdit confirms a new description.
func (n *Node) CommitEdit(text string) {
	// The field already shows the new text; the handler only persists it.
	n.item.Description = text
	if n.handlers.Update != nil {
		n.handlers.Update(text, n.item.Index)
	}
	n.classes[ClassItemEdit] = false
}

// ClickBin clicks the delete icon.
func (n *Node) ClickBin() {
	if n.handlers.Delete != nil {
		n.handlers.Delete(n.item.Index)
	}
}

// PointerEnter shows the bin icon and sets edit mode.
func (n *Node) PointerEnter() {
	n.hovered = true
	n.binVisible = true
	n.classes[ClassItemEdit] = true
}

// PointerLeave shows the more icon and clears edit mode.
func (n *Node) PointerLeave() {
	n.hovered = false
	n.binVisible = false
	n.classes[ClassItemEdit] = false
}
