// Package view renders to-do items and turns input into item events.
//
// A renderer owns a list of nodes, one per rendered item. It keeps no
// item state of its own: every refresh discards the nodes (Reset) and
// rebuilds them (RenderItem) from whatever the caller passes in.
//
// Each node is instantiated from a Template and carries the Handlers it
// was rendered with. Node events map onto those handlers:
//
//	Check         -> Handlers.Toggle(index, !completed)
//	CommitEdit    -> Handlers.Update(text, index), then leaves edit mode
//	ClickBin      -> Handlers.Delete(index)
//	PointerEnter  -> bin icon shown, edit-mode flag set
//	PointerLeave  -> more icon shown, edit-mode flag cleared
//
// Two renderers share this model. TUI is an interactive bubbletea
// program where the cursor plays the pointer. Plain writes rows as text
// and exposes the same events as methods for one-shot commands.
package view
