// Package app wires a todo.Store to a renderer.
//
// The App owns no state of its own beyond the subscription: every
// handler forwards to the store, and the store's change notifications
// trigger a full re-render in reverse storage order, so the newest item
// is shown first.
package app

import (
	"github.com/charmbracelet/log"

	"github.com/nibzard/todo-go/internal/logging"
	"github.com/nibzard/todo-go/internal/todo"
	"github.com/nibzard/todo-go/internal/view"
)

// Renderer is the display surface the App drives.
type Renderer interface {
	Reset()
	RenderItem(item todo.Item, h view.Handlers)
	BindClearCompleted(handler func())
	BindNewItemSubmit(handler func(text string))
	ReportError(err error)
}

// Reloader is implemented by renderers that offer a reload control.
type Reloader interface {
	BindReload(handler func())
}

// App coordinates a store and a renderer.
type App struct {
	store       *todo.Store
	renderer    Renderer
	logger      *log.Logger
	initialized bool
	unsubscribe func()
}

// New subscribes to store changes. Nothing is rendered until Initialize.
// A nil logger discards output.
func New(store *todo.Store, renderer Renderer, logger *log.Logger) *App {
	if logger == nil {
		logger = logging.Discard()
	}
	a := &App{
		store:    store,
		renderer: renderer,
		logger:   logger,
	}
	a.unsubscribe = store.OnChange(func(c todo.Change) {
		a.logger.Debug("re-rendering", "op", c.Op, "index", c.Index)
		a.PopulateItems()
	})
	return a
}

// Initialize performs the first population and binds the list-level
// controls. Calling it again is a no-op.
func (a *App) Initialize() {
	if a.initialized {
		return
	}
	a.initialized = true
	a.PopulateItems()
	a.renderer.BindClearCompleted(a.HandleClearCompleted)
	a.renderer.BindNewItemSubmit(a.HandleNewItem)
	if r, ok := a.renderer.(Reloader); ok {
		r.BindReload(a.HandleReload)
	}
}

// Close stops listening for store changes.
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
}

// PopulateItems clears the renderer and renders every item, last first.
func (a *App) PopulateItems() {
	items, err := a.store.Items()
	if err != nil {
		a.fail("populate items", err)
		return
	}
	a.renderer.Reset()
	h := view.Handlers{
		Toggle: a.HandleToggle,
		Update: a.HandleDescriptionUpdate,
		Delete: a.HandleDelete,
	}
	for i := len(items) - 1; i >= 0; i-- {
		a.renderer.RenderItem(items[i], h)
	}
}

// HandleToggle sets the completion flag of the item at index.
func (a *App) HandleToggle(index int, checked bool) {
	a.logger.Debug("toggle", "index", index, "completed", checked)
	if err := a.store.Toggle(index, checked); err != nil {
		a.fail("toggle item", err)
	}
}

// HandleNewItem appends an item with text as its description.
func (a *App) HandleNewItem(text string) {
	a.logger.Debug("add", "text", text)
	if err := a.store.Add(text); err != nil {
		a.fail("add item", err)
	}
}

// HandleDescriptionUpdate stores a new description. The renderer already
// shows it, so nothing is re-rendered.
func (a *App) HandleDescriptionUpdate(text string, index int) {
	a.logger.Debug("update", "index", index, "text", text)
	if err := a.store.Update(text, index); err != nil {
		a.fail("update item", err)
	}
}

// HandleDelete removes the item at index.
func (a *App) HandleDelete(index int) {
	a.logger.Debug("delete", "index", index)
	if err := a.store.Delete(index); err != nil {
		a.fail("delete item", err)
	}
}

// HandleClearCompleted removes every completed item.
func (a *App) HandleClearCompleted() {
	a.logger.Debug("clear completed")
	if err := a.store.ClearCompleted(); err != nil {
		a.fail("clear completed", err)
	}
}

// HandleReload re-reads the persisted items.
func (a *App) HandleReload() {
	a.logger.Debug("reload")
	if err := a.store.Reload(); err != nil {
		a.fail("reload items", err)
	}
}

func (a *App) fail(action string, err error) {
	a.logger.Error(action+" failed", "err", err)
	a.renderer.ReportError(err)
}
