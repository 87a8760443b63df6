package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/todo-go/internal/config"
)

// Template describes how one item node looks.
type Template struct {
	Theme config.Theme

	cursor        lipgloss.Style
	checkbox      lipgloss.Style
	description   lipgloss.Style
	strikethrough lipgloss.Style
	itemEdit      lipgloss.Style
	icon          lipgloss.Style
	title         lipgloss.Style
	muted         lipgloss.Style
	errorStyle    lipgloss.Style
}

// NewTemplate builds the item template from a theme. Empty glyphs fall
// back to the defaults.
func NewTemplate(theme config.Theme) *Template {
	def := config.DefaultTheme()
	if theme.Checked == "" {
		theme.Checked = def.Checked
	}
	if theme.Unchecked == "" {
		theme.Unchecked = def.Unchecked
	}
	if theme.Bin == "" {
		theme.Bin = def.Bin
	}
	if theme.More == "" {
		theme.More = def.More
	}
	if theme.Cursor == "" {
		theme.Cursor = def.Cursor
	}

	accent := lipgloss.Color(theme.Accent)
	muted := lipgloss.Color(theme.Muted)
	return &Template{
		Theme:         theme,
		cursor:        lipgloss.NewStyle().Foreground(accent).Bold(true),
		checkbox:      lipgloss.NewStyle().Foreground(accent),
		description:   lipgloss.NewStyle(),
		strikethrough: lipgloss.NewStyle().Strikethrough(true).Foreground(muted),
		itemEdit:      lipgloss.NewStyle().Underline(true),
		icon:          lipgloss.NewStyle().Foreground(muted),
		title:         lipgloss.NewStyle().Bold(true).Foreground(accent),
		muted:         lipgloss.NewStyle().Foreground(muted),
		errorStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Error)),
	}
}

// Checkbox returns the checkbox glyph for a completion state.
func (t *Template) Checkbox(completed bool) string {
	if completed {
		return t.Theme.Checked
	}
	return t.Theme.Unchecked
}

// ActionIcon returns the bin glyph while the pointer is on the node and
// the more glyph otherwise.
func (t *Template) ActionIcon(n *Node) string {
	if n.BinVisible() {
		return t.Theme.Bin
	}
	return t.Theme.More
}

// PlainLine renders a node without styling: "[x]  2  description".
func (t *Template) PlainLine(n *Node) string {
	item := n.Item()
	return fmt.Sprintf("%s %2d  %s", t.Checkbox(item.Completed), item.Index, item.Description)
}

// StyledLine renders a node for the terminal. description replaces the
// item text when non-empty (the live editor view).
func (t *Template) StyledLine(n *Node, description string) string {
	item := n.Item()

	cursor := strings.Repeat(" ", lipgloss.Width(t.Theme.Cursor))
	if n.Hovered() {
		cursor = t.cursor.Render(t.Theme.Cursor)
	}

	if description == "" {
		style := t.description
		if n.HasClass(ClassStrikethrough) {
			style = t.strikethrough
		}
		if n.HasClass(ClassItemEdit) {
			style = style.Inherit(t.itemEdit)
		}
		description = style.Render(item.Description)
	}

	return fmt.Sprintf("%s %s %s  %s",
		cursor,
		t.checkbox.Render(t.Checkbox(item.Completed)),
		description,
		t.icon.Render(t.ActionIcon(n)),
	)
}
