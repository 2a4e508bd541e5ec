package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists the editor bindings.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Paint  key.Binding
	Erase  key.Binding
	Search key.Binding
	Clear  key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the keyboard bindings: vi keys or arrows to move,
// enter to paint, space or s to search.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Paint:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "paint")),
		Erase:  key.NewBinding(key.WithKeys("x", "backspace"), key.WithHelp("x", "erase")),
		Search: key.NewBinding(key.WithKeys(" ", "s"), key.WithHelp("space/s", "search")),
		Clear:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Paint, k.Erase, k.Search, k.Clear, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Paint, k.Erase, k.Search, k.Clear, k.Quit},
	}
}
