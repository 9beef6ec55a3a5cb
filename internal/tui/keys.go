package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings
type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	PrevDay   key.Binding
	NextDay   key.Binding
	Today     key.Binding
	Add       key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Refresh   key.Binding
	Help      key.Binding
	Quit      key.Binding
	Escape    key.Binding
	Enter     key.Binding
	NextField key.Binding
	PrevField key.Binding
	AllDay    key.Binding
	Category  key.Binding
	Calendar  key.Binding
}

var keys = keyMap{
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	PrevDay:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous day")),
	NextDay:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
	Today:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
	Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add event")),
	Edit:      key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit event")),
	Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete event")),
	Refresh:   key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "refresh")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Escape:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
	NextField: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
	PrevField: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous field")),
	AllDay:    key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "toggle all day")),
	Category:  key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "next category")),
	Calendar:  key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "pick date")),
}
