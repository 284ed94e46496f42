package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Open     key.Binding
	Back     key.Binding
	New      key.Binding
	Rename   key.Binding
	Delete   key.Binding
	Status   key.Binding
	Priority key.Binding
	Help     key.Binding
	Quit     key.Binding
	Submit   key.Binding
	Cancel   key.Binding
	Yes      key.Binding
	No       key.Binding
	Toggle   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Open:     key.NewBinding(key.WithKeys("l", "right", "enter"), key.WithHelp("l/enter", "open")),
		Back:     key.NewBinding(key.WithKeys("h", "left", "esc"), key.WithHelp("h/esc", "back")),
		New:      key.NewBinding(key.WithKeys("a", "n"), key.WithHelp("a", "new")),
		Rename:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
		Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Status:   key.NewBinding(key.WithKeys("enter", "s"), key.WithHelp("enter", "status")),
		Priority: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "priority")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel:   key.NewBinding(key.WithKeys("esc", "ctrl+g"), key.WithHelp("esc", "cancel")),
		Yes:      key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
		No:       key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "no")),
		Toggle:   key.NewBinding(key.WithKeys("tab", "shift+tab", "left", "right"), key.WithHelp("tab", "focus")),
	}
}

// contextHelp adapts a fixed set of bindings to help.KeyMap.
type contextHelp struct {
	short []key.Binding
	full  [][]key.Binding
}

func (h contextHelp) ShortHelp() []key.Binding  { return h.short }
func (h contextHelp) FullHelp() [][]key.Binding { return h.full }

func (k keyMap) projectsHelp() contextHelp {
	return contextHelp{
		short: []key.Binding{k.Down, k.Up, k.Open, k.New, k.Rename, k.Delete, k.Help, k.Quit},
		full: [][]key.Binding{
			{k.Down, k.Up, k.Open},
			{k.New, k.Rename, k.Delete},
			{k.Help, k.Quit},
		},
	}
}

func (k keyMap) tasksHelp() contextHelp {
	return contextHelp{
		short: []key.Binding{k.Down, k.Up, k.Back, k.Status, k.Priority, k.New, k.Rename, k.Delete, k.Quit},
		full: [][]key.Binding{
			{k.Down, k.Up, k.Back},
			{k.Status, k.Priority},
			{k.New, k.Rename, k.Delete},
			{k.Help, k.Quit},
		},
	}
}
