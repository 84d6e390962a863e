package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Play     key.Binding
	Collapse key.Binding
	Select   key.Binding
	SelectUp key.Binding
	Click    key.Binding
	Jump     key.Binding
	Reload   key.Binding
	Stats    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("right", " ", "space"),
			key.WithHelp("→/space", "next step"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "previous step"),
		),
		Play: key.NewBinding(
			key.WithKeys("p", "P"),
			key.WithHelp("p", "play/pause"),
		),
		Collapse: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "collapse card"),
		),
		Select: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "select next item"),
		),
		SelectUp: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "select previous item"),
		),
		Click: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "click selected"),
		),
		Jump: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "go to slide"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload deck"),
		),
		Stats: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "stats"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Play, k.Click, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Play, k.Jump},
		{k.Select, k.SelectUp, k.Click, k.Collapse},
		{k.Reload, k.Stats, k.Help, k.Quit},
	}
}
