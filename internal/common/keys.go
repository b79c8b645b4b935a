package common

import "github.com/charmbracelet/bubbles/key"

type HelpBindable interface {
	HelpBindings() []key.Binding
}

type FullHelpBindable interface {
	FullHelpBindings() []key.Binding
}

// KeyMap holds the bindings the root model handles on every screen.
type KeyMap struct {
	Help   key.Binding
	Back   key.Binding
	Quit   key.Binding
	Forget key.Binding

	Finder  key.Binding
	Chart   key.Binding
	Catalog key.Binding
	NextTab key.Binding
	PrevTab key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Finder, k.Chart, k.Catalog},
		{k.NextTab, k.PrevTab},
		{k.Help, k.Back, k.Forget, k.Quit},
	}
}

var Keys = KeyMap{
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Forget: key.NewBinding(
		key.WithKeys("ctrl+q"),
		key.WithHelp("ctrl+q", "forget api key"),
	),
	Finder: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "finder"),
	),
	Chart: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "chart"),
	),
	Catalog: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "catalog"),
	),
	NextTab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next tab"),
	),
	PrevTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev tab"),
	),
}
