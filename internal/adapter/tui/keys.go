package tui

import "github.com/charmbracelet/bubbles/key"

// Typing goes to the textarea, so mode toggles use ctrl chords the textarea
// does not bind.
type keyMap struct {
	Submit      key.Binding
	Newline     key.Binding
	NextTab     key.Binding
	PrevTab     key.Binding
	Kind        key.Binding
	Verbosity   key.Binding
	Bullets     key.Binding
	Terminology key.Binding
	Export      key.Binding
	Reset       key.Binding
	Quit        key.Binding
}

var keys = keyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "enviar"),
	),
	Newline: key.NewBinding(
		key.WithKeys("alt+enter", "ctrl+j"),
		key.WithHelp("alt+enter", "nova linha"),
	),
	NextTab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "próxima aba"),
	),
	PrevTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "aba anterior"),
	),
	Kind: key.NewBinding(
		key.WithKeys("ctrl+g"),
		key.WithHelp("ctrl+g", "tipo"),
	),
	Verbosity: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "nível"),
	),
	Bullets: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("ctrl+o", "tópicos"),
	),
	Terminology: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("ctrl+y", "termos técnicos"),
	),
	Export: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("ctrl+x", "exportar"),
	),
	Reset: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "limpar conversa"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "sair"),
	),
}
