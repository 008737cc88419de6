package preview

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the preview bindings. Scrolling keys are handled by the
// focused viewport.
type KeyMap struct {
	Quit        key.Binding
	ToggleFocus key.Binding
	ToggleRaw   key.Binding
	Top         key.Binding
	Bottom      key.Binding
	Help        key.Binding
}

func defaultKeyMap() KeyMap {
	return KeyMap{
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
		ToggleFocus: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		ToggleRaw:   key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "hide/show diff")),
		Top:         key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:      key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	}
}
