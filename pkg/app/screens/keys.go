package screens

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every binding the screens match against.
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Actions
	Enter  key.Binding
	Escape key.Binding
	Quit   key.Binding
	Tab    key.Binding
	Remove key.Binding
	Edit   key.Binding
	Logout key.Binding

	// Reader
	ZoomIn      key.Binding
	ZoomOut     key.Binding
	DoublePage  key.Binding
	NextChapter key.Binding
	PrevChapter key.Binding
	SwitchMode  key.Binding
	Infinite    key.Binding
	Bookmark    key.Binding
	Retry       key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous page"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l", " "),
			key.WithHelp("→/l", "next page"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("PgDn", "page down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch view"),
		),
		Remove: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "remove"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit profile"),
		),
		Logout: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "log out"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "zoom out"),
		),
		DoublePage: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "double page"),
		),
		NextChapter: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next chapter"),
		),
		PrevChapter: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "prev chapter"),
		),
		SwitchMode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "switch mode"),
		),
		Infinite: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "infinite scroll"),
		),
		Bookmark: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "bookmark"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
	}
}

// helpLine renders the short help for a set of bindings.
func helpLine(bindings ...key.Binding) string {
	out := ""
	for i, b := range bindings {
		if i > 0 {
			out += " • "
		}
		h := b.Help()
		out += h.Key + ": " + h.Desc
	}
	return out
}
