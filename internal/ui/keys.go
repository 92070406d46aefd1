package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds every binding. It implements help.KeyMap.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Open     key.Binding
	Back     key.Binding
	Pause    key.Binding
	Retry    key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding
	Search   key.Binding
	Home     key.Binding
	Genres   key.Binding
	Category key.Binding
	Help     key.Binding
	Debug    key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		Left:     key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("←/h", "prev")),
		Right:    key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("→/l", "next")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:     key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		Pause:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause")),
		Retry:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
		NextPage: key.NewBinding(key.WithKeys("n", "]"), key.WithHelp("n", "next page")),
		PrevPage: key.NewBinding(key.WithKeys("p", "["), key.WithHelp("p", "prev page")),
		NextTab:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		PrevTab:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Home:     key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "home")),
		Genres:   key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "genres")),
		Category: key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "categories")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Debug:    key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "debug")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Back, k.Search, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Open, k.Back},
		{k.Pause, k.Retry, k.NextPage, k.PrevPage, k.NextTab, k.PrevTab},
		{k.Search, k.Home, k.Genres, k.Category, k.Help, k.Debug, k.Quit},
	}
}
