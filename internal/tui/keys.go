package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings
type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Enter     key.Binding
	Back      key.Binding
	Search    key.Binding
	Copy      key.Binding
	CopyCred  key.Binding
	CopyBare  key.Binding
	CopyUser  key.Binding
	CopyPass  key.Binding
	CopyURL   key.Binding
	NextProj  key.Binding
	PrevProj  key.Binding
	Reveal    key.Binding
	Refresh   key.Binding
	Help      key.Binding
	Quit      key.Binding
	Escape    key.Binding
	GoTop     key.Binding
	GoBottom  key.Binding
	ForceQuit key.Binding
}

var keys = keyMap{
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Back:      key.NewBinding(key.WithKeys("esc", "backspace", "h", "left"), key.WithHelp("esc", "back")),
	Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Copy:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
	CopyCred:  key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy credential")),
	CopyBare:  key.NewBinding(key.WithKeys("Y"), key.WithHelp("Y", "copy without attachments")),
	CopyUser:  key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "copy username")),
	CopyPass:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "copy password")),
	CopyURL:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "copy url")),
	NextProj:  key.NewBinding(key.WithKeys("]", "f", "tab"), key.WithHelp("]/f", "next project")),
	PrevProj:  key.NewBinding(key.WithKeys("[", "shift+tab"), key.WithHelp("[", "previous project")),
	Reveal:    key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "show/hide passwords")),
	Refresh:   key.NewBinding(key.WithKeys("r", "R"), key.WithHelp("r", "refresh")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Escape:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	GoTop:     key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
	GoBottom:  key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
}
