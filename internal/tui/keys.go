package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"tipdesk/internal/nav"
)

type keyMap struct {
	Down, Up         key.Binding
	PageDown, PageUp key.Binding
	Enter            key.Binding
	Back             key.Binding
	Quit             key.Binding
	Help             key.Binding

	Home      key.Binding
	Portfolio key.Binding
	About     key.Binding
	Login     key.Binding
	Notes     key.Binding

	Stock      key.Binding
	Post       key.Binding
	Author     key.Binding
	Journal    key.Binding
	AddNote    key.Binding
	Conviction key.Binding
	Agree      key.Binding
	Neutral    key.Binding
	Disagree   key.Binding
	Copy       key.Binding

	Search        key.Binding
	SearchSegment key.Binding
	ClearPick     key.Binding

	Filter    key.Binding
	LogTrade  key.Binding
	DelTrade  key.Binding
	NextField key.Binding
	PrevField key.Binding
	Submit    key.Binding
	Cancel    key.Binding
	SwitchTab key.Binding
	Google    key.Binding
	Cycle     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
		Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:     key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),

		Home:      key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "home")),
		Portfolio: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "portfolio")),
		About:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "about")),
		Login:     key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "log in")),
		Notes:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "notes")),

		Stock:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stock")),
		Post:       key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "post")),
		Author:     key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "author")),
		Journal:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "journal")),
		AddNote:    key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "add note")),
		Conviction: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "conviction")),
		Agree:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "agree")),
		Neutral:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "neutral")),
		Disagree:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "disagree")),
		Copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy tip")),

		Search:        key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		SearchSegment: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "stock/sector")),
		ClearPick:     key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "clear pick")),

		Filter:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
		LogTrade:  key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "log trade")),
		DelTrade:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete trade")),
		NextField: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Submit:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		SwitchTab: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "login/sign up")),
		Google:    key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "google")),
		Cycle:     key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "cycle option")),
	}
}

// modeHelp is the short help line for each screen.
func (k keyMap) modeHelp(mode nav.ViewMode, mobile bool) []key.Binding {
	global := []key.Binding{k.Back, k.Search, k.Notes, k.Portfolio, k.Help, k.Quit}
	var local []key.Binding
	switch mode {
	case nav.ModeTimeline:
		local = []key.Binding{k.Down, k.Up, k.Stock, k.Post, k.Author, k.Agree, k.Neutral, k.Disagree, k.AddNote, k.Conviction, k.Copy}
		if mobile {
			local = append([]key.Binding{k.Enter}, local...)
		}
	case nav.ModeStock:
		local = []key.Binding{k.Down, k.Up, k.Enter, k.Journal, k.AddNote, k.Conviction, k.Agree, k.Disagree}
	case nav.ModePost:
		local = []key.Binding{k.Down, k.Up, k.Enter, k.Stock, k.Author, k.AddNote}
	case nav.ModePortfolio:
		local = []key.Binding{k.Down, k.Up, k.Enter, k.Journal, k.Filter}
	case nav.ModeJournal:
		local = []key.Binding{k.Down, k.Up, k.LogTrade, k.DelTrade, k.Conviction}
	case nav.ModeAuthor:
		local = []key.Binding{k.Down, k.Up, k.Enter, k.Filter}
	case nav.ModeAbout:
		local = []key.Binding{k.Down, k.Up}
		global = []key.Binding{k.Back, k.Home, k.Quit}
	case nav.ModeAuth:
		return []key.Binding{k.NextField, k.Enter, k.SwitchTab, k.Google, k.Cancel}
	}
	return append(local, global...)
}

func (k keyMap) searchHelp() []key.Binding {
	return []key.Binding{k.SearchSegment, k.Up, k.Down, k.Enter, k.ClearPick, k.Cancel}
}

func (k keyMap) formHelp() []key.Binding {
	return []key.Binding{k.NextField, k.PrevField, k.Cycle, k.Submit, k.Cancel}
}

// ShortHelp and FullHelp satisfy help.KeyMap for the "?" overlay.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Down, k.Up, k.PageDown, k.PageUp, k.Enter, k.Back},
		{k.Home, k.Portfolio, k.About, k.Login, k.Notes, k.Search},
		{k.Stock, k.Post, k.Author, k.Journal},
		{k.Agree, k.Neutral, k.Disagree, k.AddNote, k.Conviction, k.Copy},
		{k.Filter, k.LogTrade, k.DelTrade, k.Help, k.Quit},
	}
}
