package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tipdesk/internal/nav"
	"tipdesk/internal/store"
)

// searchPick is what the header shows after a search ("Stock • MSFT").
type searchPick struct {
	segment store.SearchSegment
	value   string
}

func (p searchPick) label() string {
	return p.segment.Label() + " " + glyphBullet() + " " + p.value
}

// searchBox is the "/" overlay: a query line, a stock/sector segment and a
// suggestion list with a clamped highlight.
type searchBox struct {
	segment     store.SearchSegment
	input       textinput.Model
	showList    bool
	highlighted int
}

func newSearchBox() *searchBox {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "symbol"
	ti.CharLimit = 40
	ti.Focus()
	return &searchBox{segment: store.SegmentStock, input: ti, showList: true}
}

func (s *searchBox) suggestions(cat *store.Catalog) []string {
	return cat.Suggestions(s.segment, s.input.Value())
}

func (s *searchBox) switchSegment() {
	if s.segment == store.SegmentStock {
		s.segment = store.SegmentSector
		s.input.Placeholder = "sector"
	} else {
		s.segment = store.SegmentStock
		s.input.Placeholder = "symbol"
	}
	s.input.SetValue("")
	s.showList = false
	s.highlighted = 0
}

func (m *appModel) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	s := m.search
	matches := s.suggestions(m.ctl.Catalog())
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.search = nil
		return nil
	case key.Matches(msg, m.keys.SearchSegment):
		s.switchSegment()
		return nil
	case key.Matches(msg, m.keys.ClearPick):
		m.searchPick = nil
		return nil
	case msg.Type == tea.KeyDown:
		if !s.showList {
			s.showList = true
			s.highlighted = 0
			return nil
		}
		s.highlighted = nav.Clamp(s.highlighted, 1, len(matches))
		return nil
	case msg.Type == tea.KeyUp:
		if s.showList {
			s.highlighted = nav.Clamp(s.highlighted, -1, len(matches))
		}
		return nil
	case msg.Type == tea.KeyEnter:
		if !s.showList || s.highlighted >= len(matches) {
			return nil
		}
		m.pickSearch(searchPick{segment: s.segment, value: matches[s.highlighted]})
		return nil
	}

	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if s.input.Value() != before {
		s.showList = true
		s.highlighted = 0
	}
	return cmd
}

// pickSearch records the pick for the header; a stock pick also opens it.
func (m *appModel) pickSearch(p searchPick) {
	m.search = nil
	m.searchPick = &p
	m.log.Debug().Str("segment", string(p.segment)).Str("value", p.value).Msg("search pick")
	if p.segment == store.SegmentStock {
		m.dispatch(nav.OpenStock{Symbol: p.value})
	}
}

func (s *searchBox) view(cat *store.Catalog, width int) string {
	if width < 24 {
		width = 24
	}
	inner := width - 4
	tabs := make([]string, 0, 2)
	for _, seg := range []store.SearchSegment{store.SegmentStock, store.SegmentSector} {
		if seg == s.segment {
			tabs = append(tabs, lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render("["+seg.Label()+"]"))
		} else {
			tabs = append(tabs, styleMuted().Render(" "+seg.Label()+" "))
		}
	}

	s.input.Width = inner - 2
	lines := []string{strings.Join(tabs, " "), s.input.View()}
	if s.showList {
		matches := s.suggestions(cat)
		if len(matches) == 0 {
			lines = append(lines, styleMuted().Render("No matches"))
		}
		for i, v := range matches {
			if i == s.highlighted {
				lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(colorSelectedBorder).Render(glyphPointer()+" "+v))
			} else {
				lines = append(lines, "  "+v)
			}
		}
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(0, 1).
		Width(width - 2).
		Render(strings.Join(lines, "\n"))
}
