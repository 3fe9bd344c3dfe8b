package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tipdesk/internal/model"
)

type tipCardStyles struct {
	normal   lipgloss.Style
	selected lipgloss.Style
	title    lipgloss.Style
	meta     lipgloss.Style
}

func newTipCardStyles() tipCardStyles {
	base := lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Foreground(colorSurfaceFg)
	return tipCardStyles{
		normal:   base,
		selected: base.BorderForeground(colorSelectedBorder),
		title:    lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg),
		meta:     lipgloss.NewStyle().Foreground(ac("238", "250")),
	}
}

// renderTipCard draws a fixed-height card (tipCardH lines):
//
//	Q3 2024 • MSFT                BULLISH
//	Azure growth re-accelerates
//	Revenue $65.6B · EPS $3.30
func renderTipCard(t model.Tip, width int, selected bool) string {
	st := newTipCardStyles()
	card := st.normal
	if selected {
		card = st.selected
	}
	inner := width - card.GetHorizontalFrameSize()
	if inner < 4 {
		inner = 4
	}

	left := st.meta.Render(t.Period+" "+glyphBullet()+" ") + styleHeading().Render(t.Symbol)
	badge := sentimentBadge(string(t.Sentiment))
	gap := inner - lipgloss.Width(left) - lipgloss.Width(badge)
	head := left
	if gap >= 1 {
		head += strings.Repeat(" ", gap) + badge
	}

	metrics := make([]string, 0, len(t.Metrics))
	for _, mt := range t.Metrics {
		metrics = append(metrics, mt.Label+" "+mt.Value)
	}

	lines := []string{
		fitLine(head, inner),
		fitLine(st.title.Render(t.Title), inner),
		fitLine(st.meta.Render(strings.Join(metrics, glyphSep())), inner),
	}
	return card.Width(inner + card.GetHorizontalPadding()).Render(strings.Join(lines, "\n"))
}

// rowItem is a two-line list entry used by the portfolio and author lists.
type rowItem struct {
	key   string
	title string
	desc  string
	right string
}

func (r rowItem) FilterValue() string { return r.title }
func (r rowItem) Title() string       { return r.title }
func (r rowItem) Description() string { return r.desc }

type rowDelegate struct {
	normal   lipgloss.Style
	selected lipgloss.Style
}

func newRowDelegate() rowDelegate {
	return rowDelegate{
		normal: lipgloss.NewStyle().PaddingLeft(2),
		selected: lipgloss.NewStyle().
			PaddingLeft(1).
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(colorAccent),
	}
}

func (d rowDelegate) Height() int                             { return 2 }
func (d rowDelegate) Spacing() int                            { return 1 }
func (d rowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(rowItem)
	if !ok {
		return
	}
	style := d.normal
	titleSt := lipgloss.NewStyle().Foreground(colorSurfaceFg)
	if index == m.Index() {
		style = d.selected
		titleSt = titleSt.Bold(true)
	}
	inner := m.Width() - style.GetHorizontalFrameSize()
	if inner < 4 {
		fmt.Fprint(w, "")
		return
	}
	head := titleSt.Render(it.title)
	if it.right != "" {
		gap := inner - lipgloss.Width(head) - lipgloss.Width(it.right)
		if gap >= 1 {
			head += strings.Repeat(" ", gap) + it.right
		}
	}
	body := fitLine(head, inner) + "\n" + fitLine(styleMuted().Render(it.desc), inner)
	fmt.Fprint(w, style.Render(body))
}

func newRowList() list.Model {
	l := list.New(nil, newRowDelegate(), 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return l
}

func selectedRowKey(l list.Model) string {
	if it, ok := l.SelectedItem().(rowItem); ok {
		return it.key
	}
	return ""
}
