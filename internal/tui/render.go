package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tipdesk/internal/model"
)

// spread puts left and right on one line of width columns.
func spread(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return truncate(left+" "+right, width)
	}
	return left + strings.Repeat(" ", gap) + right
}

func wrap(s string, width int) string {
	if width < 1 {
		width = 1
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}

func sectionTitle(s string) string {
	return styleAccent().Render(s)
}

func convictionLine(c model.Conviction) string {
	parts := []string{sentimentBadge(string(c.Sentiment))}
	if c.Level != "" {
		parts = append(parts, string(c.Level)+" conviction")
	}
	if c.TargetPrice != "" {
		parts = append(parts, "target "+c.TargetPrice)
	}
	return strings.Join(parts, styleMuted().Render(glyphSep()))
}

func renderConviction(c model.Conviction, width int) string {
	out := convictionLine(c)
	if r := strings.TrimSpace(c.Rationale); r != "" {
		out += "\n" + wrap(styleMuted().Render(r), width)
	}
	return out
}

func renderNotes(notes []model.Note, width int) string {
	if len(notes) == 0 {
		return styleMuted().Render("No notes yet")
	}
	var b strings.Builder
	for i, n := range notes {
		if i > 0 {
			b.WriteString("\n\n")
		}
		meta := styleMuted().Render(n.Date)
		if n.Sentiment != "" {
			meta += "  " + sentimentBadge(string(n.Sentiment))
		}
		if n.TargetPrice != "" {
			meta += styleMuted().Render("  target ") + n.TargetPrice
		}
		b.WriteString(meta)
		b.WriteString("\n")
		b.WriteString(wrap(n.Content, width))
	}
	return b.String()
}

func renderQuote(q model.Quote) string {
	if q.Price == 0 {
		return styleMuted().Render("No quote")
	}
	chg := fmt.Sprintf("%s (%s)", signedMoney(q.Change), signedPercent(q.ChangePercent))
	return styleHeading().Render(money(q.Price)) + "  " + changeStyle(q.Change).Render(chg)
}

func renderPosition(p *model.Position, width int) string {
	if p == nil {
		return styleMuted().Render("No open position")
	}
	parts := []string{
		strconv.FormatFloat(p.OpenQty, 'f', -1, 64) + " sh @ " + money(p.AvgCost),
		"value " + money(p.Valuation),
		"unrealized " + changeStyle(p.UnrealizedPL).Render(signedMoney(p.UnrealizedPL)),
		"realized " + changeStyle(p.RealizedPL).Render(signedMoney(p.RealizedPL)),
		"win rate " + strconv.FormatFloat(p.WinRate, 'f', -1, 64) + "%",
	}
	return wrap(styleMuted().Render("Position  ")+strings.Join(parts, styleMuted().Render(glyphSep())), width)
}

func assessmentLine(cur model.Assessment) string {
	opts := []struct {
		key   string
		label string
		value model.Assessment
		color lipgloss.AdaptiveColor
	}{
		{"1", "Agree", model.AssessmentAgree, colorAgree},
		{"2", "Neutral", model.AssessmentNeutral, colorNeutral},
		{"3", "Disagree", model.AssessmentDisagree, colorDisagree},
	}
	parts := make([]string, 0, len(opts))
	for _, o := range opts {
		label := "[" + o.key + "] " + o.label
		if cur == o.value {
			parts = append(parts, lipgloss.NewStyle().Bold(true).Reverse(true).Foreground(o.color).Render(" "+label+" "))
			continue
		}
		parts = append(parts, styleMuted().Render(" "+label+" "))
	}
	return styleMuted().Render("Your take  ") + strings.Join(parts, " ")
}

func metricsLine(ms []model.Metric) string {
	parts := make([]string, 0, len(ms))
	for _, mt := range ms {
		parts = append(parts, styleMuted().Render(mt.Label+" ")+mt.Value)
	}
	return strings.Join(parts, styleMuted().Render(glyphSep()))
}

func sourceLine(t model.Tip) string {
	parts := []string{t.Source.Name, string(t.SourceKind), t.Period}
	if t.Article != nil {
		parts = append(parts, fmt.Sprintf("%q, %s", t.Article.Title, t.Article.Source))
	}
	return styleMuted().Render(strings.Join(parts, glyphSep()))
}

// tipMarkdown builds the thesis, evidence and metric table as one document.
func tipMarkdown(t model.Tip) string {
	var b strings.Builder
	if s := strings.TrimSpace(t.Thesis); s != "" {
		b.WriteString("### Thesis\n\n" + s + "\n\n")
	}
	if s := strings.TrimSpace(t.Evidence); s != "" {
		b.WriteString("### Evidence\n\n" + s + "\n\n")
	}
	if len(t.MetricRows) > 0 {
		b.WriteString("| Metric | Value | Change |\n|---|---|---|\n")
		for _, r := range t.MetricRows {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", r.Metric, r.Value, r.Change)
		}
	}
	return b.String()
}

// renderTipBlock is the tall tip entry used in the stock and post scroll
// areas. The heading shows the period and author on stock pages and the
// symbol on post pages.
func renderTipBlock(t model.Tip, heading string, assessment model.Assessment, width int, active bool) string {
	st := newTipCardStyles()
	card := st.normal
	if active {
		card = st.selected
	}
	inner := width - card.GetHorizontalFrameSize()
	if inner < 10 {
		inner = 10
	}
	lines := []string{
		spread(heading, sentimentBadge(string(t.Sentiment)), inner),
		wrap(st.title.Render(t.Title), inner),
	}
	if ml := metricsLine(t.Metrics); ml != "" {
		lines = append(lines, wrap(ml, inner))
	}
	if md := renderMarkdown(t.Thesis, inner, true); md != "" {
		lines = append(lines, "", md)
	}
	if assessment != model.AssessmentUnset {
		lines = append(lines, styleMuted().Render("You: "+string(assessment)))
	}
	return card.Width(inner + card.GetHorizontalPadding()).Render(strings.Join(lines, "\n"))
}

// panelFrame draws the side panel's left rule next to its content.
func panelFrame(body string, height int) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, vrule(height), " ", body)
}
