package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// normalizePane forces s to exactly width columns (ANSI-aware) and height
// lines so lipgloss.JoinHorizontal lines panes up.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}
	for i, ln := range lines {
		lines[i] = fitLine(ln, width)
	}
	return strings.Join(lines, "\n")
}

// fitLine truncates with an ellipsis or pads with spaces to width columns.
func fitLine(ln string, width int) string {
	if width <= 0 {
		return ""
	}
	// Bound the width computation on pathological lines.
	if len(ln) > 8192 {
		ln = xansi.Cut(ln, 0, width)
	}
	w := xansi.StringWidth(ln)
	if w > width {
		if width == 1 {
			return xansi.Cut(ln, 0, 1)
		}
		ln = xansi.Cut(ln, 0, width-1) + "…"
		w = xansi.StringWidth(ln)
	}
	if w < width {
		ln += strings.Repeat(" ", width-w)
	}
	return ln
}

// truncate cuts s to width columns without padding.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if xansi.StringWidth(s) <= width {
		return s
	}
	if width == 1 {
		return xansi.Cut(s, 0, 1)
	}
	return xansi.Cut(s, 0, width-1) + "…"
}

// columns splits total width into a list, a main pane and an optional side
// panel. Zero widths mean the pane is hidden.
type columns struct {
	list, main, panel int
}

const (
	listColumnW  = 34
	panelColumnW = 38
	gutterW      = 1
)

func desktopColumns(total int, withList, withPanel bool) columns {
	c := columns{main: total}
	if withList {
		c.list = listColumnW
		c.main -= listColumnW + gutterW
	}
	if withPanel {
		c.panel = panelColumnW
		c.main -= panelColumnW + gutterW
	}
	// Give the main pane at least a third of the screen.
	if floor := total / 3; c.main < floor {
		short := floor - c.main
		if c.panel > 0 {
			take := short
			if take > c.panel-20 {
				take = c.panel - 20
			}
			c.panel -= take
			c.main += take
			short -= take
		}
		if short > 0 && c.list > 0 {
			c.list -= short
			c.main += short
		}
	}
	if c.main < 1 {
		c.main = 1
	}
	return c
}

// joinColumns lays panes side by side with a one-column gutter. Panes with
// zero width are skipped.
func joinColumns(height int, panes ...pane) string {
	parts := make([]string, 0, 2*len(panes))
	gutter := normalizePane("", gutterW, height)
	for _, p := range panes {
		if p.width <= 0 {
			continue
		}
		if len(parts) > 0 {
			parts = append(parts, gutter)
		}
		parts = append(parts, normalizePane(p.body, p.width, height))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

type pane struct {
	body  string
	width int
}

// vrule draws a muted vertical divider, used as the panel's left edge.
func vrule(height int) string {
	if height <= 0 {
		return ""
	}
	return styleMuted().Render(strings.TrimRight(strings.Repeat("│\n", height), "\n"))
}
