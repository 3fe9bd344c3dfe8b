package tui

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

var (
	mdRendererMu sync.Mutex
	// Renderers are cached per style and wrap width. WithAutoStyle is avoided:
	// its background query can block on some terminals.
	mdRenderers = map[string]*glamour.TermRenderer{}
	// mdStyleSetting is ui.markdown_style: auto, dark, light or notty.
	mdStyleSetting = "auto"
)

func setMarkdownStyle(s string) {
	mdRendererMu.Lock()
	defer mdRendererMu.Unlock()
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		s = "auto"
	}
	if s != mdStyleSetting {
		mdStyleSetting = s
		mdRenderers = map[string]*glamour.TermRenderer{}
	}
}

// renderMarkdown renders thesis/evidence text. Compact drops block margins for
// dense panes like the notes panel.
func renderMarkdown(md string, width int, compact bool) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	mdRendererMu.Lock()
	style := markdownStyle()
	key := style + ":" + strconv.Itoa(width)
	if compact {
		key += ":compact"
	}
	r := mdRenderers[key]
	mdRendererMu.Unlock()

	if r == nil {
		cfg := markdownStyleConfig(style)
		zero := uint(0)
		cfg.Document.Margin = &zero
		if compact {
			cfg.Paragraph.Margin = &zero
			cfg.List.Margin = &zero
			cfg.BlockQuote.Margin = &zero
			cfg.Heading.Margin = &zero
		}
		rr, err := glamour.NewTermRenderer(
			glamour.WithStyles(cfg),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		mdRendererMu.Lock()
		if existing := mdRenderers[key]; existing != nil {
			r = existing
		} else {
			mdRenderers[key] = rr
			r = rr
		}
		mdRendererMu.Unlock()
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

// markdownStyle must be called with mdRendererMu held.
func markdownStyle() string {
	switch mdStyleSetting {
	case "light", "dark", "notty":
		return mdStyleSetting
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}

func markdownStyleConfig(name string) ansi.StyleConfig {
	switch name {
	case "notty":
		return styles.NoTTYStyleConfig
	case "light":
		cfg := styles.LightStyleConfig
		applyMarkdownPalette(&cfg, name)
		return cfg
	default:
		cfg := styles.DarkStyleConfig
		applyMarkdownPalette(&cfg, name)
		return cfg
	}
}

// applyMarkdownPalette keeps headings and text on the surface color and links
// on the accent, so markdown blends with the rest of the panes.
func applyMarkdownPalette(cfg *ansi.StyleConfig, name string) {
	fg := mdColor(colorSurfaceFg, name)
	cfg.Text.Color = fg
	cfg.Heading.Color = fg
	cfg.H1.Color = fg
	cfg.H2.Color = fg
	cfg.H3.Color = fg

	link := mdColor(colorAccent, name)
	cfg.Link.Color = link
	cfg.Link.Underline = mdBoolPtr(true)
	cfg.LinkText.Color = link

	cfg.Code.Color = fg
	cfg.Strong.Color = nil
	cfg.Emph.Color = nil
	cfg.BlockQuote.Faint = mdBoolPtr(false)
}

func mdColor(c lipgloss.AdaptiveColor, name string) *string {
	if name == "light" {
		return mdStrPtr(c.Light)
	}
	return mdStrPtr(c.Dark)
}

func mdStrPtr(s string) *string { return &s }
func mdBoolPtr(b bool) *bool    { return &b }
