package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

func TestMarkdownStyle_Setting(t *testing.T) {
	t.Cleanup(func() { setMarkdownStyle("auto") })

	for _, s := range []string{"light", "dark", "notty"} {
		setMarkdownStyle(s)
		if got := markdownStyle(); got != s {
			t.Fatalf("expected %s; got %q", s, got)
		}
	}

	setMarkdownStyle("")
	lipgloss.SetHasDarkBackground(false)
	if got := markdownStyle(); got != "light" {
		t.Fatalf("expected auto to follow a light background; got %q", got)
	}
	lipgloss.SetHasDarkBackground(true)
	if got := markdownStyle(); got != "dark" {
		t.Fatalf("expected auto to follow a dark background; got %q", got)
	}
}

func TestMarkdownStyleConfig_UsesPalette(t *testing.T) {
	got := markdownStyleConfig("light")
	if got.Link.Color == nil || *got.Link.Color != colorAccent.Light {
		t.Fatalf("expected accent link color, got %v", got.Link.Color)
	}
	if got.Text.Color == nil || *got.Text.Color != colorSurfaceFg.Light {
		t.Fatalf("expected surface text color, got %v", got.Text.Color)
	}
	// The shared style values must not be mutated.
	if styles.LightStyleConfig.Link.Color != nil && *styles.LightStyleConfig.Link.Color == colorAccent.Light {
		t.Fatalf("palette leaked into glamour's light style")
	}
}

func TestRenderMarkdown(t *testing.T) {
	t.Cleanup(func() { setMarkdownStyle("auto") })
	setMarkdownStyle("notty")

	if got := renderMarkdown("   ", 40, false); got != "" {
		t.Fatalf("expected empty output for blank input, got %q", got)
	}

	out := xansi.Strip(renderMarkdown("Azure **re-accelerates** as capex lands.", 40, true))
	if !strings.Contains(out, "re-accelerates") {
		t.Fatalf("expected rendered text, got %q", out)
	}
	for _, line := range strings.Split(out, "\n") {
		if w := lipgloss.Width(line); w > 40 {
			t.Fatalf("line wider than wrap width (%d): %q", w, line)
		}
	}
}
