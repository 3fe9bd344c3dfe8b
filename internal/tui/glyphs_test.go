package tui

import (
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"

	"tipdesk/internal/model"
)

func TestGlyphs_Preference(t *testing.T) {
	t.Cleanup(func() { setGlyphs(glyphSetUnicode) })

	applyGlyphPreference("")
	if got := glyphs(); got != glyphSetUnicode {
		t.Fatalf("expected unicode glyphs by default; got %v", got)
	}

	applyGlyphPreference("ASCII")
	if got := glyphs(); got != glyphSetASCII {
		t.Fatalf("expected ascii glyphs; got %v", got)
	}

	// Unknown values keep the current set.
	applyGlyphPreference("bogus")
	if got := glyphs(); got != glyphSetASCII {
		t.Fatalf("expected unknown to be ignored; got %v", got)
	}

	applyGlyphPreference("unicode")
	if got := glyphs(); got != glyphSetUnicode {
		t.Fatalf("expected unicode glyphs; got %v", got)
	}
}

func TestGlyphs_ASCIICard(t *testing.T) {
	t.Cleanup(func() { setGlyphs(glyphSetUnicode) })
	setGlyphs(glyphSetASCII)

	tip := model.Tip{ID: "1", Symbol: "MSFT", Period: "Q3 2024", Title: "Azure", Sentiment: model.SentimentBullish}
	card := xansi.Strip(renderTipCard(tip, 60, false))
	if strings.Contains(card, "•") {
		t.Fatalf("expected ascii bullet, got:\n%s", card)
	}
	if !strings.Contains(card, "Q3 2024 *") {
		t.Fatalf("expected ascii period separator, got:\n%s", card)
	}
}
