package tui

import (
	"errors"
	"strings"

	"github.com/atotto/clipboard"

	"tipdesk/internal/model"
)

var errNoClipboard = errors.New("no clipboard tool found (install xclip, xsel or wl-clipboard)")

// clipboardWrite is swapped out in tests.
var clipboardWrite = func(s string) error {
	if clipboard.Unsupported {
		return errNoClipboard
	}
	return clipboard.WriteAll(strings.ReplaceAll(s, "\r\n", "\n"))
}

// tipClipboardText is the plain-text form of a tip pasted elsewhere.
func tipClipboardText(t model.Tip) string {
	var b strings.Builder
	b.WriteString("$" + t.Symbol + " " + strings.ToUpper(string(t.Sentiment)) + " (" + t.Period + ")\n")
	b.WriteString(t.Title + "\n")
	if t.Thesis != "" {
		b.WriteString("\n" + t.Thesis + "\n")
	}
	if t.Source.Name != "" {
		b.WriteString("\n" + t.Source.Name)
		if t.Source.URL != "" {
			b.WriteString(" " + t.Source.URL)
		}
		b.WriteString("\n")
	}
	return b.String()
}
