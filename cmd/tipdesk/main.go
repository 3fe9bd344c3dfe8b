package main

import (
	"context"
	"os"
	"strings"

	"tipdesk/internal/cli"
)

// cashtag reports whether s looks like "$MSFT" and returns the symbol.
func cashtag(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '$' {
		return "", false
	}
	sym := s[1:]
	for _, r := range sym {
		if !(r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '.') {
			return "", false
		}
	}
	return strings.ToUpper(sym), true
}

// rewriteCashtagArgs makes `tipdesk '$MSFT'` work like `tipdesk stock MSFT`.
//
// Cobra treats the first non-flag token as a subcommand, so argv is rewritten
// before parsing. Persistent flags may come first (`tipdesk --data x.db $MSFT`),
// so the first positional token is what counts, not argv[1].
func rewriteCashtagArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--config": true,
		"--data":   true,
		"--format": true,
	}
	boolFlags := map[string]bool{
		"--pretty":  true,
		"--verbose": true,
		"-v":        true,
	}

	rewrite := func(i int, sym string) []string {
		out := make([]string, 0, len(argv)+1)
		out = append(out, argv[:i]...)
		out = append(out, "stock", sym)
		out = append(out, argv[i+1:]...)
		return out
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) {
				if sym, ok := cashtag(argv[i+1]); ok {
					return rewrite(i+1, sym)
				}
			}
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") || boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++
			}
			continue
		}
		if sym, ok := cashtag(a); ok {
			return rewrite(i, sym)
		}
		return argv
	}
	return argv
}

func main() {
	args := rewriteCashtagArgs(os.Args)
	if err := cli.Execute(context.Background(), args[1:]); err != nil {
		os.Exit(1)
	}
}
