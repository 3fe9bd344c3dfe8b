package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"tipdesk/internal/logging"
)

// runCLI runs the root command with an isolated config dir so a developer's
// own config.yaml never leaks into tests.
func runCLI(t *testing.T, args ...string) (stdout []byte, stderr []byte, err error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("TIPDESK_CONFIG", "")

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

func mustRunJSON(t *testing.T, args ...string) any {
	t.Helper()
	stdout, stderr, err := runCLI(t, args...)
	if err != nil {
		t.Fatalf("tipdesk %v failed: %v\nstderr:\n%s", args, err, stderr)
	}
	var env map[string]any
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal stdout: %v\nstdout:\n%s", err, stdout)
	}
	data, ok := env["data"]
	if !ok {
		t.Fatalf("expected data envelope, got: %s", stdout)
	}
	return data
}

func tipIDs(t *testing.T, data any) []string {
	t.Helper()
	xs, ok := data.([]any)
	if !ok {
		t.Fatalf("expected a list, got %T", data)
	}
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		m, _ := x.(map[string]any)
		id, _ := m["id"].(string)
		out = append(out, id)
	}
	return out
}

func TestTipsList_All(t *testing.T) {
	ids := tipIDs(t, mustRunJSON(t, "tips", "list"))
	want := []string{"1", "2", "3", "4", "4b", "5", "6", "7"}
	if strings.Join(ids, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, ids)
	}
}

func TestTipsList_StockIsExact(t *testing.T) {
	ids := tipIDs(t, mustRunJSON(t, "tips", "list", "--stock", "GOOG"))
	if strings.Join(ids, ",") != "4" {
		t.Fatalf("expected only tip 4 for GOOG, got %v", ids)
	}
}

func TestTipsList_AuthorAndKind(t *testing.T) {
	all := tipIDs(t, mustRunJSON(t, "tips", "list", "--author", "Sarah Chen"))
	if len(all) != 5 {
		t.Fatalf("expected 5 tips by Sarah Chen, got %v", all)
	}
	videos := tipIDs(t, mustRunJSON(t, "tips", "list", "--author", "Sarah Chen", "--kind", "video"))
	articles := tipIDs(t, mustRunJSON(t, "tips", "list", "--author", "Sarah Chen", "--kind", "article"))
	if len(videos)+len(articles) != len(all) {
		t.Fatalf("video %v + article %v should partition %v", videos, articles, all)
	}
}

func TestTipsList_KindWithoutAuthorFails(t *testing.T) {
	_, stderr, err := runCLI(t, "tips", "list", "--kind", "video")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(string(stderr), "--kind") {
		t.Fatalf("expected flag error on stderr, got %q", stderr)
	}
}

func TestTipsShow(t *testing.T) {
	data := mustRunJSON(t, "tips", "show", "1").(map[string]any)
	tip := data["tip"].(map[string]any)
	if tip["symbol"] != "MSFT" {
		t.Fatalf("expected MSFT, got %v", tip["symbol"])
	}
	if data["assessment"] != "agree" {
		t.Fatalf("expected seeded agree assessment, got %v", data["assessment"])
	}
	if _, ok := data["notes"].([]any); !ok {
		t.Fatalf("expected notes list, got %T", data["notes"])
	}
}

func TestTipsShow_Unknown(t *testing.T) {
	_, stderr, err := runCLI(t, "tips", "show", "zz")
	if err == nil {
		t.Fatalf("expected error")
	}
	if got := strings.TrimSpace(string(stderr)); got != "tip not found: zz" {
		t.Fatalf("unexpected stderr: %q", got)
	}
}

func TestStock(t *testing.T) {
	data := mustRunJSON(t, "stock", "MSFT").(map[string]any)
	if data["symbol"] != "MSFT" {
		t.Fatalf("expected MSFT, got %v", data["symbol"])
	}
	if ids := tipIDs(t, data["tips"]); strings.Join(ids, ",") != "1,5,7" {
		t.Fatalf("expected MSFT tips 1,5,7, got %v", ids)
	}
	if data["position"] == nil {
		t.Fatalf("expected MSFT position")
	}
	conv := data["conviction"].(map[string]any)
	if conv["level"] != "high" || conv["sentiment"] != "bullish" {
		t.Fatalf("expected seeded high/bullish conviction, got %v", conv)
	}
	if trades, _ := data["trades"].([]any); len(trades) == 0 {
		t.Fatalf("expected MSFT trades")
	}
}

func TestStock_Unknown(t *testing.T) {
	_, _, err := runCLI(t, "stock", "NOPE")
	if err == nil {
		t.Fatalf("expected error for unknown stock")
	}
}

func TestPortfolio_Filter(t *testing.T) {
	data := mustRunJSON(t, "portfolio", "--filter", "gainers").(map[string]any)
	if data["filter"] != "gainers" {
		t.Fatalf("expected gainers filter echoed, got %v", data["filter"])
	}
	for _, h := range data["holdings"].([]any) {
		if pl := h.(map[string]any)["plPercent"].(float64); pl <= 0 {
			t.Fatalf("gainers filter returned holding with P/L %v", pl)
		}
	}

	if _, _, err := runCLI(t, "portfolio", "--filter", "sideways"); err == nil {
		t.Fatalf("expected error for bad filter")
	}
}

func TestAuthor(t *testing.T) {
	data := mustRunJSON(t, "author", "Sarah Chen").(map[string]any)
	if posts := data["posts"].([]any); len(posts) != 6 {
		t.Fatalf("expected 6 posts, got %d", len(posts))
	}
	videos := mustRunJSON(t, "author", "Sarah Chen", "--kind", "video").(map[string]any)
	for _, p := range videos["posts"].([]any) {
		if k := p.(map[string]any)["kind"]; k != "video" {
			t.Fatalf("expected only video posts, got %v", k)
		}
	}
}

func TestPost_Unknown(t *testing.T) {
	_, stderr, err := runCLI(t, "post", "post-missing")
	if err == nil || !strings.Contains(string(stderr), "post not found") {
		t.Fatalf("expected not found, got err=%v stderr=%q", err, stderr)
	}
}

func TestFormat_EDNAndYAML(t *testing.T) {
	stdout, _, err := runCLI(t, "--format", "edn", "tips", "show", "3")
	if err != nil {
		t.Fatalf("edn: %v", err)
	}
	if !strings.HasPrefix(string(stdout), "{:data") {
		t.Fatalf("expected EDN map, got %q", stdout)
	}

	stdout, _, err = runCLI(t, "--format", "yaml", "tips", "show", "3")
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if !strings.Contains(string(stdout), "symbol: TSLA") {
		t.Fatalf("expected YAML with TSLA, got:\n%s", stdout)
	}

	if _, _, err := runCLI(t, "--format", "xml", "tips", "list"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestConfigFileSetsFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "output:\n  format: edn\n")
	stdout, _, err := runCLI(t, "--config", path, "tips", "show", "1")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasPrefix(string(stdout), "{:data") {
		t.Fatalf("expected config format edn, got %q", stdout)
	}

	// An explicit flag wins over the file.
	stdout, _, err = runCLI(t, "--config", path, "--format", "json", "tips", "show", "1")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasPrefix(string(stdout), "{") || strings.HasPrefix(string(stdout), "{:") {
		t.Fatalf("expected JSON, got %q", stdout)
	}
}

func TestDatasetExportAndReload(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "tips.db")
	yml := filepath.Join(dir, "tips.yaml")

	written := mustRunJSON(t, "dataset", "export", "--sqlite", db, "--yaml", yml).([]any)
	if len(written) != 2 {
		t.Fatalf("expected two exports, got %v", written)
	}

	for _, path := range []string{db, yml} {
		ids := tipIDs(t, mustRunJSON(t, "--data", path, "tips", "list"))
		if len(ids) != 8 {
			t.Fatalf("%s: expected 8 tips, got %v", path, ids)
		}
	}
}

func TestDatasetExport_RequiresTarget(t *testing.T) {
	if _, _, err := runCLI(t, "dataset", "export"); err == nil {
		t.Fatalf("expected error without a target")
	}
}

func TestDatasetCheck(t *testing.T) {
	data := mustRunJSON(t, "dataset", "check").(map[string]any)
	if data["ok"] != true {
		t.Fatalf("expected ok, got %v", data)
	}
	counts := data["counts"].(map[string]any)
	if counts["tips"].(float64) != 8 {
		t.Fatalf("expected 8 tips, got %v", counts["tips"])
	}
}

func TestDatasetCheck_BadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	writeFile(t, path, "tips:\n  - id: \"1\"\n    sentiment: sideways\n")
	if _, _, err := runCLI(t, "--data", path, "dataset", "check"); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestEnvOr(t *testing.T) {
	t.Setenv("TIPDESK_TEST_ENV_OR", "x")
	if got := envOr("TIPDESK_TEST_ENV_OR", "d"); got != "x" {
		t.Fatalf("expected env value, got %q", got)
	}
	if got := envOr("TIPDESK_TEST_ENV_OR_UNSET", "d"); got != "d" {
		t.Fatalf("expected default, got %q", got)
	}
}

func TestDocs(t *testing.T) {
	data := mustRunJSON(t, "docs").(map[string]any)
	if topics, _ := data["topics"].([]any); len(topics) != 3 {
		t.Fatalf("expected 3 topics, got %v", data["topics"])
	}

	stdout, _, err := runCLI(t, "docs", "keys", "--raw")
	if err != nil {
		t.Fatalf("docs keys: %v", err)
	}
	if !strings.HasPrefix(string(stdout), "# Keys") {
		t.Fatalf("expected raw markdown, got %q", stdout)
	}

	if _, _, err := runCLI(t, "docs", "nope"); err == nil {
		t.Fatalf("expected unknown topic error")
	}
}

func TestSearch(t *testing.T) {
	data := mustRunJSON(t, "search", "goo").(map[string]any)
	got, _ := data["suggestions"].([]any)
	if len(got) != 2 || got[0] != "GOOG" || got[1] != "GOOGL" {
		t.Fatalf("unexpected stock suggestions %v", data["suggestions"])
	}

	data = mustRunJSON(t, "search", "--segment", "sector").(map[string]any)
	if got, _ := data["suggestions"].([]any); len(got) != 8 || got[0] != "Technology" {
		t.Fatalf("expected the first 8 sectors, got %v", data["suggestions"])
	}

	if _, _, err := runCLI(t, "search", "--segment", "fund", "x"); err == nil {
		t.Fatalf("expected unknown segment error")
	}
}

type countingCloser struct{ closed int }

func (c *countingCloser) Close() error {
	c.closed++
	return nil
}

func TestRun_ClosesLogWhenCommandFails(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("TIPDESK_CONFIG", "")

	closer := &countingCloser{}
	app := &App{newLogger: func(logging.Options) (zerolog.Logger, io.Closer) {
		return zerolog.Nop(), closer
	}}
	cmd := newRootCmd(app)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"tips", "show", "does-not-exist"})

	if err := run(context.Background(), app, cmd); err == nil {
		t.Fatalf("expected unknown tip to fail")
	}
	if closer.closed != 1 {
		t.Fatalf("expected log closed once, got %d", closer.closed)
	}
	if app.logCloser != nil {
		t.Fatalf("expected closer to be released")
	}
}
