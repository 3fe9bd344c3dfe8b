package docs

import (
	"strings"
	"testing"
)

func TestTopics(t *testing.T) {
	got := strings.Join(Topics(), ",")
	if got != "config,dataset,keys" {
		t.Fatalf("unexpected topics: %s", got)
	}
}

func TestGet(t *testing.T) {
	body, ok := Get("Keys")
	if !ok || !strings.HasPrefix(body, "# Keys") {
		t.Fatalf("expected keys topic, got ok=%v", ok)
	}
	for _, bad := range []string{"", "nope", "../docs", "content/keys"} {
		if _, ok := Get(bad); ok {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}
