package scrollsync

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestCenterOffset(t *testing.T) {
	cases := []struct {
		name                                 string
		top, height, viewport, content, want int
	}{
		{"middle", 40, 10, 20, 200, 35},
		{"clamped at top", 2, 6, 20, 200, 0},
		{"clamped at bottom", 195, 5, 20, 200, 180},
		{"content shorter than viewport", 5, 5, 20, 12, 0},
		{"no viewport", 5, 5, 0, 100, 0},
	}
	for _, tc := range cases {
		if got := CenterOffset(tc.top, tc.height, tc.viewport, tc.content); got != tc.want {
			t.Fatalf("%s: got %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestStack(t *testing.T) {
	items := Stack([]string{"a", "b", "c"}, []int{3, 5, 2}, 1)
	want := []Item{{"a", 0, 3}, {"b", 4, 9}, {"c", 10, 12}}
	for i := range want {
		if items[i] != want[i] {
			t.Fatalf("item %d: got %+v, want %+v", i, items[i], want[i])
		}
	}
}

func TestTracker_ReadingLine(t *testing.T) {
	items := Stack([]string{"a", "b", "c"}, []int{10, 10, 10}, 0)
	var tr Tracker

	// Reading line at 0 + 30/3 = 10: only "a" starts above it.
	if id, ok := tr.Observe(Rect{Top: 0, Height: 30}, items); !ok || id != "a" {
		t.Fatalf("got %q %v", id, ok)
	}
	// Window starts at 12: "a" ended above, "b" straddles the top.
	if id, ok := tr.Observe(Rect{Top: 12, Height: 30}, items); !ok || id != "b" {
		t.Fatalf("got %q %v", id, ok)
	}
	// Nothing visible: keep the last one.
	if id, ok := tr.Observe(Rect{Top: 100, Height: 30}, items); !ok || id != "b" {
		t.Fatalf("expected sticky b, got %q %v", id, ok)
	}
	// The last one left the list: report nothing rather than a stale id.
	if id, ok := tr.Observe(Rect{Top: 100, Height: 30}, items[:1]); ok || id != "" {
		t.Fatalf("expected nothing, got %q %v", id, ok)
	}
}

func TestTracker_Detach(t *testing.T) {
	items := Stack([]string{"a"}, []int{10}, 0)
	var tr Tracker
	tr.Observe(Rect{Height: 30}, items)
	tr.Detach()
	if id, ok := tr.Observe(Rect{Height: 30}, items); ok || id != "" {
		t.Fatalf("detached tracker reported %q", id)
	}
	var nilTracker *Tracker
	if _, ok := nilTracker.Observe(Rect{Height: 30}, items); ok {
		t.Fatal("nil tracker should report nothing")
	}
}

// Observe never reports an id outside the current set, and once it has
// reported something it keeps reporting while that id stays in the set.
func TestProperty_TrackerStaysInSetAndSticks(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	properties.Property("observe is in-set and sticky", prop.ForAll(
		func(heights []int, tops []int, viewH int) bool {
			ids := make([]string, len(heights))
			for i := range ids {
				ids[i] = string(rune('a' + i%26))
			}
			items := Stack(ids, heights, 1)
			var tr Tracker
			seen := false
			for _, top := range tops {
				id, ok := tr.Observe(Rect{Top: top, Height: viewH}, items)
				if seen && !ok {
					return false
				}
				if ok {
					if _, in := Find(items, id); !in {
						return false
					}
					seen = true
				}
			}
			return true
		},
		gen.SliceOfN(12, gen.IntRange(1, 15)),
		gen.SliceOf(gen.IntRange(-20, 300)),
		gen.IntRange(3, 60),
	))

	properties.TestingRun(t)
}

func TestScroller_SettlesOnTarget(t *testing.T) {
	s := NewScroller(1)
	if cmd := s.ScrollTo(40); cmd == nil {
		t.Fatal("expected a tick to start the animation")
	}
	if !s.Animating() {
		t.Fatal("expected animating")
	}
	s.Settle()
	if s.Animating() || s.Offset() != 40 {
		t.Fatalf("expected settled at 40, got %d animating=%v", s.Offset(), s.Animating())
	}
	// Idempotent once there.
	if cmd := s.ScrollTo(40); cmd != nil {
		t.Fatal("expected no tick when already at target")
	}
}

func TestScroller_RetargetWhileAnimatingDoesNotStackTicks(t *testing.T) {
	s := NewScroller(7)
	if cmd := s.ScrollTo(50); cmd == nil {
		t.Fatal("expected first tick")
	}
	if cmd := s.ScrollTo(10); cmd != nil {
		t.Fatal("retarget mid-animation must reuse the running tick chain")
	}
	s.Settle()
	if s.Offset() != 10 {
		t.Fatalf("expected 10, got %d", s.Offset())
	}
}

func TestScroller_IgnoresOtherTicks(t *testing.T) {
	s := NewScroller(1)
	s.ScrollTo(20)
	if handled, _ := s.Update(TickMsg{ID: 2}); handled {
		t.Fatal("tick for another scroller was handled")
	}
	before := s.Offset()
	handled, cmd := s.Update(TickMsg{ID: 1})
	if !handled || cmd == nil || s.Offset() < before {
		t.Fatalf("expected one frame of progress, handled=%v offset=%d", handled, s.Offset())
	}
	s.Jump(5)
	if s.Animating() || s.Offset() != 5 {
		t.Fatalf("jump should stop at 5, got %d", s.Offset())
	}
}
