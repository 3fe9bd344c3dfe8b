package nav

import (
	"tipdesk/internal/model"
	"tipdesk/internal/store"
)

// Selection is the keyboard cursor over the timeline's tips.
type Selection struct {
	tips    *store.TipStore
	current string
}

// NewSelection starts on the first tip (or nothing for an empty store).
func NewSelection(tips *store.TipStore) *Selection {
	s := &Selection{tips: tips}
	if t, ok := tips.At(0); ok {
		s.current = t.ID
	}
	return s
}

func (s *Selection) CurrentID() string { return s.current }

func (s *Selection) Current() (model.Tip, bool) {
	if s.current == "" {
		return model.Tip{}, false
	}
	return s.tips.ByID(s.current)
}

// Index returns the current position, or -1 when nothing is selected.
func (s *Selection) Index() int { return s.tips.IndexOf(s.current) }

// SelectByID reports false and leaves the selection alone for unknown ids.
func (s *Selection) SelectByID(id string) bool {
	i := s.tips.IndexOf(id)
	if i < 0 {
		return false
	}
	t, _ := s.tips.At(i)
	s.current = t.ID
	return true
}

// MoveRelative moves by delta, clamped to the list bounds (no wraparound).
// It returns the new id and true, or "" and false when the cursor did not move.
func (s *Selection) MoveRelative(delta int) (string, bool) {
	n := s.tips.Len()
	if n == 0 || delta == 0 {
		return "", false
	}
	cur := s.Index()
	if cur < 0 {
		cur = 0
	}
	next := Clamp(cur, delta, n)
	if next == cur && s.current != "" {
		return "", false
	}
	t, _ := s.tips.At(next)
	s.current = t.ID
	return t.ID, true
}

// Clamp moves cursor i by delta within [0, n-1] without wrapping. It returns 0
// for an empty list.
func Clamp(i, delta, n int) int {
	if n <= 0 {
		return 0
	}
	i += delta
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}
