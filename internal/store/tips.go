package store

import (
	"strings"

	"tipdesk/internal/model"
)

// TipStore is a read-only, ordered view over the session's tips.
//
// The backing slice is owned by the store; every accessor that returns a slice
// returns a fresh copy so callers can't reorder or mutate the display order.
type TipStore struct {
	tips  []model.Tip
	index map[string]int
}

func NewTipStore(tips []model.Tip) *TipStore {
	s := &TipStore{
		tips:  append([]model.Tip(nil), tips...),
		index: make(map[string]int, len(tips)),
	}
	for i, t := range s.tips {
		// First occurrence wins; duplicates are rejected by Dataset.Validate.
		if _, ok := s.index[t.ID]; !ok {
			s.index[t.ID] = i
		}
	}
	return s
}

func (s *TipStore) Len() int {
	if s == nil {
		return 0
	}
	return len(s.tips)
}

func (s *TipStore) At(i int) (model.Tip, bool) {
	if s == nil || i < 0 || i >= len(s.tips) {
		return model.Tip{}, false
	}
	return s.tips[i], true
}

func (s *TipStore) ByID(id string) (model.Tip, bool) {
	i := s.IndexOf(id)
	if i < 0 {
		return model.Tip{}, false
	}
	return s.tips[i], true
}

// IndexOf returns the display position of id, or -1.
func (s *TipStore) IndexOf(id string) int {
	if s == nil {
		return -1
	}
	i, ok := s.index[strings.TrimSpace(id)]
	if !ok {
		return -1
	}
	return i
}

func (s *TipStore) All() []model.Tip {
	if s == nil {
		return nil
	}
	return append([]model.Tip(nil), s.tips...)
}

func (s *TipStore) IDs() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.tips))
	for _, t := range s.tips {
		out = append(out, t.ID)
	}
	return out
}

func (s *TipStore) filter(keep func(model.Tip) bool) []model.Tip {
	if s == nil {
		return nil
	}
	var out []model.Tip
	for _, t := range s.tips {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// FilterByStock matches the symbol exactly (GOOG and GOOGL are different listings).
func (s *TipStore) FilterByStock(symbol string) []model.Tip {
	symbol = strings.TrimSpace(symbol)
	return s.filter(func(t model.Tip) bool { return t.Symbol == symbol })
}

// FilterByAuthor returns the author's tips; an empty kind matches both videos and articles.
func (s *TipStore) FilterByAuthor(name string, kind model.SourceKind) []model.Tip {
	name = strings.TrimSpace(name)
	return s.filter(func(t model.Tip) bool {
		if t.Source.Name != name {
			return false
		}
		return kind == "" || t.SourceKind == kind
	})
}

// FilterByPost returns the tips belonging to postID. A tip without a post id
// forms its own single-tip post keyed by the tip id.
func (s *TipStore) FilterByPost(postID string) []model.Tip {
	postID = strings.TrimSpace(postID)
	if postID == "" {
		return nil
	}
	return s.filter(func(t model.Tip) bool { return PostIDOf(t) == postID })
}

func PostIDOf(t model.Tip) string {
	if id := strings.TrimSpace(t.PostID); id != "" {
		return id
	}
	return t.ID
}
