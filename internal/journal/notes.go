package journal

import (
	"fmt"
	"strings"
	"time"

	"tipdesk/internal/model"
)

// NoteDateLayout matches the display dates used throughout the dataset ("Oct 15, 2025").
const NoteDateLayout = "Jan 2, 2006"

type NoteInput struct {
	Content     string
	Sentiment   model.Sentiment
	TargetPrice string
}

type Notes struct {
	byScope map[Scope][]model.Note
}

func NewNotes() *Notes {
	return &Notes{byScope: map[Scope][]model.Note{}}
}

func (n *Notes) seed(scope Scope, notes []model.Note) {
	if !scope.valid() || len(notes) == 0 {
		return
	}
	n.byScope[scope] = append([]model.Note(nil), notes...)
}

// Add prepends a note to scope's list (most recent first).
func (n *Notes) Add(scope Scope, in NoteInput, now time.Time) (model.Note, error) {
	if !scope.valid() {
		return model.Note{}, ErrEmptyScope
	}
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return model.Note{}, ErrEmptyNote
	}
	switch in.Sentiment {
	case "", model.SentimentBullish, model.SentimentBearish, model.SentimentNeutral:
	default:
		return model.Note{}, fmt.Errorf("note sentiment %q: %w", in.Sentiment, ErrInvalidConviction)
	}
	note := model.Note{
		ID:          newID("note"),
		Date:        now.Format(NoteDateLayout),
		Content:     content,
		Sentiment:   in.Sentiment,
		TargetPrice: strings.TrimSpace(in.TargetPrice),
	}
	cur := n.byScope[scope]
	next := make([]model.Note, 0, len(cur)+1)
	next = append(next, note)
	next = append(next, cur...)
	n.byScope[scope] = next
	return note, nil
}

// List returns a copy of scope's notes, newest first.
func (n *Notes) List(scope Scope) []model.Note {
	return append([]model.Note(nil), n.byScope[scope]...)
}

func (n *Notes) Count(scope Scope) int { return len(n.byScope[scope]) }
