package store

import (
	"reflect"
	"testing"

	"tipdesk/internal/model"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// sevenTips is the seed without the GOOGL recap tip.
func sevenTips(t *testing.T) []model.Tip {
	t.Helper()
	ds, err := Seed()
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	var out []model.Tip
	for _, tip := range ds.Tips {
		if tip.ID != "4b" {
			out = append(out, tip)
		}
	}
	if len(out) != 7 {
		t.Fatalf("expected 7 tips, got %d", len(out))
	}
	return out
}

func TestTipStore_FilterByStockGOOG(t *testing.T) {
	tips := sevenTips(t)
	s := NewTipStore(tips)
	before := s.IDs()

	got := s.FilterByStock("GOOG")
	if len(got) != 1 || got[0].ID != "4" {
		t.Fatalf("expected only tip 4, got %+v", got)
	}
	if again := s.FilterByStock("GOOG"); !reflect.DeepEqual(got, again) {
		t.Fatalf("filter is not idempotent")
	}
	if !reflect.DeepEqual(before, s.IDs()) {
		t.Fatalf("filter mutated store order: %v -> %v", before, s.IDs())
	}
}

func TestTipStore_Lookups(t *testing.T) {
	s := NewTipStore(sevenTips(t))
	if s.Len() != 7 {
		t.Fatalf("len %d", s.Len())
	}
	if i := s.IndexOf(" 3 "); i != 2 {
		t.Fatalf("IndexOf(3) = %d", i)
	}
	if s.IndexOf("missing") != -1 {
		t.Fatalf("expected -1 for a missing id")
	}
	if _, ok := s.At(7); ok {
		t.Fatalf("At past the end should fail")
	}
	tip, ok := s.ByID("3")
	if !ok || tip.Symbol != "TSLA" {
		t.Fatalf("ByID(3) = %+v %v", tip, ok)
	}

	all := s.All()
	all[0].Symbol = "XXXX"
	if first, _ := s.At(0); first.Symbol != "MSFT" {
		t.Fatalf("All must return a copy")
	}
}

func TestTipStore_FilterByAuthorAndPost(t *testing.T) {
	s := NewTipStore(sevenTips(t))

	sarah := s.FilterByAuthor("Sarah Chen", "")
	if ids := idsOf(sarah); !reflect.DeepEqual(ids, []string{"1", "2", "3", "4"}) {
		t.Fatalf("unexpected Sarah tips: %v", ids)
	}
	if got := s.FilterByAuthor("Michael Rodriguez", model.SourceVideo); len(got) != 0 {
		t.Fatalf("expected no videos for Michael, got %v", idsOf(got))
	}
	if got := s.FilterByAuthor("Michael Rodriguez", model.SourceArticle); len(got) != 1 {
		t.Fatalf("expected one article for Michael, got %v", idsOf(got))
	}

	if ids := idsOf(s.FilterByPost("post-tech-leaders-q4-2025")); !reflect.DeepEqual(ids, []string{"1", "2", "3", "4"}) {
		t.Fatalf("unexpected post tips: %v", ids)
	}
	if s.FilterByPost("") != nil {
		t.Fatalf("empty post id must match nothing")
	}

	loose := NewTipStore([]model.Tip{{ID: "x"}, {ID: "y", PostID: "p"}})
	if ids := idsOf(loose.FilterByPost("x")); !reflect.DeepEqual(ids, []string{"x"}) {
		t.Fatalf("tip without post id should form its own post, got %v", ids)
	}
}

// Filtering returns exactly the matching tips in store order, never touches the
// store, and gives the same answer twice.
func TestProperty_FilterByStock(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	symbols := []string{"MSFT", "AAPL", "GOOG", "GOOGL", "TSLA"}

	properties.Property("filter is an order-preserving, idempotent subset", prop.ForAll(
		func(picks []int, query int) bool {
			tips := make([]model.Tip, len(picks))
			for i, p := range picks {
				tips[i] = model.Tip{ID: string(rune('A' + i)), Symbol: symbols[p]}
			}
			s := NewTipStore(tips)
			before := s.IDs()
			sym := symbols[query]

			got := s.FilterByStock(sym)
			var want []string
			for _, tip := range tips {
				if tip.Symbol == sym {
					want = append(want, tip.ID)
				}
			}
			if !reflect.DeepEqual(idsOf(got), want) {
				return false
			}
			if !reflect.DeepEqual(idsOf(s.FilterByStock(sym)), want) {
				return false
			}
			return reflect.DeepEqual(before, s.IDs())
		},
		gen.SliceOf(gen.IntRange(0, len(symbols)-1)).SuchThat(func(v []int) bool { return len(v) <= 26 }),
		gen.IntRange(0, len(symbols)-1),
	))

	properties.TestingRun(t)
}

func idsOf(tips []model.Tip) []string {
	var out []string
	for _, t := range tips {
		out = append(out, t.ID)
	}
	return out
}
