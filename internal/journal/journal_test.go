package journal

import (
	"errors"
	"testing"
	"time"

	"tipdesk/internal/model"
	"tipdesk/internal/store"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
)

var today = time.Date(2026, time.October, 15, 14, 0, 0, 0, time.UTC)

func seededJournal(t *testing.T) *Journal {
	t.Helper()
	ds, err := store.Seed()
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return FromDataset(ds)
}

func TestAssessments_Toggle(t *testing.T) {
	a := NewAssessments(map[string]model.Assessment{"1": model.AssessmentAgree, "7": model.AssessmentDisagree})

	if got := a.Toggle("1", model.AssessmentAgree); got != model.AssessmentUnset {
		t.Fatalf("same value should clear, got %q", got)
	}
	if got := a.Toggle("1", model.AssessmentNeutral); got != model.AssessmentNeutral {
		t.Fatalf("unset -> neutral, got %q", got)
	}
	if got := a.Toggle("1", model.AssessmentDisagree); got != model.AssessmentDisagree {
		t.Fatalf("neutral -> disagree, got %q", got)
	}
	if got := a.Get("7"); got != model.AssessmentDisagree {
		t.Fatalf("other entries must be untouched, got %q", got)
	}
}

// Toggling v on a tip yields unset when v was already set, else v. No other tip moves.
func TestProperty_AssessmentToggleTriState(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	values := []model.Assessment{model.AssessmentAgree, model.AssessmentNeutral, model.AssessmentDisagree, model.AssessmentUnset}
	ids := []string{"1", "2", "3", "4", "5", "6", "7"}

	properties.Property("toggle is tri-state and local", prop.ForAll(
		func(initial []int, tipIdx, valIdx int) bool {
			seed := map[string]model.Assessment{}
			for i, v := range initial {
				if i < len(ids) {
					seed[ids[i]] = values[v]
				}
			}
			a := NewAssessments(seed)
			before := a.Snapshot()
			tip, v := ids[tipIdx], values[valIdx]

			got := a.Toggle(tip, v)

			want := v
			if v == model.AssessmentUnset || before[tip] == v {
				want = model.AssessmentUnset
			}
			if got != want || a.Get(tip) != want {
				return false
			}
			for _, id := range ids {
				if id != tip && a.Get(id) != before[id] {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(7, gen.IntRange(0, 3)),
		gen.IntRange(0, len(ids)-1),
		gen.IntRange(0, len(values)-1),
	))

	properties.TestingRun(t)
}

func TestAssessments_Summary(t *testing.T) {
	j := seededJournal(t)
	ds, _ := store.Seed()
	got := j.Assessments.Summary(ds.Tips)
	want := AssessmentSummary{Agree: 2, Neutral: 1, Disagree: 1}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestNotes_AddPrependsWithToday(t *testing.T) {
	j := seededJournal(t)
	before1 := j.Notes.List(TipScope("1"))
	before2 := j.Notes.Count(TipScope("2"))

	n, err := j.Notes.Add(TipScope("2"), NoteInput{Content: "test note"}, today)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	notes := j.Notes.List(TipScope("2"))
	if len(notes) != before2+1 {
		t.Fatalf("expected %d notes, got %d", before2+1, len(notes))
	}
	if notes[0].ID != n.ID || notes[0].Content != "test note" {
		t.Fatalf("expected new note first, got %+v", notes[0])
	}
	if notes[0].Date != "Oct 15, 2026" {
		t.Fatalf("expected today's date, got %q", notes[0].Date)
	}

	after1 := j.Notes.List(TipScope("1"))
	if len(after1) != len(before1) {
		t.Fatalf("tip 1 notes changed: %d -> %d", len(before1), len(after1))
	}
	for i := range after1 {
		if after1[i] != before1[i] {
			t.Fatalf("tip 1 note %d changed", i)
		}
	}
}

func TestNotes_Validation(t *testing.T) {
	n := NewNotes()
	if _, err := n.Add(TipScope("1"), NoteInput{Content: "   "}, today); !errors.Is(err, ErrEmptyNote) {
		t.Fatalf("expected ErrEmptyNote, got %v", err)
	}
	if _, err := n.Add(TipScope(""), NoteInput{Content: "x"}, today); !errors.Is(err, ErrEmptyScope) {
		t.Fatalf("expected ErrEmptyScope, got %v", err)
	}
	if _, err := n.Add(StockScope("MSFT"), NoteInput{Content: "x", Sentiment: "sideways"}, today); !errors.Is(err, ErrInvalidConviction) {
		t.Fatalf("expected ErrInvalidConviction, got %v", err)
	}
	if n.Count(StockScope("MSFT")) != 0 {
		t.Fatalf("rejected notes must not be stored")
	}
}

func TestNotes_StockAndTipScopesAreSeparate(t *testing.T) {
	n := NewNotes()
	if _, err := n.Add(StockScope("MSFT"), NoteInput{Content: "stock"}, today); err != nil {
		t.Fatal(err)
	}
	if n.Count(TipScope("MSFT")) != 0 {
		t.Fatalf("a tip scope must not see stock notes")
	}
}

func TestConvictions_SaveAndDefault(t *testing.T) {
	c := NewConvictions()
	def := c.GetOrDefault(StockScope("AAPL"), model.SentimentBearish)
	if def.Sentiment != model.SentimentBearish || def.Level != model.ConvictionMedium {
		t.Fatalf("unexpected default: %+v", def)
	}
	if _, ok := c.Get(StockScope("AAPL")); ok {
		t.Fatalf("default must not be stored")
	}

	err := c.Save(StockScope("AAPL"), model.Conviction{Sentiment: model.SentimentBullish, Level: model.ConvictionHigh, TargetPrice: " 250 "})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok := c.Get(StockScope("AAPL"))
	if !ok || got.Level != model.ConvictionHigh || got.TargetPrice != "250" {
		t.Fatalf("unexpected conviction: %+v", got)
	}

	if err := c.Save(StockScope("AAPL"), model.Conviction{Sentiment: model.SentimentBullish, Level: "extreme"}); !errors.Is(err, ErrInvalidConviction) {
		t.Fatalf("expected ErrInvalidConviction, got %v", err)
	}
}

func TestTrades_LogAndDelete(t *testing.T) {
	j := seededJournal(t)
	msftBefore := j.Trades.List("MSFT")

	tr, err := j.Trades.Log("AAPL", TradeInput{Action: model.TradeSell, Quantity: "5", Price: "150.00"}, today)
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	list := j.Trades.List("AAPL")
	if len(list) != 1 || list[0].ID != tr.ID {
		t.Fatalf("expected new trade at index 0, got %+v", list)
	}
	if list[0].Action != model.TradeSell || !list[0].Quantity.Equal(decimal.NewFromInt(5)) || !list[0].Price.Equal(decimal.RequireFromString("150")) {
		t.Fatalf("unexpected trade: %+v", list[0])
	}
	if list[0].Date != "2026-10-15" || !list[0].Fees.IsZero() {
		t.Fatalf("expected today's date and zero fees, got %q %s", list[0].Date, list[0].Fees)
	}

	second, err := j.Trades.Log("AAPL", TradeInput{Quantity: "1", Price: "$1,000.50", Date: "2026-10-01"}, today)
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if second.Action != model.TradeBuy || !second.Price.Equal(decimal.RequireFromString("1000.50")) {
		t.Fatalf("unexpected defaults: %+v", second)
	}

	if !j.Trades.Delete("AAPL", tr.ID) {
		t.Fatalf("expected delete to succeed")
	}
	list = j.Trades.List("AAPL")
	if len(list) != 1 || list[0].ID != second.ID {
		t.Fatalf("expected only the other trade left, got %+v", list)
	}
	if j.Trades.Delete("AAPL", tr.ID) {
		t.Fatalf("expected second delete to fail")
	}
	if len(j.Trades.List("MSFT")) != len(msftBefore) {
		t.Fatalf("MSFT trades changed")
	}
}

func TestTrades_Validation(t *testing.T) {
	tr := NewTrades()
	cases := []struct {
		name string
		in   TradeInput
		want error
	}{
		{"missing quantity", TradeInput{Price: "1"}, ErrQuantityRequired},
		{"missing price", TradeInput{Quantity: "1"}, ErrPriceRequired},
		{"bad number", TradeInput{Quantity: "ten", Price: "1"}, ErrInvalidNumber},
		{"negative", TradeInput{Quantity: "-1", Price: "1"}, ErrInvalidNumber},
		{"bad date", TradeInput{Quantity: "1", Price: "1", Date: "15/10/2026"}, ErrInvalidNumber},
		{"bad action", TradeInput{Quantity: "1", Price: "1", Action: "Short"}, ErrInvalidAction},
	}
	for _, tc := range cases {
		if _, err := tr.Log("AAPL", tc.in, today); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
	if len(tr.List("AAPL")) != 0 {
		t.Fatalf("rejected trades must not be stored")
	}
}

func TestParseTradeAction(t *testing.T) {
	if a, ok := ParseTradeAction(" trim "); !ok || a != model.TradeTrim {
		t.Fatalf("got %q %v", a, ok)
	}
	if _, ok := ParseTradeAction("short"); ok {
		t.Fatalf("expected short to be rejected")
	}
}

func TestFromDataset_CopiesSeed(t *testing.T) {
	ds, err := store.Seed()
	if err != nil {
		t.Fatal(err)
	}
	j := FromDataset(ds)
	if _, err := j.Notes.Add(TipScope("1"), NoteInput{Content: "mine"}, today); err != nil {
		t.Fatal(err)
	}
	j.Assessments.Toggle("1", model.AssessmentDisagree)
	if len(ds.TipNotes["1"]) != 2 || ds.Assessments["1"] != model.AssessmentAgree {
		t.Fatalf("journal edits leaked into the dataset")
	}
	if c, ok := j.Convictions.Get(StockScope("MSFT")); !ok || c.Level == "" {
		t.Fatalf("expected seeded MSFT conviction, got %+v %v", c, ok)
	}
}
