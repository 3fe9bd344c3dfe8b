// Package journal holds the user's own session data: assessments, notes,
// convictions and trades. Nothing here is persisted; a Journal lives exactly as
// long as the session that owns it.
package journal

import (
	"errors"
	"strings"

	"tipdesk/internal/model"
	"tipdesk/internal/store"

	"github.com/google/uuid"
)

var (
	ErrEmptyNote         = errors.New("note content is required")
	ErrQuantityRequired  = errors.New("quantity is required")
	ErrPriceRequired     = errors.New("price is required")
	ErrInvalidNumber     = errors.New("invalid number")
	ErrInvalidAction     = errors.New("invalid trade action")
	ErrInvalidConviction = errors.New("invalid conviction")
	ErrEmptyScope        = errors.New("scope is required")
)

type ScopeKind string

const (
	ScopeTip   ScopeKind = "tip"
	ScopeStock ScopeKind = "stock"
)

// Scope identifies who owns a note list or a conviction: a tip id or a stock symbol.
type Scope struct {
	Kind ScopeKind
	Key  string
}

func TipScope(tipID string) Scope    { return Scope{Kind: ScopeTip, Key: strings.TrimSpace(tipID)} }
func StockScope(symbol string) Scope { return Scope{Kind: ScopeStock, Key: strings.TrimSpace(symbol)} }

func (s Scope) valid() bool {
	return (s.Kind == ScopeTip || s.Kind == ScopeStock) && s.Key != ""
}

func (s Scope) String() string { return string(s.Kind) + ":" + s.Key }

type Journal struct {
	Assessments *Assessments
	Notes       *Notes
	Convictions *Convictions
	Trades      *Trades
}

func New() *Journal {
	return &Journal{
		Assessments: NewAssessments(nil),
		Notes:       NewNotes(),
		Convictions: NewConvictions(),
		Trades:      NewTrades(),
	}
}

// FromDataset seeds a journal with the dataset's defaults. The dataset is copied;
// later edits never reach it.
func FromDataset(ds *store.Dataset) *Journal {
	j := New()
	if ds == nil {
		return j
	}
	j.Assessments = NewAssessments(ds.Assessments)
	for tipID, notes := range ds.TipNotes {
		j.Notes.seed(TipScope(tipID), notes)
	}
	for sym, notes := range ds.StockNotes {
		j.Notes.seed(StockScope(sym), notes)
	}
	for tipID, c := range ds.TipConvictions {
		j.Convictions.byScope[TipScope(tipID)] = c
	}
	for sym, c := range ds.StockConvictions {
		j.Convictions.byScope[StockScope(sym)] = c
	}
	for sym, trades := range ds.Trades {
		j.Trades.bySymbol[strings.TrimSpace(sym)] = append([]model.Trade(nil), trades...)
	}
	return j
}

func newID(prefix string) string {
	// 8 hex chars are plenty for a single session.
	return prefix + "-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
