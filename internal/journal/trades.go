package journal

import (
	"fmt"
	"strings"
	"time"

	"tipdesk/internal/model"

	"github.com/shopspring/decimal"
)

// TradeInput carries the raw form values; numbers are parsed here.
type TradeInput struct {
	Date     string // YYYY-MM-DD; empty means today
	Action   model.TradeAction
	Quantity string
	Price    string
	Fees     string
	Account  string
	Reason   string
}

type Trades struct {
	bySymbol map[string][]model.Trade
}

func NewTrades() *Trades {
	return &Trades{bySymbol: map[string][]model.Trade{}}
}

// Log validates in and prepends the resulting trade to symbol's list.
func (t *Trades) Log(symbol string, in TradeInput, now time.Time) (model.Trade, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return model.Trade{}, ErrEmptyScope
	}
	action := in.Action
	if action == "" {
		action = model.TradeBuy
	}
	if !validAction(action) {
		return model.Trade{}, fmt.Errorf("%q: %w", action, ErrInvalidAction)
	}
	if strings.TrimSpace(in.Quantity) == "" {
		return model.Trade{}, ErrQuantityRequired
	}
	if strings.TrimSpace(in.Price) == "" {
		return model.Trade{}, ErrPriceRequired
	}
	qty, err := parseDecimal("quantity", in.Quantity)
	if err != nil {
		return model.Trade{}, err
	}
	price, err := parseDecimal("price", in.Price)
	if err != nil {
		return model.Trade{}, err
	}
	fees := decimal.Zero
	if strings.TrimSpace(in.Fees) != "" {
		fees, err = parseDecimal("fees", in.Fees)
		if err != nil {
			return model.Trade{}, err
		}
	}
	date := strings.TrimSpace(in.Date)
	if date == "" {
		date = now.Format(time.DateOnly)
	} else if _, err := time.Parse(time.DateOnly, date); err != nil {
		return model.Trade{}, fmt.Errorf("date %q: %w", date, ErrInvalidNumber)
	}

	tr := model.Trade{
		ID:       newID("trade"),
		Date:     date,
		Action:   action,
		Quantity: qty,
		Price:    price,
		Fees:     fees,
		Account:  strings.TrimSpace(in.Account),
		Reason:   strings.TrimSpace(in.Reason),
	}
	cur := t.bySymbol[symbol]
	next := make([]model.Trade, 0, len(cur)+1)
	next = append(next, tr)
	next = append(next, cur...)
	t.bySymbol[symbol] = next
	return tr, nil
}

// Delete removes exactly the trade with id from symbol's list.
func (t *Trades) Delete(symbol, id string) bool {
	symbol = strings.TrimSpace(symbol)
	cur := t.bySymbol[symbol]
	for i, tr := range cur {
		if tr.ID != id {
			continue
		}
		next := make([]model.Trade, 0, len(cur)-1)
		next = append(next, cur[:i]...)
		next = append(next, cur[i+1:]...)
		t.bySymbol[symbol] = next
		return true
	}
	return false
}

func (t *Trades) List(symbol string) []model.Trade {
	return append([]model.Trade(nil), t.bySymbol[strings.TrimSpace(symbol)]...)
}

func validAction(a model.TradeAction) bool {
	for _, x := range model.TradeActions {
		if x == a {
			return true
		}
	}
	return false
}

func ParseTradeAction(s string) (model.TradeAction, bool) {
	for _, x := range model.TradeActions {
		if strings.EqualFold(string(x), strings.TrimSpace(s)) {
			return x, true
		}
	}
	return "", false
}

func parseDecimal(field, raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "$")
	raw = strings.ReplaceAll(raw, ",", "")
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%s %q: %w", field, raw, ErrInvalidNumber)
	}
	if d.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%s %q must not be negative: %w", field, raw, ErrInvalidNumber)
	}
	return d, nil
}
