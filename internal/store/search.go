package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// SearchSegment picks what the header search looks through.
type SearchSegment string

const (
	SegmentStock  SearchSegment = "stock"
	SegmentSector SearchSegment = "sector"
)

// MaxSuggestions caps how many matches a search returns.
const MaxSuggestions = 8

var ErrUnknownSegment = errors.New("unknown search segment")

func ParseSearchSegment(s string) (SearchSegment, error) {
	switch SearchSegment(strings.ToLower(strings.TrimSpace(s))) {
	case "", SegmentStock:
		return SegmentStock, nil
	case SegmentSector:
		return SegmentSector, nil
	}
	return "", fmt.Errorf("%w: %q (want stock or sector)", ErrUnknownSegment, s)
}

// Label is the segment name as shown in the header ("Stock", "Sector").
func (s SearchSegment) Label() string {
	if s == SegmentSector {
		return "Sector"
	}
	return "Stock"
}

// Symbols lists every symbol the dataset knows about, sorted.
func (c *Catalog) Symbols() []string {
	seen := map[string]bool{}
	add := func(sym string) {
		if sym = strings.TrimSpace(sym); sym != "" {
			seen[sym] = true
		}
	}
	for _, t := range c.ds.Tips {
		add(t.Symbol)
	}
	for sym := range c.ds.Positions {
		add(sym)
	}
	for sym := range c.ds.Quotes {
		add(sym)
	}
	for _, h := range c.ds.Holdings {
		add(h.Symbol)
	}
	out := make([]string, 0, len(seen))
	for sym := range seen {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}

func (c *Catalog) Sectors() []string {
	return append([]string(nil), c.ds.Sectors...)
}

// Suggestions returns up to MaxSuggestions options of the segment containing
// query, case-insensitively, in option order. An empty query matches all.
func (c *Catalog) Suggestions(seg SearchSegment, query string) []string {
	options := c.Symbols()
	if seg == SegmentSector {
		options = c.Sectors()
	}
	return filterSuggestions(options, query, MaxSuggestions)
}

func filterSuggestions(options []string, query string, limit int) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]string, 0, limit)
	for _, o := range options {
		if len(out) == limit {
			break
		}
		if q == "" || strings.Contains(strings.ToLower(o), q) {
			out = append(out, o)
		}
	}
	return out
}
