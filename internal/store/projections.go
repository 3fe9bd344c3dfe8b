package store

import (
	"strings"

	"tipdesk/internal/model"
)

type StockData struct {
	Symbol    string          `json:"symbol"`
	StockName string          `json:"stockName"`
	Quote     model.Quote     `json:"quote"`
	Position  *model.Position `json:"position,omitempty"`
	Tips      []model.Tip     `json:"tips"`
}

type PostData struct {
	Post model.Post  `json:"post"`
	Tips []model.Tip `json:"tips"`
}

type AuthorData struct {
	Author model.Author `json:"author"`
	Posts  []model.Post `json:"posts"`
	Tips   []model.Tip  `json:"tips"`
}

type PortfolioFilter string

const (
	PortfolioAll     PortfolioFilter = "all"
	PortfolioGainers PortfolioFilter = "gainers"
	PortfolioLosers  PortfolioFilter = "losers"
)

func ParsePortfolioFilter(s string) (PortfolioFilter, bool) {
	switch PortfolioFilter(strings.ToLower(strings.TrimSpace(s))) {
	case "", PortfolioAll:
		return PortfolioAll, true
	case PortfolioGainers:
		return PortfolioGainers, true
	case PortfolioLosers:
		return PortfolioLosers, true
	}
	return PortfolioAll, false
}

type PortfolioData struct {
	Summary  model.PortfolioSummary `json:"summary"`
	Filter   PortfolioFilter        `json:"filter"`
	Holdings []model.Holding        `json:"holdings"`
}

// Catalog answers the read-only lookups the views need on top of TipStore.
type Catalog struct {
	ds   *Dataset
	tips *TipStore
}

func NewCatalog(ds *Dataset) *Catalog {
	if ds == nil {
		ds = &Dataset{}
	}
	return &Catalog{ds: ds, tips: ds.TipStore()}
}

func (c *Catalog) Tips() *TipStore { return c.tips }

func (c *Catalog) Dataset() *Dataset { return c.ds }

// StockData returns (nil, false) only for an empty symbol; an unknown symbol
// still yields a projection with no tips and a zero quote.
func (c *Catalog) StockData(symbol string) (*StockData, bool) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, false
	}
	tips := c.tips.FilterByStock(symbol)
	out := &StockData{
		Symbol: symbol,
		Quote:  c.ds.Quotes[symbol],
		Tips:   tips,
	}
	if len(tips) > 0 {
		out.StockName = tips[0].StockName
	} else {
		for _, h := range c.ds.Holdings {
			if h.Symbol == symbol {
				out.StockName = h.Name
				break
			}
		}
	}
	if p, ok := c.ds.Positions[symbol]; ok {
		pp := p
		out.Position = &pp
	}
	return out, true
}

func (c *Catalog) Post(postID string) (model.Post, bool) {
	postID = strings.TrimSpace(postID)
	for _, p := range c.ds.Posts {
		if p.ID == postID {
			return p, true
		}
	}
	return model.Post{}, false
}

// PostData groups tips by their post id. A tip whose post is not described in
// the dataset is shown as a post synthesized from the tip's own source.
func (c *Catalog) PostData(postID string) (*PostData, bool) {
	postID = strings.TrimSpace(postID)
	if postID == "" {
		return nil, false
	}
	tips := c.tips.FilterByPost(postID)
	post, ok := c.Post(postID)
	if !ok {
		if len(tips) == 0 {
			return nil, false
		}
		post = synthesizePost(postID, tips[0])
	}
	return &PostData{Post: post, Tips: tips}, true
}

func synthesizePost(postID string, t model.Tip) model.Post {
	p := model.Post{
		ID:      postID,
		Kind:    t.SourceKind,
		Quarter: t.Period,
		Author:  t.Source.Name,
		Title:   t.Title,
	}
	if t.Article != nil {
		p.Title = t.Article.Title
		p.Thumbnail = t.Article.Thumbnail
	} else {
		p.Thumbnail = t.VideoThumbnail
	}
	return p
}

func (c *Catalog) AuthorData(name string) (*AuthorData, bool) {
	name = strings.TrimSpace(name)
	tips := c.tips.FilterByAuthor(name, "")
	var author model.Author
	found := false
	for _, a := range c.ds.Authors {
		if a.Name == name {
			author = a
			found = true
			break
		}
	}
	if !found {
		if len(tips) == 0 {
			return nil, false
		}
		author = model.Author{Name: tips[0].Source.Name, Avatar: tips[0].Source.Avatar}
	}

	out := &AuthorData{Author: author, Tips: tips}
	seen := map[string]bool{}
	for _, p := range c.ds.Posts {
		if p.Author == name {
			out.Posts = append(out.Posts, p)
			seen[p.ID] = true
		}
	}
	// Tips whose post isn't described still show up as single-tip posts.
	for _, t := range tips {
		id := PostIDOf(t)
		if seen[id] {
			continue
		}
		if _, ok := c.Post(id); ok {
			continue
		}
		seen[id] = true
		out.Posts = append(out.Posts, synthesizePost(id, t))
	}
	return out, true
}

func (c *Catalog) Portfolio(filter PortfolioFilter) PortfolioData {
	out := PortfolioData{Summary: c.ds.Portfolio, Filter: filter}
	for _, h := range c.ds.Holdings {
		switch filter {
		case PortfolioGainers:
			if h.PLPercent <= 0 {
				continue
			}
		case PortfolioLosers:
			if h.PLPercent >= 0 {
				continue
			}
		}
		out.Holdings = append(out.Holdings, h)
	}
	return out
}
