package store

import (
	"testing"
)

func seedCatalog(t *testing.T) *Catalog {
	t.Helper()
	ds, err := Seed()
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return NewCatalog(ds)
}

func TestCatalog_StockData(t *testing.T) {
	c := seedCatalog(t)

	sd, ok := c.StockData("MSFT")
	if !ok {
		t.Fatal("expected MSFT")
	}
	if ids := idsOf(sd.Tips); len(ids) != 3 || ids[0] != "1" || ids[1] != "5" || ids[2] != "7" {
		t.Fatalf("unexpected MSFT tips: %v", ids)
	}
	if sd.Position == nil || sd.Quote.Price == 0 || sd.StockName == "" {
		t.Fatalf("expected position, quote and name: %+v", sd)
	}

	tsla, ok := c.StockData("TSLA")
	if !ok || tsla.Position != nil || tsla.Quote.Price != 0 {
		t.Fatalf("TSLA has no position or quote in the seed: %+v", tsla)
	}
	if _, ok := c.StockData(" "); ok {
		t.Fatal("blank symbol should not resolve")
	}
}

func TestCatalog_PostData(t *testing.T) {
	c := seedCatalog(t)

	pd, ok := c.PostData("post-tech-leaders-q4-2025")
	if !ok || len(pd.Tips) != 4 || pd.Post.Author != "Sarah Chen" {
		t.Fatalf("unexpected post: %+v", pd)
	}
	if _, ok := c.PostData("nope"); ok {
		t.Fatal("unknown post should not resolve")
	}

	// A post listed without tips still resolves.
	empty, ok := c.PostData("post-ai-hype")
	if !ok || len(empty.Tips) != 0 {
		t.Fatalf("expected tipless post, got %+v %v", empty, ok)
	}
}

func TestCatalog_AuthorData(t *testing.T) {
	c := seedCatalog(t)
	ad, ok := c.AuthorData("Sarah Chen")
	if !ok {
		t.Fatal("expected Sarah Chen")
	}
	if len(ad.Posts) != 6 || len(ad.Tips) != 5 {
		t.Fatalf("expected 6 posts and 5 tips, got %d and %d", len(ad.Posts), len(ad.Tips))
	}
	if _, ok := c.AuthorData("Nobody"); ok {
		t.Fatal("unknown author should not resolve")
	}
}

func TestCatalog_PortfolioFilter(t *testing.T) {
	c := seedCatalog(t)
	all := c.Portfolio(PortfolioAll)
	gainers := c.Portfolio(PortfolioGainers)
	losers := c.Portfolio(PortfolioLosers)
	if len(gainers.Holdings)+len(losers.Holdings) > len(all.Holdings) {
		t.Fatalf("filters overlap")
	}
	for _, h := range gainers.Holdings {
		if h.PLPercent <= 0 {
			t.Fatalf("%s is not a gainer", h.Symbol)
		}
	}
	for _, h := range losers.Holdings {
		if h.PLPercent >= 0 {
			t.Fatalf("%s is not a loser", h.Symbol)
		}
	}
	if f, ok := ParsePortfolioFilter("Gainers"); !ok || f != PortfolioGainers {
		t.Fatalf("ParsePortfolioFilter = %q %v", f, ok)
	}
	if _, ok := ParsePortfolioFilter("winners"); ok {
		t.Fatal("expected winners to be rejected")
	}
}
