package model

import "github.com/shopspring/decimal"

type Sentiment string

const (
	SentimentBullish Sentiment = "bullish"
	SentimentBearish Sentiment = "bearish"
	// Neutral is only valid on notes and convictions; tips are always bullish or bearish.
	SentimentNeutral Sentiment = "neutral"
)

type SourceKind string

const (
	SourceVideo   SourceKind = "video"
	SourceArticle SourceKind = "article"
)

// Assessment is the user's tri-state reaction to a tip. The zero value means unset.
type Assessment string

const (
	AssessmentUnset    Assessment = ""
	AssessmentAgree    Assessment = "agree"
	AssessmentNeutral  Assessment = "neutral"
	AssessmentDisagree Assessment = "disagree"
)

func ParseAssessment(s string) (Assessment, bool) {
	switch Assessment(s) {
	case AssessmentUnset, AssessmentAgree, AssessmentNeutral, AssessmentDisagree:
		return Assessment(s), true
	}
	if s == "null" || s == "unset" {
		return AssessmentUnset, true
	}
	return AssessmentUnset, false
}

type Metric struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

type MetricRow struct {
	Metric string `json:"metric" yaml:"metric"`
	Value  string `json:"value" yaml:"value"`
	Change string `json:"change" yaml:"change"`
}

type Source struct {
	Name   string `json:"name" yaml:"name"`
	Avatar string `json:"avatar,omitempty" yaml:"avatar,omitempty"`
	URL    string `json:"url,omitempty" yaml:"url,omitempty"`
}

type Article struct {
	Title     string `json:"title" yaml:"title"`
	Source    string `json:"source" yaml:"source"`
	Thumbnail string `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`
	URL       string `json:"url,omitempty" yaml:"url,omitempty"`
}

type Tip struct {
	ID        string    `json:"id" yaml:"id"`
	Period    string    `json:"period" yaml:"period"`
	Sentiment Sentiment `json:"sentiment" yaml:"sentiment"`
	Symbol    string    `json:"symbol" yaml:"symbol"`
	StockName string    `json:"stockName" yaml:"stockName"`
	Metrics   []Metric  `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	Title     string    `json:"title" yaml:"title"`

	SourceKind     SourceKind `json:"sourceKind" yaml:"sourceKind"`
	Source         Source     `json:"source" yaml:"source"`
	VideoThumbnail string     `json:"videoThumbnail,omitempty" yaml:"videoThumbnail,omitempty"`
	Article        *Article   `json:"article,omitempty" yaml:"article,omitempty"`
	// PostID groups tips that came from the same video or article.
	PostID string `json:"postId,omitempty" yaml:"postId,omitempty"`

	Thesis     string      `json:"thesis" yaml:"thesis"`
	Evidence   string      `json:"evidence" yaml:"evidence"`
	MetricRows []MetricRow `json:"metricRows,omitempty" yaml:"metricRows,omitempty"`
}

type Note struct {
	ID          string    `json:"id" yaml:"id"`
	Date        string    `json:"date" yaml:"date"`
	Content     string    `json:"content" yaml:"content"`
	Sentiment   Sentiment `json:"sentiment,omitempty" yaml:"sentiment,omitempty"`
	TargetPrice string    `json:"targetPrice,omitempty" yaml:"targetPrice,omitempty"`
}

type ConvictionLevel string

const (
	ConvictionHigh   ConvictionLevel = "high"
	ConvictionMedium ConvictionLevel = "medium"
	ConvictionLow    ConvictionLevel = "low"
)

type Conviction struct {
	Sentiment   Sentiment       `json:"sentiment" yaml:"sentiment"`
	Level       ConvictionLevel `json:"level" yaml:"level"`
	TargetPrice string          `json:"targetPrice,omitempty" yaml:"targetPrice,omitempty"`
	Rationale   string          `json:"rationale,omitempty" yaml:"rationale,omitempty"`
}

type TradeAction string

const (
	TradeBuy  TradeAction = "Buy"
	TradeSell TradeAction = "Sell"
	TradeAdd  TradeAction = "Add"
	TradeTrim TradeAction = "Trim"
)

var TradeActions = []TradeAction{TradeBuy, TradeSell, TradeAdd, TradeTrim}

type Trade struct {
	ID       string          `json:"id" yaml:"id"`
	Date     string          `json:"date" yaml:"date"` // YYYY-MM-DD
	Action   TradeAction     `json:"action" yaml:"action"`
	Quantity decimal.Decimal `json:"quantity" yaml:"quantity"`
	Price    decimal.Decimal `json:"price" yaml:"price"`
	Fees     decimal.Decimal `json:"fees" yaml:"fees"`
	Account  string          `json:"account,omitempty" yaml:"account,omitempty"`
	Reason   string          `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Position is an externally supplied snapshot; nothing in the session recomputes it.
type Position struct {
	OpenQty      float64 `json:"openQty" yaml:"openQty"`
	AvgCost      float64 `json:"avgCost" yaml:"avgCost"`
	Valuation    float64 `json:"valuation" yaml:"valuation"`
	UnrealizedPL float64 `json:"unrealizedPL" yaml:"unrealizedPL"`
	RealizedPL   float64 `json:"realizedPL" yaml:"realizedPL"`
	WinRate      float64 `json:"winRate" yaml:"winRate"`
}

type Quote struct {
	Price         float64 `json:"price" yaml:"price"`
	Change        float64 `json:"change" yaml:"change"`
	ChangePercent float64 `json:"changePercent" yaml:"changePercent"`
}

type Holding struct {
	ID           string  `json:"id" yaml:"id"`
	Symbol       string  `json:"symbol" yaml:"symbol"`
	Name         string  `json:"name" yaml:"name"`
	AddedDate    string  `json:"addedDate" yaml:"addedDate"`
	Value        float64 `json:"value" yaml:"value"`
	PLPercent    float64 `json:"plPercent" yaml:"plPercent"`
	Trades       int     `json:"trades" yaml:"trades"`
	ReviewPrompt bool    `json:"reviewPrompt,omitempty" yaml:"reviewPrompt,omitempty"`
}

type PortfolioSummary struct {
	TotalValue    float64 `json:"totalValue" yaml:"totalValue"`
	TotalPL       float64 `json:"totalPL" yaml:"totalPL"`
	Holdings      int     `json:"holdings" yaml:"holdings"`
	OpenPositions int     `json:"openPositions" yaml:"openPositions"`
}

type Post struct {
	ID        string     `json:"id" yaml:"id"`
	Kind      SourceKind `json:"kind" yaml:"kind"`
	Title     string     `json:"title" yaml:"title"`
	Date      string     `json:"date" yaml:"date"`
	Quarter   string     `json:"quarter" yaml:"quarter"`
	Author    string     `json:"author" yaml:"author"`
	Thumbnail string     `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`
	Summary   string     `json:"summary,omitempty" yaml:"summary,omitempty"`
}

type Author struct {
	Name   string `json:"name" yaml:"name"`
	Avatar string `json:"avatar,omitempty" yaml:"avatar,omitempty"`
	Bio    string `json:"bio,omitempty" yaml:"bio,omitempty"`
}
