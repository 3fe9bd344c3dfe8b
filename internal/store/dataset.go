package store

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tipdesk/internal/model"

	"gopkg.in/yaml.v3"
)

// Dataset is everything the session starts from. It is read once at startup;
// the session never writes back to it.
type Dataset struct {
	Tips        []model.Tip                 `json:"tips" yaml:"tips"`
	Posts       []model.Post                `json:"posts,omitempty" yaml:"posts,omitempty"`
	Authors     []model.Author              `json:"authors,omitempty" yaml:"authors,omitempty"`
	Positions   map[string]model.Position   `json:"positions,omitempty" yaml:"positions,omitempty"`
	Quotes      map[string]model.Quote      `json:"quotes,omitempty" yaml:"quotes,omitempty"`
	Assessments map[string]model.Assessment `json:"assessments,omitempty" yaml:"assessments,omitempty"`
	// TipNotes and StockNotes are keyed by tip id and stock symbol respectively.
	TipNotes         map[string][]model.Note     `json:"tipNotes,omitempty" yaml:"tipNotes,omitempty"`
	StockNotes       map[string][]model.Note     `json:"stockNotes,omitempty" yaml:"stockNotes,omitempty"`
	TipConvictions   map[string]model.Conviction `json:"tipConvictions,omitempty" yaml:"tipConvictions,omitempty"`
	StockConvictions map[string]model.Conviction `json:"stockConvictions,omitempty" yaml:"stockConvictions,omitempty"`
	Trades           map[string][]model.Trade    `json:"trades,omitempty" yaml:"trades,omitempty"`
	Holdings         []model.Holding             `json:"holdings,omitempty" yaml:"holdings,omitempty"`
	Portfolio        model.PortfolioSummary      `json:"portfolio" yaml:"portfolio"`
	// Sectors are the names offered by the header search's sector segment.
	Sectors []string `json:"sectors,omitempty" yaml:"sectors,omitempty"`
}

var (
	ErrDuplicateTipID   = errors.New("duplicate tip id")
	ErrMissingTipID     = errors.New("tip id is required")
	ErrSourceMismatch   = errors.New("tip media does not match its source kind")
	ErrUnknownFormat    = errors.New("unknown dataset format")
	ErrInvalidSentiment = errors.New("invalid tip sentiment")
)

//go:embed seed.yaml
var seedYAML []byte

// Seed returns the built-in dataset.
func Seed() (*Dataset, error) {
	ds, err := decodeYAML(seedYAML)
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	return ds, nil
}

// LoadDataset reads a dataset file. An empty path loads the built-in seed.
// Format is picked by extension: .yaml/.yml, .json, or .db/.sqlite/.sqlite3.
func LoadDataset(ctx context.Context, path string) (*Dataset, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Seed()
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return LoadSQLite(ctx, path)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var ds *Dataset
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		ds, err = decodeYAML(b)
	case ".json":
		ds, err = decodeJSON(b)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return ds, nil
}

func decodeYAML(b []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(b, &ds); err != nil {
		return nil, err
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

func decodeJSON(b []byte) (*Dataset, error) {
	var ds Dataset
	if err := json.Unmarshal(b, &ds); err != nil {
		return nil, err
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Validate checks the invariants the views rely on.
func (ds *Dataset) Validate() error {
	seen := map[string]bool{}
	for i, t := range ds.Tips {
		id := strings.TrimSpace(t.ID)
		if id == "" {
			return fmt.Errorf("tip #%d: %w", i, ErrMissingTipID)
		}
		if seen[id] {
			return fmt.Errorf("tip %s: %w", id, ErrDuplicateTipID)
		}
		seen[id] = true

		if t.Sentiment != model.SentimentBullish && t.Sentiment != model.SentimentBearish {
			return fmt.Errorf("tip %s: %w: %q", id, ErrInvalidSentiment, t.Sentiment)
		}

		hasVideo := strings.TrimSpace(t.VideoThumbnail) != ""
		hasArticle := t.Article != nil
		switch t.SourceKind {
		case model.SourceVideo:
			if !hasVideo || hasArticle {
				return fmt.Errorf("tip %s: %w", id, ErrSourceMismatch)
			}
		case model.SourceArticle:
			if !hasArticle || hasVideo {
				return fmt.Errorf("tip %s: %w", id, ErrSourceMismatch)
			}
		default:
			return fmt.Errorf("tip %s: %w: unknown source kind %q", id, ErrSourceMismatch, t.SourceKind)
		}
	}
	for tipID, a := range ds.Assessments {
		if _, ok := model.ParseAssessment(string(a)); !ok {
			return fmt.Errorf("assessment for tip %s: invalid value %q", tipID, a)
		}
	}
	return nil
}

// TipStore returns a store over the dataset's tips in dataset order.
func (ds *Dataset) TipStore() *TipStore {
	if ds == nil {
		return NewTipStore(nil)
	}
	return NewTipStore(ds.Tips)
}

// WriteYAML and WriteJSON are used by `dataset export`.
func (ds *Dataset) WriteYAML(path string) error {
	b, err := yaml.Marshal(ds)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, b)
}

func (ds *Dataset) WriteJSON(path string) error {
	b, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(path, b)
}

// writeFileAtomic writes through a uniquely named temp file in the target
// directory; the temp file is removed whether or not the rename succeeds.
func writeFileAtomic(path string, b []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, 0o644)
	return os.Rename(tmp, path)
}
