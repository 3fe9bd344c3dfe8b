package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"tipdesk/internal/model"

	_ "modernc.org/sqlite"
)

// SQLite dataset layout: one row per entity, entity body stored as JSON, with a
// seq column to keep dataset order stable across export/load.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS meta (k TEXT PRIMARY KEY, v TEXT NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS tips (id TEXT PRIMARY KEY, seq INTEGER NOT NULL, symbol TEXT NOT NULL, author TEXT NOT NULL, json TEXT NOT NULL)`,
	`CREATE INDEX IF NOT EXISTS tips_symbol ON tips(symbol)`,
	`CREATE TABLE IF NOT EXISTS posts (id TEXT PRIMARY KEY, seq INTEGER NOT NULL, json TEXT NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS authors (name TEXT PRIMARY KEY, seq INTEGER NOT NULL, json TEXT NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS holdings (id TEXT PRIMARY KEY, seq INTEGER NOT NULL, json TEXT NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS positions (symbol TEXT PRIMARY KEY, json TEXT NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS quotes (symbol TEXT PRIMARY KEY, json TEXT NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS assessments (tip_id TEXT PRIMARY KEY, value TEXT NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS notes (scope TEXT NOT NULL, scope_key TEXT NOT NULL, seq INTEGER NOT NULL, json TEXT NOT NULL, PRIMARY KEY(scope, scope_key, seq))`,
	`CREATE TABLE IF NOT EXISTS convictions (scope TEXT NOT NULL, scope_key TEXT NOT NULL, json TEXT NOT NULL, PRIMARY KEY(scope, scope_key))`,
	`CREATE TABLE IF NOT EXISTS trades (symbol TEXT NOT NULL, seq INTEGER NOT NULL, json TEXT NOT NULL, PRIMARY KEY(symbol, seq))`,
}

const (
	noteScopeTip   = "tip"
	noteScopeStock = "stock"
)

func openSQLite(ctx context.Context, path string) (*sql.DB, error) {
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000;"); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// LoadSQLite reads a dataset previously written by ExportSQLite.
func LoadSQLite(ctx context.Context, path string) (*Dataset, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	db, err := openSQLite(ctx, path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	ds := &Dataset{
		Positions:        map[string]model.Position{},
		Quotes:           map[string]model.Quote{},
		Assessments:      map[string]model.Assessment{},
		TipNotes:         map[string][]model.Note{},
		StockNotes:       map[string][]model.Note{},
		TipConvictions:   map[string]model.Conviction{},
		StockConvictions: map[string]model.Conviction{},
		Trades:           map[string][]model.Trade{},
	}

	if err := scanJSONRows(ctx, db, `SELECT json FROM tips ORDER BY seq`, func(raw []byte) error {
		var t model.Tip
		if err := json.Unmarshal(raw, &t); err != nil {
			return err
		}
		ds.Tips = append(ds.Tips, t)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("tips: %w", err)
	}
	if err := scanJSONRows(ctx, db, `SELECT json FROM posts ORDER BY seq`, func(raw []byte) error {
		var p model.Post
		if err := json.Unmarshal(raw, &p); err != nil {
			return err
		}
		ds.Posts = append(ds.Posts, p)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("posts: %w", err)
	}
	if err := scanJSONRows(ctx, db, `SELECT json FROM authors ORDER BY seq`, func(raw []byte) error {
		var a model.Author
		if err := json.Unmarshal(raw, &a); err != nil {
			return err
		}
		ds.Authors = append(ds.Authors, a)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("authors: %w", err)
	}
	if err := scanJSONRows(ctx, db, `SELECT json FROM holdings ORDER BY seq`, func(raw []byte) error {
		var h model.Holding
		if err := json.Unmarshal(raw, &h); err != nil {
			return err
		}
		ds.Holdings = append(ds.Holdings, h)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("holdings: %w", err)
	}

	if err := scanKeyedRows(ctx, db, `SELECT symbol, json FROM positions`, func(k string, raw []byte) error {
		var p model.Position
		if err := json.Unmarshal(raw, &p); err != nil {
			return err
		}
		ds.Positions[k] = p
		return nil
	}); err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}
	if err := scanKeyedRows(ctx, db, `SELECT symbol, json FROM quotes`, func(k string, raw []byte) error {
		var q model.Quote
		if err := json.Unmarshal(raw, &q); err != nil {
			return err
		}
		ds.Quotes[k] = q
		return nil
	}); err != nil {
		return nil, fmt.Errorf("quotes: %w", err)
	}
	if err := scanKeyedRows(ctx, db, `SELECT tip_id, value FROM assessments`, func(k string, raw []byte) error {
		ds.Assessments[k] = model.Assessment(raw)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("assessments: %w", err)
	}
	if err := scanKeyedRows(ctx, db, `SELECT symbol, json FROM trades ORDER BY symbol, seq`, func(k string, raw []byte) error {
		var t model.Trade
		if err := json.Unmarshal(raw, &t); err != nil {
			return err
		}
		ds.Trades[k] = append(ds.Trades[k], t)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("trades: %w", err)
	}

	if err := loadScopedSQLite(ctx, db, ds); err != nil {
		return nil, err
	}

	if err := readMeta(ctx, db, "portfolio", &ds.Portfolio); err != nil {
		return nil, err
	}
	if err := readMeta(ctx, db, "sectors", &ds.Sectors); err != nil {
		return nil, err
	}

	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return ds, nil
}

func loadScopedSQLite(ctx context.Context, db *sql.DB, ds *Dataset) error {
	rows, err := db.QueryContext(ctx, `SELECT scope, scope_key, json FROM notes ORDER BY scope, scope_key, seq`)
	if err != nil {
		return fmt.Errorf("notes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var scope, key, raw string
		if err := rows.Scan(&scope, &key, &raw); err != nil {
			return fmt.Errorf("notes: %w", err)
		}
		var n model.Note
		if err := json.Unmarshal([]byte(raw), &n); err != nil {
			return fmt.Errorf("notes: %w", err)
		}
		if scope == noteScopeStock {
			ds.StockNotes[key] = append(ds.StockNotes[key], n)
		} else {
			ds.TipNotes[key] = append(ds.TipNotes[key], n)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("notes: %w", err)
	}

	crows, err := db.QueryContext(ctx, `SELECT scope, scope_key, json FROM convictions`)
	if err != nil {
		return fmt.Errorf("convictions: %w", err)
	}
	defer crows.Close()
	for crows.Next() {
		var scope, key, raw string
		if err := crows.Scan(&scope, &key, &raw); err != nil {
			return fmt.Errorf("convictions: %w", err)
		}
		var c model.Conviction
		if err := json.Unmarshal([]byte(raw), &c); err != nil {
			return fmt.Errorf("convictions: %w", err)
		}
		if scope == noteScopeStock {
			ds.StockConvictions[key] = c
		} else {
			ds.TipConvictions[key] = c
		}
	}
	return crows.Err()
}

func scanJSONRows(ctx context.Context, db *sql.DB, q string, fn func([]byte) error) error {
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return err
		}
		if err := fn([]byte(raw)); err != nil {
			return err
		}
	}
	return rows.Err()
}

func scanKeyedRows(ctx context.Context, db *sql.DB, q string, fn func(string, []byte) error) error {
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var k, raw string
		if err := rows.Scan(&k, &raw); err != nil {
			return err
		}
		if err := fn(k, []byte(raw)); err != nil {
			return err
		}
	}
	return rows.Err()
}

// readMeta decodes the JSON stored under k into dst; a missing key leaves dst alone.
func readMeta(ctx context.Context, db *sql.DB, k string, dst any) error {
	var raw string
	err := db.QueryRowContext(ctx, `SELECT v FROM meta WHERE k = ?`, k).Scan(&raw)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil
	case err != nil:
		return fmt.Errorf("meta %s: %w", k, err)
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("meta %s: %w", k, err)
	}
	return nil
}

// ExportSQLite writes ds into a fresh SQLite file at path (replacing any existing file).
func ExportSQLite(ctx context.Context, path string, ds *Dataset) error {
	if ds == nil {
		return errors.New("nil dataset")
	}
	if err := ds.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	db, err := openSQLite(ctx, path)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, stmt := range sqliteSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema: %w", err)
		}
	}

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	insert := func(q string, args ...any) error {
		_, err := tx.ExecContext(ctx, q, args...)
		return err
	}
	// insertJSON binds v, encoded as JSON, to the last placeholder of q.
	insertJSON := func(q string, v any, args ...any) error {
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		return insert(q, append(args, string(raw))...)
	}

	for i, t := range ds.Tips {
		if err := insertJSON(`INSERT INTO tips(id, seq, symbol, author, json) VALUES(?, ?, ?, ?, ?)`, t, t.ID, i, t.Symbol, t.Source.Name); err != nil {
			return fmt.Errorf("tip %s: %w", t.ID, err)
		}
	}
	for i, p := range ds.Posts {
		if err := insertJSON(`INSERT INTO posts(id, seq, json) VALUES(?, ?, ?)`, p, p.ID, i); err != nil {
			return fmt.Errorf("post %s: %w", p.ID, err)
		}
	}
	for i, a := range ds.Authors {
		if err := insertJSON(`INSERT INTO authors(name, seq, json) VALUES(?, ?, ?)`, a, a.Name, i); err != nil {
			return fmt.Errorf("author %s: %w", a.Name, err)
		}
	}
	for i, h := range ds.Holdings {
		if err := insertJSON(`INSERT INTO holdings(id, seq, json) VALUES(?, ?, ?)`, h, h.ID, i); err != nil {
			return fmt.Errorf("holding %s: %w", h.ID, err)
		}
	}
	for sym, p := range ds.Positions {
		if err := insertJSON(`INSERT INTO positions(symbol, json) VALUES(?, ?)`, p, sym); err != nil {
			return fmt.Errorf("position %s: %w", sym, err)
		}
	}
	for sym, q := range ds.Quotes {
		if err := insertJSON(`INSERT INTO quotes(symbol, json) VALUES(?, ?)`, q, sym); err != nil {
			return fmt.Errorf("quote %s: %w", sym, err)
		}
	}
	for tipID, a := range ds.Assessments {
		if err := insert(`INSERT INTO assessments(tip_id, value) VALUES(?, ?)`, tipID, string(a)); err != nil {
			return fmt.Errorf("assessment %s: %w", tipID, err)
		}
	}
	for scope, byKey := range map[string]map[string][]model.Note{noteScopeTip: ds.TipNotes, noteScopeStock: ds.StockNotes} {
		for key, notes := range byKey {
			for i, n := range notes {
				if err := insertJSON(`INSERT INTO notes(scope, scope_key, seq, json) VALUES(?, ?, ?, ?)`, n, scope, key, i); err != nil {
					return fmt.Errorf("note %s/%s: %w", scope, key, err)
				}
			}
		}
	}
	for scope, byKey := range map[string]map[string]model.Conviction{noteScopeTip: ds.TipConvictions, noteScopeStock: ds.StockConvictions} {
		for key, c := range byKey {
			if err := insertJSON(`INSERT INTO convictions(scope, scope_key, json) VALUES(?, ?, ?)`, c, scope, key); err != nil {
				return fmt.Errorf("conviction %s/%s: %w", scope, key, err)
			}
		}
	}
	for sym, trades := range ds.Trades {
		for i, t := range trades {
			if err := insertJSON(`INSERT INTO trades(symbol, seq, json) VALUES(?, ?, ?)`, t, sym, i); err != nil {
				return fmt.Errorf("trade %s/%s: %w", sym, t.ID, err)
			}
		}
	}
	if err := insertJSON(`INSERT INTO meta(k, v) VALUES('portfolio', ?)`, ds.Portfolio); err != nil {
		return fmt.Errorf("meta: %w", err)
	}
	if len(ds.Sectors) > 0 {
		if err := insertJSON(`INSERT INTO meta(k, v) VALUES('sectors', ?)`, ds.Sectors); err != nil {
			return fmt.Errorf("meta: %w", err)
		}
	}

	return tx.Commit()
}
