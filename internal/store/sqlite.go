package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sniftern/internguard/internal/company"
)

// SQLiteStore implements company.Store using modernc.org/sqlite,
// holding each company as a JSON document in a TEXT column.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures
// WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS company_stats (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	doc        TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_company_stats_name ON company_stats(name COLLATE NOCASE);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) FindByNameExact(ctx context.Context, name string) (*company.CompanyRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT doc FROM company_stats WHERE name = ? COLLATE NOCASE LIMIT 1`, name)
	return scanRecord(row, "find by name exact")
}

func (s *SQLiteStore) FindByName(ctx context.Context, name string) (*company.CompanyRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT doc FROM company_stats WHERE name = ? LIMIT 1`, name)
	return scanRecord(row, "find by name")
}

func (s *SQLiteStore) ListNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM company_stats ORDER BY rowid`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list names")
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan name")
		}
		names = append(names, n)
	}
	return names, eris.Wrap(rows.Err(), "sqlite: list names iterate")
}

func (s *SQLiteStore) Insert(ctx context.Context, rec *company.CompanyRecord) error {
	doc, err := json.Marshal(rec)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal record")
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO company_stats (id, name, doc) VALUES (?, ?, ?)`,
		rec.ID, rec.CompanyName, string(doc),
	)
	return eris.Wrapf(err, "sqlite: insert record %s", rec.CompanyName)
}

func (s *SQLiteStore) Replace(ctx context.Context, id string, rec *company.CompanyRecord) error {
	doc, err := json.Marshal(rec)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal record")
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE company_stats SET name = ?, doc = ?, updated_at = datetime('now') WHERE id = ?`,
		rec.CompanyName, string(doc), id,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: replace record %s", id)
	}
	return checkRowsAffected(res, id)
}

func (s *SQLiteStore) FindAll(ctx context.Context) ([]company.CompanyRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT doc FROM company_stats ORDER BY rowid`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: find all")
	}
	defer rows.Close()

	var records []company.CompanyRecord
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan doc")
		}
		var rec company.CompanyRecord
		if err := json.Unmarshal([]byte(doc), &rec); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal record")
		}
		records = append(records, rec)
	}
	return records, eris.Wrap(rows.Err(), "sqlite: find all iterate")
}

func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM company_stats`).Scan(&n)
	return n, eris.Wrap(err, "sqlite: count")
}

func (s *SQLiteStore) FindWhere(ctx context.Context, pred func(*company.CompanyRecord) bool) ([]company.CompanyRecord, error) {
	all, err := s.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	var out []company.CompanyRecord
	for i := range all {
		if pred(&all[i]) {
			out = append(out, all[i])
		}
	}
	return out, nil
}

// helpers

func checkRowsAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return eris.Errorf("sqlite: record not found: %s", id)
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanRecord(row scannable, op string) (*company.CompanyRecord, error) {
	var doc string
	err := row.Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: %s", op)
	}
	var rec company.CompanyRecord
	if err := json.Unmarshal([]byte(doc), &rec); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal record")
	}
	return &rec, nil
}
