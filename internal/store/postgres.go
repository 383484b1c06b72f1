package store

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sniftern/internguard/internal/company"
)

// Pool is the subset of pgxpool.Pool the store uses. pgxmock
// satisfies it for unit tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore implements company.Store on Postgres, holding each
// company as a JSONB document.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: connect")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool (or a mock).
func NewPostgresWithPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS company_stats (
	id         UUID PRIMARY KEY,
	name       TEXT NOT NULL,
	doc        JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_company_stats_name_lower
	ON company_stats (lower(name));
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) FindByNameExact(ctx context.Context, name string) (*company.CompanyRecord, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT doc FROM company_stats WHERE lower(name) = lower($1) LIMIT 1`, name)
	return scanPgRecord(row, "find by name exact")
}

func (s *PostgresStore) FindByName(ctx context.Context, name string) (*company.CompanyRecord, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT doc FROM company_stats WHERE name = $1 LIMIT 1`, name)
	return scanPgRecord(row, "find by name")
}

func (s *PostgresStore) ListNames(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT name FROM company_stats ORDER BY created_at, id`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list names")
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, eris.Wrap(err, "postgres: scan name")
		}
		names = append(names, n)
	}
	return names, eris.Wrap(rows.Err(), "postgres: list names iterate")
}

func (s *PostgresStore) Insert(ctx context.Context, rec *company.CompanyRecord) error {
	doc, err := json.Marshal(rec)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal record")
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO company_stats (id, name, doc) VALUES ($1, $2, $3)`,
		rec.ID, rec.CompanyName, doc,
	)
	return eris.Wrapf(err, "postgres: insert record %s", rec.CompanyName)
}

func (s *PostgresStore) Replace(ctx context.Context, id string, rec *company.CompanyRecord) error {
	doc, err := json.Marshal(rec)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal record")
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE company_stats SET name = $2, doc = $3, updated_at = now() WHERE id = $1`,
		id, rec.CompanyName, doc,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: replace record %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("postgres: record not found: %s", id)
	}
	return nil
}

func (s *PostgresStore) FindAll(ctx context.Context) ([]company.CompanyRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT doc FROM company_stats ORDER BY created_at, id`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: find all")
	}
	defer rows.Close()

	var records []company.CompanyRecord
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, eris.Wrap(err, "postgres: scan doc")
		}
		var rec company.CompanyRecord
		if err := json.Unmarshal(doc, &rec); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal record")
		}
		records = append(records, rec)
	}
	return records, eris.Wrap(rows.Err(), "postgres: find all iterate")
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM company_stats`).Scan(&n)
	return n, eris.Wrap(err, "postgres: count")
}

func (s *PostgresStore) FindWhere(ctx context.Context, pred func(*company.CompanyRecord) bool) ([]company.CompanyRecord, error) {
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

func scanPgRecord(row pgx.Row, op string) (*company.CompanyRecord, error) {
	var doc []byte
	err := row.Scan(&doc)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: %s", op)
	}
	var rec company.CompanyRecord
	if err := json.Unmarshal(doc, &rec); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal record")
	}
	return &rec, nil
}
