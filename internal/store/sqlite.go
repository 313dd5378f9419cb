package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/tennolab/farmscout/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
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
CREATE TABLE IF NOT EXISTS corpus_cache (
	id         TEXT PRIMARY KEY,
	url        TEXT NOT NULL,
	etag       TEXT NOT NULL DEFAULT '',
	body       BLOB NOT NULL,
	fetched_at DATETIME NOT NULL DEFAULT (datetime('now')),
	expires_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS query_log (
	id     TEXT PRIMARY KEY,
	kind   TEXT NOT NULL,
	term   TEXT NOT NULL,
	hits   INTEGER NOT NULL DEFAULT 0,
	ran_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_corpus_cache_url ON corpus_cache(url);
CREATE INDEX IF NOT EXISTS idx_corpus_cache_expires_at ON corpus_cache(expires_at);
CREATE INDEX IF NOT EXISTS idx_query_log_ran_at ON query_log(ran_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// GetCorpus returns the freshest unexpired cached copy for the URL, or nil
// when none exists.
func (s *SQLiteStore) GetCorpus(ctx context.Context, url string) (*model.CachedCorpus, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, url, etag, body, fetched_at, expires_at FROM corpus_cache
		 WHERE url = ? AND expires_at > datetime('now')
		 ORDER BY fetched_at DESC LIMIT 1`,
		url,
	)

	var cc model.CachedCorpus
	err := row.Scan(&cc.ID, &cc.URL, &cc.ETag, &cc.Body, &cc.FetchedAt, &cc.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get corpus")
	}
	return &cc, nil
}

// SetCorpus replaces the cached copy for the URL.
func (s *SQLiteStore) SetCorpus(ctx context.Context, url string, etag string, body []byte, ttl time.Duration) error {
	id := uuid.New().String()
	now := time.Now().UTC()
	expiresAt := now.Add(ttl)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin set corpus")
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM corpus_cache WHERE url = ?`, url); err != nil {
		return eris.Wrap(err, "sqlite: evict corpus")
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO corpus_cache (id, url, etag, body, fetched_at, expires_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, url, etag, body, now, expiresAt,
	); err != nil {
		return eris.Wrap(err, "sqlite: set corpus")
	}
	return eris.Wrap(tx.Commit(), "sqlite: commit set corpus")
}

func (s *SQLiteStore) DeleteExpiredCorpora(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM corpus_cache WHERE expires_at <= datetime('now')`,
	)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: delete expired corpora")
	}
	n, err := res.RowsAffected()
	return int(n), eris.Wrap(err, "sqlite: rows affected")
}

func (s *SQLiteStore) RecordQuery(ctx context.Context, kind model.QueryKind, term string, hits int) (*model.QueryRecord, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO query_log (id, kind, term, hits, ran_at) VALUES (?, ?, ?, ?, ?)`,
		id, string(kind), term, hits, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: record query")
	}

	return &model.QueryRecord{
		ID:    id,
		Kind:  kind,
		Term:  term,
		Hits:  hits,
		RanAt: now,
	}, nil
}

func (s *SQLiteStore) RecentQueries(ctx context.Context, limit int) ([]model.QueryRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, term, hits, ran_at FROM query_log ORDER BY ran_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: recent queries")
	}
	defer rows.Close()

	var records []model.QueryRecord
	for rows.Next() {
		var q model.QueryRecord
		var kind string
		if err := rows.Scan(&q.ID, &kind, &q.Term, &q.Hits, &q.RanAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan query record")
		}
		q.Kind = model.QueryKind(kind)
		records = append(records, q)
	}
	return records, eris.Wrap(rows.Err(), "sqlite: recent queries iterate")
}
