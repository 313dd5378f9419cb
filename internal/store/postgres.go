package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/tennolab/farmscout/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists queries to prepare on each new connection for
// faster execution of the most frequently used store operations.
var preparedStatements = map[string]string{
	"get_corpus":    `SELECT id, url, etag, body, fetched_at, expires_at FROM corpus_cache WHERE url = $1 AND expires_at > now() ORDER BY fetched_at DESC LIMIT 1`,
	"evict_corpus":  `DELETE FROM corpus_cache WHERE url = $1`,
	"set_corpus":    `INSERT INTO corpus_cache (id, url, etag, body, fetched_at, expires_at) VALUES ($1, $2, $3, $4, $5, $6)`,
	"record_query":  `INSERT INTO query_log (id, kind, term, hits, ran_at) VALUES ($1, $2, $3, $4, $5)`,
	"recent_queries": `SELECT id, kind, term, hits, ran_at FROM query_log ORDER BY ran_at DESC LIMIT $1`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(4)
	minConns := int32(1)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	// Prepare frequently-used statements on each new connection.
	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS corpus_cache (
	id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	url        TEXT NOT NULL,
	etag       TEXT NOT NULL DEFAULT '',
	body       BYTEA NOT NULL,
	fetched_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	expires_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS query_log (
	id     TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	kind   TEXT NOT NULL,
	term   TEXT NOT NULL,
	hits   INTEGER NOT NULL DEFAULT 0,
	ran_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_corpus_cache_url ON corpus_cache(url);
CREATE INDEX IF NOT EXISTS idx_corpus_cache_expires_at ON corpus_cache(expires_at);
CREATE INDEX IF NOT EXISTS idx_query_log_ran_at ON query_log(ran_at);
`

func (s *PostgresStore) Ping(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "SELECT 1")
	return eris.Wrap(err, "postgres: ping")
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

// GetCorpus returns the freshest unexpired cached copy for the URL, or nil
// when none exists.
func (s *PostgresStore) GetCorpus(ctx context.Context, url string) (*model.CachedCorpus, error) {
	var cc model.CachedCorpus
	err := s.pool.QueryRow(ctx,
		`SELECT id, url, etag, body, fetched_at, expires_at FROM corpus_cache
		 WHERE url = $1 AND expires_at > now()
		 ORDER BY fetched_at DESC LIMIT 1`,
		url,
	).Scan(&cc.ID, &cc.URL, &cc.ETag, &cc.Body, &cc.FetchedAt, &cc.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get corpus")
	}
	return &cc, nil
}

// SetCorpus replaces the cached copy for the URL.
func (s *PostgresStore) SetCorpus(ctx context.Context, url string, etag string, body []byte, ttl time.Duration) error {
	id := uuid.New().String()
	now := time.Now().UTC()
	expiresAt := now.Add(ttl)

	if _, err := s.pool.Exec(ctx, `DELETE FROM corpus_cache WHERE url = $1`, url); err != nil {
		return eris.Wrap(err, "postgres: evict corpus")
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO corpus_cache (id, url, etag, body, fetched_at, expires_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		id, url, etag, body, now, expiresAt,
	)
	return eris.Wrap(err, "postgres: set corpus")
}

func (s *PostgresStore) DeleteExpiredCorpora(ctx context.Context) (int, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM corpus_cache WHERE expires_at <= now()`,
	)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: delete expired corpora")
	}
	return int(tag.RowsAffected()), nil
}

func (s *PostgresStore) RecordQuery(ctx context.Context, kind model.QueryKind, term string, hits int) (*model.QueryRecord, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO query_log (id, kind, term, hits, ran_at) VALUES ($1, $2, $3, $4, $5)`,
		id, string(kind), term, hits, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: record query")
	}

	return &model.QueryRecord{
		ID:    id,
		Kind:  kind,
		Term:  term,
		Hits:  hits,
		RanAt: now,
	}, nil
}

func (s *PostgresStore) RecentQueries(ctx context.Context, limit int) ([]model.QueryRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, kind, term, hits, ran_at FROM query_log ORDER BY ran_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: recent queries")
	}
	defer rows.Close()

	var records []model.QueryRecord
	for rows.Next() {
		var q model.QueryRecord
		var kind string
		if err := rows.Scan(&q.ID, &kind, &q.Term, &q.Hits, &q.RanAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan query record")
		}
		q.Kind = model.QueryKind(kind)
		records = append(records, q)
	}
	return records, eris.Wrap(rows.Err(), "postgres: recent queries iterate")
}
