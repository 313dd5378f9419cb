package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tennolab/farmscout/internal/model"
)

// Pool is the subset of pgxpool.Pool the postgres store uses. pgxmock
// implements it for tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// Store defines the persistence interface: the raw-document cache plus the
// query log.
type Store interface {
	// Corpus cache
	GetCorpus(ctx context.Context, url string) (*model.CachedCorpus, error)
	SetCorpus(ctx context.Context, url string, etag string, body []byte, ttl time.Duration) error
	DeleteExpiredCorpora(ctx context.Context) (int, error)

	// Query log
	RecordQuery(ctx context.Context, kind model.QueryKind, term string, hits int) (*model.QueryRecord, error)
	RecentQueries(ctx context.Context, limit int) ([]model.QueryRecord, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
