package model

import "time"

// CachedCorpus is one cached copy of the raw drop-table document. Only the
// fetched bytes are cached; parsed results are always recomputed.
type CachedCorpus struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	ETag      string    `json:"etag"`
	Body      []byte    `json:"-"`
	FetchedAt time.Time `json:"fetched_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Fresh reports whether the cached copy is still within its TTL.
func (c *CachedCorpus) Fresh(now time.Time) bool {
	return now.Before(c.ExpiresAt)
}

// QueryKind identifies what a logged query searched for.
type QueryKind string

const (
	QueryItem      QueryKind = "item"
	QueryMod       QueryKind = "mod"
	QueryEquipment QueryKind = "equipment"
	QueryRelic     QueryKind = "relic"
)

// QueryRecord is one logged analysis query.
type QueryRecord struct {
	ID    string    `json:"id"`
	Kind  QueryKind `json:"kind"`
	Term  string    `json:"term"`
	Hits  int       `json:"hits"`
	RanAt time.Time `json:"ran_at"`
}
