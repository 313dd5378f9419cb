package corpus

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/tennolab/farmscout/internal/model"
)

// Downloader fetches the raw document over the wire.
type Downloader interface {
	Download(ctx context.Context, rawURL string) (io.ReadCloser, error)
	DownloadIfChanged(ctx context.Context, rawURL string, etag string) (io.ReadCloser, string, bool, error)
}

// Cache persists raw fetched documents between runs.
type Cache interface {
	GetCorpus(ctx context.Context, url string) (*model.CachedCorpus, error)
	SetCorpus(ctx context.Context, url string, etag string, body []byte, ttl time.Duration) error
}

// Provider loads the drop-table document, flattens it, and publishes
// snapshots into a holder. Fetching is the engine's only suspension point;
// everything downstream is a bounded scan over the snapshot text.
type Provider struct {
	url        string
	ttl        time.Duration
	downloader Downloader
	cache      Cache // nil disables caching
	holder     *Holder
}

// NewProvider wires a provider. cache may be nil.
func NewProvider(url string, ttl time.Duration, d Downloader, cache Cache, holder *Holder) *Provider {
	return &Provider{
		url:        url,
		ttl:        ttl,
		downloader: d,
		cache:      cache,
		holder:     holder,
	}
}

// Holder returns the holder this provider publishes into.
func (p *Provider) Holder() *Holder {
	return p.holder
}

// Load obtains the document, publishes a snapshot, and returns it. A fresh
// cached copy is served without touching the network unless force is set;
// forced loads still revalidate with the cached ETag. Failures are reported
// to the caller — there is no internal retry beyond the fetcher's own
// transport retries.
func (p *Provider) Load(ctx context.Context, force bool) (*Snapshot, error) {
	var cached *model.CachedCorpus
	if p.cache != nil {
		c, err := p.cache.GetCorpus(ctx, p.url)
		if err != nil {
			zap.L().Warn("corpus cache read failed", zap.Error(err))
		} else {
			cached = c
		}
	}

	if cached != nil && !force && cached.Fresh(time.Now()) {
		zap.L().Debug("serving drop tables from cache",
			zap.Time("fetched_at", cached.FetchedAt),
		)
		return p.publish(cached.Body, cached.ETag, cached.FetchedAt)
	}

	body, etag, err := p.fetch(ctx, cached)
	if err != nil {
		return nil, err
	}

	if p.cache != nil {
		if err := p.cache.SetCorpus(ctx, p.url, etag, body, p.ttl); err != nil {
			zap.L().Warn("corpus cache write failed", zap.Error(err))
		}
	}

	return p.publish(body, etag, time.Now())
}

func (p *Provider) fetch(ctx context.Context, cached *model.CachedCorpus) ([]byte, string, error) {
	if cached != nil && cached.ETag != "" {
		rc, etag, changed, err := p.downloader.DownloadIfChanged(ctx, p.url, cached.ETag)
		if err != nil {
			return nil, "", eris.Wrap(err, "corpus: fetch drop tables")
		}
		if !changed {
			zap.L().Debug("drop tables unchanged upstream", zap.String("etag", etag))
			return cached.Body, cached.ETag, nil
		}
		defer rc.Close() //nolint:errcheck
		body, err := io.ReadAll(rc)
		if err != nil {
			return nil, "", eris.Wrap(err, "corpus: read drop tables")
		}
		return body, etag, nil
	}

	rc, err := p.downloader.Download(ctx, p.url)
	if err != nil {
		return nil, "", eris.Wrap(err, "corpus: fetch drop tables")
	}
	defer rc.Close() //nolint:errcheck
	body, err := io.ReadAll(rc)
	if err != nil {
		return nil, "", eris.Wrap(err, "corpus: read drop tables")
	}
	return body, "", nil
}

func (p *Provider) publish(body []byte, etag string, fetchedAt time.Time) (*Snapshot, error) {
	text, err := Flatten(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	snap := &Snapshot{Text: text, ETag: etag, FetchedAt: fetchedAt}
	p.holder.Replace(snap)
	zap.L().Info("drop tables loaded",
		zap.Int("bytes", len(body)),
		zap.Int("text_len", len(text)),
	)
	return snap, nil
}
