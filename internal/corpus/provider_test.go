package corpus

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tennolab/farmscout/internal/model"
)

const testURL = "https://example.com/droptables.html"

type fakeDownloader struct {
	body      string
	etag      string
	downloads int
	changed   bool
	err       error
}

func (f *fakeDownloader) Download(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	f.downloads++
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(strings.NewReader(f.body)), nil
}

func (f *fakeDownloader) DownloadIfChanged(ctx context.Context, rawURL string, etag string) (io.ReadCloser, string, bool, error) {
	f.downloads++
	if f.err != nil {
		return nil, "", false, f.err
	}
	if !f.changed {
		return nil, etag, false, nil
	}
	return io.NopCloser(strings.NewReader(f.body)), f.etag, true, nil
}

type fakeCache struct {
	entry *model.CachedCorpus
	sets  int
}

func (f *fakeCache) GetCorpus(ctx context.Context, url string) (*model.CachedCorpus, error) {
	return f.entry, nil
}

func (f *fakeCache) SetCorpus(ctx context.Context, url string, etag string, body []byte, ttl time.Duration) error {
	f.sets++
	f.entry = &model.CachedCorpus{
		URL:       url,
		ETag:      etag,
		Body:      body,
		FetchedAt: time.Now(),
		ExpiresAt: time.Now().Add(ttl),
	}
	return nil
}

func TestProvider_LoadPublishesSnapshot(t *testing.T) {
	d := &fakeDownloader{body: "<p>Mercury/Suisei (Spy)</p>"}
	h := NewHolder()
	p := NewProvider(testURL, time.Hour, d, nil, h)

	snap, err := p.Load(context.Background(), false)
	require.NoError(t, err)
	assert.Contains(t, snap.Text, "Mercury/Suisei (Spy)")
	assert.True(t, h.Ready())

	got, err := h.Load()
	require.NoError(t, err)
	assert.Same(t, snap, got)
}

func TestProvider_ServesFreshCacheWithoutNetwork(t *testing.T) {
	d := &fakeDownloader{body: "<p>new</p>"}
	c := &fakeCache{entry: &model.CachedCorpus{
		URL:       testURL,
		ETag:      `"v1"`,
		Body:      []byte("<p>cached</p>"),
		FetchedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}}
	p := NewProvider(testURL, time.Hour, d, c, NewHolder())

	snap, err := p.Load(context.Background(), false)
	require.NoError(t, err)
	assert.Contains(t, snap.Text, "cached")
	assert.Equal(t, 0, d.downloads)
}

func TestProvider_ForceRevalidatesWithETag(t *testing.T) {
	d := &fakeDownloader{changed: false}
	c := &fakeCache{entry: &model.CachedCorpus{
		URL:       testURL,
		ETag:      `"v1"`,
		Body:      []byte("<p>cached</p>"),
		FetchedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}}
	p := NewProvider(testURL, time.Hour, d, c, NewHolder())

	snap, err := p.Load(context.Background(), true)
	require.NoError(t, err)
	assert.Contains(t, snap.Text, "cached")
	assert.Equal(t, 1, d.downloads)
	// Not-modified still refreshes the cache expiry.
	assert.Equal(t, 1, c.sets)
}

func TestProvider_ExpiredCacheRefetches(t *testing.T) {
	d := &fakeDownloader{body: "<p>new</p>", etag: `"v2"`, changed: true}
	c := &fakeCache{entry: &model.CachedCorpus{
		URL:       testURL,
		ETag:      `"v1"`,
		Body:      []byte("<p>stale</p>"),
		FetchedAt: time.Now().Add(-48 * time.Hour),
		ExpiresAt: time.Now().Add(-24 * time.Hour),
	}}
	p := NewProvider(testURL, time.Hour, d, c, NewHolder())

	snap, err := p.Load(context.Background(), false)
	require.NoError(t, err)
	assert.Contains(t, snap.Text, "new")
	assert.Equal(t, `"v2"`, c.entry.ETag)
}

func TestProvider_FetchFailureReportedUpward(t *testing.T) {
	d := &fakeDownloader{err: eris.New("boom")}
	h := NewHolder()
	p := NewProvider(testURL, time.Hour, d, nil, h)

	_, err := p.Load(context.Background(), false)
	require.Error(t, err)
	assert.False(t, h.Ready())
}
