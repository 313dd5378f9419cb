package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tennolab/farmscout/internal/analyzer"
	"github.com/tennolab/farmscout/internal/corpus"
)

const serveTestCorpus = `Lith A10 Relic (Intact)Gauss Prime Chassis BlueprintUncommon (11.00%)
Lith A10 Relic (Exceptional)Gauss Prime Chassis BlueprintUncommon (13.00%)
Lith A10 Relic (Flawless)Gauss Prime Chassis BlueprintRare (17.00%)
Lith A10 Relic (Radiant)Gauss Prime Chassis BlueprintRare (20.00%)
Mercury/Suisei (Spy)Rotation ALith A10 RelicUncommon (14.29%)Serration | Uncommon (4.42%)
`

type stubDownloader struct {
	body string
}

func (d *stubDownloader) Download(ctx context.Context, url string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(d.body)), nil
}

func (d *stubDownloader) DownloadIfChanged(ctx context.Context, url, etag string) (io.ReadCloser, string, bool, error) {
	return io.NopCloser(strings.NewReader(d.body)), `"stub"`, true, nil
}

func newTestEnv(t *testing.T, loaded bool) *appEnv {
	t.Helper()
	holder := corpus.NewHolder()
	if loaded {
		holder.Replace(&corpus.Snapshot{Text: serveTestCorpus, FetchedAt: time.Now()})
	}
	dl := &stubDownloader{body: "<p>" + strings.ReplaceAll(serveTestCorpus, "\n", "</p><p>") + "</p>"}
	provider := corpus.NewProvider("https://example.com/tables.html", time.Hour, dl, nil, holder)
	return &appEnv{
		provider: provider,
		analyzer: analyzer.New(holder),
	}
}

func doRequest(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServe_Health(t *testing.T) {
	r := newRouter(newTestEnv(t, true))

	rec := doRequest(t, r, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServe_Relics(t *testing.T) {
	r := newRouter(newTestEnv(t, true))

	rec := doRequest(t, r, http.MethodGet, "/v1/relics/Gauss%20Prime%20Chassis%20Blueprint")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Active  []string `json:"active"`
		Vaulted []string `json:"vaulted"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"Lith A10"}, body.Active)
	assert.Empty(t, body.Vaulted)
}

func TestServe_Relics_NotFound(t *testing.T) {
	r := newRouter(newTestEnv(t, true))

	rec := doRequest(t, r, http.MethodGet, "/v1/relics/Nonexistent%20Item")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServe_ItemFarms(t *testing.T) {
	r := newRouter(newTestEnv(t, true))

	rec := doRequest(t, r, http.MethodGet, "/v1/item/Gauss%20Prime%20Chassis%20Blueprint/farms")
	require.Equal(t, http.StatusOK, rec.Code)

	// ItemReport's source field is a variant type; decode just the fields
	// under test.
	var report struct {
		Farms []struct {
			Mission string  `json:"mission"`
			Chance  float64 `json:"chance"`
		} `json:"farms"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	require.Len(t, report.Farms, 1)
	assert.Equal(t, "Suisei", report.Farms[0].Mission)
	assert.InDelta(t, 14.29, report.Farms[0].Chance, 0.001)
}

func TestServe_ItemFarms_AllFiltered(t *testing.T) {
	r := newRouter(newTestEnv(t, true))

	rec := doRequest(t, r, http.MethodGet, "/v1/item/Gauss%20Prime%20Chassis%20Blueprint/farms?exclude=Spy")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestServe_ModFarms(t *testing.T) {
	r := newRouter(newTestEnv(t, true))

	rec := doRequest(t, r, http.MethodGet, "/v1/mod/Serration/farms")
	require.Equal(t, http.StatusOK, rec.Code)

	var report analyzer.ModReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	require.Len(t, report.Farms, 1)
	assert.Equal(t, "A", report.Farms[0].Rotation)
}

func TestServe_NotReady(t *testing.T) {
	r := newRouter(newTestEnv(t, false))

	rec := doRequest(t, r, http.MethodGet, "/v1/relics/Anything")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestServe_Reload(t *testing.T) {
	env := newTestEnv(t, false)
	r := newRouter(env)

	rec := doRequest(t, r, http.MethodPost, "/v1/reload")
	require.Equal(t, http.StatusOK, rec.Code)

	// The reload published a snapshot; queries work now.
	rec = doRequest(t, r, http.MethodGet, "/v1/mod/Serration/farms")
	assert.Equal(t, http.StatusOK, rec.Code)
}
