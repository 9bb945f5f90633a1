package gazette

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/auspex/internal/common"
)

const indexPage = `<html><body>
<table>
<tr><th>Date</th><th>Gazette</th></tr>
<tr><td>2026-02-06</td><td><a href="/gazettes/2221-07_E.pdf">Gazette No. 2221/07 - Import Controls</a></td></tr>
<tr><td>2026-02-05</td><td><a href="/gazettes/2221-03_E.pdf">Gazette No. 2221/03 - Fuel Pricing Formula</a></td></tr>
<tr><td>2026-02-04</td><td>No link in this row</td></tr>
</table>
</body></html>`

func newTestService(serverURL string, ttl time.Duration) *Service {
	return NewService(&common.GazetteConfig{
		URL:            serverURL,
		RequestTimeout: 5 * time.Second,
		CacheTTL:       ttl,
	}, common.GetLogger())
}

func TestFetch_ParsesIndexRows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, indexPage)
	}))
	defer server.Close()

	service := newTestService(server.URL, time.Minute)

	entries, err := service.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "2026-02-06", entries[0].Date)
	assert.Equal(t, "Gazette No. 2221/07 - Import Controls", entries[0].Title)
	assert.Equal(t, server.URL+"/gazettes/2221-07_E.pdf", entries[0].Link)
	assert.NotEmpty(t, entries[0].Source)
}

func TestFetch_CachesResult(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, indexPage)
	}))
	defer server.Close()

	service := newTestService(server.URL, time.Minute)

	for i := 0; i < 3; i++ {
		entries, err := service.Fetch(context.Background())
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	}

	assert.Equal(t, int32(1), hits.Load())
}

func TestFetch_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	service := newTestService(server.URL, time.Minute)

	_, err := service.Fetch(context.Background())
	assert.ErrorIs(t, err, common.ErrUpstreamFailure)
}

func TestFetch_EmptyIndexNotCached(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if hits.Load() == 1 {
			fmt.Fprint(w, "<html><body><p>maintenance</p></body></html>")
			return
		}
		fmt.Fprint(w, indexPage)
	}))
	defer server.Close()

	service := newTestService(server.URL, time.Minute)

	entries, err := service.Fetch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)

	// Empty result is not cached, so the next call re-scrapes
	entries, err = service.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
