package mapbox

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c := NewClient("test-token", 2*time.Second, discard(), nil)
	c.baseURL = server.URL
	return c
}

func TestReverseGeocode(t *testing.T) {
	t.Run("resolves country short code", func(t *testing.T) {
		var gotPath, gotQuery string
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = r.URL.RawQuery
			w.Write([]byte(`{"features":[{"text":"United Kingdom","relevance":1,"properties":{"short_code":"GB"}}]}`))
		})

		result, err := c.ReverseGeocode(context.Background(), 51.5074, -0.1278)

		require.NoError(t, err)
		assert.Equal(t, "gb", result.CountryCode)
		assert.Equal(t, "United Kingdom", result.PlaceName)
		assert.Equal(t, 1.0, result.Confidence)
		// Mapbox takes lng,lat order.
		assert.Equal(t, "/-0.127800,51.507400.json", gotPath)
		assert.Contains(t, gotQuery, "access_token=test-token")
		assert.Contains(t, gotQuery, "types=country")
	})

	t.Run("no features is empty, not an error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"features":[]}`))
		})

		result, err := c.ReverseGeocode(context.Background(), 0, 0)

		require.NoError(t, err)
		assert.Empty(t, result.CountryCode)
	})

	t.Run("api error status", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
		})

		_, err := c.ReverseGeocode(context.Background(), 47.6, -122.3)
		assert.ErrorContains(t, err, "status 401")
	})

	t.Run("malformed body", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"features": [`))
		})

		_, err := c.ReverseGeocode(context.Background(), 47.6, -122.3)
		assert.ErrorContains(t, err, "decode response")
	})

	t.Run("context cancellation", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"features":[]}`))
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := c.ReverseGeocode(ctx, 47.6, -122.3)
		assert.Error(t, err)
	})
}
