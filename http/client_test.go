package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shigekazukoya/abbr"
	abbrhttp "github.com/shigekazukoya/abbr/http"
	"github.com/shigekazukoya/abbr/protobuf"
)

func TestClient_CheckVersion(t *testing.T) {
	t.Parallel()

	t.Run("decodes the version check response", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/check-version", r.URL.Path)
			assert.Equal(t, "3", r.URL.Query().Get("current"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"needsUpdate":true,"latestVersion":7}`))
		}))
		defer server.Close()

		client := abbrhttp.NewClient(server.URL)

		info, err := client.CheckVersion(context.Background(), 3)
		require.NoError(t, err)
		assert.True(t, info.NeedsUpdate)
		assert.Equal(t, int64(7), info.LatestVersion)
	})

	t.Run("non-200 status is a transport error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := abbrhttp.NewClient(server.URL)

		_, err := client.CheckVersion(context.Background(), 0)
		assert.Equal(t, abbr.EUNAVAILABLE, abbr.ErrorCode(err))
	})

	t.Run("unreadable JSON is a transport error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}))
		defer server.Close()

		client := abbrhttp.NewClient(server.URL)

		_, err := client.CheckVersion(context.Background(), 0)
		assert.Equal(t, abbr.EUNAVAILABLE, abbr.ErrorCode(err))
	})

	t.Run("respects the request timeout", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
		}))
		defer server.Close()

		client := abbrhttp.NewClient(server.URL, abbrhttp.WithTimeout(10*time.Millisecond))

		_, err := client.CheckVersion(context.Background(), 0)
		require.Error(t, err)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
		}))
		defer server.Close()

		client := abbrhttp.NewClient(server.URL)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := client.CheckVersion(ctx, 0)
		require.Error(t, err)
	})
}

func TestClient_FetchDictionary(t *testing.T) {
	t.Parallel()

	t.Run("decodes the binary payload", func(t *testing.T) {
		t.Parallel()

		want := abbr.Dictionary{"AI": "Artificial Intelligence", "AWS": "Amazon Web Services"}

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/get-data", r.URL.Path)
			assert.Equal(t, "7", r.URL.Query().Get("version"))
			w.Header().Set("Content-Type", "application/x-protobuf")
			_, _ = w.Write(protobuf.MarshalDictionary(want))
		}))
		defer server.Close()

		client := abbrhttp.NewClient(server.URL)

		dict, err := client.FetchDictionary(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, want, dict)
	})

	t.Run("malformed payload is a decode error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte{0x0a, 0xff})
		}))
		defer server.Close()

		client := abbrhttp.NewClient(server.URL)

		_, err := client.FetchDictionary(context.Background(), 1)
		assert.Equal(t, abbr.EINVALID, abbr.ErrorCode(err))
	})

	t.Run("rate limiter does not block single calls", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(protobuf.MarshalDictionary(abbr.Dictionary{"AI": "Artificial Intelligence"}))
		}))
		defer server.Close()

		client := abbrhttp.NewClient(server.URL, abbrhttp.WithRateLimit(100))

		_, err := client.FetchDictionary(context.Background(), 1)
		require.NoError(t, err)
	})
}
