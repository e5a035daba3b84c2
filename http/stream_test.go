package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shigekazukoya/abbr"
	abbrhttp "github.com/shigekazukoya/abbr/http"
)

// sseServer streams the given lines, flushing after each one.
func sseServer(t *testing.T, lines ...string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/get-abbreviation-details", r.URL.Path)

		var body struct {
			Meaning      string `json:"meaning"`
			Abbreviation string `json:"abbreviation"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.NotEmpty(t, body.Meaning)

		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		for _, line := range lines {
			fmt.Fprintf(w, "%s\n\n", line)
			flusher.Flush()
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestClient_StreamExplanation(t *testing.T) {
	t.Parallel()

	t.Run("accumulates text chunks until done", func(t *testing.T) {
		t.Parallel()

		server := sseServer(t,
			`data: {"text":"Hel"}`,
			`data: {"text":"lo"}`,
			`data: {"done":true}`,
		)
		client := abbrhttp.NewClient(server.URL)

		var buf string
		err := client.StreamExplanation(context.Background(), "AI", "Artificial Intelligence", func(text string) {
			buf += text
		})

		require.NoError(t, err)
		assert.Equal(t, "Hello", buf)
	})

	t.Run("accepts bare JSON frames without the data prefix", func(t *testing.T) {
		t.Parallel()

		server := sseServer(t, `{"text":"Hello"}`, `{"done":true}`)
		client := abbrhttp.NewClient(server.URL)

		var buf string
		err := client.StreamExplanation(context.Background(), "AI", "Artificial Intelligence", func(text string) {
			buf += text
		})

		require.NoError(t, err)
		assert.Equal(t, "Hello", buf)
	})

	t.Run("error frame stops consumption", func(t *testing.T) {
		t.Parallel()

		server := sseServer(t,
			`data: {"text":"Hel"}`,
			`data: {"error":"boom"}`,
			`data: {"text":"never"}`,
		)
		client := abbrhttp.NewClient(server.URL)

		var buf string
		err := client.StreamExplanation(context.Background(), "AI", "Artificial Intelligence", func(text string) {
			buf += text
		})

		assert.Equal(t, abbr.EUNAVAILABLE, abbr.ErrorCode(err))
		assert.Equal(t, "boom", abbr.ErrorMessage(err))
		assert.Equal(t, "Hel", buf)
	})

	t.Run("malformed frames are skipped, not fatal", func(t *testing.T) {
		t.Parallel()

		server := sseServer(t,
			`data: {not json`,
			`data: {"text":"Hello"}`,
			`data: {"done":true}`,
		)
		client := abbrhttp.NewClient(server.URL)

		var buf string
		err := client.StreamExplanation(context.Background(), "AI", "Artificial Intelligence", func(text string) {
			buf += text
		})

		require.NoError(t, err)
		assert.Equal(t, "Hello", buf)
	})

	t.Run("a frame larger than the default scanner buffer survives", func(t *testing.T) {
		t.Parallel()

		long := strings.Repeat("a", 200*1024)
		server := sseServer(t,
			fmt.Sprintf(`data: {"text":%q}`, long),
			`data: {"done":true}`,
		)
		client := abbrhttp.NewClient(server.URL)

		var buf string
		err := client.StreamExplanation(context.Background(), "AI", "Artificial Intelligence", func(text string) {
			buf += text
		})

		require.NoError(t, err)
		assert.Equal(t, long, buf)
	})

	t.Run("stream ending without done is still a success", func(t *testing.T) {
		t.Parallel()

		server := sseServer(t, `data: {"text":"Hello"}`)
		client := abbrhttp.NewClient(server.URL)

		var buf string
		err := client.StreamExplanation(context.Background(), "AI", "Artificial Intelligence", func(text string) {
			buf += text
		})

		require.NoError(t, err)
		assert.Equal(t, "Hello", buf)
	})

	t.Run("non-200 status is a transport error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := abbrhttp.NewClient(server.URL)

		err := client.StreamExplanation(context.Background(), "AI", "Artificial Intelligence", func(string) {})
		assert.Equal(t, abbr.EUNAVAILABLE, abbr.ErrorCode(err))
	})

	t.Run("cancellation surfaces ctx.Err and stops chunk delivery", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/event-stream")
			flusher := w.(http.Flusher)
			fmt.Fprint(w, "data: {\"text\":\"Hel\"}\n\n")
			flusher.Flush()
			time.Sleep(200 * time.Millisecond)
			fmt.Fprint(w, "data: {\"text\":\"lo\"}\n\n")
			flusher.Flush()
		}))
		defer server.Close()

		client := abbrhttp.NewClient(server.URL)
		ctx, cancel := context.WithCancel(context.Background())

		var buf string
		err := client.StreamExplanation(ctx, "AI", "Artificial Intelligence", func(text string) {
			buf += text
			cancel() // supersede mid-stream
		})

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, "Hel", buf)
	})
}
