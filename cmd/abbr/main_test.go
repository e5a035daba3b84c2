package main_test

import (
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shigekazukoya/abbr"
	main "github.com/shigekazukoya/abbr/cmd/abbr"
	abbrgin "github.com/shigekazukoya/abbr/gin"
	"github.com/shigekazukoya/abbr/mock"
)

// newTestServer serves the sync and explanation endpoints backed by a fixed
// dictionary, so Main can be exercised end to end over real HTTP.
func newTestServer(t *testing.T, record *abbr.CacheRecord) *httptest.Server {
	t.Helper()

	generator := &mock.ExplanationGenerator{
		GenerateExplanationFn: func(_ context.Context, abbreviation, meaning string, emit func(string) error) error {
			return emit(abbreviation + " stands for " + meaning + ".")
		},
	}
	server := httptest.NewServer(abbrgin.NewServer(record, generator, nil).Handler())
	t.Cleanup(server.Close)
	return server
}

func TestMain_SyncThenSearchAndExplain(t *testing.T) {
	t.Parallel()

	record := &abbr.CacheRecord{
		Version: 7,
		Abbreviations: abbr.Dictionary{
			"AI":  "Artificial Intelligence",
			"AWS": "Amazon Web Services",
		},
	}
	server := newTestServer(t, record)
	dbPath := filepath.Join(t.TempDir(), "abbr.db")

	run := func(args ...string) (string, string, error) {
		m := main.NewMain()
		m.DBPath = dbPath
		m.ServerURL = server.URL
		defer m.Close()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		err := m.Run(context.Background(), args, stdout, stderr)
		return stdout.String(), stderr.String(), err
	}

	stdout, _, err := run("sync")
	require.NoError(t, err)
	assert.Contains(t, stdout, "version 7")
	assert.Contains(t, stdout, "2 abbreviations")

	stdout, _, err = run("search", "ai")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Artificial Intelligence")

	stdout, _, err = run("explain", "AWS")
	require.NoError(t, err)
	assert.Contains(t, stdout, "AWS: Amazon Web Services")
	assert.Contains(t, stdout, "AWS stands for Amazon Web Services.")
}

func TestMain_SearchUsesCacheWhenServerIsGone(t *testing.T) {
	t.Parallel()

	record := &abbr.CacheRecord{
		Version:       1,
		Abbreviations: abbr.Dictionary{"K8S": "Kubernetes"},
	}
	server := newTestServer(t, record)
	dbPath := filepath.Join(t.TempDir(), "abbr.db")

	m := main.NewMain()
	m.DBPath = dbPath
	m.ServerURL = server.URL
	stdout := &bytes.Buffer{}
	require.NoError(t, m.Run(context.Background(), []string{"sync"}, stdout, &bytes.Buffer{}))
	require.NoError(t, m.Close())

	server.Close()

	m = main.NewMain()
	m.DBPath = dbPath
	m.ServerURL = server.URL
	defer m.Close()

	stdout = &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	err := m.Run(context.Background(), []string{"search", "K8S"}, stdout, stderr)

	require.NoError(t, err)
	assert.Contains(t, stderr.String(), "warning:")
	assert.Contains(t, stdout.String(), "Kubernetes")
}

func TestMain_UnknownCommandFails(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "abbr.db")
	defer m.Close()

	err := m.Run(context.Background(), []string{"bogus"}, &bytes.Buffer{}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestMain_HelpDoesNotTouchDatabase(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(filepath.Join(t.TempDir(), "missing-dir"), "abbr.db")
	defer m.Close()

	stdout := &bytes.Buffer{}
	err := m.Run(context.Background(), []string{"--help"}, stdout, &bytes.Buffer{})
	assert.NoError(t, err)
	assert.Contains(t, stdout.String(), "sync")
}
