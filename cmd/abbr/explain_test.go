package main_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shigekazukoya/abbr"
	main "github.com/shigekazukoya/abbr/cmd/abbr"
	"github.com/shigekazukoya/abbr/mock"
)

func TestCmdExplain(t *testing.T) {
	t.Parallel()

	dict := abbr.Dictionary{"AI": "Artificial Intelligence"}

	t.Run("streams chunks to stdout", func(t *testing.T) {
		t.Parallel()

		var gotAbbreviation, gotMeaning string
		streamer := &mock.ExplanationStreamer{
			StreamExplanationFn: func(_ context.Context, abbreviation, meaning string, onChunk func(string)) error {
				gotAbbreviation = abbreviation
				gotMeaning = meaning
				onChunk("AI stands for ")
				onChunk("Artificial Intelligence.")
				return nil
			},
		}
		deps, stdout, _ := testDeps(upToDateManager(dict, 1), streamer)

		cmd := &main.ExplainCmd{Abbreviation: "ai"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "AI", gotAbbreviation)
		assert.Equal(t, "Artificial Intelligence", gotMeaning)
		assert.Contains(t, stdout.String(), "AI: Artificial Intelligence")
		assert.Contains(t, stdout.String(), "AI stands for Artificial Intelligence.")
	})

	t.Run("unknown abbreviation never calls the service", func(t *testing.T) {
		t.Parallel()

		streamer := &mock.ExplanationStreamer{
			StreamExplanationFn: func(context.Context, string, string, func(string)) error {
				t.Error("remote service must not be called")
				return nil
			},
		}
		deps, _, stderr := testDeps(upToDateManager(dict, 1), streamer)

		cmd := &main.ExplainCmd{Abbreviation: "NOPE"}
		err := cmd.Run(deps)

		assert.Equal(t, abbr.ENOTFOUND, abbr.ErrorCode(err))
		assert.Contains(t, stderr.String(), "NOPE")
	})

	t.Run("surfaces stream failures", func(t *testing.T) {
		t.Parallel()

		streamer := &mock.ExplanationStreamer{
			StreamExplanationFn: func(_ context.Context, _, _ string, onChunk func(string)) error {
				onChunk("partial")
				return abbr.Errorf(abbr.EUNAVAILABLE, "Explanation could not be generated.")
			},
		}
		deps, _, stderr := testDeps(upToDateManager(dict, 1), streamer)

		cmd := &main.ExplainCmd{Abbreviation: "AI"}
		err := cmd.Run(deps)

		assert.Error(t, err)
		assert.Contains(t, stderr.String(), "Explanation could not be generated.")
	})
}
