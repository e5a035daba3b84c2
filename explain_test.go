package abbr_test

import (
	"context"
	"testing"

	"github.com/shigekazukoya/abbr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockStreamer verifies the ExplanationStreamer interface can be implemented.
type mockStreamer struct {
	StreamExplanationFn func(ctx context.Context, abbreviation, meaning string, onChunk func(string)) error
}

func (m *mockStreamer) StreamExplanation(ctx context.Context, abbreviation, meaning string, onChunk func(string)) error {
	return m.StreamExplanationFn(ctx, abbreviation, meaning, onChunk)
}

// Compile-time check that mockStreamer implements ExplanationStreamer.
var _ abbr.ExplanationStreamer = (*mockStreamer)(nil)

func TestExplanationStreamer_CanBeImplemented(t *testing.T) {
	t.Parallel()

	streamer := &mockStreamer{
		StreamExplanationFn: func(_ context.Context, abbreviation, _ string, onChunk func(string)) error {
			onChunk(abbreviation + " stands for ")
			onChunk("something.")
			return nil
		},
	}

	var buf string
	err := streamer.StreamExplanation(context.Background(), "AI", "Artificial Intelligence", func(text string) {
		buf += text
	})

	require.NoError(t, err)
	assert.Equal(t, "AI stands for something.", buf)
}
