package mock

import (
	"context"

	"github.com/shigekazukoya/abbr"
)

var _ abbr.ExplanationStreamer = (*ExplanationStreamer)(nil)

// ExplanationStreamer is a mock implementation of abbr.ExplanationStreamer.
type ExplanationStreamer struct {
	StreamExplanationFn func(ctx context.Context, abbreviation, meaning string, onChunk func(text string)) error
}

func (s *ExplanationStreamer) StreamExplanation(ctx context.Context, abbreviation, meaning string, onChunk func(text string)) error {
	return s.StreamExplanationFn(ctx, abbreviation, meaning, onChunk)
}
