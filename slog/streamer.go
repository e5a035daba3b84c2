package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/shigekazukoya/abbr"
)

// Ensure LoggingStreamer implements abbr.ExplanationStreamer.
var _ abbr.ExplanationStreamer = (*LoggingStreamer)(nil)

// LoggingStreamer wraps an ExplanationStreamer with debug logging.
type LoggingStreamer struct {
	next   abbr.ExplanationStreamer
	logger *slog.Logger
}

// NewLoggingStreamer creates a new LoggingStreamer.
func NewLoggingStreamer(next abbr.ExplanationStreamer, logger *slog.Logger) *LoggingStreamer {
	return &LoggingStreamer{next: next, logger: logger}
}

// StreamExplanation delegates to the wrapped streamer and logs the operation.
func (s *LoggingStreamer) StreamExplanation(ctx context.Context, abbreviation, meaning string, onChunk func(text string)) (err error) {
	chunks := 0
	defer func(begin time.Time) {
		s.logger.Info("explanation stream",
			"abbreviation", abbreviation,
			"chunks", chunks,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.StreamExplanation(ctx, abbreviation, meaning, func(text string) {
		chunks++
		onChunk(text)
	})
}
