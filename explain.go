package abbr

import "context"

// StreamEvent is the envelope carried by each explanation stream frame.
// Exactly one field is meaningful per frame: a text chunk to append, a
// terminal error message, or the terminal success signal.
type StreamEvent struct {
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
	Done  bool   `json:"done,omitempty"`
}

// ExplanationStreamer consumes a streamed explanation for an abbreviation.
type ExplanationStreamer interface {
	// StreamExplanation requests an explanation of meaning (attributed to
	// abbreviation) and invokes onChunk for each text chunk as it arrives,
	// in order. It blocks until the stream completes, fails, or ctx is
	// canceled. Cancellation returns ctx.Err(); callers treat it as
	// silence, not failure. After cancellation onChunk is never invoked
	// again, even for chunks already received. A terminal error frame
	// returns EUNAVAILABLE carrying the server's message.
	StreamExplanation(ctx context.Context, abbreviation, meaning string, onChunk func(text string)) error
}

// ExplanationGenerator produces explanation text chunks on the server side.
type ExplanationGenerator interface {
	// GenerateExplanation generates an explanation of meaning and calls
	// emit for each chunk. It stops and returns emit's error if emit
	// fails, so a disconnected client tears the generation down.
	GenerateExplanation(ctx context.Context, abbreviation, meaning string, emit func(text string) error) error
}
