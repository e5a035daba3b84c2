package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/shigekazukoya/abbr"
)

// dataPrefix marks an SSE event-data line. The service may also send bare
// JSON lines; both are accepted.
const dataPrefix = "data: "

// maxLineBytes bounds a single stream frame. bufio.Scanner's default 64KB
// limit is too small for a long generated frame.
const maxLineBytes = 1 << 20

// StreamExplanation requests an explanation and delivers text chunks to
// onChunk as they arrive. See abbr.ExplanationStreamer for the contract.
func (c *Client) StreamExplanation(ctx context.Context, abbreviation, meaning string, onChunk func(text string)) error {
	if err := c.wait(ctx); err != nil {
		return err
	}

	payload, err := json.Marshal(map[string]string{
		"meaning":      meaning,
		"abbreviation": abbreviation,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/get-abbreviation-details", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.streamClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return abbr.Errorf(abbr.EUNAVAILABLE, "explanation service is unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return abbr.Errorf(abbr.EUNAVAILABLE, "explanation service returned HTTP %d", resp.StatusCode)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		line = strings.TrimPrefix(line, dataPrefix)

		var event abbr.StreamEvent
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			// A single malformed frame does not abort the stream.
			c.logger.Warn("skipping malformed stream line", "line", line, "err", err)
			continue
		}

		switch {
		case event.Error != "":
			return abbr.Errorf(abbr.EUNAVAILABLE, "%s", event.Error)
		case event.Done:
			return nil
		case event.Text != "":
			// A canceled fetch must never deliver another chunk, even if
			// the frame was already received.
			if ctx.Err() != nil {
				return ctx.Err()
			}
			onChunk(event.Text)
		}
	}

	if err := scanner.Err(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return abbr.Errorf(abbr.EUNAVAILABLE, "explanation stream ended unexpectedly")
	}
	return nil
}
