// Package tui implements the interactive abbreviation search terminal UI:
// an auto-uppercased input, a ranked results list with keyboard
// navigation, and a detail pane that renders the streamed explanation as
// it arrives.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shigekazukoya/abbr"
	"github.com/shigekazukoya/abbr/cache"
	"github.com/shigekazukoya/abbr/search"
)

// explanationPhase is the lifecycle of the detail pane's buffer.
type explanationPhase int

const (
	explanationIdle explanationPhase = iota
	explanationLoading
	explanationStreaming
	explanationComplete
	explanationFailed
	explanationNotFound
)

// Messages delivered into the bubbletea event loop. Every stream message
// carries the generation it belongs to; messages from a superseded
// generation are dropped, so a late chunk from a canceled fetch can never
// touch the buffer.
type (
	syncedMsg struct{ state *abbr.SyncState }
	chunkMsg  struct {
		gen  int
		text string
	}
	streamDoneMsg struct{ gen int }
	streamFailMsg struct {
		gen     int
		message string
	}
)

// Model is the bubbletea model for the search UI.
type Model struct {
	manager  *cache.Manager
	streamer abbr.ExplanationStreamer

	input     textinput.Model
	dict      abbr.Dictionary
	index     *search.Index
	selection *search.Selection
	syncing   bool
	syncErr   string

	phase    explanationPhase
	buffer   string
	notFound string

	// gen identifies the live fetch; cancel aborts it. Exactly one fetch
	// is in flight at a time.
	gen    int
	cancel context.CancelFunc
	events chan tea.Msg

	width  int
	height int
}

// New creates a Model. The dictionary resolves asynchronously on Init.
func New(manager *cache.Manager, streamer abbr.ExplanationStreamer) Model {
	input := textinput.New()
	input.Placeholder = "Type an abbreviation"
	input.Focus()
	input.CharLimit = 64

	return Model{
		manager:   manager,
		streamer:  streamer,
		input:     input,
		dict:      abbr.Dictionary{},
		index:     search.NewIndex(abbr.Dictionary{}),
		selection: search.NewSelection(),
		syncing:   true,
		width:     80,
		height:    24,
	}
}

// Init starts the dictionary synchronization.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, func() tea.Msg {
		return syncedMsg{state: m.manager.Load(context.Background())}
	})
}

// Update handles events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case syncedMsg:
		m.syncing = false
		m.dict = msg.state.Dictionary()
		if msg, errored := msg.state.Err(); errored {
			m.syncErr = msg
		}
		// The index must be rebuilt before the next query runs.
		m.index = search.NewIndex(m.dict)
		return m.requery()

	case chunkMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.phase = explanationStreaming
		m.buffer += msg.text
		return m, m.awaitStream()

	case streamDoneMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.phase = explanationComplete
		return m, nil

	case streamFailMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.phase = explanationFailed
		m.buffer = msg.message
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.abortFetch()
			return m, tea.Quit
		case "up":
			selected, changed := m.selection.Prev()
			if changed {
				return m, m.startFetch(selected)
			}
			return m, nil
		case "down":
			selected, changed := m.selection.Next()
			if changed {
				return m, m.startFetch(selected)
			}
			return m, nil
		case "enter":
			// Confirm re-requests the explanation for the selected
			// abbreviation, so a failed or truncated stream can be retried.
			if match, ok := m.selection.Current(); ok {
				return m, m.startFetch(match.Abbreviation)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	m.input.SetValue(abbr.NormalizeKey(m.input.Value()))
	if m.input.Value() == before {
		return m, cmd
	}

	model, searchCmd := m.requery()
	return model, tea.Batch(cmd, searchCmd)
}

// requery recomputes the match results for the current input and applies
// the selection transition. This is the single place where a selection
// change triggers an explanation fetch.
func (m Model) requery() (Model, tea.Cmd) {
	results := m.index.Search(m.input.Value())
	selected, changed := m.selection.SetResults(results)
	if !changed {
		return m, nil
	}
	return m, m.startFetch(selected)
}

// startFetch supersedes any in-flight fetch and begins one for the given
// abbreviation. An empty abbreviation just clears the detail pane; an
// abbreviation with no known meaning short-circuits to a local message
// and never calls the remote service.
func (m *Model) startFetch(abbreviation string) tea.Cmd {
	m.abortFetch()
	m.gen++
	m.buffer = ""

	if abbreviation == "" {
		m.phase = explanationIdle
		return nil
	}

	meaning, ok := m.dict.Lookup(abbreviation)
	if !ok || meaning == "" {
		m.phase = explanationNotFound
		m.notFound = fmt.Sprintf("No meaning is known for %s.", abbreviation)
		return nil
	}

	m.phase = explanationLoading

	gen := m.gen
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	events := make(chan tea.Msg, 64)
	m.events = events

	go func() {
		defer close(events)
		// Nothing reads a superseded fetch's channel again, so every send
		// gives up once the fetch is canceled.
		send := func(msg tea.Msg) {
			select {
			case events <- msg:
			case <-ctx.Done():
			}
		}
		err := m.streamer.StreamExplanation(ctx, abbreviation, meaning, func(text string) {
			send(chunkMsg{gen: gen, text: text})
		})
		switch {
		case errors.Is(err, context.Canceled):
			// Superseded; silence, not failure.
		case err != nil:
			send(streamFailMsg{gen: gen, message: abbr.ErrorMessage(err)})
		default:
			send(streamDoneMsg{gen: gen})
		}
	}()

	return m.awaitStream()
}

// awaitStream waits for the next message from the live fetch.
func (m Model) awaitStream() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return msg
	}
}

// abortFetch cancels the in-flight fetch, if any.
func (m *Model) abortFetch() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}
