package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	advisoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	headerStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	paneStyle     = lipgloss.NewStyle().Padding(0, 1)
)

// View renders the search UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Abbreviation Search"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	left := paneStyle.Width(m.width / 2).Render(m.viewResults())
	right := paneStyle.Width(m.width - m.width/2).Render(m.viewDetail())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("↑/↓ navigate · enter re-request · esc quit"))
	return b.String()
}

// viewResults renders the ranked candidate list or a status line.
func (m Model) viewResults() string {
	if m.syncing {
		return dimStyle.Render("Loading dictionary...")
	}

	var b strings.Builder
	if m.syncErr != "" {
		b.WriteString(advisoryStyle.Render(m.syncErr))
		b.WriteString("\n\n")
	}

	if m.input.Value() == "" {
		b.WriteString(dimStyle.Render("Type an abbreviation to see candidates."))
		return b.String()
	}

	results := m.selection.Results()
	if len(results) == 0 {
		b.WriteString(dimStyle.Render("No matching abbreviations."))
		return b.String()
	}

	for i, match := range results {
		meaning, _ := m.dict.Lookup(match.Abbreviation)
		line := fmt.Sprintf("%-8s %s  %.2f%%", match.Abbreviation, meaning, match.Similarity())
		if i == m.selection.Index() {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// viewDetail renders the explanation pane for the selected abbreviation.
func (m Model) viewDetail() string {
	match, ok := m.selection.Current()
	if !ok {
		return ""
	}

	meaning, _ := m.dict.Lookup(match.Abbreviation)
	header := headerStyle.Render(fmt.Sprintf("%s: %s", match.Abbreviation, meaning))

	var body string
	switch m.phase {
	case explanationLoading:
		body = dimStyle.Render("Waiting for the explanation...")
	case explanationStreaming, explanationComplete:
		body = m.renderMarkdown(m.buffer)
	case explanationFailed:
		body = errorStyle.Render(m.buffer)
	case explanationNotFound:
		body = dimStyle.Render(m.notFound)
	}

	return header + "\n\n" + body
}

// renderMarkdown formats the buffer as rich text, falling back to the raw
// text when rendering fails.
func (m Model) renderMarkdown(text string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(m.width-m.width/2-4),
	)
	if err != nil {
		return text
	}
	out, err := renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}
