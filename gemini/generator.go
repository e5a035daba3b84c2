// Package gemini generates abbreviation explanations using Google Gemini.
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/shigekazukoya/abbr"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Generator implements abbr.ExplanationGenerator at compile time.
var _ abbr.ExplanationGenerator = (*Generator)(nil)

// Generator implements abbr.ExplanationGenerator using Google Gemini.
type Generator struct {
	client *genai.Client
	model  string
}

// NewGenerator creates a new Generator. An empty model selects DefaultModel.
func NewGenerator(client *genai.Client, model string) *Generator {
	if model == "" {
		model = DefaultModel
	}
	return &Generator{client: client, model: model}
}

// GenerateExplanation streams an explanation of the meaning, emitting each
// text chunk as Gemini produces it.
func (g *Generator) GenerateExplanation(ctx context.Context, abbreviation, meaning string, emit func(text string) error) error {
	if meaning == "" {
		return abbr.Errorf(abbr.EINVALID, "meaning required")
	}

	prompt := BuildUserPrompt(abbreviation, meaning)
	config := BuildConfig()

	for resp, err := range g.client.Models.GenerateContentStream(ctx, g.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	) {
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return abbr.Errorf(abbr.EUNAVAILABLE, "explanation generation failed")
		}
		if text := resp.Text(); text != "" {
			if err := emit(text); err != nil {
				return err
			}
		}
	}
	return nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a helpful assistant explaining abbreviations. Given an abbreviation and its expanded meaning, explain briefly what it refers to and where it is commonly used. Answer in Markdown.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the user prompt for an abbreviation explanation.
func BuildUserPrompt(abbreviation, meaning string) string {
	if abbreviation == "" {
		return fmt.Sprintf("Explain %q.", meaning)
	}
	return fmt.Sprintf("Explain %q (short for %q).", abbreviation, meaning)
}
