package mock

import (
	"context"

	"github.com/shigekazukoya/abbr"
)

var _ abbr.ExplanationGenerator = (*ExplanationGenerator)(nil)

// ExplanationGenerator is a mock implementation of abbr.ExplanationGenerator.
type ExplanationGenerator struct {
	GenerateExplanationFn func(ctx context.Context, abbreviation, meaning string, emit func(text string) error) error
}

func (g *ExplanationGenerator) GenerateExplanation(ctx context.Context, abbreviation, meaning string, emit func(text string) error) error {
	return g.GenerateExplanationFn(ctx, abbreviation, meaning, emit)
}
