package ai

import (
	"context"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/theworkedge/contract-scout/internal/samgov"
	"github.com/theworkedge/contract-scout/internal/track"
	"github.com/theworkedge/contract-scout/internal/util"
)

// Generator is the model-facing half of a Scorer. The Gemini and Anthropic
// subpackages both satisfy it.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Engine turns a raw content generator into a Scorer: it renders the track
// rubric, sends it, and parses the scorecard array back out.
type Engine struct {
	generator Generator
	logger    *zap.Logger
	maxLogLen int
}

const defaultMaxLogLength = 200

func NewEngine(generator Generator, logger *zap.Logger, maxLogLength int) *Engine {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Engine{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (e *Engine) Score(ctx context.Context, tr track.Track, opportunities *samgov.Opportunities) ([]*Scorecard, error) {
	if opportunities == nil || opportunities.Len() == 0 {
		return nil, nil
	}

	prompt, err := BuildPrompt(tr, opportunities)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("scoring request",
		zap.String("track", tr.Key),
		zap.String("model", e.generator.Model()),
		zap.Int("opportunities", opportunities.Len()),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", util.TruncateForLog(prompt, e.maxLogLen)),
	)

	raw, err := e.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("score %s track: %w", tr.Key, err)
	}

	e.logger.Debug("scoring response",
		zap.String("track", tr.Key),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", util.TruncateForLog(raw, e.maxLogLen)),
	)

	cards, err := ParseScorecards(raw, e.logger)
	if err != nil {
		return nil, fmt.Errorf("score %s track: %w", tr.Key, err)
	}

	e.logger.Info("track scored",
		zap.String("track", tr.Key),
		zap.Int("sent", opportunities.Len()),
		zap.Int("scored", len(cards)),
	)

	return cards, nil
}
