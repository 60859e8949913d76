package creative

import (
	"context"

	"github.com/rs/zerolog"

	"hsl-agent/internal/config"
	"hsl-agent/internal/domain"
	"hsl-agent/internal/guideline"
	"hsl-agent/internal/prompt"
)

type Service struct {
	generator  domain.Generator
	guidelines guideline.Document
	cfg        config.Config
	log        zerolog.Logger
}

func NewService(generator domain.Generator, guidelines guideline.Document, cfg config.Config, logger zerolog.Logger) *Service {
	return &Service{
		generator:  generator,
		guidelines: guidelines,
		cfg:        cfg,
		log:        logger.With().Str("component", "creative").Logger(),
	}
}

// Generate produces a visual guide or a copywriting package for brief. The
// brief is not validated; an empty brief is sent as is.
func (s *Service) Generate(ctx context.Context, brief string, kind domain.CreativeKind) (string, error) {
	p, err := prompt.CreativeBrief(s.guidelines.Text(), brief, kind)
	if err != nil {
		return "", &domain.ValidationError{Field: "kind", Message: err.Error()}
	}

	resp, err := s.generator.Generate(ctx, domain.GenerationRequest{
		Model:       s.cfg.Model,
		Prompt:      p,
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.MaxCompletionTokens,
	})
	if err != nil {
		s.log.Error().Err(err).Str("kind", string(kind)).Msg("generation failed")
		return "", &domain.GenerationError{Mode: domain.ModeCreativeBrief, Err: err}
	}
	return resp, nil
}
