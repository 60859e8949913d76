package summary

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"hsl-agent/internal/config"
	"hsl-agent/internal/domain"
	"hsl-agent/internal/guideline"
	"hsl-agent/internal/prompt"
)

// Summary is a generated summary plus its downloadable form.
type Summary struct {
	Text   string
	Export domain.Artifact
}

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
		log:        logger.With().Str("component", "summary").Logger(),
	}
}

// Summarize rejects blank text before any provider call.
func (s *Service) Summarize(ctx context.Context, text string, opts domain.SummaryOptions) (Summary, error) {
	if strings.TrimSpace(text) == "" {
		return Summary{}, &domain.ValidationError{
			Field:   "text",
			Message: "Por favor, insira um texto para resumir",
		}
	}

	p, err := prompt.Summary(s.guidelines.Text(), text, opts)
	if err != nil {
		return Summary{}, &domain.ValidationError{Field: "verbosity", Message: err.Error()}
	}

	resp, err := s.generator.Generate(ctx, domain.GenerationRequest{
		Model:       s.cfg.Model,
		Prompt:      p,
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.MaxCompletionTokens,
	})
	if err != nil {
		s.log.Error().Err(err).Str("verbosity", string(opts.Verbosity)).Msg("generation failed")
		return Summary{}, &domain.GenerationError{Mode: domain.ModeSummary, Err: err}
	}

	return Summary{
		Text: resp,
		Export: domain.Artifact{
			Filename: domain.SummaryArtifactName,
			MIMEType: domain.SummaryArtifactMIME,
			Data:     []byte(resp),
		},
	}, nil
}
