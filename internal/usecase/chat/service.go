package chat

import (
	"context"
	"strings"
	"time"

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
	now        func() time.Time
}

func NewService(generator domain.Generator, guidelines guideline.Document, cfg config.Config, logger zerolog.Logger) *Service {
	return &Service{
		generator:  generator,
		guidelines: guidelines,
		cfg:        cfg,
		log:        logger.With().Str("component", "chat").Logger(),
		now:        time.Now,
	}
}

// HandleMessage records text as a user turn, asks the provider for the next
// assistant turn and records it. When the provider fails the user turn stays
// in history unanswered and a *domain.GenerationError is returned.
func (s *Service) HandleMessage(ctx context.Context, history *domain.History, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", &domain.ValidationError{Field: "message", Message: "digite uma mensagem"}
	}

	history.Append(domain.Turn{
		Role:      domain.RoleUser,
		Content:   text,
		Timestamp: s.now(),
	})

	turns := history.Last(s.cfg.HistoryWindow)
	resp, err := s.generator.Generate(ctx, domain.GenerationRequest{
		Model:       s.cfg.Model,
		Prompt:      prompt.Chat(s.guidelines.Text(), turns),
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.MaxCompletionTokens,
	})
	if err != nil {
		s.log.Error().Err(err).Int("history_len", history.Len()).Msg("generation failed")
		return "", &domain.GenerationError{Mode: domain.ModeChat, Err: err}
	}

	history.Append(domain.Turn{
		Role:      domain.RoleAssistant,
		Content:   resp,
		Timestamp: s.now(),
	})
	s.log.Debug().Int("history_len", history.Len()).Int("window", len(turns)).Msg("reply recorded")

	return resp, nil
}
