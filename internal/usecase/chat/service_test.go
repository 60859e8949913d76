package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hsl-agent/internal/config"
	"hsl-agent/internal/domain"
	"hsl-agent/internal/domain/domaintest"
	"hsl-agent/internal/guideline"
)

func newService(gen domain.Generator, cfg config.Config) *Service {
	cfg.Model = "test-model"
	return NewService(gen, guideline.NewDocument("DIRETRIZES HSL"), cfg, zerolog.Nop())
}

func TestHandleMessage_Success(t *testing.T) {
	gen := &domaintest.Generator{Reply: "Das 8h às 20h."}
	svc := newService(gen, config.Config{})
	history := domain.NewHistory()

	resp, err := svc.HandleMessage(context.Background(), history, "What are your visiting hours?")
	require.NoError(t, err)
	assert.Equal(t, "Das 8h às 20h.", resp)

	turns := history.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, domain.RoleUser, turns[0].Role)
	assert.Equal(t, "What are your visiting hours?", turns[0].Content)
	assert.Equal(t, domain.RoleAssistant, turns[1].Role)
	assert.Equal(t, "Das 8h às 20h.", turns[1].Content)

	require.Equal(t, 1, gen.Calls())
	req := gen.Requests()[0]
	assert.Equal(t, "test-model", req.Model)
	assert.Contains(t, req.Prompt, "DIRETRIZES HSL")
	assert.Contains(t, req.Prompt, "user: What are your visiting hours?")
	assert.NotContains(t, req.Prompt, "assistant:")
}

func TestHandleMessage_FailureKeepsUserTurn(t *testing.T) {
	gen := &domaintest.Generator{Err: errors.New("quota exceeded")}
	svc := newService(gen, config.Config{})
	history := domain.NewHistory()

	_, err := svc.HandleMessage(context.Background(), history, "oi")

	var genErr *domain.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, domain.ModeChat, genErr.Mode)
	require.Equal(t, 1, history.Len())
	assert.Equal(t, domain.RoleUser, history.Turns()[0].Role)
}

func TestHandleMessage_RetryResendsUnansweredTurn(t *testing.T) {
	gen := &domaintest.Generator{Err: errors.New("timeout")}
	svc := newService(gen, config.Config{})
	history := domain.NewHistory()

	_, err := svc.HandleMessage(context.Background(), history, "primeira")
	require.Error(t, err)

	gen.Err = nil
	gen.Reply = "ok"
	_, err = svc.HandleMessage(context.Background(), history, "segunda")
	require.NoError(t, err)

	assert.Contains(t, gen.LastPrompt(), "user: primeira\nuser: segunda")
	assert.Equal(t, 3, history.Len())
}

func TestHandleMessage_BlankIsRejected(t *testing.T) {
	gen := &domaintest.Generator{Reply: "x"}
	svc := newService(gen, config.Config{})
	history := domain.NewHistory()

	_, err := svc.HandleMessage(context.Background(), history, "   \n\t")

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, 0, history.Len())
	assert.Equal(t, 0, gen.Calls())
}

func TestHandleMessage_HistoryWindow(t *testing.T) {
	gen := &domaintest.Generator{Reply: "r"}
	svc := newService(gen, config.Config{HistoryWindow: 2})
	history := domain.NewHistory()

	for _, msg := range []string{"um", "dois", "três"} {
		_, err := svc.HandleMessage(context.Background(), history, msg)
		require.NoError(t, err)
	}

	p := gen.LastPrompt()
	assert.NotContains(t, p, "user: um")
	assert.NotContains(t, p, "user: dois")
	assert.Contains(t, p, "assistant: r\nuser: três")
	assert.Equal(t, 6, history.Len(), "the window never truncates history")
}
