package openai

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	openaiapi "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"hsl-agent/internal/config"
	"hsl-agent/internal/domain"
)

// Client talks to any OpenAI-compatible chat completions endpoint. By
// default that is Gemini's compatibility layer.
type Client struct {
	api     *openaiapi.Client
	limiter *rate.Limiter
	log     zerolog.Logger
}

func NewClient(cfg config.Config, logger zerolog.Logger) *Client {
	apiCfg := openaiapi.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}
	if cfg.GenerationTimeout > 0 {
		apiCfg.HTTPClient = &http.Client{Timeout: cfg.GenerationTimeout}
	}

	c := &Client{
		api: openaiapi.NewClientWithConfig(apiCfg),
		log: logger.With().Str("component", "openai").Logger(),
	}
	if cfg.RatePerMinute > 0 {
		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RatePerMinute)), 1)
	}
	return c
}

// Generate sends req.Prompt as a single user message and returns the first
// choice. Failures are returned as is; nothing is retried.
func (c *Client) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("wait for rate limit: %w", err)
		}
	}

	apiReq := openaiapi.ChatCompletionRequest{
		Model:               req.Model,
		MaxCompletionTokens: req.MaxTokens,
		Stream:              false,
		Messages: []openaiapi.ChatCompletionMessage{{
			Role:    openaiapi.ChatMessageRoleUser,
			Content: req.Prompt,
		}},
	}
	if req.Temperature != nil {
		apiReq.Temperature = *req.Temperature
		// go-openai omits a zero temperature; the smallest float still encodes
		if apiReq.Temperature == 0 {
			apiReq.Temperature = math.SmallestNonzeroFloat32
		}
	}

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, apiReq)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("provider returned empty response")
	}

	c.log.Debug().
		Str("model", req.Model).
		Int("prompt_bytes", len(req.Prompt)).
		Int("prompt_tokens", resp.Usage.PromptTokens).
		Int("completion_tokens", resp.Usage.CompletionTokens).
		Dur("took", time.Since(start)).
		Msg("completion received")

	return resp.Choices[0].Message.Content, nil
}
