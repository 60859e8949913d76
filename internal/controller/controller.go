// Package controller dispatches user requests for the three modes of a
// session. Each mode cycles Idle -> AwaitingResponse -> Idle on the session;
// the generation call blocks until the provider answers or fails.
package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"hsl-agent/internal/domain"
	"hsl-agent/internal/usecase/chat"
	"hsl-agent/internal/usecase/creative"
	"hsl-agent/internal/usecase/summary"
)

// Request is one of ChatRequest, CreativeBriefRequest or SummaryRequest.
type Request interface {
	Mode() domain.Mode
	sealed()
}

type ChatRequest struct {
	Text string
}

type CreativeBriefRequest struct {
	Brief string
	Kind  domain.CreativeKind
}

type SummaryRequest struct {
	Text    string
	Options domain.SummaryOptions
}

func (ChatRequest) Mode() domain.Mode          { return domain.ModeChat }
func (CreativeBriefRequest) Mode() domain.Mode { return domain.ModeCreativeBrief }
func (SummaryRequest) Mode() domain.Mode       { return domain.ModeSummary }

func (ChatRequest) sealed()          {}
func (CreativeBriefRequest) sealed() {}
func (SummaryRequest) sealed()       {}

// Result is what a front-end renders. Transcript is set for chat, Export for
// summaries.
type Result struct {
	Mode       domain.Mode
	Text       string
	Transcript []domain.Turn
	Export     *domain.Artifact
}

// ErrUnsupportedRequest is returned for a nil request or a type the
// controller does not dispatch.
var ErrUnsupportedRequest = errors.New("unsupported request")

type Controller struct {
	chat     *chat.Service
	creative *creative.Service
	summary  *summary.Service
	log      zerolog.Logger
}

func New(chatSvc *chat.Service, creativeSvc *creative.Service, summarySvc *summary.Service, logger zerolog.Logger) *Controller {
	return &Controller{
		chat:     chatSvc,
		creative: creativeSvc,
		summary:  summarySvc,
		log:      logger.With().Str("component", "controller").Logger(),
	}
}

// Submit runs req against session. The mode is back to Idle when Submit
// returns, whatever the outcome.
func (c *Controller) Submit(ctx context.Context, session *domain.Session, req Request) (Result, error) {
	if session == nil {
		return Result{}, domain.ErrSessionNotFound
	}
	if req == nil {
		return Result{}, ErrUnsupportedRequest
	}
	mode := req.Mode()
	if err := session.Begin(mode); err != nil {
		return Result{Mode: mode}, err
	}
	defer session.End(mode)

	c.log.Debug().Str("session", session.ID).Str("mode", string(mode)).Msg("request started")

	switch r := req.(type) {
	case ChatRequest:
		text, err := c.chat.HandleMessage(ctx, session.History, r.Text)
		return Result{
			Mode:       mode,
			Text:       text,
			Transcript: session.History.Turns(),
		}, err

	case CreativeBriefRequest:
		text, err := c.creative.Generate(ctx, r.Brief, r.Kind)
		return Result{Mode: mode, Text: text}, err

	case SummaryRequest:
		s, err := c.summary.Summarize(ctx, r.Text, r.Options)
		if err != nil {
			return Result{Mode: mode}, err
		}
		return Result{Mode: mode, Text: s.Text, Export: &s.Export}, nil
	}

	// reachable only through a type embedding one of the variants
	return Result{Mode: mode}, fmt.Errorf("%w: %T", ErrUnsupportedRequest, req)
}
