// Package mcptools exposes the three modes as MCP tools over stdio, with the
// guideline document as a resource.
package mcptools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"hsl-agent/internal/controller"
	"hsl-agent/internal/domain"
	"hsl-agent/internal/guideline"
)

const guidelinesURI = "hsl://guidelines"

type Server struct {
	version    string
	ctrl       *controller.Controller
	sessions   domain.SessionStore
	guidelines guideline.Document
	log        zerolog.Logger
}

func New(version string, ctrl *controller.Controller, sessions domain.SessionStore, guidelines guideline.Document, logger zerolog.Logger) *Server {
	return &Server{
		version:    version,
		ctrl:       ctrl,
		sessions:   sessions,
		guidelines: guidelines,
		log:        logger.With().Str("component", "mcp").Logger(),
	}
}

// Serve runs the MCP server on stdio and blocks until the client disconnects.
func (s *Server) Serve() error {
	return mcpserver.ServeStdio(s.build())
}

func (s *Server) build() *mcpserver.MCPServer {
	srv := mcpserver.NewMCPServer(
		"hsl-agent",
		s.version,
		mcpserver.WithRecovery(),
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithResourceCapabilities(false, false),
	)
	s.registerTools(srv)
	s.registerResources(srv)
	return srv
}

func (s *Server) registerTools(srv *mcpserver.MCPServer) {
	srv.AddTool(
		mcp.NewTool("chat",
			mcp.WithDescription("Ask the HSL communication assistant a question. Turns are kept per session_id."),
			mcp.WithString("session_id",
				mcp.Description("Conversation identifier chosen by the caller"),
				mcp.Required(),
			),
			mcp.WithString("message",
				mcp.Description("User message"),
				mcp.Required(),
			),
		),
		s.handleChat,
	)

	srv.AddTool(
		mcp.NewTool("creative_brief",
			mcp.WithDescription("Turn a campaign brief into a visual guide or a copywriting package aligned with HSL guidelines"),
			mcp.WithString("brief",
				mcp.Description("Campaign brief"),
				mcp.Required(),
			),
			mcp.WithString("kind",
				mcp.Description("visual or copy"),
				mcp.Enum("visual", "copy"),
				mcp.DefaultString("visual"),
			),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		s.handleCreativeBrief,
	)

	srv.AddTool(
		mcp.NewTool("summarize",
			mcp.WithDescription("Summarize a text in HSL's institutional voice"),
			mcp.WithString("text",
				mcp.Description("Text to summarize"),
				mcp.Required(),
			),
			mcp.WithString("verbosity",
				mcp.Description("Summary length"),
				mcp.Enum("extensive", "moderate", "concise"),
				mcp.DefaultString("moderate"),
			),
			mcp.WithBoolean("bullet_points",
				mcp.Description("Structure the summary as bullet points"),
				mcp.DefaultBool(true),
			),
			mcp.WithBoolean("preserve_terminology",
				mcp.Description("Keep technical terms instead of simplifying them"),
				mcp.DefaultBool(true),
			),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		s.handleSummarize,
	)
}

func (s *Server) registerResources(srv *mcpserver.MCPServer) {
	srv.AddResource(
		mcp.NewResource(guidelinesURI, "HSL Guidelines",
			mcp.WithResourceDescription("Communication guidelines every answer is grounded on"),
			mcp.WithMIMEType("text/plain"),
		),
		s.handleResourceGuidelines,
	)
}

func (s *Server) handleChat(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("missing required argument: session_id"), nil
	}
	message, err := request.RequireString("message")
	if err != nil {
		return mcp.NewToolResultError("missing required argument: message"), nil
	}

	sess := s.sessions.Open("mcp:" + id)
	res, err := s.ctrl.Submit(context.WithoutCancel(ctx), sess, controller.ChatRequest{Text: message})
	if err != nil {
		return s.toolError(err), nil
	}
	return mcp.NewToolResultText(res.Text), nil
}

func (s *Server) handleCreativeBrief(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	brief, err := request.RequireString("brief")
	if err != nil {
		return mcp.NewToolResultError("missing required argument: brief"), nil
	}
	kind, err := domain.ParseCreativeKind(request.GetString("kind", "visual"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := s.submitOnce(ctx, controller.CreativeBriefRequest{Brief: brief, Kind: kind})
	if err != nil {
		return s.toolError(err), nil
	}
	return mcp.NewToolResultText(res.Text), nil
}

func (s *Server) handleSummarize(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("missing required argument: text"), nil
	}
	verbosity, err := domain.ParseVerbosity(request.GetString("verbosity", string(domain.VerbosityModerate)))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	opts := domain.SummaryOptions{
		Verbosity:           verbosity,
		BulletPoints:        request.GetBool("bullet_points", true),
		PreserveTerminology: request.GetBool("preserve_terminology", true),
	}

	res, err := s.submitOnce(ctx, controller.SummaryRequest{Text: text, Options: opts})
	if err != nil {
		return s.toolError(err), nil
	}
	return mcp.NewToolResultText(res.Text), nil
}

// submitOnce runs a stateless request on a throwaway session so concurrent
// tool calls never see each other as busy. Like chat, it is not cancelled
// when the client cancels the call.
func (s *Server) submitOnce(ctx context.Context, req controller.Request) (controller.Result, error) {
	sess := s.sessions.Create()
	defer func() { _ = s.sessions.Destroy(sess.ID) }()
	return s.ctrl.Submit(context.WithoutCancel(ctx), sess, req)
}

func (s *Server) toolError(err error) *mcp.CallToolResult {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return mcp.NewToolResultError(vErr.Message)
	}
	s.log.Error().Err(err).Msg("tool call failed")
	return mcp.NewToolResultError(fmt.Sprintf("generation failed: %v", err))
}

func (s *Server) handleResourceGuidelines(_ context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "text/plain",
			Text:     s.guidelines.Text(),
		},
	}, nil
}
