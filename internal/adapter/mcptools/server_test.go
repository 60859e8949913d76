package mcptools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hsl-agent/internal/adapter/memory"
	"hsl-agent/internal/config"
	"hsl-agent/internal/controller"
	"hsl-agent/internal/domain"
	"hsl-agent/internal/domain/domaintest"
	"hsl-agent/internal/guideline"
	"hsl-agent/internal/usecase/chat"
	"hsl-agent/internal/usecase/creative"
	"hsl-agent/internal/usecase/summary"
)

const guidelineText = "Diretrizes do HSL"

func newTestServer(gen domain.Generator) (*Server, *memory.Store) {
	doc := guideline.NewDocument(guidelineText)
	cfg := config.Config{Model: "m"}
	ctrl := controller.New(
		chat.NewService(gen, doc, cfg, zerolog.Nop()),
		creative.NewService(gen, doc, cfg, zerolog.Nop()),
		summary.NewService(gen, doc, cfg, zerolog.Nop()),
		zerolog.Nop(),
	)
	store := memory.NewStore()
	return New("test", ctrl, store, doc, zerolog.Nop()), store
}

func makeToolRequest(t *testing.T, name string, args map[string]any) mcp.CallToolRequest {
	t.Helper()
	argsJSON, err := json.Marshal(args)
	require.NoError(t, err)
	var raw any
	require.NoError(t, json.Unmarshal(argsJSON, &raw))
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: raw,
		},
	}
}

func toolResultText(result *mcp.CallToolResult) string {
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestChat_KeepsHistoryPerSession(t *testing.T) {
	gen := &domaintest.Generator{Reply: "Resposta"}
	s, store := newTestServer(gen)

	for _, msg := range []string{"primeira", "segunda"} {
		result, err := s.handleChat(context.Background(), makeToolRequest(t, "chat", map[string]any{
			"session_id": "abc",
			"message":    msg,
		}))
		require.NoError(t, err)
		require.False(t, result.IsError, toolResultText(result))
		assert.Equal(t, "Resposta", toolResultText(result))
	}

	sess, err := store.Get("mcp:abc")
	require.NoError(t, err)
	assert.Equal(t, 4, sess.History.Len())
	assert.Contains(t, gen.LastPrompt(), "user: primeira")
}

func TestChat_MissingArguments(t *testing.T) {
	s, _ := newTestServer(&domaintest.Generator{})

	result, err := s.handleChat(context.Background(), makeToolRequest(t, "chat", map[string]any{"message": "oi"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)

	result, err = s.handleChat(context.Background(), makeToolRequest(t, "chat", map[string]any{"session_id": "x"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestChat_BlankMessageIsToolError(t *testing.T) {
	gen := &domaintest.Generator{Reply: "x"}
	s, _ := newTestServer(gen)

	result, err := s.handleChat(context.Background(), makeToolRequest(t, "chat", map[string]any{
		"session_id": "abc",
		"message":    "  ",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, 0, gen.Calls())
}

func TestCreativeBrief(t *testing.T) {
	gen := &domaintest.Generator{Reply: "Headline"}
	s, store := newTestServer(gen)

	result, err := s.handleCreativeBrief(context.Background(), makeToolRequest(t, "creative_brief", map[string]any{
		"brief": "Campanha de doação de sangue",
		"kind":  "copy",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError, toolResultText(result))
	assert.Equal(t, "Headline", toolResultText(result))
	assert.Contains(t, gen.LastPrompt(), "Campanha de doação de sangue")
	assert.Equal(t, 0, store.Len())
}

func TestCreativeBrief_BadKind(t *testing.T) {
	gen := &domaintest.Generator{}
	s, _ := newTestServer(gen)

	result, err := s.handleCreativeBrief(context.Background(), makeToolRequest(t, "creative_brief", map[string]any{
		"brief": "b",
		"kind":  "poster",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, 0, gen.Calls())
}

func TestSummarize(t *testing.T) {
	gen := &domaintest.Generator{Reply: "Resumo"}
	s, _ := newTestServer(gen)

	result, err := s.handleSummarize(context.Background(), makeToolRequest(t, "summarize", map[string]any{
		"text":          "Um texto",
		"verbosity":     "concise",
		"bullet_points": false,
	}))
	require.NoError(t, err)
	require.False(t, result.IsError, toolResultText(result))
	assert.Equal(t, "Resumo", toolResultText(result))
	assert.Contains(t, gen.LastPrompt(), "10-15%")
}

func TestSummarize_Errors(t *testing.T) {
	tests := []struct {
		name string
		gen  *domaintest.Generator
		args map[string]any
		want string
	}{
		{
			name: "blank text",
			gen:  &domaintest.Generator{},
			args: map[string]any{"text": " "},
			want: "Por favor, insira um texto para resumir",
		},
		{
			name: "provider failure",
			gen:  &domaintest.Generator{Err: errors.New("quota")},
			args: map[string]any{"text": "abc"},
			want: "generation failed",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer(tt.gen)
			result, err := s.handleSummarize(context.Background(), makeToolRequest(t, "summarize", tt.args))
			require.NoError(t, err)
			assert.True(t, result.IsError)
			assert.Contains(t, toolResultText(result), tt.want)
		})
	}
}

func TestResourceGuidelines(t *testing.T) {
	s, _ := newTestServer(&domaintest.Generator{})

	contents, err := s.handleResourceGuidelines(context.Background(), mcp.ReadResourceRequest{
		Params: mcp.ReadResourceParams{URI: guidelinesURI},
	})
	require.NoError(t, err)
	require.Len(t, contents, 1)
	tc, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, guidelineText, tc.Text)
	assert.Equal(t, "text/plain", tc.MIMEType)
}

func TestChat_CancelledCallStillCompletes(t *testing.T) {
	gen := &domaintest.Generator{Reply: "Resposta", Block: make(chan struct{})}
	s, store := newTestServer(gen)

	ctx, cancel := context.WithCancel(context.Background())
	req := makeToolRequest(t, "chat", map[string]any{
		"session_id": "abc",
		"message":    "Oi",
	})
	done := make(chan *mcp.CallToolResult, 1)
	go func() {
		result, _ := s.handleChat(ctx, req)
		done <- result
	}()

	require.Eventually(t, func() bool { return gen.Calls() == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	time.Sleep(20 * time.Millisecond)
	close(gen.Block)

	result := <-done
	require.NotNil(t, result)
	assert.False(t, result.IsError, toolResultText(result))

	sess, err := store.Get("mcp:abc")
	require.NoError(t, err)
	assert.Equal(t, 2, sess.History.Len())
}
