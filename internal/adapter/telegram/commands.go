package telegram

import (
	"strings"
	"unicode"

	"hsl-agent/internal/controller"
	"hsl-agent/internal/domain"
)

type commandKind int

const (
	commandSubmit commandKind = iota
	commandStart
	commandReset
	commandHelp
)

type command struct {
	kind commandKind
	req  controller.Request
}

// parseCommand maps a message text to a command. Text that is not a command
// goes to the chat.
func parseCommand(text string) command {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return command{kind: commandSubmit, req: controller.ChatRequest{Text: text}}
	}

	name, args := cutToken(text)
	// commands in groups arrive as /cmd@BotName
	name, _, _ = strings.Cut(strings.ToLower(name), "@")

	switch name {
	case "/start":
		return command{kind: commandStart}
	case "/reset":
		return command{kind: commandReset}
	case "/visual":
		return command{kind: commandSubmit, req: controller.CreativeBriefRequest{
			Brief: args,
			Kind:  domain.CreativeVisualGuide,
		}}
	case "/copy":
		return command{kind: commandSubmit, req: controller.CreativeBriefRequest{
			Brief: args,
			Kind:  domain.CreativeCopywriting,
		}}
	case "/resumo":
		return command{kind: commandSubmit, req: parseSummary(args)}
	}
	return command{kind: commandHelp}
}

// parseSummary consumes leading dash options; "--" or the first word without a
// dash starts the source text.
func parseSummary(args string) controller.SummaryRequest {
	opts := domain.DefaultSummaryOptions()
	rest := args
	for rest != "" {
		tok, after := cutToken(rest)
		if tok == "--" {
			rest = after
			break
		}
		name, ok := strings.CutPrefix(strings.ToLower(tok), "-")
		if !ok {
			break
		}
		switch name {
		case "sem-topicos":
			opts.BulletPoints = false
		case "simplificar":
			opts.PreserveTerminology = false
		default:
			v, err := domain.ParseVerbosity(name)
			if err != nil {
				// unknown option: keep it as text
				return controller.SummaryRequest{Text: rest, Options: opts}
			}
			opts.Verbosity = v
		}
		rest = after
	}
	return controller.SummaryRequest{Text: rest, Options: opts}
}

// cutToken splits s at its first whitespace and trims both halves.
func cutToken(s string) (string, string) {
	s = strings.TrimSpace(s)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}
