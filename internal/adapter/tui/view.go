package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"hsl-agent/internal/domain"
)

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Agente de Comunicação HSL"))
	b.WriteString("\n\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	switch m.active {
	case tabChat:
		b.WriteString(m.renderChat())
	case tabCreative:
		b.WriteString(m.renderCreative())
	case tabSummary:
		b.WriteString(m.renderSummary())
	}

	b.WriteString("\n")
	b.WriteString(m.inputs[m.active].View())
	b.WriteString("\n")

	if m.pending[m.active] {
		b.WriteString(m.spinner.View() + " Gerando resposta...\n")
	}
	if e := m.errs[m.active]; e != "" {
		b.WriteString(errorStyle.Render(e) + "\n")
	}
	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.helpLine()))
	return b.String()
}

func (m *Model) renderTabs() string {
	tabs := make([]string, 0, tabCount)
	for t := range tabCount {
		style := tabStyle
		if t == m.active {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(t.title()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
}

func (m *Model) renderChat() string {
	if len(m.transcript) == 0 {
		return helpStyle.Render("Pergunte qualquer coisa sobre as diretrizes de comunicação do HSL.") + "\n"
	}

	lines := make([]string, 0, len(m.transcript))
	for _, t := range m.transcript {
		label := assistantStyle.Render("Assistente:")
		if t.Role == domain.RoleUser {
			label = userStyle.Render("Você:")
		}
		lines = append(lines, label+" "+t.Content)
	}
	out := strings.Join(lines, "\n\n")
	return tail(out, max(m.height-14, 5)) + "\n"
}

func (m *Model) renderCreative() string {
	var b strings.Builder
	b.WriteString("Tipo: ")
	b.WriteString(optionStyle.Render(kindLabel(m.kind)))
	b.WriteString("\n\n")
	if m.creativeText != "" {
		b.WriteString(tail(m.creativeText, max(m.height-14, 5)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderSummary() string {
	var b strings.Builder
	b.WriteString("Nível: ")
	b.WriteString(optionStyle.Render(verbosityLabel(m.opts.Verbosity)))
	b.WriteString("  Tópicos: ")
	b.WriteString(optionStyle.Render(onOff(m.opts.BulletPoints)))
	b.WriteString("  Termos técnicos: ")
	b.WriteString(optionStyle.Render(onOff(m.opts.PreserveTerminology)))
	b.WriteString("\n\n")
	if m.summaryText != "" {
		b.WriteString(tail(m.summaryText, max(m.height-14, 5)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) helpLine() string {
	bindings := []key.Binding{keys.Submit, keys.Newline, keys.NextTab}
	switch m.active {
	case tabChat:
		bindings = append(bindings, keys.Reset)
	case tabCreative:
		bindings = append(bindings, keys.Kind)
	case tabSummary:
		bindings = append(bindings, keys.Verbosity, keys.Bullets, keys.Terminology, keys.Export)
	}
	bindings = append(bindings, keys.Quit)

	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

// tail keeps the last n lines of s.
func tail(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[len(lines)-n:], "\n")
}

func kindLabel(k domain.CreativeKind) string {
	if k == domain.CreativeCopywriting {
		return "Copywriting"
	}
	return "Guia Visual"
}

func verbosityLabel(v domain.Verbosity) string {
	switch v {
	case domain.VerbosityExtensive:
		return "Extenso"
	case domain.VerbosityConcise:
		return "Conciso"
	default:
		return "Moderado"
	}
}

func onOff(b bool) string {
	if b {
		return "sim"
	}
	return "não"
}
