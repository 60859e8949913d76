// Package tui is the terminal front-end: one tab per mode, each with its own
// input and a spinner while the provider answers.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"hsl-agent/internal/controller"
	"hsl-agent/internal/domain"
)

type tab int

const (
	tabChat tab = iota
	tabCreative
	tabSummary
	tabCount
)

func (t tab) title() string {
	switch t {
	case tabCreative:
		return "Geração de Conteúdo"
	case tabSummary:
		return "Resumo de Texto"
	default:
		return "Chat"
	}
}

func (t tab) mode() domain.Mode {
	switch t {
	case tabCreative:
		return domain.ModeCreativeBrief
	case tabSummary:
		return domain.ModeSummary
	default:
		return domain.ModeChat
	}
}

var verbosityCycle = []domain.Verbosity{
	domain.VerbosityExtensive,
	domain.VerbosityModerate,
	domain.VerbosityConcise,
}

// responseMsg carries the outcome of one Submit back to Update.
type responseMsg struct {
	tab tab
	res controller.Result
	err error
}

type Model struct {
	ctx       context.Context
	ctrl      *controller.Controller
	sessions  domain.SessionStore
	session   *domain.Session
	exportDir string
	log       zerolog.Logger

	active  tab
	inputs  [tabCount]textarea.Model
	spinner spinner.Model
	pending [tabCount]bool
	errs    [tabCount]string
	notice  string

	transcript   []domain.Turn
	creativeText string
	summaryText  string
	export       *domain.Artifact

	kind domain.CreativeKind
	opts domain.SummaryOptions

	width  int
	height int
}

// New opens a fresh session in sessions. Summary exports are written to
// exportDir.
func New(ctx context.Context, ctrl *controller.Controller, sessions domain.SessionStore, exportDir string, logger zerolog.Logger) *Model {
	m := &Model{
		ctx:       ctx,
		ctrl:      ctrl,
		sessions:  sessions,
		session:   sessions.Create(),
		exportDir: exportDir,
		log:       logger.With().Str("component", "tui").Logger(),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(optionStyle)),
		kind:      domain.CreativeVisualGuide,
		opts:      domain.DefaultSummaryOptions(),
		width:     80,
		height:    24,
	}

	placeholders := [tabCount]string{
		tabChat:     "Digite sua pergunta...",
		tabCreative: "Descreva o briefing da campanha...",
		tabSummary:  "Cole aqui o texto a ser resumido...",
	}
	for i := range m.inputs {
		ta := textarea.New()
		ta.Placeholder = placeholders[i]
		ta.ShowLineNumbers = false
		ta.KeyMap.InsertNewline = keys.Newline
		ta.SetWidth(m.width - 4)
		ta.SetHeight(4)
		m.inputs[i] = ta
	}
	m.inputs[m.active].Focus()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for i := range m.inputs {
			m.inputs[i].SetWidth(max(msg.Width-4, 20))
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case responseMsg:
		m.handleResponse(msg)
		return m, nil

	case spinner.TickMsg:
		if !m.anyPending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.inputs[m.active], cmd = m.inputs[m.active].Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.NextTab):
		m.switchTab((m.active + 1) % tabCount)
		return m, nil

	case key.Matches(msg, keys.PrevTab):
		m.switchTab((m.active + tabCount - 1) % tabCount)
		return m, nil

	case key.Matches(msg, keys.Submit):
		return m, m.submit()

	case key.Matches(msg, keys.Kind) && m.active == tabCreative:
		if m.kind == domain.CreativeVisualGuide {
			m.kind = domain.CreativeCopywriting
		} else {
			m.kind = domain.CreativeVisualGuide
		}
		return m, nil

	case key.Matches(msg, keys.Verbosity) && m.active == tabSummary:
		m.opts.Verbosity = nextVerbosity(m.opts.Verbosity)
		return m, nil

	case key.Matches(msg, keys.Bullets) && m.active == tabSummary:
		m.opts.BulletPoints = !m.opts.BulletPoints
		return m, nil

	case key.Matches(msg, keys.Terminology) && m.active == tabSummary:
		m.opts.PreserveTerminology = !m.opts.PreserveTerminology
		return m, nil

	case key.Matches(msg, keys.Export) && m.active == tabSummary:
		m.exportSummary()
		return m, nil

	case key.Matches(msg, keys.Reset) && m.active == tabChat:
		m.resetChat()
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.active], cmd = m.inputs[m.active].Update(msg)
	return m, cmd
}

func (m *Model) switchTab(t tab) {
	m.inputs[m.active].Blur()
	m.active = t
	m.inputs[m.active].Focus()
	m.notice = ""
}

// submit starts a request for the active tab. A tab already waiting keeps
// its input and reports busy.
func (m *Model) submit() tea.Cmd {
	t := m.active
	if m.pending[t] {
		m.errs[t] = "Aguarde a resposta anterior."
		return nil
	}

	text := m.inputs[t].Value()
	var req controller.Request
	switch t {
	case tabChat:
		req = controller.ChatRequest{Text: text}
		m.inputs[t].Reset()
		// shown right away; replaced by the stored history once the answer arrives
		if strings.TrimSpace(text) != "" {
			m.transcript = append(m.session.History.Turns(), domain.Turn{
				Role:      domain.RoleUser,
				Content:   text,
				Timestamp: time.Now(),
			})
		}
	case tabCreative:
		req = controller.CreativeBriefRequest{Brief: text, Kind: m.kind}
	case tabSummary:
		req = controller.SummaryRequest{Text: text, Options: m.opts}
	}

	m.pending[t] = true
	m.errs[t] = ""
	m.notice = ""
	return tea.Batch(m.spinner.Tick, m.generate(t, req))
}

func (m *Model) generate(t tab, req controller.Request) tea.Cmd {
	session := m.session
	return func() tea.Msg {
		res, err := m.ctrl.Submit(m.ctx, session, req)
		return responseMsg{tab: t, res: res, err: err}
	}
}

func (m *Model) handleResponse(msg responseMsg) {
	m.pending[msg.tab] = false

	if msg.tab == tabChat {
		m.transcript = m.session.History.Turns()
	}
	if msg.err != nil {
		m.log.Error().Err(msg.err).Str("mode", string(msg.tab.mode())).Msg("request failed")
		m.errs[msg.tab] = errorText(msg.err)
		return
	}

	switch msg.tab {
	case tabCreative:
		m.creativeText = msg.res.Text
	case tabSummary:
		m.summaryText = msg.res.Text
		m.export = msg.res.Export
	}
}

func (m *Model) exportSummary() {
	if m.export == nil {
		m.errs[tabSummary] = "Gere um resumo antes de exportar."
		return
	}
	path := filepath.Join(m.exportDir, m.export.Filename)
	if err := os.WriteFile(path, m.export.Data, 0o644); err != nil {
		m.log.Error().Err(err).Str("path", path).Msg("export failed")
		m.errs[tabSummary] = "Não foi possível salvar o arquivo: " + err.Error()
		return
	}
	m.errs[tabSummary] = ""
	m.notice = "Resumo salvo em " + path
}

func (m *Model) resetChat() {
	if m.pending[tabChat] {
		m.errs[tabChat] = "Aguarde a resposta anterior."
		return
	}
	if err := m.sessions.Destroy(m.session.ID); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		m.log.Error().Err(err).Msg("failed to destroy session")
	}
	m.session = m.sessions.Create()
	m.transcript = nil
	m.errs[tabChat] = ""
	m.notice = "Conversa reiniciada."
}

func (m *Model) anyPending() bool {
	for _, p := range m.pending {
		if p {
			return true
		}
	}
	return false
}

func nextVerbosity(v domain.Verbosity) domain.Verbosity {
	for i, c := range verbosityCycle {
		if c == v {
			return verbosityCycle[(i+1)%len(verbosityCycle)]
		}
	}
	return domain.VerbosityModerate
}

func errorText(err error) string {
	var (
		vErr   *domain.ValidationError
		genErr *domain.GenerationError
	)
	switch {
	case errors.As(err, &vErr):
		return vErr.Message
	case errors.Is(err, domain.ErrBusy):
		return "Aguarde a resposta anterior."
	case errors.As(err, &genErr):
		return fmt.Sprintf("Erro ao gerar resposta: %v", genErr.Err)
	}
	return err.Error()
}
