package telegram

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc"

	"hsl-agent/internal/config"
	"hsl-agent/internal/controller"
	"hsl-agent/internal/domain"
)

const (
	chunkSize      = 2048
	typingInterval = 4 * time.Second

	greetingText = "Olá! Sou o assistente de comunicação do Hospital Sírio-Libanês.\n\n" +
		"Envie uma mensagem para conversar, ou use:\n" +
		"/visual <briefing> para um guia visual\n" +
		"/copy <briefing> para textos de campanha\n" +
		"/resumo [-extenso|-moderado|-conciso] [-sem-topicos] [-simplificar] <texto> para resumir\n" +
		"/reset para apagar o histórico"
	resetText     = "Histórico apagado. Podemos começar de novo."
	busyText      = "Ainda estou processando sua solicitação anterior. Aguarde um momento."
	failureText   = "Erro ao gerar resposta. Tente novamente mais tarde."
	unexpectedErr = "Ocorreu um erro inesperado."
	denyText      = "Acesso negado."
)

type Bot struct {
	api      *tgbotapi.BotAPI
	cfg      config.Config
	ctrl     *controller.Controller
	sessions domain.SessionStore
	log      zerolog.Logger
	wg       conc.WaitGroup
}

func NewBot(cfg config.Config, ctrl *controller.Controller, sessions domain.SessionStore, logger zerolog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, err
	}

	return &Bot{
		api:      api,
		cfg:      cfg,
		ctrl:     ctrl,
		sessions: sessions,
		log:      logger.With().Str("component", "telegram").Logger(),
	}, nil
}

// Run polls for updates until ctx is cancelled, then waits for in-flight
// handlers to finish.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	b.log.Info().Str("bot", b.api.Self.UserName).Msg("telegram bot started")

	defer b.wg.Wait()
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			msg := update.Message
			if msg == nil || msg.From == nil {
				continue
			}
			b.wg.Go(func() { b.handleMessage(ctx, msg) })
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if !isAllowedUser(msg.From.ID, b.cfg) {
		b.log.Warn().Int64("user", msg.From.ID).Msg("user not allowed")
		b.sendText(chatID, msg.MessageID, denyText)
		return
	}

	cmd := parseCommand(msg.Text)
	switch cmd.kind {
	case commandStart, commandHelp:
		b.sendText(chatID, msg.MessageID, greetingText)
		return
	case commandReset:
		if err := b.sessions.Destroy(sessionKey(chatID)); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
			b.log.Error().Err(err).Int64("chat", chatID).Msg("failed to reset session")
		}
		b.sendText(chatID, msg.MessageID, resetText)
		return
	}

	sess := b.sessions.Open(sessionKey(chatID))

	stopTyping := b.keepTyping(ctx, chatID)
	res, err := b.ctrl.Submit(ctx, sess, cmd.req)
	stopTyping()

	if err != nil {
		b.log.Error().Err(err).Int64("chat", chatID).Str("mode", string(cmd.req.Mode())).Msg("request failed")
		b.sendText(chatID, msg.MessageID, userMessage(err))
		return
	}

	if res.Export != nil {
		b.sendText(chatID, msg.MessageID, res.Text)
		if err := b.sendDocument(chatID, msg.MessageID, *res.Export); err != nil {
			b.log.Error().Err(err).Msg("failed to send summary file")
		}
		return
	}

	if shouldSendAsFile(res.Text) {
		doc := domain.Artifact{Filename: "resposta.md", MIMEType: "text/markdown", Data: []byte(res.Text)}
		err := b.sendDocument(chatID, msg.MessageID, doc)
		if err == nil {
			return
		}
		b.log.Error().Err(err).Msg("failed to send file, falling back to text")
	}

	b.sendText(chatID, msg.MessageID, res.Text)
}

// userMessage renders err for the chat. Validation messages are already
// written for users.
func userMessage(err error) string {
	var (
		vErr   *domain.ValidationError
		genErr *domain.GenerationError
	)
	switch {
	case errors.As(err, &vErr):
		return vErr.Message
	case errors.Is(err, domain.ErrBusy):
		return busyText
	case errors.As(err, &genErr):
		return failureText
	}
	return unexpectedErr
}

func (b *Bot) sendText(chatID int64, replyTo int, text string) {
	for idx, chunk := range splitText(text, chunkSize) {
		msg := tgbotapi.NewMessage(chatID, chunk)
		msg.ParseMode = tgbotapi.ModeMarkdown
		if idx == 0 {
			msg.ReplyToMessageID = replyTo
		}
		if _, err := b.api.Send(msg); err != nil {
			// model output is not always valid Markdown
			msg.ParseMode = ""
			if _, err := b.api.Send(msg); err != nil {
				b.log.Error().Err(err).Int64("chat", chatID).Msg("failed to send reply")
			}
		}
	}
}

// keepTyping repeats the typing action until the returned func is called.
func (b *Bot) keepTyping(ctx context.Context, chatID int64) func() {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(typingInterval)
		defer ticker.Stop()
		for {
			b.sendChatAction(chatID)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
	return func() {
		cancel()
		<-done
	}
}

func (b *Bot) sendChatAction(chatID int64) {
	if _, err := b.api.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		b.log.Debug().Err(err).Msg("failed to send chat action")
	}
}

func (b *Bot) sendDocument(chatID int64, replyTo int, a domain.Artifact) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  a.Filename,
		Bytes: a.Data,
	})
	doc.ReplyToMessageID = replyTo

	_, err := b.api.Send(doc)
	return err
}

func sessionKey(chatID int64) string {
	return "telegram:" + strconv.FormatInt(chatID, 10)
}

func shouldSendAsFile(text string) bool {
	return len([]rune(text)) > chunkSize
}

func isAllowedUser(userID int64, cfg config.Config) bool {
	if slices.Contains(cfg.AdminUserIDs, userID) {
		return true
	}
	if len(cfg.AllowedUserIDs) == 0 {
		return true
	}
	return slices.Contains(cfg.AllowedUserIDs, userID)
}

func splitText(text string, size int) []string {
	if size <= 0 {
		return []string{text}
	}

	runes := []rune(text)
	if len(runes) <= size {
		return []string{text}
	}

	chunks := make([]string, 0, len(runes)/size+1)
	for start := 0; start < len(runes); start += size {
		end := min(start+size, len(runes))
		chunks = append(chunks, string(runes[start:end]))
	}

	return chunks
}
