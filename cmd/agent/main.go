package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"hsl-agent/internal/adapter/httpapi"
	"hsl-agent/internal/adapter/mcptools"
	"hsl-agent/internal/adapter/memory"
	"hsl-agent/internal/adapter/openai"
	"hsl-agent/internal/adapter/telegram"
	"hsl-agent/internal/adapter/tui"
	"hsl-agent/internal/config"
	"hsl-agent/internal/controller"
	"hsl-agent/internal/guideline"
	"hsl-agent/internal/logging"
	"hsl-agent/internal/usecase/chat"
	"hsl-agent/internal/usecase/creative"
	"hsl-agent/internal/usecase/summary"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

// app is everything the front-ends share.
type app struct {
	cfg        config.Config
	guidelines guideline.Document
	ctrl       *controller.Controller
	sessions   *memory.Store
	log        zerolog.Logger
}

func run(args []string) int {
	fs := flag.NewFlagSet("hsl-agent", flag.ContinueOnError)

	var (
		envFile   string
		exportDir string
		logFile   string
	)
	fs.StringVar(&envFile, "env", ".env", "optional dotenv file")
	fs.StringVar(&exportDir, "export-dir", ".", "directory the TUI writes summary exports to")
	fs.StringVar(&logFile, "log-file", "hsl-agent.log", "log file used by the TUI")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: hsl-agent [flags] <command>\n\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  serve     HTTP API, plus the Telegram bot when TELEGRAM_BOT_TOKEN is set\n")
		fmt.Fprintf(os.Stderr, "  telegram  Telegram bot only\n")
		fmt.Fprintf(os.Stderr, "  tui       Terminal UI\n")
		fmt.Fprintf(os.Stderr, "  mcp       MCP server on stdio\n")
		fmt.Fprintf(os.Stderr, "  version   Print version and exit\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	command := "serve"
	if fs.NArg() > 0 {
		command = fs.Arg(0)
	}
	if command == "version" {
		fmt.Printf("hsl-agent %s\n", version)
		return 0
	}

	// stdout belongs to the protocol in mcp mode and to the screen in tui mode
	var logOut io.Writer = os.Stdout
	switch command {
	case "mcp":
		logOut = os.Stderr
	case "tui":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log file: %v\n", err)
			return 2
		}
		defer f.Close()
		logOut = f
	}
	log.Logger = logging.New(logOut, "info")

	a, err := newApp(envFile, logOut)
	if err != nil {
		log.Error().Err(err).Msg("startup failed")
		return 2
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	switch command {
	case "serve":
		err = a.serve(ctx, true)
	case "telegram":
		err = a.serve(ctx, false)
	case "tui":
		_, err = tea.NewProgram(tui.New(ctx, a.ctrl, a.sessions, exportDir, a.log), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	case "mcp":
		err = mcptools.New(version, a.ctrl, a.sessions, a.guidelines, a.log).Serve()
	default:
		fs.Usage()
		return 2
	}

	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, tea.ErrProgramKilled) {
		a.log.Error().Err(err).Str("command", command).Msg("stopped with error")
		return 1
	}
	a.log.Info().Str("command", command).Msg("shutdown")
	return 0
}

func newApp(envFile string, logOut io.Writer) (*app, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger := logging.New(logOut, cfg.LogLevel)
	log.Logger = logger

	doc, err := guideline.Load(cfg.GuidelinesPath)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("path", cfg.GuidelinesPath).Int("bytes", doc.Len()).Msg("guidelines loaded")

	client := openai.NewClient(cfg, logger)
	ctrl := controller.New(
		chat.NewService(client, doc, cfg, logger),
		creative.NewService(client, doc, cfg, logger),
		summary.NewService(client, doc, cfg, logger),
		logger,
	)

	return &app{
		cfg:        cfg,
		guidelines: doc,
		ctrl:       ctrl,
		sessions:   memory.NewStore(),
		log:        logger,
	}, nil
}

// serve runs the network front-ends until ctx is cancelled or one of them
// fails.
func (a *app) serve(ctx context.Context, withHTTP bool) error {
	g, gctx := errgroup.WithContext(ctx)

	if withHTTP {
		srv := httpapi.NewServer(a.cfg.HTTPPort, a.ctrl, a.sessions, a.log)
		g.Go(func() error { return srv.Run(gctx) })
	}

	if a.cfg.TelegramToken != "" {
		bot, err := telegram.NewBot(a.cfg, a.ctrl, a.sessions, a.log)
		if err != nil {
			return fmt.Errorf("init telegram bot: %w", err)
		}
		g.Go(func() error { return bot.Run(gctx) })
	} else if !withHTTP {
		return errors.New("TELEGRAM_BOT_TOKEN is required for the telegram command")
	}

	return g.Wait()
}
