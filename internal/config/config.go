package config

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	// DefaultBaseURL is Gemini's OpenAI-compatible endpoint.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
	DefaultModel   = "gemini-1.5-flash"
)

type Config struct {
	APIKey              string
	BaseURL             string
	Model               string
	Temperature         *float32
	MaxCompletionTokens int
	GenerationTimeout   time.Duration
	RatePerMinute       int
	GuidelinesPath      string
	HistoryWindow       int
	HTTPPort            int
	TelegramToken       string
	AdminUserIDs        []int64
	AllowedUserIDs      []int64
	LogLevel            string
}

// Load reads an optional dotenv file at path and then the process environment.
// Environment variables win over the file.
func Load(path string) (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("could not read env file")
		}
	}

	cfg := Config{
		BaseURL:             v.GetString("GENERATION_BASE_URL"),
		Model:               v.GetString("GENERATION_MODEL"),
		MaxCompletionTokens: intOrDefault(v, "MAX_TOKENS", 4096),
		GenerationTimeout:   time.Duration(intOrDefault(v, "GENERATION_TIMEOUT_SECONDS", 120)) * time.Second,
		RatePerMinute:       intOrDefault(v, "GENERATION_RATE_PER_MINUTE", 0),
		GuidelinesPath:      v.GetString("GUIDELINES_PATH"),
		HistoryWindow:       intOrDefault(v, "HISTORY_WINDOW", 0),
		HTTPPort:            intOrDefault(v, "HTTP_PORT", 8080),
		TelegramToken:       v.GetString("TELEGRAM_BOT_TOKEN"),
		LogLevel:            v.GetString("LOG_LEVEL"),
	}
	cfg.Temperature = optionalFloat(v, "GENERATION_TEMPERATURE")

	cfg.APIKey = v.GetString("GEM_API_KEY")
	if cfg.APIKey == "" {
		cfg.APIKey = v.GetString("OPENAI_API_KEY")
	}
	if cfg.APIKey == "" {
		return cfg, errors.New("GEM_API_KEY or OPENAI_API_KEY is required")
	}

	cfg.AdminUserIDs = parseIDs(v.GetString("ADMIN_USER_IDS"))
	cfg.AllowedUserIDs = parseIDs(v.GetString("ALLOWED_TELEGRAM_USER_IDS"))

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("GENERATION_BASE_URL", DefaultBaseURL)
	v.SetDefault("GENERATION_MODEL", DefaultModel)
	v.SetDefault("GUIDELINES_PATH", "data.txt")
	v.SetDefault("LOG_LEVEL", "info")
}

func parseIDs(raw string) []int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			log.Warn().Err(err).Str("value", p).Msg("skipping user id")
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func intOrDefault(v *viper.Viper, key string, def int) int {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Warn().Str("key", key).Str("value", raw).Int("default", def).Msg("invalid int, using default")
		return def
	}
	return n
}

func optionalFloat(v *viper.Viper, key string) *float32 {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 32)
	if err != nil {
		log.Warn().Str("key", key).Str("value", raw).Msg("invalid float, using provider default")
		return nil
	}
	t := float32(f)
	return &t
}
