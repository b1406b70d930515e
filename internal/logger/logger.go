package logger

import (
	"io"
	"os"
	"time"

	"foodie/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// グローバルのzerologを設定する。
// 開発時は読みやすいコンソール出力、本番はJSON。
func Setup(cfg config.Config) {
	SetupWithWriter(cfg, os.Stderr)
}

func SetupWithWriter(cfg config.Config, w io.Writer) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	out := w
	if !cfg.IsProduction() {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Str("service", "foodie-api").Logger()
}
