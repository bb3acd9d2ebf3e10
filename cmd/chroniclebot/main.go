package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/chronicle-cli/chronicle/internal/bot"
	"github.com/chronicle-cli/chronicle/internal/cryptox"
	"github.com/chronicle-cli/chronicle/internal/logging"
	"github.com/chronicle-cli/chronicle/internal/syncx"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := bot.ConfigFromEnv()
	if err != nil {
		log.Fatalf("%v", err)
	}

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatalf("connecting to telegram: %v", err)
	}

	key := cryptox.DeriveKey([]byte(cfg.Passphrase), cfg.Salt)
	defer cryptox.WipeKey(key)

	backend := syncx.NewGistBackend(cfg.GistID, cfg.GithubToken)
	logger := logging.NewText(os.Stderr, slog.LevelInfo)

	b := bot.New(api, backend, key, cfg.AuthorizedUserID, "gist", logger)
	if err := b.Run(ctx); err != nil && err != context.Canceled {
		log.Fatalf("%v", err)
	}
}
