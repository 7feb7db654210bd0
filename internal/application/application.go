package application

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/eugenenazirov/elechka/internal/bot"
	"github.com/eugenenazirov/elechka/internal/config"
	"github.com/eugenenazirov/elechka/internal/telegram"
)

// ErrMissingToken indicates no bot token was resolved from any source.
var ErrMissingToken = errors.New("bot token is required")

// App encapsulates the bot dependencies.
type App struct {
	client *telegram.Client
	bot    *bot.Bot
	logger *zap.Logger
}

// New initializes the application from the resolved settings.
func New(settings config.Settings, logger *zap.Logger) (*App, error) {
	if settings.Token == "" {
		return nil, ErrMissingToken
	}

	client := telegram.New(telegram.Config{
		APIURL:      settings.APIURL,
		Token:       settings.Token,
		PollTimeout: settings.PollTimeout,
		SendRate:    settings.SendRate,
		SendBurst:   settings.SendBurst,
	})

	b := bot.New(client, logger, bot.WithPollTimeout(settings.PollTimeout))
	b.OnCommand("start", bot.Reply(settings.Greeting))

	return &App{
		client: client,
		bot:    b,
		logger: logger,
	}, nil
}

// Run polls for updates until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("bot starting")
	return a.bot.Run(ctx)
}
