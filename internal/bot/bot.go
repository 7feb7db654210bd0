package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eugenenazirov/elechka/internal/telegram"
)

const (
	defaultPollTimeout = 30 * time.Second
	defaultRetryDelay  = time.Second
)

// Messenger is the part of the Bot API the long-poll loop needs.
type Messenger interface {
	GetMe(ctx context.Context) (telegram.User, error)
	GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]telegram.Update, error)
	SendMessage(ctx context.Context, chatID int64, text string) (telegram.Message, error)
}

// HandlerFunc reacts to a command message.
type HandlerFunc func(ctx context.Context, api Messenger, msg telegram.Message) error

// Option configures New.
type Option func(*Bot)

// WithPollTimeout sets the long-poll window passed to getUpdates.
func WithPollTimeout(timeout time.Duration) Option {
	return func(b *Bot) {
		if timeout > 0 {
			b.pollTimeout = timeout
		}
	}
}

// WithRetryDelay sets the pause after a failed poll.
func WithRetryDelay(delay time.Duration) Option {
	return func(b *Bot) {
		if delay > 0 {
			b.retryDelay = delay
		}
	}
}

// Bot dispatches slash commands received through long polling.
type Bot struct {
	api         Messenger
	logger      *zap.Logger
	pollTimeout time.Duration
	retryDelay  time.Duration
	handlers    map[string]HandlerFunc
	username    string
}

// New creates a Bot on top of api.
func New(api Messenger, logger *zap.Logger, opts ...Option) *Bot {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &Bot{
		api:         api,
		logger:      logger,
		pollTimeout: defaultPollTimeout,
		retryDelay:  defaultRetryDelay,
		handlers:    make(map[string]HandlerFunc),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// OnCommand registers handler for /name. Registering a name twice replaces the handler.
func (b *Bot) OnCommand(name string, handler HandlerFunc) {
	b.handlers[strings.ToLower(strings.TrimPrefix(name, "/"))] = handler
}

// Run resolves the bot identity and then polls until ctx is cancelled. It
// returns nil on cancellation and an error only when the identity lookup fails.
func (b *Bot) Run(ctx context.Context) error {
	me, err := b.api.GetMe(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("get bot identity: %w", err)
	}
	b.username = me.Username

	logger := b.logger.With(zap.String("session", uuid.NewString()))
	logger.Info("logged in", zap.String("username", "@"+me.Username))

	var offset int64
	for {
		if ctx.Err() != nil {
			logger.Info("polling stopped")
			return nil
		}

		updates, err := b.api.GetUpdates(ctx, offset, b.pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			logger.Warn("poll failed", zap.Error(err))
			select {
			case <-ctx.Done():
			case <-time.After(b.retryDelay):
			}
			continue
		}

		for _, update := range updates {
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}
			b.dispatch(ctx, logger, update)
		}
	}
}

func (b *Bot) dispatch(ctx context.Context, logger *zap.Logger, update telegram.Update) {
	msg := update.Message
	if msg == nil {
		return
	}

	name, ok := b.commandName(msg.Text)
	if !ok {
		return
	}
	handler, ok := b.handlers[name]
	if !ok {
		logger.Debug("unknown command", zap.String("command", name), zap.Int64("chat_id", msg.Chat.ID))
		return
	}

	if err := handler(ctx, b.api, *msg); err != nil {
		logger.Error("command failed",
			zap.String("command", name),
			zap.Int64("chat_id", msg.Chat.ID),
			zap.Error(err),
		)
		return
	}
	logger.Debug("command handled", zap.String("command", name), zap.Int64("chat_id", msg.Chat.ID))
}

// commandName extracts "start" from "/start", "/start arg" or "/start@botname".
// Commands addressed to another bot are ignored.
func (b *Bot) commandName(text string) (string, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return "", false
	}

	name := strings.TrimPrefix(fields[0], "/")
	if at := strings.IndexByte(name, '@'); at >= 0 {
		target := name[at+1:]
		if b.username != "" && !strings.EqualFold(target, b.username) {
			return "", false
		}
		name = name[:at]
	}
	if name == "" {
		return "", false
	}
	return strings.ToLower(name), true
}

// Reply returns a handler answering every invocation with text.
func Reply(text string) HandlerFunc {
	return func(ctx context.Context, api Messenger, msg telegram.Message) error {
		if _, err := api.SendMessage(ctx, msg.Chat.ID, text); err != nil {
			return fmt.Errorf("send reply: %w", err)
		}
		return nil
	}
}
