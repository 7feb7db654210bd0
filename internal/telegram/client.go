package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultAPIURL      = "https://api.telegram.org"
	defaultPollTimeout = 30 * time.Second
	// requestSlack pads the HTTP timeout beyond the long-poll window.
	requestSlack = 10 * time.Second
)

// Config describes how to reach the Bot API.
type Config struct {
	APIURL      string
	Token       string
	PollTimeout time.Duration
	SendRate    float64
	SendBurst   int
}

// Client is a minimal Bot API client covering identity, long polling and text replies.
type Client struct {
	http    *resty.Client
	token   string
	limiter sendLimiter
}

// ClientOption configures New.
type ClientOption func(*Client)

// withSendLimiter replaces the outgoing message throttle. Tests use it to
// observe or fail throttling without waiting on a real rate.Limiter.
func withSendLimiter(limiter sendLimiter) ClientOption {
	return func(c *Client) {
		c.limiter = limiter
	}
}

// New builds a Client for cfg.
func New(cfg Config, opts ...ClientOption) *Client {
	if cfg.APIURL == "" {
		cfg.APIURL = defaultAPIURL
	}
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = defaultPollTimeout
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.APIURL, "/") + "/bot" + cfg.Token).
		SetTimeout(cfg.PollTimeout + requestSlack).
		SetHeader("Content-Type", "application/json")

	c := &Client{
		http:    cli,
		token:   cfg.Token,
		limiter: newSendLimiter(cfg.SendRate, cfg.SendBurst),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetMe returns the identity of the bot owning the token.
func (c *Client) GetMe(ctx context.Context) (User, error) {
	var me User
	if err := c.call(ctx, "getMe", map[string]any{}, &me); err != nil {
		return User{}, err
	}
	return me, nil
}

// GetUpdates long-polls for updates with an id of at least offset.
func (c *Client) GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]Update, error) {
	body := map[string]any{
		"offset":          offset,
		"timeout":         int(timeout / time.Second),
		"allowed_updates": []string{"message"},
	}

	var updates []Update
	if err := c.call(ctx, "getUpdates", body, &updates); err != nil {
		return nil, err
	}
	return updates, nil
}

// SendMessage posts text to chatID, waiting for the send throttle first.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) (Message, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Message{}, fmt.Errorf("sendMessage throttle: %w", err)
	}

	body := map[string]any{
		"chat_id": chatID,
		"text":    text,
	}

	var sent Message
	if err := c.call(ctx, "sendMessage", body, &sent); err != nil {
		return Message{}, err
	}
	return sent, nil
}

func (c *Client) call(ctx context.Context, method string, body any, out any) error {
	var env envelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&env).
		SetError(&env).
		Post("/" + method)
	if err != nil {
		return c.redact(method, err)
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if !env.OK {
		code := env.ErrorCode
		if code == 0 {
			code = resp.StatusCode()
		}
		return &APIError{Method: method, Code: code, Description: env.Description}
	}
	if out == nil || len(env.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Result, out); err != nil {
		return fmt.Errorf("decode %s result: %w", method, err)
	}
	return nil
}

func (c *Client) redact(method string, err error) error {
	msg := fmt.Sprintf("%s request: %v", method, err)
	if c.token != "" {
		msg = strings.ReplaceAll(msg, c.token, "<token>")
	}
	return &redactedError{msg: msg, err: err}
}
