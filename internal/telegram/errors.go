package telegram

import (
	"errors"
	"fmt"
)

// ErrUnauthorized indicates the Bot API rejected the token.
var ErrUnauthorized = errors.New("telegram: token rejected")

// APIError is returned when the Bot API answers with ok=false.
type APIError struct {
	Method      string
	Code        int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram %s: %d %s", e.Method, e.Code, e.Description)
}

// redactedError hides the bot token that transport errors embed in the request URL.
type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string {
	return e.msg
}

func (e *redactedError) Unwrap() error {
	return e.err
}
