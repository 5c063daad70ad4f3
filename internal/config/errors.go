package config

import (
	"errors"

	"github.com/dshills/keychord/internal/config/loader"
)

// Errors returned while parsing combo expressions.
var (
	// ErrUnknownKey indicates a key name missing from the key table.
	ErrUnknownKey = errors.New("unknown key")

	// ErrUnknownAction indicates a two-word token without "up" or "down".
	ErrUnknownAction = errors.New("unknown action")

	// ErrInvalidToken indicates a token with too many words or none.
	ErrInvalidToken = errors.New("invalid token")

	// ErrInvalidWait indicates a wait token without a valid millisecond count.
	ErrInvalidWait = errors.New("invalid wait")

	// ErrEmptyExpression indicates an empty condition or action.
	ErrEmptyExpression = errors.New("empty expression")

	// ErrWaitInCondition indicates a wait token on the condition side.
	ErrWaitInCondition = errors.New("wait is only allowed in actions")

	// ErrInvalidDelay indicates a negative delay_ms.
	ErrInvalidDelay = errors.New("invalid delay")
)

// ParseError represents an error while parsing a configuration file.
type ParseError = loader.ParseError
