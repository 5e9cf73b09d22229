package apperrors

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("not found")
	ErrNoCollection  = errors.New("no active collection")
	ErrMissingKey    = errors.New("missing required config key")
	ErrInvalidConfig = errors.New("invalid config value")
)
