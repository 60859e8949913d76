package domain

import (
	"errors"
	"fmt"
)

var (
	ErrBusy                = errors.New("a request for this mode is already in progress")
	ErrSessionNotFound     = errors.New("session not found")
	ErrUnknownVerbosity    = errors.New("unknown verbosity")
	ErrUnknownCreativeKind = errors.New("unknown creative kind")
)

// ConfigError reports a startup failure such as a missing guideline file.
type ConfigError struct {
	Op  string
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %v", e.Op, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ValidationError reports blank or malformed user input. Message is meant to
// be shown to the user as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// GenerationError wraps any failure of the generation provider.
type GenerationError struct {
	Mode Mode
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s generation failed: %v", e.Mode, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
