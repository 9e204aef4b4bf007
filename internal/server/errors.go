package server

import "errors"

// Server-specific errors
var (
	ErrServerNotRunning     = errors.New("server is not running")
	ErrServerAlreadyRunning = errors.New("server is already running")
	ErrInvalidCommand       = errors.New("invalid command")
	ErrInvalidConfig        = errors.New("invalid server configuration")
	ErrListenerFailed       = errors.New("failed to create listener")
)
