package httpserver

import "errors"

var (
	ErrStart          = errors.New("failed to start http server")
	ErrShutdown       = errors.New("failed to shut down http server gracefully")
	ErrAlreadyRunning = errors.New("server already running")
)
