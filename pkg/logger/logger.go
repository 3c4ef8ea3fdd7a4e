// Package logger builds the *zap.SugaredLogger instances threaded through
// component Config structs across this module (internal/engine,
// internal/server) and into the internal/pool constructors. Nothing here
// keeps a package-level logger: every
// caller builds its own and passes it down explicitly.
package logger

import "go.uber.org/zap"

// New builds a production logger: JSON encoding, info level, sampling
// enabled.
func New() (*zap.SugaredLogger, error) {
	log, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return log.Sugar(), nil
}

// NewDevelopment builds a development logger: console encoding, debug
// level, stack traces on warnings and above.
func NewDevelopment() (*zap.SugaredLogger, error) {
	log, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return log.Sugar(), nil
}

// Noop returns a logger that discards everything, for tests and callers
// that have not configured logging.
func Noop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
