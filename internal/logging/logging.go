// Package logging sets up the decred/slog backend used across the server,
// with one named logger per subsystem.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/decred/slog"
)

// Subsystem logger names, used consistently wherever each part of the
// server logs.
const (
	Engine  = "ENGINE"
	Book    = "BOOK"
	Ledger  = "LEDGER"
	Round   = "ROUND"
	HTTP    = "HTTP"
	Store   = "STORE"
	Events  = "EVENTS"
	Startup = "SRVR"
)

// Backend wraps a slog.Backend and hands out per-subsystem loggers at a
// shared configured level.
type Backend struct {
	backend slog.Backend
	level   slog.Level
}

// New creates a Backend writing to w at the given level name (trace, debug,
// info, warn, error, critical; defaults to info on an unrecognized value).
func New(w io.Writer, levelName string) *Backend {
	if w == nil {
		w = os.Stdout
	}
	level, ok := slog.LevelFromString(levelName)
	if !ok {
		level = slog.LevelInfo
	}
	return &Backend{backend: slog.NewBackend(w), level: level}
}

// Logger returns a named logger at the backend's configured level.
func (b *Backend) Logger(subsystem string) slog.Logger {
	l := b.backend.Logger(subsystem)
	l.SetLevel(b.level)
	return l
}

// MustParseLevel parses a level name and panics on an unrecognized one,
// unlike New, which falls back to info. Config loading does not call it.
func MustParseLevel(name string) slog.Level {
	level, ok := slog.LevelFromString(name)
	if !ok {
		panic(fmt.Sprintf("logging: invalid level %q", name))
	}
	return level
}
