// Package wlog wires up the module's structured logging backend. Grounded
// on vctt94-pokerbisonrelay's use of github.com/decred/slog: one shared
// backend writing to a configurable writer, named sub-loggers per
// component.
package wlog

import (
	"io"
	"os"

	"github.com/decred/slog"
)

var backend = slog.NewBackend(os.Stderr)

// SetOutput redirects every future sub-logger's output away from the
// default stderr backend. Sub-loggers created earlier keep writing to the
// old backend.
func SetOutput(w io.Writer) {
	backend = slog.NewBackend(w)
}

// Logger returns a named sub-logger, e.g. wlog.Logger("gameserver").
func Logger(name string) slog.Logger {
	l := backend.Logger(name)
	l.SetLevel(slog.LevelInfo)
	return l
}

// Disabled returns a sub-logger at LevelOff, for tests that want quiet
// output without redirecting the shared backend.
func Disabled(name string) slog.Logger {
	l := backend.Logger(name)
	l.SetLevel(slog.LevelOff)
	return l
}
