// Package logging provides the shared diagnostics logger for go-cellfmt.
//
// The library is quiet by default: the logger writes to stderr at warn level
// and callers that embed go-cellfmt can replace or silence it with
// [SetLogger].  Formatting diagnostics (unknown colors, renderer fallbacks)
// are advisory — they never affect the rendered output.
package logging

import (
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	mu     sync.RWMutex
	logger = newDefault()

	onceMu   sync.Mutex
	onceSeen = map[string]struct{}{}
)

func newDefault() *log.Logger {
	l := log.New(os.Stderr)
	l.SetTimeFormat("")
	l.SetLevel(log.WarnLevel)
	l.SetPrefix("cellfmt")
	return l
}

// SetLogger replaces the package logger.  Passing nil restores the default.
func SetLogger(l *log.Logger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		l = newDefault()
	}
	logger = l
}

// Logger returns the current package logger.
func Logger() *log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// WarnOnce logs msg at warn level the first time key is seen and is a no-op
// afterwards.  It is used for per-token diagnostics (e.g. an unknown color
// name) that would otherwise repeat on every render of the same format.
func WarnOnce(key, msg string, keyvals ...any) {
	onceMu.Lock()
	_, seen := onceSeen[key]
	if !seen {
		onceSeen[key] = struct{}{}
	}
	onceMu.Unlock()
	if !seen {
		Logger().Warn(msg, keyvals...)
	}
}

// Debug logs msg at debug level.
func Debug(msg string, keyvals ...any) {
	Logger().Debug(msg, keyvals...)
}
