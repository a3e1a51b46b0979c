package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process wide logger. It is a no-op logger until Init runs so
// packages can log unconditionally, tests included.
var Log = zap.NewNop()

var once sync.Once

// Init installs the production logger at info level. Calling it more than once
// has no effect.
func Init() {
	once.Do(func() {
		install("info", false)
	})
}

// InitWithLevel installs a logger at the given level, replacing any previous one.
// An unknown level falls back to info.
func InitWithLevel(level string, development bool) {
	once.Do(func() {})
	install(level, development)
}

func install(level string, development bool) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build()
	if err != nil {
		// Keep whatever was there; logging must never stop the renderer.
		return
	}
	Log = l
}

// Sync flushes buffered entries. Errors from syncing stdout/stderr are ignored.
func Sync() {
	_ = Log.Sync()
}
