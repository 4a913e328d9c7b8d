// Package logging builds the application's zap logger.
//
// The terminal belongs to the TUI while it runs, so entries go to a log file
// in the data directory rather than to stderr.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RootName is the name of the logger returned by New; component loggers are
// children of it (e.g. "thirdeye.tui").
const RootName = "thirdeye"

// New returns a logger writing console-formatted entries to w, filtered by
// the given filter string.
func New(filter string, w zapcore.WriteSyncer) (*zap.Logger, error) {
	f, err := ParseFilter(filter)
	if err != nil {
		return nil, err
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	enc := zapcore.NewConsoleEncoder(encCfg)

	core := &filterCore{
		Core:   zapcore.NewCore(enc, w, zapcore.DebugLevel),
		filter: f,
	}
	return zap.New(core).Named(RootName), nil
}

// Open creates (or appends to) the log file at path and returns a logger
// writing to it. The returned close func syncs and closes the file.
func Open(path string, filter string) (*zap.Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	fh, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	logger, err := New(filter, zapcore.Lock(fh))
	if err != nil {
		_ = fh.Close()
		return nil, nil, err
	}
	closeFn := func() {
		_ = logger.Sync()
		_ = fh.Close()
	}
	return logger, closeFn, nil
}
