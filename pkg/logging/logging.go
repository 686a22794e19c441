// Package logging builds the logr.Logger used across objsec.
package logging

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ParseLevel maps the level names accepted on the command line to zap levels.
func ParseLevel(level string) (zapcore.Level, error) {
	switch level {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info", "":
		return zapcore.InfoLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("unknown log level %q: options are 'debug', 'info' and 'error'", level)
}

// GetDefaultLogger returns a development-style zap logger wrapped as a
// logr.Logger. Unknown levels fall back to info.
func GetDefaultLogger(level string) logr.Logger {
	lvl, err := ParseLevel(level)

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true
	cfg.OutputPaths = []string{"stderr"}

	zapLog, buildErr := cfg.Build()
	if buildErr != nil {
		return logr.Discard()
	}

	log := zapr.NewLogger(zapLog)
	if err != nil {
		log.Error(err, "falling back to info")
	}
	return log
}
