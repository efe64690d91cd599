// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package main

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/netascode/go-netdev/logging"
)

// zapAdapter bridges the client libraries' logging interface onto zap.
type zapAdapter struct {
	sugar *zap.SugaredLogger
}

func (z *zapAdapter) Debug(_ context.Context, msg string, keysAndValues ...any) {
	z.sugar.Debugw(msg, keysAndValues...)
}

func (z *zapAdapter) Info(_ context.Context, msg string, keysAndValues ...any) {
	z.sugar.Infow(msg, keysAndValues...)
}

func (z *zapAdapter) Warn(_ context.Context, msg string, keysAndValues ...any) {
	z.sugar.Warnw(msg, keysAndValues...)
}

func (z *zapAdapter) Error(_ context.Context, msg string, keysAndValues ...any) {
	z.sugar.Errorw(msg, keysAndValues...)
}

// newLogger builds the CLI logger. Verbose mode enables debug output with
// development formatting; otherwise only warnings and errors are shown to
// keep command output clean.
func newLogger() logging.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		// Fall back to the library default rather than failing the command
		return logging.NewDefaultLogger(logging.LevelWarn)
	}
	return &zapAdapter{sugar: logger.Sugar()}
}
