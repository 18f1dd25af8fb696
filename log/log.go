// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log provides package level loggers that follow the root logger of go-ethereum/log,
// including a root replaced after the logger was created.
package log

import (
	"context"
	"io"
	"log/slog"

	gethlog "github.com/ethereum/go-ethereum/log"
)

type Logger = gethlog.Logger

// WithContext returns a logger carrying ctx that writes to the current root handler.
func WithContext(ctx ...any) Logger {
	return gethlog.NewLogger(&rootHandler{}).With(ctx...)
}

// Init replaces the root logger by a terminal logger filtered at the legacy verbosity (0-5).
func Init(w io.Writer, verbosity int, useColor bool) {
	handler := gethlog.NewGlogHandler(gethlog.NewTerminalHandler(w, useColor))
	handler.Verbosity(gethlog.FromLegacyLevel(verbosity))
	gethlog.SetDefault(gethlog.NewLogger(handler))
}

// rootHandler resolves the root handler on each record, replaying attrs and groups on it.
type rootHandler struct {
	ops []func(slog.Handler) slog.Handler
}

func (h *rootHandler) resolve() slog.Handler {
	handler := gethlog.Root().Handler()
	for _, op := range h.ops {
		handler = op(handler)
	}
	return handler
}

func (h *rootHandler) with(op func(slog.Handler) slog.Handler) *rootHandler {
	ops := make([]func(slog.Handler) slog.Handler, len(h.ops), len(h.ops)+1)
	copy(ops, h.ops)
	return &rootHandler{ops: append(ops, op)}
}

func (h *rootHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return gethlog.Root().Handler().Enabled(ctx, level)
}

func (h *rootHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.resolve().Handle(ctx, r)
}

func (h *rootHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.with(func(handler slog.Handler) slog.Handler { return handler.WithAttrs(attrs) })
}

func (h *rootHandler) WithGroup(name string) slog.Handler {
	return h.with(func(handler slog.Handler) slog.Handler { return handler.WithGroup(name) })
}
