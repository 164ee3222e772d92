// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"io"
	"log/slog"
	"os"

	ethlog "github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-isatty"
)

type discardHandler struct{}

// DiscardHandler returns a no-op handler
func DiscardHandler() slog.Handler {
	return &discardHandler{}
}

func (h *discardHandler) Handle(_ context.Context, _ slog.Record) error {
	return nil
}

func (h *discardHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return false
}

func (h *discardHandler) WithGroup(_ string) slog.Handler {
	return h
}

func (h *discardHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return &discardHandler{}
}

// FromVerbosity converts a 0 (crit) .. 5 (trace) verbosity into a slog level.
func FromVerbosity(verbosity int) slog.Level {
	if verbosity < 0 {
		verbosity = 0
	}
	if verbosity > 5 {
		verbosity = 5
	}
	return ethlog.FromLegacyLevel(verbosity)
}

// NewTerminalHandler returns a human readable handler for wr.
// Colors are enabled when wr is a terminal.
func NewTerminalHandler(wr io.Writer, level slog.Level) slog.Handler {
	useColor := false
	if f, ok := wr.(*os.File); ok {
		useColor = isatty.IsTerminal(f.Fd()) && os.Getenv("TERM") != "dumb"
	}
	return ethlog.NewTerminalHandlerWithLevel(wr, level, useColor)
}

// JSONHandler returns a handler which prints records in JSON format.
func JSONHandler(wr io.Writer, level slog.Level) slog.Handler {
	return ethlog.JSONHandlerWithLevel(wr, level)
}

// LogfmtHandler returns a handler which prints records in logfmt format.
func LogfmtHandler(wr io.Writer, level slog.Level) slog.Handler {
	return ethlog.LogfmtHandlerWithLevel(wr, level)
}
