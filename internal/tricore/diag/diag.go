// Package diag provides the translator's structured logging, wrapping
// log/slog the way rcornwell-S370/util/logger does: a custom slog.Handler
// that formats a compact single-line record, with an explicit *Logger
// passed into the translator rather than a package-level global.
package diag

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// Handler is a minimal slog.Handler that writes one line per record:
// timestamp, level, message, then space-joined key=value attributes.
type Handler struct {
	out io.Writer
	mu  *sync.Mutex
	lvl slog.Leveler
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.lvl.Level()
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	// Attrs carried via WithAttrs are rare in this package's call sites;
	// they are dropped and the same handler is returned unchanged.
	return h
}

func (h *Handler) WithGroup(_ string) slog.Handler { return h }

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	parts := []string{
		r.Time.Format("15:04:05.000"),
		r.Level.String() + ":",
		r.Message,
	}
	r.Attrs(func(a slog.Attr) bool {
		parts = append(parts, a.Key+"="+a.Value.String())
		return true
	})
	line := strings.Join(parts, " ") + "\n"

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write([]byte(line))
	return err
}

// NewHandler returns a Handler writing to out at the given minimum level.
func NewHandler(out io.Writer, level slog.Leveler) *Handler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &Handler{out: out, mu: &sync.Mutex{}, lvl: level}
}

// New returns a ready-to-use *slog.Logger writing to out. Callers that want
// diagnostics discarded entirely pass io.Discard.
func New(out io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(NewHandler(out, level))
}

// Discard is a logger with every level up to and including LevelError
// suppressed and the backing writer set to io.Discard; used as the
// zero-value default when a caller builds decode.Options without supplying
// its own logger.
func Discard() *slog.Logger {
	return slog.New(NewHandler(io.Discard, slog.LevelError+1))
}
