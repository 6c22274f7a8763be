package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-logr/logr"
	slogseq "github.com/sokkalf/slog-seq"
	"go.opentelemetry.io/otel"

	"github.com/oscardepp/SimpleSQL/internal/config"
)

// multiHandler forwards log records to multiple handlers
type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	// Enable if any handler is enabled for this level
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: handlers}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: handlers}
}

// ParseLevel maps a level name onto a slog.Level; unknown names mean info
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewConsoleHandler builds the text or JSON handler writing to w
func NewConsoleHandler(w io.Writer, cfg config.LogConfig) slog.Handler {
	opts := &slog.HandlerOptions{
		Level:     ParseLevel(cfg.Level),
		AddSource: cfg.Level == "debug",
	}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// SetupLogger initializes the global logger and returns a cleanup function.
// Logs go to stderr so that query output on stdout stays clean.
// OpenTelemetry's own diagnostics are routed to the same handler.
func SetupLogger(cfg config.LogConfig) (*slog.Logger, func()) {
	consoleHandler := NewConsoleHandler(os.Stderr, cfg)

	var handler slog.Handler = consoleHandler
	closeFn := func() {}

	if cfg.SeqEnabled {
		_, seqHandler := slogseq.NewLogger(
			cfg.SeqURL,
			slogseq.WithBatchSize(1),
			slogseq.WithFlushInterval(500*time.Millisecond),
			slogseq.WithHandlerOptions(&slog.HandlerOptions{
				Level:     ParseLevel(cfg.Level),
				AddSource: true,
			}),
		)

		// If Seq is not available, use console only
		if seqHandler != nil {
			handler = &multiHandler{
				handlers: []slog.Handler{consoleHandler, seqHandler},
			}
			closeFn = func() {
				seqHandler.Close()
			}
		}
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	otel.SetLogger(logr.FromSlogHandler(handler))

	return logger, closeFn
}
