package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/go-chi/chi/v5/middleware"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	MaxSize    = 50
	MaxBackups = 3
	MaxAge     = 28
)

// DualHandler writes JSON records to the rotated log file and a colored
// single-line rendering to the console.
type DualHandler struct {
	handler slog.Handler
}

func NewDualHandler(fileWriter io.Writer, level slog.Level) *DualHandler {
	handler := slog.NewJSONHandler(fileWriter, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{Key: "timestamp", Value: slog.StringValue(a.Value.Time().Format(time.RFC3339))}
			}
			if a.Key == "" {
				return slog.Attr{Key: "job", Value: slog.StringValue("hrconsole")}
			}
			return a
		},
	})
	return &DualHandler{handler: handler}
}

func (h *DualHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *DualHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.handler.Handle(ctx, r); err != nil {
		return err
	}

	var colorFn func(format string, args ...interface{}) string
	switch r.Level {
	case slog.LevelDebug:
		colorFn = color.New(color.FgCyan).Sprintf
	case slog.LevelInfo:
		colorFn = color.New(color.FgGreen).Sprintf
	case slog.LevelWarn:
		colorFn = color.New(color.FgYellow).Sprintf
	case slog.LevelError:
		colorFn = color.New(color.FgRed).Sprintf
	default:
		colorFn = color.New(color.FgWhite).Sprintf
	}

	var attrs []string
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, fmt.Sprintf("%s=%v", a.Key, a.Value))
		return true
	})

	message := r.Message
	if len(attrs) > 0 {
		message = fmt.Sprintf("%s %s", message, strings.Join(attrs, " "))
	}

	if _, err := fmt.Fprintf(os.Stderr, "%s %s %s\n",
		color.New(color.FgBlue).Sprintf("%s", r.Time.Format("2006-01-02 15:04:05.000")),
		colorFn("%-6s", r.Level.String()),
		message,
	); err != nil {
		return err
	}

	return nil
}

func (h *DualHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &DualHandler{handler: h.handler.WithAttrs(attrs)}
}

func (h *DualHandler) WithGroup(name string) slog.Handler {
	return &DualHandler{handler: h.handler.WithGroup(name)}
}

func SetupLogger(logFilePath string, level slog.Level) (*slog.Logger, error) {
	logFile := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    MaxSize,
		MaxBackups: MaxBackups,
		MaxAge:     MaxAge,
		Compress:   true,
	}
	return slog.New(NewDualHandler(logFile, level)), nil
}

// ParseLevel maps a config string to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Middleware logs requests hitting the local auth callback listener.
func Middleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			requestID := middleware.GetReqID(r.Context())
			if requestID == "" {
				requestID = "unknown"
			}

			next.ServeHTTP(ww, r)

			logger.Info("HTTP request",
				slog.String("request_id", requestID),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Duration("duration", time.Since(start)),
				slog.String("remote_addr", r.RemoteAddr),
			)
		})
	}
}
