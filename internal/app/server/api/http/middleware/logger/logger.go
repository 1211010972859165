package logger

import (
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/exp/slog"
)

const quietSuffix = "/health"

// Logger пишет по одной записи на каждый обработанный запрос.
type Logger struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Logger {
	return &Logger{
		log: log.With(slog.String("component", "http_logger")),
	}
}

// Middleware выбирает уровень по статусу ответа: 5xx - Error, 4xx - Warn.
// Успешные пробы health пишутся на Debug.
func (l *Logger) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		start := time.Now()
		path := ctx.URL().Path

		next(ctx)

		status := ctx.Status()
		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		case strings.HasSuffix(path, quietSuffix):
			level = slog.LevelDebug
		}

		attrs := []any{
			slog.String("method", ctx.Method()),
			slog.String("path", path),
			slog.Int("status", status),
			slog.Duration("duration", time.Since(start)),
			slog.String("remote_addr", ctx.RemoteAddr()),
		}
		if id := chimw.GetReqID(ctx.Context()); id != "" {
			attrs = append(attrs, slog.String("request_id", id))
		}
		l.log.Log(ctx.Context(), level, "HTTP request", attrs...)
	}
}
