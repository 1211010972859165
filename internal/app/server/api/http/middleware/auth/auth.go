package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"blogcanvas/internal/domain/session"
)

type Auth struct {
	session session.Servicer
	log     *slog.Logger
}

func New(session session.Servicer, log *slog.Logger) *Auth {
	return &Auth{
		session: session,
		log:     log.With(slog.String("component", "auth_middleware")),
	}
}

type contextKey string

const UserIDKey contextKey = "userID"

const bearerPrefix = "Bearer "

// Middleware возвращает middleware для Huma с сигнатурой func(ctx Context, next func(Context))
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		header := ctx.Header("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			a.log.Debug("missing bearer token", slog.String("path", ctx.URL().Path))
			a.unauthorized(ctx)
			return
		}

		// Валидируем токен
		userID, err := a.session.Validate(ctx.Context(), strings.TrimSpace(header[len(bearerPrefix):]))
		if err != nil {
			if errors.Is(err, session.ErrInvalidToken) {
				a.log.Debug("token rejected", slog.String("path", ctx.URL().Path))
			} else {
				a.log.Error("validate token", slog.String("error", err.Error()))
			}
			a.unauthorized(ctx)
			return
		}

		next(huma.WithContext(ctx, WithUserID(ctx.Context(), userID)))
	}
}

func (a *Auth) unauthorized(ctx huma.Context) {
	ctx.SetHeader("Content-Type", "application/problem+json")
	ctx.SetHeader("WWW-Authenticate", `Bearer realm="blogcanvas"`)
	ctx.SetStatus(http.StatusUnauthorized)

	err := json.NewEncoder(ctx.BodyWriter()).Encode(huma.ErrorModel{
		Title:  http.StatusText(http.StatusUnauthorized),
		Status: http.StatusUnauthorized,
		Detail: "missing or invalid bearer token",
	})
	if err != nil {
		a.log.Error("json encode", slog.String("error", err.Error()))
	}
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok && userID != ""
}
