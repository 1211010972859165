//GET    /api/v1/health                              # Health check (публичный)
//GET    /api/v1/layouts/default                     # Анонимный layout (публичный)
//GET    /api/v1/layouts/me                          # Layout пользователя (auth)
//PUT    /api/v1/layouts/me                          # Заменить layout (auth)
//DELETE /api/v1/layouts/me                          # Удалить layout (auth)
//POST   /api/v1/layouts/me/reset                    # Сбросить к карточкам по умолчанию (auth)
//POST   /api/v1/layouts/me/cards                    # Добавить карточку (auth)
//DELETE /api/v1/layouts/me/cards/{id}               # Удалить карточку (auth)
//PUT    /api/v1/layouts/me/cards/{id}/position      # Переместить (auth)
//PUT    /api/v1/layouts/me/cards/{id}/size          # Изменить размер (auth)
//PUT    /api/v1/layouts/me/cards/{id}/config        # Настройки карточки (auth)
//PUT    /api/v1/layouts/me/cards/{id}/visibility    # Показать/скрыть (auth)
//POST   /api/v1/layouts/me/cards/{id}/front         # Поднять наверх (auth)
//POST   /api/v1/validate/{card,layout,config/{type}} # Проверка без сохранения (публичный)
//GET    /api/v1/geocode?q=&limit=                   # Геокодинг (публичный)

package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/exp/slog"

	geocodeAPI "blogcanvas/internal/app/server/api/http/geocode"
	healthAPI "blogcanvas/internal/app/server/api/http/health"
	layoutAPI "blogcanvas/internal/app/server/api/http/layout"
	"blogcanvas/internal/app/server/api/http/middleware"
	"blogcanvas/internal/app/server/api/http/middleware/auth"
	"blogcanvas/internal/app/server/api/http/middleware/logger"
	validateAPI "blogcanvas/internal/app/server/api/http/validate"
	"blogcanvas/internal/domain/geocode"
	"blogcanvas/internal/domain/layout"
	"blogcanvas/internal/domain/session"
)

const (
	title   = "Blogcanvas API"
	version = "1.0.0"
)

// Deps are the services exposed over HTTP.
type Deps struct {
	Layouts  layout.Servicer
	Geocoder geocode.Servicer
	Sessions session.Servicer
	Checks   map[string]healthAPI.Check
}

type Handlers struct {
	Health   *healthAPI.Handler
	Layout   *layoutAPI.Handler
	Validate *validateAPI.Handler
	Geocode  *geocodeAPI.Handler
}

// New создает *chi.Mux с ВСЕМИ операциями через huma.Register
func New(deps Deps, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()
	mux.Use(chimw.RequestID, chimw.RealIP, chimw.Recoverer)

	config := huma.DefaultConfig(title, version)
	config.Info.Description = "Stores and validates the card layout of a blog dashboard."
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer", Description: "API token in the form <user>:<secret>"},
	}

	API := humachi.New(mux, config)

	h := handlers(deps, log)
	h.Health.SetupRoutes(API)
	h.Layout.SetupRoutes(API)
	h.Validate.SetupRoutes(API)
	h.Geocode.SetupRoutes(API)

	return mux
}

func handlers(deps Deps, log *slog.Logger) *Handlers {
	authMW := auth.New(deps.Sessions, log)
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer(loggerMW.Middleware())

	healthHandler := healthAPI.NewHandler(log, middlewares.With(), deps.Checks)
	layoutHandler := layoutAPI.NewHandler(deps.Layouts, log, middlewares.With(), middlewares.With(authMW.Middleware()))
	validateHandler := validateAPI.NewHandler(log, middlewares.With())
	geocodeHandler := geocodeAPI.NewHandler(deps.Geocoder, log, middlewares.With())

	return &Handlers{
		Health:   healthHandler,
		Layout:   layoutHandler,
		Validate: validateHandler,
		Geocode:  geocodeHandler,
	}
}
