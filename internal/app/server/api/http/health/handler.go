package health

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

const (
	statusOK       = "OK"
	statusDegraded = "DEGRADED"
	checkTimeout   = 2 * time.Second
)

// Check probes a dependency, e.g. the storage backend.
type Check func(ctx context.Context) error

type Handler struct {
	log        *slog.Logger
	middleware huma.Middlewares
	checks     map[string]Check
}

func NewHandler(log *slog.Logger, middleware huma.Middlewares, checks map[string]Check) *Handler {
	return &Handler{
		log:        log,
		middleware: middleware,
		checks:     checks,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.statusOp(), h.healthCheck)
}

func (h *Handler) healthCheck(ctx context.Context, _ *struct{}) (*Output, error) {
	h.log.Debug("health check request received")

	resp := Response{Status: statusOK}
	if len(h.checks) == 0 {
		return &Output{Body: resp}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	resp.Checks = make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.log.Warn("health check failed", "check", name, "error", err)
			resp.Status = statusDegraded
			resp.Checks[name] = err.Error()
			continue
		}
		resp.Checks[name] = statusOK
	}

	if resp.Status != statusOK {
		return nil, huma.Error503ServiceUnavailable("dependency check failed", checkErrors(resp.Checks)...)
	}
	return &Output{Body: resp}, nil
}

func checkErrors(checks map[string]string) []error {
	var errs []error
	for name, result := range checks {
		if result == statusOK {
			continue
		}
		errs = append(errs, &huma.ErrorDetail{Location: name, Message: result})
	}
	return errs
}
