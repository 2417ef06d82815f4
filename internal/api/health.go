// Copyright (c) 2026 UniPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/uniportal/internal/platform/constants"
	"github.com/taibuivan/uniportal/internal/platform/respond"
)

// readinessTimeout bounds the whole probe, every checker included.
const readinessTimeout = 2 * time.Second

// Checker probes one dependency.
type Checker func(ctx context.Context) error

// HealthDependencies holds the injectable dependency checkers for the /ready endpoint.
type HealthDependencies struct {
	// CheckDatabase pings the PostgreSQL pool.
	CheckDatabase Checker

	// CheckCache pings the Redis client.
	CheckCache Checker
}

type checkResult struct {
	Name  string `json:"name"`
	IsOK  bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type healthHandler struct {
	dependencies HealthDependencies
	logger       *slog.Logger
}

// NewHealthHandlers creates the /health and /ready http.HandlerFuncs.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{dependencies: deps, logger: logger}
	return handler.liveness, handler.readiness
}

// liveness handles GET /health (Liveness probe).
func (handler *healthHandler) liveness(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]string{constants.FieldStatus: "ok"})
}

// readiness handles GET /ready (Readiness probe). Checkers run concurrently.
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), readinessTimeout)
	defer cancel()

	checks := []struct {
		name  string
		check Checker
	}{
		{"postgres", handler.dependencies.CheckDatabase},
		{"redis", handler.dependencies.CheckCache},
	}

	var (
		mu      sync.Mutex
		results = make([]checkResult, 0, len(checks))
		group   errgroup.Group
	)

	for _, item := range checks {
		if item.check == nil {
			continue
		}
		item := item
		group.Go(func() error {
			result := checkResult{Name: item.name, IsOK: true}
			if err := item.check(ctx); err != nil {
				result.IsOK = false
				result.Error = err.Error()
				handler.logger.Error("readiness_check_failed", slog.String("dependency", item.name), slog.Any("error", err))
			}

			mu.Lock()
			results = append(results, result)
			mu.Unlock()
			return nil
		})
	}
	_ = group.Wait()

	responseStatus := "ready"
	httpStatus := http.StatusOK
	for _, result := range results {
		if !result.IsOK {
			responseStatus = "degraded"
			httpStatus = http.StatusServiceUnavailable
			break
		}
	}

	respond.JSON(writer, httpStatus, map[string]any{
		constants.FieldStatus: responseStatus,
		constants.FieldChecks: sortedResults(results),
	})
}

// sortedResults keeps the report order stable regardless of completion order.
func sortedResults(results []checkResult) []checkResult {
	ordered := make([]checkResult, 0, len(results))
	for _, name := range []string{"postgres", "redis"} {
		for _, result := range results {
			if result.Name == name {
				ordered = append(ordered, result)
			}
		}
	}
	return ordered
}
