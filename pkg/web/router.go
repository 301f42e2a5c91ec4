// Copyright 2026 Tribes Music Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/tribes-music/session-service/internal/db"
	"github.com/tribes-music/session-service/internal/logging"
	"github.com/tribes-music/session-service/internal/monitoring"
	"github.com/tribes-music/session-service/internal/tracing"
	"github.com/tribes-music/session-service/pkg/metrics"
	"github.com/tribes-music/session-service/pkg/session"
	"github.com/tribes-music/session-service/pkg/status"
	"github.com/tribes-music/session-service/pkg/webhooks"
)

func NewRouter(
	sessionAPI *session.API,
	webhooksAPI *webhooks.API,
	principal func(http.Handler) http.Handler,
	dbClient db.DBClientInterface,
	corsAllowedOrigins []string,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS(corsAllowedOrigins),
	)

	router.Use(middlewares...)

	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(tracer, monitor, logger).RegisterEndpoints(router)
	webhooksAPI.RegisterEndpoints(router)

	router.Group(func(r chi.Router) {
		r.Use(principal)
		r.Use(db.TransactionMiddleware(dbClient, logger))
		sessionAPI.RegisterEndpoints(r)
	})

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}
