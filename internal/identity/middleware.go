// Copyright 2026 Tribes Music Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import (
	"net/http"

	"github.com/tribes-music/session-service/internal/logging"
	"github.com/tribes-music/session-service/internal/monitoring"
	"github.com/tribes-music/session-service/internal/tracing"
	"github.com/tribes-music/session-service/pkg/authentication"
)

const (
	// HeaderName carries the authenticated identity ID set by the fronting
	// auth proxy. Only trusted when JWT authentication is disabled.
	HeaderName = "X-Authenticated-Identity-Id"
	// DeviceHeaderName carries the caller's device ID, used to scope
	// tenant/context preferences the way browser local storage would.
	DeviceHeaderName = "X-Device-Id"
)

type Middleware struct {
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewMiddleware(tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Middleware {
	return &Middleware{
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// HTTPMiddleware lifts the proxy-set identity header into the request context.
func (m *Middleware) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := m.tracer.Start(r.Context(), "identity.Middleware.HTTPMiddleware")
		defer span.End()

		if userID := r.Header.Get(HeaderName); userID != "" {
			ctx = authentication.WithUserID(ctx, userID)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
