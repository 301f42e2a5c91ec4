// Copyright 2026 Tribes Music Ltd.
// SPDX-License-Identifier: AGPL-3.0

package session

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/tribes-music/session-service/pkg/authentication"

	"github.com/tribes-music/session-service/internal/identity"
	"github.com/tribes-music/session-service/internal/logging"
	"github.com/tribes-music/session-service/internal/monitoring"
	"github.com/tribes-music/session-service/internal/tracing"
)

type API struct {
	service  ServiceInterface
	validate *validator.Validate

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewAPI(
	service ServiceInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *API {
	return &API{
		service:  service,
		validate: validator.New(),
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}

func (a *API) RegisterEndpoints(router chi.Router) {
	router.Get("/api/v0/session", a.getSession)
	router.Post("/api/v0/session/tenant", a.switchTenant)
	router.Post("/api/v0/session/context", a.switchContext)
	router.Get("/api/v0/session/capabilities", a.capabilities)
}

type switchTenantRequest struct {
	TenantID string `json:"tenant_id" validate:"required,uuid"`
}

type switchContextRequest struct {
	Context string `json:"context" validate:"required,oneof=licensing publishing"`
}

type profileResponse struct {
	IdentityID      string     `json:"identity_id"`
	Email           string     `json:"email"`
	PlatformRole    string     `json:"platform_role"`
	Status          string     `json:"status"`
	DefaultTenantID string     `json:"default_tenant_id,omitempty"`
	DefaultContext  string     `json:"default_context,omitempty"`
	LastLoginAt     *time.Time `json:"last_login_at,omitempty"`
}

type membershipResponse struct {
	ID         string   `json:"id"`
	TenantID   string   `json:"tenant_id"`
	TenantName string   `json:"tenant_name"`
	TenantSlug string   `json:"tenant_slug"`
	Status     string   `json:"status"`
	Roles      []string `json:"roles"`
}

type sessionResponse struct {
	Profile           *profileResponse     `json:"profile,omitempty"`
	Memberships       []membershipResponse `json:"memberships"`
	ActiveTenantID    string               `json:"active_tenant_id,omitempty"`
	ActiveContext     string               `json:"active_context,omitempty"`
	AvailableContexts []string             `json:"available_contexts"`
	AccessState       string               `json:"access_state"`
}

type capabilitiesResponse struct {
	CanAccessContext *bool `json:"can_access_context,omitempty"`
	HasPortalRole    *bool `json:"has_portal_role,omitempty"`
}

type errorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (a *API) getSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "session.API.getSession")
	defer span.End()

	identityID, deviceID := callerOf(r)

	session, err := a.service.Current(ctx, identityID, deviceID)
	if err != nil {
		a.logger.Errorf("failed to resolve session: %v", err)
		a.respondError(w, http.StatusInternalServerError, "failed to resolve session")
		return
	}

	a.respondJSON(w, http.StatusOK, newSessionResponse(session))
}

func (a *API) switchTenant(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "session.API.switchTenant")
	defer span.End()

	identityID, deviceID := callerOf(r)
	if identityID == "" {
		a.respondError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var req switchTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := a.validate.StructCtx(ctx, req); err != nil {
		a.respondError(w, http.StatusBadRequest, "tenant_id must be a valid tenant id")
		return
	}

	session, err := a.service.SwitchTenant(ctx, identityID, deviceID, req.TenantID)
	if err != nil {
		if errors.Is(err, ErrNotMember) {
			a.respondError(w, http.StatusForbidden, "no active membership for tenant")
			return
		}
		a.logger.Errorf("failed to switch tenant: %v", err)
		a.respondError(w, http.StatusInternalServerError, "failed to switch tenant")
		return
	}

	a.respondJSON(w, http.StatusOK, newSessionResponse(session))
}

func (a *API) switchContext(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "session.API.switchContext")
	defer span.End()

	identityID, deviceID := callerOf(r)
	if identityID == "" {
		a.respondError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var req switchContextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := a.validate.StructCtx(ctx, req); err != nil {
		a.respondError(w, http.StatusBadRequest, "context must be one of licensing, publishing")
		return
	}

	session, err := a.service.SwitchContext(ctx, identityID, deviceID, req.Context)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoActiveTenant):
			a.respondError(w, http.StatusConflict, "no active tenant selected")
		case errors.Is(err, ErrContextUnavailable):
			a.respondError(w, http.StatusForbidden, "context not available for active tenant")
		default:
			a.logger.Errorf("failed to switch context: %v", err)
			a.respondError(w, http.StatusInternalServerError, "failed to switch context")
		}
		return
	}

	a.respondJSON(w, http.StatusOK, newSessionResponse(session))
}

// capabilities answers boolean checks feature components gate rendering on.
func (a *API) capabilities(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "session.API.capabilities")
	defer span.End()

	identityID, deviceID := callerOf(r)
	appContext := r.URL.Query().Get("context")
	role := r.URL.Query().Get("role")

	if appContext == "" && role == "" {
		a.respondError(w, http.StatusBadRequest, "at least one of context, role is required")
		return
	}

	session, err := a.service.Current(ctx, identityID, deviceID)
	if err != nil {
		a.logger.Errorf("failed to resolve session: %v", err)
		a.respondError(w, http.StatusInternalServerError, "failed to resolve session")
		return
	}

	var resp capabilitiesResponse
	if appContext != "" {
		v := session.CanAccessContext(appContext)
		resp.CanAccessContext = &v
	}
	if role != "" {
		v := session.HasPortalRole(role)
		resp.HasPortalRole = &v
	}

	a.respondJSON(w, http.StatusOK, resp)
}

func newSessionResponse(s *Session) sessionResponse {
	resp := sessionResponse{
		Memberships:       make([]membershipResponse, 0, len(s.Memberships)),
		ActiveTenantID:    s.ActiveTenantID(),
		ActiveContext:     s.ActiveContext,
		AvailableContexts: s.AvailableContexts,
		AccessState:       string(s.AccessState),
	}
	if resp.AvailableContexts == nil {
		resp.AvailableContexts = []string{}
	}

	if s.Profile != nil {
		resp.Profile = &profileResponse{
			IdentityID:      s.Profile.IdentityID,
			Email:           s.Profile.Email,
			PlatformRole:    s.Profile.PlatformRole,
			Status:          s.Profile.Status,
			DefaultTenantID: s.Profile.DefaultTenantID,
			DefaultContext:  s.Profile.DefaultContext,
			LastLoginAt:     s.Profile.LastLoginAt,
		}
	}

	for _, m := range s.Memberships {
		roles := m.Roles
		if roles == nil {
			roles = []string{}
		}
		resp.Memberships = append(resp.Memberships, membershipResponse{
			ID:         m.ID,
			TenantID:   m.TenantID,
			TenantName: m.TenantName,
			TenantSlug: m.TenantSlug,
			Status:     m.Status,
			Roles:      roles,
		})
	}

	return resp
}

func callerOf(r *http.Request) (identityID, deviceID string) {
	identityID, _ = authentication.GetUserID(r.Context())
	deviceID = r.Header.Get(identity.DeviceHeaderName)
	return identityID, deviceID
}

func (a *API) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		a.logger.Errorf("failed to encode response: %v", err)
	}
}

func (a *API) respondError(w http.ResponseWriter, status int, message string) {
	a.respondJSON(w, status, errorResponse{Status: status, Message: message})
}
