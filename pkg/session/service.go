// Copyright 2026 Tribes Music Ltd.
// SPDX-License-Identifier: AGPL-3.0

package session

import (
	"context"
	"errors"
	"slices"
	"sync/atomic"

	"github.com/tribes-music/session-service/internal/authorization"
	"github.com/tribes-music/session-service/internal/logging"
	"github.com/tribes-music/session-service/internal/monitoring"
	"github.com/tribes-music/session-service/internal/storage"
	"github.com/tribes-music/session-service/internal/tracing"
	"github.com/tribes-music/session-service/internal/types"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNotMember          = errors.New("identity has no active membership for tenant")
	ErrContextUnavailable = errors.New("context not available for active tenant")
	ErrNoActiveTenant     = errors.New("no active tenant selected")
)

// Session is one resolved snapshot of who the caller is, which tenant and
// context they are acting in, and the access state gating their routing.
type Session struct {
	Profile           *types.Profile
	Memberships       []*types.Membership
	ActiveMembership  *types.Membership
	ActiveContext     string
	AvailableContexts []string
	AccessState       AccessState
}

// ActiveTenantID is empty when no membership was selected.
func (s *Session) ActiveTenantID() string {
	if s.ActiveMembership == nil {
		return ""
	}
	return s.ActiveMembership.TenantID
}

// CanAccessContext reports whether the active membership may enter the context.
func (s *Session) CanAccessContext(appContext string) bool {
	return slices.Contains(s.AvailableContexts, appContext)
}

// HasPortalRole reports whether the active membership carries the role.
func (s *Session) HasPortalRole(role string) bool {
	if s.ActiveMembership == nil {
		return false
	}
	return slices.Contains(s.ActiveMembership.Roles, role)
}

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage StorageInterface
	authz   AuthzInterface
	cache   *Cache
	seq     atomic.Uint64

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	authz AuthzInterface,
	cache *Cache,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage: storage,
		authz:   authz,
		cache:   cache,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// Resolve runs one full resolution pass for the identity on the given device:
// profile, memberships (all statuses), the permission table, and the device
// preference are fetched concurrently, then the active tenant and context are
// selected and the access state classified. Every pass is independent; a pass
// never mutates the result of another one in flight.
func (s *Service) Resolve(ctx context.Context, identityID, deviceID string) (*Session, error) {
	ctx, span := s.tracer.Start(ctx, "session.Service.Resolve")
	defer span.End()

	if identityID == "" {
		return &Session{AccessState: StateUnauthenticated}, nil
	}

	seq := s.seq.Add(1)

	var (
		profile     *types.Profile
		memberships []*types.Membership
		table       authorization.PermissionTable
		pref        *types.DevicePreference
	)

	// All fetch failures are converted into safe absences here: a failed
	// profile read fails closed to no-profile, failed membership or
	// permission reads degrade to empty sets. Nothing escapes as an error.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.storage.GetProfileByIdentity(gctx, identityID)
		if err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				s.logger.Errorf("profile fetch failed for %s, treating as absent: %v", identityID, err)
			}
			return nil
		}
		profile = p
		return nil
	})
	g.Go(func() error {
		ms, err := s.storage.ListMembershipsByIdentity(gctx, identityID)
		if err != nil {
			s.logger.Errorf("membership fetch failed for %s, treating as empty: %v", identityID, err)
			return nil
		}
		memberships = ms
		return nil
	})
	g.Go(func() error {
		t, err := s.authz.PermissionTable(gctx)
		if err != nil {
			s.logger.Errorf("permission table fetch failed, treating as empty: %v", err)
			t = authorization.PermissionTable{}
		}
		table = t
		return nil
	})
	g.Go(func() error {
		p, err := s.storage.GetDevicePreference(gctx, identityID, deviceID)
		if err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				s.logger.Errorf("device preference fetch failed for %s: %v", identityID, err)
			}
			return nil
		}
		pref = p
		return nil
	})
	_ = g.Wait()

	if profile != nil {
		if err := s.storage.TouchLastLogin(ctx, identityID); err != nil {
			s.logger.Warnf("failed to stamp last login for %s: %v", identityID, err)
		}
	}

	session := s.buildSession(ctx, identityID, deviceID, profile, memberships, table, pref)

	if !s.cache.Publish(identityID, deviceID, seq, session) {
		s.logger.Debugf("discarding superseded resolution pass %d for %s", seq, identityID)
	}

	return session, nil
}

// Current serves the snapshot of the last resolution pass on this device,
// resolving fresh when nothing is cached: the first request, a request from
// another device, or a request after an identity-change webhook invalidated
// the snapshot.
func (s *Service) Current(ctx context.Context, identityID, deviceID string) (*Session, error) {
	ctx, span := s.tracer.Start(ctx, "session.Service.Current")
	defer span.End()

	if identityID == "" {
		return &Session{AccessState: StateUnauthenticated}, nil
	}

	if session, ok := s.cache.Get(identityID, deviceID); ok {
		return session, nil
	}

	return s.Resolve(ctx, identityID, deviceID)
}

func (s *Service) buildSession(
	ctx context.Context,
	identityID, deviceID string,
	profile *types.Profile,
	memberships []*types.Membership,
	table authorization.PermissionTable,
	pref *types.DevicePreference,
) *Session {
	session := &Session{
		Profile:     profile,
		Memberships: memberships,
		AccessState: Classify(true, profile, memberships),
	}

	if profile == nil {
		return session
	}

	deviceTenantID := ""
	contextPrefs := map[string]string{}
	if pref != nil {
		deviceTenantID = pref.ActiveTenantID
		if pref.ContextPrefs != nil {
			contextPrefs = pref.ContextPrefs
		}
	}

	active := SelectActiveTenant(memberships, deviceTenantID, profile.DefaultTenantID)
	if active == nil {
		return session
	}

	session.ActiveMembership = active
	session.AvailableContexts = table.AvailableContexts(active.Roles)
	session.ActiveContext = SelectActiveContext(
		session.AvailableContexts,
		active,
		contextPrefs[active.TenantID],
		profile.DefaultContext,
	)

	// Persist the outcome so the next resolution on this device reproduces
	// it. Both writes are best-effort and must never fail the read path.
	if session.ActiveContext != "" {
		if contextPrefs[active.TenantID] != session.ActiveContext {
			if err := s.storage.SetDeviceContext(ctx, identityID, deviceID, active.TenantID, session.ActiveContext); err != nil {
				s.logger.Warnf("failed to persist device context preference: %v", err)
			}
		}
		if profile.DefaultContext != session.ActiveContext {
			if err := s.storage.SetDefaultContext(ctx, identityID, session.ActiveContext); err != nil {
				s.logger.Warnf("failed to mirror default context to profile: %v", err)
			}
		}
	}

	return session
}

// SwitchTenant makes the given tenant active for this device. The choice is
// persisted before re-resolving so the context selector runs against the new
// tenant; a context valid for the old tenant may not be valid for the new one.
func (s *Service) SwitchTenant(ctx context.Context, identityID, deviceID, tenantID string) (*Session, error) {
	ctx, span := s.tracer.Start(ctx, "session.Service.SwitchTenant")
	defer span.End()

	memberships, err := s.storage.ListMembershipsByIdentity(ctx, identityID)
	if err != nil {
		return nil, err
	}

	valid := false
	for _, m := range memberships {
		if m.TenantID == tenantID && m.Status == types.MembershipStatusActive {
			valid = true
			break
		}
	}
	if !valid {
		return nil, ErrNotMember
	}

	if err := s.storage.SetDeviceTenant(ctx, identityID, deviceID, tenantID); err != nil {
		return nil, err
	}

	return s.Resolve(ctx, identityID, deviceID)
}

// SwitchContext makes the given context active within the currently active
// tenant. The per-tenant device preference write must succeed; mirroring to
// the profile default is best-effort.
func (s *Service) SwitchContext(ctx context.Context, identityID, deviceID, appContext string) (*Session, error) {
	ctx, span := s.tracer.Start(ctx, "session.Service.SwitchContext")
	defer span.End()

	session, err := s.Resolve(ctx, identityID, deviceID)
	if err != nil {
		return nil, err
	}
	if session.ActiveMembership == nil {
		return nil, ErrNoActiveTenant
	}
	if !session.CanAccessContext(appContext) {
		return nil, ErrContextUnavailable
	}

	if err := s.storage.SetDeviceContext(ctx, identityID, deviceID, session.ActiveTenantID(), appContext); err != nil {
		return nil, err
	}

	if err := s.storage.SetDefaultContext(ctx, identityID, appContext); err != nil {
		s.logger.Warnf("failed to mirror default context to profile: %v", err)
	}

	return s.Resolve(ctx, identityID, deviceID)
}
