// Copyright 2026 Tribes Music Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/tribes-music/session-service/internal/db"
	"github.com/tribes-music/session-service/internal/logging"
	"github.com/tribes-music/session-service/internal/monitoring"
	"github.com/tribes-music/session-service/internal/tracing"
	"github.com/tribes-music/session-service/internal/types"
)

var _ StorageInterface = (*Storage)(nil)

type Storage struct {
	db db.DBClientInterface

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func NewStorage(c db.DBClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Storage {
	s := new(Storage)

	s.db = c

	s.logger = logger
	s.tracer = tracer
	s.monitor = monitor

	return s
}

func (s *Storage) GetProfileByIdentity(ctx context.Context, identityID string) (*types.Profile, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetProfileByIdentity")
	defer span.End()

	var p types.Profile
	err := s.db.Statement(ctx).
		Select(
			"identity_id", "email", "platform_role", "status",
			"COALESCE(default_tenant_id::text, '')", "COALESCE(default_context, '')",
			"last_login_at", "created_at", "updated_at",
		).
		From("profiles").
		Where(sq.Eq{"identity_id": identityID}).
		QueryRowContext(ctx).
		Scan(
			&p.IdentityID, &p.Email, &p.PlatformRole, &p.Status,
			&p.DefaultTenantID, &p.DefaultContext,
			&p.LastLoginAt, &p.CreatedAt, &p.UpdatedAt,
		)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &p, nil
}

func (s *Storage) CreateProfile(ctx context.Context, p *types.Profile) (*types.Profile, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateProfile")
	defer span.End()

	var created types.Profile
	err := s.db.Statement(ctx).
		Insert("profiles").
		Columns("identity_id", "email", "platform_role", "status").
		Values(p.IdentityID, p.Email, p.PlatformRole, p.Status).
		Suffix("RETURNING identity_id, email, platform_role, status, COALESCE(default_tenant_id::text, ''), COALESCE(default_context, ''), last_login_at, created_at, updated_at").
		QueryRowContext(ctx).
		Scan(
			&created.IdentityID, &created.Email, &created.PlatformRole, &created.Status,
			&created.DefaultTenantID, &created.DefaultContext,
			&created.LastLoginAt, &created.CreatedAt, &created.UpdatedAt,
		)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, ErrDuplicateKey
		}
		return nil, fmt.Errorf("failed to insert profile: %w", err)
	}

	return &created, nil
}

func (s *Storage) TouchLastLogin(ctx context.Context, identityID string) error {
	ctx, span := s.tracer.Start(ctx, "storage.TouchLastLogin")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Update("profiles").
		Set("last_login_at", sq.Expr("now()")).
		Where(sq.Eq{"identity_id": identityID}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

func (s *Storage) SetDefaultContext(ctx context.Context, identityID, appContext string) error {
	ctx, span := s.tracer.Start(ctx, "storage.SetDefaultContext")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Update("profiles").
		Set("default_context", appContext).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"identity_id": identityID}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to set default context: %w", err)
	}
	return nil
}

func (s *Storage) ListMembershipsByIdentity(ctx context.Context, identityID string) ([]*types.Membership, error) {
	return s.listMembershipsByIdentity(ctx, identityID, false)
}

func (s *Storage) ListActiveMembershipsByIdentity(ctx context.Context, identityID string) ([]*types.Membership, error) {
	return s.listMembershipsByIdentity(ctx, identityID, true)
}

// listMembershipsByIdentity returns one membership per tenant with its portal
// roles folded in, ordered by membership creation time so downstream default
// selection is deterministic.
func (s *Storage) listMembershipsByIdentity(ctx context.Context, identityID string, activeOnly bool) ([]*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListMembershipsByIdentity")
	defer span.End()

	query := s.db.Statement(ctx).
		Select(
			"m.id", "m.tenant_id", "m.identity_id", "m.status",
			"t.name", "t.slug", "m.created_at", "m.updated_at",
			"COALESCE(r.portal_role, '')",
		).
		From("memberships m").
		Join("tenants t ON t.id = m.tenant_id").
		LeftJoin("membership_roles r ON r.membership_id = m.id").
		Where(sq.Eq{"m.identity_id": identityID}).
		OrderBy("m.created_at ASC", "m.id ASC")

	if activeOnly {
		query = query.Where(sq.Eq{"m.status": types.MembershipStatusActive})
	}

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	defer rows.Close()

	var memberships []*types.Membership
	byID := make(map[string]*types.Membership)

	for rows.Next() {
		var m types.Membership
		var role string
		if err := rows.Scan(
			&m.ID, &m.TenantID, &m.IdentityID, &m.Status,
			&m.TenantName, &m.TenantSlug, &m.CreatedAt, &m.UpdatedAt,
			&role,
		); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}

		existing, ok := byID[m.ID]
		if !ok {
			existing = &m
			byID[m.ID] = existing
			memberships = append(memberships, existing)
		}
		if role != "" {
			existing.Roles = append(existing.Roles, role)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return memberships, nil
}

func (s *Storage) ListContextPermissions(ctx context.Context) ([]*types.ContextPermission, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListContextPermissions")
	defer span.End()

	query := s.db.Statement(ctx).
		Select("portal_role", "app_context", "allowed").
		From("context_permissions").
		Where(sq.Eq{"allowed": true})

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list context permissions: %w", err)
	}
	defer rows.Close()

	var perms []*types.ContextPermission
	for rows.Next() {
		var p types.ContextPermission
		if err := rows.Scan(&p.Role, &p.Context, &p.Allowed); err != nil {
			return nil, fmt.Errorf("failed to scan context permission: %w", err)
		}
		perms = append(perms, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return perms, nil
}

func (s *Storage) GetDevicePreference(ctx context.Context, identityID, deviceID string) (*types.DevicePreference, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetDevicePreference")
	defer span.End()

	var p types.DevicePreference
	var prefs []byte
	err := s.db.Statement(ctx).
		Select("identity_id", "device_id", "COALESCE(active_tenant_id::text, '')", "context_prefs", "updated_at").
		From("device_preferences").
		Where(sq.Eq{"identity_id": identityID, "device_id": deviceID}).
		QueryRowContext(ctx).
		Scan(&p.IdentityID, &p.DeviceID, &p.ActiveTenantID, &prefs, &p.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get device preference: %w", err)
	}

	if len(prefs) > 0 {
		if err := json.Unmarshal(prefs, &p.ContextPrefs); err != nil {
			return nil, fmt.Errorf("failed to decode context preferences: %w", err)
		}
	}

	return &p, nil
}

func (s *Storage) SetDeviceTenant(ctx context.Context, identityID, deviceID, tenantID string) error {
	ctx, span := s.tracer.Start(ctx, "storage.SetDeviceTenant")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Insert("device_preferences").
		Columns("identity_id", "device_id", "active_tenant_id").
		Values(identityID, deviceID, tenantID).
		Suffix("ON CONFLICT (identity_id, device_id) DO UPDATE SET active_tenant_id = EXCLUDED.active_tenant_id, updated_at = now()").
		ExecContext(ctx)

	if err != nil {
		if IsForeignKeyViolation(err) {
			return ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to set device tenant: %w", err)
	}
	return nil
}

func (s *Storage) SetDeviceContext(ctx context.Context, identityID, deviceID, tenantID, appContext string) error {
	ctx, span := s.tracer.Start(ctx, "storage.SetDeviceContext")
	defer span.End()

	prefs, err := json.Marshal(map[string]string{tenantID: appContext})
	if err != nil {
		return fmt.Errorf("failed to encode context preference: %w", err)
	}

	_, err = s.db.Statement(ctx).
		Insert("device_preferences").
		Columns("identity_id", "device_id", "context_prefs").
		Values(identityID, deviceID, prefs).
		Suffix("ON CONFLICT (identity_id, device_id) DO UPDATE SET context_prefs = device_preferences.context_prefs || EXCLUDED.context_prefs, updated_at = now()").
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to set device context: %w", err)
	}
	return nil
}
