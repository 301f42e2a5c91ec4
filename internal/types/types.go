// Copyright 2026 Tribes Music Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"time"
)

// Platform roles, scoped to an identity regardless of tenant.
const (
	PlatformRoleAdmin             = "platform-admin"
	PlatformRoleClient            = "client"
	PlatformRoleLicensingOperator = "licensing-operator"
)

// Profile statuses.
const (
	ProfileStatusActive    = "active"
	ProfileStatusSuspended = "suspended"
)

// Membership statuses.
const (
	MembershipStatusActive    = "active"
	MembershipStatusInvited   = "invited"
	MembershipStatusSuspended = "suspended"
)

// Portal roles, scoped to a single membership.
const (
	PortalRoleTenantOwner     = "tenant-owner"
	PortalRolePublishingAdmin = "publishing-admin"
	PortalRoleLicensingUser   = "licensing-user"
	PortalRoleReadOnly        = "read-only"
	PortalRoleInternalAdmin   = "internal-admin"
)

// Application contexts gated by portal role.
const (
	ContextLicensing  = "licensing"
	ContextPublishing = "publishing"
)

type Tenant struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Slug      string    `db:"slug"`
	CreatedAt time.Time `db:"created_at"`
}

// Profile is the platform-level record for an identity. DefaultTenantID and
// DefaultContext are empty when the profile carries no default.
type Profile struct {
	IdentityID      string     `db:"identity_id"`
	Email           string     `db:"email"`
	PlatformRole    string     `db:"platform_role"`
	Status          string     `db:"status"`
	DefaultTenantID string     `db:"default_tenant_id"`
	DefaultContext  string     `db:"default_context"`
	LastLoginAt     *time.Time `db:"last_login_at"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

// Membership links an identity to a tenant with one or more portal roles.
// TenantName and TenantSlug are denormalized from the tenants join.
type Membership struct {
	ID         string    `db:"id"`
	TenantID   string    `db:"tenant_id"`
	IdentityID string    `db:"identity_id"`
	Status     string    `db:"status"`
	Roles      []string  `db:"roles"`
	TenantName string    `db:"tenant_name"`
	TenantSlug string    `db:"tenant_slug"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// ContextPermission is one row of the static role to context mapping table.
type ContextPermission struct {
	Role    string `db:"portal_role"`
	Context string `db:"app_context"`
	Allowed bool   `db:"allowed"`
}

// DevicePreference mirrors the per-device local storage of the web clients:
// the tenant last chosen on the device and a per-tenant map of context choices.
type DevicePreference struct {
	IdentityID     string            `db:"identity_id"`
	DeviceID       string            `db:"device_id"`
	ActiveTenantID string            `db:"active_tenant_id"`
	ContextPrefs   map[string]string `db:"context_prefs"`
	UpdatedAt      time.Time         `db:"updated_at"`
}
