// Copyright 2026 Tribes Music Ltd.
// SPDX-License-Identifier: AGPL-3.0

package session

import (
	"context"

	"github.com/tribes-music/session-service/internal/authorization"
	"github.com/tribes-music/session-service/internal/types"
)

// StorageInterface is the subset of the storage layer the resolver needs.
type StorageInterface interface {
	GetProfileByIdentity(ctx context.Context, identityID string) (*types.Profile, error)
	TouchLastLogin(ctx context.Context, identityID string) error
	SetDefaultContext(ctx context.Context, identityID, appContext string) error
	ListMembershipsByIdentity(ctx context.Context, identityID string) ([]*types.Membership, error)
	GetDevicePreference(ctx context.Context, identityID, deviceID string) (*types.DevicePreference, error)
	SetDeviceTenant(ctx context.Context, identityID, deviceID, tenantID string) error
	SetDeviceContext(ctx context.Context, identityID, deviceID, tenantID, appContext string) error
}

type AuthzInterface interface {
	PermissionTable(ctx context.Context) (authorization.PermissionTable, error)
}

type ServiceInterface interface {
	Current(ctx context.Context, identityID, deviceID string) (*Session, error)
	Resolve(ctx context.Context, identityID, deviceID string) (*Session, error)
	SwitchTenant(ctx context.Context, identityID, deviceID, tenantID string) (*Session, error)
	SwitchContext(ctx context.Context, identityID, deviceID, appContext string) (*Session, error)
}
