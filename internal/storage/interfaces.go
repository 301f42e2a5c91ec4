// Copyright 2026 Tribes Music Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"

	"github.com/tribes-music/session-service/internal/types"
)

type StorageInterface interface {
	GetProfileByIdentity(ctx context.Context, identityID string) (*types.Profile, error)
	CreateProfile(ctx context.Context, p *types.Profile) (*types.Profile, error)
	TouchLastLogin(ctx context.Context, identityID string) error
	SetDefaultContext(ctx context.Context, identityID, appContext string) error
	ListMembershipsByIdentity(ctx context.Context, identityID string) ([]*types.Membership, error)
	ListActiveMembershipsByIdentity(ctx context.Context, identityID string) ([]*types.Membership, error)
	ListContextPermissions(ctx context.Context) ([]*types.ContextPermission, error)
	GetDevicePreference(ctx context.Context, identityID, deviceID string) (*types.DevicePreference, error)
	SetDeviceTenant(ctx context.Context, identityID, deviceID, tenantID string) error
	SetDeviceContext(ctx context.Context, identityID, deviceID, tenantID, appContext string) error
}
