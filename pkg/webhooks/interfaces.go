// Copyright 2026 Tribes Music Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"

	"github.com/tribes-music/session-service/internal/types"
)

// StorageInterface is the subset of the storage layer the webhook handlers need.
type StorageInterface interface {
	CreateProfile(ctx context.Context, p *types.Profile) (*types.Profile, error)
}

// IdpClientInterface resolves identity traits from the identity provider when
// the webhook payload does not carry them.
type IdpClientInterface interface {
	GetIdentityEmail(ctx context.Context, id string) (string, error)
}

// CacheInterface drops resolved session snapshots after identity changes.
type CacheInterface interface {
	Invalidate(identityID string)
}

// ServiceInterface defines the webhook service operations.
type ServiceInterface interface {
	HandleRegistration(ctx context.Context, identityID, email string) error
	HandleIdentityChange(ctx context.Context, identityID string) error
}
