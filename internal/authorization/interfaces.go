// Copyright 2026 Tribes Music Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"

	"github.com/tribes-music/session-service/internal/types"
)

// StorageInterface is the subset of the storage layer the authorizer needs.
type StorageInterface interface {
	ListContextPermissions(ctx context.Context) ([]*types.ContextPermission, error)
}

type AuthorizerInterface interface {
	PermissionTable(ctx context.Context) (PermissionTable, error)
}
