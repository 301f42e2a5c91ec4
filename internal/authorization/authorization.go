// Copyright 2026 Tribes Music Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/tribes-music/session-service/internal/logging"
	"github.com/tribes-music/session-service/internal/monitoring"
	"github.com/tribes-music/session-service/internal/tracing"
	"github.com/tribes-music/session-service/internal/types"
)

// contextOrder fixes the iteration order of the global context enum so
// derived context sets are deterministic.
var contextOrder = []string{types.ContextLicensing, types.ContextPublishing}

// PermissionTable maps a portal role to the application contexts it may enter.
type PermissionTable map[string][]string

// NewPermissionTable folds flat (role, context, allowed) rows into a lookup.
// Rows with allowed=false or contexts outside the known enum are ignored.
func NewPermissionTable(rows []*types.ContextPermission) PermissionTable {
	t := make(PermissionTable)
	for _, row := range rows {
		if !row.Allowed {
			continue
		}
		if !slices.Contains(contextOrder, row.Context) {
			continue
		}
		if !slices.Contains(t[row.Role], row.Context) {
			t[row.Role] = append(t[row.Role], row.Context)
		}
	}
	return t
}

// AvailableContexts returns the union of contexts permitted for the given
// portal roles, deduplicated, in the fixed enum order. No roles, or roles
// unknown to the table, yield an empty set; that is a valid outcome, not an
// error.
func (t PermissionTable) AvailableContexts(roles []string) []string {
	allowed := make(map[string]bool)
	for _, role := range roles {
		for _, c := range t[role] {
			allowed[c] = true
		}
	}

	var contexts []string
	for _, c := range contextOrder {
		if allowed[c] {
			contexts = append(contexts, c)
		}
	}
	return contexts
}

// CanAccess reports whether any of the given roles permits the context.
func (t PermissionTable) CanAccess(roles []string, appContext string) bool {
	return slices.Contains(t.AvailableContexts(roles), appContext)
}

var _ AuthorizerInterface = (*Authorizer)(nil)

// Authorizer loads the context-permission table and caches it for the
// configured refresh interval. The table changes rarely; a short staleness
// window is acceptable and keeps the resolver off the permissions table on
// every request. A zero interval disables caching.
type Authorizer struct {
	storage         StorageInterface
	refreshInterval time.Duration

	mu        sync.Mutex
	table     PermissionTable
	fetchedAt time.Time

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewAuthorizer(storage StorageInterface, refreshInterval time.Duration, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Authorizer {
	return &Authorizer{
		storage:         storage,
		refreshInterval: refreshInterval,
		tracer:          tracer,
		monitor:         monitor,
		logger:          logger,
	}
}

func (a *Authorizer) PermissionTable(ctx context.Context) (PermissionTable, error) {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.PermissionTable")
	defer span.End()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.table != nil && a.refreshInterval > 0 && time.Since(a.fetchedAt) < a.refreshInterval {
		return a.table, nil
	}

	rows, err := a.storage.ListContextPermissions(ctx)
	if err != nil {
		if a.table != nil {
			a.logger.Warnf("failed to refresh permission table, serving previous one: %v", err)
			return a.table, nil
		}
		return nil, err
	}

	a.table = NewPermissionTable(rows)
	a.fetchedAt = time.Now()

	return a.table, nil
}
