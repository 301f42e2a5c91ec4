// Copyright 2026 Tribes Music Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/tribes-music/session-service/internal/logging"
	"github.com/tribes-music/session-service/internal/tracing"
	"github.com/tribes-music/session-service/internal/types"
)

func permRows() []*types.ContextPermission {
	return []*types.ContextPermission{
		{Role: types.PortalRoleTenantOwner, Context: types.ContextLicensing, Allowed: true},
		{Role: types.PortalRoleTenantOwner, Context: types.ContextPublishing, Allowed: true},
		{Role: types.PortalRolePublishingAdmin, Context: types.ContextPublishing, Allowed: true},
		{Role: types.PortalRoleLicensingUser, Context: types.ContextLicensing, Allowed: true},
		{Role: types.PortalRoleInternalAdmin, Context: types.ContextLicensing, Allowed: true},
		{Role: types.PortalRoleInternalAdmin, Context: types.ContextPublishing, Allowed: true},
	}
}

func TestPermissionTable_AvailableContexts(t *testing.T) {
	table := NewPermissionTable(permRows())

	testCases := []struct {
		name     string
		roles    []string
		expected []string
	}{
		{
			name:     "no roles yields empty set",
			roles:    nil,
			expected: nil,
		},
		{
			name:     "role without any allowed context yields empty set",
			roles:    []string{types.PortalRoleReadOnly},
			expected: nil,
		},
		{
			name:     "unknown role contributes nothing",
			roles:    []string{"made-up-role", types.PortalRoleLicensingUser},
			expected: []string{types.ContextLicensing},
		},
		{
			name:     "union over roles is deduplicated and ordered",
			roles:    []string{types.PortalRolePublishingAdmin, types.PortalRoleLicensingUser, types.PortalRoleTenantOwner},
			expected: []string{types.ContextLicensing, types.ContextPublishing},
		},
		{
			name:     "single context role",
			roles:    []string{types.PortalRolePublishingAdmin},
			expected: []string{types.ContextPublishing},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := table.AvailableContexts(tc.roles)
			if !slices.Equal(got, tc.expected) {
				t.Errorf("expected %v, got %v", tc.expected, got)
			}

			// Result must always be a subset of the global context enum.
			for _, c := range got {
				if c != types.ContextLicensing && c != types.ContextPublishing {
					t.Errorf("context %q outside the global enum", c)
				}
			}
		})
	}
}

func TestNewPermissionTable_IgnoresDisallowedAndUnknownRows(t *testing.T) {
	table := NewPermissionTable([]*types.ContextPermission{
		{Role: types.PortalRoleReadOnly, Context: types.ContextLicensing, Allowed: false},
		{Role: types.PortalRoleReadOnly, Context: "billing", Allowed: true},
		{Role: types.PortalRoleLicensingUser, Context: types.ContextLicensing, Allowed: true},
		{Role: types.PortalRoleLicensingUser, Context: types.ContextLicensing, Allowed: true},
	})

	if got := table.AvailableContexts([]string{types.PortalRoleReadOnly}); got != nil {
		t.Errorf("expected empty set for read-only, got %v", got)
	}

	got := table.AvailableContexts([]string{types.PortalRoleLicensingUser})
	if !slices.Equal(got, []string{types.ContextLicensing}) {
		t.Errorf("expected deduplicated [licensing], got %v", got)
	}
}

func TestPermissionTable_CanAccess(t *testing.T) {
	table := NewPermissionTable(permRows())

	if !table.CanAccess([]string{types.PortalRolePublishingAdmin}, types.ContextPublishing) {
		t.Error("publishing-admin should access publishing")
	}
	if table.CanAccess([]string{types.PortalRolePublishingAdmin}, types.ContextLicensing) {
		t.Error("publishing-admin should not access licensing")
	}
	if table.CanAccess(nil, types.ContextLicensing) {
		t.Error("no roles should access nothing")
	}
}

type countingStorage struct {
	calls int
	rows  []*types.ContextPermission
	err   error
}

func (c *countingStorage) ListContextPermissions(ctx context.Context) ([]*types.ContextPermission, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.rows, nil
}

func TestAuthorizer_PermissionTableIsCachedWithinInterval(t *testing.T) {
	s := &countingStorage{rows: permRows()}
	a := NewAuthorizer(s, 5*time.Minute, tracing.NewNoopTracer(), nil, logging.NewNoopLogger())

	for i := 0; i < 3; i++ {
		table, err := a.PermissionTable(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !table.CanAccess([]string{types.PortalRoleLicensingUser}, types.ContextLicensing) {
			t.Fatal("expected licensing-user to access licensing")
		}
	}

	if s.calls != 1 {
		t.Errorf("expected a single storage fetch, got %d", s.calls)
	}
}

func TestAuthorizer_ZeroIntervalDisablesCaching(t *testing.T) {
	s := &countingStorage{rows: permRows()}
	a := NewAuthorizer(s, 0, tracing.NewNoopTracer(), nil, logging.NewNoopLogger())

	for i := 0; i < 3; i++ {
		if _, err := a.PermissionTable(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if s.calls != 3 {
		t.Errorf("expected a fetch per call, got %d", s.calls)
	}
}

func TestAuthorizer_ServesStaleTableOnRefreshError(t *testing.T) {
	s := &countingStorage{rows: permRows()}
	a := NewAuthorizer(s, time.Minute, tracing.NewNoopTracer(), nil, logging.NewNoopLogger())

	if _, err := a.PermissionTable(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Expire the cached table and make the next refresh fail.
	a.fetchedAt = time.Now().Add(-2 * time.Minute)
	s.err = errors.New("connection refused")

	table, err := a.PermissionTable(context.Background())
	if err != nil {
		t.Fatalf("expected stale table, got error: %v", err)
	}
	if !table.CanAccess([]string{types.PortalRoleTenantOwner}, types.ContextPublishing) {
		t.Error("stale table should still answer access checks")
	}
	if s.calls != 2 {
		t.Errorf("expected a refresh attempt, got %d fetches", s.calls)
	}
}

func TestAuthorizer_ErrorWithNoCachedTable(t *testing.T) {
	s := &countingStorage{err: errors.New("connection refused")}
	a := NewAuthorizer(s, time.Minute, tracing.NewNoopTracer(), nil, logging.NewNoopLogger())

	if _, err := a.PermissionTable(context.Background()); err == nil {
		t.Fatal("expected error when no table was ever loaded")
	}
}
