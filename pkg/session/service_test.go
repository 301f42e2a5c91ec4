// Copyright 2026 Tribes Music Ltd.
// SPDX-License-Identifier: AGPL-3.0

package session

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/tribes-music/session-service/internal/authorization"
	"github.com/tribes-music/session-service/internal/storage"
	"github.com/tribes-music/session-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package session -destination ./mock_session.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package session -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package session -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package session -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

func TestService_Resolve(t *testing.T) {
	identityID := "identity-1"
	deviceID := "device-1"
	dbErr := errors.New("db error")

	table := authorization.PermissionTable{
		types.PortalRoleLicensingUser:   {types.ContextLicensing},
		types.PortalRolePublishingAdmin: {types.ContextLicensing, types.ContextPublishing},
		types.PortalRoleTenantOwner:     {types.ContextLicensing, types.ContextPublishing},
	}

	memberships := []*types.Membership{
		{ID: "m-1", TenantID: "tenant-1", Status: types.MembershipStatusActive, Roles: []string{types.PortalRoleTenantOwner}},
		{ID: "m-2", TenantID: "tenant-2", Status: types.MembershipStatusActive, Roles: []string{types.PortalRolePublishingAdmin}},
	}

	testCases := []struct {
		name            string
		identityID      string
		setupMocks      func(*MockStorageInterface, *MockAuthzInterface, *MockLoggerInterface)
		expectedState   AccessState
		expectedTenant  string
		expectedContext string
	}{
		{
			name:          "missing identity resolves unauthenticated",
			identityID:    "",
			setupMocks:    func(*MockStorageInterface, *MockAuthzInterface, *MockLoggerInterface) {},
			expectedState: StateUnauthenticated,
		},
		{
			name:       "full resolution selects default tenant and role context",
			identityID: identityID,
			setupMocks: func(mockStorage *MockStorageInterface, mockAuthz *MockAuthzInterface, mockLogger *MockLoggerInterface) {
				profile := &types.Profile{
					IdentityID:      identityID,
					PlatformRole:    types.PlatformRoleClient,
					Status:          types.ProfileStatusActive,
					DefaultTenantID: "tenant-2",
				}
				mockStorage.EXPECT().GetProfileByIdentity(gomock.Any(), identityID).Return(profile, nil)
				mockStorage.EXPECT().ListMembershipsByIdentity(gomock.Any(), identityID).Return(memberships, nil)
				mockAuthz.EXPECT().PermissionTable(gomock.Any()).Return(table, nil)
				mockStorage.EXPECT().GetDevicePreference(gomock.Any(), identityID, deviceID).Return(nil, storage.ErrNotFound)
				mockStorage.EXPECT().TouchLastLogin(gomock.Any(), identityID).Return(nil)
				mockStorage.EXPECT().SetDeviceContext(gomock.Any(), identityID, deviceID, "tenant-2", types.ContextPublishing).Return(nil)
				mockStorage.EXPECT().SetDefaultContext(gomock.Any(), identityID, types.ContextPublishing).Return(nil)
			},
			expectedState:   StateActive,
			expectedTenant:  "tenant-2",
			expectedContext: types.ContextPublishing,
		},
		{
			name:       "device preference steers tenant and context",
			identityID: identityID,
			setupMocks: func(mockStorage *MockStorageInterface, mockAuthz *MockAuthzInterface, mockLogger *MockLoggerInterface) {
				profile := &types.Profile{
					IdentityID:      identityID,
					PlatformRole:    types.PlatformRoleClient,
					Status:          types.ProfileStatusActive,
					DefaultTenantID: "tenant-2",
					DefaultContext:  types.ContextPublishing,
				}
				pref := &types.DevicePreference{
					IdentityID:     identityID,
					DeviceID:       deviceID,
					ActiveTenantID: "tenant-1",
					ContextPrefs:   map[string]string{"tenant-1": types.ContextLicensing},
				}
				mockStorage.EXPECT().GetProfileByIdentity(gomock.Any(), identityID).Return(profile, nil)
				mockStorage.EXPECT().ListMembershipsByIdentity(gomock.Any(), identityID).Return(memberships, nil)
				mockAuthz.EXPECT().PermissionTable(gomock.Any()).Return(table, nil)
				mockStorage.EXPECT().GetDevicePreference(gomock.Any(), identityID, deviceID).Return(pref, nil)
				mockStorage.EXPECT().TouchLastLogin(gomock.Any(), identityID).Return(nil)
				mockStorage.EXPECT().SetDefaultContext(gomock.Any(), identityID, types.ContextLicensing).Return(nil)
			},
			expectedState:   StateActive,
			expectedTenant:  "tenant-1",
			expectedContext: types.ContextLicensing,
		},
		{
			name:       "profile fetch failure fails closed to no profile",
			identityID: identityID,
			setupMocks: func(mockStorage *MockStorageInterface, mockAuthz *MockAuthzInterface, mockLogger *MockLoggerInterface) {
				mockStorage.EXPECT().GetProfileByIdentity(gomock.Any(), identityID).Return(nil, dbErr)
				mockStorage.EXPECT().ListMembershipsByIdentity(gomock.Any(), identityID).Return(memberships, nil)
				mockAuthz.EXPECT().PermissionTable(gomock.Any()).Return(table, nil)
				mockStorage.EXPECT().GetDevicePreference(gomock.Any(), identityID, deviceID).Return(nil, storage.ErrNotFound)
				mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any(), gomock.Any())
			},
			expectedState: StateNoProfile,
		},
		{
			name:       "membership fetch failure degrades to empty set",
			identityID: identityID,
			setupMocks: func(mockStorage *MockStorageInterface, mockAuthz *MockAuthzInterface, mockLogger *MockLoggerInterface) {
				profile := &types.Profile{
					IdentityID:   identityID,
					PlatformRole: types.PlatformRoleClient,
					Status:       types.ProfileStatusActive,
				}
				mockStorage.EXPECT().GetProfileByIdentity(gomock.Any(), identityID).Return(profile, nil)
				mockStorage.EXPECT().ListMembershipsByIdentity(gomock.Any(), identityID).Return(nil, dbErr)
				mockAuthz.EXPECT().PermissionTable(gomock.Any()).Return(table, nil)
				mockStorage.EXPECT().GetDevicePreference(gomock.Any(), identityID, deviceID).Return(nil, storage.ErrNotFound)
				mockStorage.EXPECT().TouchLastLogin(gomock.Any(), identityID).Return(nil)
				mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any(), gomock.Any())
			},
			expectedState: StateNoAccessRequest,
		},
		{
			name:       "last login stamp failure does not fail resolution",
			identityID: identityID,
			setupMocks: func(mockStorage *MockStorageInterface, mockAuthz *MockAuthzInterface, mockLogger *MockLoggerInterface) {
				profile := &types.Profile{
					IdentityID:   identityID,
					PlatformRole: types.PlatformRoleClient,
					Status:       types.ProfileStatusActive,
				}
				mockStorage.EXPECT().GetProfileByIdentity(gomock.Any(), identityID).Return(profile, nil)
				mockStorage.EXPECT().ListMembershipsByIdentity(gomock.Any(), identityID).Return([]*types.Membership{}, nil)
				mockAuthz.EXPECT().PermissionTable(gomock.Any()).Return(table, nil)
				mockStorage.EXPECT().GetDevicePreference(gomock.Any(), identityID, deviceID).Return(nil, storage.ErrNotFound)
				mockStorage.EXPECT().TouchLastLogin(gomock.Any(), identityID).Return(dbErr)
				mockLogger.EXPECT().Warnf(gomock.Any(), gomock.Any(), gomock.Any())
			},
			expectedState: StateNoAccessRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			mockAuthz := NewMockAuthzInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)

			s := NewService(mockStorage, mockAuthz, NewCache(), mockTracer, mockMonitor, mockLogger)

			mockTracer.EXPECT().Start(gomock.Any(), "session.Service.Resolve").Return(context.Background(), trace.SpanFromContext(context.Background()))
			tc.setupMocks(mockStorage, mockAuthz, mockLogger)

			session, err := s.Resolve(context.Background(), tc.identityID, deviceID)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if session.AccessState != tc.expectedState {
				t.Errorf("expected access state %q, got %q", tc.expectedState, session.AccessState)
			}
			if session.ActiveTenantID() != tc.expectedTenant {
				t.Errorf("expected active tenant %q, got %q", tc.expectedTenant, session.ActiveTenantID())
			}
			if session.ActiveContext != tc.expectedContext {
				t.Errorf("expected active context %q, got %q", tc.expectedContext, session.ActiveContext)
			}
		})
	}
}

func TestService_ResolvePublishesToCache(t *testing.T) {
	identityID := "identity-1"
	deviceID := "device-1"

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := NewMockStorageInterface(ctrl)
	mockAuthz := NewMockAuthzInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)

	cache := NewCache()
	s := NewService(mockStorage, mockAuthz, cache, mockTracer, mockMonitor, mockLogger)

	mockTracer.EXPECT().Start(gomock.Any(), "session.Service.Resolve").Return(context.Background(), trace.SpanFromContext(context.Background()))
	mockStorage.EXPECT().GetProfileByIdentity(gomock.Any(), identityID).Return(nil, storage.ErrNotFound)
	mockStorage.EXPECT().ListMembershipsByIdentity(gomock.Any(), identityID).Return(nil, nil)
	mockAuthz.EXPECT().PermissionTable(gomock.Any()).Return(authorization.PermissionTable{}, nil)
	mockStorage.EXPECT().GetDevicePreference(gomock.Any(), identityID, deviceID).Return(nil, storage.ErrNotFound)

	session, err := s.Resolve(context.Background(), identityID, deviceID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cached, ok := cache.Get(identityID, deviceID)
	if !ok {
		t.Fatal("expected resolution to publish a snapshot")
	}
	if cached != session {
		t.Error("cached snapshot differs from the returned one")
	}
}

func TestService_Current(t *testing.T) {
	identityID := "identity-1"
	deviceID := "device-1"

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := NewMockStorageInterface(ctrl)
	mockAuthz := NewMockAuthzInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)

	cache := NewCache()
	s := NewService(mockStorage, mockAuthz, cache, mockTracer, mockMonitor, mockLogger)

	mockTracer.EXPECT().Start(gomock.Any(), "session.Service.Current").Return(context.Background(), trace.SpanFromContext(context.Background())).Times(4)

	resolvePass := func(device string) {
		mockTracer.EXPECT().Start(gomock.Any(), "session.Service.Resolve").Return(context.Background(), trace.SpanFromContext(context.Background()))
		mockStorage.EXPECT().GetProfileByIdentity(gomock.Any(), identityID).Return(nil, storage.ErrNotFound)
		mockStorage.EXPECT().ListMembershipsByIdentity(gomock.Any(), identityID).Return(nil, nil)
		mockAuthz.EXPECT().PermissionTable(gomock.Any()).Return(authorization.PermissionTable{}, nil)
		mockStorage.EXPECT().GetDevicePreference(gomock.Any(), identityID, device).Return(nil, storage.ErrNotFound)
	}

	resolvePass(deviceID)
	first, err := s.Current(context.Background(), identityID, deviceID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A second request on the same device is served from the snapshot.
	second, err := s.Current(context.Background(), identityID, deviceID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second != first {
		t.Error("expected the cached snapshot, got a fresh resolution")
	}

	// Another device carries its own preferences and resolves fresh.
	resolvePass("device-2")
	if _, err := s.Current(context.Background(), identityID, "device-2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// After an invalidation the next request resolves fresh again.
	cache.Invalidate(identityID)
	resolvePass(deviceID)
	third, err := s.Current(context.Background(), identityID, deviceID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if third == first {
		t.Error("invalidated snapshot served again")
	}
}

func TestService_SwitchTenant(t *testing.T) {
	identityID := "identity-1"
	deviceID := "device-1"
	dbErr := errors.New("db error")

	profile := &types.Profile{
		IdentityID:   identityID,
		PlatformRole: types.PlatformRoleClient,
		Status:       types.ProfileStatusActive,
	}
	memberships := []*types.Membership{
		{ID: "m-1", TenantID: "tenant-1", Status: types.MembershipStatusActive, Roles: []string{types.PortalRoleReadOnly}},
		{ID: "m-2", TenantID: "tenant-2", Status: types.MembershipStatusActive, Roles: []string{types.PortalRoleReadOnly}},
	}

	testCases := []struct {
		name            string
		tenantID        string
		setupMocks      func(*MockStorageInterface, *MockAuthzInterface, *MockTracingInterface)
		expectedTenant  string
		expectedContext string
		expectedErr     error
	}{
		{
			name:     "success re-resolves with the new tenant",
			tenantID: "tenant-2",
			setupMocks: func(mockStorage *MockStorageInterface, mockAuthz *MockAuthzInterface, mockTracer *MockTracingInterface) {
				mockStorage.EXPECT().ListMembershipsByIdentity(gomock.Any(), identityID).Return(memberships, nil)
				mockStorage.EXPECT().SetDeviceTenant(gomock.Any(), identityID, deviceID, "tenant-2").Return(nil)

				mockTracer.EXPECT().Start(gomock.Any(), "session.Service.Resolve").Return(context.Background(), trace.SpanFromContext(context.Background()))
				mockStorage.EXPECT().GetProfileByIdentity(gomock.Any(), identityID).Return(profile, nil)
				mockStorage.EXPECT().ListMembershipsByIdentity(gomock.Any(), identityID).Return(memberships, nil)
				mockAuthz.EXPECT().PermissionTable(gomock.Any()).Return(authorization.PermissionTable{}, nil)
				mockStorage.EXPECT().GetDevicePreference(gomock.Any(), identityID, deviceID).Return(&types.DevicePreference{
					IdentityID:     identityID,
					DeviceID:       deviceID,
					ActiveTenantID: "tenant-2",
				}, nil)
				mockStorage.EXPECT().TouchLastLogin(gomock.Any(), identityID).Return(nil)
			},
			expectedTenant: "tenant-2",
		},
		{
			name:     "switch recomputes the context for the new tenant",
			tenantID: "tenant-2",
			setupMocks: func(mockStorage *MockStorageInterface, mockAuthz *MockAuthzInterface, mockTracer *MockTracingInterface) {
				roleMemberships := []*types.Membership{
					{ID: "m-1", TenantID: "tenant-1", Status: types.MembershipStatusActive, Roles: []string{types.PortalRoleLicensingUser}},
					{ID: "m-2", TenantID: "tenant-2", Status: types.MembershipStatusActive, Roles: []string{types.PortalRolePublishingAdmin}},
				}
				roleTable := authorization.PermissionTable{
					types.PortalRoleLicensingUser:   {types.ContextLicensing},
					types.PortalRolePublishingAdmin: {types.ContextPublishing},
				}
				licensingProfile := &types.Profile{
					IdentityID:     identityID,
					PlatformRole:   types.PlatformRoleClient,
					Status:         types.ProfileStatusActive,
					DefaultContext: types.ContextLicensing,
				}

				mockStorage.EXPECT().ListMembershipsByIdentity(gomock.Any(), identityID).Return(roleMemberships, nil)
				mockStorage.EXPECT().SetDeviceTenant(gomock.Any(), identityID, deviceID, "tenant-2").Return(nil)

				// The re-resolution must not carry the old tenant's licensing
				// context into a tenant where only publishing is available.
				mockTracer.EXPECT().Start(gomock.Any(), "session.Service.Resolve").Return(context.Background(), trace.SpanFromContext(context.Background()))
				mockStorage.EXPECT().GetProfileByIdentity(gomock.Any(), identityID).Return(licensingProfile, nil)
				mockStorage.EXPECT().ListMembershipsByIdentity(gomock.Any(), identityID).Return(roleMemberships, nil)
				mockAuthz.EXPECT().PermissionTable(gomock.Any()).Return(roleTable, nil)
				mockStorage.EXPECT().GetDevicePreference(gomock.Any(), identityID, deviceID).Return(&types.DevicePreference{
					IdentityID:     identityID,
					DeviceID:       deviceID,
					ActiveTenantID: "tenant-2",
					ContextPrefs:   map[string]string{"tenant-1": types.ContextLicensing},
				}, nil)
				mockStorage.EXPECT().TouchLastLogin(gomock.Any(), identityID).Return(nil)
				mockStorage.EXPECT().SetDeviceContext(gomock.Any(), identityID, deviceID, "tenant-2", types.ContextPublishing).Return(nil)
				mockStorage.EXPECT().SetDefaultContext(gomock.Any(), identityID, types.ContextPublishing).Return(nil)
			},
			expectedTenant:  "tenant-2",
			expectedContext: types.ContextPublishing,
		},
		{
			name:     "membership with wrong status is rejected",
			tenantID: "tenant-3",
			setupMocks: func(mockStorage *MockStorageInterface, _ *MockAuthzInterface, _ *MockTracingInterface) {
				mockStorage.EXPECT().ListMembershipsByIdentity(gomock.Any(), identityID).Return([]*types.Membership{
					{ID: "m-3", TenantID: "tenant-3", Status: types.MembershipStatusInvited},
				}, nil)
			},
			expectedErr: ErrNotMember,
		},
		{
			name:     "no membership at all is rejected",
			tenantID: "tenant-9",
			setupMocks: func(mockStorage *MockStorageInterface, _ *MockAuthzInterface, _ *MockTracingInterface) {
				mockStorage.EXPECT().ListMembershipsByIdentity(gomock.Any(), identityID).Return(memberships, nil)
			},
			expectedErr: ErrNotMember,
		},
		{
			name:     "membership lookup failure propagates",
			tenantID: "tenant-2",
			setupMocks: func(mockStorage *MockStorageInterface, _ *MockAuthzInterface, _ *MockTracingInterface) {
				mockStorage.EXPECT().ListMembershipsByIdentity(gomock.Any(), identityID).Return(nil, dbErr)
			},
			expectedErr: dbErr,
		},
		{
			name:     "device preference write failure propagates",
			tenantID: "tenant-2",
			setupMocks: func(mockStorage *MockStorageInterface, _ *MockAuthzInterface, _ *MockTracingInterface) {
				mockStorage.EXPECT().ListMembershipsByIdentity(gomock.Any(), identityID).Return(memberships, nil)
				mockStorage.EXPECT().SetDeviceTenant(gomock.Any(), identityID, deviceID, "tenant-2").Return(dbErr)
			},
			expectedErr: dbErr,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			mockAuthz := NewMockAuthzInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)

			s := NewService(mockStorage, mockAuthz, NewCache(), mockTracer, mockMonitor, mockLogger)

			mockTracer.EXPECT().Start(gomock.Any(), "session.Service.SwitchTenant").Return(context.Background(), trace.SpanFromContext(context.Background()))
			tc.setupMocks(mockStorage, mockAuthz, mockTracer)

			session, err := s.SwitchTenant(context.Background(), identityID, deviceID, tc.tenantID)

			if tc.expectedErr != nil {
				if !errors.Is(err, tc.expectedErr) {
					t.Fatalf("expected error %v, got %v", tc.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if session.ActiveTenantID() != tc.expectedTenant {
				t.Errorf("expected active tenant %q, got %q", tc.expectedTenant, session.ActiveTenantID())
			}
			if session.ActiveContext != tc.expectedContext {
				t.Errorf("expected active context %q, got %q", tc.expectedContext, session.ActiveContext)
			}
		})
	}
}

func TestService_SwitchContext(t *testing.T) {
	identityID := "identity-1"
	deviceID := "device-1"
	dbErr := errors.New("db error")

	table := authorization.PermissionTable{
		types.PortalRoleTenantOwner: {types.ContextLicensing, types.ContextPublishing},
	}
	memberships := []*types.Membership{
		{ID: "m-1", TenantID: "tenant-1", Status: types.MembershipStatusActive, Roles: []string{types.PortalRoleTenantOwner}},
	}
	// Preference and default both already match the resolved context so the
	// resolution passes themselves trigger no writes.
	settledProfile := func(appContext string) *types.Profile {
		return &types.Profile{
			IdentityID:     identityID,
			PlatformRole:   types.PlatformRoleClient,
			Status:         types.ProfileStatusActive,
			DefaultContext: appContext,
		}
	}
	settledPref := func(appContext string) *types.DevicePreference {
		return &types.DevicePreference{
			IdentityID:     identityID,
			DeviceID:       deviceID,
			ActiveTenantID: "tenant-1",
			ContextPrefs:   map[string]string{"tenant-1": appContext},
		}
	}

	t.Run("success persists and re-resolves", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockStorage := NewMockStorageInterface(ctrl)
		mockAuthz := NewMockAuthzInterface(ctrl)
		mockTracer := NewMockTracingInterface(ctrl)
		mockLogger := NewMockLoggerInterface(ctrl)
		mockMonitor := NewMockMonitorInterface(ctrl)

		s := NewService(mockStorage, mockAuthz, NewCache(), mockTracer, mockMonitor, mockLogger)

		mockTracer.EXPECT().Start(gomock.Any(), "session.Service.SwitchContext").Return(context.Background(), trace.SpanFromContext(context.Background()))
		mockTracer.EXPECT().Start(gomock.Any(), "session.Service.Resolve").Return(context.Background(), trace.SpanFromContext(context.Background())).Times(2)

		mockStorage.EXPECT().ListMembershipsByIdentity(gomock.Any(), identityID).Return(memberships, nil).Times(2)
		mockAuthz.EXPECT().PermissionTable(gomock.Any()).Return(table, nil).Times(2)
		mockStorage.EXPECT().TouchLastLogin(gomock.Any(), identityID).Return(nil).Times(2)

		// First pass sees licensing settled, second pass sees publishing.
		mockStorage.EXPECT().GetProfileByIdentity(gomock.Any(), identityID).Return(settledProfile(types.ContextLicensing), nil)
		mockStorage.EXPECT().GetProfileByIdentity(gomock.Any(), identityID).Return(settledProfile(types.ContextPublishing), nil)
		mockStorage.EXPECT().GetDevicePreference(gomock.Any(), identityID, deviceID).Return(settledPref(types.ContextLicensing), nil)
		mockStorage.EXPECT().GetDevicePreference(gomock.Any(), identityID, deviceID).Return(settledPref(types.ContextPublishing), nil)

		mockStorage.EXPECT().SetDeviceContext(gomock.Any(), identityID, deviceID, "tenant-1", types.ContextPublishing).Return(nil)
		mockStorage.EXPECT().SetDefaultContext(gomock.Any(), identityID, types.ContextPublishing).Return(nil)

		session, err := s.SwitchContext(context.Background(), identityID, deviceID, types.ContextPublishing)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if session.ActiveContext != types.ContextPublishing {
			t.Errorf("expected active context %q, got %q", types.ContextPublishing, session.ActiveContext)
		}
	})

	t.Run("no active tenant", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockStorage := NewMockStorageInterface(ctrl)
		mockAuthz := NewMockAuthzInterface(ctrl)
		mockTracer := NewMockTracingInterface(ctrl)
		mockLogger := NewMockLoggerInterface(ctrl)
		mockMonitor := NewMockMonitorInterface(ctrl)

		s := NewService(mockStorage, mockAuthz, NewCache(), mockTracer, mockMonitor, mockLogger)

		mockTracer.EXPECT().Start(gomock.Any(), "session.Service.SwitchContext").Return(context.Background(), trace.SpanFromContext(context.Background()))
		mockTracer.EXPECT().Start(gomock.Any(), "session.Service.Resolve").Return(context.Background(), trace.SpanFromContext(context.Background()))

		mockStorage.EXPECT().GetProfileByIdentity(gomock.Any(), identityID).Return(settledProfile(""), nil)
		mockStorage.EXPECT().ListMembershipsByIdentity(gomock.Any(), identityID).Return(nil, nil)
		mockAuthz.EXPECT().PermissionTable(gomock.Any()).Return(table, nil)
		mockStorage.EXPECT().GetDevicePreference(gomock.Any(), identityID, deviceID).Return(nil, storage.ErrNotFound)
		mockStorage.EXPECT().TouchLastLogin(gomock.Any(), identityID).Return(nil)

		_, err := s.SwitchContext(context.Background(), identityID, deviceID, types.ContextPublishing)
		if !errors.Is(err, ErrNoActiveTenant) {
			t.Fatalf("expected ErrNoActiveTenant, got %v", err)
		}
	})

	t.Run("context not available", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockStorage := NewMockStorageInterface(ctrl)
		mockAuthz := NewMockAuthzInterface(ctrl)
		mockTracer := NewMockTracingInterface(ctrl)
		mockLogger := NewMockLoggerInterface(ctrl)
		mockMonitor := NewMockMonitorInterface(ctrl)

		s := NewService(mockStorage, mockAuthz, NewCache(), mockTracer, mockMonitor, mockLogger)

		licensingOnly := authorization.PermissionTable{
			types.PortalRoleTenantOwner: {types.ContextLicensing},
		}

		mockTracer.EXPECT().Start(gomock.Any(), "session.Service.SwitchContext").Return(context.Background(), trace.SpanFromContext(context.Background()))
		mockTracer.EXPECT().Start(gomock.Any(), "session.Service.Resolve").Return(context.Background(), trace.SpanFromContext(context.Background()))

		mockStorage.EXPECT().GetProfileByIdentity(gomock.Any(), identityID).Return(settledProfile(types.ContextLicensing), nil)
		mockStorage.EXPECT().ListMembershipsByIdentity(gomock.Any(), identityID).Return(memberships, nil)
		mockAuthz.EXPECT().PermissionTable(gomock.Any()).Return(licensingOnly, nil)
		mockStorage.EXPECT().GetDevicePreference(gomock.Any(), identityID, deviceID).Return(settledPref(types.ContextLicensing), nil)
		mockStorage.EXPECT().TouchLastLogin(gomock.Any(), identityID).Return(nil)

		_, err := s.SwitchContext(context.Background(), identityID, deviceID, types.ContextPublishing)
		if !errors.Is(err, ErrContextUnavailable) {
			t.Fatalf("expected ErrContextUnavailable, got %v", err)
		}
	})

	t.Run("device preference write failure propagates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockStorage := NewMockStorageInterface(ctrl)
		mockAuthz := NewMockAuthzInterface(ctrl)
		mockTracer := NewMockTracingInterface(ctrl)
		mockLogger := NewMockLoggerInterface(ctrl)
		mockMonitor := NewMockMonitorInterface(ctrl)

		s := NewService(mockStorage, mockAuthz, NewCache(), mockTracer, mockMonitor, mockLogger)

		mockTracer.EXPECT().Start(gomock.Any(), "session.Service.SwitchContext").Return(context.Background(), trace.SpanFromContext(context.Background()))
		mockTracer.EXPECT().Start(gomock.Any(), "session.Service.Resolve").Return(context.Background(), trace.SpanFromContext(context.Background()))

		mockStorage.EXPECT().GetProfileByIdentity(gomock.Any(), identityID).Return(settledProfile(types.ContextLicensing), nil)
		mockStorage.EXPECT().ListMembershipsByIdentity(gomock.Any(), identityID).Return(memberships, nil)
		mockAuthz.EXPECT().PermissionTable(gomock.Any()).Return(table, nil)
		mockStorage.EXPECT().GetDevicePreference(gomock.Any(), identityID, deviceID).Return(settledPref(types.ContextLicensing), nil)
		mockStorage.EXPECT().TouchLastLogin(gomock.Any(), identityID).Return(nil)
		mockStorage.EXPECT().SetDeviceContext(gomock.Any(), identityID, deviceID, "tenant-1", types.ContextPublishing).Return(dbErr)

		_, err := s.SwitchContext(context.Background(), identityID, deviceID, types.ContextPublishing)
		if !errors.Is(err, dbErr) {
			t.Fatalf("expected %v, got %v", dbErr, err)
		}
	})
}
