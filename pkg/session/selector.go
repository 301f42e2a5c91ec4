// Copyright 2026 Tribes Music Ltd.
// SPDX-License-Identifier: AGPL-3.0

package session

import (
	"slices"

	"github.com/tribes-music/session-service/internal/types"
)

// SelectActiveTenant picks exactly one active-status membership, first match
// wins: the tenant last chosen on this device, then the profile default, then
// the first membership in stored order. Nil when no active membership exists.
func SelectActiveTenant(memberships []*types.Membership, deviceTenantID, defaultTenantID string) *types.Membership {
	var pool []*types.Membership
	for _, m := range memberships {
		if m.Status == types.MembershipStatusActive {
			pool = append(pool, m)
		}
	}
	if len(pool) == 0 {
		return nil
	}

	for _, candidate := range []string{deviceTenantID, defaultTenantID} {
		if candidate == "" {
			continue
		}
		for _, m := range pool {
			if m.TenantID == candidate {
				return m
			}
		}
	}

	return pool[0]
}

// SelectActiveContext picks one context for the active membership out of its
// available set. A sole available context is chosen unconditionally; stored
// and default preferences only apply when there is an actual choice to make.
// The final tie-breaks are role-based: publishing-admin pulls towards
// publishing, otherwise licensing wins when available.
func SelectActiveContext(available []string, m *types.Membership, deviceContext, defaultContext string) string {
	if len(available) == 0 {
		return ""
	}
	if len(available) == 1 {
		return available[0]
	}

	if deviceContext != "" && slices.Contains(available, deviceContext) {
		return deviceContext
	}
	if defaultContext != "" && slices.Contains(available, defaultContext) {
		return defaultContext
	}

	if m != nil && slices.Contains(m.Roles, types.PortalRolePublishingAdmin) && slices.Contains(available, types.ContextPublishing) {
		return types.ContextPublishing
	}
	if slices.Contains(available, types.ContextLicensing) {
		return types.ContextLicensing
	}
	return available[0]
}
