// Copyright 2026 Tribes Music Ltd.
// SPDX-License-Identifier: AGPL-3.0

package session

import (
	"github.com/tribes-music/session-service/internal/types"
)

// AccessState is the coarse classification route guards branch on.
type AccessState string

const (
	// StateUnknown is only ever seen on cache placeholders while a
	// resolution pass is in flight; it is never returned by Classify.
	StateUnknown          AccessState = ""
	StateUnauthenticated  AccessState = "unauthenticated"
	StateNoProfile        AccessState = "no-profile"
	StateSuspendedProfile AccessState = "suspended-profile"
	StateNoAccessRequest  AccessState = "no-access-request"
	StatePendingApproval  AccessState = "pending-approval"
	StateSuspendedAccess  AccessState = "suspended-access"
	StateActive           AccessState = "active"
)

// Classify reduces already-loaded identity, profile, and membership data into
// exactly one access state. It performs no I/O. The rules are evaluated in
// fixed order; platform admins bypass membership checks entirely.
func Classify(identityPresent bool, profile *types.Profile, memberships []*types.Membership) AccessState {
	if !identityPresent {
		return StateUnauthenticated
	}
	if profile == nil {
		return StateNoProfile
	}
	if profile.Status == types.ProfileStatusSuspended {
		return StateSuspendedProfile
	}
	if profile.PlatformRole == types.PlatformRoleAdmin {
		return StateActive
	}
	if len(memberships) == 0 {
		return StateNoAccessRequest
	}

	invited := false
	for _, m := range memberships {
		switch m.Status {
		case types.MembershipStatusActive:
			return StateActive
		case types.MembershipStatusInvited:
			invited = true
		}
	}
	if invited {
		return StatePendingApproval
	}
	return StateSuspendedAccess
}
