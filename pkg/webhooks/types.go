// Copyright 2026 Tribes Music Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

type IdentityEvent struct {
	ID     string         `json:"id"`
	Traits IdentityTraits `json:"traits"`
}

type IdentityTraits struct {
	Email string `json:"email"`
}
