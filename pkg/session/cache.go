// Copyright 2026 Tribes Music Ltd.
// SPDX-License-Identifier: AGPL-3.0

package session

import (
	"sync"
)

type cacheEntry struct {
	seq      uint64
	deviceID string
	session  *Session
}

// Cache holds the latest resolved snapshot per identity. Resolution passes
// carry a monotonically increasing sequence number; a pass that finishes
// after a newer one started is discarded instead of overwriting it.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]cacheEntry),
	}
}

// Publish stores the snapshot unless a pass with a higher sequence number
// already published for this identity. Reports whether the snapshot was kept.
func (c *Cache) Publish(identityID, deviceID string, seq uint64, s *Session) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.entries[identityID]; ok && existing.seq >= seq {
		return false
	}

	c.entries[identityID] = cacheEntry{seq: seq, deviceID: deviceID, session: s}
	return true
}

// Get returns the cached snapshot if it was produced on the same device.
// Preferences are device-scoped, so a snapshot resolved on another device
// must not be served.
func (c *Cache) Get(identityID, deviceID string) (*Session, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[identityID]
	if !ok || entry.session == nil || entry.deviceID != deviceID {
		return nil, false
	}
	return entry.session, true
}

// Invalidate drops the cached snapshot so the next resolution starts fresh.
// The sequence floor is kept so a pass that was already in flight when the
// invalidation happened cannot re-publish stale data.
func (c *Cache) Invalidate(identityID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[identityID]; ok {
		c.entries[identityID] = cacheEntry{seq: entry.seq}
	}
}
