// Copyright 2026 Tribes Music Ltd.
// SPDX-License-Identifier: AGPL-3.0

package session

import (
	"testing"
)

func TestCachePublishAndGet(t *testing.T) {
	cache := NewCache()
	session := &Session{AccessState: StateActive}

	if _, ok := cache.Get("id-1", "device-1"); ok {
		t.Error("expected cache miss before any publish")
	}

	if !cache.Publish("id-1", "device-1", 1, session) {
		t.Error("first publish should be kept")
	}

	got, ok := cache.Get("id-1", "device-1")
	if !ok {
		t.Fatal("expected cache hit after publish")
	}
	if got != session {
		t.Error("cache returned a different snapshot")
	}
}

func TestCacheIsDeviceScoped(t *testing.T) {
	cache := NewCache()

	cache.Publish("id-1", "device-1", 1, &Session{AccessState: StateActive})

	// Preferences differ per device, so another device must resolve fresh.
	if _, ok := cache.Get("id-1", "device-2"); ok {
		t.Error("snapshot resolved on one device served to another")
	}
	if _, ok := cache.Get("id-1", "device-1"); !ok {
		t.Error("expected cache hit for the publishing device")
	}
}

func TestCacheDiscardsStalePass(t *testing.T) {
	cache := NewCache()
	fresh := &Session{AccessState: StateActive}
	stale := &Session{AccessState: StateNoAccessRequest}

	// Pass 2 finishes first, pass 1 straggles in afterwards.
	if !cache.Publish("id-1", "device-1", 2, fresh) {
		t.Fatal("newer pass should be kept")
	}
	if cache.Publish("id-1", "device-1", 1, stale) {
		t.Error("stale pass should be discarded")
	}

	got, ok := cache.Get("id-1", "device-1")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got != fresh {
		t.Error("stale pass overwrote the newer snapshot")
	}
}

func TestCacheEqualSequenceIsDiscarded(t *testing.T) {
	cache := NewCache()

	cache.Publish("id-1", "device-1", 5, &Session{AccessState: StateActive})
	if cache.Publish("id-1", "device-1", 5, &Session{AccessState: StateNoProfile}) {
		t.Error("a pass must not replace a snapshot with its own sequence number")
	}
}

func TestCacheInvalidate(t *testing.T) {
	cache := NewCache()
	stale := &Session{AccessState: StateActive}

	cache.Publish("id-1", "device-1", 3, stale)
	cache.Invalidate("id-1")

	if _, ok := cache.Get("id-1", "device-1"); ok {
		t.Error("expected cache miss after invalidation")
	}

	// A pass that was in flight when the invalidation happened must not
	// bring the dropped snapshot back.
	if cache.Publish("id-1", "device-1", 2, stale) {
		t.Error("in-flight stale pass re-published after invalidation")
	}
	if _, ok := cache.Get("id-1", "device-1"); ok {
		t.Error("stale snapshot resurfaced after invalidation")
	}

	if !cache.Publish("id-1", "device-1", 4, &Session{AccessState: StateActive}) {
		t.Error("fresh pass after invalidation should be kept")
	}
}

func TestCacheInvalidateUnknownIdentity(t *testing.T) {
	cache := NewCache()
	cache.Invalidate("never-seen")

	if !cache.Publish("never-seen", "device-1", 1, &Session{AccessState: StateActive}) {
		t.Error("publish after no-op invalidation should be kept")
	}
}

func TestCacheIsolatesIdentities(t *testing.T) {
	cache := NewCache()

	cache.Publish("id-1", "device-1", 10, &Session{AccessState: StateActive})
	cache.Publish("id-2", "device-1", 1, &Session{AccessState: StateNoProfile})

	got, ok := cache.Get("id-2", "device-1")
	if !ok {
		t.Fatal("expected cache hit for second identity")
	}
	if got.AccessState != StateNoProfile {
		t.Error("identities share cache entries")
	}
}
