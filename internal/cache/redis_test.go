package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func initTestCache(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	s := miniredis.RunT(t)
	if err := Init(s.Addr(), ""); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(Close)
	return s
}

func TestAuthCache(t *testing.T) {
	initTestCache(t)
	ctx := context.Background()

	if _, ok := GetCachedAuth(ctx, "a@b.com", "pw"); ok {
		t.Error("hit before caching")
	}

	CacheAuth(ctx, "a@b.com", "pw", "user-1")
	userID, ok := GetCachedAuth(ctx, "a@b.com", "pw")
	if !ok || userID != "user-1" {
		t.Errorf("got (%q, %v), want (user-1, true)", userID, ok)
	}
	if _, ok := GetCachedAuth(ctx, "a@b.com", "other-pw"); ok {
		t.Error("different password hit the same entry")
	}

	InvalidateAuth(ctx, "a@b.com", "pw")
	if _, ok := GetCachedAuth(ctx, "a@b.com", "pw"); ok {
		t.Error("hit after invalidation")
	}
}

func TestInvalidateAuthPattern(t *testing.T) {
	initTestCache(t)
	ctx := context.Background()

	CacheAuth(ctx, "a@b.com", "pw", "user-1")
	CacheAuth(ctx, "c@d.com", "pw", "user-2")
	SetCached(ctx, ProductListKey, []byte("[]"), time.Minute)

	InvalidateAuthPattern(ctx)

	if _, ok := GetCachedAuth(ctx, "a@b.com", "pw"); ok {
		t.Error("auth entry survived pattern invalidation")
	}
	if _, ok := GetCachedAuth(ctx, "c@d.com", "pw"); ok {
		t.Error("auth entry survived pattern invalidation")
	}
	// Non-auth keys are untouched.
	if _, ok := GetCached(ctx, ProductListKey); !ok {
		t.Error("list entry dropped by auth pattern invalidation")
	}
}

func TestListCache(t *testing.T) {
	initTestCache(t)
	ctx := context.Background()

	SetCached(ctx, ProductListKey, []byte(`[{"id":"p1"}]`), time.Minute)
	data, ok := GetCached(ctx, ProductListKey)
	if !ok || string(data) != `[{"id":"p1"}]` {
		t.Errorf("got (%q, %v)", data, ok)
	}

	InvalidateKeys(ctx, ProductListKey)
	if _, ok := GetCached(ctx, ProductListKey); ok {
		t.Error("hit after invalidation")
	}
}

func TestNilClientDegradation(t *testing.T) {
	s := miniredis.RunT(t)
	addr := s.Addr()
	s.Close()

	if err := Init(addr, ""); err == nil {
		t.Fatal("Init against a dead server should fail")
	}

	// Every call is a quiet no-op without a client.
	ctx := context.Background()
	CacheAuth(ctx, "a@b.com", "pw", "user-1")
	if _, ok := GetCachedAuth(ctx, "a@b.com", "pw"); ok {
		t.Error("hit with nil client")
	}
	SetCached(ctx, ProductListKey, []byte("[]"), time.Minute)
	if _, ok := GetCached(ctx, ProductListKey); ok {
		t.Error("hit with nil client")
	}
	InvalidateKeys(ctx, ProductListKey)
	InvalidateAuthPattern(ctx)
	if IsHealthy() {
		t.Error("nil client reported healthy")
	}
}
