package redis

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestSuggestionKey(t *testing.T) {
	a := suggestionKey("u1", "Based on my habits like Sleep: 7")
	b := suggestionKey("u1", "Based on my habits like Sleep: 7")
	c := suggestionKey("u1", "Based on my habits like Sleep: 7, 8")
	d := suggestionKey("u2", "Based on my habits like Sleep: 7")

	if a != b {
		t.Fatalf("expected stable key, got %s and %s", a, b)
	}
	if a == c {
		t.Fatalf("expected different prompts to produce different keys")
	}
	if a == d {
		t.Fatalf("expected keys to be scoped per user")
	}
	if !strings.HasPrefix(a, "suggestions:u1:") || len(a) != len("suggestions:u1:")+16 {
		t.Fatalf("unexpected key format %q", a)
	}
}

func TestNewSuggestionCache_DefaultTTL(t *testing.T) {
	if c := NewSuggestionCache(nil, 0); c.ttl != time.Hour {
		t.Fatalf("expected default ttl, got %s", c.ttl)
	}
	if c := NewSuggestionCache(nil, time.Minute); c.ttl != time.Minute {
		t.Fatalf("expected configured ttl, got %s", c.ttl)
	}
}

func newTestCache(t *testing.T, ttl time.Duration) (*SuggestionCache, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	return NewSuggestionCache(client, ttl), srv
}

func TestSuggestionCache_Miss(t *testing.T) {
	cache, _ := newTestCache(t, time.Hour)

	val, ok, err := cache.Get(context.Background(), "u1", "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok || val != "" {
		t.Fatalf("expected miss, got (%q, %v)", val, ok)
	}
}

func TestSuggestionCache_HitAfterSet(t *testing.T) {
	cache, srv := newTestCache(t, 10*time.Minute)
	ctx := context.Background()

	if err := cache.Set(ctx, "u1", "prompt", "\n\nDrink water."); err != nil {
		t.Fatalf("set: %v", err)
	}

	val, ok, err := cache.Get(ctx, "u1", "prompt")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if val != "\n\nDrink water." {
		t.Fatalf("expected stored text unchanged, got %q", val)
	}

	if ttl := srv.TTL(suggestionKey("u1", "prompt")); ttl != 10*time.Minute {
		t.Fatalf("expected ttl 10m, got %s", ttl)
	}

	// Other users and other prompts do not share the entry.
	if _, ok, _ := cache.Get(ctx, "u2", "prompt"); ok {
		t.Fatalf("entry leaked across users")
	}
	if _, ok, _ := cache.Get(ctx, "u1", "other prompt"); ok {
		t.Fatalf("entry leaked across prompts")
	}
}

func TestSuggestionCache_Expires(t *testing.T) {
	cache, srv := newTestCache(t, time.Minute)
	ctx := context.Background()

	if err := cache.Set(ctx, "u1", "prompt", "tips"); err != nil {
		t.Fatalf("set: %v", err)
	}
	srv.FastForward(time.Minute + time.Second)

	if _, ok, err := cache.Get(ctx, "u1", "prompt"); ok || err != nil {
		t.Fatalf("expected expired entry to miss, got ok=%v err=%v", ok, err)
	}
}

func TestSuggestionCache_ServerError(t *testing.T) {
	cache, srv := newTestCache(t, time.Minute)
	ctx := context.Background()
	srv.SetError("LOADING server is loading")

	_, ok, err := cache.Get(ctx, "u1", "prompt")
	if err == nil || ok {
		t.Fatalf("expected error, got ok=%v err=%v", ok, err)
	}
	if !strings.HasPrefix(err.Error(), "suggestion cache get:") {
		t.Fatalf("expected wrapped get error, got %v", err)
	}

	err = cache.Set(ctx, "u1", "prompt", "tips")
	if err == nil || !strings.HasPrefix(err.Error(), "suggestion cache set:") {
		t.Fatalf("expected wrapped set error, got %v", err)
	}
}
