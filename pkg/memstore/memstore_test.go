package memstore

import (
	"context"
	"testing"
	"time"
)

func newTestStore(start time.Time) (*Store, *time.Time) {
	clock := start
	s := New()
	s.now = func() time.Time { return clock }
	return s, &clock
}

func TestSetNXOnlyWritesOnce(t *testing.T) {
	s, _ := newTestStore(time.Now())
	ctx := context.Background()

	ok, err := s.SetNX(ctx, "k", "first", time.Hour)
	if err != nil || !ok {
		t.Fatalf("first set: ok=%v err=%v", ok, err)
	}
	ok, err = s.SetNX(ctx, "k", "second", time.Hour)
	if err != nil || ok {
		t.Fatalf("second set should be refused: ok=%v err=%v", ok, err)
	}

	got, err := s.Get(ctx, "k")
	if err != nil || got != "first" {
		t.Fatalf("get = %q, %v", got, err)
	}
}

func TestExpiryFreesTheKey(t *testing.T) {
	start := time.Now()
	s, clock := newTestStore(start)
	ctx := context.Background()

	if _, err := s.SetNX(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	*clock = start.Add(2 * time.Minute)
	got, err := s.Get(ctx, "k")
	if err != nil || got != "" {
		t.Fatalf("expired get = %q, %v", got, err)
	}

	// An expired key can be written again.
	ok, err := s.SetNX(ctx, "k", "v2", time.Minute)
	if err != nil || !ok {
		t.Fatalf("rewrite after expiry: ok=%v err=%v", ok, err)
	}
}

func TestSweepDropsExpiredEntries(t *testing.T) {
	start := time.Now()
	s, clock := newTestStore(start)
	ctx := context.Background()

	s.SetNX(ctx, "short", "v", time.Minute)
	s.SetNX(ctx, "long", "v", time.Hour)

	*clock = start.Add(10 * time.Minute)
	if dropped := s.Sweep(); dropped != 1 {
		t.Fatalf("dropped = %d", dropped)
	}
	if s.Len() != 1 {
		t.Fatalf("len = %d", s.Len())
	}
}

func TestSetNXRejectsNonPositiveTTL(t *testing.T) {
	s, _ := newTestStore(time.Now())
	if _, err := s.SetNX(context.Background(), "k", "v", 0); err == nil {
		t.Fatal("zero ttl must be rejected")
	}
}

func TestIdempotencyKeyNamespacing(t *testing.T) {
	s := New()
	if got := s.IdempotencyKey("default|POST|/api/bulk-pay-vendors", "abc"); got != "idempotency:default|POST|/api/bulk-pay-vendors:abc" {
		t.Fatalf("key = %q", got)
	}
}
