package ratelimit

import "testing"

func TestLimiterAllowsUpToCapacity(t *testing.T) {
	l := New()
	for i := 0; i < 5; i++ {
		if !l.Allow("k", 5, 0) {
			t.Fatalf("call %d should be allowed", i+1)
		}
	}
	if l.Allow("k", 5, 0) {
		t.Fatalf("6th call should be throttled")
	}
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	l := New()
	if !l.Allow("a", 1, 0) {
		t.Fatalf("first call on a should pass")
	}
	if l.Allow("a", 1, 0) {
		t.Fatalf("second call on a should be throttled")
	}
	if !l.Allow("b", 1, 0) {
		t.Fatalf("b should not share a's bucket")
	}
}

func TestLimiterRefills(t *testing.T) {
	l := New()
	if !l.Allow("k", 1, 1000) {
		t.Fatalf("first call should pass")
	}
	// At 1000 tokens/sec the bucket refills within a few milliseconds.
	deadline := 0
	for !l.Allow("k", 1, 1000) {
		if deadline++; deadline > 1_000_000 {
			t.Fatalf("bucket never refilled")
		}
	}
}
