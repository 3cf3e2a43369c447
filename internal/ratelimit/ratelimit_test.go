package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestKeyedLimiter_Allow(t *testing.T) {
	tests := []struct {
		name     string
		rps      float64
		burst    int
		calls    int
		wantPass int
	}{
		{
			name:     "burst allows initial requests",
			rps:      1,
			burst:    3,
			calls:    3,
			wantPass: 3,
		},
		{
			name:     "exceeding burst blocks",
			rps:      1,
			burst:    2,
			calls:    5,
			wantPass: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := New(tt.rps, tt.burst)
			passed := 0
			for i := 0; i < tt.calls; i++ {
				if k.Allow("books") {
					passed++
				}
			}
			if passed != tt.wantPass {
				t.Errorf("passed %d requests, want %d", passed, tt.wantPass)
			}
		})
	}
}

func TestKeyedLimiter_KeysAreIndependent(t *testing.T) {
	k := New(1, 1)

	if !k.Allow("books") {
		t.Fatal("first request for books should pass")
	}
	if k.Allow("books") {
		t.Error("second request for books should be limited")
	}
	if !k.Allow("shelves") {
		t.Error("shelves has its own bucket and should pass")
	}
}

func TestKeyedLimiter_WaitHonorsContext(t *testing.T) {
	k := New(0.1, 1)
	k.Allow("feed") // drain the bucket

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := k.Wait(ctx, "feed"); err == nil {
		t.Error("expected Wait to fail once the context expires")
	}
}
