package ratelimiter

import (
	"context"
	"testing"
	"time"
)

func TestNoopLimiterAdmitsImmediately(t *testing.T) {
	l := NewNoop(8)
	defer l.Stop()

	start := time.Now()
	for i := 0; i < 5; i++ {
		if _, err := Wait(context.Background(), l, 0, func(ctx context.Context) (int, error) {
			return i, nil
		}); err != nil {
			t.Fatalf("Wait(%d) err = %v", i, err)
		}
	}
	if elapsed := time.Since(start); elapsed > 200*time.Millisecond {
		t.Fatalf("5 no-op jobs took %s, want near-instant admission", elapsed)
	}
}
