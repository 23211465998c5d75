package ratelimiter

import (
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

func waitForLen(t *testing.T, mu *sync.Mutex, s *[]int, n int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		got := len(*s)
		mu.Unlock()
		if got >= n {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d admissions", n)
}

func TestPacerFixedDelayPacing(t *testing.T) {
	q := newBoundedPQ(10)
	cl := newFakeClock(time.Unix(0, 0))

	var mu sync.Mutex
	var order []int
	record := func(n int) func() {
		return func() {
			mu.Lock()
			order = append(order, n)
			mu.Unlock()
		}
	}

	for i := 1; i <= 3; i++ {
		if _, err := q.enqueue(record(i), func() {}, 0); err != nil {
			t.Fatalf("enqueue(%d): %v", i, err)
		}
	}

	p := newPacer(q, 100*time.Millisecond, 3, cl, &NoopMetrics{}, zap.NewNop())
	defer p.stop()

	waitForLen(t, &mu, &order, 1)

	cl.BlockUntil(1)
	cl.Advance(100 * time.Millisecond)
	waitForLen(t, &mu, &order, 2)

	cl.BlockUntil(1)
	cl.Advance(100 * time.Millisecond)
	waitForLen(t, &mu, &order, 3)

	mu.Lock()
	got := append([]int(nil), order...)
	mu.Unlock()

	want := []int{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestPacerAdmitsHighestPriorityFirst(t *testing.T) {
	q := newBoundedPQ(10)
	cl := newFakeClock(time.Unix(0, 0))

	var mu sync.Mutex
	var order []int
	record := func(n int) func() {
		return func() {
			mu.Lock()
			order = append(order, n)
			mu.Unlock()
		}
	}

	if _, err := q.enqueue(record(0), func() {}, 0); err != nil {
		t.Fatalf("enqueue a: %v", err)
	}
	if _, err := q.enqueue(record(1), func() {}, 0); err != nil {
		t.Fatalf("enqueue b: %v", err)
	}
	if _, err := q.enqueue(record(2), func() {}, 5); err != nil {
		t.Fatalf("enqueue c: %v", err)
	}

	p := newPacer(q, 50*time.Millisecond, 3, cl, &NoopMetrics{}, zap.NewNop())
	defer p.stop()

	waitForLen(t, &mu, &order, 1)
	cl.BlockUntil(1)
	cl.Advance(50 * time.Millisecond)
	waitForLen(t, &mu, &order, 2)
	cl.BlockUntil(1)
	cl.Advance(50 * time.Millisecond)
	waitForLen(t, &mu, &order, 3)

	mu.Lock()
	got := append([]int(nil), order...)
	mu.Unlock()

	want := []int{2, 0, 1} // highest priority first, then submission order
	if len(got) != len(want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestPacerConcurrencyBoundSerializesExecution(t *testing.T) {
	q := newBoundedPQ(10)

	release := make(chan struct{})
	started := make(chan int, 2)

	if _, err := q.enqueue(func() { started <- 1; <-release }, func() {}, 0); err != nil {
		t.Fatalf("enqueue job1: %v", err)
	}
	if _, err := q.enqueue(func() { started <- 2 }, func() {}, 0); err != nil {
		t.Fatalf("enqueue job2: %v", err)
	}

	p := newPacer(q, 0, 1, realClock{}, &NoopMetrics{}, zap.NewNop())
	defer p.stop()

	if first := <-started; first != 1 {
		t.Fatalf("first started job = %d, want 1", first)
	}

	select {
	case <-started:
		t.Fatal("second job started before the first released its concurrency slot")
	case <-time.After(30 * time.Millisecond):
	}

	close(release)

	if second := <-started; second != 2 {
		t.Fatalf("second started job = %d, want 2", second)
	}
}
