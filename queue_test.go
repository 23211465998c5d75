package ratelimiter

import (
	"errors"
	"testing"
	"time"
)

func TestBoundedPQPriorityThenFIFO(t *testing.T) {
	q := newBoundedPQ(10)

	var order []string
	push := func(name string, priority int) {
		if _, err := q.enqueue(func() { order = append(order, name) }, func() {}, priority); err != nil {
			t.Fatalf("enqueue(%s): %v", name, err)
		}
	}

	push("a", 0)
	push("b", 0)
	push("c", 5)

	for i := 0; i < 3; i++ {
		exec, ok := q.dequeue()
		if !ok {
			t.Fatalf("dequeue() ok = false on iteration %d", i)
		}
		exec()
	}

	want := []string{"c", "a", "b"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestBoundedPQRejectsWhenFull(t *testing.T) {
	q := newBoundedPQ(1)

	if _, err := q.enqueue(func() {}, func() {}, 0); err != nil {
		t.Fatalf("first enqueue: %v", err)
	}
	_, err := q.enqueue(func() {}, func() {}, 0)
	if !errors.Is(err, ErrLimitReached) {
		t.Fatalf("second enqueue err = %v, want ErrLimitReached", err)
	}
}

func TestBoundedPQDeleteByID(t *testing.T) {
	q := newBoundedPQ(10)

	id, err := q.enqueue(func() {}, func() {}, 0)
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if !q.delete(id) {
		t.Fatal("delete(id) = false, want true")
	}
	if q.delete(id) {
		t.Fatal("second delete(id) = true, want false")
	}
	if q.len() != 0 {
		t.Fatalf("len() = %d, want 0", q.len())
	}
}

func TestBoundedPQDrainReturnsCancelNotExec(t *testing.T) {
	q := newBoundedPQ(10)

	execRan := false
	cancelRan := false
	if _, err := q.enqueue(
		func() { execRan = true },
		func() { cancelRan = true },
		0,
	); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	cancels := q.drain()
	if len(cancels) != 1 {
		t.Fatalf("len(drain()) = %d, want 1", len(cancels))
	}
	cancels[0]()

	if execRan {
		t.Fatal("drain invoked the exec callback")
	}
	if !cancelRan {
		t.Fatal("drain did not invoke the cancel callback")
	}
	if q.len() != 0 {
		t.Fatalf("len() after drain = %d, want 0", q.len())
	}
}

func TestBoundedPQDequeueBlocksUntilEnqueue(t *testing.T) {
	q := newBoundedPQ(10)

	resultCh := make(chan bool, 1)
	go func() {
		_, ok := q.dequeue()
		resultCh <- ok
	}()

	select {
	case <-resultCh:
		t.Fatal("dequeue() returned before anything was enqueued")
	case <-time.After(20 * time.Millisecond):
	}

	if _, err := q.enqueue(func() {}, func() {}, 0); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	select {
	case ok := <-resultCh:
		if !ok {
			t.Fatal("dequeue() ok = false after enqueue")
		}
	case <-time.After(time.Second):
		t.Fatal("dequeue() did not unblock after enqueue")
	}
}

func TestBoundedPQCloseUnblocksDequeue(t *testing.T) {
	q := newBoundedPQ(10)

	resultCh := make(chan bool, 1)
	go func() {
		_, ok := q.dequeue()
		resultCh <- ok
	}()

	time.Sleep(10 * time.Millisecond)
	q.close()

	select {
	case ok := <-resultCh:
		if ok {
			t.Fatal("dequeue() ok = true after close on empty queue")
		}
	case <-time.After(time.Second):
		t.Fatal("dequeue() did not unblock after close")
	}
}
