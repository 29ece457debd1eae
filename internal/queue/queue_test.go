package queue

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestQueue_FIFO(t *testing.T) {
	q := New[int]()

	for i := range 5 {
		q.PushBack(i)
	}

	if got := q.Size(); got != 5 {
		t.Fatalf("expected size 5, got %d", got)
	}

	for i := range 5 {
		if val := q.PopFront(); val != i {
			t.Errorf("expected %d, got %d", i, val)
		}
	}

	if !q.IsEmpty() {
		t.Error("queue should be empty after popping every item")
	}
}

func TestQueue_TryPopFront(t *testing.T) {
	t.Run("empty queue", func(t *testing.T) {
		q := New[string]()

		val, ok := q.TryPopFront()
		if ok {
			t.Error("expected ok to be false on empty queue")
		}
		if val != "" {
			t.Errorf("expected zero value, got %q", val)
		}
	})

	t.Run("non-empty queue", func(t *testing.T) {
		q := New[string]()
		q.PushBack("a")
		q.PushBack("b")

		val, ok := q.TryPopFront()
		if !ok || val != "a" {
			t.Errorf("expected (a, true), got (%q, %v)", val, ok)
		}
		if q.Size() != 1 {
			t.Errorf("expected size 1, got %d", q.Size())
		}
	})

	t.Run("nil interface values", func(t *testing.T) {
		q := New[error]()
		q.PushBack(nil)

		val, ok := q.TryPopFront()
		if !ok {
			t.Fatal("expected an item")
		}
		if val != nil {
			t.Errorf("expected nil, got %v", val)
		}
	})
}

func TestQueue_PopFrontBlocksUntilPush(t *testing.T) {
	q := New[int]()
	got := make(chan int, 1)

	go func() {
		got <- q.PopFront()
	}()

	select {
	case v := <-got:
		t.Fatalf("PopFront returned %d before any push", v)
	case <-time.After(50 * time.Millisecond):
	}

	q.PushBack(42)

	select {
	case v := <-got:
		if v != 42 {
			t.Errorf("expected 42, got %d", v)
		}
	case <-time.After(time.Second):
		t.Fatal("PopFront was not woken by PushBack")
	}
}

func TestQueue_Clear(t *testing.T) {
	q := New[int]()
	for i := range 10 {
		q.PushBack(i)
	}

	if dropped := q.Clear(); dropped != 10 {
		t.Errorf("expected 10 dropped items, got %d", dropped)
	}
	if !q.IsEmpty() {
		t.Error("queue should be empty after Clear")
	}

	q.PushBack(7)
	if v := q.PopFront(); v != 7 {
		t.Errorf("expected 7 after Clear, got %d", v)
	}
}

func TestQueue_ConcurrentProducersConsumers(t *testing.T) {
	q := New[int]()

	const (
		producerCount    = 8
		consumerCount    = 4
		itemsPerProducer = 500
		total            = producerCount * itemsPerProducer
	)

	var consumed atomic.Int64
	seen := make([]atomic.Int32, total)

	var consumers sync.WaitGroup
	consumers.Add(consumerCount)
	for range consumerCount {
		go func() {
			defer consumers.Done()
			for {
				v := q.PopFront()
				if v < 0 {
					return
				}
				seen[v].Add(1)
				consumed.Add(1)
			}
		}()
	}

	var producers sync.WaitGroup
	producers.Add(producerCount)
	for p := range producerCount {
		go func(producerID int) {
			defer producers.Done()
			for i := range itemsPerProducer {
				q.PushBack(producerID*itemsPerProducer + i)
			}
		}(p)
	}
	producers.Wait()

	// one stop marker per consumer, queued behind every real item
	for range consumerCount {
		q.PushBack(-1)
	}
	consumers.Wait()

	if got := consumed.Load(); got != total {
		t.Fatalf("expected %d consumed items, got %d", total, got)
	}
	for i := range seen {
		if n := seen[i].Load(); n != 1 {
			t.Fatalf("item %d delivered %d times", i, n)
		}
	}
}

func TestQueue_PerProducerOrder(t *testing.T) {
	q := New[[2]int]()

	const producers = 4
	const perProducer = 1000

	var wg sync.WaitGroup
	wg.Add(producers)
	for p := range producers {
		go func() {
			defer wg.Done()
			for i := range perProducer {
				q.PushBack([2]int{p, i})
			}
		}()
	}
	wg.Wait()

	last := make([]int, producers)
	for i := range last {
		last[i] = -1
	}
	for range producers * perProducer {
		item := q.PopFront()
		if item[1] <= last[item[0]] {
			t.Fatalf("producer %d: item %d popped after %d", item[0], item[1], last[item[0]])
		}
		last[item[0]] = item[1]
	}
}
