package types

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestFuture_Get(t *testing.T) {
	t.Run("successful result", func(t *testing.T) {
		future, resolve := NewFuture[string]()

		go func() {
			time.Sleep(50 * time.Millisecond)
			resolve("success", nil)
		}()

		value, err := future.Get()

		if err != nil {
			t.Errorf("expected no error, got %v", err)
		}
		if value != "success" {
			t.Errorf("expected value 'success', got %v", value)
		}
	})

	t.Run("error result", func(t *testing.T) {
		future, resolve := NewFuture[string]()
		expectedErr := errors.New("task failed")

		go resolve("", expectedErr)

		value, err := future.Get()

		if !errors.Is(err, expectedErr) {
			t.Errorf("expected error %v, got %v", expectedErr, err)
		}
		if value != "" {
			t.Errorf("expected empty value, got %v", value)
		}
	})

	t.Run("multiple Get calls return same result", func(t *testing.T) {
		future, resolve := NewFuture[int]()

		go resolve(123, nil)

		value1, err1 := future.Get()
		value2, err2 := future.Get()

		if value1 != value2 || err1 != err2 {
			t.Errorf("Get calls returned different results")
		}
		if value1 != 123 {
			t.Errorf("expected value 123, got %v", value1)
		}
	})

	t.Run("only the first resolve takes effect", func(t *testing.T) {
		future, resolve := NewFuture[int]()

		resolve(1, nil)
		resolve(2, errors.New("late"))

		value, err := future.Get()
		if value != 1 || err != nil {
			t.Errorf("expected (1, nil), got (%v, %v)", value, err)
		}
	})
}

func TestFuture_GetWithContext(t *testing.T) {
	t.Run("successful result before timeout", func(t *testing.T) {
		future, resolve := NewFuture[string]()
		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer cancel()

		go func() {
			time.Sleep(50 * time.Millisecond)
			resolve("success", nil)
		}()

		value, err := future.GetWithContext(ctx)

		if err != nil {
			t.Errorf("expected no error, got %v", err)
		}
		if value != "success" {
			t.Errorf("expected value 'success', got %v", value)
		}
	})

	t.Run("context timeout before result", func(t *testing.T) {
		future, resolve := NewFuture[string]()
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		go func() {
			time.Sleep(200 * time.Millisecond)
			resolve("too late", nil)
		}()

		value, err := future.GetWithContext(ctx)

		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("expected context.DeadlineExceeded, got %v", err)
		}
		if value != "" {
			t.Errorf("expected empty value, got %v", value)
		}

		// the Future is still usable after the caller gave up
		value, err = future.Get()
		if err != nil || value != "too late" {
			t.Errorf("expected late result, got (%v, %v)", value, err)
		}
	})

	t.Run("context cancelled", func(t *testing.T) {
		future, _ := NewFuture[string]()
		ctx, cancel := context.WithCancel(context.Background())

		go func() {
			time.Sleep(50 * time.Millisecond)
			cancel()
		}()

		_, err := future.GetWithContext(ctx)

		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestFuture_GetWithTimeout(t *testing.T) {
	future, _ := NewFuture[int]()

	start := time.Now()
	_, err := future.GetWithTimeout(30 * time.Millisecond)

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded, got %v", err)
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("returned after %v, before the timeout", elapsed)
	}
}

func TestFuture_TryGet(t *testing.T) {
	t.Run("result not ready", func(t *testing.T) {
		future, _ := NewFuture[string]()

		value, err, ready := future.TryGet()

		if ready {
			t.Error("expected ready to be false")
		}
		if value != "" {
			t.Errorf("expected empty value, got %v", value)
		}
		if err != nil {
			t.Errorf("expected nil error, got %v", err)
		}
	})

	t.Run("result ready", func(t *testing.T) {
		future, resolve := NewFuture[string]()
		resolve("ready", nil)

		value, err, ready := future.TryGet()

		if !ready {
			t.Error("expected ready to be true")
		}
		if value != "ready" {
			t.Errorf("expected value 'ready', got %v", value)
		}
		if err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})
}

func TestFuture_Done(t *testing.T) {
	future, resolve := NewFuture[string]()

	select {
	case <-future.Done():
		t.Error("Done channel should not be closed yet")
	case <-time.After(50 * time.Millisecond):
	}

	go resolve("done", nil)

	select {
	case <-future.Done():
		value, err := future.Get()
		if err != nil || value != "done" {
			t.Errorf("unexpected result: value=%v, err=%v", value, err)
		}
	case <-time.After(time.Second):
		t.Error("Done channel should be closed after resolve")
	}
}

func TestFuture_IsReady(t *testing.T) {
	future, resolve := NewFuture[string]()

	if future.IsReady() {
		t.Error("expected IsReady to be false")
	}

	resolve("ready", nil)

	if !future.IsReady() {
		t.Error("expected IsReady to be true")
	}
}

func TestFuture_ConcurrentAccess(t *testing.T) {
	future, resolve := NewFuture[int]()

	go func() {
		time.Sleep(50 * time.Millisecond)
		resolve(999, nil)
	}()

	done := make(chan bool, 10)

	for range 10 {
		go func() {
			value, err := future.Get()
			if err != nil || value != 999 {
				t.Errorf("unexpected result: value=%v, err=%v", value, err)
			}
			done <- true
		}()
	}

	for range 10 {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("timeout waiting for concurrent Get calls")
		}
	}
}
