package pool

import (
	"context"
	"fmt"
)

// PushAll pushes every task with Push and returns their Futures in the same
// order. It stops at the first rejected push; Futures of tasks already
// accepted are returned alongside the error and still resolve.
//
// Example:
//
//	futures, err := p.PushAll(tasks)
//	if err != nil {
//	    return err
//	}
//	results, err := pool.WaitAll(ctx, futures)
func (p *Pool[R]) PushAll(tasks []Task[R]) ([]*Future[R], error) {
	futures := make([]*Future[R], 0, len(tasks))
	for i, task := range tasks {
		f, err := p.Push(task)
		if err != nil {
			return futures, fmt.Errorf("push task %d: %w", i, err)
		}
		futures = append(futures, f)
	}
	return futures, nil
}

// PushAllKeyed pushes every task with PushKey under its map key, so tasks
// that share a key with earlier pushes keep their relative order.
// The returned map holds the Future of every accepted task.
func (p *Pool[R]) PushAllKeyed(tasks map[string]Task[R]) (map[string]*Future[R], error) {
	futures := make(map[string]*Future[R], len(tasks))
	for key, task := range tasks {
		f, err := p.PushKey(task, key)
		if err != nil {
			return futures, fmt.Errorf("push task %q: %w", key, err)
		}
		futures[key] = f
	}
	return futures, nil
}

// WaitAll waits for every Future and returns the values in the same order,
// along with the first task failure encountered in that order. Values of
// failed tasks are left as the zero value.
//
// If ctx ends first, WaitAll returns ctx.Err(); the tasks keep running.
func WaitAll[R any](ctx context.Context, futures []*Future[R]) ([]R, error) {
	results := make([]R, len(futures))
	var firstErr error

	for i, f := range futures {
		select {
		case <-f.Done():
		case <-ctx.Done():
			return nil, ctx.Err()
		}

		v, err := f.Get()
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		results[i] = v
	}

	return results, firstErr
}
