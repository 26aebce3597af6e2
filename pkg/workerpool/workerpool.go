// Package workerpool provides simple concurrent processing utilities.
package workerpool

import (
	"context"
	"sync"
)

// Each runs process for every item using at most workerCount goroutines.
// Items are independent: process reports problems through its own side effects,
// so one item never stops the others. Once ctx is canceled no further items are
// handed out and ctx.Err() is returned.
func Each[T any](
	ctx context.Context,
	workerCount int,
	items []T,
	process func(context.Context, T),
) error {
	if workerCount < 1 {
		workerCount = 1
	}
	if workerCount > len(items) && len(items) > 0 {
		workerCount = len(items)
	}

	tasks := make(chan T, workerCount)
	wg := sync.WaitGroup{}
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case item, ok := <-tasks:
					if !ok {
						return
					}
					process(ctx, item)
				}
			}
		}()
	}

	go func() {
		defer close(tasks)
		for _, item := range items {
			select {
			case <-ctx.Done():
				return
			case tasks <- item:
			}
		}
	}()

	wg.Wait()

	return ctx.Err()
}
