// Package parallel runs named functions concurrently and collects the first
// error.
package parallel

import (
	"context"
	"fmt"
	"sync"
)

// Func is a function declaration used in parallel runs.
type Func func(ctx context.Context) error

type task struct {
	name string
	f    Func
}

// Group is a list of functions to run in parallel.
type Group []task

// AddFunc adds a function to the group to later be used in the parallel call.
// The name is prepended to the error message, if any.
func (g *Group) AddFunc(name string, f Func) {
	*g = append(*g, task{name, f})
}

// RunCancelEarly runs all functions in separate goroutines and cancels the
// context passed to the rest of them as soon as one of them returns an error.
// The resulting error is the one from the first function that failed.
func (g Group) RunCancelEarly(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	wg.Add(len(g))
	for _, t := range g {
		go func(t task) {
			defer wg.Done()
			if err := t.f(ctx); err != nil {
				once.Do(func() {
					firstErr = fmt.Errorf("%s: %w", t.name, err)
					cancel()
				})
			}
		}(t)
	}
	wg.Wait()
	return firstErr
}
