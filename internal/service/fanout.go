package service

import "sync"

// settled holds one branch's outcome of a fan-out call
type settled[T any] struct {
	value T
	err   error
}

// gather2 runs two branches concurrently and waits for both to finish.
// Neither branch can abort the other; each outcome is reported in its own
// slot so callers decide how to combine partial failure.
func gather2[A, B any](fa func() (A, error), fb func() (B, error)) (settled[A], settled[B]) {
	var (
		ra settled[A]
		rb settled[B]
		wg sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		ra.value, ra.err = fa()
	}()
	go func() {
		defer wg.Done()
		rb.value, rb.err = fb()
	}()
	wg.Wait()
	return ra, rb
}
