package oneshot

import (
	"context"
	"sync/atomic"
)

// Hooks observe misuse of a Slot. Both are optional and run on the
// resolving goroutine.
type Hooks struct {
	// Duplicate runs for every Resolve after the first; attempt starts at 2.
	Duplicate func(attempt int)
	// Late runs when the first Resolve arrives after Wait gave up.
	Late func()
}

const (
	pending int32 = iota
	delivered
	abandoned
)

// Slot holds at most one value of T.
type Slot[T any] struct {
	ch       chan T
	resolved atomic.Bool
	outcome  atomic.Int32 // pending, then delivered or abandoned
	attempts atomic.Int32
	hooks    Hooks
}

// New returns an empty slot.
func New[T any](hooks Hooks) *Slot[T] {
	return &Slot[T]{ch: make(chan T, 1), hooks: hooks}
}

// Resolve stores v if the slot is still empty and reports whether it did.
// It never blocks.
func (s *Slot[T]) Resolve(v T) bool {
	n := s.attempts.Add(1)
	if !s.resolved.CompareAndSwap(false, true) {
		if s.hooks.Duplicate != nil {
			s.hooks.Duplicate(int(n))
		}
		return false
	}
	s.ch <- v
	if !s.outcome.CompareAndSwap(pending, delivered) && s.hooks.Late != nil {
		s.hooks.Late()
	}
	return true
}

// Resolved reports whether a value has been stored.
func (s *Slot[T]) Resolved() bool { return s.resolved.Load() }

// Wait blocks until the slot is resolved or ctx is done. A value that is
// already stored wins over a done ctx. Otherwise the slot is abandoned; a
// later first Resolve still succeeds but fires Hooks.Late.
func (s *Slot[T]) Wait(ctx context.Context) (T, error) {
	select {
	case v := <-s.ch:
		return v, nil
	case <-ctx.Done():
	}
	select {
	case v := <-s.ch:
		return v, nil
	default:
	}
	if !s.outcome.CompareAndSwap(pending, abandoned) {
		// Resolve sent its value between the two checks above.
		return <-s.ch, nil
	}
	var zero T
	return zero, ctx.Err()
}
