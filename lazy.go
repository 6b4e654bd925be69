package schemata

import "sync"

// Lazy is a memoized deferred value. Get runs the underlying function at
// most once, even under concurrent first access, and re-panics on every call
// if it panicked.
type Lazy[T any] struct {
	get func() T
}

// NewLazy defers f until the first Get.
func NewLazy[T any](f func() T) *Lazy[T] {
	if f == nil {
		panic("schemata.NewLazy: f must not be nil")
	}
	return &Lazy[T]{get: sync.OnceValue(f)}
}

func (l *Lazy[T]) Get() T { return l.get() }
