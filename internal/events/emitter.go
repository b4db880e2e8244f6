// Package events provides in-process broadcasters used to keep views of the
// same board in sync.
package events

import "sync"

// Emitter delivers each emitted message to every current subscriber,
// synchronously and in subscription order. Nothing is buffered: a
// subscriber only sees messages emitted after it subscribed.
type Emitter[T any] struct {
	mu     sync.Mutex
	nextID uint64
	subs   []subscriber[T]
}

type subscriber[T any] struct {
	id uint64
	fn func(T)
}

// Subscription detaches a subscriber when closed.
type Subscription struct {
	once   sync.Once
	cancel func()
}

// NewEmitter creates an emitter with no subscribers.
func NewEmitter[T any]() *Emitter[T] {
	return &Emitter[T]{}
}

// Subscribe registers fn for every later Emit.
func (e *Emitter[T]) Subscribe(fn func(T)) *Subscription {
	e.mu.Lock()
	e.nextID++
	id := e.nextID
	e.subs = append(e.subs, subscriber[T]{id: id, fn: fn})
	e.mu.Unlock()

	return &Subscription{cancel: func() { e.remove(id) }}
}

// Emit calls every subscriber with msg before returning. Subscribers run
// outside the lock, so they may emit or subscribe themselves. A panicking
// subscriber is not recovered.
func (e *Emitter[T]) Emit(msg T) {
	e.mu.Lock()
	subs := make([]subscriber[T], len(e.subs))
	copy(subs, e.subs)
	e.mu.Unlock()

	for _, s := range subs {
		s.fn(msg)
	}
}

// Len returns the number of subscribers.
func (e *Emitter[T]) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.subs)
}

func (e *Emitter[T]) remove(id uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, s := range e.subs {
		if s.id == id {
			e.subs = append(e.subs[:i:i], e.subs[i+1:]...)
			return
		}
	}
}

// Close detaches the subscriber. Safe to call more than once and on nil.
func (s *Subscription) Close() {
	if s == nil {
		return
	}
	s.once.Do(s.cancel)
}
