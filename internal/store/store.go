package store

import (
	"fmt"
	"sync"
)

// Cloner is implemented by state types that own reference fields (maps,
// slices, pointers). Clone must return a value that shares nothing mutable
// with the receiver.
type Cloner[S any] interface {
	Clone() S
}

// Change describes one processed action.
type Change[S any, A any] struct {
	Seq    uint64
	Action A
	Before S
	After  S
}

type subscription[S any, A any] struct {
	id int
	fn func(Change[S, A])
}

// Store owns a state value and processes actions one at a time.
//
// Send is safe to call from observers: the action is queued and processed
// after the current one, including its relays, has finished. Observers
// receive snapshots that the store never mutates again and must treat them
// as read-only.
type Store[S Cloner[S], A any] struct {
	mu       sync.Mutex
	state    S
	reducer  Reducer[S, A]
	queue    []A
	draining bool
	seq      uint64

	subs   []subscription[S, A]
	nextID int
}

// New creates a store seeded with initial.
func New[S Cloner[S], A any](initial S, reducer Reducer[S, A]) *Store[S, A] {
	return &Store[S, A]{
		state:   initial.Clone(),
		reducer: reducer,
	}
}

// State returns a copy of the current state.
func (s *Store[S, A]) State() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Seq returns the number of actions processed so far.
func (s *Store[S, A]) Seq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq
}

// Send enqueues an action and, unless a dispatch is already running, drains
// the queue before returning. If a reducer or observer panics the pending
// queue is discarded and the store accepts new actions again.
func (s *Store[S, A]) Send(action A) {
	s.mu.Lock()
	s.queue = append(s.queue, action)
	if s.draining {
		s.mu.Unlock()
		return
	}
	s.draining = true
	s.mu.Unlock()

	finished := false
	defer func() {
		if finished {
			return
		}
		s.mu.Lock()
		s.queue = nil
		s.draining = false
		s.mu.Unlock()
	}()

	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.draining = false
			s.mu.Unlock()
			finished = true
			return
		}
		next := s.queue[0]
		s.queue = s.queue[1:]

		before := s.state
		after := before.Clone()
		s.mu.Unlock()

		s.reducer(&after, next)

		s.mu.Lock()
		s.state = after
		s.seq++
		change := Change[S, A]{Seq: s.seq, Action: next, Before: before, After: after}
		subs := make([]subscription[S, A], len(s.subs))
		copy(subs, s.subs)
		s.mu.Unlock()

		for _, sub := range subs {
			sub.fn(change)
		}
	}
}

// Subscribe registers an observer called after every processed action.
// The returned func removes it.
func (s *Store[S, A]) Subscribe(fn func(Change[S, A])) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription[S, A]{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
