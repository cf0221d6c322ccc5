// Package events provides explicit, typed publish/subscribe between
// components. Each subscription owns an unbounded FIFO mailbox drained by its
// own goroutine, so publishers never block and every subscriber observes
// events in publish order.
package events

import "sync"

// Bus fans published values out to its subscriptions
type Bus[T any] struct {
	mu     sync.RWMutex
	subs   map[*Subscription[T]]struct{}
	closed bool
}

// NewBus creates an empty bus
func NewBus[T any]() *Bus[T] {
	return &Bus[T]{subs: make(map[*Subscription[T]]struct{})}
}

// Subscribe registers a new subscription. Values published after this call
// are delivered on Subscription.C until Close is called.
func (b *Bus[T]) Subscribe() *Subscription[T] {
	out := make(chan T)
	s := &Subscription[T]{
		C:      out,
		out:    out,
		bus:    b,
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}
	s.cond = sync.NewCond(&s.mu)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(s.done)
		close(s.exited)
		close(out)
		s.closed = true
		return s
	}
	b.subs[s] = struct{}{}
	b.mu.Unlock()

	go s.pump()
	return s
}

// Publish enqueues v for every current subscriber
func (b *Bus[T]) Publish(v T) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	for s := range b.subs {
		s.enqueue(v)
	}
}

// Len returns the number of live subscriptions
func (b *Bus[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close closes every subscription; later publishes are dropped
func (b *Bus[T]) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	subs := make([]*Subscription[T], 0, len(b.subs))
	for s := range b.subs {
		subs = append(subs, s)
	}
	b.subs = map[*Subscription[T]]struct{}{}
	b.mu.Unlock()

	for _, s := range subs {
		s.shutdown()
	}
}

// Subscription is one consumer's ordered view of a bus
type Subscription[T any] struct {
	// C receives values in publish order. It is closed after Close.
	C <-chan T

	out    chan T
	bus    *Bus[T]
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []T
	closed bool
	done   chan struct{}
	exited chan struct{}
}

// Close detaches the subscription and waits for its goroutine to exit.
// Undelivered values are discarded.
func (s *Subscription[T]) Close() {
	s.bus.mu.Lock()
	delete(s.bus.subs, s)
	s.bus.mu.Unlock()
	s.shutdown()
}

func (s *Subscription[T]) shutdown() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		<-s.exited
		return
	}
	s.closed = true
	close(s.done)
	s.cond.Broadcast()
	s.mu.Unlock()
	<-s.exited
}

func (s *Subscription[T]) enqueue(v T) {
	s.mu.Lock()
	if !s.closed {
		s.queue = append(s.queue, v)
		s.cond.Signal()
	}
	s.mu.Unlock()
}

func (s *Subscription[T]) pump() {
	defer close(s.exited)
	defer close(s.out)

	for {
		s.mu.Lock()
		for len(s.queue) == 0 && !s.closed {
			s.cond.Wait()
		}
		if s.closed {
			s.queue = nil
			s.mu.Unlock()
			return
		}
		v := s.queue[0]
		var zero T
		s.queue[0] = zero
		s.queue = s.queue[1:]
		s.mu.Unlock()

		select {
		case s.out <- v:
		case <-s.done:
			return
		}
	}
}
