package feed

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
)

const (
	subscriberBuffer = 64
	pendingWarnEvery = 1024
)

var ErrClosed = errors.New("feed: bus closed")

// MemoryBus distribui eventos dentro do próprio processo.
type MemoryBus struct {
	mu     sync.Mutex
	subs   map[Collection]map[*memorySub]struct{}
	closed bool
}

// memorySub enfileira sem limite e entrega em ordem. Publish nunca espera
// pelo assinante e nenhum evento é descartado.
type memorySub struct {
	mu    sync.Mutex
	queue []Event
	wake  chan struct{}

	ch   chan Event
	done chan struct{}
	once sync.Once
}

func newMemorySub() *memorySub {
	s := &memorySub{
		wake: make(chan struct{}, 1),
		ch:   make(chan Event, subscriberBuffer),
		done: make(chan struct{}),
	}
	go s.pump()
	return s
}

func (s *memorySub) push(ev Event) {
	s.mu.Lock()
	s.queue = append(s.queue, ev)
	n := len(s.queue)
	s.mu.Unlock()

	if n%pendingWarnEvery == 0 {
		log.Warn().Str("collection", string(ev.Collection)).Int("pending", n).Msg("feed subscriber falling behind")
	}

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// pump move a fila para ch; fecha ch ao parar.
func (s *memorySub) pump() {
	defer close(s.ch)
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.mu.Unlock()
			select {
			case <-s.wake:
				continue
			case <-s.done:
				return
			}
		}
		ev := s.queue[0]
		s.queue[0] = Event{}
		s.queue = s.queue[1:]
		s.mu.Unlock()

		select {
		case s.ch <- ev:
		case <-s.done:
			return
		}
	}
}

func (s *memorySub) stop() {
	s.once.Do(func() { close(s.done) })
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{subs: make(map[Collection]map[*memorySub]struct{})}
}

// Publish nunca bloqueia: cada assinante tem a própria fila.
func (b *MemoryBus) Publish(ctx context.Context, ev Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}

	for sub := range b.subs[ev.Collection] {
		sub.push(ev)
	}
	return nil
}

func (b *MemoryBus) Subscribe(ctx context.Context, c Collection) (*Subscription, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrClosed
	}

	sub := newMemorySub()
	if b.subs[c] == nil {
		b.subs[c] = make(map[*memorySub]struct{})
	}
	b.subs[c][sub] = struct{}{}

	unsubscribe := func() {
		b.mu.Lock()
		delete(b.subs[c], sub)
		sub.stop()
		b.mu.Unlock()
	}

	go func() {
		select {
		case <-ctx.Done():
			unsubscribe()
		case <-sub.done:
		}
	}()

	return &Subscription{C: sub.ch, close: unsubscribe}, nil
}

func (b *MemoryBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	for _, subs := range b.subs {
		for sub := range subs {
			sub.stop()
		}
	}
	b.subs = nil
	return nil
}
