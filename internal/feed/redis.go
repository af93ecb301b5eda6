package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
)

const (
	channelPrefix = "studio:feed:"
	// buffer interno do go-redis; cheio, ele espera pelo leitor antes de
	// descartar
	redisChannelSize = 1024
)

// RedisBus publica os eventos via Redis pub/sub, permitindo que o worker de
// notificações rode em outro processo.
type RedisBus struct {
	client *redis.Client
}

func NewRedisBus(client *redis.Client) *RedisBus {
	return &RedisBus{client: client}
}

func channel(c Collection) string {
	return channelPrefix + string(c)
}

func (b *RedisBus) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := b.client.Publish(ctx, channel(ev.Collection), payload).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", ev.Collection, err)
	}
	return nil
}

func (b *RedisBus) Subscribe(ctx context.Context, c Collection) (*Subscription, error) {
	ps := b.client.Subscribe(ctx, channel(c))

	// Receive confirma a inscrição antes de devolver a assinatura.
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("subscribe %s: %w", c, err)
	}

	out := make(chan Event, subscriberBuffer)
	done := make(chan struct{})
	var once sync.Once
	stop := func() {
		once.Do(func() {
			close(done)
			_ = ps.Close()
		})
	}

	go func() {
		defer close(out)
		msgs := ps.Channel(redis.WithChannelSize(redisChannelSize))
		for {
			select {
			case <-ctx.Done():
				stop()
				return
			case <-done:
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var ev Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					log.Warn().Err(err).Str("channel", msg.Channel).Msg("feed: invalid event payload")
					continue
				}
				// entrega bloqueante: o go-redis segura as mensagens
				// enquanto o assinante processa
				select {
				case out <- ev:
				case <-ctx.Done():
					stop()
					return
				case <-done:
					return
				}
			}
		}
	}()

	return &Subscription{C: out, close: stop}, nil
}

func (b *RedisBus) Close() error {
	return b.client.Close()
}
