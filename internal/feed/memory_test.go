package feed

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestMemoryBusDelivers(t *testing.T) {
	bus := NewMemoryBus()
	t.Cleanup(func() { bus.Close() })

	ctx := context.Background()
	sub, err := bus.Subscribe(ctx, Appointments)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	other, err := bus.Subscribe(ctx, Clients)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	ev := NewEvent(Appointments, OpCreate, "a1", map[string]string{"id": "a1"}, nil)
	if err := bus.Publish(ctx, ev); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case got := <-sub.C:
		if got.ID != "a1" || got.Op != OpCreate {
			t.Fatalf("got %+v", got)
		}
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}

	select {
	case got := <-other.C:
		t.Fatalf("clients subscriber got appointment event %+v", got)
	default:
	}
}

func TestMemoryBusUnsubscribe(t *testing.T) {
	bus := NewMemoryBus()
	t.Cleanup(func() { bus.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	sub, err := bus.Subscribe(ctx, Staff)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	cancel()

	select {
	case _, ok := <-sub.C:
		if ok {
			t.Fatal("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatal("subscription not closed after cancel")
	}

	// Close depois do cancelamento não deve entrar em pânico.
	sub.Close()

	if err := bus.Publish(context.Background(), NewEvent(Staff, OpUpdate, "s1", nil, nil)); err != nil {
		t.Fatalf("publish without subscribers: %v", err)
	}
}

func TestMemoryBusNeverBlocks(t *testing.T) {
	bus := NewMemoryBus()
	t.Cleanup(func() { bus.Close() })

	if _, err := bus.Subscribe(context.Background(), Services); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*3; i++ {
			bus.Publish(context.Background(), NewEvent(Services, OpUpdate, "x", nil, nil))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func TestMemoryBusKeepsEveryEvent(t *testing.T) {
	bus := NewMemoryBus()
	t.Cleanup(func() { bus.Close() })

	sub, err := bus.Subscribe(context.Background(), Appointments)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	// assinante parado enquanto tudo é publicado
	total := subscriberBuffer * 3
	var want []string
	for i := 0; i < total; i++ {
		id := fmt.Sprintf("ap-%03d", i)
		want = append(want, id)
		if err := bus.Publish(context.Background(), NewEvent(Appointments, OpUpdate, id, nil, nil)); err != nil {
			t.Fatalf("publish %s: %v", id, err)
		}
	}

	var got []string
	timeout := time.After(2 * time.Second)
	for len(got) < total {
		select {
		case ev := <-sub.C:
			got = append(got, ev.ID)
		case <-timeout:
			t.Fatalf("received %d of %d events", len(got), total)
		}
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("events out of order or missing (-want +got):\n%s", diff)
	}
}

func TestMemoryBusClosed(t *testing.T) {
	bus := NewMemoryBus()
	bus.Close()

	if _, err := bus.Subscribe(context.Background(), Clients); err != ErrClosed {
		t.Fatalf("got %v want ErrClosed", err)
	}
}
