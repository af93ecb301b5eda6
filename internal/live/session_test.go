package live

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/nail-studio/internal/feed"
	"github.com/BruksfildServices01/nail-studio/internal/infra/repository"
	"github.com/BruksfildServices01/nail-studio/internal/models"
)

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestSessionFollowsFeed(t *testing.T) {
	ctx := context.Background()
	bus := feed.NewMemoryBus()
	defer bus.Close()
	store := repository.NewMemoryStore(bus)

	seed := models.Client{Name: "Bruna", Phone: "74988011730"}
	if err := store.CreateClient(ctx, &seed); err != nil {
		t.Fatalf("CreateClient: %v", err)
	}

	s := Open(ctx, store, bus)
	defer s.Close()

	readyCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.Ready(readyCtx); err != nil {
		t.Fatalf("Ready: %v", err)
	}
	for _, c := range feed.Collections() {
		if !s.Loaded(c) {
			t.Errorf("collection %s not loaded", c)
		}
	}
	if got := len(s.Clients()); got != 1 {
		t.Fatalf("clients = %d, want 1", got)
	}

	other := models.Client{Name: "Alice", Phone: "7433334444"}
	if err := store.CreateClient(ctx, &other); err != nil {
		t.Fatalf("CreateClient: %v", err)
	}
	waitFor(t, "second client", func() bool { return len(s.Clients()) == 2 })

	// Carga completa já ordenada por nome.
	if first := s.Clients()[0].Name; first != "Alice" {
		t.Errorf("first client = %s, want Alice", first)
	}

	if err := store.DeleteClient(ctx, seed.ID); err != nil {
		t.Fatalf("DeleteClient: %v", err)
	}
	waitFor(t, "client removal", func() bool { return len(s.Clients()) == 1 })

	if w := s.Warnings(); len(w) != 0 {
		t.Errorf("warnings = %v, want none", w)
	}
}

func TestSessionReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore(nil)
	_ = store.CreateClient(ctx, &models.Client{Name: "Carla", Phone: "1"})

	s := Open(ctx, store, nil)
	defer s.Close()
	if err := s.Ready(ctx); err != nil {
		t.Fatalf("Ready: %v", err)
	}

	got := s.Clients()
	got[0].Name = "alterado"
	if s.Clients()[0].Name != "Carla" {
		t.Error("session state mutated through returned slice")
	}
}

type failingLoader struct {
	*repository.MemoryStore
}

func (failingLoader) ListFinancialRecords(context.Context) ([]models.FinancialRecord, error) {
	return nil, errors.New("permission denied")
}

type brokenSubscriber struct{}

func (brokenSubscriber) Subscribe(context.Context, feed.Collection) (*feed.Subscription, error) {
	return nil, errors.New("feed offline")
}

func TestSessionDegradesWithoutBlocking(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	s := Open(ctx, failingLoader{repository.NewMemoryStore(nil)}, brokenSubscriber{})
	defer s.Close()

	if err := s.Ready(ctx); err != nil {
		t.Fatalf("Ready blocked: %v", err)
	}
	if !s.Loaded(feed.FinancialRecords) {
		t.Error("failed collection should still be marked loaded")
	}

	// 5 assinaturas falharam e 1 carga falhou.
	if got := len(s.Warnings()); got != 6 {
		t.Errorf("warnings = %d (%v), want 6", got, s.Warnings())
	}
}

func TestSessionCloseIsDeterministic(t *testing.T) {
	bus := feed.NewMemoryBus()
	defer bus.Close()

	s := Open(context.Background(), repository.NewMemoryStore(bus), bus)
	if err := s.Ready(context.Background()); err != nil {
		t.Fatalf("Ready: %v", err)
	}

	done := make(chan struct{})
	go func() {
		s.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not return")
	}
}

func TestStatsMemoized(t *testing.T) {
	ctx := context.Background()
	bus := feed.NewMemoryBus()
	defer bus.Close()
	store := repository.NewMemoryStore(bus)

	s := Open(ctx, store, bus)
	defer s.Close()
	if err := s.Ready(ctx); err != nil {
		t.Fatalf("Ready: %v", err)
	}

	loc := time.FixedZone("BRT", -3*60*60)
	now := time.Date(2026, 2, 10, 9, 0, 0, 0, loc)

	first := s.Stats(now)
	if first.TotalClients != 0 || !first.MonthlyRevenue.IsZero() {
		t.Fatalf("empty stats = %+v", first)
	}

	v := s.Version()
	if err := store.CreateFinancialRecord(ctx, &models.FinancialRecord{
		Type:     models.RecordIncome,
		Category: models.CategoryServices,
		Value:    decimal.NewFromInt(80),
		Date:     "2026-02-01",
	}); err != nil {
		t.Fatalf("CreateFinancialRecord: %v", err)
	}
	waitFor(t, "records reload", func() bool { return s.Version() > v })

	got := s.Stats(now)
	if !got.MonthlyRevenue.Equal(decimal.NewFromInt(80)) || !got.MonthlyProfit.Equal(decimal.NewFromInt(80)) {
		t.Errorf("stats after income = %+v", got)
	}

	// Mesmo dia e mesma versão: resultado em cache.
	if again := s.Stats(now.Add(time.Hour)); !again.MonthlyRevenue.Equal(got.MonthlyRevenue) {
		t.Errorf("memoized stats changed: %+v", again)
	}

	// Virada de mês invalida o cache.
	if march := s.Stats(time.Date(2026, 3, 1, 9, 0, 0, 0, loc)); !march.MonthlyRevenue.IsZero() {
		t.Errorf("march revenue = %s, want 0", march.MonthlyRevenue)
	}
}
