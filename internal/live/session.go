// Package live keeps an in-process replica of the five studio collections.
// Each collection is loaded once and reloaded in full whenever the change
// feed reports a mutation on it.
package live

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/nail-studio/internal/feed"
	"github.com/BruksfildServices01/nail-studio/internal/models"
	"github.com/BruksfildServices01/nail-studio/internal/stats"
	"github.com/BruksfildServices01/nail-studio/internal/timezone"
)

// Loader lê as coleções completas, já ordenadas pelo store.
type Loader interface {
	ListClients(ctx context.Context) ([]models.Client, error)
	ListServices(ctx context.Context) ([]models.Service, error)
	ListStaff(ctx context.Context) ([]models.Staff, error)
	ListAppointments(ctx context.Context) ([]models.Appointment, error)
	ListFinancialRecords(ctx context.Context) ([]models.FinancialRecord, error)
}

type statsKey struct {
	version uint64
	day     string
}

type Session struct {
	loader Loader

	mu           sync.RWMutex
	clients      []models.Client
	services     []models.Service
	staff        []models.Staff
	appointments []models.Appointment
	records      []models.FinancialRecord
	loaded       map[feed.Collection]bool
	version      uint64
	warnings     []string

	statsMu   sync.Mutex
	statsKey  statsKey
	statsVal  stats.DashboardStats
	statsSeen bool

	ready     chan struct{}
	readyOnce sync.Once

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Open assina as cinco coleções e dispara a carga inicial de cada uma.
// Falhas de carga ou de assinatura viram avisos e não impedem Ready.
func Open(ctx context.Context, loader Loader, sub feed.Subscriber) *Session {
	ctx, cancel := context.WithCancel(ctx)

	s := &Session{
		loader: loader,
		loaded: make(map[feed.Collection]bool),
		ready:  make(chan struct{}),
		cancel: cancel,
	}

	for _, c := range feed.Collections() {
		var subscription *feed.Subscription
		if sub != nil {
			var err error
			subscription, err = sub.Subscribe(ctx, c)
			if err != nil {
				s.warn(c, "subscribe", err)
			}
		}

		s.wg.Add(1)
		go s.listen(ctx, c, subscription)
	}

	return s
}

func (s *Session) listen(ctx context.Context, c feed.Collection, sub *feed.Subscription) {
	defer s.wg.Done()
	defer sub.Close()

	s.reload(ctx, c)

	if sub == nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-sub.C:
			if !ok {
				return
			}
			// uma recarga cobre todos os eventos já enfileirados
			open := drain(sub.C)
			s.reload(ctx, c)
			if !open {
				return
			}
		}
	}
}

// drain consome o que já está no canal; false se ele foi fechado.
func drain(ch <-chan feed.Event) bool {
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return false
			}
		default:
			return true
		}
	}
}

// reload substitui a coleção inteira pela versão atual do store.
func (s *Session) reload(ctx context.Context, c feed.Collection) {
	err := s.load(ctx, c)
	if err != nil && ctx.Err() == nil {
		s.warn(c, "load", err)
	}
	s.markLoaded(c)
}

func (s *Session) load(ctx context.Context, c feed.Collection) error {
	switch c {
	case feed.Clients:
		list, err := s.loader.ListClients(ctx)
		if err != nil {
			return err
		}
		s.swap(func() { s.clients = list })
	case feed.Services:
		list, err := s.loader.ListServices(ctx)
		if err != nil {
			return err
		}
		s.swap(func() { s.services = list })
	case feed.Staff:
		list, err := s.loader.ListStaff(ctx)
		if err != nil {
			return err
		}
		s.swap(func() { s.staff = list })
	case feed.Appointments:
		list, err := s.loader.ListAppointments(ctx)
		if err != nil {
			return err
		}
		s.swap(func() { s.appointments = list })
	case feed.FinancialRecords:
		list, err := s.loader.ListFinancialRecords(ctx)
		if err != nil {
			return err
		}
		s.swap(func() { s.records = list })
	default:
		return fmt.Errorf("unknown collection %q", c)
	}
	return nil
}

func (s *Session) swap(fn func()) {
	s.mu.Lock()
	fn()
	s.version++
	s.mu.Unlock()
}

func (s *Session) warn(c feed.Collection, stage string, err error) {
	log.Warn().Err(err).Str("collection", string(c)).Str("stage", stage).Msg("live collection degraded")

	s.mu.Lock()
	s.warnings = append(s.warnings, fmt.Sprintf("%s %s: %v", c, stage, err))
	s.mu.Unlock()
}

func (s *Session) markLoaded(c feed.Collection) {
	s.mu.Lock()
	s.loaded[c] = true
	all := len(s.loaded) == len(feed.Collections())
	s.mu.Unlock()

	if all {
		s.readyOnce.Do(func() { close(s.ready) })
	}
}

// Ready espera a primeira carga de todas as coleções.
func (s *Session) Ready(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) Loaded(c feed.Collection) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded[c]
}

func (s *Session) Warnings() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.warnings...)
}

// Version muda a cada recarga de qualquer coleção.
func (s *Session) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Close encerra todas as assinaturas e espera os listeners terminarem.
func (s *Session) Close() {
	s.cancel()
	s.wg.Wait()
}

// -------- Leitura --------

func (s *Session) Clients() []models.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Client(nil), s.clients...)
}

func (s *Session) Services() []models.Service {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Service(nil), s.services...)
}

func (s *Session) Staff() []models.Staff {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Staff(nil), s.staff...)
}

func (s *Session) Appointments() []models.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Appointment, len(s.appointments))
	for i, ap := range s.appointments {
		ap.Services = append([]models.ServiceSnapshot(nil), ap.Services...)
		out[i] = ap
	}
	return out
}

func (s *Session) FinancialRecords() []models.FinancialRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.FinancialRecord(nil), s.records...)
}

// Stats recalcula o painel apenas quando alguma coleção mudou ou o dia
// virou desde o último cálculo.
func (s *Session) Stats(now time.Time) stats.DashboardStats {
	s.mu.RLock()
	key := statsKey{version: s.version, day: timezone.Today(now)}
	clients, appointments, records := s.clients, s.appointments, s.records
	s.mu.RUnlock()

	s.statsMu.Lock()
	defer s.statsMu.Unlock()

	if s.statsSeen && s.statsKey == key {
		return s.statsVal
	}

	s.statsVal = stats.Compute(clients, appointments, records, now)
	s.statsKey = key
	s.statsSeen = true
	return s.statsVal
}
