// Package feed is the realtime change stream of the studio documents. Every
// committed mutation is published as an Event; subscribers receive the events
// of one collection and are expected to reload it.
package feed

import (
	"context"
	"encoding/json"
	"time"
)

type Collection string

const (
	Clients          Collection = "clients"
	Services         Collection = "services"
	Appointments     Collection = "appointments"
	FinancialRecords Collection = "financial_records"
	Staff            Collection = "staff"
)

// Collections lista as coleções com assinatura em tempo real.
func Collections() []Collection {
	return []Collection{Clients, Services, Appointments, FinancialRecords, Staff}
}

type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

type Event struct {
	Collection Collection      `json:"collection"`
	Op         Op              `json:"op"`
	ID         string          `json:"id"`
	Data       json.RawMessage `json:"data,omitempty"`
	Previous   json.RawMessage `json:"previous,omitempty"`
	At         time.Time       `json:"at"`
}

// NewEvent serializa o documento atual e, em updates e deletes, o anterior.
func NewEvent(c Collection, op Op, id string, data, previous any) Event {
	ev := Event{
		Collection: c,
		Op:         op,
		ID:         id,
		At:         time.Now().UTC(),
	}
	if data != nil {
		ev.Data, _ = json.Marshal(data)
	}
	if previous != nil {
		ev.Previous, _ = json.Marshal(previous)
	}
	return ev
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, c Collection) (*Subscription, error)
}

type Bus interface {
	Publisher
	Subscriber
	Close() error
}

// Subscription entrega os eventos em C até Close ou até o ctx do Subscribe
// ser cancelado; depois disso C é fechado.
type Subscription struct {
	C     <-chan Event
	close func()
}

func (s *Subscription) Close() {
	if s != nil && s.close != nil {
		s.close()
	}
}
