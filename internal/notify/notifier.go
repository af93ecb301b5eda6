// Package notify sends the appointment confirmation to the client by e-mail
// and WhatsApp when an appointment moves into the confirmed status.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/nail-studio/internal/feed"
	"github.com/BruksfildServices01/nail-studio/internal/format"
	"github.com/BruksfildServices01/nail-studio/internal/models"
)

type ClientFinder interface {
	GetClient(ctx context.Context, id string) (*models.Client, error)
}

// Notifier é o worker de confirmações. Email ou WhatsApp nil desligam o canal.
type Notifier struct {
	clients  ClientFinder
	email    EmailSender
	whatsapp WhatsAppSender
}

func New(clients ClientFinder, email EmailSender, whatsapp WhatsAppSender) *Notifier {
	return &Notifier{clients: clients, email: email, whatsapp: whatsapp}
}

// Delivery resume o que foi enviado para um evento.
type Delivery struct {
	Email    bool
	WhatsApp bool
}

// becameConfirmed reconhece a transição de outro status para confirmed.
func becameConfirmed(ev feed.Event) (*models.Appointment, bool, error) {
	if ev.Collection != feed.Appointments || ev.Op != feed.OpUpdate || len(ev.Data) == 0 {
		return nil, false, nil
	}

	var cur models.Appointment
	if err := json.Unmarshal(ev.Data, &cur); err != nil {
		return nil, false, fmt.Errorf("decode appointment: %w", err)
	}
	if cur.Status != models.StatusConfirmed {
		return nil, false, nil
	}

	if len(ev.Previous) > 0 {
		var prev models.Appointment
		if err := json.Unmarshal(ev.Previous, &prev); err != nil {
			return nil, false, fmt.Errorf("decode previous appointment: %w", err)
		}
		if prev.Status == models.StatusConfirmed {
			return nil, false, nil
		}
	}

	return &cur, true, nil
}

// HandleChange processa um evento do feed. Falhas dos provedores são
// registradas e engolidas; o agendamento já foi gravado.
func (n *Notifier) HandleChange(ctx context.Context, ev feed.Event) (Delivery, error) {
	var out Delivery

	ap, ok, err := becameConfirmed(ev)
	if err != nil || !ok {
		return out, err
	}

	logger := log.With().Str("appointment_id", ap.ID).Str("client_id", ap.ClientID).Logger()

	client, err := n.clients.GetClient(ctx, ap.ClientID)
	if err != nil {
		logger.Error().Err(err).Msg("notify: client lookup failed")
		return out, nil
	}

	if client.Email != "" && n.email != nil {
		msg, err := Confirmation(*ap, *client)
		if err == nil {
			err = n.email.SendEmail(ctx, client.Email, msg)
		}
		if err != nil {
			logger.Error().Err(err).Msg("notify: email failed")
		} else {
			out.Email = true
		}
	}

	if client.Phone != "" && n.whatsapp != nil {
		phone, ok := NormalizePhone(client.Phone)
		if !ok {
			logger.Warn().Str("phone", client.Phone).Msg("notify: phone not normalizable")
			return out, nil
		}

		params := []string{
			firstName(client.Name),
			format.DateToBR(ap.Date),
			ap.Time,
			serviceNames(*ap),
		}
		if err := n.whatsapp.SendTemplate(ctx, phone, params); err != nil {
			logger.Error().Err(err).Msg("notify: whatsapp failed")
		} else {
			out.WhatsApp = true
		}
	}

	logger.Info().Bool("email", out.Email).Bool("whatsapp", out.WhatsApp).Msg("confirmation processed")
	return out, nil
}

// Run assina os agendamentos e processa os eventos até o ctx terminar.
func (n *Notifier) Run(ctx context.Context, sub feed.Subscriber) error {
	s, err := sub.Subscribe(ctx, feed.Appointments)
	if err != nil {
		return fmt.Errorf("notify subscribe: %w", err)
	}
	defer s.Close()

	log.Info().Msg("notifier listening for appointment changes")

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-s.C:
			if !ok {
				return nil
			}
			if _, err := n.HandleChange(ctx, ev); err != nil {
				log.Warn().Err(err).Str("event_id", ev.ID).Msg("notify: invalid event")
			}
		}
	}
}
