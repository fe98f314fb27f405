package reminders

import (
	"context"
	"fmt"
	"strings"

	"pet-adoption-backend/internal/domain/adoptions"
	"pet-adoption-backend/internal/domain/purchases"
	"pet-adoption-backend/internal/platform/logger"
	"pet-adoption-backend/internal/ports/mail"
)

const reminderSubject = "Pet Vaccination Reminder"

// AdoptionSource resuelve la adopción aceptada de una mascota (si la hay).
type AdoptionSource interface {
	AcceptedByPet(ctx context.Context, petID string) (adoptions.Adoption, error)
}

// PurchaseSource resuelve el registro de compra de una mascota (si lo hay).
type PurchaseSource interface {
	ByPet(ctx context.Context, petID string) (purchases.Purchase, error)
}

// Dispatcher resuelve destinatarios y manda un mail por cada uno.
// Adoptante y comprador son independientes: pueden dispararse los dos para
// el mismo evento, y que no exista ninguno no es un error.
type Dispatcher struct {
	adoptions AdoptionSource
	purchases PurchaseSource
	mailer    mail.Sender
	product   string
	log       logger.Logger
}

func NewDispatcher(adoptionSrc AdoptionSource, purchaseSrc PurchaseSource, mailer mail.Sender, product string, log logger.Logger) *Dispatcher {
	if log == nil {
		log = logger.Nop()
	}
	return &Dispatcher{
		adoptions: adoptionSrc,
		purchases: purchaseSrc,
		mailer:    mailer,
		product:   product,
		log:       log,
	}
}

// Dispatch devuelve cuántos mails se encolaron para el evento.
// Los fallos de transporte se loguean y no cortan nada: el pase sigue con
// el próximo destinatario/evento.
func (d *Dispatcher) Dispatch(ctx context.Context, ev DueEvent) int {
	sent := 0

	if a, err := d.adoptions.AcceptedByPet(ctx, ev.Pet.ID); err == nil {
		if d.send(ctx, a.AdopterEmail, ev) {
			sent++
		}
	} else {
		d.log.Debug("no accepted adoption for pet", map[string]any{
			"pet_id": ev.Pet.ID,
		})
	}

	if p, err := d.purchases.ByPet(ctx, ev.Pet.ID); err == nil {
		if d.send(ctx, p.BuyerEmail, ev) {
			sent++
		}
	} else {
		d.log.Debug("no purchase record for pet", map[string]any{
			"pet_id": ev.Pet.ID,
		})
	}

	if sent == 0 {
		d.log.Info("vaccine due but no recipient resolved", map[string]any{
			"pet_id":  ev.Pet.ID,
			"vaccine": ev.VaccineType,
			"due":     ev.NextDueDate,
		})
	}

	return sent
}

func (d *Dispatcher) send(ctx context.Context, to string, ev DueEvent) bool {
	to = strings.TrimSpace(to)
	if to == "" {
		// registro sin email: no-op, no es un fallo
		return false
	}

	body := reminderBody(ev.Pet.Name, ev.VaccineType, ev.NextDueDate, d.product)
	if err := d.mailer.Send(ctx, to, reminderSubject, body); err != nil {
		d.log.Error("reminder mail failed", map[string]any{
			"pet_id":  ev.Pet.ID,
			"vaccine": ev.VaccineType,
			"to":      to,
			"error":   err.Error(),
		})
		return false
	}

	d.log.Info("reminder mail queued", map[string]any{
		"pet_id":  ev.Pet.ID,
		"vaccine": ev.VaccineType,
		"due":     ev.NextDueDate,
	})
	return true
}

func reminderBody(petName, vaccineType, dueDate, product string) string {
	return fmt.Sprintf(
		"Hello,\n\nThis is a reminder that your pet %q needs the %q vaccine on %s.\n\nRegards,\n%s",
		petName, vaccineType, dueDate, product,
	)
}
