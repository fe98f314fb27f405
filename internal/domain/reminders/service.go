package reminders

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"pet-adoption-backend/internal/domain/pets"
	"pet-adoption-backend/internal/platform/logger"
)

// ErrPassInFlight: ya hay un pase corriendo. El que llega segundo se saltea,
// no se encola; dos pases solapados duplicarían mails.
var ErrPassInFlight = errors.New("reminder pass already running")

// PetSource es el snapshot de lectura del pase.
type PetSource interface {
	ListWithVaccinations(ctx context.Context) ([]pets.Pet, error)
}

type Summary struct {
	AsOf         string
	PetsScanned  int
	EventsDue    int
	EmailsQueued int
}

// Service corre el pase completo: snapshot de mascotas, evaluación de
// vencimientos y despacho de avisos. No guarda estado entre pases (no hay
// registro de "ya avisado": repetir un pase el mismo día re-manda mails).
type Service struct {
	pets       PetSource
	dispatcher *Dispatcher
	intervals  IntervalTable
	log        logger.Logger
	now        func() time.Time

	mu sync.Mutex // guarda de un solo pase en vuelo
}

func NewService(petSrc PetSource, dispatcher *Dispatcher, intervals IntervalTable, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		pets:       petSrc,
		dispatcher: dispatcher,
		intervals:  intervals,
		log:        log,
		now:        time.Now,
	}
}

func (s *Service) RunPass(ctx context.Context) (Summary, error) {
	return s.RunPassAsOf(ctx, s.now())
}

// RunPassAsOf corre un pase evaluando contra asOf (la ventana es el día
// calendario siguiente). El asOf explícito existe para pruebas operativas
// desde el trigger manual.
func (s *Service) RunPassAsOf(ctx context.Context, asOf time.Time) (Summary, error) {
	if !s.mu.TryLock() {
		return Summary{}, ErrPassInFlight
	}
	defer s.mu.Unlock()

	asOfStr := asOf.Format(dateLayout)

	petList, err := s.pets.ListWithVaccinations(ctx)
	if err != nil {
		// fallo a nivel pase: se aborta este trigger, el próximo corre igual
		s.log.Error("reminder pass aborted", map[string]any{
			"as_of": asOfStr,
			"error": err.Error(),
		})
		return Summary{}, fmt.Errorf("reminders: list pets: %w", err)
	}

	events := ComputeDueEvents(petList, s.intervals, asOf)

	queued := 0
	for _, ev := range events {
		queued += s.dispatcher.Dispatch(ctx, ev)
	}

	sum := Summary{
		AsOf:         asOfStr,
		PetsScanned:  len(petList),
		EventsDue:    len(events),
		EmailsQueued: queued,
	}

	s.log.Info("reminder pass completed", map[string]any{
		"as_of":  sum.AsOf,
		"pets":   sum.PetsScanned,
		"due":    sum.EventsDue,
		"emails": sum.EmailsQueued,
	})

	return sum, nil
}
