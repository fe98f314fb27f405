package reminders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pet-adoption-backend/internal/platform/logger"

	"github.com/robfig/cron/v3"
)

// Scheduler dispara el pase una vez por día a hora fija (hora local del
// location configurado). Cada disparo es independiente: si un pase quedó
// colgado, el siguiente igual intenta y choca con la guarda de in-flight.
type Scheduler struct {
	cron *cron.Cron
	svc  *Service
	log  logger.Logger
}

func NewScheduler(svc *Service, hour int, loc *time.Location, log logger.Logger) (*Scheduler, error) {
	if hour < 0 || hour > 23 {
		return nil, fmt.Errorf("reminders: hour out of range: %d", hour)
	}
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = logger.Nop()
	}

	s := &Scheduler{
		cron: cron.New(cron.WithLocation(loc)),
		svc:  svc,
		log:  log,
	}

	if _, err := s.cron.AddFunc(fmt.Sprintf("0 %d * * *", hour), s.run); err != nil {
		return nil, fmt.Errorf("reminders: schedule: %w", err)
	}

	return s, nil
}

func (s *Scheduler) run() {
	if _, err := s.svc.RunPass(context.Background()); err != nil {
		if errors.Is(err, ErrPassInFlight) {
			s.log.Warn("scheduled reminder pass skipped, previous still running", nil)
			return
		}
		s.log.Error("scheduled reminder pass failed", map[string]any{"error": err.Error()})
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop frena el cron y espera a que termine un run en curso.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
