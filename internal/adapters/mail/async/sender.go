// Package async envuelve un Sender con un pool acotado de workers.
// El despacho de recordatorios es fire-and-forget: nadie espera al SMTP,
// un pase nunca se frena por la latencia del transporte.
package async

import (
	"context"
	"errors"
	"sync"
	"time"

	"pet-adoption-backend/internal/platform/logger"
	"pet-adoption-backend/internal/ports/mail"
)

// ErrQueueFull: la cola está llena y el mail no se encoló.
// El caller lo loguea y sigue; acá no hay garantía de entrega de todos modos.
var ErrQueueFull = errors.New("mail queue full")

const sendTimeout = 30 * time.Second

type task struct {
	to      string
	subject string
	body    string
}

type Sender struct {
	inner mail.Sender
	queue chan task
	wg    sync.WaitGroup
	log   logger.Logger

	closeOnce sync.Once
}

func New(inner mail.Sender, workers, queueSize int, log logger.Logger) *Sender {
	if workers <= 0 {
		workers = 4
	}
	if queueSize <= 0 {
		queueSize = 64
	}
	if log == nil {
		log = logger.Nop()
	}

	s := &Sender{
		inner: inner,
		queue: make(chan task, queueSize),
		log:   log,
	}

	for i := 0; i < workers; i++ {
		s.wg.Add(1)
		go s.worker()
	}

	return s
}

// Send encola sin bloquear. El ctx del caller no viaja con la tarea:
// el envío corre con su propio timeout, desacoplado del request.
func (s *Sender) Send(_ context.Context, to, subject, body string) error {
	select {
	case s.queue <- task{to: to, subject: subject, body: body}:
		return nil
	default:
		return ErrQueueFull
	}
}

func (s *Sender) worker() {
	defer s.wg.Done()

	for t := range s.queue {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		if err := s.inner.Send(ctx, t.to, t.subject, t.body); err != nil {
			s.log.Error("async mail send failed", map[string]any{
				"to":    t.to,
				"error": err.Error(),
			})
		}
		cancel()
	}
}

// Close cierra la cola y espera a que los workers terminen lo pendiente.
func (s *Sender) Close() {
	s.closeOnce.Do(func() {
		close(s.queue)
	})
	s.wg.Wait()
}
