// Package memory es un Sender que solo acumula los mails en memoria.
// Sirve de transporte en dev (sin SMTP configurado) y de captura en tests.
package memory

import (
	"context"
	"sync"

	"pet-adoption-backend/internal/platform/logger"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

type Sender struct {
	mu   sync.Mutex
	sent []Message
	log  logger.Logger
}

// New crea el recorder. Si log no es nil, cada envío se refleja en el log
// (para ver algo en dev sin transporte real).
func New(log logger.Logger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, to, subject, body string) error {
	s.mu.Lock()
	s.sent = append(s.sent, Message{To: to, Subject: subject, Body: body})
	s.mu.Unlock()

	if s.log != nil {
		s.log.Info("mail recorded (no transport configured)", map[string]any{
			"to":      to,
			"subject": subject,
		})
	}
	return nil
}

// Sent devuelve una copia de lo acumulado.
func (s *Sender) Sent() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Message, len(s.sent))
	copy(out, s.sent)
	return out
}

func (s *Sender) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = nil
}
