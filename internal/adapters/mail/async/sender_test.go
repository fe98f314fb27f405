package async

import (
	"context"
	"errors"
	"sync"
	"testing"

	mailmem "pet-adoption-backend/internal/adapters/mail/memory"
)

func TestSender_DeliversThroughWorkers(t *testing.T) {
	rec := mailmem.New(nil)
	s := New(rec, 2, 8, nil)

	for i := 0; i < 5; i++ {
		if err := s.Send(context.Background(), "user@example.com", "subject", "body"); err != nil {
			t.Fatalf("Send error: %v", err)
		}
	}

	s.Close() // drena la cola

	if got := len(rec.Sent()); got != 5 {
		t.Fatalf("expected 5 delivered mails, got %d", got)
	}
}

// blockingSender frena cada envío hasta que se libere el gate.
type blockingSender struct {
	gate chan struct{}
	once sync.Once
}

func (b *blockingSender) Send(ctx context.Context, to, subject, body string) error {
	<-b.gate
	return nil
}

func (b *blockingSender) release() {
	b.once.Do(func() { close(b.gate) })
}

func TestSender_QueueFullDoesNotBlock(t *testing.T) {
	inner := &blockingSender{gate: make(chan struct{})}
	s := New(inner, 1, 1, nil)
	defer func() {
		inner.release()
		s.Close()
	}()

	// Satura worker + cola. Con 1 worker y cola de 1, al tercer intento
	// como muy tarde la cola está llena.
	var sawFull bool
	for i := 0; i < 10; i++ {
		if err := s.Send(context.Background(), "user@example.com", "s", "b"); err != nil {
			if !errors.Is(err, ErrQueueFull) {
				t.Fatalf("expected ErrQueueFull, got %v", err)
			}
			sawFull = true
			break
		}
	}
	if !sawFull {
		t.Fatalf("expected queue to fill up")
	}
}

func TestSender_CloseIsIdempotent(t *testing.T) {
	s := New(mailmem.New(nil), 1, 1, nil)
	s.Close()
	s.Close() // no debe entrar en pánico
}
