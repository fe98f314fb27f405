package mail

import "context"

// Sender manda un mail plano. Los errores son informativos para el caller:
// ningún envío fallido debe frenar el resto del procesamiento.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}
