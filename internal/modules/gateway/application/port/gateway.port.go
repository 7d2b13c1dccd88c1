package port

import (
	"context"

	"posbusRelay/internal/modules/gateway/domain"
)

// Broadcaster define el contrato para enviar eventos a los consumidores WebSocket.
type Broadcaster interface {
	Broadcast(ctx context.Context, envelope *domain.Envelope)
}
