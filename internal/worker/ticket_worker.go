package worker

// ticket_worker.go
// Renders the PDF ticket of a completed sale into the PDF storage directory,
// where GET /v1/ventas/:id/ticket can serve it without re-rendering.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/infra"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// TicketJobPayload is the job envelope sent to QueueTicket.
type TicketJobPayload struct {
	VentaID string `json:"venta_id"`
	UserID  string `json:"user_id"`
}

type TicketWorker struct {
	ventas      repository.VentaRepository
	negocio     string
	storagePath string
}

func NewTicketWorker(ventas repository.VentaRepository, negocio, storagePath string) *TicketWorker {
	return &TicketWorker{ventas: ventas, negocio: negocio, storagePath: storagePath}
}

func (w *TicketWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload TicketJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		// a malformed payload will never succeed; do not retry it
		log.Error().Err(err).Msg("ticket_worker: invalid payload")
		return nil
	}
	ventaID, err1 := uuid.Parse(payload.VentaID)
	owner, err2 := uuid.Parse(payload.UserID)
	if err1 != nil || err2 != nil {
		log.Error().Str("venta_id", payload.VentaID).Str("user_id", payload.UserID).Msg("ticket_worker: invalid ids")
		return nil
	}

	venta, err := w.ventas.FindByID(ctx, owner, ventaID)
	if err != nil {
		if repository.IsNotFound(err) {
			log.Warn().Str("venta_id", payload.VentaID).Msg("ticket_worker: venta not found")
			return nil
		}
		return fmt.Errorf("ticket_worker: load venta: %w", err)
	}

	path, err := infra.GenerateTicketPDF(venta, w.negocio, w.storagePath)
	if err != nil {
		return err
	}
	log.Info().Str("pdf", path).Int("ticket", venta.NumeroTicket).Msg("ticket_worker: PDF generated")
	return nil
}
