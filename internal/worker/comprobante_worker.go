package worker

// comprobante_worker.go
// Processes receipt jobs from QueueComprobante: renders the sale receipt as
// a PDF and mails it to the customer.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/infra"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/repository"

	"github.com/rs/zerolog/log"
)

// ComprobanteJobPayload is the job envelope sent to QueueComprobante.
type ComprobanteJobPayload struct {
	VentaID      uint   `json:"venta_id"`
	ClienteEmail string `json:"cliente_email"`
}

type ComprobanteWorker struct {
	ventaRepo   repository.VentaRepository
	mailer      *infra.Mailer
	storagePath string
}

func NewComprobanteWorker(ventaRepo repository.VentaRepository, mailer *infra.Mailer, storagePath string) *ComprobanteWorker {
	return &ComprobanteWorker{ventaRepo: ventaRepo, mailer: mailer, storagePath: storagePath}
}

// Process generates the receipt PDF and emails it to the customer.
func (w *ComprobanteWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ComprobanteJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("comprobante_worker: invalid payload: %w", err)
	}

	venta, err := w.ventaRepo.FindByID(ctx, payload.VentaID)
	if err != nil {
		return fmt.Errorf("comprobante_worker: venta %d: %w", payload.VentaID, err)
	}

	pdfPath, err := infra.GenerarComprobantePDF(venta, w.storagePath)
	if err != nil {
		return err
	}

	if payload.ClienteEmail == "" {
		log.Warn().Uint("venta_id", payload.VentaID).Msg("comprobante_worker: venta sin email — PDF generado, correo omitido")
		return nil
	}

	subject := fmt.Sprintf("Comprobante de compra #%d — Salón Sandra Fajardo", venta.ID)
	body := fmt.Sprintf("Gracias por su compra, %s.\n\nAdjuntamos el comprobante de su compra por un total de $%s.",
		venta.ClienteNombre, venta.Total.StringFixed(2))
	if err := w.mailer.SendComprobante(payload.ClienteEmail, subject, body, pdfPath); err != nil {
		return fmt.Errorf("comprobante_worker: enviar correo: %w", err)
	}

	log.Info().Uint("venta_id", venta.ID).Str("to", payload.ClienteEmail).Msg("comprobante enviado")
	return nil
}
