package worker

// limpieza_cron.go
// Background goroutine that periodically prunes abandoned carts: cart rows
// with no lines (cleared by checkout or never filled) older than the
// configured retention window. Keeps the carritos table from accumulating
// rows forever under the latest-cart-wins lookup.

import (
	"context"
	"time"

	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/repository"

	"github.com/rs/zerolog/log"
)

const limpiezaTickInterval = 1 * time.Hour

// StartLimpiezaCarritos launches the cleanup goroutine. retentionDays bounds
// how long an empty cart survives. Respects ctx for graceful shutdown.
func StartLimpiezaCarritos(ctx context.Context, carritoRepo repository.CarritoRepository, retentionDays int) {
	go func() {
		ticker := time.NewTicker(limpiezaTickInterval)
		defer ticker.Stop()

		log.Info().Int("retention_days", retentionDays).Msg("limpieza_carritos: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("limpieza_carritos: shutting down")
				return
			case <-ticker.C:
				cutoff := time.Now().AddDate(0, 0, -retentionDays)
				removed, err := carritoRepo.DeleteVaciosAnterioresA(ctx, cutoff)
				if err != nil {
					log.Error().Err(err).Msg("limpieza_carritos: purge failed")
					continue
				}
				if removed > 0 {
					log.Info().Int64("removed", removed).Msg("limpieza_carritos: carritos vacíos eliminados")
				}
			}
		}
	}()
}
