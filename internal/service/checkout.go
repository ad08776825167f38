package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/apierror"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/dto"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/model"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Checkout converts the customer's active cart into a sale, atomically:
//
//  1. locate the latest cart (absence is terminal, nothing started)
//  2. inside one transaction: re-read the lines, lock each inventory row
//     (SELECT ... FOR UPDATE) and verify stock, compute totals, create the
//     venta with snapshotted customer identity and line detail, decrement
//     stock per line with a guarded single UPDATE, append a "salida"
//     movement per line, and clear the cart's lines (the cart row survives)
//  3. commit; any failure rolls everything back
//
// The row locks taken during the stock check are held to commit, so two
// concurrent checkouts against the same product serialize: one sees the
// post-decrement stock and fails cleanly instead of overselling. The whole
// transaction runs under a deadline so an abandoned client cannot pin a
// pooled connection.
func (s *carritoService) Checkout(ctx context.Context, usuarioID uint, req dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	if s.checkoutTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.checkoutTimeout)
		defer cancel()
	}

	carrito, err := s.carritoRepo.FindActivoByUsuario(ctx, usuarioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("No hay carrito activo para este usuario")
		}
		return nil, apierror.Internal(err)
	}

	metodoPago := req.MetodoPago
	if metodoPago == "" {
		metodoPago = "efectivo"
	}
	clienteNombre, clienteEmail := s.snapshotCliente(ctx, usuarioID)

	var venta model.Venta
	txErr := runTx(ctx, s.carritoRepo.DB(), func(tx *gorm.DB) error {
		items, err := s.carritoRepo.ListItemsTx(tx, carrito.ID)
		if err != nil {
			return apierror.Internal(err)
		}
		if len(items) == 0 {
			return apierror.NotFound("El carrito está vacío")
		}

		// Stock check: lock every inventory row before touching anything.
		// The first shortfall aborts the whole checkout.
		for _, item := range items {
			inv, err := s.inventarioRepo.FindByProductoIDForUpdate(tx, item.ProductoID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Producto en el carrito sin fila de inventario: no hay nada
				// que vender, mismo trato que stock 0.
				return apierror.StockInsuficiente(nombreLinea(item), 0)
			}
			if err != nil {
				return apierror.Internal(err)
			}
			if inv.StockActual < item.Cantidad {
				return apierror.StockInsuficiente(nombreLinea(item), inv.StockActual)
			}
		}

		subtotal := decimal.Zero
		for _, item := range items {
			subtotal = subtotal.Add(item.Subtotal)
		}
		envio, impuestos, total := calcularTotales(subtotal)

		venta = model.Venta{
			UsuarioID:     usuarioID,
			ClienteNombre: clienteNombre,
			ClienteEmail:  clienteEmail,
			MetodoPago:    metodoPago,
			Observaciones: req.Observaciones,
			Subtotal:      subtotal,
			Envio:         envio,
			Impuestos:     impuestos,
			Total:         total,
		}
		for _, item := range items {
			venta.Detalles = append(venta.Detalles, model.VentaDetalle{
				ProductoID:     item.ProductoID,
				NombreProducto: nombreLinea(item),
				Cantidad:       item.Cantidad,
				PrecioUnitario: item.PrecioUnitario,
				Subtotal:       item.Subtotal,
			})
		}
		if err := s.ventaRepo.CreateTx(tx, &venta); err != nil {
			return apierror.Internal(err)
		}

		// Per line, in read order: guarded decrement + ledger row.
		for _, item := range items {
			if err := s.inventarioRepo.DescontarStockTx(tx, item.ProductoID, item.Cantidad); err != nil {
				// The FOR UPDATE lock should make this unreachable; the
				// guard is a second fence against lost updates.
				return apierror.StockInsuficiente(nombreLinea(item), 0)
			}
			ventaID := venta.ID
			mov := &model.MovimientoInventario{
				ProductoID: item.ProductoID,
				Tipo:       model.MovimientoSalida,
				Cantidad:   item.Cantidad,
				Motivo:     fmt.Sprintf("Venta #%d", venta.ID),
				VentaID:    &ventaID,
			}
			if err := s.inventarioRepo.CreateMovimientoTx(tx, mov); err != nil {
				return apierror.Internal(err)
			}
		}

		if err := s.carritoRepo.DeleteItemsTx(tx, carrito.ID); err != nil {
			return apierror.Internal(err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// Receipt email is best-effort: a queue failure never undoes the sale.
	if s.dispatcher != nil && venta.ClienteEmail != "" {
		payload := map[string]interface{}{
			"venta_id":      venta.ID,
			"cliente_email": venta.ClienteEmail,
		}
		if err := s.dispatcher.EnqueueComprobante(ctx, payload); err != nil {
			log.Warn().Err(err).Uint("venta_id", venta.ID).Msg("checkout: no se pudo encolar el comprobante")
		}
	}

	unidades := 0
	for _, d := range venta.Detalles {
		unidades += d.Cantidad
	}
	return &dto.CheckoutResponse{
		VentaID:           venta.ID,
		Subtotal:          venta.Subtotal,
		Envio:             venta.Envio,
		Impuestos:         venta.Impuestos,
		Total:             venta.Total,
		ProductosVendidos: unidades,
		FechaVenta:        venta.CreatedAt.Format("2006-01-02"),
		HoraVenta:         venta.CreatedAt.Format("15:04:05"),
	}, nil
}

// snapshotCliente resolves the customer's identity for the immutable sale
// record. Unregistered (walk-in) customers get a generic snapshot.
func (s *carritoService) snapshotCliente(ctx context.Context, usuarioID uint) (nombre, email string) {
	u, err := s.usuarioRepo.FindByID(ctx, usuarioID)
	if err != nil {
		return fmt.Sprintf("Cliente %d", usuarioID), ""
	}
	return u.Nombre, u.Email
}

func nombreLinea(item model.CarritoItem) string {
	if item.Producto != nil {
		return item.Producto.Nombre
	}
	return fmt.Sprintf("producto %d", item.ProductoID)
}
