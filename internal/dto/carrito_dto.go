package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AgregarItemRequest struct {
	ProductoID uint `json:"producto_id" validate:"required,min=1"`
	Cantidad   int  `json:"cantidad"    validate:"required,min=1"`
}

// ActualizarItemRequest: cantidad 0 means "remove the line".
type ActualizarItemRequest struct {
	Cantidad int `json:"cantidad" validate:"min=0"`
}

type CheckoutRequest struct {
	MetodoPago    string  `json:"metodo_pago"   validate:"omitempty,oneof=efectivo tarjeta transferencia"`
	Observaciones *string `json:"observaciones" validate:"omitempty,max=500"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CarritoItemResponse struct {
	ProductoID     uint            `json:"producto_id"`
	Nombre         string          `json:"nombre"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// CarritoResponse is the payload of GET /carrito/:usuario_id.
type CarritoResponse struct {
	CarritoID uint                  `json:"carrito_id"`
	Items     []CarritoItemResponse `json:"items"`
	Total     decimal.Decimal       `json:"total"`
	Cantidad  int                   `json:"cantidad"`
}

// ResumenResponse is the pricing breakdown of GET /carrito/:usuario_id/resumen.
type ResumenResponse struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	Envio     decimal.Decimal `json:"envio"`
	Impuestos decimal.Decimal `json:"impuestos"`
	Total     decimal.Decimal `json:"total"`
	Cantidad  int             `json:"cantidad"`
}

// CheckoutResponse is returned by POST /carrito/:usuario_id/checkout.
type CheckoutResponse struct {
	VentaID           uint            `json:"venta_id"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	Envio             decimal.Decimal `json:"envio"`
	Impuestos         decimal.Decimal `json:"impuestos"`
	Total             decimal.Decimal `json:"total"`
	ProductosVendidos int             `json:"productos_vendidos"`
	FechaVenta        string          `json:"fecha_venta"`
	HoraVenta         string          `json:"hora_venta"`
}
