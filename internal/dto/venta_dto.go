package dto

import "github.com/shopspring/decimal"

// VentaFilter is bound from query string of GET /ventas.
type VentaFilter struct {
	Fecha string `form:"fecha"` // YYYY-MM-DD; empty = todas
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type VentaDetalleResponse struct {
	ProductoID     uint            `json:"producto_id"`
	Producto       string          `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type VentaResponse struct {
	ID            uint                   `json:"id"`
	ClienteNombre string                 `json:"cliente_nombre"`
	ClienteEmail  string                 `json:"cliente_email"`
	MetodoPago    string                 `json:"metodo_pago"`
	Observaciones *string                `json:"observaciones,omitempty"`
	Subtotal      decimal.Decimal        `json:"subtotal"`
	Envio         decimal.Decimal        `json:"envio"`
	Impuestos     decimal.Decimal        `json:"impuestos"`
	Total         decimal.Decimal        `json:"total"`
	Detalles      []VentaDetalleResponse `json:"detalles"`
	CreatedAt     string                 `json:"created_at"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
