package dto

import "github.com/shopspring/decimal"

// ReporteVentasFilter bounds the aggregation window of GET /reportes/ventas.
type ReporteVentasFilter struct {
	Desde string `form:"desde" validate:"omitempty,datetime=2006-01-02"`
	Hasta string `form:"hasta" validate:"omitempty,datetime=2006-01-02"`
}

// VentasDiaResponse is one aggregated day of sales.
type VentasDiaResponse struct {
	Fecha         string          `json:"fecha"`
	CantidadVentas int64          `json:"cantidad_ventas"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Total         decimal.Decimal `json:"total"`
}

type TopProductoResponse struct {
	ProductoID      uint            `json:"producto_id"`
	Nombre          string          `json:"nombre"`
	UnidadesVendidas int64          `json:"unidades_vendidas"`
	TotalVendido    decimal.Decimal `json:"total_vendido"`
}
