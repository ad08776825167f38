package dto

// RegistrarMovimientoRequest creates a manual inventory adjustment.
type RegistrarMovimientoRequest struct {
	ProductoID uint   `json:"producto_id" validate:"required,min=1"`
	Tipo       string `json:"tipo"        validate:"required,oneof=entrada salida"`
	Cantidad   int    `json:"cantidad"    validate:"required,min=1"`
	Motivo     string `json:"motivo"      validate:"required,min=3"`
}

type ActualizarMinimoRequest struct {
	StockMinimo int `json:"stock_minimo" validate:"min=0"`
}

type MovimientoFilter struct {
	ProductoID uint   `form:"producto_id"`
	Tipo       string `form:"tipo"             validate:"omitempty,oneof=entrada salida"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type MovimientoResponse struct {
	ID         uint   `json:"id"`
	ProductoID uint   `json:"producto_id"`
	Producto   string `json:"producto,omitempty"`
	Tipo       string `json:"tipo"`
	Cantidad   int    `json:"cantidad"`
	Motivo     string `json:"motivo"`
	VentaID    *uint  `json:"venta_id,omitempty"`
	CreatedAt  string `json:"created_at"`
}

type MovimientoListResponse struct {
	Data  []MovimientoResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}

// AlertaStockResponse describes a product at or near its reorder threshold.
type AlertaStockResponse struct {
	ProductoID  uint   `json:"producto_id"`
	Nombre      string `json:"nombre"`
	StockActual int    `json:"stock_actual"`
	StockMinimo int    `json:"stock_minimo"`
	Estado      string `json:"estado"` // bajo | medio | normal
}
