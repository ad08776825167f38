package dto

import "github.com/shopspring/decimal"

// ProductoFilter is bound from query string of GET /productos.
type ProductoFilter struct {
	Nombre    string `form:"nombre"`
	Categoria string `form:"categoria"`
	// Activo: "false" = inactivos, "all" = todos, anything else = activos
	Activo string `form:"activo"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type CrearProductoRequest struct {
	Nombre       string          `json:"nombre"        validate:"required,min=2"`
	Marca        string          `json:"marca"         validate:"omitempty,max=100"`
	CategoriaID  *uint           `json:"categoria_id"`
	Descripcion  *string         `json:"descripcion"`
	Precio       decimal.Decimal `json:"precio"        validate:"required,gt=0"`
	ImagenURL    *string         `json:"imagen_url"`
	StockInicial int             `json:"stock_inicial" validate:"min=0"`
	StockMinimo  int             `json:"stock_minimo"  validate:"min=0"`
}

type ActualizarProductoRequest struct {
	Nombre      string          `json:"nombre"       validate:"required,min=2"`
	Marca       string          `json:"marca"        validate:"omitempty,max=100"`
	CategoriaID *uint           `json:"categoria_id"`
	Descripcion *string         `json:"descripcion"`
	Precio      decimal.Decimal `json:"precio"       validate:"required,gt=0"`
	ImagenURL   *string         `json:"imagen_url"`
}

type ProductoResponse struct {
	ID          uint            `json:"id"`
	Nombre      string          `json:"nombre"`
	Marca       string          `json:"marca"`
	CategoriaID *uint           `json:"categoria_id"`
	Categoria   string          `json:"categoria,omitempty"`
	Descripcion *string         `json:"descripcion"`
	Precio      decimal.Decimal `json:"precio"`
	ImagenURL   *string         `json:"imagen_url"`
	Activo      bool            `json:"activo"`
	StockActual int             `json:"stock_actual"`
	StockMinimo int             `json:"stock_minimo"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

type CrearCategoriaRequest struct {
	Nombre      string  `json:"nombre" validate:"required,min=2"`
	Descripcion *string `json:"descripcion"`
}

type CategoriaResponse struct {
	ID          uint    `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion"`
	Activo      bool    `json:"activo"`
}
