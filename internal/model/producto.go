package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto is a catalog item. Stock lives in the 1:1 Inventario row, never
// here: the checkout workflow and the manual-movement endpoint are the only
// writers of stock.
type Producto struct {
	ID          uint   `gorm:"primaryKey"`
	Nombre      string `gorm:"index;not null"`
	Marca       string
	CategoriaID *uint `gorm:"index"`
	Descripcion *string
	Precio      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ImagenURL   *string
	Activo      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Categoria  *Categoria  `gorm:"foreignKey:CategoriaID"`
	Inventario *Inventario `gorm:"foreignKey:ProductoID"`
}

// TableName overrides GORM's default pluralization for Spanish names.
func (Producto) TableName() string { return "productos" }
