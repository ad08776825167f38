package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Carrito is a customer's in-progress cart. A customer may accumulate
// several cart rows; the most recent one is the active cart (latest-wins
// lookup — there is no single-active-cart constraint in the schema).
type Carrito struct {
	ID        uint `gorm:"primaryKey"`
	UsuarioID uint `gorm:"index;not null"`
	CreatedAt time.Time

	Items []CarritoItem `gorm:"foreignKey:CarritoID"`
}

func (Carrito) TableName() string { return "carritos" }

// CarritoItem is one product line in a cart. PrecioUnitario is snapshotted
// at add time; Subtotal is persisted denormalized (cantidad × precio).
type CarritoItem struct {
	ID             uint            `gorm:"primaryKey"`
	CarritoID      uint            `gorm:"index:idx_carrito_producto,unique;not null"`
	ProductoID     uint            `gorm:"index:idx_carrito_producto,unique;not null"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (CarritoItem) TableName() string { return "carrito_items" }
