package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Venta is a completed sale created by checkout. Customer identity, prices
// and totals are snapshots; the row is immutable after creation.
type Venta struct {
	ID            uint   `gorm:"primaryKey"`
	UsuarioID     uint   `gorm:"index;not null"`
	ClienteNombre string `gorm:"not null"`
	ClienteEmail  string
	MetodoPago    string `gorm:"not null;default:'efectivo'"`
	Observaciones *string
	Subtotal      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Envio         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Impuestos     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Total         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt     time.Time

	Detalles []VentaDetalle `gorm:"foreignKey:VentaID"`
}

func (Venta) TableName() string { return "ventas" }

// VentaDetalle snapshots one sold line, decoupled from live product data.
type VentaDetalle struct {
	ID             uint   `gorm:"primaryKey"`
	VentaID        uint   `gorm:"index;not null"`
	ProductoID     uint   `gorm:"index;not null"`
	NombreProducto string `gorm:"not null"`
	Cantidad       int    `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (VentaDetalle) TableName() string { return "venta_detalles" }
