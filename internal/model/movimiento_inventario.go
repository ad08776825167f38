package model

import "time"

// Movement types.
const (
	MovimientoEntrada = "entrada"
	MovimientoSalida  = "salida"
)

// MovimientoInventario is one entry of the append-only stock ledger.
// Rows are never updated or deleted; the sum of movements for a product
// is expected to match its stock_actual.
type MovimientoInventario struct {
	ID         uint   `gorm:"primaryKey"`
	ProductoID uint   `gorm:"not null;index"`
	Tipo       string `gorm:"not null"` // entrada | salida
	Cantidad   int    `gorm:"not null"` // always positive; Tipo gives direction
	Motivo     string
	VentaID    *uint `gorm:"index"` // set when the movement came from a checkout
	CreatedAt  time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (MovimientoInventario) TableName() string { return "movimientos_inventario" }
