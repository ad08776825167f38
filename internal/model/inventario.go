package model

import "time"

// Inventario holds the current stock level of one product (1:1).
type Inventario struct {
	ID          uint `gorm:"primaryKey"`
	ProductoID  uint `gorm:"uniqueIndex;not null"`
	StockActual int  `gorm:"not null;default:0"`
	StockMinimo int  `gorm:"not null;default:5"`
	UpdatedAt   time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (Inventario) TableName() string { return "inventarios" }
