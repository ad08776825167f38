package model

import "time"

// Categoria classifies products in the catalog.
type Categoria struct {
	ID          uint   `gorm:"primaryKey"`
	Nombre      string `gorm:"uniqueIndex;not null"`
	Descripcion *string
	Activo      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Categoria) TableName() string { return "categorias" }
