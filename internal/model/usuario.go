package model

import "time"

// Usuario is a back-office user (staff) or a registered customer.
type Usuario struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	Nombre       string `gorm:"not null"`
	Email        string `gorm:"index"`
	PasswordHash string `gorm:"not null"`
	Rol          string `gorm:"not null;default:'recepcionista'"` // administrador | recepcionista | cliente
	Activo       bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Usuario) TableName() string { return "usuarios" }
