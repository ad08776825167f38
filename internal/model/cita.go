package model

import "time"

// Cita states.
const (
	CitaPendiente  = "pendiente"
	CitaConfirmada = "confirmada"
	CitaCompletada = "completada"
	CitaCancelada  = "cancelada"
)

// Cita is a salon appointment. A fecha+hora slot admits a single
// non-cancelled cita.
type Cita struct {
	ID              uint   `gorm:"primaryKey"`
	ClienteNombre   string `gorm:"not null"`
	ClienteEmail    string
	ClienteTelefono string
	Servicio        string    `gorm:"not null"`
	Fecha           time.Time `gorm:"type:date;not null;index"`
	Hora            string    `gorm:"not null"` // HH:MM
	Estado          string    `gorm:"not null;default:'pendiente'"`
	Notas           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Cita) TableName() string { return "citas" }
