package repository

import (
	"context"

	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/dto"

	"gorm.io/gorm"
)

// ReporteRepository runs the read-only aggregation queries behind /reportes.
type ReporteRepository interface {
	VentasPorDia(ctx context.Context, desde, hasta string) ([]dto.VentasDiaResponse, error)
	TopProductos(ctx context.Context, limit int) ([]dto.TopProductoResponse, error)
}

type reporteRepo struct{ db *gorm.DB }

func NewReporteRepository(db *gorm.DB) ReporteRepository { return &reporteRepo{db: db} }

func (r *reporteRepo) VentasPorDia(ctx context.Context, desde, hasta string) ([]dto.VentasDiaResponse, error) {
	var rows []dto.VentasDiaResponse
	q := r.db.WithContext(ctx).Table("ventas").
		Select("TO_CHAR(created_at, 'YYYY-MM-DD') AS fecha, COUNT(*) AS cantidad_ventas, SUM(subtotal) AS subtotal, SUM(total) AS total")
	if desde != "" {
		q = q.Where("created_at >= ?", desde)
	}
	if hasta != "" {
		q = q.Where("created_at < (?::date + 1)", hasta)
	}
	err := q.Group("TO_CHAR(created_at, 'YYYY-MM-DD')").
		Order("fecha DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *reporteRepo) TopProductos(ctx context.Context, limit int) ([]dto.TopProductoResponse, error) {
	var rows []dto.TopProductoResponse
	err := r.db.WithContext(ctx).Table("venta_detalles").
		Select("producto_id, MAX(nombre_producto) AS nombre, SUM(cantidad) AS unidades_vendidas, SUM(subtotal) AS total_vendido").
		Group("producto_id").
		Order("unidades_vendidas DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
