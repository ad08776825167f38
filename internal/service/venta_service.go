package service

import (
	"context"

	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/apierror"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/dto"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/model"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/repository"
)

// VentaService exposes read-only access to completed sales. Ventas nacen en
// el checkout y nunca se modifican después.
type VentaService interface {
	ObtenerPorID(ctx context.Context, id uint) (*dto.VentaResponse, error)
	Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
}

type ventaService struct {
	repo repository.VentaRepository
}

func NewVentaService(repo repository.VentaRepository) VentaService {
	return &ventaService{repo: repo}
}

func (s *ventaService) ObtenerPorID(ctx context.Context, id uint) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Venta no encontrada")
	}
	return ventaToResponse(venta), nil
}

func (s *ventaService) Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	ventas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	data := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		data = append(data, *ventaToResponse(&ventas[i]))
	}
	return &dto.VentaListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	detalles := make([]dto.VentaDetalleResponse, 0, len(v.Detalles))
	for _, d := range v.Detalles {
		detalles = append(detalles, dto.VentaDetalleResponse{
			ProductoID:     d.ProductoID,
			Producto:       d.NombreProducto,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			Subtotal:       d.Subtotal,
		})
	}
	return &dto.VentaResponse{
		ID:            v.ID,
		ClienteNombre: v.ClienteNombre,
		ClienteEmail:  v.ClienteEmail,
		MetodoPago:    v.MetodoPago,
		Observaciones: v.Observaciones,
		Subtotal:      v.Subtotal,
		Envio:         v.Envio,
		Impuestos:     v.Impuestos,
		Total:         v.Total,
		Detalles:      detalles,
		CreatedAt:     v.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
