package service

import (
	"context"
	"errors"

	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/apierror"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/dto"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/model"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/repository"

	"gorm.io/gorm"
)

// InventarioService manages stock levels and the movement ledger.
type InventarioService interface {
	RegistrarMovimiento(ctx context.Context, req dto.RegistrarMovimientoRequest) (*dto.MovimientoResponse, error)
	ActualizarMinimo(ctx context.Context, productoID uint, minimo int) error
	ListarMovimientos(ctx context.Context, filter dto.MovimientoFilter) (*dto.MovimientoListResponse, error)
	ObtenerAlertas(ctx context.Context) ([]dto.AlertaStockResponse, error)
	ObtenerStockCritico(ctx context.Context) ([]dto.AlertaStockResponse, error)
}

type inventarioService struct {
	repo         repository.InventarioRepository
	productoRepo repository.ProductoRepository
}

func NewInventarioService(repo repository.InventarioRepository, productoRepo repository.ProductoRepository) InventarioService {
	return &inventarioService{repo: repo, productoRepo: productoRepo}
}

// ClasificarStock labels a stock level against its reorder threshold:
// "bajo" at or below the minimum, "medio" at or below 1.5× the minimum,
// "normal" otherwise. Read-side only, never persisted.
func ClasificarStock(actual, minimo int) string {
	switch {
	case actual <= minimo:
		return "bajo"
	case actual*2 <= minimo*3: // actual ≤ 1.5 × minimo, sin flotantes
		return "medio"
	default:
		return "normal"
	}
}

// RegistrarMovimiento records a manual stock adjustment: one ledger row plus
// the corresponding stock update, in a single transaction. A salida that
// would drive stock below zero is rejected.
func (s *inventarioService) RegistrarMovimiento(ctx context.Context, req dto.RegistrarMovimientoRequest) (*dto.MovimientoResponse, error) {
	producto, err := s.productoRepo.FindByID(ctx, req.ProductoID)
	if err != nil || !producto.Activo {
		return nil, apierror.NotFound("Producto no encontrado")
	}

	mov := &model.MovimientoInventario{
		ProductoID: req.ProductoID,
		Tipo:       req.Tipo,
		Cantidad:   req.Cantidad,
		Motivo:     req.Motivo,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateMovimientoTx(tx, mov); err != nil {
			return apierror.Internal(err)
		}
		switch req.Tipo {
		case model.MovimientoEntrada:
			return s.repo.IncrementarStockTx(tx, req.ProductoID, req.Cantidad)
		case model.MovimientoSalida:
			if err := s.repo.DescontarStockTx(tx, req.ProductoID, req.Cantidad); err != nil {
				if errors.Is(err, repository.ErrStockInsuficiente) {
					return apierror.Conflict("El movimiento dejaría el stock en negativo")
				}
				return apierror.Internal(err)
			}
			return nil
		default:
			return apierror.Validation("Tipo de movimiento inválido")
		}
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.MovimientoResponse{
		ID:         mov.ID,
		ProductoID: mov.ProductoID,
		Producto:   producto.Nombre,
		Tipo:       mov.Tipo,
		Cantidad:   mov.Cantidad,
		Motivo:     mov.Motivo,
		CreatedAt:  mov.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}, nil
}

func (s *inventarioService) ActualizarMinimo(ctx context.Context, productoID uint, minimo int) error {
	if err := s.repo.UpdateStockMinimo(ctx, productoID, minimo); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("Producto sin registro de inventario")
		}
		return apierror.Internal(err)
	}
	return nil
}

func (s *inventarioService) ListarMovimientos(ctx context.Context, filter dto.MovimientoFilter) (*dto.MovimientoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	movimientos, total, err := s.repo.ListMovimientos(ctx, filter)
	if err != nil {
		return nil, apierror.Internal(err)
	}

	data := make([]dto.MovimientoResponse, 0, len(movimientos))
	for _, m := range movimientos {
		nombre := ""
		if m.Producto != nil {
			nombre = m.Producto.Nombre
		}
		data = append(data, dto.MovimientoResponse{
			ID:         m.ID,
			ProductoID: m.ProductoID,
			Producto:   nombre,
			Tipo:       m.Tipo,
			Cantidad:   m.Cantidad,
			Motivo:     m.Motivo,
			VentaID:    m.VentaID,
			CreatedAt:  m.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}
	return &dto.MovimientoListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *inventarioService) ObtenerAlertas(ctx context.Context) ([]dto.AlertaStockResponse, error) {
	inventarios, err := s.repo.ListStockBajo(ctx)
	if err != nil {
		return nil, apierror.Internal(err)
	}

	alertas := make([]dto.AlertaStockResponse, 0, len(inventarios))
	for _, inv := range inventarios {
		nombre := ""
		if inv.Producto != nil {
			nombre = inv.Producto.Nombre
		}
		alertas = append(alertas, dto.AlertaStockResponse{
			ProductoID:  inv.ProductoID,
			Nombre:      nombre,
			StockActual: inv.StockActual,
			StockMinimo: inv.StockMinimo,
			Estado:      ClasificarStock(inv.StockActual, inv.StockMinimo),
		})
	}
	return alertas, nil
}

// ObtenerStockCritico is the report view: only products already at or below
// their minimum ("bajo"), without the near-threshold "medio" rows that the
// alert panel shows.
func (s *inventarioService) ObtenerStockCritico(ctx context.Context) ([]dto.AlertaStockResponse, error) {
	alertas, err := s.ObtenerAlertas(ctx)
	if err != nil {
		return nil, err
	}
	criticos := make([]dto.AlertaStockResponse, 0, len(alertas))
	for _, a := range alertas {
		if a.Estado == "bajo" {
			criticos = append(criticos, a)
		}
	}
	return criticos, nil
}
