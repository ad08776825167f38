package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/apierror"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/dto"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/model"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/repository"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const productoCacheTTL = 60 * time.Second

// ProductoService is the business logic contract for the catalog.
type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, id uint) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	Actualizar(ctx context.Context, id uint, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Desactivar(ctx context.Context, id uint) error
	Reactivar(ctx context.Context, id uint) error
}

type productoService struct {
	repo           repository.ProductoRepository
	inventarioRepo repository.InventarioRepository
	rdb            *redis.Client
}

func NewProductoService(repo repository.ProductoRepository, inventarioRepo repository.InventarioRepository, rdb *redis.Client) ProductoService {
	return &productoService{repo: repo, inventarioRepo: inventarioRepo, rdb: rdb}
}

// Crear inserts the product and its 1:1 inventory row in one transaction,
// with an initial-stock "entrada" movement when stock arrives with it.
func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	minimo := req.StockMinimo
	if minimo == 0 {
		minimo = 5
	}

	producto := &model.Producto{
		Nombre:      req.Nombre,
		Marca:       req.Marca,
		CategoriaID: req.CategoriaID,
		Descripcion: req.Descripcion,
		Precio:      req.Precio,
		ImagenURL:   req.ImagenURL,
		Activo:      true,
	}
	inv := &model.Inventario{StockActual: req.StockInicial, StockMinimo: minimo}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, producto); err != nil {
			return apierror.Internal(err)
		}
		inv.ProductoID = producto.ID
		if err := s.inventarioRepo.CreateTx(tx, inv); err != nil {
			return apierror.Internal(err)
		}
		if req.StockInicial > 0 {
			mov := &model.MovimientoInventario{
				ProductoID: producto.ID,
				Tipo:       model.MovimientoEntrada,
				Cantidad:   req.StockInicial,
				Motivo:     "Stock inicial",
			}
			if err := s.inventarioRepo.CreateMovimientoTx(tx, mov); err != nil {
				return apierror.Internal(err)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	producto.Inventario = inv
	return productoToResponse(producto), nil
}

// ObtenerPorID serves from a short-TTL Redis cache when possible; stock
// fields always reflect the cached snapshot, not the live row.
func (s *productoService) ObtenerPorID(ctx context.Context, id uint) (*dto.ProductoResponse, error) {
	cacheKey := fmt.Sprintf("producto:%d", id)
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var cached dto.ProductoResponse
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return &cached, nil
			}
		}
	}

	producto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Producto no encontrado")
	}
	resp := productoToResponse(producto)

	if s.rdb != nil {
		if data, err := json.Marshal(resp); err == nil {
			s.rdb.Set(ctx, cacheKey, data, productoCacheTTL)
		}
	}
	return resp, nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	productos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apierror.Internal(err)
	}

	data := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		data = append(data, *productoToResponse(&productos[i]))
	}
	return &dto.ProductoListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uint, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	producto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Producto no encontrado")
	}

	producto.Nombre = req.Nombre
	producto.Marca = req.Marca
	producto.CategoriaID = req.CategoriaID
	producto.Descripcion = req.Descripcion
	producto.Precio = req.Precio
	producto.ImagenURL = req.ImagenURL

	if err := s.repo.Update(ctx, producto); err != nil {
		return nil, apierror.Internal(err)
	}
	s.invalidarCache(ctx, id)
	return productoToResponse(producto), nil
}

func (s *productoService) Desactivar(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("Producto no encontrado")
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return apierror.Internal(err)
	}
	s.invalidarCache(ctx, id)
	return nil
}

func (s *productoService) Reactivar(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("Producto no encontrado")
	}
	if err := s.repo.Reactivar(ctx, id); err != nil {
		return apierror.Internal(err)
	}
	s.invalidarCache(ctx, id)
	return nil
}

func (s *productoService) invalidarCache(ctx context.Context, id uint) {
	if s.rdb != nil {
		s.rdb.Del(ctx, fmt.Sprintf("producto:%d", id))
	}
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	resp := &dto.ProductoResponse{
		ID:          p.ID,
		Nombre:      p.Nombre,
		Marca:       p.Marca,
		CategoriaID: p.CategoriaID,
		Descripcion: p.Descripcion,
		Precio:      p.Precio,
		ImagenURL:   p.ImagenURL,
		Activo:      p.Activo,
	}
	if p.Categoria != nil {
		resp.Categoria = p.Categoria.Nombre
	}
	if p.Inventario != nil {
		resp.StockActual = p.Inventario.StockActual
		resp.StockMinimo = p.Inventario.StockMinimo
	}
	return resp
}
