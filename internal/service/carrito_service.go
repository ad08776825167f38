package service

import (
	"context"
	"errors"
	"time"

	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/apierror"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/dto"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/model"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/repository"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/worker"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Pricing rules: orders of 500 or more ship free, otherwise a flat 50 fee;
// 16% tax applies on the subtotal. These values are part of the API contract.
var (
	umbralEnvioGratis = decimal.NewFromInt(500)
	costoEnvio        = decimal.NewFromInt(50)
	tasaImpuestos     = decimal.NewFromFloat(0.16)
)

// calcularTotales applies the fixed shipping and tax formula to a subtotal.
func calcularTotales(subtotal decimal.Decimal) (envio, impuestos, total decimal.Decimal) {
	envio = costoEnvio
	if subtotal.GreaterThanOrEqual(umbralEnvioGratis) {
		envio = decimal.Zero
	}
	impuestos = subtotal.Mul(tasaImpuestos)
	total = subtotal.Add(envio).Add(impuestos)
	return envio, impuestos, total
}

// CarritoService manages the per-customer active cart and runs checkout.
type CarritoService interface {
	ObtenerCarrito(ctx context.Context, usuarioID uint) (*dto.CarritoResponse, error)
	AgregarItem(ctx context.Context, usuarioID uint, req dto.AgregarItemRequest) (*dto.CarritoResponse, error)
	ActualizarItem(ctx context.Context, usuarioID, productoID uint, cantidad int) (*dto.CarritoResponse, error)
	EliminarItem(ctx context.Context, usuarioID, productoID uint) error
	Vaciar(ctx context.Context, usuarioID uint) error
	Resumen(ctx context.Context, usuarioID uint) (*dto.ResumenResponse, error)
	Checkout(ctx context.Context, usuarioID uint, req dto.CheckoutRequest) (*dto.CheckoutResponse, error)
}

type carritoService struct {
	carritoRepo    repository.CarritoRepository
	productoRepo   repository.ProductoRepository
	inventarioRepo repository.InventarioRepository
	ventaRepo      repository.VentaRepository
	usuarioRepo    repository.UsuarioRepository
	dispatcher     *worker.Dispatcher
	checkoutTimeout time.Duration
}

func NewCarritoService(
	carritoRepo repository.CarritoRepository,
	productoRepo repository.ProductoRepository,
	inventarioRepo repository.InventarioRepository,
	ventaRepo repository.VentaRepository,
	usuarioRepo repository.UsuarioRepository,
	dispatcher *worker.Dispatcher,
	checkoutTimeout time.Duration,
) CarritoService {
	return &carritoService{
		carritoRepo:     carritoRepo,
		productoRepo:    productoRepo,
		inventarioRepo:  inventarioRepo,
		ventaRepo:       ventaRepo,
		usuarioRepo:     usuarioRepo,
		dispatcher:      dispatcher,
		checkoutTimeout: checkoutTimeout,
	}
}

// ObtenerCarrito returns the customer's active cart, or an empty payload
// when the customer has no cart yet.
func (s *carritoService) ObtenerCarrito(ctx context.Context, usuarioID uint) (*dto.CarritoResponse, error) {
	carrito, err := s.carritoRepo.FindActivoByUsuario(ctx, usuarioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CarritoVacio(), nil
		}
		return nil, apierror.Internal(err)
	}

	items, err := s.carritoRepo.ListItems(ctx, carrito.ID)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	return carritoToResponse(carrito.ID, items), nil
}

// CarritoVacio is the payload returned when no cart exists for a customer.
func CarritoVacio() *dto.CarritoResponse {
	return &dto.CarritoResponse{
		CarritoID: 0,
		Items:     []dto.CarritoItemResponse{},
		Total:     decimal.Zero,
		Cantidad:  0,
	}
}

// AgregarItem adds a product line to the customer's active cart, creating
// the cart lazily and merging with any existing line for the same product.
func (s *carritoService) AgregarItem(ctx context.Context, usuarioID uint, req dto.AgregarItemRequest) (*dto.CarritoResponse, error) {
	producto, err := s.productoRepo.FindByID(ctx, req.ProductoID)
	if err != nil || !producto.Activo {
		return nil, apierror.NotFound("Producto no encontrado")
	}

	stock := s.stockDisponible(ctx, req.ProductoID)

	carrito, err := s.carritoRepo.FindActivoByUsuario(ctx, usuarioID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Internal(err)
		}
		carrito = &model.Carrito{UsuarioID: usuarioID}
		if err := s.carritoRepo.Create(ctx, carrito); err != nil {
			return nil, apierror.Internal(err)
		}
	}

	existente, err := s.carritoRepo.FindItem(ctx, carrito.ID, req.ProductoID)
	cantidadFinal := req.Cantidad
	if err == nil {
		cantidadFinal += existente.Cantidad
	}

	if stock < cantidadFinal {
		return nil, apierror.StockInsuficiente(producto.Nombre, stock)
	}

	subtotal := producto.Precio.Mul(decimal.NewFromInt(int64(cantidadFinal)))
	if existente != nil {
		existente.Cantidad = cantidadFinal
		existente.Subtotal = subtotal
		if err := s.carritoRepo.UpdateItem(ctx, existente); err != nil {
			return nil, apierror.Internal(err)
		}
	} else {
		item := &model.CarritoItem{
			CarritoID:      carrito.ID,
			ProductoID:     req.ProductoID,
			Cantidad:       cantidadFinal,
			PrecioUnitario: producto.Precio,
			Subtotal:       subtotal,
		}
		if err := s.carritoRepo.CreateItem(ctx, item); err != nil {
			return nil, apierror.Internal(err)
		}
	}

	items, err := s.carritoRepo.ListItems(ctx, carrito.ID)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	return carritoToResponse(carrito.ID, items), nil
}

// ActualizarItem sets a line's quantity. Zero removes the line; the new
// quantity must not exceed current stock.
func (s *carritoService) ActualizarItem(ctx context.Context, usuarioID, productoID uint, cantidad int) (*dto.CarritoResponse, error) {
	if cantidad < 0 {
		return nil, apierror.Validation("La cantidad no puede ser negativa")
	}

	carrito, err := s.carritoRepo.FindActivoByUsuario(ctx, usuarioID)
	if err != nil {
		return nil, apierror.NotFound("El producto no está en el carrito")
	}

	item, err := s.carritoRepo.FindItem(ctx, carrito.ID, productoID)
	if err != nil {
		return nil, apierror.NotFound("El producto no está en el carrito")
	}

	if cantidad == 0 {
		if err := s.carritoRepo.DeleteItem(ctx, carrito.ID, productoID); err != nil {
			return nil, apierror.Internal(err)
		}
	} else {
		stock := s.stockDisponible(ctx, productoID)
		if stock < cantidad {
			nombre := ""
			if p, err := s.productoRepo.FindByID(ctx, productoID); err == nil {
				nombre = p.Nombre
			}
			return nil, apierror.StockInsuficiente(nombre, stock)
		}
		item.Cantidad = cantidad
		item.Subtotal = item.PrecioUnitario.Mul(decimal.NewFromInt(int64(cantidad)))
		if err := s.carritoRepo.UpdateItem(ctx, item); err != nil {
			return nil, apierror.Internal(err)
		}
	}

	items, err := s.carritoRepo.ListItems(ctx, carrito.ID)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	return carritoToResponse(carrito.ID, items), nil
}

func (s *carritoService) EliminarItem(ctx context.Context, usuarioID, productoID uint) error {
	carrito, err := s.carritoRepo.FindActivoByUsuario(ctx, usuarioID)
	if err != nil {
		return apierror.NotFound("El producto no está en el carrito")
	}
	if err := s.carritoRepo.DeleteItem(ctx, carrito.ID, productoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("El producto no está en el carrito")
		}
		return apierror.Internal(err)
	}
	return nil
}

// Vaciar removes every line of the active cart. A customer without a cart
// is already empty, so that case succeeds silently.
func (s *carritoService) Vaciar(ctx context.Context, usuarioID uint) error {
	carrito, err := s.carritoRepo.FindActivoByUsuario(ctx, usuarioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return apierror.Internal(err)
	}
	if err := s.carritoRepo.DeleteItems(ctx, carrito.ID); err != nil {
		return apierror.Internal(err)
	}
	return nil
}

// Resumen computes the pricing breakdown of the active cart. The formula
// applies to any subtotal, including the empty cart.
func (s *carritoService) Resumen(ctx context.Context, usuarioID uint) (*dto.ResumenResponse, error) {
	subtotal := decimal.Zero
	cantidad := 0

	carrito, err := s.carritoRepo.FindActivoByUsuario(ctx, usuarioID)
	if err == nil {
		items, err := s.carritoRepo.ListItems(ctx, carrito.ID)
		if err != nil {
			return nil, apierror.Internal(err)
		}
		for _, item := range items {
			subtotal = subtotal.Add(item.Subtotal)
			cantidad += item.Cantidad
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.Internal(err)
	}

	envio, impuestos, total := calcularTotales(subtotal)
	return &dto.ResumenResponse{
		Subtotal:  subtotal,
		Envio:     envio,
		Impuestos: impuestos,
		Total:     total,
		Cantidad:  cantidad,
	}, nil
}

// stockDisponible returns the current stock of a product, treating a missing
// inventory row as zero.
func (s *carritoService) stockDisponible(ctx context.Context, productoID uint) int {
	inv, err := s.inventarioRepo.FindByProductoID(ctx, productoID)
	if err != nil {
		return 0
	}
	return inv.StockActual
}

func carritoToResponse(carritoID uint, items []model.CarritoItem) *dto.CarritoResponse {
	resp := &dto.CarritoResponse{
		CarritoID: carritoID,
		Items:     make([]dto.CarritoItemResponse, 0, len(items)),
		Total:     decimal.Zero,
	}
	for _, item := range items {
		nombre := ""
		if item.Producto != nil {
			nombre = item.Producto.Nombre
		}
		resp.Items = append(resp.Items, dto.CarritoItemResponse{
			ProductoID:     item.ProductoID,
			Nombre:         nombre,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			Subtotal:       item.Subtotal,
		})
		resp.Total = resp.Total.Add(item.Subtotal)
		resp.Cantidad += item.Cantidad
	}
	return resp
}
