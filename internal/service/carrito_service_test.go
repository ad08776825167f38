package service

import (
	"context"
	"testing"
	"time"

	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/apierror"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/dto"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/model"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// ── In-memory Repository Stubs ────────────────────────────────────────────────
// DB() returns nil so runTx calls the closure directly (no real transaction).

type stubCarritoRepo struct {
	carritos map[uint]*model.Carrito
	items    map[uint][]model.CarritoItem
	nextID   uint
}

func newStubCarritoRepo() *stubCarritoRepo {
	return &stubCarritoRepo{
		carritos: make(map[uint]*model.Carrito),
		items:    make(map[uint][]model.CarritoItem),
	}
}

func (r *stubCarritoRepo) FindActivoByUsuario(_ context.Context, usuarioID uint) (*model.Carrito, error) {
	var latest *model.Carrito
	for _, c := range r.carritos {
		if c.UsuarioID == usuarioID && (latest == nil || c.ID > latest.ID) {
			latest = c
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return latest, nil
}

func (r *stubCarritoRepo) Create(_ context.Context, c *model.Carrito) error {
	r.nextID++
	c.ID = r.nextID
	c.CreatedAt = time.Now()
	r.carritos[c.ID] = c
	return nil
}

func (r *stubCarritoRepo) ListItems(_ context.Context, carritoID uint) ([]model.CarritoItem, error) {
	return append([]model.CarritoItem{}, r.items[carritoID]...), nil
}

func (r *stubCarritoRepo) ListItemsTx(_ *gorm.DB, carritoID uint) ([]model.CarritoItem, error) {
	return append([]model.CarritoItem{}, r.items[carritoID]...), nil
}

func (r *stubCarritoRepo) FindItem(_ context.Context, carritoID, productoID uint) (*model.CarritoItem, error) {
	for i := range r.items[carritoID] {
		if r.items[carritoID][i].ProductoID == productoID {
			item := r.items[carritoID][i]
			return &item, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCarritoRepo) CreateItem(_ context.Context, item *model.CarritoItem) error {
	r.items[item.CarritoID] = append(r.items[item.CarritoID], *item)
	return nil
}

func (r *stubCarritoRepo) UpdateItem(_ context.Context, item *model.CarritoItem) error {
	for i := range r.items[item.CarritoID] {
		if r.items[item.CarritoID][i].ProductoID == item.ProductoID {
			r.items[item.CarritoID][i] = *item
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubCarritoRepo) DeleteItem(_ context.Context, carritoID, productoID uint) error {
	items := r.items[carritoID]
	for i := range items {
		if items[i].ProductoID == productoID {
			r.items[carritoID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubCarritoRepo) DeleteItemsTx(_ *gorm.DB, carritoID uint) error {
	r.items[carritoID] = nil
	return nil
}

func (r *stubCarritoRepo) DeleteItems(_ context.Context, carritoID uint) error {
	r.items[carritoID] = nil
	return nil
}

func (r *stubCarritoRepo) DeleteVaciosAnterioresA(_ context.Context, cutoff time.Time) (int64, error) {
	var borrados int64
	for id, c := range r.carritos {
		if c.CreatedAt.Before(cutoff) && len(r.items[id]) == 0 {
			delete(r.carritos, id)
			borrados++
		}
	}
	return borrados, nil
}

func (r *stubCarritoRepo) DB() *gorm.DB { return nil }

type stubProductoRepo struct {
	productos map[uint]*model.Producto
	nextID    uint
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uint]*model.Producto)}
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	r.nextID++
	p.ID = r.nextID
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) CreateTx(_ *gorm.DB, p *model.Producto) error {
	return r.Create(context.Background(), p)
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uint) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductoRepo) List(_ context.Context, _ dto.ProductoFilter) ([]model.Producto, int64, error) {
	out := make([]model.Producto, 0, len(r.productos))
	for _, p := range r.productos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) SoftDelete(_ context.Context, id uint) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Activo = false
	return nil
}

func (r *stubProductoRepo) Reactivar(_ context.Context, id uint) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Activo = true
	return nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

type stubInventarioRepo struct {
	stocks       map[uint]*model.Inventario
	movimientos  []model.MovimientoInventario
	forUpdateErr error // error inyectable para la lectura con lock
}

func newStubInventarioRepo() *stubInventarioRepo {
	return &stubInventarioRepo{stocks: make(map[uint]*model.Inventario)}
}

func (r *stubInventarioRepo) Create(_ context.Context, inv *model.Inventario) error {
	r.stocks[inv.ProductoID] = inv
	return nil
}

func (r *stubInventarioRepo) CreateTx(_ *gorm.DB, inv *model.Inventario) error {
	r.stocks[inv.ProductoID] = inv
	return nil
}

func (r *stubInventarioRepo) FindByProductoID(_ context.Context, productoID uint) (*model.Inventario, error) {
	inv, ok := r.stocks[productoID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return inv, nil
}

func (r *stubInventarioRepo) FindByProductoIDForUpdate(_ *gorm.DB, productoID uint) (*model.Inventario, error) {
	if r.forUpdateErr != nil {
		return nil, r.forUpdateErr
	}
	return r.FindByProductoID(context.Background(), productoID)
}

func (r *stubInventarioRepo) DescontarStockTx(_ *gorm.DB, productoID uint, cantidad int) error {
	inv, ok := r.stocks[productoID]
	if !ok || inv.StockActual < cantidad {
		return repository.ErrStockInsuficiente
	}
	inv.StockActual -= cantidad
	return nil
}

func (r *stubInventarioRepo) IncrementarStockTx(_ *gorm.DB, productoID uint, cantidad int) error {
	inv, ok := r.stocks[productoID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	inv.StockActual += cantidad
	return nil
}

func (r *stubInventarioRepo) UpdateStockMinimo(_ context.Context, productoID uint, minimo int) error {
	inv, ok := r.stocks[productoID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	inv.StockMinimo = minimo
	return nil
}

func (r *stubInventarioRepo) CreateMovimientoTx(_ *gorm.DB, mov *model.MovimientoInventario) error {
	mov.ID = uint(len(r.movimientos) + 1)
	mov.CreatedAt = time.Now()
	r.movimientos = append(r.movimientos, *mov)
	return nil
}

func (r *stubInventarioRepo) ListMovimientos(_ context.Context, filter dto.MovimientoFilter) ([]model.MovimientoInventario, int64, error) {
	out := []model.MovimientoInventario{}
	for _, m := range r.movimientos {
		if filter.ProductoID != 0 && m.ProductoID != filter.ProductoID {
			continue
		}
		if filter.Tipo != "" && m.Tipo != filter.Tipo {
			continue
		}
		out = append(out, m)
	}
	return out, int64(len(out)), nil
}

func (r *stubInventarioRepo) ListStockBajo(_ context.Context) ([]model.Inventario, error) {
	out := []model.Inventario{}
	for _, inv := range r.stocks {
		if inv.StockActual*2 <= inv.StockMinimo*3 {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (r *stubInventarioRepo) DB() *gorm.DB { return nil }

type stubVentaRepo struct {
	ventas map[uint]*model.Venta
	nextID uint
}

func newStubVentaRepo() *stubVentaRepo {
	return &stubVentaRepo{ventas: make(map[uint]*model.Venta)}
}

func (r *stubVentaRepo) CreateTx(_ *gorm.DB, v *model.Venta) error {
	r.nextID++
	v.ID = r.nextID
	v.CreatedAt = time.Now()
	stored := *v
	r.ventas[v.ID] = &stored
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, id uint) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (r *stubVentaRepo) List(_ context.Context, _ dto.VentaFilter) ([]model.Venta, int64, error) {
	out := make([]model.Venta, 0, len(r.ventas))
	for _, v := range r.ventas {
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

type stubUsuarioRepo struct {
	users map[uint]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{users: make(map[uint]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	u.ID = uint(len(r.users) + 1)
	r.users[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uint) (*model.Usuario, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.users {
		if u.Username == username && u.Activo {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) List(_ context.Context, incluirInactivos bool) ([]model.Usuario, error) {
	out := []model.Usuario{}
	for _, u := range r.users {
		if u.Activo || incluirInactivos {
			out = append(out, *u)
		}
	}
	return out, nil
}

// ── Fixture ───────────────────────────────────────────────────────────────────

type carritoFixture struct {
	svc        CarritoService
	carritos   *stubCarritoRepo
	productos  *stubProductoRepo
	inventario *stubInventarioRepo
	ventas     *stubVentaRepo
	usuarios   *stubUsuarioRepo
}

func newCarritoFixture() *carritoFixture {
	f := &carritoFixture{
		carritos:   newStubCarritoRepo(),
		productos:  newStubProductoRepo(),
		inventario: newStubInventarioRepo(),
		ventas:     newStubVentaRepo(),
		usuarios:   newStubUsuarioRepo(),
	}
	f.svc = NewCarritoService(f.carritos, f.productos, f.inventario, f.ventas, f.usuarios, nil, 0)
	return f
}

func (f *carritoFixture) seedProducto(t *testing.T, nombre string, precio int64, stock int) *model.Producto {
	t.Helper()
	p := &model.Producto{Nombre: nombre, Precio: decimal.NewFromInt(precio), Activo: true}
	assert.NoError(t, f.productos.Create(context.Background(), p))
	assert.NoError(t, f.inventario.Create(context.Background(), &model.Inventario{
		ProductoID: p.ID, StockActual: stock, StockMinimo: 5,
	}))
	return p
}

// ── Pricing formula ───────────────────────────────────────────────────────────

func TestCalcularTotalesEnvioGratis(t *testing.T) {
	envio, impuestos, total := calcularTotales(decimal.NewFromInt(600))
	assert.True(t, envio.IsZero(), "envío debe ser 0 con subtotal 600")
	assert.Equal(t, "96", impuestos.String())
	assert.Equal(t, "696", total.String())
}

func TestCalcularTotalesConEnvio(t *testing.T) {
	envio, impuestos, total := calcularTotales(decimal.NewFromInt(300))
	assert.Equal(t, "50", envio.String())
	assert.Equal(t, "48", impuestos.String())
	assert.Equal(t, "398", total.String())
}

func TestCalcularTotalesUmbralExacto(t *testing.T) {
	// 500 exactos ya califican para envío gratis
	envio, _, total := calcularTotales(decimal.NewFromInt(500))
	assert.True(t, envio.IsZero())
	assert.Equal(t, "580", total.String())
}

// ── Cart operations ───────────────────────────────────────────────────────────

func TestAgregarItemCreaCarritoYAcumula(t *testing.T) {
	f := newCarritoFixture()
	p := f.seedProducto(t, "Shampoo reparador", 120, 10)

	resp, err := f.svc.AgregarItem(context.Background(), 7, dto.AgregarItemRequest{ProductoID: p.ID, Cantidad: 2})
	assert.NoError(t, err)
	assert.Equal(t, 2, resp.Cantidad)

	// Misma línea: las cantidades se acumulan, no se duplican
	resp, err = f.svc.AgregarItem(context.Background(), 7, dto.AgregarItemRequest{ProductoID: p.ID, Cantidad: 3})
	assert.NoError(t, err)
	assert.Len(t, resp.Items, 1)
	assert.Equal(t, 5, resp.Items[0].Cantidad)
	assert.Equal(t, "600", resp.Total.String())
}

func TestAgregarItemRechazaSinStock(t *testing.T) {
	f := newCarritoFixture()
	p := f.seedProducto(t, "Tinte rubio", 250, 3)

	_, err := f.svc.AgregarItem(context.Background(), 7, dto.AgregarItemRequest{ProductoID: p.ID, Cantidad: 4})
	apiErr := apierror.From(err)
	assert.Equal(t, 400, apiErr.Status)
	assert.Equal(t, 3, apiErr.Extra["stock_disponible"])
}

func TestAgregarItemAcumuladoExcedeStock(t *testing.T) {
	f := newCarritoFixture()
	p := f.seedProducto(t, "Laca fijadora", 80, 5)

	_, err := f.svc.AgregarItem(context.Background(), 7, dto.AgregarItemRequest{ProductoID: p.ID, Cantidad: 3})
	assert.NoError(t, err)

	// 3 en el carrito + 3 nuevos > 5 en stock
	_, err = f.svc.AgregarItem(context.Background(), 7, dto.AgregarItemRequest{ProductoID: p.ID, Cantidad: 3})
	assert.Error(t, err)
	assert.Equal(t, 400, apierror.From(err).Status)
}

func TestActualizarItemCantidadCeroElimina(t *testing.T) {
	f := newCarritoFixture()
	p := f.seedProducto(t, "Crema para peinar", 95, 10)

	_, err := f.svc.AgregarItem(context.Background(), 7, dto.AgregarItemRequest{ProductoID: p.ID, Cantidad: 2})
	assert.NoError(t, err)

	resp, err := f.svc.ActualizarItem(context.Background(), 7, p.ID, 0)
	assert.NoError(t, err)
	assert.Empty(t, resp.Items)
}

func TestActualizarItemCantidadNegativa(t *testing.T) {
	f := newCarritoFixture()
	p := f.seedProducto(t, "Aceite de argán", 180, 10)

	_, err := f.svc.AgregarItem(context.Background(), 7, dto.AgregarItemRequest{ProductoID: p.ID, Cantidad: 1})
	assert.NoError(t, err)

	_, err = f.svc.ActualizarItem(context.Background(), 7, p.ID, -2)
	assert.Equal(t, 400, apierror.From(err).Status)
}

func TestActualizarItemProductoAjeno(t *testing.T) {
	f := newCarritoFixture()
	f.seedProducto(t, "Esmalte", 60, 10)

	_, err := f.svc.ActualizarItem(context.Background(), 7, 99, 2)
	assert.Equal(t, 404, apierror.From(err).Status)
}

func TestResumenCarritoVacioAplicaFormula(t *testing.T) {
	f := newCarritoFixture()

	resumen, err := f.svc.Resumen(context.Background(), 7)
	assert.NoError(t, err)
	assert.True(t, resumen.Subtotal.IsZero())
	assert.Equal(t, "50", resumen.Envio.String())
	assert.Equal(t, "50", resumen.Total.String())
	assert.Equal(t, 0, resumen.Cantidad)
}

func TestObtenerCarritoInexistente(t *testing.T) {
	f := newCarritoFixture()

	resp, err := f.svc.ObtenerCarrito(context.Background(), 42)
	assert.NoError(t, err)
	assert.Equal(t, uint(0), resp.CarritoID)
	assert.Empty(t, resp.Items)
}

func TestVaciarSinCarritoEsSilencioso(t *testing.T) {
	f := newCarritoFixture()
	assert.NoError(t, f.svc.Vaciar(context.Background(), 42))
}
