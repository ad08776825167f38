package service

import (
	"context"
	"testing"

	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/apierror"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/dto"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestClasificarStock(t *testing.T) {
	casos := []struct {
		actual, minimo int
		esperado       string
	}{
		{0, 5, "bajo"},
		{5, 5, "bajo"},
		{7, 5, "medio"}, // 7 ≤ 7.5
		{8, 5, "normal"},
		{20, 5, "normal"},
		{15, 10, "medio"}, // exactamente 1.5×
		{16, 10, "normal"},
	}
	for _, c := range casos {
		assert.Equal(t, c.esperado, ClasificarStock(c.actual, c.minimo),
			"actual=%d minimo=%d", c.actual, c.minimo)
	}
}

func newInventarioFixture() (InventarioService, *stubInventarioRepo, *stubProductoRepo) {
	invRepo := newStubInventarioRepo()
	prodRepo := newStubProductoRepo()
	return NewInventarioService(invRepo, prodRepo), invRepo, prodRepo
}

func seedInventario(t *testing.T, prodRepo *stubProductoRepo, invRepo *stubInventarioRepo, nombre string, stock, minimo int) *model.Producto {
	t.Helper()
	p := &model.Producto{Nombre: nombre, Activo: true}
	assert.NoError(t, prodRepo.Create(context.Background(), p))
	assert.NoError(t, invRepo.Create(context.Background(), &model.Inventario{
		ProductoID: p.ID, StockActual: stock, StockMinimo: minimo, Producto: p,
	}))
	return p
}

func TestRegistrarMovimientoEntrada(t *testing.T) {
	svc, invRepo, prodRepo := newInventarioFixture()
	p := seedInventario(t, prodRepo, invRepo, "Shampoo", 10, 5)

	resp, err := svc.RegistrarMovimiento(context.Background(), dto.RegistrarMovimientoRequest{
		ProductoID: p.ID, Tipo: model.MovimientoEntrada, Cantidad: 15, Motivo: "Compra a proveedor",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Shampoo", resp.Producto)
	assert.Equal(t, 25, invRepo.stocks[p.ID].StockActual)
	assert.Len(t, invRepo.movimientos, 1)
}

func TestRegistrarMovimientoSalidaInsuficiente(t *testing.T) {
	svc, invRepo, prodRepo := newInventarioFixture()
	p := seedInventario(t, prodRepo, invRepo, "Tinte", 3, 5)

	_, err := svc.RegistrarMovimiento(context.Background(), dto.RegistrarMovimientoRequest{
		ProductoID: p.ID, Tipo: model.MovimientoSalida, Cantidad: 4, Motivo: "Merma",
	})
	assert.Equal(t, 409, apierror.From(err).Status)
	assert.Equal(t, 3, invRepo.stocks[p.ID].StockActual, "el stock no debe cambiar")
}

func TestRegistrarMovimientoProductoInactivo(t *testing.T) {
	svc, invRepo, prodRepo := newInventarioFixture()
	p := seedInventario(t, prodRepo, invRepo, "Descontinuado", 10, 5)
	p.Activo = false

	_, err := svc.RegistrarMovimiento(context.Background(), dto.RegistrarMovimientoRequest{
		ProductoID: p.ID, Tipo: model.MovimientoEntrada, Cantidad: 1, Motivo: "Ajuste",
	})
	assert.Equal(t, 404, apierror.From(err).Status)
}

func TestObtenerAlertasClasifica(t *testing.T) {
	svc, invRepo, prodRepo := newInventarioFixture()
	seedInventario(t, prodRepo, invRepo, "Crítico", 2, 5)
	seedInventario(t, prodRepo, invRepo, "Justo", 7, 5)
	seedInventario(t, prodRepo, invRepo, "Sobrado", 50, 5)

	alertas, err := svc.ObtenerAlertas(context.Background())
	assert.NoError(t, err)
	assert.Len(t, alertas, 2)

	estados := map[string]string{}
	for _, a := range alertas {
		estados[a.Nombre] = a.Estado
	}
	assert.Equal(t, "bajo", estados["Crítico"])
	assert.Equal(t, "medio", estados["Justo"])
}

func TestObtenerStockCriticoExcluyeMedio(t *testing.T) {
	svc, invRepo, prodRepo := newInventarioFixture()
	seedInventario(t, prodRepo, invRepo, "Agotado", 0, 5)
	seedInventario(t, prodRepo, invRepo, "En el mínimo", 5, 5)
	seedInventario(t, prodRepo, invRepo, "Cerca del mínimo", 7, 5)

	// El reporte solo lista stock ≤ mínimo; "medio" queda para las alertas
	criticos, err := svc.ObtenerStockCritico(context.Background())
	assert.NoError(t, err)
	assert.Len(t, criticos, 2)
	for _, c := range criticos {
		assert.Equal(t, "bajo", c.Estado)
		assert.LessOrEqual(t, c.StockActual, c.StockMinimo)
	}
}

func TestActualizarMinimoSinInventario(t *testing.T) {
	svc, _, _ := newInventarioFixture()
	err := svc.ActualizarMinimo(context.Background(), 99, 10)
	assert.Equal(t, 404, apierror.From(err).Status)
}
