package service

import (
	"context"
	"errors"
	"testing"

	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/apierror"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/dto"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestCheckoutExitoso(t *testing.T) {
	f := newCarritoFixture()
	f.usuarios.users[7] = &model.Usuario{ID: 7, Nombre: "Wendy S.", Email: "wendy@example.com", Activo: true}
	shampoo := f.seedProducto(t, "Shampoo reparador", 120, 10)
	tinte := f.seedProducto(t, "Tinte rubio", 250, 4)

	_, err := f.svc.AgregarItem(context.Background(), 7, dto.AgregarItemRequest{ProductoID: shampoo.ID, Cantidad: 2})
	assert.NoError(t, err)
	_, err = f.svc.AgregarItem(context.Background(), 7, dto.AgregarItemRequest{ProductoID: tinte.ID, Cantidad: 2})
	assert.NoError(t, err)

	resp, err := f.svc.Checkout(context.Background(), 7, dto.CheckoutRequest{MetodoPago: "tarjeta"})
	assert.NoError(t, err)

	// subtotal 740 ≥ 500: envío gratis, 16% de impuestos
	assert.Equal(t, "740", resp.Subtotal.String())
	assert.True(t, resp.Envio.IsZero())
	assert.Equal(t, "118.4", resp.Impuestos.String())
	assert.Equal(t, "858.4", resp.Total.String())
	assert.Equal(t, 4, resp.ProductosVendidos)

	// Stock descontado por línea
	assert.Equal(t, 8, f.inventario.stocks[shampoo.ID].StockActual)
	assert.Equal(t, 2, f.inventario.stocks[tinte.ID].StockActual)

	// Ledger: una salida por línea, referenciando la venta
	salidas, _, err := f.inventario.ListMovimientos(context.Background(), dto.MovimientoFilter{Tipo: model.MovimientoSalida})
	assert.NoError(t, err)
	assert.Len(t, salidas, 2)
	for _, m := range salidas {
		assert.NotNil(t, m.VentaID)
		assert.Equal(t, resp.VentaID, *m.VentaID)
	}

	// Venta inmutable con snapshot del cliente
	venta, err := f.ventas.FindByID(context.Background(), resp.VentaID)
	assert.NoError(t, err)
	assert.Equal(t, "Wendy S.", venta.ClienteNombre)
	assert.Equal(t, "tarjeta", venta.MetodoPago)
	assert.Len(t, venta.Detalles, 2)

	// El carrito queda sin líneas pero la fila sobrevive
	carrito, err := f.carritos.FindActivoByUsuario(context.Background(), 7)
	assert.NoError(t, err)
	assert.Empty(t, f.carritos.items[carrito.ID])
}

func TestCheckoutTodoONada(t *testing.T) {
	f := newCarritoFixture()
	conStock := f.seedProducto(t, "Acondicionador", 100, 10)
	sinStock := f.seedProducto(t, "Mascarilla capilar", 200, 5)

	_, err := f.svc.AgregarItem(context.Background(), 7, dto.AgregarItemRequest{ProductoID: conStock.ID, Cantidad: 2})
	assert.NoError(t, err)
	_, err = f.svc.AgregarItem(context.Background(), 7, dto.AgregarItemRequest{ProductoID: sinStock.ID, Cantidad: 5})
	assert.NoError(t, err)

	// El stock de la mascarilla cae después de armar el carrito
	f.inventario.stocks[sinStock.ID].StockActual = 3

	_, err = f.svc.Checkout(context.Background(), 7, dto.CheckoutRequest{})
	apiErr := apierror.From(err)
	assert.Equal(t, 400, apiErr.Status)
	assert.Equal(t, 3, apiErr.Extra["stock_disponible"])

	// Nada se tocó: sin venta, sin descuento, carrito intacto
	assert.Empty(t, f.ventas.ventas)
	assert.Equal(t, 10, f.inventario.stocks[conStock.ID].StockActual)
	carrito, _ := f.carritos.FindActivoByUsuario(context.Background(), 7)
	assert.Len(t, f.carritos.items[carrito.ID], 2)
}

func TestCheckoutDosClientesMismoStock(t *testing.T) {
	f := newCarritoFixture()
	tinte := f.seedProducto(t, "Tinte castaño", 200, 5)

	// Dos clientas arman su carrito con las mismas cinco unidades
	_, err := f.svc.AgregarItem(context.Background(), 7, dto.AgregarItemRequest{ProductoID: tinte.ID, Cantidad: 5})
	assert.NoError(t, err)
	_, err = f.svc.AgregarItem(context.Background(), 8, dto.AgregarItemRequest{ProductoID: tinte.ID, Cantidad: 5})
	assert.NoError(t, err)

	// La primera se lleva todo el stock
	primera, err := f.svc.Checkout(context.Background(), 7, dto.CheckoutRequest{})
	assert.NoError(t, err)
	assert.Equal(t, 0, f.inventario.stocks[tinte.ID].StockActual)

	// La segunda relee el stock ya descontado y falla sin tocar nada
	_, err = f.svc.Checkout(context.Background(), 8, dto.CheckoutRequest{})
	apiErr := apierror.From(err)
	assert.Equal(t, 400, apiErr.Status)
	assert.Equal(t, 0, apiErr.Extra["stock_disponible"])

	assert.Len(t, f.ventas.ventas, 1)
	assert.NotNil(t, f.ventas.ventas[primera.VentaID])
	assert.Equal(t, 0, f.inventario.stocks[tinte.ID].StockActual)
	carrito, _ := f.carritos.FindActivoByUsuario(context.Background(), 8)
	assert.Len(t, f.carritos.items[carrito.ID], 1)
}

func TestCheckoutErrorDeLecturaNoEs400(t *testing.T) {
	f := newCarritoFixture()
	p := f.seedProducto(t, "Spray texturizador", 90, 10)

	_, err := f.svc.AgregarItem(context.Background(), 7, dto.AgregarItemRequest{ProductoID: p.ID, Cantidad: 1})
	assert.NoError(t, err)

	// Una falla de infraestructura al leer el inventario es un 500,
	// no un rechazo por stock
	f.inventario.forUpdateErr = errors.New("conexión perdida")

	_, err = f.svc.Checkout(context.Background(), 7, dto.CheckoutRequest{})
	apiErr := apierror.From(err)
	assert.Equal(t, 500, apiErr.Status)
	assert.Empty(t, f.ventas.ventas)
}

func TestCheckoutSinCarrito(t *testing.T) {
	f := newCarritoFixture()

	_, err := f.svc.Checkout(context.Background(), 99, dto.CheckoutRequest{})
	assert.Equal(t, 404, apierror.From(err).Status)
}

func TestCheckoutCarritoVacio(t *testing.T) {
	f := newCarritoFixture()
	p := f.seedProducto(t, "Gel", 45, 10)

	_, err := f.svc.AgregarItem(context.Background(), 7, dto.AgregarItemRequest{ProductoID: p.ID, Cantidad: 1})
	assert.NoError(t, err)
	assert.NoError(t, f.svc.Vaciar(context.Background(), 7))

	_, err = f.svc.Checkout(context.Background(), 7, dto.CheckoutRequest{})
	assert.Equal(t, 404, apierror.From(err).Status)
}

func TestCheckoutClienteNoRegistrado(t *testing.T) {
	f := newCarritoFixture()
	p := f.seedProducto(t, "Cera moldeadora", 75, 10)

	_, err := f.svc.AgregarItem(context.Background(), 15, dto.AgregarItemRequest{ProductoID: p.ID, Cantidad: 1})
	assert.NoError(t, err)

	resp, err := f.svc.Checkout(context.Background(), 15, dto.CheckoutRequest{})
	assert.NoError(t, err)

	venta, err := f.ventas.FindByID(context.Background(), resp.VentaID)
	assert.NoError(t, err)
	assert.Equal(t, "Cliente 15", venta.ClienteNombre)
	assert.Equal(t, "efectivo", venta.MetodoPago)
}
