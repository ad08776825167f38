package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/apierror"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/dto"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// stubCarritoService cubre solo lo que el handler ejercita.
type stubCarritoService struct {
	obtenerResp  *dto.CarritoResponse
	agregarErr   error
	checkoutErr  error
	checkoutResp *dto.CheckoutResponse
}

func (s *stubCarritoService) ObtenerCarrito(_ context.Context, _ uint) (*dto.CarritoResponse, error) {
	return s.obtenerResp, nil
}

func (s *stubCarritoService) AgregarItem(_ context.Context, _ uint, _ dto.AgregarItemRequest) (*dto.CarritoResponse, error) {
	if s.agregarErr != nil {
		return nil, s.agregarErr
	}
	return s.obtenerResp, nil
}

func (s *stubCarritoService) ActualizarItem(_ context.Context, _, _ uint, _ int) (*dto.CarritoResponse, error) {
	return s.obtenerResp, nil
}

func (s *stubCarritoService) EliminarItem(_ context.Context, _, _ uint) error { return nil }
func (s *stubCarritoService) Vaciar(_ context.Context, _ uint) error          { return nil }

func (s *stubCarritoService) Resumen(_ context.Context, _ uint) (*dto.ResumenResponse, error) {
	return &dto.ResumenResponse{}, nil
}

func (s *stubCarritoService) Checkout(_ context.Context, _ uint, _ dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	if s.checkoutErr != nil {
		return nil, s.checkoutErr
	}
	return s.checkoutResp, nil
}

func newCarritoRouter(svc service.CarritoService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCarritoHandler(svc)
	r := gin.New()
	r.GET("/carrito/:usuario_id", h.Obtener)
	r.POST("/carrito/:usuario_id", h.AgregarItem)
	r.POST("/carrito/:usuario_id/checkout", h.Checkout)
	return r
}

func TestObtenerCarritoUsuarioNoNumerico(t *testing.T) {
	r := newCarritoRouter(&stubCarritoService{obtenerResp: service.CarritoVacio()})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/carrito/abc", nil)
	r.ServeHTTP(w, req)

	// Un usuario_id malformado responde 200 con carrito vacío, nunca 4xx
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			CarritoID uint              `json:"carrito_id"`
			Items     []json.RawMessage `json:"items"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, uint(0), body.Data.CarritoID)
	assert.Empty(t, body.Data.Items)
}

func TestAgregarItemStockInsuficienteExponeDisponible(t *testing.T) {
	r := newCarritoRouter(&stubCarritoService{
		agregarErr: apierror.StockInsuficiente("Shampoo reparador", 3),
	})

	payload, _ := json.Marshal(dto.AgregarItemRequest{ProductoID: 1, Cantidad: 5})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/carrito/7", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, float64(3), body["stock_disponible"])
}

func TestAgregarItemValidacion(t *testing.T) {
	r := newCarritoRouter(&stubCarritoService{})

	// cantidad = 0 viola required,min=1; los errores de validación son 400
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/carrito/7", bytes.NewReader([]byte(`{"producto_id":1,"cantidad":0}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
}

func TestCheckoutSinCuerpo(t *testing.T) {
	r := newCarritoRouter(&stubCarritoService{
		checkoutResp: &dto.CheckoutResponse{VentaID: 12, ProductosVendidos: 2},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/carrito/7/checkout", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			VentaID uint `json:"venta_id"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, uint(12), body.Data.VentaID)
}
