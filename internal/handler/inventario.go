package handler

import (
	"net/http"

	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/dto"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type InventarioHandler struct{ svc service.InventarioService }

func NewInventarioHandler(svc service.InventarioService) *InventarioHandler {
	return &InventarioHandler{svc: svc}
}

func (h *InventarioHandler) RegistrarMovimiento(c *gin.Context) {
	var req dto.RegistrarMovimientoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarMovimiento(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, resp)
}

func (h *InventarioHandler) ListarMovimientos(c *gin.Context) {
	var filter dto.MovimientoFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.ListarMovimientos(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, resp)
}

func (h *InventarioHandler) ActualizarMinimo(c *gin.Context) {
	productoID, ok := parseIDParam(c, "producto_id")
	if !ok {
		return
	}
	var req dto.ActualizarMinimoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ActualizarMinimo(c.Request.Context(), productoID, req.StockMinimo); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"mensaje": "Stock mínimo actualizado"})
}

func (h *InventarioHandler) Alertas(c *gin.Context) {
	resp, err := h.svc.ObtenerAlertas(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, resp)
}
