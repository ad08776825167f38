package handler

import (
	"net/http"
	"strconv"

	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/dto"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type CarritoHandler struct{ svc service.CarritoService }

func NewCarritoHandler(svc service.CarritoService) *CarritoHandler {
	return &CarritoHandler{svc: svc}
}

// Obtener returns the active cart. A malformed usuario_id is answered with an
// empty cart instead of an error so the storefront can always render.
func (h *CarritoHandler) Obtener(c *gin.Context) {
	usuarioID, err := strconv.ParseUint(c.Param("usuario_id"), 10, 64)
	if err != nil || usuarioID == 0 {
		respondData(c, http.StatusOK, service.CarritoVacio())
		return
	}
	resp, svcErr := h.svc.ObtenerCarrito(c.Request.Context(), uint(usuarioID))
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	respondData(c, http.StatusOK, resp)
}

func (h *CarritoHandler) AgregarItem(c *gin.Context) {
	usuarioID, ok := parseIDParam(c, "usuario_id")
	if !ok {
		return
	}
	var req dto.AgregarItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarItem(c.Request.Context(), usuarioID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, resp)
}

func (h *CarritoHandler) ActualizarItem(c *gin.Context) {
	usuarioID, ok := parseIDParam(c, "usuario_id")
	if !ok {
		return
	}
	productoID, ok := parseIDParam(c, "producto_id")
	if !ok {
		return
	}
	var req dto.ActualizarItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarItem(c.Request.Context(), usuarioID, productoID, req.Cantidad)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, resp)
}

func (h *CarritoHandler) EliminarItem(c *gin.Context) {
	usuarioID, ok := parseIDParam(c, "usuario_id")
	if !ok {
		return
	}
	productoID, ok := parseIDParam(c, "producto_id")
	if !ok {
		return
	}
	if err := h.svc.EliminarItem(c.Request.Context(), usuarioID, productoID); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"mensaje": "Producto eliminado del carrito"})
}

func (h *CarritoHandler) Vaciar(c *gin.Context) {
	usuarioID, ok := parseIDParam(c, "usuario_id")
	if !ok {
		return
	}
	if err := h.svc.Vaciar(c.Request.Context(), usuarioID); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"mensaje": "Carrito vaciado"})
}

func (h *CarritoHandler) Resumen(c *gin.Context) {
	usuarioID, ok := parseIDParam(c, "usuario_id")
	if !ok {
		return
	}
	resp, err := h.svc.Resumen(c.Request.Context(), usuarioID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, resp)
}

func (h *CarritoHandler) Checkout(c *gin.Context) {
	usuarioID, ok := parseIDParam(c, "usuario_id")
	if !ok {
		return
	}
	var req dto.CheckoutRequest
	if c.Request.ContentLength > 0 {
		if !bindAndValidate(c, &req) {
			return
		}
	}
	resp, err := h.svc.Checkout(c.Request.Context(), usuarioID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, resp)
}
