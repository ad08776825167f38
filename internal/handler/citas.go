package handler

import (
	"net/http"

	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/dto"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type CitasHandler struct{ svc service.CitaService }

func NewCitasHandler(svc service.CitaService) *CitasHandler {
	return &CitasHandler{svc: svc}
}

func (h *CitasHandler) Crear(c *gin.Context) {
	var req dto.CrearCitaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, resp)
}

func (h *CitasHandler) ObtenerPorID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, resp)
}

func (h *CitasHandler) Listar(c *gin.Context) {
	var filter dto.CitaFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, resp)
}

func (h *CitasHandler) ActualizarEstado(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarEstadoCitaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarEstado(c.Request.Context(), id, req.Estado)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, resp)
}

func (h *CitasHandler) Reprogramar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ReprogramarCitaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Reprogramar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, resp)
}
