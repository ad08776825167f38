package handler

import (
	"net/http"
	"strconv"

	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/dto"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct {
	reporteSvc    service.ReporteService
	inventarioSvc service.InventarioService
}

func NewReportesHandler(reporteSvc service.ReporteService, inventarioSvc service.InventarioService) *ReportesHandler {
	return &ReportesHandler{reporteSvc: reporteSvc, inventarioSvc: inventarioSvc}
}

func (h *ReportesHandler) VentasPorDia(c *gin.Context) {
	var filter dto.ReporteVentasFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.reporteSvc.VentasPorDia(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, resp)
}

func (h *ReportesHandler) TopProductos(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	resp, err := h.reporteSvc.TopProductos(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, resp)
}

// StockBajo lists only the products already at or below their minimum.
func (h *ReportesHandler) StockBajo(c *gin.Context) {
	resp, err := h.inventarioSvc.ObtenerStockCritico(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, resp)
}
