package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/apierror"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/dto"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/repository"

	"github.com/redis/go-redis/v9"
)

const reporteCacheTTL = 60 * time.Second

// ReporteService serves the aggregated back-office reports. Results are
// cached in Redis for a short TTL; staleness within the TTL is acceptable.
type ReporteService interface {
	VentasPorDia(ctx context.Context, filter dto.ReporteVentasFilter) ([]dto.VentasDiaResponse, error)
	TopProductos(ctx context.Context, limit int) ([]dto.TopProductoResponse, error)
}

type reporteService struct {
	repo repository.ReporteRepository
	rdb  *redis.Client
}

func NewReporteService(repo repository.ReporteRepository, rdb *redis.Client) ReporteService {
	return &reporteService{repo: repo, rdb: rdb}
}

func (s *reporteService) VentasPorDia(ctx context.Context, filter dto.ReporteVentasFilter) ([]dto.VentasDiaResponse, error) {
	cacheKey := fmt.Sprintf("reporte:ventas:%s:%s", filter.Desde, filter.Hasta)
	var cached []dto.VentasDiaResponse
	if s.cacheGet(ctx, cacheKey, &cached) {
		return cached, nil
	}

	rows, err := s.repo.VentasPorDia(ctx, filter.Desde, filter.Hasta)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	if rows == nil {
		rows = []dto.VentasDiaResponse{}
	}
	s.cacheSet(ctx, cacheKey, rows)
	return rows, nil
}

func (s *reporteService) TopProductos(ctx context.Context, limit int) ([]dto.TopProductoResponse, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}
	cacheKey := fmt.Sprintf("reporte:top:%d", limit)
	var cached []dto.TopProductoResponse
	if s.cacheGet(ctx, cacheKey, &cached) {
		return cached, nil
	}

	rows, err := s.repo.TopProductos(ctx, limit)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	if rows == nil {
		rows = []dto.TopProductoResponse{}
	}
	s.cacheSet(ctx, cacheKey, rows)
	return rows, nil
}

func (s *reporteService) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.rdb == nil {
		return false
	}
	raw, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(raw), dest) == nil
}

func (s *reporteService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.rdb == nil {
		return
	}
	if data, err := json.Marshal(value); err == nil {
		s.rdb.Set(ctx, key, data, reporteCacheTTL)
	}
}
