package repository

import (
	"context"
	"time"

	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/dto"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/model"

	"gorm.io/gorm"
)

// CitaRepository is the data access contract for appointments.
type CitaRepository interface {
	Create(ctx context.Context, c *model.Cita) error
	FindByID(ctx context.Context, id uint) (*model.Cita, error)
	List(ctx context.Context, filter dto.CitaFilter) ([]model.Cita, int64, error)
	Update(ctx context.Context, c *model.Cita) error
	// ExisteEnSlot reports whether a non-cancelled cita already occupies the
	// fecha+hora slot. excludeID skips one cita (for rescheduling).
	ExisteEnSlot(ctx context.Context, fecha time.Time, hora string, excludeID uint) (bool, error)
}

type citaRepo struct{ db *gorm.DB }

func NewCitaRepository(db *gorm.DB) CitaRepository { return &citaRepo{db: db} }

func (r *citaRepo) Create(ctx context.Context, c *model.Cita) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *citaRepo) FindByID(ctx context.Context, id uint) (*model.Cita, error) {
	var c model.Cita
	err := r.db.WithContext(ctx).First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *citaRepo) List(ctx context.Context, filter dto.CitaFilter) ([]model.Cita, int64, error) {
	var citas []model.Cita
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Cita{})
	if filter.Fecha != "" {
		q = q.Where("fecha = ?", filter.Fecha)
	}
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("fecha ASC, hora ASC").Limit(filter.Limit).Offset(offset).Find(&citas).Error
	return citas, total, err
}

func (r *citaRepo) Update(ctx context.Context, c *model.Cita) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *citaRepo) ExisteEnSlot(ctx context.Context, fecha time.Time, hora string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&model.Cita{}).
		Where("fecha = ? AND hora = ? AND estado <> ?", fecha, hora, model.CitaCancelada)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}
