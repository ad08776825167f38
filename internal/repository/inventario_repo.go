package repository

import (
	"context"

	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/dto"
	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InventarioRepository is the data access contract for stock levels and the
// movement ledger. Tx variants run against an open transaction and are the
// only mutation paths used by checkout.
type InventarioRepository interface {
	Create(ctx context.Context, inv *model.Inventario) error
	CreateTx(tx *gorm.DB, inv *model.Inventario) error
	FindByProductoID(ctx context.Context, productoID uint) (*model.Inventario, error)
	// FindByProductoIDForUpdate reads the inventory row under a
	// SELECT ... FOR UPDATE lock, held until the transaction ends.
	FindByProductoIDForUpdate(tx *gorm.DB, productoID uint) (*model.Inventario, error)
	// DescontarStockTx decrements stock_actual atomically. The WHERE clause
	// guards against going negative; ErrStockInsuficiente is returned when
	// no row matched.
	DescontarStockTx(tx *gorm.DB, productoID uint, cantidad int) error
	// IncrementarStockTx adds cantidad to stock_actual.
	IncrementarStockTx(tx *gorm.DB, productoID uint, cantidad int) error
	UpdateStockMinimo(ctx context.Context, productoID uint, minimo int) error
	CreateMovimientoTx(tx *gorm.DB, mov *model.MovimientoInventario) error
	ListMovimientos(ctx context.Context, filter dto.MovimientoFilter) ([]model.MovimientoInventario, int64, error)
	// ListStockBajo returns inventory rows with stock at or below 1.5× the
	// reorder threshold, worst first.
	ListStockBajo(ctx context.Context) ([]model.Inventario, error)
	DB() *gorm.DB
}

// ErrStockInsuficiente is returned by DescontarStockTx when the guarded
// decrement matched no row (stock below the requested quantity).
var ErrStockInsuficiente = gorm.ErrRecordNotFound

type inventarioRepo struct{ db *gorm.DB }

func NewInventarioRepository(db *gorm.DB) InventarioRepository { return &inventarioRepo{db: db} }

func (r *inventarioRepo) Create(ctx context.Context, inv *model.Inventario) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *inventarioRepo) CreateTx(tx *gorm.DB, inv *model.Inventario) error {
	return tx.Create(inv).Error
}

func (r *inventarioRepo) FindByProductoID(ctx context.Context, productoID uint) (*model.Inventario, error) {
	var inv model.Inventario
	err := r.db.WithContext(ctx).Where("producto_id = ?", productoID).First(&inv).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *inventarioRepo) FindByProductoIDForUpdate(tx *gorm.DB, productoID uint) (*model.Inventario, error) {
	var inv model.Inventario
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("producto_id = ?", productoID).First(&inv).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *inventarioRepo) DescontarStockTx(tx *gorm.DB, productoID uint, cantidad int) error {
	res := tx.Model(&model.Inventario{}).
		Where("producto_id = ? AND stock_actual >= ?", productoID, cantidad).
		Update("stock_actual", gorm.Expr("stock_actual - ?", cantidad))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStockInsuficiente
	}
	return nil
}

func (r *inventarioRepo) IncrementarStockTx(tx *gorm.DB, productoID uint, cantidad int) error {
	return tx.Model(&model.Inventario{}).
		Where("producto_id = ?", productoID).
		Update("stock_actual", gorm.Expr("stock_actual + ?", cantidad)).Error
}

func (r *inventarioRepo) UpdateStockMinimo(ctx context.Context, productoID uint, minimo int) error {
	res := r.db.WithContext(ctx).Model(&model.Inventario{}).
		Where("producto_id = ?", productoID).
		Update("stock_minimo", minimo)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *inventarioRepo) CreateMovimientoTx(tx *gorm.DB, mov *model.MovimientoInventario) error {
	return tx.Create(mov).Error
}

func (r *inventarioRepo) ListMovimientos(ctx context.Context, filter dto.MovimientoFilter) ([]model.MovimientoInventario, int64, error) {
	var movimientos []model.MovimientoInventario
	var total int64

	q := r.db.WithContext(ctx).Model(&model.MovimientoInventario{})
	if filter.ProductoID != 0 {
		q = q.Where("producto_id = ?", filter.ProductoID)
	}
	if filter.Tipo != "" {
		q = q.Where("tipo = ?", filter.Tipo)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Producto").Order("created_at DESC").
		Limit(filter.Limit).Offset(offset).Find(&movimientos).Error
	return movimientos, total, err
}

func (r *inventarioRepo) ListStockBajo(ctx context.Context) ([]model.Inventario, error) {
	var inventarios []model.Inventario
	err := r.db.WithContext(ctx).
		Joins("JOIN productos ON productos.id = inventarios.producto_id").
		Where("productos.activo = true").
		Where("inventarios.stock_actual * 2 <= inventarios.stock_minimo * 3").
		Preload("Producto").
		Order("inventarios.stock_actual ASC").
		Find(&inventarios).Error
	return inventarios, err
}

func (r *inventarioRepo) DB() *gorm.DB { return r.db }
