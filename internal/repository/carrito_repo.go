package repository

import (
	"context"
	"time"

	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/model"

	"gorm.io/gorm"
)

// CarritoRepository is the data access contract for carts and cart lines.
type CarritoRepository interface {
	// FindActivoByUsuario returns the customer's most recent cart.
	// gorm.ErrRecordNotFound means the customer has no cart at all.
	FindActivoByUsuario(ctx context.Context, usuarioID uint) (*model.Carrito, error)
	Create(ctx context.Context, c *model.Carrito) error
	ListItems(ctx context.Context, carritoID uint) ([]model.CarritoItem, error)
	ListItemsTx(tx *gorm.DB, carritoID uint) ([]model.CarritoItem, error)
	FindItem(ctx context.Context, carritoID, productoID uint) (*model.CarritoItem, error)
	CreateItem(ctx context.Context, item *model.CarritoItem) error
	UpdateItem(ctx context.Context, item *model.CarritoItem) error
	DeleteItem(ctx context.Context, carritoID, productoID uint) error
	// DeleteItemsTx removes all lines of a cart; the cart row survives.
	DeleteItemsTx(tx *gorm.DB, carritoID uint) error
	DeleteItems(ctx context.Context, carritoID uint) error
	// DeleteVaciosAnterioresA prunes carts created before cutoff that have
	// no lines. Returns the number of carts removed.
	DeleteVaciosAnterioresA(ctx context.Context, cutoff time.Time) (int64, error)
	DB() *gorm.DB
}

type carritoRepo struct{ db *gorm.DB }

func NewCarritoRepository(db *gorm.DB) CarritoRepository { return &carritoRepo{db: db} }

func (r *carritoRepo) FindActivoByUsuario(ctx context.Context, usuarioID uint) (*model.Carrito, error) {
	var carrito model.Carrito
	err := r.db.WithContext(ctx).
		Where("usuario_id = ?", usuarioID).
		Order("created_at DESC").
		First(&carrito).Error
	if err != nil {
		return nil, err
	}
	return &carrito, nil
}

func (r *carritoRepo) Create(ctx context.Context, c *model.Carrito) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *carritoRepo) ListItems(ctx context.Context, carritoID uint) ([]model.CarritoItem, error) {
	var items []model.CarritoItem
	err := r.db.WithContext(ctx).
		Where("carrito_id = ?", carritoID).
		Preload("Producto").
		Order("id ASC").
		Find(&items).Error
	return items, err
}

func (r *carritoRepo) ListItemsTx(tx *gorm.DB, carritoID uint) ([]model.CarritoItem, error) {
	var items []model.CarritoItem
	err := tx.Where("carrito_id = ?", carritoID).
		Preload("Producto").
		Order("id ASC").
		Find(&items).Error
	return items, err
}

func (r *carritoRepo) FindItem(ctx context.Context, carritoID, productoID uint) (*model.CarritoItem, error) {
	var item model.CarritoItem
	err := r.db.WithContext(ctx).
		Where("carrito_id = ? AND producto_id = ?", carritoID, productoID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *carritoRepo) CreateItem(ctx context.Context, item *model.CarritoItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *carritoRepo) UpdateItem(ctx context.Context, item *model.CarritoItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *carritoRepo) DeleteItem(ctx context.Context, carritoID, productoID uint) error {
	res := r.db.WithContext(ctx).
		Where("carrito_id = ? AND producto_id = ?", carritoID, productoID).
		Delete(&model.CarritoItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *carritoRepo) DeleteItemsTx(tx *gorm.DB, carritoID uint) error {
	return tx.Where("carrito_id = ?", carritoID).Delete(&model.CarritoItem{}).Error
}

func (r *carritoRepo) DeleteItems(ctx context.Context, carritoID uint) error {
	return r.db.WithContext(ctx).Where("carrito_id = ?", carritoID).Delete(&model.CarritoItem{}).Error
}

func (r *carritoRepo) DeleteVaciosAnterioresA(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Where("NOT EXISTS (SELECT 1 FROM carrito_items WHERE carrito_items.carrito_id = carritos.id)").
		Delete(&model.Carrito{})
	return res.RowsAffected, res.Error
}

func (r *carritoRepo) DB() *gorm.DB { return r.db }
