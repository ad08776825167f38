package infra

import (
	"fmt"

	"github.com/WendySacayonFajardo/salon-sandra-fajardo-sub001/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx with a bounded
// connection pool, then runs AutoMigrate to create/update all tables.
// Requests that cannot obtain a pooled connection in time fail at the query
// call site instead of queueing forever.
func NewDatabase(dsn string, maxOpen, maxIdle int) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return db, nil
}

// RunMigrations applies the schema. Also used by integration tests.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Categoria{},
		&model.Producto{},
		&model.Inventario{},
		&model.MovimientoInventario{},
		&model.Carrito{},
		&model.CarritoItem{},
		&model.Venta{},
		&model.VentaDetalle{},
		&model.Cita{},
		&model.Usuario{},
	)
}
