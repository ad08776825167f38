package service

import (
	"context"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// runTx executes fn inside an explicit GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode, stub repos).
//
// Any error from fn triggers a rollback. A rollback failure is logged but
// never masks the original error, so the caller always sees the business
// failure that aborted the transaction.
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			if rbErr := tx.Rollback().Error; rbErr != nil {
				log.Error().Err(rbErr).Msg("rollback after panic failed")
			}
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			log.Error().Err(rbErr).Msg("transaction rollback failed")
		}
		return err
	}

	return tx.Commit().Error
}
