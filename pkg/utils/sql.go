package utils

import "gorm.io/gorm"

type DBOption func(*gorm.DB) *gorm.DB

func ApplyOptions(db *gorm.DB, opts ...DBOption) *gorm.DB {
	for _, opt := range opts {
		db = opt(db)
	}
	return db
}

// WithTx runs the query on tx instead of the repository's own handle.
func WithTx(tx *gorm.DB) DBOption {
	return func(db *gorm.DB) *gorm.DB {
		return tx.WithContext(db.Statement.Context)
	}
}

func WithLimit(limit int) DBOption {
	return func(db *gorm.DB) *gorm.DB {
		return db.Limit(limit)
	}
}
