package db

import (
	"fmt"

	"gorm.io/gorm"
)

// AcquireXactLock takes a Postgres transaction-scoped advisory lock for key.
// The lock is released when tx commits or rolls back, so it must be called on
// the transaction handle itself. Dialects without advisory locks are a no-op.
func AcquireXactLock(tx *gorm.DB, key string) error {
	if tx == nil {
		return fmt.Errorf("transaction required for advisory lock")
	}
	if !IsPostgres(tx) {
		return nil
	}
	if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error; err != nil {
		return fmt.Errorf("advisory lock %q: %w", key, err)
	}
	return nil
}

// IsPostgres reports whether conn talks to Postgres. Test runs use SQLite,
// which lacks advisory and row locks.
func IsPostgres(conn *gorm.DB) bool {
	return conn != nil && conn.Dialector != nil && conn.Dialector.Name() == DriverPostgres
}
