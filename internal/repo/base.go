package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/shopbalance-backend/pkg/db"
)

// Base provides a shared foundation for domain repositories. A Base built on
// a transaction handle keeps every query inside that transaction.
type Base struct {
	db *gorm.DB
}

// NewBase constructs a Base repository backed by the provided GORM connection.
func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the GORM connection bound to the supplied context (if any).
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// LockedDB is DB with SELECT ... FOR UPDATE applied on Postgres. Other
// dialects get the plain connection.
func (b Base) LockedDB(ctx context.Context) *gorm.DB {
	conn := b.DB(ctx)
	if !db.IsPostgres(conn) {
		return conn
	}
	return conn.Clauses(clause.Locking{Strength: "UPDATE"})
}
