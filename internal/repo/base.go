package repo

import (
	"context"

	"github.com/angelmondragon/sportomic-backend/pkg/db"
	"gorm.io/gorm"
)

const dialectSQLite = "sqlite"

// Base provides a shared foundation for domain repositories.
type Base struct {
	conn db.Conn
}

// NewBase constructs a Base repository backed by the pool provider.
func NewBase(conn db.Conn) Base {
	return Base{conn: conn}
}

// DB returns a connection bound to ctx, opening the pool on first use.
func (b Base) DB(ctx context.Context) (*gorm.DB, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return b.conn.Conn(ctx)
}

// IsSQLite reports whether conn speaks the SQLite dialect.
func IsSQLite(conn *gorm.DB) bool {
	return conn != nil && conn.Dialector != nil && conn.Dialector.Name() == dialectSQLite
}
